// Package progress streams generation status as an ordered sequence of
// events that always ends with exactly one terminal event.
package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
)

type Stage string

const (
	StageValidate Stage = "validate"
	StagePrepare  Stage = "prepare"
	StageGenerate Stage = "generate"
	StageFinalize Stage = "finalize"
	StageComplete Stage = "complete"
)

// Event types, used as SSE event names.
const (
	TypeProgress = "progress"
	TypeComplete = "complete"
	TypeError    = "error"
)

const (
	pctValidate      = 5
	pctPrepare       = 15
	pctGenerateStart = 25
	pctGenerateCap   = 85
	pctFinalize      = 92
	pctComplete      = 100
)

type ErrorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Kind    apierr.Kind       `json:"kind"`
	Action  apierr.Action     `json:"action"`
	Details map[string]string `json:"details,omitempty"`
}

// NewErrorBody renders any error through the taxonomy.
func NewErrorBody(err error) *ErrorBody {
	e := apierr.From(err)
	if e == nil {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = e.Error()
	}
	return &ErrorBody{Message: msg, Code: e.Code, Kind: e.Kind, Action: e.Action, Details: e.Details}
}

type Event struct {
	Type     string     `json:"type"`
	Progress int        `json:"progress"`
	Stage    Stage      `json:"stage"`
	Message  string     `json:"message"`
	Result   any        `json:"result,omitempty"`
	Error    *ErrorBody `json:"error,omitempty"`
}

// Ticker hands out generate-stage percentages that grow by step and never
// reach the finalize stage.
type Ticker struct {
	mu   sync.Mutex
	cur  int
	step int
	cap  int
}

func NewTicker() *Ticker {
	return &Ticker{cur: pctGenerateStart, step: 3, cap: pctGenerateCap}
}

func (t *Ticker) Next() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur+t.step <= t.cap {
		t.cur += t.step
	} else {
		t.cur = t.cap
	}
	return t.cur
}

func (t *Ticker) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur
}

// Work is the streamed task. note reports a human-readable status line.
type Work func(ctx context.Context, note func(string)) (any, error)

// Stream runs work next to a progress ticker and forwards every event to
// emit from the calling goroutine. It returns after the terminal event. The
// returned error is the emit error if the client went away, otherwise the
// work error.
func Stream(ctx context.Context, interval time.Duration, emit func(Event) error, work Work) error {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := &streamer{emit: emit, cancel: cancel}
	s.send(Event{Type: TypeProgress, Progress: pctValidate, Stage: StageValidate, Message: "Validating your answers"})
	s.send(Event{Type: TypeProgress, Progress: pctPrepare, Stage: StagePrepare, Message: "Preparing your training profile"})

	ticker := NewTicker()
	events := make(chan Event, 16)
	done := make(chan struct{})
	var (
		result  any
		workErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		note := func(msg string) {
			ev := Event{Type: TypeProgress, Progress: ticker.Current(), Stage: StageGenerate, Message: msg}
			select {
			case events <- ev:
			case <-gctx.Done():
			}
		}
		result, workErr = work(gctx, note)
		return nil
	})
	g.Go(func() error {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return nil
			case <-gctx.Done():
				return nil
			case <-t.C:
				ev := Event{Type: TypeProgress, Progress: ticker.Next(), Stage: StageGenerate, Message: "Generating your plan"}
				select {
				case events <- ev:
				case <-done:
					return nil
				case <-gctx.Done():
					return nil
				}
			}
		}
	})
	go func() {
		_ = g.Wait()
		close(events)
	}()

	s.send(Event{Type: TypeProgress, Progress: pctGenerateStart, Stage: StageGenerate, Message: "Generating your plan"})
	for ev := range events {
		s.send(ev)
	}

	if workErr != nil {
		s.send(Event{Type: TypeError, Progress: s.last, Stage: s.stage, Message: "Plan generation failed", Error: NewErrorBody(workErr)})
		if s.err != nil {
			return s.err
		}
		return workErr
	}
	s.send(Event{Type: TypeProgress, Progress: pctFinalize, Stage: StageFinalize, Message: "Finalizing your plan"})
	s.send(Event{Type: TypeComplete, Progress: pctComplete, Stage: StageComplete, Message: "Your plan is ready", Result: result})
	return s.err
}

// streamer keeps progress monotonic and stops emitting after the first
// emit failure.
type streamer struct {
	emit   func(Event) error
	cancel context.CancelFunc
	last   int
	stage  Stage
	err    error
}

func (s *streamer) send(ev Event) {
	if s.err != nil {
		return
	}
	if ev.Progress < s.last {
		ev.Progress = s.last
	}
	s.last = ev.Progress
	s.stage = ev.Stage
	if err := s.emit(ev); err != nil {
		s.err = errors.Join(errors.New("progress: emit failed"), err)
		s.cancel()
	}
}
