package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
	failAt int
}

func (r *recorder) emit(ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAt > 0 && len(r.events)+1 >= r.failAt {
		return errors.New("client gone")
	}
	r.events = append(r.events, ev)
	return nil
}

func terminals(events []Event) int {
	n := 0
	for _, ev := range events {
		if ev.Type == TypeComplete || ev.Type == TypeError {
			n++
		}
	}
	return n
}

func assertMonotonic(t *testing.T, events []Event) {
	t.Helper()
	last := -1
	for i, ev := range events {
		if ev.Progress < last {
			t.Fatalf("event %d progress %d < %d", i, ev.Progress, last)
		}
		if ev.Progress < 0 || ev.Progress > 100 {
			t.Fatalf("event %d progress out of range: %d", i, ev.Progress)
		}
		last = ev.Progress
	}
}

func TestStreamSuccess(t *testing.T) {
	rec := &recorder{}
	err := Stream(context.Background(), 5*time.Millisecond, rec.emit, func(ctx context.Context, note func(string)) (any, error) {
		note("Drafting")
		time.Sleep(30 * time.Millisecond)
		return map[string]string{"planName": "x"}, nil
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	ev := rec.events
	if len(ev) < 5 {
		t.Fatalf("expected at least 5 events, got %d", len(ev))
	}
	if ev[0].Stage != StageValidate || ev[1].Stage != StagePrepare {
		t.Fatalf("unexpected leading stages: %s %s", ev[0].Stage, ev[1].Stage)
	}
	last := ev[len(ev)-1]
	if last.Type != TypeComplete || last.Progress != 100 || last.Result == nil {
		t.Fatalf("bad terminal event: %+v", last)
	}
	if ev[len(ev)-2].Stage != StageFinalize {
		t.Fatalf("expected finalize before complete, got %s", ev[len(ev)-2].Stage)
	}
	if terminals(ev) != 1 {
		t.Fatalf("expected exactly one terminal event")
	}
	assertMonotonic(t, ev)
	for _, e := range ev {
		if e.Stage == StageGenerate && e.Progress > pctGenerateCap {
			t.Fatalf("generate progress above cap: %d", e.Progress)
		}
	}
}

func TestStreamError(t *testing.T) {
	rec := &recorder{}
	want := apierr.Parse("plan_unparsable", errors.New("bad json"))
	err := Stream(context.Background(), time.Hour, rec.emit, func(ctx context.Context, note func(string)) (any, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected work error, got %v", err)
	}
	last := rec.events[len(rec.events)-1]
	if last.Type != TypeError || last.Error == nil {
		t.Fatalf("expected error terminal, got %+v", last)
	}
	if last.Error.Code != "plan_unparsable" || last.Error.Action != apierr.ActionRetry {
		t.Fatalf("unexpected error body: %+v", last.Error)
	}
	if terminals(rec.events) != 1 {
		t.Fatalf("expected exactly one terminal event")
	}
	for _, e := range rec.events {
		if e.Stage == StageFinalize {
			t.Fatalf("finalize must not be emitted on failure")
		}
	}
	assertMonotonic(t, rec.events)
}

func TestStreamCancelsWorkWhenClientLeaves(t *testing.T) {
	rec := &recorder{failAt: 3}
	stopped := make(chan struct{})
	err := Stream(context.Background(), time.Millisecond, rec.emit, func(ctx context.Context, note func(string)) (any, error) {
		defer close(stopped)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	if err == nil {
		t.Fatalf("expected emit error")
	}
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatalf("work was not cancelled")
	}
	if terminals(rec.events) != 0 {
		t.Fatalf("no terminal event should reach a departed client")
	}
}

func TestStreamParentDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	rec := &recorder{}
	err := Stream(ctx, 5*time.Millisecond, rec.emit, func(ctx context.Context, note func(string)) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	if err == nil {
		t.Fatalf("expected deadline error")
	}
	last := rec.events[len(rec.events)-1]
	if last.Type != TypeError || last.Error.Kind != apierr.KindProvider || last.Error.Code != "timeout" {
		t.Fatalf("expected provider timeout terminal, got %+v", last)
	}
}

func TestTickerCaps(t *testing.T) {
	tk := NewTicker()
	prev := tk.Current()
	for i := 0; i < 100; i++ {
		n := tk.Next()
		if n < prev {
			t.Fatalf("ticker went backwards: %d < %d", n, prev)
		}
		prev = n
	}
	if prev != pctGenerateCap {
		t.Fatalf("expected ticker to settle at %d, got %d", pctGenerateCap, prev)
	}
}
