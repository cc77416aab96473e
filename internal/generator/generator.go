// Package generator runs plan synthesis as an explicit state machine:
// draft, parse, optional repair, quality check, optional corrective retry,
// refinement and normalization. Every model-calling state is visited at
// most once.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/fallback"
	"github.com/yungbote/liftplan-backend/internal/knowledge"
	"github.com/yungbote/liftplan-backend/internal/llm"
	"github.com/yungbote/liftplan-backend/internal/normalize"
	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
	"github.com/yungbote/liftplan-backend/internal/prompts"
	"github.com/yungbote/liftplan-backend/internal/quality"
)

type Config struct {
	Model             string
	MaxOutputTokens   int
	DraftTemperature  float64
	RetryTemperature  float64
	RepairTemperature float64
	RefineTemperature float64
	KnowledgeBudget   int
	// SkipRefine disables the requirements review call.
	SkipRefine bool
	// FallbackOnProviderError serves a normalized template plan when the
	// draft call fails at the provider.
	FallbackOnProviderError bool
}

// DefaultConfig holds the production temperatures.
func DefaultConfig() Config {
	return Config{
		MaxOutputTokens:   16000,
		DraftTemperature:  0.3,
		RetryTemperature:  0.4,
		RepairTemperature: 0,
		RefineTemperature: 0.2,
		KnowledgeBudget:   12000,
	}
}

// KnowledgeSource hands out the current knowledge snapshot.
type KnowledgeSource interface {
	Get() *knowledge.Base
}

type Input struct {
	Questionnaire plan.Questionnaire
	ExistingPlan  string
	// OnState is called synchronously on every state entry.
	OnState func(State)
}

type Outcome struct {
	Plan          *plan.GeneratedPlan `json:"plan"`
	QualityIssues []string            `json:"qualityIssues"`
	Repaired      bool                `json:"repaired"`
	Retried       bool                `json:"retried"`
	Refined       bool                `json:"refined"`
	Fallback      bool                `json:"fallback,omitempty"`
	Trace         []State             `json:"trace"`
}

type Generator struct {
	log      *logger.Logger
	provider llm.Provider
	kb       KnowledgeSource
	cfg      Config
}

func New(log *logger.Logger, provider llm.Provider, kb KnowledgeSource, cfg Config) *Generator {
	return &Generator{
		log:      logger.OrNop(log).With("service", "Generator"),
		provider: provider,
		kb:       kb,
		cfg:      cfg,
	}
}

// run is the per-request state.
type run struct {
	g    *Generator
	q    plan.Questionnaire
	opts prompts.Options
	m    *machine
	log  *logger.Logger

	text    string
	current *plan.GeneratedPlan
	issues  []string
	out     Outcome
	err     error
}

// Generate returns a normalized plan or a taxonomy error. Quality and
// refinement problems never fail the call.
func (g *Generator) Generate(ctx context.Context, in Input) (*Outcome, error) {
	if g.provider == nil {
		return nil, apierr.Internal("provider_missing", errors.New("no llm provider configured"))
	}
	q := plan.Sanitize(in.Questionnaire)
	if err := plan.Validate(q); err != nil {
		return nil, err
	}
	start := time.Now()
	metrics := observability.Current()
	onState := func(s State) {
		metrics.IncState(string(s))
		if in.OnState != nil {
			in.OnState(s)
		}
	}
	r := &run{
		g:    g,
		q:    q,
		opts: prompts.Options{CharBudget: g.cfg.KnowledgeBudget, ExistingPlan: in.ExistingPlan},
		m:    newMachine(onState),
		log:  g.log.With("provider", g.provider.Name()),
	}
	if g.kb != nil {
		r.opts.Knowledge = g.kb.Get()
	}
	for r.m.state != StateDone && r.m.state != StateFailed {
		r.step(ctx)
	}
	r.out.Trace = r.m.Trace()
	if r.m.state == StateFailed {
		r.log.Error("plan generation failed", "trace", r.out.Trace, "error", r.err)
		metrics.ObserveGeneration(string(apierr.KindOf(r.err)), time.Since(start), 0)
		return nil, r.err
	}
	if r.out.QualityIssues == nil {
		r.out.QualityIssues = []string{}
	}
	observability.ReportQualityIssues(ctx, r.log, "final", r.out.QualityIssues)
	outcome := "ok"
	if r.out.Fallback {
		outcome = "fallback"
	}
	metrics.ObserveGeneration(outcome, time.Since(start), 0)
	r.out.Plan = r.current
	return &r.out, nil
}

func (r *run) step(ctx context.Context) {
	ctx, span := observability.Tracer().Start(ctx, "generator."+string(r.m.state),
		trace.WithAttributes(attribute.String("generator.state", string(r.m.state))))
	defer span.End()
	from := r.m.state
	r.log.Debug("generator state", "state", from)

	var next State
	switch from {
	case StateDraft:
		next = r.draft(ctx, span)
	case StateParseCheck:
		next = r.parseCheck()
	case StateRepair:
		next = r.repair(ctx, span)
	case StateQualityCheck:
		next = r.qualityCheck(ctx)
	case StateRetryWithFeedback:
		next = r.retry(ctx, span)
	case StateRefine:
		next = r.refine(ctx, span)
	case StateNormalize:
		r.current = normalize.Normalize(r.current, r.q)
		next = StateDone
	default:
		r.err = apierr.Internal("bad_state", fmt.Errorf("unexpected state %s", from))
		next = StateFailed
	}
	span.SetAttributes(attribute.String("generator.next", string(next)))
	if next == StateFailed && r.err != nil {
		span.RecordError(r.err)
		span.SetStatus(codes.Error, string(apierr.KindOf(r.err)))
	}
	if err := r.m.to(next); err != nil {
		r.err = apierr.Internal("fsm_violation", err)
		r.m.enter(StateFailed)
	}
}

func (r *run) call(ctx context.Context, span trace.Span, p prompts.Prompt, temp float64) (string, error) {
	span.SetAttributes(
		attribute.String("prompt.name", string(p.Name)),
		attribute.String("prompt.fingerprint", p.Fingerprint()),
		attribute.Float64("llm.temperature", temp),
	)
	text, err := r.g.provider.GenerateJSON(ctx, llm.Request{
		Model:           r.g.cfg.Model,
		System:          p.System,
		User:            p.User,
		SchemaName:      p.SchemaName,
		Schema:          p.Schema,
		Temperature:     temp,
		MaxOutputTokens: r.g.cfg.MaxOutputTokens,
	})
	if err != nil {
		return "", llm.ProviderError(err)
	}
	return text, nil
}

func (r *run) fail(err error) State {
	r.err = err
	return StateFailed
}

func (r *run) draft(ctx context.Context, span trace.Span) State {
	p, err := prompts.Draft(r.q, r.opts)
	if err != nil {
		return r.fail(apierr.Internal("prompt_build_failed", err))
	}
	text, err := r.call(ctx, span, p, r.g.cfg.DraftTemperature)
	if err != nil {
		if r.g.cfg.FallbackOnProviderError && ctx.Err() == nil && apierr.KindOf(err) == apierr.KindProvider {
			r.log.Warn("provider unavailable, serving template plan", "error", err)
			r.current = fallback.Generate(r.q)
			r.out.Fallback = true
			return StateNormalize
		}
		return r.fail(err)
	}
	r.text = text
	return StateParseCheck
}

func (r *run) parseCheck() State {
	p, err := llm.ParsePlan(r.text)
	if err != nil {
		if r.m.can(StateRepair) {
			r.log.Warn("draft did not parse, repairing", "error", err)
			r.err = err
			return StateRepair
		}
		return r.fail(err)
	}
	r.err = nil
	r.current = normalize.Normalize(p, r.q)
	return StateQualityCheck
}

func (r *run) repair(ctx context.Context, span trace.Span) State {
	p, err := prompts.Repair(r.q, r.text, r.err)
	if err != nil {
		return r.fail(apierr.Internal("prompt_build_failed", err))
	}
	text, err := r.call(ctx, span, p, r.g.cfg.RepairTemperature)
	if err != nil {
		return r.fail(err)
	}
	r.text = text
	r.out.Repaired = true
	return StateParseCheck
}

// qualityCheck validates the normalized draft. A repaired draft has used its
// corrective call, so its issues are recorded without a retry.
func (r *run) qualityCheck(ctx context.Context) State {
	rep := quality.Validate(r.current, r.q)
	r.issues = rep.Messages()
	r.out.QualityIssues = r.issues
	if rep.Valid {
		return r.afterQuality()
	}
	r.log.Warn("plan failed quality checks", "issues", len(r.issues), "repaired", r.out.Repaired)
	if !r.out.Repaired && r.m.can(StateRetryWithFeedback) {
		if err := ctx.Err(); err != nil {
			return r.fail(apierr.From(err))
		}
		return StateRetryWithFeedback
	}
	return r.afterQuality()
}

func (r *run) afterQuality() State {
	if r.g.cfg.SkipRefine {
		return StateNormalize
	}
	return StateRefine
}

func (r *run) retry(ctx context.Context, span trace.Span) State {
	r.out.Retried = true
	p, err := prompts.Feedback(r.q, r.opts, r.current, r.issues)
	if err != nil {
		return r.fail(apierr.Internal("prompt_build_failed", err))
	}
	res := r.retryResult(ctx, span, p)
	if res.Fatal {
		return r.fail(res.Err)
	}
	if res.Failed() {
		r.log.Warn("quality retry unusable, keeping first plan", "error", res.Err)
	} else {
		r.current = res.Value
		rep := quality.Validate(r.current, r.q)
		r.out.QualityIssues = rep.Messages()
		if !rep.Valid {
			r.log.Warn("retried plan still has quality issues", "issues", len(rep.Issues))
		}
	}
	return r.afterQuality()
}

func (r *run) retryResult(ctx context.Context, span trace.Span, p prompts.Prompt) Result[*plan.GeneratedPlan] {
	text, err := r.call(ctx, span, p, r.g.cfg.RetryTemperature)
	if err != nil {
		if ctx.Err() != nil {
			return Fatal[*plan.GeneratedPlan](apierr.From(ctx.Err()))
		}
		return Recoverable(r.current, err)
	}
	parsed, err := llm.ParsePlan(text)
	if err != nil {
		return Recoverable(r.current, err)
	}
	return Ok(normalize.Normalize(parsed, r.q))
}

func (r *run) refine(ctx context.Context, span trace.Span) State {
	res := r.refineResult(ctx, span)
	if res.Fatal {
		return r.fail(res.Err)
	}
	if res.Failed() {
		r.log.Warn("refinement failed, keeping unrefined plan", "error", res.Err)
	} else {
		r.out.Refined = true
	}
	r.current = res.Value
	return StateNormalize
}

func (r *run) refineResult(ctx context.Context, span trace.Span) Result[*plan.GeneratedPlan] {
	p, err := prompts.Refine(r.q, r.current)
	if err != nil {
		return Recoverable(r.current, apierr.Refinement(err))
	}
	text, err := r.call(ctx, span, p, r.g.cfg.RefineTemperature)
	if err != nil {
		if ctx.Err() != nil {
			return Fatal[*plan.GeneratedPlan](apierr.From(ctx.Err()))
		}
		return Recoverable(r.current, apierr.Refinement(err))
	}
	refined, err := llm.ParsePlan(text)
	if err != nil {
		return Recoverable(r.current, apierr.Refinement(err))
	}
	return Ok(refined)
}
