package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/export"
	"github.com/yungbote/liftplan-backend/internal/fallback"
	"github.com/yungbote/liftplan-backend/internal/generator"
	"github.com/yungbote/liftplan-backend/internal/http/response"
	"github.com/yungbote/liftplan-backend/internal/normalize"
	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
	"github.com/yungbote/liftplan-backend/internal/progress"
	"github.com/yungbote/liftplan-backend/internal/staging"
)

type PlanGenerator interface {
	Generate(ctx context.Context, in generator.Input) (*generator.Outcome, error)
}

type PlanHandler struct {
	log   *logger.Logger
	gen   PlanGenerator
	stage staging.Store
	tick  time.Duration
}

func NewPlanHandler(log *logger.Logger, gen PlanGenerator, stage staging.Store, tick time.Duration) *PlanHandler {
	return &PlanHandler{
		log:   logger.OrNop(log).With("handler", "PlanHandler"),
		gen:   gen,
		stage: stage,
		tick:  tick,
	}
}

type generateRequest struct {
	Questionnaire json.RawMessage `json:"questionnaire"`
	ExistingPlan  string          `json:"existingPlan"`
}

// readRequest decodes the {questionnaire, existingPlan} body and runs the
// questionnaire through the validating decoder.
func readRequest(c *gin.Context) (staging.Payload, error) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return staging.Payload{}, apierr.Validation("body_too_large", "request body is too large", nil)
		}
		return staging.Payload{}, apierr.Validation("invalid_body", "request body could not be read", nil)
	}
	var req generateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return staging.Payload{}, apierr.Validation("invalid_json", "request body must be a JSON object", nil)
	}
	q, err := plan.DecodeQuestionnaire(req.Questionnaire)
	if err != nil {
		return staging.Payload{}, err
	}
	return staging.Payload{Questionnaire: q, ExistingPlan: strings.TrimSpace(req.ExistingPlan)}, nil
}

// POST /api/questionnaire/validate
func (h *PlanHandler) ValidateQuestionnaire(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid_body", "request body could not be read", nil))
		return
	}
	if _, err := plan.DecodeQuestionnaire(raw); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"valid": true})
}

// POST /api/plans/generate
func (h *PlanHandler) Generate(c *gin.Context) {
	p, err := readRequest(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	out, err := h.gen.Generate(c.Request.Context(), generator.Input{
		Questionnaire: p.Questionnaire,
		ExistingPlan:  p.ExistingPlan,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/plans/generate/stream
func (h *PlanHandler) GenerateStream(c *gin.Context) {
	p, err := readRequest(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	h.stream(c, p)
}

// POST /api/plans/stage
func (h *PlanHandler) Stage(c *gin.Context) {
	p, err := readRequest(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	key, err := h.stage.Put(c.Request.Context(), p)
	if err != nil {
		response.RespondError(c, apierr.Internal("stage_failed", err))
		return
	}
	response.RespondOK(c, gin.H{"key": key, "expiresIn": int(h.stage.TTL().Seconds())})
}

// GET /api/plans/stream?stage=<key>
func (h *PlanHandler) StreamStaged(c *gin.Context) {
	key := strings.TrimSpace(c.Query("stage"))
	if key == "" {
		response.RespondError(c, apierr.Validation("stage_missing", "stage key is required", nil))
		return
	}
	p, err := h.stage.Take(c.Request.Context(), key)
	if err != nil {
		// EventSource clients cannot read an error body, so the failure is
		// delivered as the stream's terminal event.
		h.openStream(c)
		_ = h.emitter(c)(progress.Event{
			Type:    progress.TypeError,
			Stage:   progress.StageValidate,
			Message: "Plan request not found",
			Error:   progress.NewErrorBody(err),
		})
		return
	}
	h.stream(c, p)
}

// POST /api/plans/fallback
func (h *PlanHandler) Fallback(c *gin.Context) {
	p, err := readRequest(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	q := p.Questionnaire
	response.RespondOK(c, gin.H{"plan": normalize.Normalize(fallback.Generate(q), q)})
}

type exportRequest struct {
	Plan *plan.GeneratedPlan `json:"plan"`
}

// POST /api/plans/export
func (h *PlanHandler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid_json", "request body must be {\"plan\": {...}}", nil))
		return
	}
	if req.Plan == nil || len(req.Plan.Days) == 0 {
		response.RespondError(c, apierr.Validation("plan_missing", "a plan with at least one day is required", nil))
		return
	}
	f, err := export.Workbook(req.Plan)
	if err != nil {
		response.RespondError(c, apierr.Internal("export_failed", err))
		return
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		response.RespondError(c, apierr.Internal("export_failed", err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(req.Plan)+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *PlanHandler) openStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()
}

// emitter writes one SSE event per progress event. A cancelled request
// context means the client left; a deadline still gets its error event.
func (h *PlanHandler) emitter(c *gin.Context) func(progress.Event) error {
	return func(ev progress.Event) error {
		if err := c.Request.Context().Err(); errors.Is(err, context.Canceled) {
			return err
		}
		before := len(c.Errors)
		c.SSEvent(ev.Type, ev)
		c.Writer.Flush()
		if len(c.Errors) > before {
			return c.Errors.Last().Err
		}
		return nil
	}
}

func (h *PlanHandler) stream(c *gin.Context, p staging.Payload) {
	m := observability.Current()
	m.StreamOpened()
	defer m.StreamClosed()

	h.openStream(c)
	err := progress.Stream(c.Request.Context(), h.tick, h.emitter(c), func(ctx context.Context, note func(string)) (any, error) {
		return h.gen.Generate(ctx, generator.Input{
			Questionnaire: p.Questionnaire,
			ExistingPlan:  p.ExistingPlan,
			OnState:       func(s generator.State) { note(s.Message()) },
		})
	})
	if err != nil {
		h.log.Warn("plan stream ended with error", "error", err, "kind", string(apierr.KindOf(err)))
	}
}
