package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
	"github.com/yungbote/liftplan-backend/internal/generator"
	"github.com/yungbote/liftplan-backend/internal/http/response"
	"github.com/yungbote/liftplan-backend/internal/llm/mock"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
	"github.com/yungbote/liftplan-backend/internal/progress"
	"github.com/yungbote/liftplan-backend/internal/staging"
)

func goodText(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(plantest.UpperLower())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func newRouter(p *mock.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPlanHandler(nil, generator.New(nil, p, nil, generator.DefaultConfig()), staging.NewMemoryStore(time.Minute), 5*time.Millisecond)
	r := gin.New()
	r.POST("/api/questionnaire/validate", h.ValidateQuestionnaire)
	r.POST("/api/plans/generate", h.Generate)
	r.POST("/api/plans/generate/stream", h.GenerateStream)
	r.POST("/api/plans/stage", h.Stage)
	r.GET("/api/plans/stream", h.StreamStaged)
	r.POST("/api/plans/fallback", h.Fallback)
	r.POST("/api/plans/export", h.Export)
	return r
}

func body(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(data)
}

func do(r http.Handler, method, path string, b *bytes.Reader) *httptest.ResponseRecorder {
	var req *http.Request
	if b == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, b)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.APIError {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rec.Body.String())
	}
	return env.Error
}

type sseEvent struct {
	name string
	ev   progress.Event
}

func parseSSE(t *testing.T, raw string) []sseEvent {
	t.Helper()
	var out []sseEvent
	for _, chunk := range strings.Split(raw, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		var e sseEvent
		for _, line := range strings.Split(chunk, "\n") {
			switch {
			case strings.HasPrefix(line, "event:"):
				e.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &e.ev); err != nil {
					t.Fatalf("bad event data %q: %v", line, err)
				}
			}
		}
		out = append(out, e)
	}
	return out
}

func TestValidateQuestionnaire(t *testing.T) {
	r := newRouter(mock.New())
	rec := do(r, http.MethodPost, "/api/questionnaire/validate", body(t, plantest.Questionnaire()))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"valid":true`) {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	q := plantest.Questionnaire()
	q.Availability.DaysPerWeek = 9
	rec = do(r, http.MethodPost, "/api/questionnaire/validate", body(t, q))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", rec.Code)
	}
	e := decodeEnvelope(t, rec)
	if e.Code != "invalid_questionnaire" || e.Action != apierr.ActionStartOver || e.Details["availability.daysPerWeek"] == "" {
		t.Fatalf("envelope=%+v", e)
	}
}

func TestGenerateReturnsOutcome(t *testing.T) {
	p := mock.New(mock.Reply{Text: goodText(t)}, mock.Reply{Text: goodText(t)})
	rec := do(newRouter(p), http.MethodPost, "/api/plans/generate", body(t, gin.H{"questionnaire": plantest.Questionnaire()}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var out generator.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Plan == nil || len(out.Plan.Days) != 4 || !out.Refined {
		t.Fatalf("outcome=%+v", out)
	}
	if out.Trace[len(out.Trace)-1] != generator.StateDone {
		t.Fatalf("trace=%v", out.Trace)
	}
}

func TestGenerateProviderErrorEnvelope(t *testing.T) {
	p := mock.New(mock.Reply{Err: apierr.Provider("rate_limited", errors.New("429"))})
	rec := do(newRouter(p), http.MethodPost, "/api/plans/generate", body(t, gin.H{"questionnaire": plantest.Questionnaire()}))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d", rec.Code)
	}
	e := decodeEnvelope(t, rec)
	if e.Kind != apierr.KindProvider || e.Action != apierr.ActionWait {
		t.Fatalf("envelope=%+v", e)
	}
}

func TestGenerateRejectsBadBody(t *testing.T) {
	r := newRouter(mock.New())
	rec := do(r, http.MethodPost, "/api/plans/generate", bytes.NewReader([]byte(`{"questionnaire": {"availability": {"daysPerWeek": "four"}}}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", rec.Code)
	}
	if e := decodeEnvelope(t, rec); e.Code != "invalid_field_type" {
		t.Fatalf("envelope=%+v", e)
	}
	rec = do(r, http.MethodPost, "/api/plans/generate", bytes.NewReader([]byte(`[1,2`)))
	if e := decodeEnvelope(t, rec); e.Code != "invalid_json" {
		t.Fatalf("envelope=%+v", e)
	}
}

func TestGenerateStreamTerminatesOnce(t *testing.T) {
	p := mock.New(mock.Reply{Text: goodText(t)}, mock.Reply{Text: goodText(t)})
	rec := do(newRouter(p), http.MethodPost, "/api/plans/generate/stream", body(t, gin.H{"questionnaire": plantest.Questionnaire()}))
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content-type=%q", ct)
	}
	events := parseSSE(t, rec.Body.String())
	if len(events) < 4 {
		t.Fatalf("events=%d body=%s", len(events), rec.Body.String())
	}
	terminal := 0
	last := -1
	for _, e := range events {
		if e.name != e.ev.Type {
			t.Fatalf("event name %q != type %q", e.name, e.ev.Type)
		}
		if e.ev.Progress < last {
			t.Fatalf("progress went backwards")
		}
		last = e.ev.Progress
		if e.ev.Type != progress.TypeProgress {
			terminal++
		}
	}
	end := events[len(events)-1].ev
	if terminal != 1 || end.Type != progress.TypeComplete || end.Progress != 100 {
		t.Fatalf("terminal=%d end=%+v", terminal, end)
	}
	if !strings.Contains(rec.Body.String(), "Drafting your plan") {
		t.Fatalf("expected state message in stream")
	}
}

func TestGenerateStreamError(t *testing.T) {
	p := mock.New(mock.Reply{Text: "not json"}, mock.Reply{Text: "still not json"})
	rec := do(newRouter(p), http.MethodPost, "/api/plans/generate/stream", body(t, gin.H{"questionnaire": plantest.Questionnaire()}))
	events := parseSSE(t, rec.Body.String())
	end := events[len(events)-1].ev
	if end.Type != progress.TypeError || end.Error == nil || end.Error.Kind != apierr.KindParse {
		t.Fatalf("end=%+v", end)
	}
}

func TestStageThenStreamOnce(t *testing.T) {
	p := mock.New(mock.Reply{Text: goodText(t)}, mock.Reply{Text: goodText(t)})
	r := newRouter(p)
	rec := do(r, http.MethodPost, "/api/plans/stage", body(t, gin.H{"questionnaire": plantest.Questionnaire()}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var staged struct {
		Key       string `json:"key"`
		ExpiresIn int    `json:"expiresIn"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &staged); err != nil || staged.Key == "" || staged.ExpiresIn != 60 {
		t.Fatalf("staged=%+v err=%v", staged, err)
	}

	rec = do(r, http.MethodGet, "/api/plans/stream?stage="+staged.Key, nil)
	events := parseSSE(t, rec.Body.String())
	if end := events[len(events)-1].ev; end.Type != progress.TypeComplete {
		t.Fatalf("first stream end=%+v", end)
	}

	rec = do(r, http.MethodGet, "/api/plans/stream?stage="+staged.Key, nil)
	events = parseSSE(t, rec.Body.String())
	if len(events) != 1 {
		t.Fatalf("expected a single error event, got %d", len(events))
	}
	end := events[0].ev
	if end.Type != progress.TypeError || end.Error.Code != "stage_not_found" || end.Error.Action != apierr.ActionStartOver {
		t.Fatalf("second stream end=%+v", end)
	}
}

func TestStreamStagedRequiresKey(t *testing.T) {
	rec := do(newRouter(mock.New()), http.MethodGet, "/api/plans/stream", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestFallbackPlan(t *testing.T) {
	q := plantest.Questionnaire()
	q.Availability.DaysPerWeek = 3
	rec := do(newRouter(mock.New()), http.MethodPost, "/api/plans/fallback", body(t, gin.H{"questionnaire": q}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Plan plan.GeneratedPlan `json:"plan"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Plan.Days) != 3 {
		t.Fatalf("days=%d", len(out.Plan.Days))
	}
}

func TestExportWorkbook(t *testing.T) {
	rec := do(newRouter(mock.New()), http.MethodPost, "/api/plans/export", body(t, gin.H{"plan": plantest.UpperLower()}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Fatalf("content-disposition=%q", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 2 {
		t.Fatalf("sheets=%v", sheets)
	}

	rec = do(newRouter(mock.New()), http.MethodPost, "/api/plans/export", body(t, gin.H{"plan": plan.GeneratedPlan{}}))
	if e := decodeEnvelope(t, rec); e.Code != "plan_missing" {
		t.Fatalf("envelope=%+v", e)
	}
}
