package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/liftplan-backend/internal/config"
	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
	"github.com/yungbote/liftplan-backend/internal/generator"
	"github.com/yungbote/liftplan-backend/internal/staging"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("LIFTPLAN_LLM_PROVIDER", "mock")
	t.Setenv("LIFTPLAN_LOG_MODE", "prod")
	t.Setenv("LIFTPLAN_LOG_LEVEL", "error")
	cfg, err := config.LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	a, err := NewWithConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestWiringDefaults(t *testing.T) {
	a := newTestApp(t)
	if a.Generator == nil || a.Server == nil {
		t.Fatalf("app not wired: %+v", a)
	}
	if _, ok := a.Services.Staging.(*staging.MemoryStore); !ok {
		t.Fatalf("staging=%T, want memory store without redis", a.Services.Staging)
	}
	if a.Services.Knowledge.Get().Len() == 0 {
		t.Fatalf("embedded knowledge base is empty")
	}
}

func TestServesGenerateAndHealth(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status=%d", rec.Code)
	}

	raw, err := json.Marshal(gin.H{"questionnaire": plantest.Questionnaire()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/plans/generate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status=%d body=%s", rec.Code, rec.Body.String())
	}
	var out generator.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Plan == nil || len(out.Plan.Days) == 0 {
		t.Fatalf("outcome=%+v", out)
	}

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "liftplan_") {
		t.Fatalf("metrics status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestKnowledgeDirOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{}
	cfg.Knowledge.Dir = dir
	base, err := loadKnowledge(context.Background(), cfg, Clients{})
	if err != nil {
		t.Fatalf("loadKnowledge: %v", err)
	}
	if base.Len() != 0 {
		t.Fatalf("empty dir should give an empty base, got %d blocks", base.Len())
	}
}
