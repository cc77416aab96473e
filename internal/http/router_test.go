package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/liftplan-backend/internal/generator"
	httpH "github.com/yungbote/liftplan-backend/internal/http/handlers"
	httpMW "github.com/yungbote/liftplan-backend/internal/http/middleware"
	"github.com/yungbote/liftplan-backend/internal/llm/mock"
	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/staging"
)

func testRouter(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gen := generator.New(nil, mock.New(), nil, generator.DefaultConfig())
	return NewRouter(RouterConfig{
		Metrics:         observability.NewMetrics(),
		MaxRequestBytes: maxBytes,
		RequestTimeout:  time.Minute,
		PlanHandler:     httpH.NewPlanHandler(nil, gen, staging.NewMemoryStore(time.Minute), time.Second),
		HealthHandler:   httpH.NewHealthHandler(nil),
	})
}

func TestRouterSetsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(1<<20).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if rec.Header().Get(httpMW.HeaderRequestID) == "" {
		t.Fatalf("missing %s header", httpMW.HeaderRequestID)
	}
}

func TestRouterRejectsOversizedBody(t *testing.T) {
	payload := `{"questionnaire":{"notes":"` + strings.Repeat("x", 256) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/plans/generate", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	testRouter(64).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "body_too_large") {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRouterServesMetrics(t *testing.T) {
	r := testRouter(1 << 20)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "liftplan_api_requests_total") {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}
