package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/liftplan-backend/internal/http/handlers"
	httpMW "github.com/yungbote/liftplan-backend/internal/http/middleware"
	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	ServiceName     string
	CORSOrigins     []string
	MaxRequestBytes int64
	RequestTimeout  time.Duration

	PlanHandler   *httpH.PlanHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "liftplan"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Recovery(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	api.Use(httpMW.BodyLimit(cfg.MaxRequestBytes))
	api.Use(httpMW.Timeout(cfg.RequestTimeout))
	{
		if cfg.PlanHandler != nil {
			api.POST("/questionnaire/validate", cfg.PlanHandler.ValidateQuestionnaire)

			api.POST("/plans/generate", cfg.PlanHandler.Generate)
			api.POST("/plans/generate/stream", cfg.PlanHandler.GenerateStream)
			api.POST("/plans/stage", cfg.PlanHandler.Stage)
			api.GET("/plans/stream", cfg.PlanHandler.StreamStaged)
			api.POST("/plans/fallback", cfg.PlanHandler.Fallback)
			api.POST("/plans/export", cfg.PlanHandler.Export)
		}
	}

	return r
}
