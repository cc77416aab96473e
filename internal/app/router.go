package app

import (
	"github.com/yungbote/liftplan-backend/internal/config"
	httpserver "github.com/yungbote/liftplan-backend/internal/http"
	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg config.Config, m *observability.Metrics, handlers Handlers) httpserver.RouterConfig {
	return httpserver.RouterConfig{
		Log:             log,
		Metrics:         m,
		ServiceName:     cfg.Otel.ServiceName,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		MaxRequestBytes: cfg.HTTP.MaxRequestBytes,
		RequestTimeout:  cfg.HTTP.RequestTimeout,
		PlanHandler:     handlers.Plan,
		HealthHandler:   handlers.Health,
	}
}
