package app

import (
	"github.com/yungbote/liftplan-backend/internal/config"
	httpH "github.com/yungbote/liftplan-backend/internal/http/handlers"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

type Handlers struct {
	Plan   *httpH.PlanHandler
	Health *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, cfg config.Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Plan:   httpH.NewPlanHandler(log, services.Generator, services.Staging, cfg.Progress.TickInterval),
		Health: httpH.NewHealthHandler(services.Knowledge),
	}
}
