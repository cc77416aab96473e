// Package app assembles the service from configuration: clients, knowledge,
// staging, the generator and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/liftplan-backend/internal/config"
	"github.com/yungbote/liftplan-backend/internal/generator"
	httpserver "github.com/yungbote/liftplan-backend/internal/http"
	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

// Version is stamped at build time.
var Version = "dev"

type App struct {
	Log       *logger.Logger
	Cfg       config.Config
	Metrics   *observability.Metrics
	Clients   Clients
	Services  Services
	Server    *httpserver.Server
	Generator *generator.Generator

	otelShutdown func(context.Context) error
	closers      []func() error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a := &App{Log: log, Cfg: cfg}

	a.otelShutdown = observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Env,
		Version:     Version,
		Endpoint:    cfg.Otel.Endpoint,
		SampleRatio: cfg.Otel.SampleRatio,
		Insecure:    cfg.Otel.Insecure,
		Headers:     cfg.Otel.Headers,
	})
	a.Metrics = observability.InitMetrics(cfg.Metrics.Enabled)

	clients, err := wireClients(ctx, log, cfg, a.Metrics)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Clients = clients
	a.closers = append(a.closers, clients.Close)

	services, err := wireServices(ctx, log, cfg, clients)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Services = services
	a.Generator = services.Generator

	handlers := wireHandlers(log, cfg, services)
	a.Server = httpserver.NewServer(wireRouter(log, cfg, a.Metrics, handlers))
	return a, nil
}

// Start launches background work tied to ctx.
func (a *App) Start(ctx context.Context) {
	if a == nil {
		return
	}
	a.Services.startKnowledgeWatch(ctx, a.Log, a.Cfg)
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Start(ctx)
	return a.Server.Run(ctx, a.Cfg.HTTP.Addr, a.Cfg.HTTP.ShutdownTimeout)
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if a.otelShutdown != nil {
		sctx, cancel := context.WithTimeout(context.Background(), a.Cfg.HTTP.ShutdownTimeout)
		if err := a.otelShutdown(sctx); err != nil {
			errs = append(errs, fmt.Errorf("otel shutdown: %w", err))
		}
		cancel()
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return errors.Join(errs...)
}
