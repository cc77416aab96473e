package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/liftplan-backend/internal/config"
	"github.com/yungbote/liftplan-backend/internal/generator"
	"github.com/yungbote/liftplan-backend/internal/knowledge"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
	"github.com/yungbote/liftplan-backend/internal/staging"
)

type Services struct {
	Knowledge *knowledge.Store
	Staging   staging.Store
	Generator *generator.Generator
}

func wireServices(ctx context.Context, log *logger.Logger, cfg config.Config, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	base, err := loadKnowledge(ctx, cfg, clients)
	if err != nil {
		return Services{}, err
	}
	log.Info("Knowledge base loaded", "blocks", base.Len())
	kb := knowledge.NewStore(base)

	gcfg := generator.DefaultConfig()
	gcfg.Model = cfg.LLM.Model
	gcfg.MaxOutputTokens = cfg.LLM.MaxOutputTokens
	gcfg.DraftTemperature = cfg.LLM.DraftTemperature
	gcfg.RetryTemperature = cfg.LLM.RetryTemperature
	gcfg.RepairTemperature = cfg.LLM.RepairTemperature
	gcfg.RefineTemperature = cfg.LLM.RefineTemperature
	gcfg.KnowledgeBudget = cfg.Knowledge.CharBudget
	gcfg.SkipRefine = cfg.LLM.SkipRefine
	gcfg.FallbackOnProviderError = cfg.LLM.FallbackOnProviderError

	return Services{
		Knowledge: kb,
		Staging:   clients.Staging,
		Generator: generator.New(log, clients.Provider, kb, gcfg),
	}, nil
}

// loadKnowledge prefers a bucket, then a directory, then the embedded base.
func loadKnowledge(ctx context.Context, cfg config.Config, clients Clients) (*knowledge.Base, error) {
	switch {
	case clients.Knowledge != nil:
		base, err := knowledge.LoadObjects(ctx, clients.Knowledge, cfg.Knowledge.GCSPrefix)
		if err != nil {
			return nil, fmt.Errorf("load knowledge from bucket: %w", err)
		}
		return base, nil
	case strings.TrimSpace(cfg.Knowledge.Dir) != "":
		base, err := knowledge.LoadDir(cfg.Knowledge.Dir)
		if err != nil {
			return nil, fmt.Errorf("load knowledge dir: %w", err)
		}
		return base, nil
	}
	base, err := knowledge.Default()
	if err != nil {
		return nil, fmt.Errorf("load embedded knowledge: %w", err)
	}
	return base, nil
}

func (s Services) startKnowledgeWatch(ctx context.Context, log *logger.Logger, cfg config.Config) {
	dir := strings.TrimSpace(cfg.Knowledge.Dir)
	if !cfg.Knowledge.Watch || dir == "" || s.Knowledge == nil {
		return
	}
	go func() {
		if err := knowledge.Watch(ctx, dir, s.Knowledge, log, 500*time.Millisecond); err != nil {
			log.Error("knowledge watcher stopped", "error", err)
		}
	}()
}
