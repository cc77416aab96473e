package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/liftplan-backend/internal/config"
	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/fallback"
	"github.com/yungbote/liftplan-backend/internal/llm"
	"github.com/yungbote/liftplan-backend/internal/llm/mock"
	"github.com/yungbote/liftplan-backend/internal/observability"
	"github.com/yungbote/liftplan-backend/internal/platform/gcp"
	"github.com/yungbote/liftplan-backend/internal/platform/gemini"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
	"github.com/yungbote/liftplan-backend/internal/platform/openai"
	"github.com/yungbote/liftplan-backend/internal/staging"
)

type Clients struct {
	Provider  llm.Provider
	Staging   staging.Store
	Knowledge *gcp.Bucket

	redis *staging.RedisStore
}

func (c Clients) Close() error {
	var err error
	if c.redis != nil {
		err = c.redis.Close()
	}
	if c.Knowledge != nil {
		if cerr := c.Knowledge.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func wireClients(ctx context.Context, log *logger.Logger, cfg config.Config, m *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// LLM
	provider, err := newProvider(ctx, log, cfg)
	if err != nil {
		return out, err
	}
	out.Provider = llm.Instrument(provider, m)

	// Staging
	if addr := strings.TrimSpace(cfg.Redis.Addr); addr != "" {
		rs, err := staging.NewRedisStore(ctx, log, staging.RedisOptions{
			Addr:     addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   "liftplan:stage:",
			TTL:      cfg.Redis.StagingTTL,
		})
		if err != nil {
			return out, fmt.Errorf("init redis staging: %w", err)
		}
		out.redis = rs
		out.Staging = rs
	} else {
		out.Staging = staging.NewMemoryStore(cfg.Redis.StagingTTL)
	}

	// Gcs
	if bucket := strings.TrimSpace(cfg.Knowledge.GCSBucket); bucket != "" {
		storageCfg, err := gcp.ResolveObjectStorageConfig(cfg.Knowledge.StorageMode, cfg.Knowledge.EmulatorHost)
		if err != nil {
			_ = out.Close()
			return out, fmt.Errorf("knowledge storage config: %w", err)
		}
		b, err := gcp.NewBucket(ctx, log, bucket, storageCfg)
		if err != nil {
			_ = out.Close()
			return out, fmt.Errorf("init knowledge bucket: %w", err)
		}
		out.Knowledge = b
	}
	return out, nil
}

func newProvider(ctx context.Context, log *logger.Logger, cfg config.Config) (llm.Provider, error) {
	switch cfg.LLM.Provider {
	case "openai":
		c, err := openai.New(log, openai.Config{
			APIKey:     cfg.OpenAI.APIKey,
			BaseURL:    cfg.OpenAI.BaseURL,
			Model:      cfg.LLM.Model,
			Timeout:    cfg.OpenAI.Timeout,
			MaxRetries: cfg.OpenAI.MaxRetries,
		})
		if err != nil {
			return nil, fmt.Errorf("init openai client: %w", err)
		}
		return c, nil
	case "gemini":
		c, err := gemini.New(ctx, log, gemini.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.LLM.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		return c, nil
	case "mock":
		log.Warn("Using offline mock provider; every draft is the template plan")
		return offlineProvider()
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
}

// offlineProvider answers every call with a template plan so the service can
// run without credentials.
func offlineProvider() (llm.Provider, error) {
	var q plan.Questionnaire
	q.Availability.DaysPerWeek = 3
	q.Availability.SessionDuration = 60
	q.Equipment.GymAccess = true
	sample := fallback.Generate(q)
	raw, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("encode offline plan: %w", err)
	}
	return mock.Fixed(string(raw)), nil
}
