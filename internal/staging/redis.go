package staging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

type RedisStore struct {
	log    *logger.Logger
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces stage keys; defaults to "liftplan:stage:".
	Prefix string
	TTL    time.Duration
}

func NewRedisStore(ctx context.Context, log *logger.Logger, opts RedisOptions) (*RedisStore, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	prefix := opts.Prefix
	if strings.TrimSpace(prefix) == "" {
		prefix = "liftplan:stage:"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{
		log:    logger.OrNop(log).With("service", "RedisStageStore"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (s *RedisStore) TTL() time.Duration { return s.ttl }

func (s *RedisStore) Put(ctx context.Context, p Payload) (string, error) {
	raw, err := encode(p)
	if err != nil {
		return "", err
	}
	key := newKey()
	if err := s.rdb.Set(ctx, s.prefix+key, raw, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set: %w", err)
	}
	return key, nil
}

func (s *RedisStore) Take(ctx context.Context, key string) (Payload, error) {
	raw, err := s.rdb.GetDel(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Payload{}, NotFound(key)
	}
	if err != nil {
		s.log.Warn("stage take failed", "key", key, "error", err)
		return Payload{}, fmt.Errorf("redis getdel: %w", err)
	}
	return decode(raw)
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
