package staging

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/platform/apierr"
	"github.com/yungbote/liftplan-backend/internal/platform/logger"
)

func samplePayload() Payload {
	q := plan.Questionnaire{}
	q.Availability.DaysPerWeek = 3
	return Payload{Questionnaire: q, ExistingPlan: "Day 1: Squat"}
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	e := apierr.As(err)
	if e == nil || e.Code != "stage_not_found" || e.Action != apierr.ActionStartOver {
		t.Fatalf("unexpected api error: %+v", e)
	}
}

func TestMemoryStoreTakeOnce(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()
	key, err := s.Put(ctx, samplePayload())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Take(ctx, key)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if got.Questionnaire.Availability.DaysPerWeek != 3 || got.ExistingPlan != "Day 1: Squat" {
		t.Fatalf("payload mismatch: %+v", got)
	}
	_, err = s.Take(ctx, key)
	assertNotFound(t, err)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()
	key, _ := s.Put(ctx, samplePayload())
	other, _ := s.Put(ctx, samplePayload())
	now = now.Add(2 * time.Minute)
	_, err := s.Take(ctx, key)
	assertNotFound(t, err)

	if _, err := s.Put(ctx, samplePayload()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected expired entries to be swept, have %d", s.Len())
	}
	_, err = s.Take(ctx, other)
	assertNotFound(t, err)
}

func TestMemoryStoreConcurrentTake(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()
	key, _ := s.Put(ctx, samplePayload())

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(ctx, key); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one successful take, got %d", wins)
	}
}

func TestRedisStoreIntegration(t *testing.T) {
	addr := os.Getenv("LIFTPLAN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LIFTPLAN_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := NewRedisStore(ctx, logger.Nop(), RedisOptions{Addr: addr, Prefix: "liftplan:test:", TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer s.Close()

	key, err := s.Put(ctx, samplePayload())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Take(ctx, key)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if got.Questionnaire.Availability.DaysPerWeek != 3 {
		t.Fatalf("payload mismatch: %+v", got)
	}
	_, err = s.Take(ctx, key)
	assertNotFound(t, err)
}
