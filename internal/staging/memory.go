package staging

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	raw     []byte
	expires time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, now: time.Now, entries: map[string]entry{}}
}

func (s *MemoryStore) TTL() time.Duration { return s.ttl }

func (s *MemoryStore) Put(ctx context.Context, p Payload) (string, error) {
	raw, err := encode(p)
	if err != nil {
		return "", err
	}
	key := newKey()
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	s.entries[key] = entry{raw: raw, expires: now.Add(s.ttl)}
	return key, nil
}

func (s *MemoryStore) Take(ctx context.Context, key string) (Payload, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	if !ok || !s.now().Before(e.expires) {
		return Payload{}, NotFound(key)
	}
	return decode(e.raw)
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweep drops expired entries; callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
}
