package tokenstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the fallback when no Redis address is configured, and the
// store used by tests. Entries are dropped lazily on lookup once expired.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(s.revoked, token)
		return false, nil
	}
	return true, nil
}
