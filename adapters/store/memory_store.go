package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/walletlink/ports"
)

// MemoryStore is an in-memory implementation of the Store interface
type MemoryStore struct {
	consumed map[string]time.Time
	mu       sync.Mutex
	now      func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() ports.Store {
	return &MemoryStore{
		consumed: make(map[string]time.Time),
		now:      time.Now,
	}
}

// MarkConsumed records key until ttl elapses
func (s *MemoryStore) MarkConsumed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	if _, exists := s.consumed[key]; exists {
		return false, nil
	}
	s.consumed[key] = now.Add(ttl)
	return true, nil
}

// IsConsumed checks if key was recorded and has not expired
func (s *MemoryStore) IsConsumed(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiryTime, exists := s.consumed[key]
	if !exists {
		return false, nil
	}
	return s.now().Before(expiryTime), nil
}

// evictExpired drops expired keys; callers hold the lock
func (s *MemoryStore) evictExpired(now time.Time) {
	for key, expiryTime := range s.consumed {
		if !now.Before(expiryTime) {
			delete(s.consumed, key)
		}
	}
}
