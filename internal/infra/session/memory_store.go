package session

import (
	"context"
	"time"

	"cookbook/internal/domain/repository"
	"cookbook/internal/errors"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps sessions in a bounded, expiring LRU local to the process.
// Sessions do not survive a restart and are not shared between replicas.
type MemoryStore struct {
	cache *expirable.LRU[string, string]
}

var _ repository.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: expirable.NewLRU[string, string](capacity, nil, ttl)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	userID, ok := s.cache.Get(key)

	return userID, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, userID string) error {
	if key == "" || userID == "" {
		return errors.New("session: missing key or user id")
	}
	s.cache.Add(key, userID)

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Remove(key)

	return nil
}
