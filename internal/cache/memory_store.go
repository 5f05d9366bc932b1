package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is the in-process fallback used when no Redis address is configured.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a store whose expired entries are purged every cleanup interval.
func NewMemoryStore(defaultTTL, cleanup time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(defaultTTL, cleanup)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if v, found := s.cache.Get(key); found {
		return v.([]byte), true, nil
	}
	return nil, false, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.cache.Set(key, value, ttl)
	return nil
}
