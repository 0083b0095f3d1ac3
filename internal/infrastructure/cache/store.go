package cache

import (
	"context"
	"encoding/json"
	"time"

	"clinic-portal/pkg/metrics"

	gocache "github.com/patrickmn/go-cache"
)

// Store is a TTL key/value cache for reference data and login roles.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Backend() string
}

// MemoryStore is the in-process Store used when Redis is disabled. Values
// are stored JSON-encoded so callers never share mutable state.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(defaultTTL, cleanupInterval)}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(v.([]byte), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.cache.Set(key, raw, ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.cache.Delete(k)
	}
	return nil
}

func (s *MemoryStore) Backend() string { return "memory" }

// Instrumented counts hits and misses of the wrapped store.
type Instrumented struct {
	Store
	metrics *metrics.Metrics
}

func NewInstrumented(store Store, m *metrics.Metrics) Store {
	if m == nil {
		return store
	}
	return &Instrumented{Store: store, metrics: m}
}

func (s *Instrumented) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	found, err := s.Store.Get(ctx, key, dest)
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case found:
		result = "hit"
	}
	s.metrics.CacheOperations.WithLabelValues(s.Store.Backend(), result).Inc()
	return found, err
}
