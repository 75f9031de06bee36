package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store used when Redis is not configured, and in
// tests. Backed by go-cache, which handles per-entry expiry and janitor sweeps.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore creates an in-process cache with the given default TTL.
func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &MemoryStore{
		c: gocache.New(defaultTTL, 10*time.Minute),
	}
}

// Get returns the cached value and whether it was present.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set stores a value with the given TTL.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	s.c.Set(key, value, ttl)
	return nil
}

// Delete removes a single key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}

// DeletePrefix removes every key beginning with prefix.
func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	for k := range s.c.Items() {
		if strings.HasPrefix(k, prefix) {
			s.c.Delete(k)
		}
	}
	return nil
}

// Flush clears all entries.
func (s *MemoryStore) Flush(_ context.Context) error {
	s.c.Flush()
	return nil
}
