package cache

import (
	"context"
	"time"
)

// Store is the response-cache abstraction. Keys are literal request paths
// (including the query string); values are serialized JSON bodies.
//
// The cache is best-effort: a missed invalidation is a staleness bug, not a
// correctness one, so implementations never fail a request over a cache error.
type Store interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a single key.
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key beginning with prefix. Used by mutating
	// operations to drop a collection's list/detail entries, whatever query
	// strings they were cached under.
	DeletePrefix(ctx context.Context, prefix string) error
	// Flush clears all entries. Coarse escape hatch; not used by mutation paths.
	Flush(ctx context.Context) error
}

// DefaultTTL is the per-entry expiry used when a route doesn't configure one.
const DefaultTTL = 5 * time.Minute
