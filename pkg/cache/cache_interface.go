package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the key-value layer.
// Allows swapping the implementation (Redis, in-memory) and faking in tests.
type Cache interface {
	// Get reads a key and unmarshals the stored JSON blob into dest.
	// Returns: (found bool, error)
	// - found = true: hit, data unmarshaled into dest
	// - found = false: miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value as a JSON blob under key.
	// ttl = 0 means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes all keys matching a glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the connection
	Ping(ctx context.Context) error
}
