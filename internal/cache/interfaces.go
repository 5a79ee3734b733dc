package cache

import (
	"context"
	"time"
)

// DefaultTTL is the expiry applied when Set is called without one.
const DefaultTTL = 5 * time.Minute

// Store defines the key-value operations the lookup layer needs.
// Memory store is for development/testing, Redis store for production.
type Store interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A ttl <= 0 applies the store's default expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Ping checks connectivity to the backing store.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

// Common cache errors
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)

// resolveTTL picks the effective expiry for a Set call.
func resolveTTL(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultTTL
}
