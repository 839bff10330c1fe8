// Package cache provides byte-level caching for taskmap results.
//
// The pipeline caches task analyses keyed by the content fingerprint of the
// task list. Layouts and rendered artifacts are never cached: they are cheap
// to recompute and an unseeded layout is not a pure function of its input.
//
// # Backends
//
//   - [FileCache]: one JSON envelope per key under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// All backends honor a per-entry TTL; zero means no expiry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-level key/value store with expiry.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}
