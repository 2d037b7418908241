// Package cache stores rendered diagram artifacts keyed by the content that
// produced them.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: sharded JSON files under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance for teams rendering in CI
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the schema bytes, the
// configuration bytes and the render options, so any change to the inputs
// produces a new key and stale entries simply age out.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
