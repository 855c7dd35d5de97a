// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [NullCache]: stores nothing; the default when caching is off
//   - [FileCache]: one JSON file per entry under the user cache directory,
//     for the CLI
//   - [RedisCache]: a shared Redis instance, for several machines rendering
//     the same records
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect
// the result, so two runs with the same record and options share entries:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(recordJSON), cache.LayoutKeyOpts{Width: 800})
//
// [ScopedKeyer] prefixes every key, e.g. to separate schema versions in a
// shared Redis.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
