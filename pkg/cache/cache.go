// Package cache provides byte-level caching for expensive pipeline stages.
//
// The cache stores opaque byte payloads under string keys. docreel uses it to
// keep generated word-cloud layouts between runs so that re-rendering a frame
// sequence does not regenerate every layout from scratch. Composite page
// previews are intentionally NOT stored here: they are persisted as plain
// image files at the configured output location with a skip-if-exists policy,
// so that users can inspect and reuse them directly.
//
// Two implementations are provided:
//   - FileCache: stores entries as files under a directory (CLI default)
//   - NullCache: no-op cache for tests or --no-cache runs
package cache

import (
	"context"
	"time"
)

// TTL values for cached pipeline artifacts.
const (
	// TTLLayout is the lifetime of cached word-cloud layouts. Layouts are
	// deterministic for a given frequency table, so a long TTL is safe.
	TTLLayout = 30 * 24 * time.Hour
)

// Cache is the interface for byte-level caching.
// Implementations must be safe for use by a single goroutine; the pipeline
// is sequential by design and never shares a cache across goroutines.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
