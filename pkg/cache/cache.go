// Package cache stores rendered artifacts keyed by the content that
// produced them.
//
// Compiling a diagram is cheap, but PNG and PDF export shell out to
// rsvg-convert and the HTTP server recompiles the same stored diagram on
// every GET. Artifacts are keyed by a hash of the serialized diagram plus
// every option that changes the output, so a key never goes stale; TTLs
// only bound disk and memory use.
//
// # Backends
//
//   - [FileCache]: sharded JSON files, for the CLI
//   - [MemoryCache]: a bounded in-process map, for the server
//   - [NullCache]: caches nothing
//
// # Keys
//
// A [Keyer] builds keys. [DefaultKeyer] hashes its inputs; [ScopedKeyer]
// prefixes another keyer so artifacts from different shape libraries never
// collide.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value cache with expiry.
type Cache interface {
	// Get returns the cached data and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
