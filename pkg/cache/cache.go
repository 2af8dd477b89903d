// Package cache stores layout results and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: never stores anything, used when caching is disabled
//
// # Keys
//
// Keys are built by a [Keyer] so every backend sees the same key space.
// [DefaultKeyer] hashes the diagram and the engine options into the key, so
// any change to either produces a fresh entry. [ScopedKeyer] prefixes keys
// for isolating tenants or test runs:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(diagramJSON), cache.LayoutKeyOpts{
//	    Ranker:      "sugiyama",
//	    OptionsHash: cache.Hash(optionsJSON),
//	})
package cache

import (
	"context"
	"time"
)

// Entry lifetimes.
const (
	// TTLLayout is how long a layout result stays cached.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
