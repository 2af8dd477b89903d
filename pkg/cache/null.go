package cache

import (
	"context"
	"sync/atomic"
	"time"
)

// NullCache keeps nothing: every lookup misses and every write is dropped.
// The runner falls back to it when no backend is configured, and the CLI
// uses it for --no-cache. Canceled contexts are still reported so callers
// see the same errors as with a real backend.
type NullCache struct {
	lookups atomic.Int64
}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	c.lookups.Add(1)
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, _ string, _ []byte, _ time.Duration) error {
	return ctx.Err()
}

func (c *NullCache) Delete(ctx context.Context, _ string) error {
	return ctx.Err()
}

func (c *NullCache) Close() error { return nil }

// Lookups reports how many Get calls missed, which for a NullCache is all of
// them.
func (c *NullCache) Lookups() int64 { return c.lookups.Load() }

var _ Cache = (*NullCache)(nil)
