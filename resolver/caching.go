package resolver

import (
	"bytes"
	"context"
	"io"

	"github.com/hupe1980/assetkit/internal/cache"
	"github.com/hupe1980/assetkit/resource"
)

// Caching wraps a Resolver and keeps the bytes it resolves in a sharded LRU.
// It is meant for slow backends: an asset that is unloaded and loaded again is
// served from memory instead of the network.
type Caching struct {
	inner Resolver
	cache cache.BytesCache
}

// NewCaching creates a Caching resolver holding at most capacity bytes.
// If rc is non-nil, cached bytes count against its memory limit.
func NewCaching(inner Resolver, capacity int64, rc *resource.Controller) *Caching {
	return &Caching{
		inner: inner,
		cache: cache.NewShardedLRUCache(capacity, rc),
	}
}

// Exists reports whether path is cached or exists in the wrapped resolver.
func (c *Caching) Exists(ctx context.Context, path string) (bool, error) {
	if _, ok := c.cache.Get(ctx, path); ok {
		return true, nil
	}
	return c.inner.Exists(ctx, path)
}

// Resolve serves path from the cache, filling it from the wrapped resolver on a miss.
func (c *Caching) Resolve(ctx context.Context, path string) (io.ReadCloser, error) {
	if b, ok := c.cache.Get(ctx, path); ok {
		return io.NopCloser(bytes.NewReader(b)), nil
	}

	rc, err := c.inner.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	c.cache.Set(ctx, path, b)

	return io.NopCloser(bytes.NewReader(b)), nil
}

// Invalidate drops path from the cache.
func (c *Caching) Invalidate(path string) {
	c.cache.Invalidate(func(key string) bool { return key == path })
}

// Stats returns cache hit/miss counters.
func (c *Caching) Stats() (hits, misses int64) {
	return c.cache.Stats()
}

// Close releases the cached bytes.
func (c *Caching) Close() error {
	return c.cache.Close()
}
