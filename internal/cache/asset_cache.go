package cache

import (
	"io"
	"sort"
	"sync"
)

// AssetOptions configures an AssetCache.
type AssetOptions struct {
	// OnEvict is called for every value removed by Unload or UnloadAll,
	// before the value is closed.
	OnEvict func(key string, value any)
	// OnCloseError receives errors returned by closing an evicted value.
	OnCloseError func(key string, err error)
}

// AssetCache maps asset names to decoded values with at most one fill per name
// in flight. Values implementing io.Closer are closed when removed.
type AssetCache struct {
	lockers *lockerTable

	mu      sync.RWMutex
	entries map[string]any

	opts AssetOptions
}

// NewAssetCache creates an empty AssetCache.
func NewAssetCache(opts AssetOptions) *AssetCache {
	return &AssetCache{
		lockers: newLockerTable(),
		entries: make(map[string]any),
		opts:    opts,
	}
}

// Load returns the value cached under key, calling fill to produce it on a miss.
// Concurrent Loads of the same key wait for the first fill and then observe its
// result; a failed fill stores nothing and the next Load retries.
func (c *AssetCache) Load(key string, fill func() (any, error)) (value any, hit bool, err error) {
	l := c.lockers.lock(key)
	defer l.mu.Unlock()

	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return v, true, nil
	}

	v, err = fill()
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()

	return v, false, nil
}

// Unload removes key and its locker and disposes the cached value.
// It returns false if no value is cached under key. The locker of a key whose
// loads only failed stays in the table.
func (c *AssetCache) Unload(key string) bool {
	l, ok := c.lockers.lockExisting(key)
	if !ok {
		return false
	}
	defer l.mu.Unlock()

	c.mu.Lock()
	v, had := c.entries[key]
	if !had {
		c.mu.Unlock()
		return false
	}
	delete(c.entries, key)
	c.mu.Unlock()

	c.lockers.remove(key, l)
	c.dispose(key, v)
	return true
}

// UnloadAll disposes every cached value and clears the cache and locker table.
//
// UnloadAll takes no per-name lockers. It must not run concurrently with Load or
// Unload; callers serialize it externally.
func (c *AssetCache) UnloadAll() int {
	c.mu.Lock()
	entries := c.entries
	c.entries = make(map[string]any)
	c.mu.Unlock()

	c.lockers.reset()

	for key, v := range entries {
		c.dispose(key, v)
	}
	return len(entries)
}

// Get returns the cached value for key without taking its locker.
func (c *AssetCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Contains reports whether key is cached.
func (c *AssetCache) Contains(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Len returns the number of cached values.
func (c *AssetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached keys in sorted order.
func (c *AssetCache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Lockers returns the number of lockers in the table.
func (c *AssetCache) Lockers() int {
	return c.lockers.len()
}

func (c *AssetCache) dispose(key string, v any) {
	if c.opts.OnEvict != nil {
		c.opts.OnEvict(key, v)
	}
	closer, ok := v.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil && c.opts.OnCloseError != nil {
		c.opts.OnCloseError(key, err)
	}
}
