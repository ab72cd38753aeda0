package cache

import "context"

// BytesCache is a byte-oriented cache keyed by resolve path.
// Returned slices must be treated as read-only.
type BytesCache interface {
	// Get returns cached bytes. ok=false if missing.
	Get(ctx context.Context, key string) (b []byte, ok bool)
	// Set caches bytes. Implementations may retain b; callers must treat b as immutable.
	Set(ctx context.Context, key string, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key string) bool)
	// Close releases any resources.
	Close() error
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
}
