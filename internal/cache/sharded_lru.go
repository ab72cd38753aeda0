package cache

import (
	"context"
	"hash/maphash"
	"sync"

	"github.com/hupe1980/assetkit/resource"
)

const numShards = 64

// ShardedLRUCache is a sharded LRU cache for high-concurrency workloads.
// It distributes entries across 64 shards to reduce lock contention.
type ShardedLRUCache struct {
	shards [numShards]*LRUCache
	seed   maphash.Seed
}

// NewShardedLRUCache creates a new sharded LRU cache.
// The capacity is divided evenly across all shards.
func NewShardedLRUCache(capacity int64, rc *resource.Controller) *ShardedLRUCache {
	shardCapacity := max(capacity/numShards, 1)

	s := &ShardedLRUCache{seed: maphash.MakeSeed()}
	for i := range numShards {
		s.shards[i] = NewLRUCache(shardCapacity, rc)
	}
	return s
}

func (s *ShardedLRUCache) shard(key string) *LRUCache {
	return s.shards[maphash.String(s.seed, key)%numShards]
}

// Get returns cached bytes.
func (s *ShardedLRUCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return s.shard(key).Get(ctx, key)
}

// Set caches bytes.
func (s *ShardedLRUCache) Set(ctx context.Context, key string, b []byte) {
	s.shard(key).Set(ctx, key, b)
}

// Invalidate removes entries matching the predicate.
// This visits all shards, which is expensive but rare.
func (s *ShardedLRUCache) Invalidate(predicate func(key string) bool) {
	var wg sync.WaitGroup
	wg.Add(numShards)

	for i := range numShards {
		go func(shard *LRUCache) {
			defer wg.Done()
			shard.Invalidate(predicate)
		}(s.shards[i])
	}

	wg.Wait()
}

// Close closes all shards.
func (s *ShardedLRUCache) Close() error {
	for i := range numShards {
		if err := s.shards[i].Close(); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns aggregated hit/miss statistics.
func (s *ShardedLRUCache) Stats() (hits, misses int64) {
	for i := range numShards {
		h, m := s.shards[i].Stats()
		hits += h
		misses += m
	}
	return hits, misses
}

// Size returns the total size across all shards.
func (s *ShardedLRUCache) Size() int64 {
	var total int64
	for i := range numShards {
		total += s.shards[i].Size()
	}
	return total
}

// Len returns the total number of entries across all shards.
func (s *ShardedLRUCache) Len() int {
	var total int
	for i := range numShards {
		total += s.shards[i].Len()
	}
	return total
}
