// Package cache holds the two caches behind the content manager.
//
// # Asset Cache
//
// AssetCache maps folded asset names to decoded values. Every operation on a
// name first takes that name's locker, then the short map lock. Loads of
// different names run in parallel; concurrent loads of one name collapse into a
// single fill while the other callers wait and then observe the cached value.
//
// Lockers live in a 64-way sharded table. A locker is created on the first
// load of a name and removed only by Unload of that name (or UnloadAll), so the
// table grows with the number of distinct names ever loaded and not unloaded.
//
// # Bytes Cache
//
// ShardedLRUCache keeps raw resolved bytes keyed by resolve path so that
// remote resolvers are not hit again after an asset is unloaded and reloaded.
//   - maphash shard selection
//   - Per-shard mutex for minimal contention
//   - Optional resource.Controller accounting against a memory limit
package cache
