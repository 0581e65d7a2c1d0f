// Package cache defines the key/value cache contract used by the
// repository decorators, plus the default in-memory implementation.
//
// # Overview
//
// The package exports one interface and one implementation:
//
//   - Store: Get/Set/Delete plus glob-pattern invalidation and Clear
//   - MemoryStore: a bounded map with per-entry TTLs, FIFO eviction and
//     a background expiry sweep
//
// Values are held by reference, not serialized: callers should store
// immutable snapshots (or copies) of whatever they cache.
//
// # Basic Usage
//
//	store, err := cache.NewMemoryStore(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer store.Stop()
//
//	store.Set("post:one-piece-1", post, 10*time.Minute)
//	if v, ok := store.Get("post:one-piece-1"); ok {
//		post := v.(catalog.Post)
//		_ = post
//	}
//
// # Pattern Invalidation
//
// DeletePattern takes a glob with * and ? wildcards, anchored to the
// full key. With the colon-delimited key scheme the decorators use,
// "posts:*" drops every list entry while leaving "post:<slug>" entries
// untouched.
//
// # Alternate Backends
//
// Anything satisfying Store can replace MemoryStore; the module ships a
// sturdyc-backed variant whose client-wide TTL trades per-entry expiry
// for sharding and batched eviction.
package cache
