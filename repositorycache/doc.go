// Package repositorycache provides caching decorators for the post and
// manifest repositories.
//
// # Overview
//
// Both decorators follow the same discipline:
//
//   - Reads check the cache first and fall through to the base
//     repository on a miss, storing the result under a deterministic
//     key with a per-operation TTL.
//   - Writes always reach the base repository first; only a successful
//     write invalidates, dropping the specific post entry plus every
//     list, search and suggestion entry by wildcard.
//
// The cache never becomes the system of record. Flushing it at any
// point is safe and only costs the next read a trip to the base
// repository.
//
// # Key Scheme
//
// Keys are colon-delimited renderings of the operation and arguments:
//
//	post:<slug>
//	posts:all
//	posts:tag:<tag>
//	posts:paginated:<size>:<cursor|first>
//	search:<term>:<max>
//	search:tag:<tag>
//	suggestions:<term>:<max>
//
// The "posts:*", "search:*" and "suggestions:*" wildcard patterns cover
// every derived-read key, so write-path invalidation never has to
// enumerate cursors or search terms.
//
// # Basic Usage
//
//	store, _ := cache.NewMemoryStore(cache.DefaultConfig())
//	posts := repositorycache.NewCachedPostRepository(base, store, repositorycache.DefaultConfig())
//
//	post, err := posts.GetBySlug(ctx, "one-piece-1") // miss, hits base
//	post, err = posts.GetBySlug(ctx, "one-piece-1")  // hit, no base call
package repositorycache
