package cache

import "time"

// NoExpiry can be passed as the ttl argument of Store.Set to keep an
// entry alive until it is deleted or evicted.
const NoExpiry time.Duration = -1

// Store is the key/value cache contract the repository decorators build
// on. Implementations must be safe for concurrent use and must treat any
// entry observed past its expiry as absent.
//
// Every operation is infallible with respect to the store itself: a
// missing entry is reported as absent, never as an error.
type Store interface {
	// Get returns the value stored under key and whether a live entry
	// was found. Expired entries count as absent.
	Get(key string) (any, bool)

	// Set stores value under key. A zero ttl applies the store-wide
	// default; a negative ttl (see NoExpiry) stores the entry without
	// expiry. Expiry is measured from insertion time.
	Set(key string, value any, ttl time.Duration)

	// Delete removes the entry under key, if any.
	Delete(key string)

	// DeletePattern removes every entry whose key matches the glob
	// pattern. Patterns support the * and ? wildcards and are anchored
	// to the full key: "posts:*" matches "posts:all" but not "post:x".
	DeletePattern(pattern string)

	// Clear removes all entries.
	Clear()

	// Has reports whether a live entry exists under key.
	Has(key string) bool
}
