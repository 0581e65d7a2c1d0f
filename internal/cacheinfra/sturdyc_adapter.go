// Package cacheinfra adapts third-party cache clients to the cache.Store
// contract.
package cacheinfra

import (
	"time"

	"github.com/viccon/sturdyc"

	"github.com/yeshua-aguilar/comicflix-catalog/cache"
)

// Config holds the configuration for the sturdyc-backed store.
type Config struct {
	// Capacity defines the maximum number of entries the cache can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent
	// access. Higher values improve concurrency but increase memory
	// overhead. Must be greater than 0.
	NumShards int

	// TTL is the client-wide time-to-live for cached entries.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when a shard reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the client checks for expired
	// entries. Zero keeps sturdyc's default interval.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "cannot be negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

var _ cache.Store = (*SturdycStore)(nil)

// SturdycStore adapts a sturdyc client to the cache.Store contract.
//
// sturdyc owns expiry and eviction, so the per-entry ttl argument of
// Set is not honored: every entry lives for the client-wide TTL.
// Callers that need per-entry expiry should use cache.MemoryStore.
//
// Version compatibility note: this assumes the sturdyc v1.x API.
type SturdycStore struct {
	client *sturdyc.Client[any]
}

// NewSturdycStore validates cfg and initializes the sturdyc client.
func NewSturdycStore(cfg Config) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		opts = append(opts, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		opts...,
	)
	return &SturdycStore{client: client}, nil
}

func (s *SturdycStore) Get(key string) (any, bool) {
	return s.client.Get(key)
}

func (s *SturdycStore) Set(key string, value any, _ time.Duration) {
	s.client.Set(key, value)
}

func (s *SturdycStore) Delete(key string) {
	s.client.Delete(key)
}

// DeletePattern scans the client's keys and deletes every match. The
// scan is linear in the number of entries, same as the memory store.
func (s *SturdycStore) DeletePattern(pattern string) {
	re := cache.CompilePattern(pattern)
	for _, key := range s.client.ScanKeys() {
		if re.MatchString(key) {
			s.client.Delete(key)
		}
	}
}

func (s *SturdycStore) Clear() {
	for _, key := range s.client.ScanKeys() {
		s.client.Delete(key)
	}
}

func (s *SturdycStore) Has(key string) bool {
	_, ok := s.client.Get(key)
	return ok
}
