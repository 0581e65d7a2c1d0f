package cache

import (
	"fmt"
	"time"
)

// Default tuning values for the in-memory store.
const (
	DefaultCapacity        = 100
	DefaultTTL             = 5 * time.Minute
	DefaultCleanupInterval = time.Minute
)

// Config exposes the tuning knobs of the in-memory store.
type Config struct {
	// Capacity caps the number of entries. When a Set would exceed it,
	// the oldest-inserted entry is evicted first.
	Capacity int

	// TTL applies to entries stored with a zero ttl argument.
	TTL time.Duration

	// CleanupInterval sets how often the background sweep removes
	// expired entries. Zero disables the sweep; expired entries are then
	// purged lazily on lookup only.
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Capacity:        DefaultCapacity,
		TTL:             DefaultTTL,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than zero"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than zero"}
	}
	if c.CleanupInterval < 0 {
		return &ConfigError{Field: "CleanupInterval", Message: "cannot be negative"}
	}
	return nil
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cache config: %s %s", e.Field, e.Message)
}
