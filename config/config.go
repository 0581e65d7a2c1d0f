// Package config loads process-level settings from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries the process-level settings: where the document store
// lives, which cache backend to use and the TTL windows for each cached
// read family.
type Config struct {
	// StoreDriver selects the document store: "sqlite" or "memory".
	StoreDriver string

	// StoreDSN is the SQLite DSN, typically a file path.
	StoreDSN string

	// CacheBackend selects the cache store: "memory" or "sturdyc".
	CacheBackend string

	CacheCapacity   int
	CacheTTL        time.Duration
	CleanupInterval time.Duration

	PostTTL   time.Duration
	ListTTL   time.Duration
	SearchTTL time.Duration

	PostsCollection    string
	ManifestCollection string
	ManifestDocID      string
}

// Load reads configuration from the environment, after loading a .env
// file when one is present. Missing variables fall back to defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	return Config{
		StoreDriver:        getEnv("COMICFLIX_STORE_DRIVER", "sqlite"),
		StoreDSN:           getEnv("COMICFLIX_STORE_DSN", "comicflix.db"),
		CacheBackend:       getEnv("COMICFLIX_CACHE_BACKEND", "memory"),
		CacheCapacity:      getEnvInt("COMICFLIX_CACHE_CAPACITY", 100),
		CacheTTL:           getEnvDuration("COMICFLIX_CACHE_TTL", 5*time.Minute),
		CleanupInterval:    getEnvDuration("COMICFLIX_CACHE_SWEEP", time.Minute),
		PostTTL:            getEnvDuration("COMICFLIX_POST_TTL", 10*time.Minute),
		ListTTL:            getEnvDuration("COMICFLIX_LIST_TTL", 5*time.Minute),
		SearchTTL:          getEnvDuration("COMICFLIX_SEARCH_TTL", 3*time.Minute),
		PostsCollection:    getEnv("COMICFLIX_POSTS_COLLECTION", "blogs"),
		ManifestCollection: getEnv("COMICFLIX_MANIFEST_COLLECTION", "contenido"),
		ManifestDocID:      getEnv("COMICFLIX_MANIFEST_DOC", "comics-manifest"),
	}
}

// Validate checks the values that have no safe fallback.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("config: unknown store driver %q", c.StoreDriver)
	}

	switch c.CacheBackend {
	case "memory", "sturdyc":
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.CacheBackend)
	}

	if c.StoreDriver == "sqlite" && c.StoreDSN == "" {
		return fmt.Errorf("config: sqlite driver requires a DSN")
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("config: cache capacity must be positive")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("config: cache TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer in environment, using default")
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid duration in environment, using default")
		return fallback
	}
	return d
}
