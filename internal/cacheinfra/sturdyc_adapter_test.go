package cacheinfra

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SturdycStore {
	t.Helper()

	store, err := NewSturdycStore(DefaultConfig())
	if err != nil {
		t.Fatalf("NewSturdycStore failed: %v", err)
	}
	return store
}

func TestSturdycStoreSetGet(t *testing.T) {
	store := newTestStore(t)

	store.Set("post:one-piece-1", "value", time.Minute)

	v, ok := store.Get("post:one-piece-1")
	if !ok || v.(string) != "value" {
		t.Errorf("Get = %v, %v", v, ok)
	}
	if _, ok := store.Get("missing"); ok {
		t.Error("missing key reported present")
	}
	if !store.Has("post:one-piece-1") {
		t.Error("Has should report the entry")
	}
}

func TestSturdycStoreDelete(t *testing.T) {
	store := newTestStore(t)

	store.Set("k", 1, 0)
	store.Delete("k")

	if store.Has("k") {
		t.Error("entry should be gone")
	}
}

func TestSturdycStoreDeletePattern(t *testing.T) {
	store := newTestStore(t)

	store.Set("posts:all", 1, 0)
	store.Set("posts:tag:action", 2, 0)
	store.Set("posts:tag:sci-fi/fantasy", 3, 0)
	store.Set("post:one-piece-1", 4, 0)

	store.DeletePattern("posts:*")

	if store.Has("posts:all") || store.Has("posts:tag:action") || store.Has("posts:tag:sci-fi/fantasy") {
		t.Error("posts:* entries should be gone")
	}
	if !store.Has("post:one-piece-1") {
		t.Error("post:* entry should survive")
	}
}

func TestSturdycStoreClear(t *testing.T) {
	store := newTestStore(t)

	store.Set("a", 1, 0)
	store.Set("b", 2, 0)
	store.Clear()

	if store.Has("a") || store.Has("b") {
		t.Error("Clear should remove every entry")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capacity", func(c *Config) { c.Capacity = 0 }},
		{"zero shards", func(c *Config) { c.NumShards = 0 }},
		{"zero ttl", func(c *Config) { c.TTL = 0 }},
		{"bad eviction percentage", func(c *Config) { c.EvictionPercentage = 0 }},
		{"negative interval", func(c *Config) { c.EvictionInterval = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewSturdycStore(cfg); err == nil {
				t.Error("expected a config error")
			}
		})
	}
}
