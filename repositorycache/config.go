package repositorycache

import "time"

// Config sets the per-operation TTLs the decorators use.
type Config struct {
	// PostTTL covers individual post lookups.
	PostTTL time.Duration

	// ListTTL covers list reads: all posts, by tag, paginated pages.
	ListTTL time.Duration

	// SearchTTL covers search results and suggestions. Shorter than the
	// others: search output is the most sensitive to new content.
	SearchTTL time.Duration
}

// DefaultConfig returns the TTLs the decorators ship with.
func DefaultConfig() Config {
	return Config{
		PostTTL:   10 * time.Minute,
		ListTTL:   5 * time.Minute,
		SearchTTL: 3 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PostTTL <= 0 {
		c.PostTTL = d.PostTTL
	}
	if c.ListTTL <= 0 {
		c.ListTTL = d.ListTTL
	}
	if c.SearchTTL <= 0 {
		c.SearchTTL = d.SearchTTL
	}
	return c
}
