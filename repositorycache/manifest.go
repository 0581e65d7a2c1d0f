package repositorycache

import (
	"context"

	"github.com/yeshua-aguilar/comicflix-catalog/cache"
	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/manifest"
)

var _ manifest.Repository = (*CachedManifestRepository)(nil)

// CachedManifestRepository decorates the manifest repository, caching
// its search operations. List and genre reads pass through: the
// manifest keeps its own snapshots for those.
type CachedManifestRepository struct {
	base  manifest.Repository
	cache cache.Store
	cfg   Config
}

// NewCachedManifestRepository wraps base with store. Zero TTLs in cfg
// fall back to DefaultConfig values.
func NewCachedManifestRepository(base manifest.Repository, store cache.Store, cfg Config) *CachedManifestRepository {
	return &CachedManifestRepository{base: base, cache: store, cfg: cfg.withDefaults()}
}

func (c *CachedManifestRepository) GetComicsList(ctx context.Context) ([]catalog.Post, error) {
	return c.base.GetComicsList(ctx)
}

func (c *CachedManifestRepository) GetGenresWithCounts(ctx context.Context) ([]catalog.Genre, error) {
	return c.base.GetGenresWithCounts(ctx)
}

func (c *CachedManifestRepository) UpdateManifest(ctx context.Context) error {
	if err := c.base.UpdateManifest(ctx); err != nil {
		return err
	}
	c.cache.DeletePattern(searchPattern)
	c.cache.DeletePattern(suggestionsPattern)
	return nil
}

func (c *CachedManifestRepository) InvalidateComicsListCache() {
	c.base.InvalidateComicsListCache()
}

func (c *CachedManifestRepository) InvalidateGenresCache() {
	c.base.InvalidateGenresCache()
}

func (c *CachedManifestRepository) SearchComics(ctx context.Context, term string, maxResults int) ([]catalog.Post, error) {
	key := searchKey(term, maxResults)
	if v, ok := c.cache.Get(key); ok {
		return v.([]catalog.Post), nil
	}

	results, err := c.base.SearchComics(ctx, term, maxResults)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, results, c.cfg.SearchTTL)
	return results, nil
}

func (c *CachedManifestRepository) SearchComicsByTag(ctx context.Context, tag string) ([]catalog.Post, error) {
	key := searchByTagKey(tag)
	if v, ok := c.cache.Get(key); ok {
		return v.([]catalog.Post), nil
	}

	results, err := c.base.SearchComicsByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, results, c.cfg.SearchTTL)
	return results, nil
}

func (c *CachedManifestRepository) GetSearchSuggestions(ctx context.Context, partial string, max int) ([]string, error) {
	key := suggestionsKey(partial, max)
	if v, ok := c.cache.Get(key); ok {
		return v.([]string), nil
	}

	suggestions, err := c.base.GetSearchSuggestions(ctx, partial, max)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, suggestions, c.cfg.SearchTTL)
	return suggestions, nil
}
