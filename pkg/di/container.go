// Package di wires the catalog's components: document store, cache
// store, repositories, decorators, event bus and the use-case facade.
// Construction is explicit so tests can build and tear down isolated
// instances; nothing here is global.
package di

import (
	"context"

	"github.com/yeshua-aguilar/comicflix-catalog/blog"
	"github.com/yeshua-aguilar/comicflix-catalog/cache"
	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/config"
	"github.com/yeshua-aguilar/comicflix-catalog/docstore"
	"github.com/yeshua-aguilar/comicflix-catalog/internal/cacheinfra"
	"github.com/yeshua-aguilar/comicflix-catalog/manifest"
	"github.com/yeshua-aguilar/comicflix-catalog/repositorycache"
	"github.com/yeshua-aguilar/comicflix-catalog/usecase"
)

// Container owns every constructed component and their teardown order.
type Container struct {
	cfg      config.Config
	store    docstore.Store
	cache    cache.Store
	posts    blog.PostRepository
	manifest manifest.Repository
	bus      *catalog.Bus
	service  *usecase.Service

	closers []func() error
}

// NewContainer builds the full component graph from cfg.
func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg, bus: catalog.NewBus()}

	switch cfg.StoreDriver {
	case "memory":
		c.store = docstore.NewMemoryStore()
	default:
		bunStore, err := docstore.NewBunStore(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, err
		}
		c.store = bunStore
		c.closers = append(c.closers, bunStore.Close)
	}

	switch cfg.CacheBackend {
	case "sturdyc":
		store, err := cacheinfra.NewSturdycStore(cacheinfra.Config{
			Capacity:           cfg.CacheCapacity,
			NumShards:          16,
			TTL:                cfg.CacheTTL,
			EvictionPercentage: 10,
			EvictionInterval:   cfg.CleanupInterval,
		})
		if err != nil {
			c.Close()
			return nil, err
		}
		c.cache = store
	default:
		store, err := cache.NewMemoryStore(cache.Config{
			Capacity:        cfg.CacheCapacity,
			TTL:             cfg.CacheTTL,
			CleanupInterval: cfg.CleanupInterval,
		})
		if err != nil {
			c.Close()
			return nil, err
		}
		c.cache = store
		c.closers = append(c.closers, func() error {
			store.Stop()
			return nil
		})
	}

	ttls := repositorycache.Config{
		PostTTL:   cfg.PostTTL,
		ListTTL:   cfg.ListTTL,
		SearchTTL: cfg.SearchTTL,
	}

	base := blog.NewDocumentRepository(c.store, cfg.PostsCollection)
	c.posts = repositorycache.NewCachedPostRepository(base, c.cache, ttls)

	baseManifest := manifest.NewDocumentRepository(c.store, c.posts,
		manifest.WithLocation(cfg.ManifestCollection, cfg.ManifestDocID),
		manifest.WithTTL(cfg.ListTTL, cfg.ListTTL),
	)
	c.manifest = repositorycache.NewCachedManifestRepository(baseManifest, c.cache, ttls)

	c.service = usecase.New(c.posts, c.manifest, c.bus)
	return c, nil
}

// Service returns the use-case facade.
func (c *Container) Service() *usecase.Service { return c.service }

// Posts returns the cached post repository.
func (c *Container) Posts() blog.PostRepository { return c.posts }

// Manifest returns the cached manifest repository.
func (c *Container) Manifest() manifest.Repository { return c.manifest }

// Store returns the document store.
func (c *Container) Store() docstore.Store { return c.store }

// Cache returns the cache store.
func (c *Container) Cache() cache.Store { return c.cache }

// Bus returns the event bus.
func (c *Container) Bus() *catalog.Bus { return c.bus }

// Config returns the configuration the container was built from.
func (c *Container) Config() config.Config { return c.cfg }

// Close tears down owned components, newest first. The first failure
// wins but teardown continues.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
