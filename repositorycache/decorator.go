package repositorycache

import (
	"context"

	"github.com/yeshua-aguilar/comicflix-catalog/blog"
	"github.com/yeshua-aguilar/comicflix-catalog/cache"
	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
)

var _ blog.PostRepository = (*CachedPostRepository)(nil)

// CachedPostRepository decorates a PostRepository with read-through
// caching and write-triggered invalidation. The cache is never the
// system of record: writes always reach the base repository first, and
// a cold or flushed cache only costs a second read.
type CachedPostRepository struct {
	base  blog.PostRepository
	cache cache.Store
	cfg   Config
}

// NewCachedPostRepository wraps base with store. Zero TTLs in cfg fall
// back to DefaultConfig values.
func NewCachedPostRepository(base blog.PostRepository, store cache.Store, cfg Config) *CachedPostRepository {
	return &CachedPostRepository{base: base, cache: store, cfg: cfg.withDefaults()}
}

func (c *CachedPostRepository) GetAll(ctx context.Context) ([]catalog.Post, error) {
	key := allPostsKey()
	if v, ok := c.cache.Get(key); ok {
		return v.([]catalog.Post), nil
	}

	posts, err := c.base.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, posts, c.cfg.ListTTL)
	return posts, nil
}

func (c *CachedPostRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Post, error) {
	key := postKey(slug)
	if v, ok := c.cache.Get(key); ok {
		post := v.(catalog.Post)
		return &post, nil
	}

	post, err := c.base.GetBySlug(ctx, slug)
	if err != nil || post == nil {
		// Absent posts are not cached; a create under this slug must be
		// visible immediately.
		return post, err
	}
	c.cache.Set(key, *post, c.cfg.PostTTL)
	return post, nil
}

func (c *CachedPostRepository) GetByTag(ctx context.Context, tag string) ([]catalog.Post, error) {
	key := postsByTagKey(tag)
	if v, ok := c.cache.Get(key); ok {
		return v.([]catalog.Post), nil
	}

	posts, err := c.base.GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, posts, c.cfg.ListTTL)
	return posts, nil
}

func (c *CachedPostRepository) GetPaginated(ctx context.Context, pageSize int, cursor string) (blog.Page, error) {
	if pageSize <= 0 {
		pageSize = blog.DefaultPageSize
	}

	key := paginatedKey(pageSize, cursor)
	if v, ok := c.cache.Get(key); ok {
		return v.(blog.Page), nil
	}

	page, err := c.base.GetPaginated(ctx, pageSize, cursor)
	if err != nil {
		return blog.Page{}, err
	}
	c.cache.Set(key, page, c.cfg.ListTTL)
	return page, nil
}

func (c *CachedPostRepository) Create(ctx context.Context, data catalog.CreatePostData) (string, error) {
	slug, err := c.base.Create(ctx, data)
	if err != nil {
		return "", err
	}
	c.invalidateLists()
	return slug, nil
}

func (c *CachedPostRepository) CreateWithSlug(ctx context.Context, slug string, data catalog.CreatePostData) error {
	if err := c.base.CreateWithSlug(ctx, slug, data); err != nil {
		return err
	}
	c.invalidatePost(slug)
	return nil
}

func (c *CachedPostRepository) Update(ctx context.Context, slug string, data catalog.UpdatePostData) error {
	if err := c.base.Update(ctx, slug, data); err != nil {
		return err
	}
	c.invalidatePost(slug)
	return nil
}

func (c *CachedPostRepository) Delete(ctx context.Context, slug string) error {
	if err := c.base.Delete(ctx, slug); err != nil {
		return err
	}
	c.invalidatePost(slug)
	return nil
}

// invalidateLists drops every list, search and suggestion entry: a new
// or changed post can affect any of them.
func (c *CachedPostRepository) invalidateLists() {
	c.cache.DeletePattern(postsPattern)
	c.cache.DeletePattern(searchPattern)
	c.cache.DeletePattern(suggestionsPattern)
}

func (c *CachedPostRepository) invalidatePost(slug string) {
	c.cache.Delete(postKey(slug))
	c.invalidateLists()
}
