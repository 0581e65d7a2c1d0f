package blog

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/docstore"
)

var _ PostRepository = (*DocumentRepository)(nil)

// DocumentRepository implements PostRepository on the document store,
// translating between the canonical post shape and the legacy bilingual
// schema on every read and write.
type DocumentRepository struct {
	store      docstore.Store
	collection string
}

// NewDocumentRepository wraps store. An empty collection falls back to
// DefaultCollection.
func NewDocumentRepository(store docstore.Store, collection string) *DocumentRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &DocumentRepository{store: store, collection: collection}
}

func (r *DocumentRepository) GetAll(ctx context.Context) ([]catalog.Post, error) {
	docs, err := r.store.GetAll(ctx, r.collection)
	if err != nil {
		log.Error().Err(err).Str("collection", r.collection).Msg("post list read failed")
		return []catalog.Post{}, nil
	}
	return toPosts(docs), nil
}

func (r *DocumentRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Post, error) {
	doc, err := r.store.Get(ctx, r.collection, slug)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("post read failed")
		return nil, nil
	}

	post := ToPost(slug, doc)
	return &post, nil
}

func (r *DocumentRepository) GetByTag(ctx context.Context, tag string) ([]catalog.Post, error) {
	docs, err := r.store.QueryContains(ctx, r.collection, legacyFields["tags"], tag)
	if err != nil {
		log.Error().Err(err).Str("tag", tag).Msg("post tag query failed")
		return []catalog.Post{}, nil
	}
	return toPosts(docs), nil
}

func (r *DocumentRepository) GetPaginated(ctx context.Context, pageSize int, cursor string) (Page, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	docs, err := r.store.QueryPage(ctx, r.collection, LegacyDateField, true, pageSize, cursor)
	if err != nil {
		log.Error().Err(err).Str("cursor", cursor).Msg("post page read failed")
		return Page{Posts: []catalog.Post{}}, nil
	}

	posts := make([]catalog.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, ToPost(d.Key, d.Doc))
	}

	page := Page{Posts: posts, HasMore: len(docs) == pageSize}
	if len(docs) > 0 {
		page.Cursor = docs[len(docs)-1].Key
	}
	return page, nil
}

func (r *DocumentRepository) Create(ctx context.Context, data catalog.CreatePostData) (string, error) {
	return r.store.Add(ctx, r.collection, FromCreateData(data))
}

func (r *DocumentRepository) CreateWithSlug(ctx context.Context, slug string, data catalog.CreatePostData) error {
	return r.store.Set(ctx, r.collection, slug, FromCreateData(data))
}

func (r *DocumentRepository) Update(ctx context.Context, slug string, data catalog.UpdatePostData) error {
	fields := FromUpdateData(data)
	if len(fields) == 0 {
		return nil
	}

	err := r.store.Update(ctx, r.collection, slug, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return &catalog.NotFoundError{Entity: "post", ID: slug}
	}
	return err
}

func (r *DocumentRepository) Delete(ctx context.Context, slug string) error {
	return r.store.Delete(ctx, r.collection, slug)
}

func toPosts(docs []docstore.Keyed) []catalog.Post {
	posts := make([]catalog.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, ToPost(d.Key, d.Doc))
	}
	sortByDateDesc(posts)
	return posts
}

// sortByDateDesc orders newest first; the yyyy-mm-dd layout sorts
// lexicographically.
func sortByDateDesc(posts []catalog.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
}
