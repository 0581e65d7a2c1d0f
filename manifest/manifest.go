// Package manifest maintains the denormalized comics manifest: a single
// document carrying a copy of every post, so listing, genre counts and
// search never scan the post collection. The manifest is a projection,
// rebuilt wholesale after every mutation; the post collection stays the
// system of record.
package manifest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yeshua-aguilar/comicflix-catalog/blog"
	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/docstore"
)

// Defaults for where the manifest lives and how long its in-process
// snapshots stay fresh.
const (
	DefaultCollection = "contenido"
	DefaultDocID      = "comics-manifest"
	DefaultListTTL    = 5 * time.Minute
	DefaultGenresTTL  = 5 * time.Minute
)

// Repository is the manifest contract: list and genre reads served from
// the aggregate, relevance-ranked search on top of it, and the rebuild
// plus snapshot invalidation hooks the write paths call.
type Repository interface {
	GetComicsList(ctx context.Context) ([]catalog.Post, error)
	GetGenresWithCounts(ctx context.Context) ([]catalog.Genre, error)

	// UpdateManifest rewrites the manifest wholesale from the post
	// collection and drops the list snapshot.
	UpdateManifest(ctx context.Context) error

	InvalidateComicsListCache()
	InvalidateGenresCache()

	// SearchComics ranks the manifest's posts against term. Terms
	// shorter than two characters after trimming return no results.
	SearchComics(ctx context.Context, term string, maxResults int) ([]catalog.Post, error)

	// SearchComicsByTag returns posts with a tag containing the term,
	// case-insensitively, in manifest order.
	SearchComicsByTag(ctx context.Context, tag string) ([]catalog.Post, error)

	// GetSearchSuggestions returns matching titles first, then matching
	// tags, without duplicates.
	GetSearchSuggestions(ctx context.Context, partial string, max int) ([]string, error)
}

type snapshot[T any] struct {
	data    T
	takenAt time.Time
}

var _ Repository = (*DocumentRepository)(nil)

// DocumentRepository implements Repository on the document store,
// keeping short-lived in-process snapshots of the decoded list and the
// genre tally so repeated reads skip the store entirely.
type DocumentRepository struct {
	store      docstore.Store
	posts      blog.PostRepository
	collection string
	docID      string
	listTTL    time.Duration
	genresTTL  time.Duration
	now        func() time.Time

	mu     sync.Mutex
	list   *snapshot[[]catalog.Post]
	genres *snapshot[[]catalog.Genre]
}

// Option tweaks a DocumentRepository at construction time.
type Option func(*DocumentRepository)

// WithLocation overrides the collection and document the manifest is
// stored under. Empty values keep the defaults.
func WithLocation(collection, docID string) Option {
	return func(r *DocumentRepository) {
		if collection != "" {
			r.collection = collection
		}
		if docID != "" {
			r.docID = docID
		}
	}
}

// WithTTL overrides the snapshot lifetimes. Non-positive values keep
// the defaults.
func WithTTL(list, genres time.Duration) Option {
	return func(r *DocumentRepository) {
		if list > 0 {
			r.listTTL = list
		}
		if genres > 0 {
			r.genresTTL = genres
		}
	}
}

// WithClock overrides the snapshot clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *DocumentRepository) { r.now = now }
}

// NewDocumentRepository builds the manifest repository over store,
// rebuilding from posts on UpdateManifest.
func NewDocumentRepository(store docstore.Store, posts blog.PostRepository, opts ...Option) *DocumentRepository {
	r := &DocumentRepository{
		store:      store,
		posts:      posts,
		collection: DefaultCollection,
		docID:      DefaultDocID,
		listTTL:    DefaultListTTL,
		genresTTL:  DefaultGenresTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *DocumentRepository) GetComicsList(ctx context.Context) ([]catalog.Post, error) {
	r.mu.Lock()
	if r.list != nil && r.now().Sub(r.list.takenAt) < r.listTTL {
		cached := r.list.data
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	doc, err := r.store.Get(ctx, r.collection, r.docID)
	if errors.Is(err, docstore.ErrNotFound) {
		return []catalog.Post{}, nil
	}
	if err != nil {
		log.Error().Err(err).Str("doc", r.docID).Msg("manifest read failed")
		return []catalog.Post{}, nil
	}

	posts := decodeComics(doc)
	r.mu.Lock()
	r.list = &snapshot[[]catalog.Post]{data: posts, takenAt: r.now()}
	r.mu.Unlock()
	return posts, nil
}

func (r *DocumentRepository) GetGenresWithCounts(ctx context.Context) ([]catalog.Genre, error) {
	r.mu.Lock()
	if r.genres != nil && r.now().Sub(r.genres.takenAt) < r.genresTTL {
		cached := r.genres.data
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	posts, err := r.GetComicsList(ctx)
	if err != nil {
		return []catalog.Genre{}, nil
	}

	genres := countGenres(posts)
	r.mu.Lock()
	r.genres = &snapshot[[]catalog.Genre]{data: genres, takenAt: r.now()}
	r.mu.Unlock()
	return genres, nil
}

// UpdateManifest rewrites the manifest document from the post
// collection. Incremental patching is deliberately avoided: the rebuild
// makes the post collection the only source of truth, so the manifest
// cannot drift silently.
func (r *DocumentRepository) UpdateManifest(ctx context.Context) error {
	posts, err := r.posts.GetAll(ctx)
	if err != nil {
		return err
	}

	comics := make([]any, 0, len(posts))
	for _, p := range posts {
		comics = append(comics, postDocument(p))
	}

	doc := docstore.Document{
		"comics":    comics,
		"updatedAt": r.now().Format(time.RFC3339),
	}
	if err := r.store.Set(ctx, r.collection, r.docID, doc); err != nil {
		return err
	}

	r.InvalidateComicsListCache()
	return nil
}

func (r *DocumentRepository) InvalidateComicsListCache() {
	r.mu.Lock()
	r.list = nil
	r.mu.Unlock()
}

func (r *DocumentRepository) InvalidateGenresCache() {
	r.mu.Lock()
	r.genres = nil
	r.mu.Unlock()
}

// postDocument renders a post as a canonical manifest entry. Manifest
// entries always use the English field names; only the post collection
// carries the legacy schema.
func postDocument(p catalog.Post) map[string]any {
	return map[string]any{
		"slug":       p.Slug,
		"title":      p.Title,
		"author":     p.Author,
		"date":       p.Date,
		"tags":       p.Tags,
		"excerpt":    p.Excerpt,
		"content":    p.Content,
		"image":      p.Image,
		"comicPages": p.ComicPages,
	}
}

// decodeComics tolerates manifest entries written with either field
// convention by funneling them through the same translation reads of
// the post collection use.
func decodeComics(doc docstore.Document) []catalog.Post {
	raw, _ := doc["comics"].([]any)
	posts := make([]catalog.Post, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		slug, _ := entry["slug"].(string)
		posts = append(posts, blog.ToPost(slug, entry))
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts
}

// countGenres tallies tag occurrences across posts, case-sensitive.
// Ordered by count descending; ties keep first-seen order.
func countGenres(posts []catalog.Post) []catalog.Genre {
	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		for _, tag := range p.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	genres := make([]catalog.Genre, 0, len(order))
	for _, tag := range order {
		genres = append(genres, catalog.Genre{Name: tag, Count: counts[tag]})
	}
	sort.SliceStable(genres, func(i, j int) bool {
		return genres[i].Count > genres[j].Count
	})
	return genres
}
