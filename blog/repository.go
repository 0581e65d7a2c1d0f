// Package blog holds the post repository contract and the document
// store implementation behind it, including the translation to the
// legacy bilingual field schema the store uses.
package blog

import (
	"context"

	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
)

// DefaultPageSize matches the nine-per-page listing grid.
const DefaultPageSize = 9

// DefaultCollection is the store collection posts live in.
const DefaultCollection = "blogs"

// Page is one slice of the paginated post listing. Cursor references
// the last returned post and must be handed back verbatim to continue;
// HasMore reports that another page may exist (a full page with nothing
// behind it still reports true, the next request just comes back empty).
type Page struct {
	Posts   []catalog.Post `json:"posts"`
	Cursor  string         `json:"cursor,omitempty"`
	HasMore bool           `json:"hasMore"`
}

// PostRepository is the CRUD and query contract for the post collection.
//
// Read operations favor availability: implementations backed by the
// persistent store log failures and return empty results instead of
// propagating them. Write failures are returned to the caller.
type PostRepository interface {
	// GetAll returns every post, newest first.
	GetAll(ctx context.Context) ([]catalog.Post, error)

	// GetBySlug returns the post under slug, or nil when absent.
	GetBySlug(ctx context.Context, slug string) (*catalog.Post, error)

	// GetByTag returns the posts carrying the tag, newest first.
	GetByTag(ctx context.Context, tag string) ([]catalog.Post, error)

	// GetPaginated returns one page of posts ordered by date descending.
	// A pageSize of zero or less falls back to DefaultPageSize; an empty
	// cursor starts at the first page.
	GetPaginated(ctx context.Context, pageSize int, cursor string) (Page, error)

	// Create persists a post under a store-generated key and returns it.
	Create(ctx context.Context, data catalog.CreatePostData) (string, error)

	// CreateWithSlug persists a post under a caller-chosen slug,
	// overwriting any existing document at that key.
	CreateWithSlug(ctx context.Context, slug string, data catalog.CreatePostData) error

	// Update merges the non-nil fields into the stored post. Returns a
	// *catalog.NotFoundError when no post exists under slug.
	Update(ctx context.Context, slug string, data catalog.UpdatePostData) error

	// Delete removes the post under slug. Deleting an absent post is
	// not an error.
	Delete(ctx context.Context, slug string) error
}
