package usecase

import (
	"context"
	"strings"

	"github.com/yeshua-aguilar/comicflix-catalog/blog"
	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
)

// SearchComics ranks the catalog against term and reports the search on
// the event bus without blocking the caller.
func (s *Service) SearchComics(ctx context.Context, term string, maxResults int) ([]catalog.Post, error) {
	results, err := s.manifest.SearchComics(ctx, term, maxResults)
	if err != nil {
		return nil, &catalog.OperationError{Op: "search comics", Err: err}
	}

	evt := catalog.NewPostSearched(strings.TrimSpace(term), len(results))
	go s.bus.Publish(evt)
	return results, nil
}

// SearchComicsByTag returns the posts whose tags contain the term.
func (s *Service) SearchComicsByTag(ctx context.Context, tag string) ([]catalog.Post, error) {
	results, err := s.manifest.SearchComicsByTag(ctx, tag)
	if err != nil {
		return nil, &catalog.OperationError{Op: "search comics by tag", Err: err}
	}
	return results, nil
}

// GetSearchSuggestions returns up to max titles and tags matching the
// partial term.
func (s *Service) GetSearchSuggestions(ctx context.Context, partial string, max int) ([]string, error) {
	suggestions, err := s.manifest.GetSearchSuggestions(ctx, partial, max)
	if err != nil {
		return nil, &catalog.OperationError{Op: "search suggestions", Err: err}
	}
	return suggestions, nil
}

// GetComicsList returns every post from the manifest, newest first.
func (s *Service) GetComicsList(ctx context.Context) ([]catalog.Post, error) {
	posts, err := s.manifest.GetComicsList(ctx)
	if err != nil {
		return nil, &catalog.OperationError{Op: "list comics", Err: err}
	}
	return posts, nil
}

// GetGenresWithCounts returns the tag tally, most used first.
func (s *Service) GetGenresWithCounts(ctx context.Context) ([]catalog.Genre, error) {
	genres, err := s.manifest.GetGenresWithCounts(ctx)
	if err != nil {
		return nil, &catalog.OperationError{Op: "list genres", Err: err}
	}
	return genres, nil
}

// GetPostBySlug returns the post under slug or a NotFoundError.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*catalog.Post, error) {
	if err := catalog.ValidateSlug(slug); err != nil {
		return nil, err
	}

	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, &catalog.OperationError{Op: "get post", Err: err}
	}
	if post == nil {
		return nil, &catalog.NotFoundError{Entity: "post", ID: slug}
	}
	return post, nil
}

// GetPostsPaginated returns one page of posts, newest first.
func (s *Service) GetPostsPaginated(ctx context.Context, pageSize int, cursor string) (blog.Page, error) {
	page, err := s.posts.GetPaginated(ctx, pageSize, cursor)
	if err != nil {
		return blog.Page{}, &catalog.OperationError{Op: "list posts", Err: err}
	}
	return page, nil
}

// GetPostsByTag returns the posts carrying tag, newest first.
func (s *Service) GetPostsByTag(ctx context.Context, tag string) ([]catalog.Post, error) {
	posts, err := s.posts.GetByTag(ctx, tag)
	if err != nil {
		return nil, &catalog.OperationError{Op: "list posts by tag", Err: err}
	}
	return posts, nil
}
