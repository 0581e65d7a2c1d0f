package usecase

import (
	"context"
	"strings"

	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
)

// CreatePost persists a new post under a store-generated slug. Only
// title and author are checked here; the permissive path exists for
// imports of legacy content that predates the stricter rules.
func (s *Service) CreatePost(ctx context.Context, data catalog.CreatePostData) (string, error) {
	if strings.TrimSpace(data.Title) == "" {
		return "", &catalog.ValidationError{Field: "title", Message: "cannot be blank"}
	}
	if strings.TrimSpace(data.Author) == "" {
		return "", &catalog.ValidationError{Field: "author", Message: "cannot be blank"}
	}

	slug, err := s.posts.Create(ctx, data)
	if err != nil {
		return "", &catalog.OperationError{Op: "create post", Err: err}
	}

	s.refreshManifest(ctx, true)
	s.bus.Publish(catalog.NewPostCreated(slug, data.Title, data.Author, catalog.NormalizeTags(data.Tags)))
	return slug, nil
}

// CreatePostWithSlug persists a post under a caller-chosen slug. The
// whole entity is validated up front and an occupied slug is rejected.
func (s *Service) CreatePostWithSlug(ctx context.Context, slug string, data catalog.CreatePostData) error {
	post, err := catalog.NewPost(slug, data)
	if err != nil {
		return err
	}

	existing, err := s.posts.GetBySlug(ctx, post.Slug)
	if err != nil {
		return &catalog.OperationError{Op: "create post", Err: err}
	}
	if existing != nil {
		return &catalog.AlreadyExistsError{Entity: "post", ID: post.Slug}
	}

	if err := s.posts.CreateWithSlug(ctx, post.Slug, data); err != nil {
		return &catalog.OperationError{Op: "create post", Err: err}
	}

	s.refreshManifest(ctx, true)
	s.bus.Publish(catalog.NewPostCreated(post.Slug, post.Title, post.Author, post.Tags))
	return nil
}

// UpdatePost merges a partial change set into an existing post. The
// genre snapshot is only dropped when the update touches tags.
func (s *Service) UpdatePost(ctx context.Context, slug string, data catalog.UpdatePostData) error {
	if err := catalog.ValidateSlug(slug); err != nil {
		return err
	}
	changes := data.Changes()
	if len(changes) == 0 {
		return &catalog.ValidationError{Field: "update", Message: "no fields to update"}
	}

	if err := s.posts.Update(ctx, slug, data); err != nil {
		if catalog.IsNotFound(err) {
			return err
		}
		return &catalog.OperationError{Op: "update post", Err: err}
	}

	s.refreshManifest(ctx, data.Tags != nil)
	s.bus.Publish(catalog.NewPostUpdated(slug, changes))
	return nil
}

// DeletePost removes a post. The post is fetched first so the deletion
// event can carry its title and an absent slug fails loudly.
func (s *Service) DeletePost(ctx context.Context, slug string) error {
	if err := catalog.ValidateSlug(slug); err != nil {
		return err
	}

	existing, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return &catalog.OperationError{Op: "delete post", Err: err}
	}
	if existing == nil {
		return &catalog.NotFoundError{Entity: "post", ID: slug}
	}

	if err := s.posts.Delete(ctx, slug); err != nil {
		return &catalog.OperationError{Op: "delete post", Err: err}
	}

	s.refreshManifest(ctx, true)
	s.bus.Publish(catalog.NewPostDeleted(slug, existing.Title))
	return nil
}

// AddTag appends a tag to an existing post.
func (s *Service) AddTag(ctx context.Context, slug, tag string) error {
	post, err := s.requirePost(ctx, slug)
	if err != nil {
		return err
	}
	if err := post.AddTag(tag); err != nil {
		return err
	}

	tags := post.Tags
	if err := s.posts.Update(ctx, slug, catalog.UpdatePostData{Tags: &tags}); err != nil {
		return &catalog.OperationError{Op: "add tag", Err: err}
	}

	s.refreshManifest(ctx, true)
	s.bus.Publish(catalog.NewTagAdded(slug, strings.TrimSpace(tag)))
	return nil
}

// RemoveTag drops a tag from an existing post. Removing a tag the post
// does not carry is a no-op and publishes nothing.
func (s *Service) RemoveTag(ctx context.Context, slug, tag string) error {
	post, err := s.requirePost(ctx, slug)
	if err != nil {
		return err
	}
	if !post.HasTag(tag) {
		return nil
	}
	if err := post.RemoveTag(tag); err != nil {
		return err
	}

	tags := post.Tags
	if err := s.posts.Update(ctx, slug, catalog.UpdatePostData{Tags: &tags}); err != nil {
		return &catalog.OperationError{Op: "remove tag", Err: err}
	}

	s.refreshManifest(ctx, true)
	s.bus.Publish(catalog.NewTagRemoved(slug, strings.TrimSpace(tag)))
	return nil
}

func (s *Service) requirePost(ctx context.Context, slug string) (*catalog.Post, error) {
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
