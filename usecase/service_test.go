package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/yeshua-aguilar/comicflix-catalog/blog"
	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/docstore"
	"github.com/yeshua-aguilar/comicflix-catalog/manifest"
)

// newTestService wires a full service over in-memory stores, no caching
// decorators in the way.
func newTestService(t *testing.T) (*Service, *catalog.Bus, blog.PostRepository) {
	t.Helper()

	store := docstore.NewMemoryStore()
	posts := blog.NewDocumentRepository(store, "")
	man := manifest.NewDocumentRepository(store, posts)
	bus := catalog.NewBus()
	return New(posts, man, bus), bus, posts
}

// eventRecorder collects events safely across the async publish paths.
type eventRecorder struct {
	mu     sync.Mutex
	events []catalog.Event
}

func (r *eventRecorder) record(evt catalog.Event) {
	r.mu.Lock()
	r.events = append(r.events, evt)
	r.mu.Unlock()
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, evt := range r.events {
		out[i] = evt.EventName()
	}
	return out
}

func validData() catalog.CreatePostData {
	return catalog.CreatePostData{
		Title:   "One Piece",
		Author:  "Eiichiro Oda",
		Date:    "2024-03-01",
		Tags:    []string{"action", "adventure"},
		Excerpt: "A boy sets sail.",
		Content: "Luffy gathers a crew.",
	}
}

func TestCreatePostWithSlug(t *testing.T) {
	svc, bus, posts := newTestService(t)
	ctx := context.Background()

	rec := &eventRecorder{}
	bus.Subscribe(catalog.EventPostCreated, rec.record)

	if err := svc.CreatePostWithSlug(ctx, "one-piece-1", validData()); err != nil {
		t.Fatalf("CreatePostWithSlug failed: %v", err)
	}

	post, _ := posts.GetBySlug(ctx, "one-piece-1")
	if post == nil || post.Title != "One Piece" {
		t.Fatalf("post = %+v", post)
	}

	// The manifest was rebuilt as part of the create.
	list, err := svc.GetComicsList(ctx)
	if err != nil {
		t.Fatalf("GetComicsList failed: %v", err)
	}
	if len(list) != 1 || list[0].Slug != "one-piece-1" {
		t.Errorf("manifest list = %v", list)
	}

	names := rec.names()
	if len(names) != 1 || names[0] != catalog.EventPostCreated {
		t.Errorf("events = %v", names)
	}
}

func TestCreatePostWithSlugRejectsInvalid(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	data := validData()
	data.Title = "x"
	err := svc.CreatePostWithSlug(ctx, "one-piece-1", data)
	if !catalog.IsValidation(err) {
		t.Errorf("invalid title: err = %v, want ValidationError", err)
	}

	if err := svc.CreatePostWithSlug(ctx, "Bad_Slug", validData()); !catalog.IsValidation(err) {
		t.Errorf("invalid slug: err = %v, want ValidationError", err)
	}
}

func TestCreatePostWithSlugRejectsDuplicate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.CreatePostWithSlug(ctx, "one-piece-1", validData()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := svc.CreatePostWithSlug(ctx, "one-piece-1", validData())
	if !catalog.IsAlreadyExists(err) {
		t.Errorf("duplicate create = %v, want AlreadyExistsError", err)
	}
}

func TestCreatePostPermissivePath(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	// Only title and author are required here.
	slug, err := svc.CreatePost(ctx, catalog.CreatePostData{Title: "Untitled Draft", Author: "Anon"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if slug == "" {
		t.Error("expected a generated slug")
	}

	if _, err := svc.CreatePost(ctx, catalog.CreatePostData{Author: "Anon"}); !catalog.IsValidation(err) {
		t.Errorf("blank title = %v, want ValidationError", err)
	}
	if _, err := svc.CreatePost(ctx, catalog.CreatePostData{Title: "T"}); !catalog.IsValidation(err) {
		t.Errorf("blank author = %v, want ValidationError", err)
	}
}

func TestUpdatePost(t *testing.T) {
	svc, bus, posts := newTestService(t)
	ctx := context.Background()

	rec := &eventRecorder{}
	bus.Subscribe(catalog.EventPostUpdated, rec.record)

	if err := svc.CreatePostWithSlug(ctx, "one-piece-1", validData()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "One Piece: East Blue"
	if err := svc.UpdatePost(ctx, "one-piece-1", catalog.UpdatePostData{Title: &title}); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	post, _ := posts.GetBySlug(ctx, "one-piece-1")
	if post.Title != title {
		t.Errorf("Title = %q", post.Title)
	}

	evts := rec.names()
	if len(evts) != 1 {
		t.Fatalf("events = %v", evts)
	}

	// Empty updates and missing posts fail loudly.
	if err := svc.UpdatePost(ctx, "one-piece-1", catalog.UpdatePostData{}); !catalog.IsValidation(err) {
		t.Errorf("empty update = %v, want ValidationError", err)
	}
	if err := svc.UpdatePost(ctx, "missing-post", catalog.UpdatePostData{Title: &title}); !catalog.IsNotFound(err) {
		t.Errorf("missing post = %v, want NotFoundError", err)
	}
}

func TestDeletePost(t *testing.T) {
	svc, bus, posts := newTestService(t)
	ctx := context.Background()

	rec := &eventRecorder{}
	bus.Subscribe(catalog.EventPostDeleted, rec.record)

	if err := svc.CreatePostWithSlug(ctx, "one-piece-1", validData()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.DeletePost(ctx, "one-piece-1"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	if post, _ := posts.GetBySlug(ctx, "one-piece-1"); post != nil {
		t.Error("post should be gone")
	}
	list, _ := svc.GetComicsList(ctx)
	if len(list) != 0 {
		t.Errorf("manifest still lists %v", list)
	}

	r := rec.events
	if len(r) != 1 {
		t.Fatalf("events = %d", len(r))
	}
	deleted := r[0].(catalog.PostDeleted)
	if deleted.Title != "One Piece" {
		t.Errorf("deletion event title = %q", deleted.Title)
	}

	if err := svc.DeletePost(ctx, "one-piece-1"); !catalog.IsNotFound(err) {
		t.Errorf("second delete = %v, want NotFoundError", err)
	}
}

func TestSearchComicsPublishesAsync(t *testing.T) {
	svc, bus, _ := newTestService(t)
	ctx := context.Background()

	done := make(chan catalog.Event, 1)
	bus.Subscribe(catalog.EventPostSearched, func(evt catalog.Event) { done <- evt })

	if err := svc.CreatePostWithSlug(ctx, "one-piece-1", validData()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	results, err := svc.SearchComics(ctx, "one piece", 10)
	if err != nil {
		t.Fatalf("SearchComics failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}

	select {
	case evt := <-done:
		searched := evt.(catalog.PostSearched)
		if searched.Term != "one piece" || searched.ResultCount != 1 {
			t.Errorf("event = %+v", searched)
		}
	case <-time.After(time.Second):
		t.Fatal("PostSearched event never arrived")
	}
}

func TestTagOperations(t *testing.T) {
	svc, bus, posts := newTestService(t)
	ctx := context.Background()

	rec := &eventRecorder{}
	bus.Subscribe(catalog.EventTagAdded, rec.record)
	bus.Subscribe(catalog.EventTagRemoved, rec.record)

	if err := svc.CreatePostWithSlug(ctx, "one-piece-1", validData()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.AddTag(ctx, "one-piece-1", "shonen"); err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	post, _ := posts.GetBySlug(ctx, "one-piece-1")
	if !post.HasTag("shonen") {
		t.Error("tag missing after AddTag")
	}

	if err := svc.RemoveTag(ctx, "one-piece-1", "shonen"); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	post, _ = posts.GetBySlug(ctx, "one-piece-1")
	if post.HasTag("shonen") {
		t.Error("tag still present after RemoveTag")
	}

	// Removing an absent tag is silent.
	if err := svc.RemoveTag(ctx, "one-piece-1", "missing"); err != nil {
		t.Errorf("RemoveTag of absent tag = %v", err)
	}

	names := rec.names()
	if len(names) != 2 || names[0] != catalog.EventTagAdded || names[1] != catalog.EventTagRemoved {
		t.Errorf("events = %v", names)
	}
}

func TestGetPostBySlug(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.CreatePostWithSlug(ctx, "one-piece-1", validData()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	post, err := svc.GetPostBySlug(ctx, "one-piece-1")
	if err != nil || post == nil {
		t.Fatalf("GetPostBySlug: post=%v err=%v", post, err)
	}

	if _, err := svc.GetPostBySlug(ctx, "missing-post"); !catalog.IsNotFound(err) {
		t.Errorf("missing slug = %v, want NotFoundError", err)
	}
	if _, err := svc.GetPostBySlug(ctx, "Bad_Slug"); !catalog.IsValidation(err) {
		t.Errorf("bad slug = %v, want ValidationError", err)
	}
}

func TestGetGenresWithCounts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.CreatePostWithSlug(ctx, "one-piece-1", validData()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	data := validData()
	data.Title = "Berserk"
	data.Tags = []string{"action", "drama"}
	if err := svc.CreatePostWithSlug(ctx, "berserk-1", data); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	genres, err := svc.GetGenresWithCounts(ctx)
	if err != nil {
		t.Fatalf("GetGenresWithCounts failed: %v", err)
	}
	if len(genres) == 0 || genres[0].Name != "action" || genres[0].Count != 2 {
		t.Errorf("genres = %v", genres)
	}
}
