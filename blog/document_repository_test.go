package blog

import (
	"context"
	"errors"
	"testing"

	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/docstore"
	"github.com/yeshua-aguilar/comicflix-catalog/pkg/testsupport"
)

func seedRepo(t *testing.T) (*DocumentRepository, *docstore.MemoryStore) {
	t.Helper()

	store := docstore.NewMemoryStore()
	testsupport.SeedDocuments(t, store, DefaultCollection, testsupport.SamplePostDocuments())
	return NewDocumentRepository(store, ""), store
}

func TestDocumentRepositoryGetAll(t *testing.T) {
	repo, _ := seedRepo(t)

	posts, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	// Newest first.
	testsupport.RequireEqualSlugs(t, posts, "one-piece-1", "berserk-1", "yotsuba-1")
}

func TestDocumentRepositoryGetBySlug(t *testing.T) {
	repo, _ := seedRepo(t)
	ctx := context.Background()

	post, err := repo.GetBySlug(ctx, "berserk-1")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if post == nil || post.Title != "Berserk" {
		t.Fatalf("post = %+v", post)
	}

	// Absence is nil, nil; not an error.
	missing, err := repo.GetBySlug(ctx, "missing")
	if err != nil || missing != nil {
		t.Errorf("missing slug: post=%v err=%v", missing, err)
	}
}

func TestDocumentRepositoryGetByTag(t *testing.T) {
	repo, _ := seedRepo(t)

	posts, err := repo.GetByTag(context.Background(), "action")
	if err != nil {
		t.Fatalf("GetByTag failed: %v", err)
	}
	testsupport.RequireEqualSlugs(t, posts, "one-piece-1", "berserk-1")
}

func TestDocumentRepositoryGetPaginated(t *testing.T) {
	repo, _ := seedRepo(t)
	ctx := context.Background()

	page1, err := repo.GetPaginated(ctx, 2, "")
	if err != nil {
		t.Fatalf("GetPaginated failed: %v", err)
	}
	if len(page1.Posts) != 2 || !page1.HasMore {
		t.Fatalf("page1 = %+v", page1)
	}
	if page1.Cursor != page1.Posts[1].Slug {
		t.Errorf("cursor %q should be the last returned slug", page1.Cursor)
	}

	page2, err := repo.GetPaginated(ctx, 2, page1.Cursor)
	if err != nil {
		t.Fatalf("GetPaginated failed: %v", err)
	}
	if len(page2.Posts) != 1 {
		t.Fatalf("page2 = %+v", page2)
	}
	if page2.HasMore {
		t.Error("short page should report HasMore=false")
	}
}

func TestDocumentRepositoryCreateAndReadBack(t *testing.T) {
	repo, store := seedRepo(t)
	ctx := context.Background()

	data := catalog.CreatePostData{
		Title: "Vinland Saga", Author: "Yukimura", Date: "2024-04-01",
		Tags: []string{"action"}, Content: "body",
	}
	if err := repo.CreateWithSlug(ctx, "vinland-saga-1", data); err != nil {
		t.Fatalf("CreateWithSlug failed: %v", err)
	}

	// The stored document uses the legacy schema.
	doc, err := store.Get(ctx, DefaultCollection, "vinland-saga-1")
	if err != nil {
		t.Fatalf("stored doc missing: %v", err)
	}
	if doc["titulo"] != "Vinland Saga" {
		t.Errorf("stored titulo = %v", doc["titulo"])
	}

	post, _ := repo.GetBySlug(ctx, "vinland-saga-1")
	if post == nil || post.Title != "Vinland Saga" {
		t.Fatalf("read back = %+v", post)
	}
}

func TestDocumentRepositoryCreateGeneratesKey(t *testing.T) {
	repo, _ := seedRepo(t)

	slug, err := repo.Create(context.Background(), catalog.CreatePostData{
		Title: "Untracked", Author: "Anon", Date: "2024-04-02", Content: "body",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if slug == "" {
		t.Error("Create should return the generated key")
	}
}

func TestDocumentRepositoryUpdate(t *testing.T) {
	repo, _ := seedRepo(t)
	ctx := context.Background()

	title := "One Piece: East Blue"
	if err := repo.Update(ctx, "one-piece-1", catalog.UpdatePostData{Title: &title}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	post, _ := repo.GetBySlug(ctx, "one-piece-1")
	if post.Title != "One Piece: East Blue" {
		t.Errorf("Title = %q", post.Title)
	}
	// Untouched fields survive.
	if post.Author != "Eiichiro Oda" {
		t.Errorf("Author = %q", post.Author)
	}

	err := repo.Update(ctx, "missing", catalog.UpdatePostData{Title: &title})
	if !catalog.IsNotFound(err) {
		t.Errorf("Update on missing slug = %v, want NotFoundError", err)
	}

	// An empty update is a no-op, not an error.
	if err := repo.Update(ctx, "one-piece-1", catalog.UpdatePostData{}); err != nil {
		t.Errorf("empty update = %v", err)
	}
}

func TestDocumentRepositoryDelete(t *testing.T) {
	repo, _ := seedRepo(t)
	ctx := context.Background()

	if err := repo.Delete(ctx, "yotsuba-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if post, _ := repo.GetBySlug(ctx, "yotsuba-1"); post != nil {
		t.Error("post should be gone")
	}
	if err := repo.Delete(ctx, "yotsuba-1"); err != nil {
		t.Errorf("deleting an absent post = %v, want nil", err)
	}
}

// failingStore errors on every operation, standing in for an
// unreachable backend.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(context.Context, string, string) (docstore.Document, error) {
	return nil, errStoreDown
}
func (failingStore) GetAll(context.Context, string) ([]docstore.Keyed, error) {
	return nil, errStoreDown
}
func (failingStore) QueryContains(context.Context, string, string, string) ([]docstore.Keyed, error) {
	return nil, errStoreDown
}
func (failingStore) QueryPage(context.Context, string, string, bool, int, string) ([]docstore.Keyed, error) {
	return nil, errStoreDown
}
func (failingStore) Add(context.Context, string, docstore.Document) (string, error) {
	return "", errStoreDown
}
func (failingStore) Set(context.Context, string, string, docstore.Document) error {
	return errStoreDown
}
func (failingStore) Update(context.Context, string, string, docstore.Document) error {
	return errStoreDown
}
func (failingStore) Delete(context.Context, string, string) error {
	return errStoreDown
}

func TestDocumentRepositoryReadsDegradeWritesFail(t *testing.T) {
	repo := NewDocumentRepository(failingStore{}, "")
	ctx := context.Background()

	// Reads degrade to empty results with nil errors.
	if posts, err := repo.GetAll(ctx); err != nil || len(posts) != 0 {
		t.Errorf("GetAll: posts=%v err=%v", posts, err)
	}
	if post, err := repo.GetBySlug(ctx, "any-slug"); err != nil || post != nil {
		t.Errorf("GetBySlug: post=%v err=%v", post, err)
	}
	if posts, err := repo.GetByTag(ctx, "action"); err != nil || len(posts) != 0 {
		t.Errorf("GetByTag: posts=%v err=%v", posts, err)
	}
	if page, err := repo.GetPaginated(ctx, 9, ""); err != nil || len(page.Posts) != 0 || page.HasMore {
		t.Errorf("GetPaginated: page=%+v err=%v", page, err)
	}

	// Writes propagate the failure.
	if _, err := repo.Create(ctx, catalog.CreatePostData{}); !errors.Is(err, errStoreDown) {
		t.Errorf("Create = %v", err)
	}
	if err := repo.CreateWithSlug(ctx, "slug-x", catalog.CreatePostData{}); !errors.Is(err, errStoreDown) {
		t.Errorf("CreateWithSlug = %v", err)
	}
	title := "t"
	if err := repo.Update(ctx, "slug-x", catalog.UpdatePostData{Title: &title}); !errors.Is(err, errStoreDown) {
		t.Errorf("Update = %v", err)
	}
	if err := repo.Delete(ctx, "slug-x"); !errors.Is(err, errStoreDown) {
		t.Errorf("Delete = %v", err)
	}
}
