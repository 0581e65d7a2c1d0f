package manifest

import (
	"context"
	"testing"

	"github.com/yeshua-aguilar/comicflix-catalog/blog"
	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/docstore"
	"github.com/yeshua-aguilar/comicflix-catalog/pkg/testsupport"
)

// fixturePosts loads the shared comics fixture.
func fixturePosts(t *testing.T) []catalog.Post {
	t.Helper()

	var posts []catalog.Post
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("comics.json"), &posts)
	return posts
}

// fixtureRepo builds a manifest repository over an in-memory store
// seeded with the comics fixture.
func fixtureRepo(t *testing.T, opts ...Option) *DocumentRepository {
	t.Helper()

	store := docstore.NewMemoryStore()
	posts := blog.NewDocumentRepository(store, "")
	repo := NewDocumentRepository(store, posts, opts...)

	comics := make([]any, 0)
	for _, p := range fixturePosts(t) {
		comics = append(comics, postDocument(p))
	}
	doc := docstore.Document{"comics": comics}
	if err := store.Set(context.Background(), DefaultCollection, DefaultDocID, doc); err != nil {
		t.Fatalf("seed manifest failed: %v", err)
	}
	return repo
}

func TestSearchComicsTitleOutranksExcerpt(t *testing.T) {
	repo := fixtureRepo(t)

	// "One Piece" appears as a title and, lowercased, inside another
	// post's excerpt ("one piece of art"). The title match must win.
	results, err := repo.SearchComics(context.Background(), "One Piece", 10)
	if err != nil {
		t.Fatalf("SearchComics failed: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("got %d results, want at least 2", len(results))
	}
	if results[0].Slug != "one-piece-1" {
		t.Errorf("top result = %s, want one-piece-1", results[0].Slug)
	}
	if results[1].Slug != "yotsuba-1" {
		t.Errorf("second result = %s, want yotsuba-1", results[1].Slug)
	}
}

func TestSearchComicsCaseInsensitive(t *testing.T) {
	repo := fixtureRepo(t)
	ctx := context.Background()

	upper, _ := repo.SearchComics(ctx, "BERSERK", 10)
	lower, _ := repo.SearchComics(ctx, "berserk", 10)

	if len(upper) != 1 || len(lower) != 1 || upper[0].Slug != lower[0].Slug {
		t.Errorf("case changed results: %v vs %v", upper, lower)
	}
}

func TestSearchComicsShortTermRejected(t *testing.T) {
	repo := fixtureRepo(t)
	ctx := context.Background()

	for _, term := range []string{"", "a", "  a  ", "   "} {
		results, err := repo.SearchComics(ctx, term, 10)
		if err != nil {
			t.Fatalf("SearchComics(%q) failed: %v", term, err)
		}
		if len(results) != 0 {
			t.Errorf("SearchComics(%q) = %d results, want 0", term, len(results))
		}
	}
}

func TestSearchComicsMaxResults(t *testing.T) {
	repo := fixtureRepo(t)

	results, err := repo.SearchComics(context.Background(), "action", 1)
	if err != nil {
		t.Fatalf("SearchComics failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestSearchComicsNoMatchIsEmpty(t *testing.T) {
	repo := fixtureRepo(t)

	results, err := repo.SearchComics(context.Background(), "zzzz-nothing", 10)
	if err != nil {
		t.Fatalf("SearchComics failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestScorePostWeights(t *testing.T) {
	post := catalog.Post{
		Title:   "One Piece",
		Author:  "Eiichiro Oda",
		Tags:    []string{"action"},
		Excerpt: "A boy sets sail.",
	}

	term, tokens := tokenize("one piece")
	// Full term in title (100) plus both tokens in title (2*50).
	if got := scorePost(post, term, tokens); got != 200 {
		t.Errorf("score = %d, want 200", got)
	}

	term, tokens = tokenize("action")
	// Full term in the tag (75) plus token in the tag (25).
	if got := scorePost(post, term, tokens); got != 100 {
		t.Errorf("tag score = %d, want 100", got)
	}

	term, tokens = tokenize("oda")
	if got := scorePost(post, term, tokens); got != 20 {
		t.Errorf("author score = %d, want 20", got)
	}

	term, tokens = tokenize("nothing-here")
	if got := scorePost(post, term, tokens); got != 0 {
		t.Errorf("no-match score = %d, want 0", got)
	}
}

func TestTokenizeDropsSingleCharacters(t *testing.T) {
	term, tokens := tokenize("  One Piece x  ")
	if term != "one piece x" {
		t.Errorf("term = %q", term)
	}
	if len(tokens) != 2 || tokens[0] != "one" || tokens[1] != "piece" {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestSearchComicsByTag(t *testing.T) {
	repo := fixtureRepo(t)
	ctx := context.Background()

	results, err := repo.SearchComicsByTag(ctx, "ACTION")
	if err != nil {
		t.Fatalf("SearchComicsByTag failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	empty, _ := repo.SearchComicsByTag(ctx, "   ")
	if len(empty) != 0 {
		t.Errorf("blank tag should return nothing, got %v", empty)
	}
}

func TestGetSearchSuggestions(t *testing.T) {
	repo := fixtureRepo(t)
	ctx := context.Background()

	suggestions, err := repo.GetSearchSuggestions(ctx, "act", 5)
	if err != nil {
		t.Fatalf("GetSearchSuggestions failed: %v", err)
	}
	// No titles contain "act"; the action tag does, once.
	if len(suggestions) != 1 || suggestions[0] != "action" {
		t.Errorf("suggestions = %v", suggestions)
	}

	// Titles come before tags.
	suggestions, _ = repo.GetSearchSuggestions(ctx, "one", 5)
	if len(suggestions) == 0 || suggestions[0] != "One Piece" {
		t.Errorf("suggestions = %v, want One Piece first", suggestions)
	}

	// Short partials return nothing.
	if s, _ := repo.GetSearchSuggestions(ctx, "o", 5); len(s) != 0 {
		t.Errorf("short partial should return nothing, got %v", s)
	}

	// The cap is honored.
	if s, _ := repo.GetSearchSuggestions(ctx, "er", 1); len(s) > 1 {
		t.Errorf("cap ignored: %v", s)
	}
}
