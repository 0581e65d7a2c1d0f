// Package testsupport holds helpers shared by the package test suites:
// fixture loading and document store seeding.
package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
	"github.com/yeshua-aguilar/comicflix-catalog/docstore"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}
	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and
// unmarshals it into dest.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the
// testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// SeedDocuments writes the given documents into a store collection,
// failing the test on the first error.
func SeedDocuments(t *testing.T, store docstore.Store, collection string, docs map[string]docstore.Document) {
	t.Helper()

	ctx := context.Background()
	for key, doc := range docs {
		if err := store.Set(ctx, collection, key, doc); err != nil {
			t.Fatalf("failed to seed document %s/%s: %v", collection, key, err)
		}
	}
}

// SamplePosts returns a small, date-ordered set of valid posts for
// tests that need realistic catalog content.
func SamplePosts() []catalog.Post {
	return []catalog.Post{
		{
			Slug:    "one-piece-1",
			Title:   "One Piece",
			Author:  "Eiichiro Oda",
			Date:    "2024-03-01",
			Tags:    []string{"action", "adventure"},
			Excerpt: "A boy sets sail to find the legendary treasure.",
			Content: "Monkey D. Luffy gathers a crew and heads for the Grand Line.",
		},
		{
			Slug:    "berserk-1",
			Title:   "Berserk",
			Author:  "Kentaro Miura",
			Date:    "2024-02-15",
			Tags:    []string{"action", "drama"},
			Excerpt: "A lone swordsman wanders a dark medieval world.",
			Content: "Guts carries a sword larger than himself and a heavier past.",
		},
		{
			Slug:    "yotsuba-1",
			Title:   "Yotsuba&!",
			Author:  "Kiyohiko Azuma",
			Date:    "2024-01-10",
			Tags:    []string{"comedy"},
			Excerpt: "A small girl discovers the world, one piece of art at a time.",
			Content: "Everyday adventures with an endlessly curious five-year-old.",
		},
	}
}

// SamplePostDocuments renders SamplePosts in the legacy store schema,
// keyed by slug.
func SamplePostDocuments() map[string]docstore.Document {
	docs := make(map[string]docstore.Document)
	for _, p := range SamplePosts() {
		docs[p.Slug] = docstore.Document{
			"titulo":      p.Title,
			"autor":       p.Author,
			"fecha":       p.Date,
			"tags":        p.Tags,
			"descripcion": p.Excerpt,
			"contenido":   p.Content,
		}
	}
	return docs
}

// RequireEqualSlugs fails the test unless posts carry exactly the
// expected slugs, in order.
func RequireEqualSlugs(t *testing.T, posts []catalog.Post, slugs ...string) {
	t.Helper()

	got := make([]string, len(posts))
	for i, p := range posts {
		got[i] = p.Slug
	}
	if fmt.Sprint(got) != fmt.Sprint(slugs) {
		t.Fatalf("unexpected slugs: got %v, want %v", got, slugs)
	}
}
