package manifest

import (
	"context"
	"sort"
	"strings"

	"github.com/yeshua-aguilar/comicflix-catalog/catalog"
)

// Relevance weights for search ranking. Full-term matches outrank token
// matches, and titles outrank tags, which outrank excerpts and authors.
const (
	scoreTitleTerm    = 100
	scoreTitleToken   = 50
	scoreTagTerm      = 75
	scoreTagToken     = 25
	scoreExcerptTerm  = 30
	scoreExcerptToken = 15
	scoreAuthorTerm   = 20
)

// minTermLength is the shortest accepted search term, measured after
// trimming surrounding whitespace.
const minTermLength = 2

// Result caps applied when the caller passes zero or less.
const (
	DefaultMaxResults     = 20
	DefaultMaxSuggestions = 5
)

func (r *DocumentRepository) SearchComics(ctx context.Context, term string, maxResults int) ([]catalog.Post, error) {
	if len(strings.TrimSpace(term)) < minTermLength {
		return []catalog.Post{}, nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	posts, err := r.GetComicsList(ctx)
	if err != nil {
		return []catalog.Post{}, nil
	}
	return rankComics(posts, term, maxResults), nil
}

func (r *DocumentRepository) SearchComicsByTag(ctx context.Context, tag string) ([]catalog.Post, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return []catalog.Post{}, nil
	}

	posts, err := r.GetComicsList(ctx)
	if err != nil {
		return []catalog.Post{}, nil
	}

	matched := []catalog.Post{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t), tag) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched, nil
}

func (r *DocumentRepository) GetSearchSuggestions(ctx context.Context, partial string, max int) ([]string, error) {
	term := strings.ToLower(strings.TrimSpace(partial))
	if len(term) < minTermLength {
		return []string{}, nil
	}
	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	posts, err := r.GetComicsList(ctx)
	if err != nil {
		return []string{}, nil
	}
	return suggest(posts, term, max), nil
}

// tokenize lowercases a term and splits it into word tokens, discarding
// single-character fragments.
func tokenize(term string) (string, []string) {
	term = strings.ToLower(strings.TrimSpace(term))
	var tokens []string
	for _, word := range strings.Fields(term) {
		if len(word) > 1 {
			tokens = append(tokens, word)
		}
	}
	return term, tokens
}

// scorePost computes the relevance of one post against the full term
// and its tokens. Zero means no match anywhere.
func scorePost(p catalog.Post, term string, tokens []string) int {
	title := strings.ToLower(p.Title)
	excerpt := strings.ToLower(p.Excerpt)
	author := strings.ToLower(p.Author)

	score := 0
	if strings.Contains(title, term) {
		score += scoreTitleTerm
	}
	for _, tok := range tokens {
		if strings.Contains(title, tok) {
			score += scoreTitleToken
		}
	}

	for _, tag := range p.Tags {
		lowered := strings.ToLower(tag)
		if strings.Contains(lowered, term) {
			score += scoreTagTerm
		}
		for _, tok := range tokens {
			if strings.Contains(lowered, tok) {
				score += scoreTagToken
			}
		}
	}

	if strings.Contains(excerpt, term) {
		score += scoreExcerptTerm
	}
	for _, tok := range tokens {
		if strings.Contains(excerpt, tok) {
			score += scoreExcerptToken
		}
	}

	if strings.Contains(author, term) {
		score += scoreAuthorTerm
	}
	return score
}

// rankComics scores every post, drops the zero scores and returns the
// top maxResults by score descending. The sort is stable, so ties keep
// manifest order.
func rankComics(posts []catalog.Post, rawTerm string, maxResults int) []catalog.Post {
	term, tokens := tokenize(rawTerm)

	type scored struct {
		post  catalog.Post
		score int
	}
	var results []scored
	for _, p := range posts {
		if s := scorePost(p, term, tokens); s > 0 {
			results = append(results, scored{post: p, score: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}

	out := make([]catalog.Post, len(results))
	for i, r := range results {
		out[i] = r.post
	}
	return out
}

// suggest collects matching titles first, then matching tags, skipping
// duplicates, until max entries are gathered.
func suggest(posts []catalog.Post, term string, max int) []string {
	seen := make(map[string]struct{})
	out := []string{}
	add := func(s string) bool {
		if _, dup := seen[s]; dup {
			return len(out) < max
		}
		seen[s] = struct{}{}
		out = append(out, s)
		return len(out) < max
	}

	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), term) {
			if !add(p.Title) {
				return out
			}
		}
	}
	for _, p := range posts {
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				if !add(tag) {
					return out
				}
			}
		}
	}
	return out
}
