package docstore

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// fieldString renders a document field for ordering and matching.
func fieldString(doc Document, field string) string {
	switch v := doc[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// containsValue reports whether the field holds value as a member,
// across the encodings list fields show up in.
func containsValue(doc Document, field, value string) bool {
	switch v := doc[field].(type) {
	case []string:
		for _, item := range v {
			if item == value {
				return true
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == value {
				return true
			}
		}
	case string:
		stripped := strings.NewReplacer("{", "", "}", "").Replace(v)
		for _, item := range strings.Split(stripped, ",") {
			if strings.TrimSpace(item) == value {
				return true
			}
		}
	}
	return false
}

// sortByField orders docs by the named field, key as tiebreaker so the
// order is total and cursors stay stable.
func sortByField(docs []Keyed, field string, desc bool) {
	sort.SliceStable(docs, func(i, j int) bool {
		a := fieldString(docs[i].Doc, field)
		b := fieldString(docs[j].Doc, field)
		if a == b {
			return docs[i].Key < docs[j].Key
		}
		if desc {
			return a > b
		}
		return a < b
	})
}

// pageAfter slices out the page following the startAfter cursor.
func pageAfter(docs []Keyed, startAfter string, limit int) []Keyed {
	start := 0
	if startAfter != "" {
		for i, d := range docs {
			if d.Key == startAfter {
				start = i + 1
				break
			}
		}
	}
	if start >= len(docs) {
		return nil
	}
	end := len(docs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return docs[start:end]
}
