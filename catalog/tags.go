package catalog

import "strings"

// NormalizeTags flattens the encodings tags arrive in, a plain list, a
// list decoded from the store as []any, or the legacy "{a,b,c}" string,
// into a clean slice of trimmed, non-empty strings. Unknown shapes
// normalize to an empty slice.
func NormalizeTags(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanTags(v)
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return cleanTags(tags)
	case string:
		stripped := strings.NewReplacer("{", "", "}", "").Replace(v)
		return cleanTags(strings.Split(stripped, ","))
	default:
		return []string{}
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
