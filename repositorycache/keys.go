package repositorycache

import "fmt"

// Cache keys are deterministic renderings of an operation and its
// arguments. The wildcard patterns below must cover every key the read
// paths can produce; a new key family needs a matching pattern in the
// write-path invalidation.
func postKey(slug string) string {
	return "post:" + slug
}

func allPostsKey() string {
	return "posts:all"
}

func postsByTagKey(tag string) string {
	return "posts:tag:" + tag
}

func paginatedKey(pageSize int, cursor string) string {
	if cursor == "" {
		cursor = "first"
	}
	return fmt.Sprintf("posts:paginated:%d:%s", pageSize, cursor)
}

func searchKey(term string, maxResults int) string {
	return fmt.Sprintf("search:%s:%d", term, maxResults)
}

func searchByTagKey(tag string) string {
	return "search:tag:" + tag
}

func suggestionsKey(partial string, max int) string {
	return fmt.Sprintf("suggestions:%s:%d", partial, max)
}

const (
	postsPattern       = "posts:*"
	searchPattern      = "search:*"
	suggestionsPattern = "suggestions:*"
)
