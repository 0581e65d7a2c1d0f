package cache

import (
	"regexp"
	"strings"
)

// CompilePattern converts a key glob into an anchored regular
// expression. `*` matches any run of characters and `?` matches exactly
// one; neither treats any character as a separator, so a key holding a
// slash or colon is matched like any other. Everything else is literal.
func CompilePattern(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return regexp.MustCompile(b.String())
}
