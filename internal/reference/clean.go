package reference

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean collapses internal whitespace runs to single spaces and strips
// leading/trailing whitespace and punctuation. Applied to full_text, title
// and venue before scoring.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.Trim(s, " .,;:")
}

// JoinAuthors renders the author list for flat formats (CSV, SQLite).
func JoinAuthors(authors []string) string {
	return strings.Join(authors, "; ")
}

// SplitAuthors is the inverse of JoinAuthors for flat-format round trips.
func SplitAuthors(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "; ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
