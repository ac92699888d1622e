// File: internal/post/filter.go
package post

import "strings"

// FilterByCategory returns the posts matching the given category, preserving
// input order. CategoryAll (or the empty string) is the identity filter and
// returns the input unchanged.
func FilterByCategory(posts []Post, category Category) []Post {
	if category == "" || category == CategoryAll {
		return posts
	}
	filtered := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// searchableText flattens the fields a text query runs against.
func searchableText(p Post) string {
	parts := []string{p.Title, p.Description}
	if p.Location != nil {
		parts = append(parts, *p.Location)
	}
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// MatchesQuery reports whether every whitespace-separated term of the query
// appears as a case-insensitive substring of the post's title, description,
// location or tags. An empty query matches everything.
func MatchesQuery(p Post, query string) bool {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return true
	}
	text := searchableText(p)
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
