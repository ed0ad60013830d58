// Package search holds the query-routing rules for article search: when a
// query is answerable at all, and whether it goes to the full-text index or
// the substring fallback.
package search

import "strings"

const (
	// MinQueryLength is the shortest query that produces any results.
	MinQueryLength = 2

	// MinIndexedTermLength is the shortest term the full-text index covers.
	// Queries below it go straight to the substring path.
	MinIndexedTermLength = 3
)

// Path selects which search implementation handles a query.
type Path int

const (
	// PathNone means the query is too short to search at all.
	PathNone Path = iota
	// PathFullText means the FTS index handles the query.
	PathFullText
	// PathSubstring means the ILIKE fallback handles the query.
	PathSubstring
)

// Normalize trims surrounding whitespace from a raw query.
func Normalize(query string) string {
	return strings.TrimSpace(query)
}

// Route decides the search path for an already-normalized query.
func Route(query string) Path {
	n := len([]rune(query))
	switch {
	case n < MinQueryLength:
		return PathNone
	case n < MinIndexedTermLength:
		return PathSubstring
	default:
		return PathFullText
	}
}
