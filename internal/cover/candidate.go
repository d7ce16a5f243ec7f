// Package cover implements the manga cover resolution engine: a multi-source,
// heuristic-scored search pipeline that finds the best first-volume
// English-edition cover image URL for a manga title.
package cover

// Candidate is a single raw search result from a source, before filtering.
type Candidate struct {
	Title         string
	Subtitle      string
	Description   string
	Language      string
	Authors       []string
	Categories    []string
	ImageURL      string
	PageCount     int
	PublishedYear int
}

// Result is an accepted cover resolution from a single source.
type Result struct {
	URL   string
	Score float64
}

// Request describes one cover lookup. Title is required, Author is optional.
// ForceRefresh bypasses the cache read but still writes the result back.
type Request struct {
	Title        string
	Author       string
	ForceRefresh bool
}
