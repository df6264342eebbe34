package scrape

import "context"

// DefaultMaxSearchResults is the number of results requested when
// SearchOptions.MaxResults is zero.
const DefaultMaxSearchResults = 5

// SearchResult is a single keyword search hit.
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// SearchOptions configures a keyword search.
type SearchOptions struct {
	APIKey     string
	MaxResults int
}

// SearchClient runs keyword searches against an external search service.
type SearchClient interface {
	// Search returns results ordered by relevance.
	// Returns ECONFIG if the API key is missing.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}
