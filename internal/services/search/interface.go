package search

import "context"

// Result is one web search hit.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"href"`
	Body  string `json:"body"`
}

// Searcher is the web search capability.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
