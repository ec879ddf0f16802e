package domain

import "fmt"

// Route selects one of the three execution paths for a single query.
type Route string

const (
	RouteVectorSearch Route = "vector_search"
	RouteWebSearch    Route = "web_search"
	RouteNone         Route = "none"
)

// ParseRoute maps a raw routing label onto a Route. Anything outside the
// three known values is an error; there is no default path.
func ParseRoute(s string) (Route, error) {
	switch Route(s) {
	case RouteVectorSearch, RouteWebSearch, RouteNone:
		return Route(s), nil
	}
	return "", fmt.Errorf("unknown route %q", s)
}

// Chunk is a bounded segment of a source document prepared for indexing.
type Chunk struct {
	Text   string
	Index  int
	Source string
}

// RetrievedChunk is a knowledge-base match with its similarity score.
type RetrievedChunk struct {
	Text   string
	Score  float32
	Source string
}

// SearchSnippet is a single web search result.
type SearchSnippet struct {
	Title   string
	Link    string
	Snippet string
}
