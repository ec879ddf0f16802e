package domain

import "context"

// Embedder converts free text into fixed-length numeric vectors.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// VectorStore persists embedded chunks and supports similarity search.
type VectorStore interface {
	// Init ensures the backing collection exists with the configured
	// dimensionality and distance metric.
	Init(ctx context.Context) error
	Upsert(ctx context.Context, chunks []Chunk, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, topK int) ([]RetrievedChunk, error)
	Count(ctx context.Context) (int, error)
}

// WebSearcher queries a web search provider for text snippets.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchSnippet, error)
}

// Fetcher retrieves the plain-text rendering of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Chunker splits cleaned text into overlapping token-bounded segments.
type Chunker interface {
	Split(text string) ([]string, error)
}

// CompletionRequest is a single chat-completion call.
type CompletionRequest struct {
	Model  string
	System string
	User   string
	// JSONMode forces the model to emit a single JSON object.
	JSONMode bool
}

// Completer produces one model completion per call.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
