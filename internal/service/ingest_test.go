package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentrag/internal/vectorstore/memory"
)

func TestIngestWritesChunksWithSource(t *testing.T) {
	fetch := &mockFetcher{content: "page text"}
	split := &mockChunker{chunks: []string{"chunk one", "chunk two", "chunk three"}}
	embedder := &mockEmbedder{vector: []float32{0.5, 0.5}}
	store := &mockStore{}
	ingestor := NewIngestor(fetch, split, embedder, store)

	report, err := ingestor.Ingest(context.Background(), "https://example.com/doc")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Chunks)
	assert.Equal(t, 3, report.TotalCount)

	require.Len(t, store.upserted, 1)
	for i, c := range store.upserted[0] {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, "https://example.com/doc", c.Source)
	}
}

// Re-ingesting the same URL appends a second, independent set of points.
// There is no content-hash dedup; this documents the behavior.
func TestIngestSameURLTwiceAppends(t *testing.T) {
	fetch := &mockFetcher{content: "page text"}
	split := &mockChunker{chunks: []string{"alpha", "beta"}}
	embedder := &mockEmbedder{vector: []float32{1, 0}}
	store := memory.NewStorage(2)
	ingestor := NewIngestor(fetch, split, embedder, store)

	const url = "https://example.com/doc"
	_, err := ingestor.Ingest(context.Background(), url)
	require.NoError(t, err)
	report, err := ingestor.Ingest(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Chunks)
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count, "second ingestion must append, not replace")
}

func TestIngestAbortsOnFetchFailure(t *testing.T) {
	fetch := &mockFetcher{err: errors.New("reader unreachable")}
	embedder := &mockEmbedder{vector: []float32{1}}
	store := &mockStore{}
	ingestor := NewIngestor(fetch, &mockChunker{}, embedder, store)

	_, err := ingestor.Ingest(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Equal(t, 0, embedder.docCalls)
	assert.Equal(t, 0, store.upsertCalls)
}

func TestIngestAbortsOnEmptySplit(t *testing.T) {
	fetch := &mockFetcher{content: "   "}
	split := &mockChunker{chunks: nil}
	store := &mockStore{}
	ingestor := NewIngestor(fetch, split, &mockEmbedder{vector: []float32{1}}, store)

	_, err := ingestor.Ingest(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Equal(t, 0, store.upsertCalls)
}

func TestIngestAbortsOnEmbeddingFailure(t *testing.T) {
	fetch := &mockFetcher{content: "text"}
	split := &mockChunker{chunks: []string{"chunk"}}
	embedder := &mockEmbedder{err: errors.New("quota exceeded")}
	store := &mockStore{}
	ingestor := NewIngestor(fetch, split, embedder, store)

	_, err := ingestor.Ingest(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Equal(t, 0, store.upsertCalls)
}
