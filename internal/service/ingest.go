package service

import (
	"context"
	"fmt"

	"agentrag/internal/domain"
)

// Ingestor runs the linear ingestion batch for a single URL:
// fetch, split, embed, upsert. Each run appends a fresh set of points;
// re-ingesting the same URL duplicates its chunks.
type Ingestor struct {
	fetcher  domain.Fetcher
	chunker  domain.Chunker
	embedder domain.Embedder
	store    domain.VectorStore
}

func NewIngestor(fetcher domain.Fetcher, chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore) *Ingestor {
	return &Ingestor{fetcher: fetcher, chunker: chunker, embedder: embedder, store: store}
}

// Report summarizes a completed ingestion batch.
type Report struct {
	URL        string
	Chunks     int
	TotalCount int
}

// Ingest fetches the URL and writes its embedded chunks to the store.
func (in *Ingestor) Ingest(ctx context.Context, url string) (Report, error) {
	content, err := in.fetcher.Fetch(ctx, url)
	if err != nil {
		return Report{}, fmt.Errorf("ingest: %w", err)
	}
	texts, err := in.chunker.Split(content)
	if err != nil {
		return Report{}, fmt.Errorf("ingest: %w", err)
	}
	if len(texts) == 0 {
		return Report{}, fmt.Errorf("ingest: no chunks produced for %s", url)
	}
	vectors, err := in.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return Report{}, fmt.Errorf("ingest: %w", err)
	}
	if len(vectors) != len(texts) {
		return Report{}, fmt.Errorf("ingest: %d chunks but %d embeddings", len(texts), len(vectors))
	}
	chunks := make([]domain.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = domain.Chunk{Text: t, Index: i, Source: url}
	}
	if err := in.store.Upsert(ctx, chunks, vectors); err != nil {
		return Report{}, fmt.Errorf("ingest: %w", err)
	}
	report := Report{URL: url, Chunks: len(chunks)}
	// The final count is informational; its failure does not undo the batch.
	if count, err := in.store.Count(ctx); err == nil {
		report.TotalCount = count
	}
	return report, nil
}
