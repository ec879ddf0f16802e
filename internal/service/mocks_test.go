package service

import (
	"context"
	"errors"

	"agentrag/internal/domain"
)

// mockCompleter records every completion request and answers via fn.
type mockCompleter struct {
	fn    func(req domain.CompletionRequest) (string, error)
	calls []domain.CompletionRequest
}

func (m *mockCompleter) Complete(_ context.Context, req domain.CompletionRequest) (string, error) {
	m.calls = append(m.calls, req)
	if m.fn == nil {
		return "", errors.New("mockCompleter: no handler")
	}
	return m.fn(req)
}

// mockEmbedder returns a fixed vector and counts calls.
type mockEmbedder struct {
	vector     []float32
	err        error
	queryCalls int
	docCalls   int
}

func (m *mockEmbedder) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	m.queryCalls++
	return m.vector, m.err
}

func (m *mockEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	m.docCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.vector
	}
	return out, nil
}

func (m *mockEmbedder) Dimension() int { return len(m.vector) }

// mockStore returns fixed chunks and counts calls per operation.
type mockStore struct {
	chunks      []domain.RetrievedChunk
	searchErr   error
	upsertErr   error
	searchCalls int
	upsertCalls int
	upserted    [][]domain.Chunk
}

func (m *mockStore) Init(_ context.Context) error { return nil }

func (m *mockStore) Upsert(_ context.Context, chunks []domain.Chunk, _ [][]float32) error {
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, chunks)
	return nil
}

func (m *mockStore) Search(_ context.Context, _ []float32, _ int) ([]domain.RetrievedChunk, error) {
	m.searchCalls++
	return m.chunks, m.searchErr
}

func (m *mockStore) Count(_ context.Context) (int, error) {
	n := 0
	for _, batch := range m.upserted {
		n += len(batch)
	}
	return n, nil
}

// mockSearcher returns fixed snippets and counts calls.
type mockSearcher struct {
	snippets []domain.SearchSnippet
	err      error
	calls    int
}

func (m *mockSearcher) Search(_ context.Context, _ string, _ int) ([]domain.SearchSnippet, error) {
	m.calls++
	return m.snippets, m.err
}

// mockFetcher returns fixed content.
type mockFetcher struct {
	content string
	err     error
	calls   int
}

func (m *mockFetcher) Fetch(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.content, m.err
}

// mockChunker splits on a fixed set of outputs.
type mockChunker struct {
	chunks []string
	err    error
}

func (m *mockChunker) Split(_ string) ([]string, error) {
	return m.chunks, m.err
}
