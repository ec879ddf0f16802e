package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"agentrag/internal/domain"
)

// Storage is a brute-force cosine-similarity vector store kept entirely
// in process memory. It backs tests and small local knowledge bases.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	chunks    []domain.Chunk
}

func NewStorage(dimension int) *Storage {
	return &Storage{dimension: dimension}
}

func (s *Storage) Init(_ context.Context) error {
	if s.dimension <= 0 {
		return errors.New("memory: invalid dimension")
	}
	return nil
}

func (s *Storage) Upsert(_ context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("memory: chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("memory: vector dimension mismatch")
		}
	}
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *Storage) Search(_ context.Context, vector []float32, topK int) ([]domain.RetrievedChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		return nil, errors.New("memory: invalid topK")
	}
	type scored struct {
		idx   int
		score float32
	}
	scores := make([]scored, len(s.vectors))
	for i := range s.vectors {
		scores[i] = scored{i, cosine(s.vectors[i], vector)}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if topK > len(scores) {
		topK = len(scores)
	}
	results := make([]domain.RetrievedChunk, 0, topK)
	for i := 0; i < topK; i++ {
		c := s.chunks[scores[i].idx]
		results = append(results, domain.RetrievedChunk{
			Text:   c.Text,
			Score:  scores[i].score,
			Source: c.Source,
		})
	}
	return results, nil
}

func (s *Storage) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float32
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(na))) * float32(math.Sqrt(float64(nb))))
}
