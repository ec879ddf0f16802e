package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"agentrag/internal/domain"
)

// Storage is a minimal REST client to Qdrant implementing
// domain.VectorStore. One collection, one unnamed vector per point,
// payload carrying the chunk text and its source URL.
type Storage struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	distance   string
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Dimension  int
	Distance   string
	Timeout    time.Duration
}

func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	distance := cfg.Distance
	if distance == "" {
		distance = "Cosine"
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		distance:   distance,
		client:     &http.Client{Timeout: timeout},
	}
}

// Init creates the collection if it is missing. If the collection already
// exists, its vector parameters must match the configuration exactly; a
// mismatch is an error rather than a silent reuse.
func (s *Storage) Init(ctx context.Context) error {
	if s.dimension <= 0 {
		return errors.New("qdrant: invalid dimension")
	}
	var info struct {
		Result struct {
			Config struct {
				Params struct {
					Vectors struct {
						Size     int    `json:"size"`
						Distance string `json:"distance"`
					} `json:"vectors"`
				} `json:"params"`
			} `json:"config"`
		} `json:"result"`
	}
	exists, err := s.getJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), &info)
	if err != nil {
		return err
	}
	if !exists {
		body := map[string]any{
			"vectors": map[string]any{
				"size":     s.dimension,
				"distance": s.distance,
			},
		}
		return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
	}
	got := info.Result.Config.Params.Vectors
	if got.Size != s.dimension || got.Distance != s.distance {
		return fmt.Errorf("qdrant: collection %s has size=%d distance=%s, config wants size=%d distance=%s",
			s.collection, got.Size, got.Distance, s.dimension, s.distance)
	}
	return nil
}

// Upsert writes one point per chunk. Point IDs are fresh uuids, so
// ingesting the same source twice appends a second set of points.
func (s *Storage) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errors.New("qdrant: chunks and vectors length mismatch")
	}
	points := make([]map[string]any, len(chunks))
	for i := range chunks {
		points[i] = map[string]any{
			"id":     uuid.NewString(),
			"vector": vectors[i],
			"payload": map[string]any{
				"content":    chunks[i].Text,
				"url_source": chunks[i].Source,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

// Search returns the topK nearest chunks ordered by descending score.
func (s *Storage) Search(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedChunk, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("qdrant: invalid topK %d", topK)
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.RetrievedChunk, 0, len(resp.Result))
	for _, r := range resp.Result {
		chunk := domain.RetrievedChunk{Score: r.Score}
		if v, ok := r.Payload["content"].(string); ok {
			chunk.Text = v
		}
		if v, ok := r.Payload["url_source"].(string); ok {
			chunk.Source = v
		}
		results = append(results, chunk)
	}
	return results, nil
}

// Count returns the exact number of points in the collection.
func (s *Storage) Count(ctx context.Context) (int, error) {
	req := map[string]any{"exact": true}
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection), req, &resp); err != nil {
		return 0, err
	}
	return resp.Result.Count, nil
}

func (s *Storage) getJSON(ctx context.Context, url string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode >= 300 {
		return false, fmt.Errorf("qdrant GET %s failed: %s", url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (s *Storage) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Storage) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (s *Storage) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}
