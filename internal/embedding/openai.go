package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client computes embeddings through an OpenAI-compatible embeddings
// endpoint. It implements domain.Embedder.
type Client struct {
	api       *openai.Client
	model     string
	dimension int
}

// Config configures the embeddings client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	// Dimension is the expected vector length. Vectors of any other
	// length are rejected so a misconfigured model cannot poison the
	// collection.
	Dimension int
	Timeout   time.Duration
}

// NewClient creates a new embeddings client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("embedding: missing API key")
	}
	if cfg.Model == "" {
		return nil, errors.New("embedding: missing model name")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embedding: invalid dimension %d", cfg.Dimension)
	}
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		c.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		api:       openai.NewClientWithConfig(c),
		model:     cfg.Model,
		dimension: cfg.Dimension,
	}, nil
}

// Dimension returns the configured dimensionality of produced vectors.
func (c *Client) Dimension() int { return c.dimension }

// EmbedQuery returns the embedding vector for a single query string.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedDocuments returns one embedding vector per input text, in order.
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return c.embed(ctx, texts)
}

func (c *Client) embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding: requested %d vectors, got %d", len(texts), len(resp.Data))
	}
	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding: out-of-range result index %d", d.Index)
		}
		if len(d.Embedding) != c.dimension {
			return nil, fmt.Errorf("embedding: model %s returned %d-dim vector, collection expects %d",
				c.model, len(d.Embedding), c.dimension)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
