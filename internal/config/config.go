package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LLMConfig holds connection details for the chat-completion service.
// The default base URL points at Gemini's OpenAI-compatible endpoint.
type LLMConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	RouterModel string `yaml:"router_model"`
	AnswerModel string `yaml:"answer_model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig configures the remote embedding model.
type EmbedderConfig struct {
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Collection  string `yaml:"collection"`
	Distance    string `yaml:"distance"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// ChunkerConfig configures the token splitter used at ingestion time.
type ChunkerConfig struct {
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	Encoding     string `yaml:"encoding"`
}

// IngestConfig configures the URL ingestion batch.
type IngestConfig struct {
	ReaderPrefix string `yaml:"reader_prefix"`
	DefaultURL   string `yaml:"default_url"`
	TimeoutSecs  int    `yaml:"timeout_secs"`
}

// RetrievalConfig caps how much context each retrieval path may pull in.
type RetrievalConfig struct {
	TopK          int `yaml:"top_k"`
	WebMaxResults int `yaml:"web_max_results"`
}

// AppConfig is the root application configuration structure. It is loaded
// once at startup and passed to components by value; nothing mutates it
// afterwards.
type AppConfig struct {
	LLM         LLMConfig         `yaml:"llm"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/agentrag/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// APIKey resolves the completion/embedding API key from the environment.
// An empty key is fatal for both binaries, so this returns an error
// rather than an empty string.
func (c *AppConfig) APIKey() (string, error) {
	key := os.Getenv(c.LLM.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("missing API key in env %s", c.LLM.APIKeyEnv)
	}
	return key, nil
}

// QdrantAPIKey resolves the optional Qdrant API key. Empty means the
// local unauthenticated instance.
func (c *AppConfig) QdrantAPIKey() string {
	if c.VectorStore.Qdrant == nil || c.VectorStore.Qdrant.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.VectorStore.Qdrant.APIKeyEnv)
}

// Validate rejects configurations the system cannot start with.
func (c *AppConfig) Validate() error {
	if c.LLM.APIKeyEnv == "" {
		return errors.New("llm.api_key_env must be set")
	}
	if c.Embedder.Dimension <= 0 {
		return fmt.Errorf("embedder.dimension must be positive, got %d", c.Embedder.Dimension)
	}
	if c.Chunker.ChunkSize <= 0 {
		return fmt.Errorf("chunker.chunk_size must be positive, got %d", c.Chunker.ChunkSize)
	}
	if c.Chunker.ChunkOverlap < 0 || c.Chunker.ChunkOverlap >= c.Chunker.ChunkSize {
		return fmt.Errorf("chunker.chunk_overlap %d must be in [0, chunk_size)", c.Chunker.ChunkOverlap)
	}
	if c.VectorStore.Type == "qdrant" {
		q := c.VectorStore.Qdrant
		if q == nil {
			return errors.New("vector_store.qdrant config missing")
		}
		switch q.Distance {
		case "Cosine", "Dot", "Euclid":
		default:
			return fmt.Errorf("unknown distance metric %q", q.Distance)
		}
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Retrieval.WebMaxResults <= 0 {
		return fmt.Errorf("retrieval.web_max_results must be positive, got %d", c.Retrieval.WebMaxResults)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "agentrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.LLM.RouterModel == "" {
		cfg.LLM.RouterModel = "gemini-1.5-pro-latest"
	}
	if cfg.LLM.AnswerModel == "" {
		cfg.LLM.AnswerModel = "gemini-1.5-flash-latest"
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 60
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "text-embedding-004"
	}
	if cfg.Embedder.Dimension == 0 {
		cfg.Embedder.Dimension = 768
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "qdrant"
	}
	if cfg.VectorStore.Type == "qdrant" {
		if cfg.VectorStore.Qdrant == nil {
			cfg.VectorStore.Qdrant = &QdrantConfig{}
		}
		q := cfg.VectorStore.Qdrant
		if q.URL == "" {
			q.URL = "http://localhost:6333"
		}
		if q.APIKeyEnv == "" {
			q.APIKeyEnv = "QDRANT_API_KEY"
		}
		if q.Collection == "" {
			q.Collection = "agentic_rag_google"
		}
		if q.Distance == "" {
			q.Distance = "Cosine"
		}
		if q.TimeoutSecs == 0 {
			q.TimeoutSecs = 60
		}
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = 150
	}
	if cfg.Chunker.ChunkOverlap == 0 {
		cfg.Chunker.ChunkOverlap = 10
	}
	if cfg.Chunker.Encoding == "" {
		cfg.Chunker.Encoding = "cl100k_base"
	}
	if cfg.Ingest.ReaderPrefix == "" {
		cfg.Ingest.ReaderPrefix = "https://r.jina.ai/"
	}
	if cfg.Ingest.DefaultURL == "" {
		cfg.Ingest.DefaultURL = "https://ai.google.dev/gemini-api/docs/models/gemini"
	}
	if cfg.Ingest.TimeoutSecs == 0 {
		cfg.Ingest.TimeoutSecs = 60
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.WebMaxResults == 0 {
		cfg.Retrieval.WebMaxResults = 5
	}
}
