package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"agentrag/internal/config"
	"agentrag/internal/domain"
	"agentrag/internal/embedding"
	"agentrag/internal/llm"
	"agentrag/internal/service"
	"agentrag/internal/tui"
	"agentrag/internal/vectorstore/memory"
	"agentrag/internal/vectorstore/qdrant"
	"agentrag/internal/websearch"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/agentrag/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", "err", err)
	}
	apiKey, err := cfg.APIKey()
	if err != nil {
		log.Fatal("configuration error", "err", err)
	}

	// Assemble components
	completer, err := llm.NewClient(llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  apiKey,
		Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatal("llm client init failed", "err", err)
	}

	embedder, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.LLM.BaseURL,
		APIKey:    apiKey,
		Model:     cfg.Embedder.Model,
		Dimension: cfg.Embedder.Dimension,
		Timeout:   time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatal("embedder init failed", "err", err)
	}

	store, err := buildStore(cfg)
	if err != nil {
		log.Fatal("vector store init failed", "err", err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		log.Fatal("vector store init failed", "err", err)
	}

	searcher := websearch.NewDuckDuckGo(websearch.Config{})

	router := service.NewRouter(completer, cfg.LLM.RouterModel)
	executor := service.NewExecutor(
		embedder, store, searcher, completer,
		cfg.LLM.AnswerModel,
		cfg.Retrieval.TopK, cfg.Retrieval.WebMaxResults,
	)
	svc := service.NewChatService(router, executor)

	status := "Ready. Type a question."
	if count, err := store.Count(ctx); err == nil {
		status = fmt.Sprintf("Ready. Knowledge base holds %d chunks.", count)
	}

	m := tui.New(svc, status)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal("chat loop failed", "err", err)
	}
}

func buildStore(cfg *config.AppConfig) (domain.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "qdrant", "":
		q := cfg.VectorStore.Qdrant
		if q == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		return qdrant.NewStorage(qdrant.Config{
			URL:        q.URL,
			APIKey:     cfg.QdrantAPIKey(),
			Collection: q.Collection,
			Dimension:  cfg.Embedder.Dimension,
			Distance:   q.Distance,
			Timeout:    time.Duration(q.TimeoutSecs) * time.Second,
		}), nil
	case "memory":
		return memory.NewStorage(cfg.Embedder.Dimension), nil
	}
	return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
}
