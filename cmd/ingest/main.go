package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"agentrag/internal/chunker"
	"agentrag/internal/config"
	"agentrag/internal/domain"
	"agentrag/internal/embedding"
	"agentrag/internal/fetcher"
	"agentrag/internal/service"
	"agentrag/internal/vectorstore/memory"
	"agentrag/internal/vectorstore/qdrant"
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

	url := cfg.Ingest.DefaultURL
	if args := flag.Args(); len(args) > 0 {
		url = args[0]
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		fmt.Fprintf(os.Stderr, "Usage: ingest [--config=config.yaml] [url]\n")
		log.Fatal("invalid URL, must start with http:// or https://", "url", url)
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

	fetch := fetcher.NewJina(fetcher.Config{
		ReaderPrefix: cfg.Ingest.ReaderPrefix,
		Timeout:      time.Duration(cfg.Ingest.TimeoutSecs) * time.Second,
	})
	split := chunker.NewTokenChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap, cfg.Chunker.Encoding)
	ingestor := service.NewIngestor(fetch, split, embedder, store)

	log.Info("starting ingestion", "url", url, "collection", collectionName(cfg))
	report, err := ingestor.Ingest(ctx, url)
	if err != nil {
		log.Fatal("ingestion failed", "err", err)
	}
	log.Info("ingestion completed", "url", report.URL, "chunks", report.Chunks, "total_points", report.TotalCount)
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

func collectionName(cfg *config.AppConfig) string {
	if cfg.VectorStore.Qdrant != nil {
		return cfg.VectorStore.Qdrant.Collection
	}
	return cfg.VectorStore.Type
}
