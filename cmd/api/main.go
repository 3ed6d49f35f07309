package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"hrassist/internal/config"
	"hrassist/internal/embedcache"
	"hrassist/internal/format"
	"hrassist/internal/guard"
	"hrassist/internal/handlers"
	"hrassist/internal/http"
	"hrassist/internal/llm"
	"hrassist/internal/memory"
	"hrassist/internal/query"
	"hrassist/internal/respond"
	"hrassist/internal/retrieval"
	"hrassist/internal/service"
	"hrassist/internal/storage"
	"hrassist/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx := context.Background()

	// Open the chunk store. A missing file yields an empty store, so the
	// server starts cleanly before the first reindex.
	db, err := storage.New(filepath.Join(cfg.IndexDir, vectorstore.ChunksFile))
	if err != nil {
		log.Fatalf("Failed to open chunk store: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	chunkRepo := storage.NewChunkRepo(db)

	chunks, err := chunkRepo.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list chunks: %v", err)
	}
	keyword := retrieval.NewKeywordIndex(chunks)
	slog.Info("Chunk store loaded", "chunks", len(chunks))

	// Pick the vector backend: Qdrant when configured, the on-disk flat
	// index otherwise.
	var searcher vectorstore.Searcher
	var counter handlers.IndexCounter
	if cfg.QdrantURL != "" {
		qdrant, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		if err := qdrant.EnsureCollection(ctx, cfg.EmbeddingDim); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		searcher, counter = qdrant, qdrant
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingDim)
	} else {
		flat := vectorstore.NewFlatIndex()
		if err := flat.Load(ctx, cfg.IndexDir); err != nil {
			slog.Warn("Vector index not loaded, semantic search degrades until reindex runs",
				"dir", cfg.IndexDir, "error", err)
		} else {
			if flat.Dim() != cfg.EmbeddingDim {
				log.Fatalf("Index dimension mismatch: index has %d, EMBEDDING_DIM is %d (rebuild with cmd/reindex)",
					flat.Dim(), cfg.EmbeddingDim)
			}
			slog.Info("Vector index loaded", "chunks", flat.Len(), "dim", flat.Dim())
		}
		searcher, counter = flat, flat
	}

	// LLM clients (external service layer)
	embedder, err := llm.NewEmbedder(ctx, llm.EmbedderConfig{
		Provider:   cfg.Provider,
		BaseURL:    cfg.EmbeddingBaseURL,
		APIKey:     cfg.LLMAPIKey,
		Model:      cfg.EmbeddingModelName,
		Dimensions: cfg.EmbeddingDim,
	})
	if err != nil {
		log.Fatalf("Failed to create embedding client: %v", err)
	}
	embedder = embedcache.Wrap(embedder, cfg.EmbedCacheSize, cfg.EmbedCacheTTL)

	model, err := llm.NewGenerator(ctx, llm.GeneratorConfig{
		Provider: cfg.Provider,
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModelName,
	})
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	// Assemble the answer pipeline
	engine := retrieval.NewEngine(embedder, searcher, keyword, retrieval.Options{
		MinScore: cfg.MinScore,
		Weights:  cfg.Weights,
	})
	responder := respond.NewGenerator(model, guard.New(guard.ParseLevel(cfg.VerificationLevel)), format.DefaultURLMap())
	answers := service.NewAnswerService(query.NewProcessor(), engine, responder)
	sessions := memory.NewStore(cfg.SessionLimit, cfg.SessionWindow, cfg.SessionTTL)
	slog.Info("Answer pipeline initialized",
		"provider", cfg.Provider,
		"verification", cfg.VerificationLevel,
	)

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		Answers:  answers,
		Sessions: sessions,
		Index:    counter,
		IndexDim: cfg.EmbeddingDim,
		Provider: cfg.Provider,
	})

	srv := &nethttp.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Starting API server", "addr", srv.Addr)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	<-stopCtx.Done()
	slog.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
