package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hrassist/internal/config"
	"hrassist/internal/ingest"
	"hrassist/internal/llm"
	"hrassist/internal/vectorstore"
)

func main() {
	var sourcesPath string
	var indexDir string

	rootCmd := &cobra.Command{
		Use:          "reindex",
		Short:        "rebuild the HR document index from a sources file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), sourcesPath, indexDir)
		},
	}
	rootCmd.Flags().StringVar(&sourcesPath, "sources", "sources.txt", "path to the sources list (type, path per line)")
	rootCmd.Flags().StringVar(&indexDir, "index-dir", "", "index output directory (defaults to INDEX_DIR)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Reindex failed: %v", err)
	}
}

func run(ctx context.Context, sourcesPath, indexDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr so the report on stdout stays clean.
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	if indexDir == "" {
		indexDir = cfg.IndexDir
	}

	sources, err := ingest.LoadSources(ctx, sourcesPath)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources listed in %s", sourcesPath)
	}

	embedder, err := llm.NewEmbedder(ctx, llm.EmbedderConfig{
		Provider:   cfg.Provider,
		BaseURL:    cfg.EmbeddingBaseURL,
		APIKey:     cfg.LLMAPIKey,
		Model:      cfg.EmbeddingModelName,
		Dimensions: cfg.EmbeddingDim,
	})
	if err != nil {
		return fmt.Errorf("failed to create embedding client: %w", err)
	}

	var mirror *vectorstore.QdrantStore
	if cfg.QdrantURL != "" {
		if mirror, err = vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection); err != nil {
			return fmt.Errorf("failed to create Qdrant client: %w", err)
		}
	}

	pipeline := ingest.NewPipeline(embedder, mirror, ingest.Options{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})

	report, err := pipeline.Run(ctx, sources, indexDir)
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d chunks from %d sources in %s\n",
		report.Chunks, report.Sources, report.Duration.Round(time.Millisecond))
	fmt.Printf("Embedding dimension: %d\n", report.Dim)
	fmt.Printf("Chunk sizes (runes): min %d, max %d, mean %.1f, p95 %d\n",
		report.Sizes.Min, report.Sizes.Max, report.Sizes.Mean, report.Sizes.P95)
	fmt.Println("Chunks per category:")
	categories := make([]string, 0, len(report.Categories))
	for cat := range report.Categories {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Printf("  %-16s %d\n", cat, report.Categories[cat])
	}

	if report.SourcesFailed > 0 {
		return fmt.Errorf("%d sources failed to extract", report.SourcesFailed)
	}
	return nil
}
