package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"hrassist/internal/retrieval"
)

// Config holds all configuration for the application.
type Config struct {
	Provider     string // openai or gemini, drives both chat and embeddings
	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string

	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingDim       int

	IndexDir         string
	QdrantURL        string // empty runs on the flat index alone
	QdrantCollection string

	Weights  retrieval.Weights
	MinScore float64

	VerificationLevel string

	ChunkSize    int
	ChunkOverlap int

	EmbedCacheSize int
	EmbedCacheTTL  time.Duration

	SessionLimit  int
	SessionWindow int
	SessionTTL    time.Duration

	APIPort         string
	LogLevel        slog.Level
	LogFormat       string // json or text
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		Provider:           getEnv("LLM_PROVIDER", "openai"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		IndexDir:           getEnv("INDEX_DIR", "./data/index"),
		QdrantURL:          getEnv("QDRANT_URL", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "hr_documents"),
		VerificationLevel:  getEnv("VERIFICATION_LEVEL", "strict"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}

	switch cfg.Provider {
	case "openai", "gemini":
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be openai or gemini, got %q", cfg.Provider)
	}

	// Gemini rejects placeholder keys on the first call, so catch the
	// misconfiguration at startup instead.
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	if cfg.LLMAPIKey == "" {
		if cfg.Provider == "gemini" {
			return nil, fmt.Errorf("LLM_API_KEY is required when LLM_PROVIDER is gemini")
		}
		cfg.LLMAPIKey = "dummy-key" // llama.cpp wants a non-empty bearer token
	}

	// Parse EMBEDDING_DIM
	// Note: This must match the output vector size of the embeddings model
	// (1024 for granite-embedding-278m-multilingual, 768 for text-embedding-004).
	// A stored index built with a different size will refuse to load; changing
	// the model means rebuilding the index with cmd/reindex.
	dimStr := getEnv("EMBEDDING_DIM", "")
	if dimStr == "" {
		return nil, fmt.Errorf("EMBEDDING_DIM is required")
	}
	dim, err := strconv.Atoi(dimStr)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_DIM must be a valid integer: %w", err)
	}
	if dim <= 0 {
		return nil, fmt.Errorf("EMBEDDING_DIM must be greater than 0")
	}
	cfg.EmbeddingDim = dim

	// Retrieval tuning starts from the engine defaults and overrides per field.
	defaults := retrieval.DefaultOptions()
	cfg.Weights = defaults.Weights
	if cfg.MinScore, err = getFloat("MIN_SCORE", defaults.MinScore); err != nil {
		return nil, err
	}
	if cfg.Weights.Relevance, err = getFloat("WEIGHT_RELEVANCE", cfg.Weights.Relevance); err != nil {
		return nil, err
	}
	if cfg.Weights.Confidence, err = getFloat("WEIGHT_CONFIDENCE", cfg.Weights.Confidence); err != nil {
		return nil, err
	}
	if cfg.Weights.ChunkQuality, err = getFloat("WEIGHT_CHUNK_QUALITY", cfg.Weights.ChunkQuality); err != nil {
		return nil, err
	}
	if cfg.Weights.SourceReliability, err = getFloat("WEIGHT_SOURCE_RELIABILITY", cfg.Weights.SourceReliability); err != nil {
		return nil, err
	}
	if cfg.Weights.ContextMatch, err = getFloat("WEIGHT_CONTEXT_MATCH", cfg.Weights.ContextMatch); err != nil {
		return nil, err
	}
	sum := cfg.Weights.Relevance + cfg.Weights.Confidence + cfg.Weights.ChunkQuality +
		cfg.Weights.SourceReliability + cfg.Weights.ContextMatch
	if math.Abs(sum-1.0) > 0.01 {
		return nil, fmt.Errorf("score weights must sum to 1.0, got %.2f", sum)
	}

	if cfg.ChunkSize, err = getInt("CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getInt("CHUNK_OVERLAP", 200); err != nil {
		return nil, err
	}
	if cfg.EmbedCacheSize, err = getInt("EMBED_CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.EmbedCacheTTL, err = getDuration("EMBED_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionLimit, err = getInt("SESSION_LIMIT", 1024); err != nil {
		return nil, err
	}
	if cfg.SessionWindow, err = getInt("SESSION_WINDOW", 10); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}

	// Create the index directory if it doesn't exist (cmd/reindex writes here)
	if err := os.MkdirAll(cfg.IndexDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt parses an integer environment variable, returning the default when unset.
func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return value, nil
}

// getFloat parses a float environment variable, returning the default when unset.
func getFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return value, nil
}

// getDuration parses a duration environment variable such as "30s" or "5m",
// returning the default when unset.
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return value, nil
}
