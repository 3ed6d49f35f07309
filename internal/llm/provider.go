package llm

import (
	"context"
	"fmt"
)

// Provider names accepted by the provider selectors.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// GeneratorConfig selects and configures a chat provider.
type GeneratorConfig struct {
	Provider string
	BaseURL  string // openai-compatible endpoint
	APIKey   string
	Model    string
}

// EmbedderConfig selects and configures an embedding provider.
type EmbedderConfig struct {
	Provider   string
	BaseURL    string // openai-compatible endpoint
	APIKey     string
	Model      string
	Dimensions int
}

// NewGenerator returns the configured chat provider.
func NewGenerator(ctx context.Context, cfg GeneratorConfig) (Generator, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, "", 0)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// NewEmbedder returns the configured embedding provider.
func NewEmbedder(ctx context.Context, cfg EmbedderConfig) (Embedder, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewEmbeddingsClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Dimensions), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, "", cfg.Model, cfg.Dimensions)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
