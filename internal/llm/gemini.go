package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Generator and Embedder against the Gemini API.
type GeminiClient struct {
	client       *genai.Client
	Model        string
	EmbedModel   string
	ExpectedSize int
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey, model, embedModel string, expectedSize int) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:       client,
		Model:        model,
		EmbedModel:   embedModel,
		ExpectedSize: expectedSize,
	}, nil
}

// ChatWithMessages sends the message list to Gemini. System messages become
// the system instruction; assistant turns map to the "model" role.
func (c *GeminiClient) ChatWithMessages(ctx context.Context, messages []Message) (string, error) {
	var config *genai.GenerateContentConfig
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			config = &genai.GenerateContentConfig{
				SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: m.Content}}},
			}
		case "assistant":
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: m.Content}}})
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Dimensions returns the vector size embeddings are validated against.
func (c *GeminiClient) Dimensions() int {
	return c.ExpectedSize
}

// EmbedTexts embeds all texts in one call and validates vector sizes.
func (c *GeminiClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, &genai.Content{Parts: []*genai.Part{{Text: t}}})
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.EmbedModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	result := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if len(emb.Values) != c.ExpectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(emb.Values), c.ExpectedSize)
		}
		result[i] = emb.Values
	}
	return result, nil
}
