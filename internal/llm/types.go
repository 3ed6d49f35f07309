package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks hrassist/internal/llm Generator,Embedder

import "context"

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces text from a chat-style prompt. Implemented by the
// OpenAI-compatible client and the Gemini client.
type Generator interface {
	// ChatWithMessages sends the full message list and returns the reply text.
	ChatWithMessages(ctx context.Context, messages []Message) (string, error)
}

// Embedder turns texts into fixed-dimension vectors.
type Embedder interface {
	// EmbedTexts returns one vector per input text, in order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions returns the vector size every embedding is validated against.
	Dimensions() int
}
