package llm

import "context"

// Chat message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one turn of a chat completion request.
type ChatMessage struct {
	Role    string
	Content string
}

// Provider supplies the two capabilities the pipeline consumes: text
// embedding and single-turn text completion. No streaming is required.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces a completion for the given messages
	Generate(ctx context.Context, messages []ChatMessage) (string, error)

	// Embed computes the embedding vector for the given text
	Embed(ctx context.Context, text string) ([]float32, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "ollama"
	Provider string

	// Model is the chat model name
	Model string

	// EmbedModel is the embedding model name
	EmbedModel string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama's OpenAI-compatible API)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens limits response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		Model:      "",
		EmbedModel: "",
		Timeout:    30,
		MaxTokens:  1000,
	}
}
