package perception

import "time"

// Provider represents an LLM provider.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

const (
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3

	// DefaultRetryBackoffBase is the delay before the first retry; it doubles
	// each time.
	DefaultRetryBackoffBase = time.Second
)

// OpenAIConfig holds configuration for the OpenAI-compatible client.
type OpenAIConfig struct {
	APIKey string
	// Endpoint is the full chat completions URL, e.g.
	// https://api.openai.com/v1/chat/completions
	Endpoint    string
	Model       string
	Temperature float32

	Timeout          time.Duration
	MaxRetries       int
	RetryBackoffBase time.Duration
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey      string
	BaseURL     string // optional override of the API host
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// =============================================================================
// OPENAI WIRE TYPES
// =============================================================================

// OpenAIMessage is one chat message.
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIRequest is the chat completions request body.
type OpenAIRequest struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	Temperature float32         `json:"temperature"`
}

// OpenAIResponse is the subset of the chat completions response we read.
type OpenAIResponse struct {
	ID      string `json:"id,omitempty"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
