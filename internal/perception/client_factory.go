package perception

import (
	"context"
	"fmt"

	"withefuck/internal/config"
	"withefuck/internal/logging"
)

// NewClient creates the backend selected by cfg.Provider, wrapped in a
// TracingClient.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	provider := Provider(cfg.ActiveProvider())
	logging.APIDebug("NewClient: provider=%s model=%s", provider, cfg.Model)

	var client Client
	switch provider {
	case ProviderOpenAI:
		client = NewOpenAIClient(OpenAIConfig{
			APIKey:      cfg.APIKey,
			Endpoint:    cfg.APIEndpoint,
			Model:       cfg.Model,
			Temperature: float32(cfg.Temperature),
			MaxRetries:  DefaultMaxRetries,
		})
	case ProviderGemini:
		gc, err := NewGeminiClient(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.APIEndpoint,
			Model:       cfg.Model,
			Temperature: float32(cfg.Temperature),
		})
		if err != nil {
			return nil, err
		}
		client = gc
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
	return NewTracingClient(client, provider, cfg.Model), nil
}
