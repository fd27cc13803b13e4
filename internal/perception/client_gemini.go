package perception

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the part of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements Client for Google Gemini through the genai SDK.
type GeminiClient struct {
	models      contentGenerator
	model       string
	temperature float32
	timeout     time.Duration
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config GeminiConfig) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		cc.HTTPOptions.BaseURL = config.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGeminiClient(client.Models, config), nil
}

func newGeminiClient(models contentGenerator, config GeminiConfig) *GeminiClient {
	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = DefaultGeminiModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiClient{
		models:      models,
		model:       model,
		temperature: config.Temperature,
		timeout:     timeout,
	}
}

// Suggest implements Client.
func (c *GeminiClient) Suggest(ctx context.Context, prompt string) (string, bool, error) {
	content, err := c.Complete(ctx, prompt)
	if err != nil {
		return "", false, err
	}
	s, ok := interpret(content)
	return s, ok, nil
}

// Complete sends the prompt and returns the text of the first candidate.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	// Auto-apply timeout if context has no deadline
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log := requestLogger(ctx)
	startTime := time.Now()
	log.Debug("[Gemini] Complete: model=%s prompt_len=%d", c.model, len(prompt))

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	})
	if err != nil {
		log.Error("[Gemini] Complete: failed after %v: %v", time.Since(startTime), err)
		return "", fmt.Errorf("API call failed: %w", err)
	}

	text, err := candidateText(resp)
	if err != nil {
		log.Error("[Gemini] Complete: %v", err)
		return "", err
	}
	log.Info("[Gemini] Complete: completed in %v response_len=%d", time.Since(startTime), len(text))
	return strings.TrimSpace(text), nil
}

func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("API response format error: no choices")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", nil
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}
