package perception

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"withefuck/internal/logging"
)

// OpenAIClient implements Client for any OpenAI-compatible chat completions
// endpoint.
type OpenAIClient struct {
	apiKey      string
	endpoint    string
	model       string
	temperature float32
	httpClient  *http.Client

	maxRetries  int
	backoffBase time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(config OpenAIConfig) *OpenAIClient {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryBackoffBase <= 0 {
		config.RetryBackoffBase = DefaultRetryBackoffBase
	}
	return &OpenAIClient{
		apiKey:      config.APIKey,
		endpoint:    config.Endpoint,
		model:       config.Model,
		temperature: config.Temperature,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		maxRetries:  config.MaxRetries,
		backoffBase: config.RetryBackoffBase,
		sleep:       sleepCtx,
	}
}

// Suggest implements Client.
func (c *OpenAIClient) Suggest(ctx context.Context, prompt string) (string, bool, error) {
	content, err := c.Complete(ctx, prompt)
	if err != nil {
		return "", false, err
	}
	s, ok := interpret(content)
	return s, ok, nil
}

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	log := requestLogger(ctx)
	startTime := time.Now()
	log.Debug("[OpenAI] Complete: model=%s endpoint=%s prompt_len=%d", c.model, c.endpoint, len(prompt))

	reqBody := OpenAIRequest{
		Model:       c.model,
		Messages:    []OpenAIMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// Retry loop for transport errors and rate limits
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			delay := c.backoffBase * time.Duration(1<<uint(i-1))
			log.Warn("[OpenAI] Complete: retry %d/%d in %v: %v", i, c.maxRetries, delay, lastErr)
			if err := c.sleep(ctx, delay); err != nil {
				return "", fmt.Errorf("API call error: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("API call error: %w", ctx.Err())
			}
			lastErr = fmt.Errorf("API call error: %w", err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("API call error: failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("API call failed: %s", string(body))
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			log.Error("[OpenAI] Complete: status %d after %v", resp.StatusCode, time.Since(startTime))
			return "", fmt.Errorf("API call failed: %s", string(body))
		}

		var openaiResp OpenAIResponse
		if err := json.Unmarshal(body, &openaiResp); err != nil {
			return "", fmt.Errorf("API response parse error: %w", err)
		}
		if len(openaiResp.Choices) == 0 {
			log.Error("[OpenAI] Complete: no choices returned")
			return "", fmt.Errorf("API response format error: no choices")
		}

		response := strings.TrimSpace(openaiResp.Choices[0].Message.Content)
		log.Info("[OpenAI] Complete: completed in %v response_len=%d attempts=%d", time.Since(startTime), len(response), i+1)
		return response, nil
	}

	log.Error("[OpenAI] Complete: max retries exceeded after %v: %v", time.Since(startTime), lastErr)
	return "", lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// requestLogger returns the API logger carrying the request id from ctx, if any.
func requestLogger(ctx context.Context) *logging.Logger {
	if id := RequestIDFrom(ctx); id != "" {
		return logging.WithRequestID(logging.CategoryAPI, id).Logger
	}
	return logging.Get(logging.CategoryAPI)
}
