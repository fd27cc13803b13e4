package perception

import (
	"context"
	"time"

	"github.com/google/uuid"

	"withefuck/internal/logging"
)

type requestIDKey struct{}

// WithRequestID returns a context carrying the correlation id for one LLM call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the correlation id stored by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// TracingClient wraps any Client and records every call in the audit log under
// a fresh request id.
type TracingClient struct {
	underlying Client
	provider   Provider
	model      string
	newID      func() string
}

// NewTracingClient creates a tracing wrapper around an existing client.
func NewTracingClient(underlying Client, provider Provider, model string) *TracingClient {
	return &TracingClient{
		underlying: underlying,
		provider:   provider,
		model:      model,
		newID:      uuid.NewString,
	}
}

// Unwrap returns the wrapped client.
func (tc *TracingClient) Unwrap() Client { return tc.underlying }

// Suggest implements Client.
func (tc *TracingClient) Suggest(ctx context.Context, prompt string) (string, bool, error) {
	id := RequestIDFrom(ctx)
	if id == "" {
		id = tc.newID()
		ctx = WithRequestID(ctx, id)
	}
	target := string(tc.provider) + ":" + tc.model

	logging.Audit(logging.AuditEvent{
		Type:      logging.AuditLLMRequest,
		RequestID: id,
		Target:    target,
		Success:   true,
		Fields:    map[string]interface{}{"prompt_len": len(prompt)},
	})

	start := time.Now()
	suggestion, ok, err := tc.underlying.Suggest(ctx, prompt)
	elapsed := time.Since(start)

	if err != nil {
		logging.Audit(logging.AuditEvent{
			Type:      logging.AuditLLMError,
			RequestID: id,
			Target:    target,
			Duration:  elapsed,
			Error:     err.Error(),
		})
		return "", false, err
	}

	logging.Audit(logging.AuditEvent{
		Type:      logging.AuditLLMResponse,
		RequestID: id,
		Target:    target,
		Success:   true,
		Duration:  elapsed,
		Fields:    map[string]interface{}{"suggested": ok, "response_len": len(suggestion)},
	})
	return suggestion, ok, nil
}
