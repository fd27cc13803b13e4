package logging

import (
	"time"
)

// =============================================================================
// AUDIT EVENTS
// =============================================================================
// Audit events are the externally visible actions of a run: what was sent to the
// model, what came back, and what was executed. They go to their own category
// so they can be grepped out of the JSON logs.

// CategoryAudit holds audit events.
const CategoryAudit Category = "audit"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	AuditTranscriptParsed AuditEventType = "transcript_parsed"

	AuditLLMRequest  AuditEventType = "llm_request"
	AuditLLMResponse AuditEventType = "llm_response"
	AuditLLMError    AuditEventType = "llm_error"

	AuditExecStart    AuditEventType = "exec_start"
	AuditExecComplete AuditEventType = "exec_complete"
	AuditExecError    AuditEventType = "exec_error"
)

// AuditEvent is one structured audit record.
type AuditEvent struct {
	Type      AuditEventType
	Timestamp time.Time
	RequestID string
	Target    string // command, model or log path
	Success   bool
	Duration  time.Duration
	Error     string
	Fields    map[string]interface{}
}

// Audit writes an audit event. Like every category it is a no-op unless debug
// mode is on.
func Audit(e AuditEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	kv := []interface{}{
		"event", string(e.Type),
		"event_ts", e.Timestamp.UnixMilli(),
		"target", e.Target,
		"success", e.Success,
	}
	if e.RequestID != "" {
		kv = append(kv, "req", e.RequestID)
	}
	if e.Duration > 0 {
		kv = append(kv, "duration_ms", e.Duration.Milliseconds())
	}
	if e.Error != "" {
		kv = append(kv, "error", e.Error)
	}
	for k, v := range e.Fields {
		kv = append(kv, k, v)
	}
	Get(CategoryAudit).sugar.Infow(string(e.Type), kv...)
}
