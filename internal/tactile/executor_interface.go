package tactile

import (
	"context"
)

// Executor is the interface for command execution.
type Executor interface {
	// Execute runs a command and returns its result. A command that runs and
	// exits non-zero is not an error.
	Execute(ctx context.Context, cmd Command) (*ExecutionResult, error)
}

// AuditedExecutor is an executor that reports audit events.
type AuditedExecutor interface {
	Executor

	// SetAuditCallback sets the callback for audit events.
	SetAuditCallback(callback func(AuditEvent))
}
