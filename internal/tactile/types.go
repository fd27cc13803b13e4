// Package tactile executes the command the user confirmed.
package tactile

import (
	"io"
	"time"
)

// Command is the input specification for an executor.
type Command struct {
	// Script is the shell source to run, e.g. "git status".
	Script string `json:"script"`

	// Shell overrides the executor's shell for this command.
	Shell string `json:"shell,omitempty"`

	// WorkingDirectory defaults to the current directory.
	WorkingDirectory string `json:"working_directory,omitempty"`

	// Environment is appended to the inherited environment (KEY=VALUE).
	Environment []string `json:"environment,omitempty"`

	// Stdio defaults to the process's own terminal streams.
	Stdin  io.Reader `json:"-"`
	Stdout io.Writer `json:"-"`
	Stderr io.Writer `json:"-"`

	// RequestID links the execution to the LLM request that suggested it.
	RequestID string `json:"request_id,omitempty"`
}

// CommandString returns the script as the user would type it.
func (c Command) CommandString() string {
	return c.Script
}

// ExecutionResult is the outcome of running a Command.
type ExecutionResult struct {
	// ExitCode is the process exit code; 1 when none is available.
	ExitCode int `json:"exit_code"`

	// Success reports that the shell ran, whatever the exit code.
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Killed is set when the context ended the process.
	Killed     bool   `json:"killed,omitempty"`
	KillReason string `json:"kill_reason,omitempty"`

	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`

	Command *Command `json:"command,omitempty"`
}

// IsNonZeroExit returns true if the command exited with non-zero code.
func (r *ExecutionResult) IsNonZeroExit() bool {
	return r.ExitCode != 0
}

// AuditEventType categorizes audit events.
type AuditEventType string

const (
	AuditEventStart    AuditEventType = "start"
	AuditEventComplete AuditEventType = "complete"
	AuditEventKilled   AuditEventType = "killed"
	AuditEventError    AuditEventType = "error"
)

// AuditEvent represents an execution event.
type AuditEvent struct {
	// Type is the event category.
	Type AuditEventType `json:"type"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Command is the command being executed.
	Command Command `json:"command"`

	// Result is the execution result (for complete/killed/error events).
	Result *ExecutionResult `json:"result,omitempty"`

	// ExecutorName is which executor handled this.
	ExecutorName string `json:"executor_name"`
}
