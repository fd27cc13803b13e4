package tactile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"withefuck/internal/logging"
)

// FallbackShell is used when $SHELL is unset.
const FallbackShell = "/bin/sh"

const waitDelay = time.Second

// ShellExecutor runs commands through the user's login shell with the terminal
// attached, so interactive commands behave as if typed.
type ShellExecutor struct {
	mu    sync.RWMutex
	shell string

	// auditCallback is called for execution events
	auditCallback func(AuditEvent)
}

// NewShellExecutor creates an executor for $SHELL, falling back to /bin/sh.
func NewShellExecutor() *ShellExecutor {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = FallbackShell
	}
	logging.TactileDebug("Creating new ShellExecutor with shell=%s", shell)
	return &ShellExecutor{shell: shell}
}

// Shell returns the shell commands run under by default.
func (e *ShellExecutor) Shell() string {
	return e.shell
}

// SetAuditCallback sets the callback for audit events.
func (e *ShellExecutor) SetAuditCallback(callback func(AuditEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.auditCallback = callback
}

// emitAudit emits an audit event if a callback is registered.
func (e *ShellExecutor) emitAudit(event AuditEvent) {
	e.mu.RLock()
	callback := e.auditCallback
	e.mu.RUnlock()

	if callback != nil {
		callback(event)
	}
}

// Execute runs `<shell> -lc <script>`.
func (e *ShellExecutor) Execute(ctx context.Context, cmd Command) (*ExecutionResult, error) {
	timer := logging.StartTimer(logging.CategoryTactile, "Shell command execution")
	defer timer.Stop()

	if cmd.Script == "" {
		return nil, fmt.Errorf("script is required")
	}
	shell := cmd.Shell
	if shell == "" {
		shell = e.shell
	}
	logging.Tactile("Executing command via %s: %s", shell, cmd.CommandString())

	result := &ExecutionResult{
		ExitCode: 1,
		Command:  &cmd,
	}

	e.emitAudit(AuditEvent{
		Type:         AuditEventStart,
		Timestamp:    time.Now(),
		Command:      cmd,
		ExecutorName: "shell",
	})

	execCmd := exec.CommandContext(ctx, shell, "-lc", cmd.Script)
	// Background children of a cancelled shell may hold the output pipes open.
	execCmd.WaitDelay = waitDelay
	execCmd.Dir = cmd.WorkingDirectory
	execCmd.Env = append(os.Environ(), cmd.Environment...)
	execCmd.Stdin = cmd.Stdin
	if execCmd.Stdin == nil {
		execCmd.Stdin = os.Stdin
	}
	execCmd.Stdout = cmd.Stdout
	if execCmd.Stdout == nil {
		execCmd.Stdout = os.Stdout
	}
	execCmd.Stderr = cmd.Stderr
	if execCmd.Stderr == nil {
		execCmd.Stderr = os.Stderr
	}

	result.StartedAt = time.Now()
	err := execCmd.Run()
	result.FinishedAt = time.Now()
	result.Duration = result.FinishedAt.Sub(result.StartedAt)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.Success = true
		result.ExitCode = 0
	case ctx.Err() != nil:
		result.Killed = true
		result.KillReason = ctx.Err().Error()
		result.Success = true
		logging.TactileDebug("Command canceled: %s", cmd.CommandString())
		e.emitAudit(AuditEvent{
			Type:         AuditEventKilled,
			Timestamp:    time.Now(),
			Command:      cmd,
			Result:       result,
			ExecutorName: "shell",
		})
		return result, nil
	case errors.As(err, &exitErr):
		// Command ran, just returned non-zero
		result.Success = true
		if code := exitErr.ExitCode(); code >= 0 {
			result.ExitCode = code
		}
		logging.TactileDebug("Command exited non-zero: %s -> %d", cmd.CommandString(), result.ExitCode)
	default:
		result.Error = err.Error()
		logging.TactileError("Command failed to start: %s - %v", shell, err)
		e.emitAudit(AuditEvent{
			Type:         AuditEventError,
			Timestamp:    time.Now(),
			Command:      cmd,
			Result:       result,
			ExecutorName: "shell",
		})
		return result, nil
	}

	e.emitAudit(AuditEvent{
		Type:         AuditEventComplete,
		Timestamp:    time.Now(),
		Command:      cmd,
		Result:       result,
		ExecutorName: "shell",
	})
	logging.Tactile("Command completed: exit=%d, duration=%s", result.ExitCode, result.Duration)
	return result, nil
}
