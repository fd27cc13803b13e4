package tactile

import (
	"withefuck/internal/logging"
)

// LogAudit forwards an executor audit event to the audit log. Pass it to
// SetAuditCallback.
func LogAudit(e AuditEvent) {
	ev := logging.AuditEvent{
		Timestamp: e.Timestamp,
		RequestID: e.Command.RequestID,
		Target:    e.Command.CommandString(),
		Fields:    map[string]interface{}{"executor": e.ExecutorName},
	}

	switch e.Type {
	case AuditEventStart:
		ev.Type = logging.AuditExecStart
		ev.Success = true
	case AuditEventComplete, AuditEventKilled:
		ev.Type = logging.AuditExecComplete
		ev.Success = true
	case AuditEventError:
		ev.Type = logging.AuditExecError
	default:
		return
	}

	if r := e.Result; r != nil {
		ev.Duration = r.Duration
		ev.Error = r.Error
		ev.Fields["exit_code"] = r.ExitCode
		if r.Killed {
			ev.Fields["kill_reason"] = r.KillReason
		}
	}
	logging.Audit(ev)
}
