// Ports (interfaces) the dispatcher depends on for observability.
package command

import "time"

// AuditLogger receives one record per dispatched request.
type AuditLogger interface {
	LogCommand(requestID, command string, args []string, outcome string, latency time.Duration)
}

// Metrics receives per-dispatch measurements.
type Metrics interface {
	RecordDispatch(command, outcome string, latency time.Duration)
}

// Outcome codes written to the audit log and metrics.
const (
	OutcomeSuccess      = "SUCCESS"
	OutcomeEmpty        = "EMPTY_COMMAND"
	OutcomeUnknown      = "UNKNOWN_COMMAND"
	OutcomeBadArgument  = "BAD_ARGUMENT"
	OutcomeNotSupported = "NOT_SUPPORTED"
	OutcomeUnavailable  = "UNAVAILABLE"
	OutcomeInvalidID    = "INVALID_ID"
	OutcomeInternal     = "INTERNAL"
)
