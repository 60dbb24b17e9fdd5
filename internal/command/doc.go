// Package command implements the command dispatcher for the MCU Control
// Bridge.
//
// The dispatcher maps a request line to one peripheral call through a static
// descriptor table built at initialization. Each handler owns its own
// argument conversion and its own mapping of peripheral sentinel codes to
// client-facing error text. Dispatch is the error boundary of a request:
// panics are recovered, logged and rendered as generic error responses, and
// every dispatch is audit-logged with its outcome and latency.
package command
