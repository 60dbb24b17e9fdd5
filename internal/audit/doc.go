// Package audit implements the append-only command audit log for the MCU
// Control Bridge.
//
// Every dispatched request produces one JSONL record: correlation ID,
// command, arguments, outcome code and latency. Audit writes are best-effort
// and never fail a request.
package audit
