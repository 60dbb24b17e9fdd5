package config

import (
	"fmt"
	"time"
)

// Bridge holds the runtime configuration of the bridge daemon.
type Bridge struct {
	// ListenPort is the TCP port the bridge binds on all interfaces.
	// Port 0 selects an ephemeral port (used by tests).
	ListenPort int

	// AcceptTimeout bounds each accept call so the acceptor can perform
	// periodic liveness checks and observe shutdown.
	AcceptTimeout time.Duration

	// ReadTimeout bounds the single request read per connection.
	ReadTimeout time.Duration

	// WriteTimeout bounds the single response write per connection.
	WriteTimeout time.Duration

	// MaxRequestBytes is the size of the one bounded read per connection.
	MaxRequestBytes int

	// TickInterval is the cadence of the host loop that drains the
	// request queue.
	TickInterval time.Duration

	// AuditDir is the directory the audit log is written to.
	AuditDir string

	// MetricsEnabled turns the OpenTelemetry request metrics on.
	MetricsEnabled bool
}

// Default returns the built-in configuration baseline.
func Default() *Bridge {
	return &Bridge{
		ListenPort:      9999,
		AcceptTimeout:   1 * time.Second,
		ReadTimeout:     2 * time.Second,
		WriteTimeout:    2 * time.Second,
		MaxRequestBytes: 1024,
		TickInterval:    10 * time.Millisecond,
		AuditDir:        "logs",
		MetricsEnabled:  false,
	}
}

// Validate checks the configuration for values the bridge cannot run with.
func Validate(cfg *Bridge) error {
	if cfg.ListenPort < 0 || cfg.ListenPort > 65535 {
		return fmt.Errorf("listen port %d is outside [0, 65535]", cfg.ListenPort)
	}
	if cfg.AcceptTimeout <= 0 {
		return fmt.Errorf("accept timeout must be positive, got %v", cfg.AcceptTimeout)
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.MaxRequestBytes < 16 {
		return fmt.Errorf("max request bytes must be at least 16, got %d", cfg.MaxRequestBytes)
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", cfg.TickInterval)
	}
	if cfg.AuditDir == "" {
		return fmt.Errorf("audit directory must not be empty")
	}
	return nil
}
