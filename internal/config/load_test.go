package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ListenPort != 9999 {
		t.Errorf("ListenPort = %d, want 9999", cfg.ListenPort)
	}
	if cfg.AcceptTimeout != 1*time.Second {
		t.Errorf("AcceptTimeout = %v, want 1s", cfg.AcceptTimeout)
	}
	if cfg.MaxRequestBytes != 1024 {
		t.Errorf("MaxRequestBytes = %d, want 1024", cfg.MaxRequestBytes)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(Default()) failed: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MCB_PORT", "7777")
	t.Setenv("MCB_ACCEPT_TIMEOUT", "250ms")
	t.Setenv("MCB_MAX_REQUEST_BYTES", "2048")
	t.Setenv("MCB_METRICS", "true")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.ListenPort != 7777 {
		t.Errorf("ListenPort = %d, want 7777", cfg.ListenPort)
	}
	if cfg.AcceptTimeout != 250*time.Millisecond {
		t.Errorf("AcceptTimeout = %v, want 250ms", cfg.AcceptTimeout)
	}
	if cfg.MaxRequestBytes != 2048 {
		t.Errorf("MaxRequestBytes = %d, want 2048", cfg.MaxRequestBytes)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled = false, want true")
	}
}

func TestEnvOverridesIgnoreMalformed(t *testing.T) {
	t.Setenv("MCB_PORT", "not-a-port")
	t.Setenv("MCB_READ_TIMEOUT", "soon")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.ListenPort != 9999 {
		t.Errorf("ListenPort = %d, want default 9999 for malformed override", cfg.ListenPort)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Errorf("ReadTimeout = %v, want default 2s for malformed override", cfg.ReadTimeout)
	}
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("listenPort: 6000\ntickInterval: 5ms\nauditDir: /var/log/mcb\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := Default()
	if err := applyFile(cfg, path); err != nil {
		t.Fatalf("applyFile() failed: %v", err)
	}

	if cfg.ListenPort != 6000 {
		t.Errorf("ListenPort = %d, want 6000", cfg.ListenPort)
	}
	if cfg.TickInterval != 5*time.Millisecond {
		t.Errorf("TickInterval = %v, want 5ms", cfg.TickInterval)
	}
	if cfg.AuditDir != "/var/log/mcb" {
		t.Errorf("AuditDir = %q, want /var/log/mcb", cfg.AuditDir)
	}
	// Keys absent from the file keep their defaults.
	if cfg.MaxRequestBytes != 1024 {
		t.Errorf("MaxRequestBytes = %d, want untouched default 1024", cfg.MaxRequestBytes)
	}
}

func TestApplyFileRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("readTimeout: whenever\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := Default()
	if err := applyFile(cfg, path); err == nil {
		t.Error("applyFile() accepted a malformed duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Bridge)
	}{
		{"negative port", func(c *Bridge) { c.ListenPort = -1 }},
		{"port too large", func(c *Bridge) { c.ListenPort = 70000 }},
		{"zero accept timeout", func(c *Bridge) { c.AcceptTimeout = 0 }},
		{"zero read timeout", func(c *Bridge) { c.ReadTimeout = 0 }},
		{"zero write timeout", func(c *Bridge) { c.WriteTimeout = 0 }},
		{"tiny request buffer", func(c *Bridge) { c.MaxRequestBytes = 1 }},
		{"zero tick interval", func(c *Bridge) { c.TickInterval = 0 }},
		{"empty audit dir", func(c *Bridge) { c.AuditDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Validate() accepted an invalid configuration")
			}
		})
	}
}

func TestValidateAllowsEphemeralPort(t *testing.T) {
	cfg := Default()
	cfg.ListenPort = 0
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() rejected port 0: %v", err)
	}
}
