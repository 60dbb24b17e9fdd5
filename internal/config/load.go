package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional YAML configuration file looked up in the
// working directory.
const ConfigFile = "config.yaml"

// Load merges Default() + MCB_* environment overrides + optional config.yaml
// and validates the result.
func Load() (*Bridge, error) {
	cfg := Default()

	applyEnvOverrides(cfg)

	if _, err := os.Stat(ConfigFile); err == nil {
		if err := applyFile(cfg, ConfigFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", ConfigFile, err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies MCB_* environment variables to the config.
// Malformed values are ignored and the previous value kept.
func applyEnvOverrides(cfg *Bridge) {
	if val := os.Getenv("MCB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.ListenPort = port
		}
	}

	if val := os.Getenv("MCB_ACCEPT_TIMEOUT"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			cfg.AcceptTimeout = duration
		}
	}

	if val := os.Getenv("MCB_READ_TIMEOUT"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			cfg.ReadTimeout = duration
		}
	}

	if val := os.Getenv("MCB_WRITE_TIMEOUT"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			cfg.WriteTimeout = duration
		}
	}

	if val := os.Getenv("MCB_MAX_REQUEST_BYTES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.MaxRequestBytes = n
		}
	}

	if val := os.Getenv("MCB_TICK_INTERVAL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			cfg.TickInterval = duration
		}
	}

	if val := os.Getenv("MCB_AUDIT_DIR"); val != "" {
		cfg.AuditDir = val
	}

	if val := os.Getenv("MCB_METRICS"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			cfg.MetricsEnabled = enabled
		}
	}
}

// fileConfig mirrors Bridge with optional fields so that an absent key
// keeps the current value. Durations are YAML strings in time.ParseDuration
// syntax.
type fileConfig struct {
	ListenPort      *int    `yaml:"listenPort"`
	AcceptTimeout   *string `yaml:"acceptTimeout"`
	ReadTimeout     *string `yaml:"readTimeout"`
	WriteTimeout    *string `yaml:"writeTimeout"`
	MaxRequestBytes *int    `yaml:"maxRequestBytes"`
	TickInterval    *string `yaml:"tickInterval"`
	AuditDir        *string `yaml:"auditDir"`
	MetricsEnabled  *bool   `yaml:"metricsEnabled"`
}

// applyFile overlays values from a YAML file onto the config.
func applyFile(cfg *Bridge, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	if file.ListenPort != nil {
		cfg.ListenPort = *file.ListenPort
	}
	if file.AcceptTimeout != nil {
		d, err := time.ParseDuration(*file.AcceptTimeout)
		if err != nil {
			return fmt.Errorf("invalid acceptTimeout: %w", err)
		}
		cfg.AcceptTimeout = d
	}
	if file.ReadTimeout != nil {
		d, err := time.ParseDuration(*file.ReadTimeout)
		if err != nil {
			return fmt.Errorf("invalid readTimeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if file.WriteTimeout != nil {
		d, err := time.ParseDuration(*file.WriteTimeout)
		if err != nil {
			return fmt.Errorf("invalid writeTimeout: %w", err)
		}
		cfg.WriteTimeout = d
	}
	if file.MaxRequestBytes != nil {
		cfg.MaxRequestBytes = *file.MaxRequestBytes
	}
	if file.TickInterval != nil {
		d, err := time.ParseDuration(*file.TickInterval)
		if err != nil {
			return fmt.Errorf("invalid tickInterval: %w", err)
		}
		cfg.TickInterval = d
	}
	if file.AuditDir != nil {
		cfg.AuditDir = *file.AuditDir
	}
	if file.MetricsEnabled != nil {
		cfg.MetricsEnabled = *file.MetricsEnabled
	}

	return nil
}
