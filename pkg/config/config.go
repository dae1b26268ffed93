package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironment()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills empty fields with defaults.
// The input folder is not required here because it may still come from a flag.
func Validate(cfg *Config) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: invalid level %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if cfg.Report == "" {
		cfg.Report = DefaultReport
	}
	switch cfg.Report {
	case ReportText, ReportJSON, ReportNone:
	default:
		return fmt.Errorf("report: invalid format %q (must be text, json, or none)", cfg.Report)
	}

	return nil
}
