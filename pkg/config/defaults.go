package config

import "os"

// Default values for configuration.
const (
	DefaultOutputFolder = "Reports"
	DefaultLogLevel     = "info"
	DefaultReport       = ReportText
)

// Environment variable names.
const (
	EnvInputFolder  = "PCAPARSER_INPUT_FOLDER"
	EnvOutputFolder = "PCAPARSER_OUTPUT_FOLDER"
	EnvLogLevel     = "PCAPARSER_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Report:   DefaultReport,
	}
}

// ApplyEnvironment applies environment variable overrides to the config.
func (c *Config) ApplyEnvironment() {
	if v := os.Getenv(EnvInputFolder); v != "" {
		c.InputFolder = v
	}
	if v := os.Getenv(EnvOutputFolder); v != "" {
		c.OutputFolder = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
