// Package config provides configuration loading and validation for pcaparser.
package config

// ReportFormat selects how the run summary is printed.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportJSON ReportFormat = "json"
	ReportNone ReportFormat = "none"
)

// Config is the root configuration structure loaded from YAML.
// Command-line flags take precedence over every field.
type Config struct {
	// InputFolder holds the PCA artifact files, usually a copy of
	// C:\Windows\appcompat\pca.
	InputFolder string `yaml:"input_folder"`

	// OutputFolder receives the CSV reports. Empty means DefaultOutputFolder.
	OutputFolder string `yaml:"output_folder,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Report is the run summary format printed after processing.
	Report ReportFormat `yaml:"report,omitempty"`
}
