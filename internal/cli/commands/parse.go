package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pcaparser/internal/logging"
	"github.com/ccollicutt/pcaparser/pkg/config"
	"github.com/ccollicutt/pcaparser/pkg/output"
	"github.com/ccollicutt/pcaparser/pkg/processor"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ParseOptions holds command-line options for a parsing run.
type ParseOptions struct {
	InputFolder  string
	OutputFolder string
	ConfigFile   string
	LogLevel     string
	Report       string
	Verbose      bool
	Quiet        bool
}

// BindParseFlags registers the parsing flags on cmd.
func BindParseFlags(cmd *cobra.Command, opts *ParseOptions) {
	cmd.Flags().StringVarP(&opts.InputFolder, "input_folder", "i", "", `Location of the text files that reside in C:\Windows\appcompat\pca`)
	cmd.Flags().StringVarP(&opts.OutputFolder, "output_folder", "o", "", "Path to output folder (default: Reports)")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Run summary format (text|json|none)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include per-artifact details in the run summary")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary totals only")
}

// RunParse converts the artifacts in the input folder to CSV reports.
func RunParse(cmd *cobra.Command, opts *ParseOptions) error {
	ExitCode = 0

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := buildConfig(ctx, opts)
	if err != nil {
		return err
	}

	logger := logging.Init(logging.ParseLevel(cfg.LogLevel))

	if err := config.CheckInputFolder(cfg.InputFolder); err != nil {
		_ = cmd.Help()
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	outDir, isDefault := config.ResolveOutputFolder(cfg.OutputFolder, cwd)
	created, err := config.EnsureOutputFolder(outDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if created {
		if isDefault {
			fmt.Fprintf(out, "[+] Output folder isn't provided. Creating the default - '%s' folder.\n\n", absPath(outDir))
		} else {
			fmt.Fprintf(out, "[+] Output folder does not exist. Creating the - '%s' folder.\n\n", absPath(outDir))
		}
	}

	p := processor.New(
		processor.WithLogger(logger),
		processor.WithProgress(out),
	)

	report, err := p.Run(ctx, cfg.InputFolder, outDir)
	if err != nil {
		return fmt.Errorf("processing %s: %w", cfg.InputFolder, err)
	}

	if err := printReport(ctx, cfg.Report, opts, report, cmd); err != nil {
		return err
	}

	if report.HasFailures() {
		ExitCode = 1
	}

	return nil
}

// buildConfig merges defaults, the optional config file, the environment and
// flags, in increasing order of precedence.
func buildConfig(ctx context.Context, opts *ParseOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigFile != "" {
		loaded, err := config.Load(ctx, opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironment()
	}

	if opts.InputFolder != "" {
		cfg.InputFolder = opts.InputFolder
	}
	if opts.OutputFolder != "" {
		cfg.OutputFolder = opts.OutputFolder
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Report != "" {
		cfg.Report = config.ReportFormat(opts.Report)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func createFormatter(format config.ReportFormat, opts *ParseOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch format {
	case config.ReportText:
		return output.NewTextFormatter(formatOpts), nil
	case config.ReportJSON:
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (use text, json, or none)", format)
	}
}

func printReport(ctx context.Context, format config.ReportFormat, opts *ParseOptions, report *output.Report, cmd *cobra.Command) error {
	if format == config.ReportNone {
		return nil
	}

	formatter, err := createFormatter(format, opts)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}
	return nil
}
