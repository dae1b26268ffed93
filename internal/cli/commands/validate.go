package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pcaparser/pkg/config"
	"github.com/ccollicutt/pcaparser/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a pcaparser configuration file without processing any artifacts.

Checks:
  - YAML syntax
  - Log level and report format values
  - Input folder existence (warning only)
  - Which PCA artifacts the input folder contains`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Input folder:  %s\n", valueOrNone(cfg.InputFolder))
	fmt.Fprintf(out, "  Output folder: %s\n", valueOrNone(cfg.OutputFolder))
	fmt.Fprintf(out, "  Log level:     %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  Report:        %s\n", cfg.Report)

	// Input folder problems are warnings: the flag can still override it.
	if cfg.InputFolder == "" {
		fmt.Fprintf(out, "\nWarning: No input_folder set; pass -i when running\n")
		return nil
	}
	if err := config.CheckInputFolder(cfg.InputFolder); err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
		return nil
	}

	scan, err := parser.ScanDir(cfg.InputFolder)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
		return nil
	}

	if len(scan.Found) == 0 {
		fmt.Fprintf(out, "\nWarning: No PCA artifacts found in input folder\n")
	} else {
		fmt.Fprintf(out, "\nArtifacts found: %d\n", len(scan.Found))
		for _, f := range scan.Found {
			fmt.Fprintf(out, "  - %s (%s)\n", f.Name, f.Encoding)
		}
	}

	return nil
}

func valueOrNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
