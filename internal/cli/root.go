// Package cli provides the command-line interface for pcaparser.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pcaparser/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.ParseOptions{}

	rootCmd := &cobra.Command{
		Use:   "pcaparser -i <input_folder> [-o <output_folder>]",
		Short: `Windows Program Compatibility Assistant (C:\Windows\appcompat\pca) Parser`,
		Long: `pcaparser converts Windows Program Compatibility Assistant artifacts into CSV reports.

It reads, from the input folder:
  - PcaAppLaunchDic.txt  (UTF-8)     application launches
  - PcaGeneralDb0.txt    (UTF-16LE)  installer failures, blocked drivers, abnormal exits
  - PcaGeneralDb1.txt    (UTF-16LE)  same layout as PcaGeneralDb0.txt

and writes one CSV per artifact plus PCATimeline.csv, every execution
sorted by time. Without -o the reports go to a folder named Reports.

Exit codes:
  0 - All artifacts processed
  1 - Some artifacts could not be processed
  2 - Configuration or runtime error`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunParse(cmd, opts)
		},
	}

	commands.BindParseFlags(rootCmd, opts)

	// Add subcommands
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
