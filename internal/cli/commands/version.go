package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pcaparser/pkg/parser"
)

// Version is set via ldflags at build time.
var Version = "dev"

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version of pcaparser and the artifacts it understands.",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pcaparser %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			for _, a := range parser.Artifacts() {
				fmt.Fprintf(out, "  %-20s %s\n", a.Name, a.Encoding)
			}
		},
	}
}
