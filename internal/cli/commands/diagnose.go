package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pcaparser/pkg/config"
	"github.com/ccollicutt/pcaparser/pkg/detector"
	"github.com/ccollicutt/pcaparser/pkg/parser"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	InputFolder string
	SampleSize  int
	Verbose     bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose PCA artifact files before parsing",
		Long: `Diagnose PCA artifact files before parsing.

This command inspects the input folder without writing any reports:
- Input folder existence
- Which of the known artifacts are present
- Text encoding of each artifact (UTF-8 vs UTF-16LE)
- Field layout and timestamp format of sampled lines
- Files that are not known PCA artifacts

Example:
  pcaparser diagnose -i ./pca
  pcaparser diagnose -v -i ./pca  # verbose output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runDiagnose(ctx, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFolder, "input_folder", "i", "", "Folder containing the PCA text files")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 64*1024, "Number of bytes to sample per artifact")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")
	_ = cmd.MarkFlagRequired("input_folder")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	// 1. Check input folder
	result := checkInputFolder(opts.InputFolder)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	scan, err := parser.ScanDir(opts.InputFolder)
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:   "Input Folder Listing",
			Status:  "error",
			Message: fmt.Sprintf("Cannot list input folder: %v", err),
		})
		printDiagnostics(w, results, opts)
		return nil
	}

	// 2. Check which artifacts are present
	results = append(results, checkArtifactsPresent(scan))

	// 3. Inspect each artifact
	d := detector.New(detector.WithSampleSize(opts.SampleSize))
	for _, found := range scan.Found {
		results = append(results, checkArtifact(ctx, d, found, opts))
	}

	// 4. Report unknown entries
	if r, ok := checkUnrecognized(scan); ok {
		results = append(results, r)
	}

	printDiagnostics(w, results, opts)
	return nil
}

func checkInputFolder(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Input Folder",
	}

	if err := config.CheckInputFolder(path); err != nil {
		result.Status = "error"
		result.Message = err.Error()
		result.Suggests = []string{
			"Check the folder path is correct",
			`Copy the contents of C:\Windows\appcompat\pca from the evidence image`,
		}
		return result
	}

	result.Status = "ok"
	result.Message = absPath(path)
	return result
}

func checkArtifactsPresent(scan *parser.ScanResult) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Known Artifacts",
	}

	present := make(map[string]bool)
	for _, f := range scan.Found {
		present[f.Name] = true
	}

	var missing []string
	for _, a := range parser.Artifacts() {
		if present[a.Name] {
			result.Details = append(result.Details, fmt.Sprintf("%s: present", a.Name))
		} else {
			missing = append(missing, a.Name)
			result.Details = append(result.Details, fmt.Sprintf("%s: missing", a.Name))
		}
	}

	switch {
	case len(scan.Found) == 0:
		result.Status = "warning"
		result.Message = "No PCA artifacts found; only an empty timeline will be written"
		result.Suggests = []string{"PCA artifacts exist on Windows 11 22H2 and later"}
	case len(missing) > 0:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d of %d artifact(s) present", len(scan.Found), len(parser.Artifacts()))
	default:
		result.Status = "ok"
		result.Message = "All artifacts present"
	}

	return result
}

func checkArtifact(ctx context.Context, d *detector.Detector, found parser.FoundArtifact, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Artifact: %s", found.Name),
	}

	info, err := os.Stat(found.Path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access file: %v", err)
		return result
	}
	if info.Size() == 0 {
		result.Status = "warning"
		result.Message = "File is empty"
		return result
	}

	det, err := d.DetectFromFile(ctx, found.Path, found.Artifact)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}

	issues := []string{}
	warnings := []string{}

	if det.Encoding != found.Encoding {
		issues = append(issues, fmt.Sprintf("Encoding looks like %s (%.0f%% confidence), expected %s",
			det.Encoding, det.Confidence*100, found.Encoding))
		result.Suggests = append(result.Suggests,
			"The file may have been converted when it was exported; re-acquire it from the image")
	}

	want := expectedFields(found.Kind)
	malformed := 0
	for n, count := range det.FieldCounts {
		if !fieldCountOK(found.Kind, n) {
			malformed += count
		}
	}
	if malformed > 0 {
		warnings = append(warnings, fmt.Sprintf("%d of %d sampled line(s) do not have %s field(s) and will be skipped",
			malformed, det.SampledLines, want))
	}

	if det.TimestampsParsed < det.SampledLines {
		warnings = append(warnings, fmt.Sprintf("%d sampled line(s) have a timestamp that does not parse; they sort first in the timeline",
			det.SampledLines-det.TimestampsParsed))
	}

	switch {
	case len(issues) > 0:
		result.Status = "error"
		result.Message = fmt.Sprintf("%d issue(s)", len(issues))
		result.Details = append(issues, warnings...)
	case len(warnings) > 0:
		result.Status = "warning"
		result.Message = fmt.Sprintf("%d warning(s)", len(warnings))
		result.Details = warnings
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%s, %d line(s) sampled", det.Encoding, det.SampledLines)
	}

	if opts.Verbose {
		result.Details = append(result.Details,
			fmt.Sprintf("Size: %d bytes, sampled %d", info.Size(), det.SampledBytes),
			fmt.Sprintf("BOM: %v", det.BOM),
			fmt.Sprintf("Most common field count: %d", det.DominantFieldCount()),
		)
	}

	return result
}

func expectedFields(kind parser.Kind) string {
	if kind == parser.KindAppLaunch {
		return "at least 2"
	}
	return "exactly 8"
}

func fieldCountOK(kind parser.Kind, n int) bool {
	if kind == parser.KindAppLaunch {
		return n >= 2
	}
	return n == 8
}

func checkUnrecognized(scan *parser.ScanResult) (DiagnosticResult, bool) {
	if len(scan.Unrecognized) == 0 {
		return DiagnosticResult{}, false
	}

	result := DiagnosticResult{
		Check:   "Other Files",
		Status:  "warning",
		Message: fmt.Sprintf("%d new file(s) found that will not be parsed", len(scan.Unrecognized)),
	}
	for _, path := range scan.Unrecognized {
		result.Details = append(result.Details, truncate(filepath.Base(path), 80))
	}
	result.Suggests = []string{"Review these files manually; newer Windows builds may add artifacts"}

	return result, true
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== PCA Artifact Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before parsing.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nArtifacts are usable but have warnings.")
	} else {
		fmt.Fprintln(w, "\nArtifacts look good!")
	}
}
