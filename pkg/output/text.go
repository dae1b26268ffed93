package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "pcaparser: %d artifact(s) parsed, %d failed, %d row(s), %d timeline entries\n",
		report.Summary.ArtifactsParsed,
		report.Summary.ArtifactsFailed,
		report.Summary.RowsWritten,
		report.Summary.TimelineEntries)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== PCA Parser Report ===")
	fmt.Fprintln(w)

	if len(report.Artifacts) == 0 {
		fmt.Fprintln(w, "No PCA artifacts found")
		fmt.Fprintln(w)
	}

	for _, a := range report.Artifacts {
		f.formatArtifact(a, w)
	}

	if len(report.Unrecognized) > 0 {
		fmt.Fprintf(w, "Unrecognized entries: %d\n", len(report.Unrecognized))
		for _, path := range report.Unrecognized {
			fmt.Fprintf(w, "  - %s\n", path)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "[TIMELINE] %s\n", report.Timeline.Output)
	if report.Timeline.Error != "" {
		fmt.Fprintf(w, "  Failed: %s\n", report.Timeline.Error)
	} else {
		fmt.Fprintf(w, "  %d entries", report.Timeline.Entries)
		if report.Timeline.Unparsed > 0 {
			fmt.Fprintf(w, " (%d with unparsed time, sorted first)", report.Timeline.Unparsed)
		}
		fmt.Fprintln(w)
		for _, name := range report.Timeline.Incomplete {
			fmt.Fprintf(w, "  Incomplete: %s could only be partly read\n", name)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "---")
	_, err := fmt.Fprintf(w, "Summary: %d artifact(s) parsed, %d failed, %d row(s) written, %d line(s) skipped\n",
		report.Summary.ArtifactsParsed,
		report.Summary.ArtifactsFailed,
		report.Summary.RowsWritten,
		report.Summary.LinesSkipped)
	if err != nil {
		return err
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Input: %s\n", report.Metadata.InputFolder)
		fmt.Fprintf(w, "Output: %s\n", report.Metadata.OutputFolder)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatArtifact(a ArtifactResult, w io.Writer) {
	fmt.Fprintf(w, "[%s] %s\n", a.Encoding, a.Name)
	if a.Failed() {
		fmt.Fprintf(w, "  Failed: %s\n", a.Error)
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "  %d row(s) -> %s\n", a.Rows, a.Output)
	if a.Skipped > 0 {
		fmt.Fprintf(w, "  Skipped: %d malformed line(s)\n", a.Skipped)
	}
	if f.opts.Verbose {
		fmt.Fprintf(w, "  Lines read: %d\n", a.Lines)
		fmt.Fprintf(w, "  Source: %s\n", a.Input)
	}
	fmt.Fprintln(w)
}
