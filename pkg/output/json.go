package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// quietReport is the Quiet form: totals plus the names of failed artifacts.
type quietReport struct {
	Summary Summary
	Failed  []string
}

// Format renders the report as indented JSON. Empty lists are written as []
// so consumers do not need to handle null.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		q := quietReport{Summary: report.Summary, Failed: []string{}}
		for _, a := range report.Artifacts {
			if a.Failed() {
				q.Failed = append(q.Failed, a.Name)
			}
		}
		return encoder.Encode(q)
	}

	out := *report
	if out.Artifacts == nil {
		out.Artifacts = []ArtifactResult{}
	}
	if out.Unrecognized == nil {
		out.Unrecognized = []string{}
	}
	return encoder.Encode(&out)
}
