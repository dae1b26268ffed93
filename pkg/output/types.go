// Package output writes CSV reports and renders run summaries.
package output

import (
	"time"

	"github.com/ccollicutt/pcaparser/pkg/parser"
)

// Report is the summary of one processing run.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Artifacts lists the result for each recognized artifact, in processing order.
	Artifacts []ArtifactResult

	// Unrecognized lists input directory entries that were not processed.
	Unrecognized []string

	// Timeline describes the merged timeline report.
	Timeline TimelineResult

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	ArtifactsParsed int
	ArtifactsFailed int
	RowsWritten     int
	LinesSkipped    int
	TimelineEntries int
}

// ArtifactResult is the outcome of parsing one artifact file.
type ArtifactResult struct {
	Name     string
	Input    string
	Output   string `json:",omitempty"`
	Encoding string
	Lines    int
	Rows     int
	Skipped  int
	Error    string `json:",omitempty"`
}

// Failed reports whether the artifact could not be converted.
func (a ArtifactResult) Failed() bool {
	return a.Error != ""
}

// TimelineResult describes the merged timeline.
type TimelineResult struct {
	Output  string
	Entries int

	// Unparsed counts entries whose time could not be parsed and sorted first.
	Unparsed int

	// Incomplete names artifacts that could only be partly read.
	Incomplete []string `json:",omitempty"`
	Error      string   `json:",omitempty"`
}

// Metadata provides context about the run.
type Metadata struct {
	InputFolder  string
	OutputFolder string
	StartedAt    time.Time
	Duration     time.Duration
}

// NewArtifactResult fills an ArtifactResult from parser statistics.
func NewArtifactResult(found parser.FoundArtifact, outPath string, stats *parser.Stats) ArtifactResult {
	res := ArtifactResult{
		Name:     found.Name,
		Input:    found.Path,
		Output:   outPath,
		Encoding: found.Encoding.String(),
	}
	if stats != nil {
		res.Lines = stats.Lines
		res.Rows = stats.Records
		res.Skipped = stats.Skipped
	}
	return res
}

// Add records an artifact result and updates the summary.
func (r *Report) Add(res ArtifactResult) {
	r.Artifacts = append(r.Artifacts, res)
	if res.Failed() {
		r.Summary.ArtifactsFailed++
		return
	}
	r.Summary.ArtifactsParsed++
	r.Summary.RowsWritten += res.Rows
	r.Summary.LinesSkipped += res.Skipped
}

// HasFailures returns true if any artifact or the timeline failed,
// including a timeline that is missing part of an artifact.
func (r *Report) HasFailures() bool {
	return r.Summary.ArtifactsFailed > 0 || r.Timeline.Error != "" || len(r.Timeline.Incomplete) > 0
}
