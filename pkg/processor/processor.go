// Package processor converts a folder of PCA artifacts into CSV reports.
package processor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ccollicutt/pcaparser/pkg/config"
	"github.com/ccollicutt/pcaparser/pkg/output"
	"github.com/ccollicutt/pcaparser/pkg/parser"
	"github.com/ccollicutt/pcaparser/pkg/timeline"
)

// ErrInputNotFound is returned by Run when the input folder does not exist.
var ErrInputNotFound = config.ErrInputNotFound

// Processor runs the per-artifact parsers and the timeline merge.
type Processor struct {
	logger   *slog.Logger
	progress io.Writer
	timeline bool
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	p := defaultProcessor()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run converts every recognized artifact in inputDir to CSV in outputDir and
// then writes the merged timeline. outputDir is created when missing.
//
// Failures on a single artifact are logged and recorded in the report; only a
// missing input folder or an unusable output folder aborts the run.
func (p *Processor) Run(ctx context.Context, inputDir, outputDir string) (*output.Report, error) {
	start := time.Now()

	if err := config.CheckInputFolder(inputDir); err != nil {
		return nil, err
	}
	if _, err := config.EnsureOutputFolder(outputDir); err != nil {
		return nil, err
	}

	scan, err := parser.ScanDir(inputDir)
	if err != nil {
		return nil, err
	}

	report := &output.Report{
		Unrecognized: scan.Unrecognized,
		Metadata: output.Metadata{
			InputFolder:  inputDir,
			OutputFolder: outputDir,
			StartedAt:    start,
		},
	}

	for _, found := range scan.Found {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Add(p.processArtifact(ctx, found, outputDir))
	}

	for _, path := range scan.Unrecognized {
		p.logger.Info("New file found", "path", path)
	}

	if p.timeline {
		p.runTimeline(ctx, inputDir, outputDir, report)
	}

	report.Metadata.Duration = time.Since(start)
	return report, nil
}

func (p *Processor) processArtifact(ctx context.Context, found parser.FoundArtifact, outputDir string) output.ArtifactResult {
	outPath := filepath.Join(outputDir, found.CSVName)
	fmt.Fprintf(p.progress, "[+] Parsing - %s\n", absPath(found.Path))

	var (
		stats *parser.Stats
		write func(io.Writer) error
		err   error
	)

	switch found.Kind {
	case parser.KindAppLaunch:
		var records []parser.LaunchRecord
		records, stats, err = parser.ParseAppLaunch(ctx, found.Path, parser.WithLogger(p.logger))
		write = func(w io.Writer) error { return output.WriteLaunchCSV(w, records) }
	case parser.KindGeneral:
		var records []parser.GeneralRecord
		records, stats, err = parser.ParseGeneral(ctx, found.Path, parser.WithLogger(p.logger))
		write = func(w io.Writer) error { return output.WriteGeneralCSV(w, records) }
	default:
		err = fmt.Errorf("no parser for artifact kind %s", found.Kind)
	}

	if err == nil {
		err = output.WriteCSVFile(outPath, write)
	}
	if err != nil {
		p.logger.Error("Failed to process artifact", "artifact", found.Name, "error", err)
		res := output.NewArtifactResult(found, "", stats)
		res.Error = err.Error()
		return res
	}

	fmt.Fprintf(p.progress, "[+] Created - %s\n\n", absPath(outPath))
	return output.NewArtifactResult(found, outPath, stats)
}

func (p *Processor) runTimeline(ctx context.Context, inputDir, outputDir string, report *output.Report) {
	report.Timeline.Output = filepath.Join(outputDir, output.TimelineFileName)

	// Unrecognized entries were already reported by Run.
	result, err := timeline.Merge(ctx, inputDir, outputDir,
		timeline.WithLogger(p.logger),
		timeline.WithNoticeLevel(slog.LevelDebug),
	)
	if err != nil {
		p.logger.Error("Failed to build timeline", "error", err)
		report.Timeline.Error = err.Error()
		return
	}

	report.Timeline.Entries = len(result.Entries)
	report.Timeline.Unparsed = result.Unparsed
	report.Timeline.Incomplete = result.Incomplete
	report.Summary.TimelineEntries = len(result.Entries)

	fmt.Fprintf(p.progress, "[+] Created timeline at - %s\n\n", absPath(result.Path))
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
