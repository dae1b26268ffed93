// Package timeline builds the merged execution timeline across PCA artifacts.
//
// The timeline re-reads the raw artifact files rather than reusing the
// per-artifact records, so the CSV schema of one report cannot leak into it.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ccollicutt/pcaparser/pkg/output"
	"github.com/ccollicutt/pcaparser/pkg/parser"
)

// Result is the outcome of building a timeline.
type Result struct {
	// Entries are sorted by execution time.
	Entries []parser.TimelineEntry

	// Unparsed counts entries whose time did not parse.
	Unparsed int

	// Unrecognized lists input entries that were not read.
	Unrecognized []string

	// Incomplete lists artifacts that failed part way. Entries read before
	// the failure are kept.
	Incomplete []string

	// Path is the written CSV file, empty if nothing was written.
	Path string
}

type options struct {
	logger      *slog.Logger
	noticeLevel slog.Level
}

// Option configures timeline building.
type Option func(*options)

// WithLogger sets the logger used for notices.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNoticeLevel sets the level "New file found" notices are logged at
// (default slog.LevelInfo).
func WithNoticeLevel(level slog.Level) Option {
	return func(o *options) {
		o.noticeLevel = level
	}
}

func buildOptions(opts []Option) *options {
	o := &options{logger: slog.Default(), noticeLevel: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Collect scans inputDir and reads (time, path) pairs from every recognized
// artifact. Entries are returned unsorted, in directory then file order.
//
// An artifact that cannot be read is logged and listed in Result.Incomplete;
// the other artifacts are still collected. Only a listing failure or a
// cancelled ctx returns an error.
func Collect(ctx context.Context, inputDir string, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	scan, err := parser.ScanDir(inputDir)
	if err != nil {
		return nil, err
	}

	result := &Result{Unrecognized: scan.Unrecognized}
	for _, path := range scan.Unrecognized {
		o.logger.Log(ctx, o.noticeLevel, "New file found", "path", path)
	}

	if err := collectAll(ctx, scan.Found, result, o); err != nil {
		return nil, err
	}
	return result, nil
}

func collectAll(ctx context.Context, found []parser.FoundArtifact, result *Result, o *options) error {
	for _, f := range found {
		entries, err := collectFile(ctx, f)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		result.Entries = append(result.Entries, entries...)
		if err != nil {
			o.logger.Warn("Timeline incomplete for artifact", "artifact", f.Name, "entries", len(entries), "error", err)
			result.Incomplete = append(result.Incomplete, f.Name)
			continue
		}
		o.logger.Debug("collected timeline entries", "artifact", f.Name, "entries", len(entries))
	}
	return nil
}

// collectFile returns the entries read so far alongside any error.
func collectFile(ctx context.Context, found parser.FoundArtifact) ([]parser.TimelineEntry, error) {
	src := parser.NewLineSource(found.Path, found.Encoding)
	defer src.Close()

	need := max(found.TimeIndex, found.PathIndex)

	var entries []parser.TimelineEntry
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entries, err
		}

		parts := strings.Split(line.Text, "|")
		if len(parts) <= need {
			continue
		}

		entries = append(entries, parser.TimelineEntry{
			ExecutionTime: parser.Normalize(parts[found.TimeIndex]),
			FilePath:      parts[found.PathIndex],
			Source:        found.Name,
		})
	}

	return entries, nil
}

// Sort orders entries by execution time, oldest first. Entries whose time
// does not parse are placed before all others. Equal keys keep their order.
// It returns the number of unparsed entries.
func Sort(entries []parser.TimelineEntry) int {
	type keyed struct {
		entry parser.TimelineEntry
		ok    bool
		ts    time.Time
	}

	keys := make([]keyed, len(entries))
	unparsed := 0
	for i, e := range entries {
		ts, err := parser.ParseCanonical(e.ExecutionTime)
		if err != nil {
			unparsed++
		}
		keys[i] = keyed{entry: e, ok: err == nil, ts: ts}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		if a.ok != b.ok {
			if !a.ok {
				return -1
			}
			return 1
		}
		return a.ts.Compare(b.ts)
	})

	for i := range keys {
		entries[i] = keys[i].entry
	}
	return unparsed
}

// Merge collects, sorts and writes the timeline to outputDir/PCATimeline.csv.
// The CSV is written even when no artifacts were found.
func Merge(ctx context.Context, inputDir, outputDir string, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	result, err := Collect(ctx, inputDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("collecting timeline: %w", err)
	}

	result.Unparsed = Sort(result.Entries)

	// Unparsed entries sort first.
	for _, e := range result.Entries[:result.Unparsed] {
		o.logger.Debug("Execution time not parsed, sorted first",
			"artifact", e.Source, "time", e.ExecutionTime, "path", e.FilePath)
	}

	path := filepath.Join(outputDir, output.TimelineFileName)
	err = output.WriteCSVFile(path, func(w io.Writer) error {
		return output.WriteTimelineCSV(w, result.Entries)
	})
	if err != nil {
		return nil, err
	}
	result.Path = path

	return result, nil
}
