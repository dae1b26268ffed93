package parser

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const launchFields = 2

// ParseAppLaunch reads PcaAppLaunchDic.txt and returns its records in file order.
// Each line is "FilePath|Timestamp". Lines with fewer than two fields are logged
// and skipped.
func ParseAppLaunch(ctx context.Context, path string, opts ...Option) ([]LaunchRecord, *Stats, error) {
	o := buildOptions(opts)

	lines, err := readLines(path, EncodingNarrow)
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{}
	records := make([]LaunchRecord, 0, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if line == "" {
			o.logger.Debug("Skipping blank line", "source", path, "line", i+1)
			continue
		}
		stats.Lines++

		parts := strings.Split(line, "|")
		if len(parts) < launchFields {
			stats.Skipped++
			lerr := &LineError{Source: path, LineNum: i + 1, Line: line, Fields: len(parts), Want: launchFields}
			o.logger.Warn("Skipping malformed line: "+line, "error", lerr)
			continue
		}

		records = append(records, LaunchRecord{
			ExecutionTime: Normalize(parts[1]),
			FilePath:      parts[0],
		})
	}
	stats.Records = len(records)

	return records, stats, nil
}

// readLines loads the whole file and decodes it.
func readLines(path string, enc Encoding) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided artifact paths are expected
	if err != nil {
		return nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}

	text, err := enc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}

	return SplitLines(text), nil
}
