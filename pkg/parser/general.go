package parser

import (
	"context"
	"strings"
)

const generalFields = 8

// ParseGeneral reads a PcaGeneralDb file (UTF-16LE) and returns its records in
// file order. A line must have exactly eight "|" separated fields:
//
//	Timestamp|Code|FilePath|ProductName|CompanyName|ProductVersion|ProgramId|Message
//
// Any other field count is logged and the line skipped.
func ParseGeneral(ctx context.Context, path string, opts ...Option) ([]GeneralRecord, *Stats, error) {
	o := buildOptions(opts)

	lines, err := readLines(path, EncodingUTF16LE)
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{}
	records := make([]GeneralRecord, 0, len(lines))
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
		if len(parts) != generalFields {
			stats.Skipped++
			lerr := &LineError{Source: path, LineNum: i + 1, Line: line, Fields: len(parts), Want: generalFields}
			o.logger.Warn("Skipping malformed line: "+line, "error", lerr)
			continue
		}

		rec := GeneralRecord{
			CreationTime:   Normalize(parts[0]),
			RecordType:     ParseRecordType(parts[1]),
			Code:           parts[1],
			FilePath:       parts[2],
			ProductName:    parts[3],
			CompanyName:    parts[4],
			ProductVersion: parts[5],
			ProgramID:      parts[6],
			Message:        parts[7],
		}
		if rec.RecordType == RecordUnknown {
			o.logger.Debug("Unknown record type", "code", rec.Code, "source", path, "line", i+1)
		}
		records = append(records, rec)
	}
	stats.Records = len(records)

	return records, stats, nil
}
