// Package detector inspects PCA artifact files to check their encoding and layout.
package detector

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ccollicutt/pcaparser/pkg/parser"
)

// utf16Threshold is the share of NUL high bytes above which a sample is
// treated as UTF-16LE. Windows paths are overwhelmingly ASCII.
const utf16Threshold = 0.3

// DetectionResult holds the result of inspecting an artifact file.
type DetectionResult struct {
	Encoding   parser.Encoding
	Confidence float64 // 0.0 to 1.0
	BOM        bool

	SampledBytes int
	SampledLines int

	// FieldCounts maps a "|" field count to the number of sampled lines with it.
	FieldCounts map[int]int

	// TimestampsParsed counts sampled lines whose time field normalized cleanly.
	TimestampsParsed int
}

// DominantFieldCount returns the most common field count, or 0 for no lines.
func (r *DetectionResult) DominantFieldCount() int {
	best, bestN := 0, 0
	keys := make([]int, 0, len(r.FieldCounts))
	for k := range r.FieldCounts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if r.FieldCounts[k] > bestN {
			best, bestN = k, r.FieldCounts[k]
		}
	}
	return best
}

// Detector samples the head of artifact files.
type Detector struct {
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of bytes to sample (default 64KiB).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		sampleSize: 64 * 1024,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectEncoding guesses whether sample is UTF-8 or UTF-16LE text.
// A byte order mark wins; otherwise the share of NUL bytes at odd offsets decides.
func DetectEncoding(sample []byte) (enc parser.Encoding, confidence float64, bom bool) {
	switch {
	case bytes.HasPrefix(sample, []byte{0xFF, 0xFE}):
		return parser.EncodingUTF16LE, 1, true
	case bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}):
		return parser.EncodingNarrow, 1, true
	}

	pairs := len(sample) / 2
	if pairs == 0 {
		return parser.EncodingNarrow, 0, false
	}

	zeros := 0
	for i := 1; i < len(sample); i += 2 {
		if sample[i] == 0 {
			zeros++
		}
	}

	ratio := float64(zeros) / float64(pairs)
	if ratio > utf16Threshold {
		return parser.EncodingUTF16LE, ratio, false
	}
	return parser.EncodingNarrow, 1 - ratio, false
}

// DetectFromFile samples path, detects its encoding and, using the layout of
// artifact a, counts fields and parseable timestamps in the sampled lines.
func (d *Detector) DetectFromFile(_ context.Context, path string, a parser.Artifact) (*DetectionResult, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sample, err := io.ReadAll(io.LimitReader(file, int64(d.sampleSize)))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	enc, confidence, bom := DetectEncoding(sample)
	result := &DetectionResult{
		Encoding:     enc,
		Confidence:   confidence,
		BOM:          bom,
		SampledBytes: len(sample),
		FieldCounts:  make(map[int]int),
	}

	truncated := len(sample) == d.sampleSize
	if enc == parser.EncodingUTF16LE && len(sample)%2 == 1 {
		sample = sample[:len(sample)-1]
	}

	text, err := enc.Decode(sample)
	if err != nil {
		return nil, err
	}

	lines := parser.SplitLines(text)
	if truncated && len(lines) > 0 {
		// The last line was probably cut by the sample limit.
		lines = lines[:len(lines)-1]
	}

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		result.SampledLines++

		parts := strings.Split(line, "|")
		result.FieldCounts[len(parts)]++

		if a.TimeIndex < len(parts) {
			if _, err := parser.ParseCanonical(parser.Normalize(parts[a.TimeIndex])); err == nil {
				result.TimestampsParsed++
			}
		}
	}

	return result, nil
}
