package parser

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode"
)

// Line is a decoded artifact line with its position.
type Line struct {
	// Text is the line content with trailing whitespace removed.
	Text string

	// Source is the file path this line came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}

// LineSource streams decoded lines from a single artifact file.
// It is not safe for concurrent use.
type LineSource struct {
	path     string
	encoding Encoding

	file    *os.File
	scanner *bufio.Scanner
	lineNum int
}

// NewLineSource creates a LineSource for path. The file is opened on the first call to Next.
func NewLineSource(path string, enc Encoding) *LineSource {
	return &LineSource{
		path:     path,
		encoding: enc,
	}
}

// Next returns the next line. Returns io.EOF when the file is exhausted.
func (s *LineSource) Next(ctx context.Context) (*Line, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.scanner == nil {
		if err := s.open(); err != nil {
			return nil, err
		}
	}

	if s.scanner.Scan() {
		s.lineNum++
		return &Line{
			Text:    strings.TrimRightFunc(s.scanner.Text(), unicode.IsSpace),
			Source:  s.path,
			LineNum: s.lineNum,
		}, nil
	}

	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return nil, io.EOF
}

// Close releases the underlying file.
func (s *LineSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *LineSource) open() error {
	f, err := os.Open(s.path) // #nosec G304 -- user-provided artifact paths are expected
	if err != nil {
		return fmt.Errorf("opening artifact %s: %w", s.path, err)
	}

	s.file = f
	s.scanner = bufio.NewScanner(s.encoding.NewReader(f))
	// No line length limit: the per-artifact parsers read whole files too.
	s.scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	s.scanner.Split(ScanLines)
	s.lineNum = 0
	return nil
}

// ScanLines is a bufio.SplitFunc that ends lines at \r\n, \n or a bare \r,
// yielding the same lines as SplitLines.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A \r at the end of the buffer may be the first half of \r\n.
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
