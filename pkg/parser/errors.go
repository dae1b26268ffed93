package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedLine is returned for lines with the wrong number of fields.
var ErrMalformedLine = errors.New("malformed line")

// LineError describes a line that could not be turned into a record.
type LineError struct {
	Source  string
	LineNum int
	Line    string
	Fields  int
	Want    int
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %d field(s), want %d", e.Source, e.LineNum, e.Fields, e.Want)
}

// Unwrap allows errors.Is(err, ErrMalformedLine).
func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}
