package parser

import "time"

// CanonicalLayout is the second-precision layout every timestamp is rendered in.
const CanonicalLayout = "2006-01-02 15:04:05"

// Normalize parses a PCA timestamp such as "2023-05-01 12:00:00.123456" and
// returns it without the fractional seconds. The fraction is dropped, not rounded.
// Strings that do not match the layout are returned unchanged.
func Normalize(s string) string {
	// time.Parse accepts a fractional second of any length after the
	// seconds field even though the layout does not mention it.
	ts, err := time.Parse(CanonicalLayout, s)
	if err != nil {
		return s
	}
	return ts.Format(CanonicalLayout)
}

// ParseCanonical parses a timestamp already in CanonicalLayout.
func ParseCanonical(s string) (time.Time, error) {
	return time.Parse(CanonicalLayout, s)
}
