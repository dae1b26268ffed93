package commands

import "path/filepath"

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// truncate shortens s to at most maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}
