package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInputNotFound is returned when the input folder is missing or not a directory.
var ErrInputNotFound = errors.New("input folder not found")

// ResolveOutputFolder applies the output folder policy: an empty path, or one
// that resolves to cwd, becomes DefaultOutputFolder. The second return value
// reports whether the default was chosen.
func ResolveOutputFolder(output, cwd string) (string, bool) {
	if output == "" {
		return DefaultOutputFolder, true
	}

	abs, err := filepath.Abs(output)
	if err == nil && cwd != "" && filepath.Clean(abs) == filepath.Clean(cwd) {
		return DefaultOutputFolder, true
	}

	return output, false
}

// EnsureOutputFolder creates path and any missing parents.
// It reports whether the folder had to be created.
func EnsureOutputFolder(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("output folder %s is not a directory", path)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking output folder: %w", err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return false, fmt.Errorf("creating output folder: %w", err)
	}
	return true, nil
}

// CheckInputFolder returns an error unless path exists and is a directory.
func CheckInputFolder(path string) error {
	if path == "" {
		return errors.New("input folder is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("checking input folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInputNotFound, path)
	}
	return nil
}
