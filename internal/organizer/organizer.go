// Package organizer automates repetitive file tasks: directory backups,
// cleaning by pattern and age, and sorting files into folders by type.
package organizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Organizer runs file tasks against the local filesystem.
type Organizer struct {
	log *zerolog.Logger
}

func New(log *zerolog.Logger) *Organizer {
	return &Organizer{log: log}
}

// timestamp returns the suffix appended to backup and collision names.
func timestamp() string {
	return time.Now().Format("20060102_150405")
}

// checkPatterns rejects glob patterns doublestar cannot parse.
func checkPatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return nil
}

// excluded reports whether a walked entry matches any exclude pattern.
// Patterns are tested against the slash-separated path relative to the walk
// root and against the bare entry name, so both "node_modules" and
// "**/*.tmp" behave as expected.
func excluded(rel, name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// resolveDir expands and validates a directory argument.
func resolveDir(path string) (string, error) {
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory %q not found: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", path)
	}

	return abs, nil
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

func copyFile(src, dst string, perm os.FileMode) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}
	return n, out.Close()
}
