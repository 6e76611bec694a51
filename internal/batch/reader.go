package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileEntry is one input file of a batch, with an optional sheet
type FileEntry struct {
	Path  string
	Sheet string // Empty selects the first sheet
}

// ReadBatchFile reads input files from a batch file, one per line.
// Supported formats:
// - File only: "orders.xlsx" (first sheet)
// - With sheet: "orders.xlsx = Sheet2"
// Blank lines and lines starting with '#' are ignored. Relative paths are
// resolved against the batch file's directory.
func ReadBatchFile(filename string) ([]FileEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	baseDir := filepath.Dir(filename)
	var entries []FileEntry

	for i, line := range splitLines(string(content)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		path, sheet := line, ""
		if before, after, found := strings.Cut(line, "="); found {
			path = strings.TrimSpace(before)
			sheet = strings.TrimSpace(after)
		}
		if path == "" {
			return nil, fmt.Errorf("batch file %s line %d: missing file path", filename, i+1)
		}

		entries = append(entries, FileEntry{
			Path:  resolvePath(baseDir, path),
			Sheet: sheet,
		})
	}

	return entries, nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// splitLines splits a string by newlines, tolerating CRLF
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
