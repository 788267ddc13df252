// Package taskfile reads task identifiers from plain text files: one
// identifier per line, LF or CRLF terminated, blank lines ignored.
package taskfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrEmpty is returned when a source holds no identifiers.
var ErrEmpty = errors.New("file is empty or contains no task identifiers")

// Parse reads identifiers from r. Each line is trimmed; blank lines are
// skipped. No header row or delimiter handling is applied.
func Parse(r io.Reader) ([]string, error) {
	var ids []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read identifiers: %w", err)
	}

	return ids, nil
}

// ReadFile parses the file at path. A file without identifiers yields ErrEmpty.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ids, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return ids, nil
}

// Expand resolves glob patterns (including "**") to file paths, in pattern
// order. A pattern without glob syntax is returned as-is so a missing file
// surfaces as a read error rather than being silently skipped.
func Expand(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			if !seen[pattern] {
				seen[pattern] = true
				paths = append(paths, pattern)
			}
			continue
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", pattern)
		}

		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	return paths, nil
}

// Load expands patterns and reads every matching file, concatenating the
// identifiers in file order. Nothing is returned when any file fails.
func Load(patterns []string) ([]string, error) {
	paths, err := Expand(patterns)
	if err != nil {
		return nil, err
	}

	var all []string
	for _, p := range paths {
		ids, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, ids...)
	}

	return all, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
