package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colonyops/sprintpoker/internal/core/logging"
	"github.com/colonyops/sprintpoker/internal/core/poker"
)

// Format selects the document written by Write.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts "markdown", "md" or "html".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected markdown or html)", s)
	}
}

// PathFor returns path with its extension matched to the format. The HTML
// document shares the markdown file's base name.
func PathFor(path string, f Format) string {
	if f != FormatHTML {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
}

// Render returns the document for tasks in the given format.
func Render(f Format, tasks []poker.Task) (string, error) {
	if f == FormatHTML {
		return HTML(tasks)
	}
	return Markdown(tasks), nil
}

// Write renders tasks and writes them to path as UTF-8, creating the parent
// directory when needed. An existing file is replaced.
func Write(path string, f Format, tasks []poker.Task) error {
	doc, err := Render(f, tasks)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	logging.Component("export").Info().
		Str("path", path).
		Str("format", string(f)).
		Int("tasks", len(tasks)).
		Msg("summary written")
	return nil
}
