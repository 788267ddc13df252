// Package export renders the session summary as markdown or HTML and writes
// it to disk.
package export

import (
	"fmt"
	"strings"

	"github.com/colonyops/sprintpoker/internal/core/poker"
)

const (
	// FileName is the conventional name of the markdown summary.
	FileName = "sprint-poker-summary.md"

	title = "# Sprint Poker - Session Summary"
)

// Markdown renders tasks in the given order. The output depends only on the
// tasks, so the same session always produces the same document.
func Markdown(tasks []poker.Task) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")

	for i, t := range tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		writeTask(&b, t)
	}

	return b.String()
}

func writeTask(b *strings.Builder, t poker.Task) {
	fmt.Fprintf(b, "## Task: %s\n", t.Identifier)

	votes := t.Votes()

	if !t.Revealed {
		if n := t.VoterCount(); n > 0 {
			fmt.Fprintf(b, "- Votes: %d user(s) voted (not revealed)\n", n)
		} else {
			b.WriteString("- Votes: No votes cast (not revealed)\n")
		}
		return
	}

	fmt.Fprintf(b, "- Average Score: %s\n", FormatAverage(t.AverageScore))

	if len(votes) == 0 {
		b.WriteString("- Votes: No votes cast\n")
		return
	}

	b.WriteString("- Votes:\n")
	for _, v := range votes {
		fmt.Fprintf(b, "  - %s: %s\n", v.Voter, v.Value)
	}
}

// FormatAverage formats an average with one decimal, or "N/A" when nil.
func FormatAverage(avg *float64) string {
	if avg == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *avg)
}
