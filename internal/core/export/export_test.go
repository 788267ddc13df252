package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/sprintpoker/internal/core/poker"
)

func revealedTask(identifier string, votes ...poker.Vote) poker.Task {
	t := poker.NewTask("id-"+identifier, identifier)
	for _, v := range votes {
		t.Cast(v.Voter, v.Value)
	}
	t.Reveal()
	return t.Clone()
}

func pendingTask(identifier string, votes ...poker.Vote) poker.Task {
	t := poker.NewTask("id-"+identifier, identifier)
	for _, v := range votes {
		t.Cast(v.Voter, v.Value)
	}
	return t.Clone()
}

func vote(voter, value string) poker.Vote {
	return poker.Vote{Voter: voter, Value: poker.ParseValue(value)}
}

func TestMarkdown_MixedSession(t *testing.T) {
	tasks := []poker.Task{
		revealedTask("X", vote("A", "2"), vote("B", "4")),
		pendingTask("Y", vote("C", "?")),
	}

	want := `# Sprint Poker - Session Summary

## Task: X
- Average Score: 3.0
- Votes:
  - A: 2
  - B: 4

## Task: Y
- Votes: 1 user(s) voted (not revealed)
`
	assert.Equal(t, want, Markdown(tasks))
}

func TestMarkdown_Cases(t *testing.T) {
	tests := []struct {
		name string
		task poker.Task
		want []string
	}{
		{
			name: "revealed without votes",
			task: revealedTask("A-1"),
			want: []string{"- Average Score: N/A", "- Votes: No votes cast\n"},
		},
		{
			name: "revealed with only tokens",
			task: revealedTask("A-2", vote("A", "?"), vote("B", "☕")),
			want: []string{"- Average Score: N/A", "  - A: ?", "  - B: ☕"},
		},
		{
			name: "pending without votes",
			task: pendingTask("A-3"),
			want: []string{"- Votes: No votes cast (not revealed)"},
		},
		{
			name: "pending counts distinct voters",
			task: pendingTask("A-4", vote("A", "1"), vote("B", "2"), vote("A", "3")),
			want: []string{"- Votes: 2 user(s) voted (not revealed)"},
		},
		{
			name: "fractional average",
			task: revealedTask("A-5", vote("A", "1"), vote("B", "2"), vote("C", "2")),
			want: []string{"- Average Score: 1.7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Markdown([]poker.Task{tt.task})
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestMarkdown_PendingHidesVotes(t *testing.T) {
	out := Markdown([]poker.Task{pendingTask("Y", vote("Carol", "8"))})
	assert.NotContains(t, out, "Carol")
	assert.NotContains(t, out, "Average Score")
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "# Sprint Poker - Session Summary\n\n", Markdown(nil))
}

func TestMarkdown_Deterministic(t *testing.T) {
	tasks := []poker.Task{
		revealedTask("X", vote("B", "5"), vote("A", "3")),
		pendingTask("Y"),
	}
	assert.Equal(t, Markdown(tasks), Markdown(tasks))
	assert.Less(t, strings.Index(Markdown(tasks), "B: 5"), strings.Index(Markdown(tasks), "A: 3"))
}

func TestFormatAverage(t *testing.T) {
	assert.Equal(t, "N/A", FormatAverage(nil))
	v := 2.26
	assert.Equal(t, "2.3", FormatAverage(&v))
	w := 13.0
	assert.Equal(t, "13.0", FormatAverage(&w))
}

func TestHTML(t *testing.T) {
	tasks := []poker.Task{
		revealedTask("<b>X</b>", vote("A", "2")),
	}

	out, err := HTML(tasks)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<h1>Sprint Poker - Session Summary</h1>")
	assert.Contains(t, out, "Average Score: 2.0")
	assert.NotContains(t, out, "<b>X</b>")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatMarkdown, "md": FormatMarkdown, "markdown": FormatMarkdown, "html": FormatHTML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	tasks := []poker.Task{pendingTask("X")}

	require.NoError(t, Write(path, FormatMarkdown, tasks))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Markdown(tasks), string(data))
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, "out/summary.md", PathFor("out/summary.md", FormatMarkdown))
	assert.Equal(t, "out/summary.html", PathFor("out/summary.md", FormatHTML))
	assert.Equal(t, "summary.html", PathFor("summary", FormatHTML))
}
