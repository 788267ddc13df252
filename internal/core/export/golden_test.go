package export

import (
	"testing"

	"github.com/charmbracelet/x/exp/golden"

	"github.com/colonyops/sprintpoker/internal/core/poker"
)

func TestMarkdown_Golden(t *testing.T) {
	tasks := []poker.Task{
		revealedTask("PROJ-1", vote("Ana", "3"), vote("Ben", "5"), vote("Cy", "?")),
		revealedTask("PROJ-2"),
		pendingTask("PROJ-3", vote("Ana", "8"), vote("Ben", "☕")),
		pendingTask("PROJ-4"),
	}

	golden.RequireEqual(t, Markdown(tasks))
}
