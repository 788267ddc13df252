package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/sprintpoker/pkg/tuitest"
)

func TestModal_NewDefaults(t *testing.T) {
	m := NewModal("Title", "Are you sure?")
	assert.True(t, m.Visible())
	assert.True(t, m.ConfirmSelected())
	assert.Equal(t, "Title", m.title)
	assert.Equal(t, "Are you sure?", m.message)
	assert.Equal(t, modalNone, m.action)
}

func TestModal_Overlay_NotVisible(t *testing.T) {
	m := Modal{}
	bg := "background content"
	assert.Equal(t, bg, m.Overlay(bg, 80, 24))
}

func TestModal_Overlay_RendersButtons(t *testing.T) {
	m := newActionModal("Delete Task", "Delete task \"X\"?", modalDeleteTask, "id-1")

	out := tuitest.StripANSI(m.Overlay("", 80, 24))
	assert.Contains(t, out, "Delete Task")
	assert.Contains(t, out, "Confirm")
	assert.Contains(t, out, "Cancel")
	assert.Equal(t, "id-1", m.target)
}

func TestModal_ToggleSelection(t *testing.T) {
	m := NewModal("", "")
	assert.True(t, m.ConfirmSelected())

	m.ToggleSelection()
	assert.False(t, m.ConfirmSelected())

	m.ToggleSelection()
	assert.True(t, m.ConfirmSelected())
}
