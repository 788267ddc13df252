package tui

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/sprintpoker/internal/core/styles"
)

// modalAction is what a confirmed modal does.
type modalAction int

const (
	modalNone modalAction = iota
	modalDeleteTask
	modalQuit
)

// Modal is a confirm/cancel dialog.
type Modal struct {
	title           string
	message         string
	visible         bool
	confirmSelected bool // true = confirm button selected, false = cancel button selected
	action          modalAction
	target          string // task id for modalDeleteTask
}

// NewModal creates a new modal with the given title and message.
func NewModal(title, message string) Modal {
	return Modal{
		title:           title,
		message:         message,
		visible:         true,
		confirmSelected: true,
	}
}

func newActionModal(title, message string, action modalAction, target string) Modal {
	m := NewModal(title, message)
	m.action = action
	m.target = target
	return m
}

// ToggleSelection switches the selected button.
func (m *Modal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected returns true if the confirm button is selected.
func (m Modal) ConfirmSelected() bool {
	return m.confirmSelected
}

// Visible returns whether the modal should be displayed.
func (m Modal) Visible() bool {
	return m.visible
}

// Overlay renders the modal centered over the screen.
func (m Modal) Overlay(background string, width, height int) string {
	if !m.visible {
		return background
	}

	var confirmBtn, cancelBtn string
	if m.confirmSelected {
		confirmBtn = styles.ModalButtonSelectedStyle.Render("Confirm")
		cancelBtn = styles.ModalButtonStyle.Render("Cancel")
	} else {
		confirmBtn = styles.ModalButtonStyle.Render("Confirm")
		cancelBtn = styles.ModalButtonSelectedStyle.Render("Cancel")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, confirmBtn, "  ", cancelBtn)
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(buttons)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		buttonRow,
		styles.ModalHelpStyle.Render("←/→ select  enter confirm  esc cancel"),
	)

	return overlayCenter(background, styles.ModalStyle.Render(content), width, height)
}

// overlayCenter composites fg centered over bg.
func overlayCenter(bg, fg string, width, height int) string {
	if width <= 0 || height <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, bg, fg)
	}

	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max((height-lipgloss.Height(fg))/2, 0)

	bgLayer := lipgloss.NewLayer(bg)
	fgLayer := lipgloss.NewLayer(fg).X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, fgLayer).Render()
}
