package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/sprintpoker/pkg/tuitest"
)

func TestTextField(t *testing.T) {
	t.Run("creation with defaults", func(t *testing.T) {
		f := NewTextField("Name", "enter name", "")
		assert.Equal(t, "Name", f.Label())
		assert.Empty(t, f.Value())
		assert.False(t, f.Focused())
	})

	t.Run("creation with default value", func(t *testing.T) {
		f := NewTextField("Name", "enter name", "hello")
		assert.Equal(t, "hello", f.Value())
	})

	t.Run("focus and blur", func(t *testing.T) {
		f := NewTextField("Name", "", "")
		f.Focus()
		assert.True(t, f.Focused())

		f.Blur()
		assert.False(t, f.Focused())
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := NewTextField("Name", "", "")
		field, cmd := f.Update(tuitest.KeyPress('a'))
		assert.Nil(t, cmd)
		assert.Empty(t, field.Value())
	})

	t.Run("typing updates value", func(t *testing.T) {
		f := NewTextField("Name", "", "")
		f.Focus()
		for _, msg := range tuitest.Type("PROJ-1") {
			f.Update(msg)
		}
		assert.Equal(t, "PROJ-1", f.Value())
	})

	t.Run("required validation", func(t *testing.T) {
		f := NewTextField("Email", "", "   ", WithValidation(FieldValidation{Required: true}))
		assert.Equal(t, "required", f.Validate())
		assert.Contains(t, tuitest.StripANSI(f.View()), "required")

		f.SetValue("me@example.com")
		assert.Empty(t, f.Validate())
		assert.NotContains(t, tuitest.StripANSI(f.View()), "required")
	})

	t.Run("error clears while typing a valid value", func(t *testing.T) {
		f := NewTextField("JQL", "", "", WithValidation(FieldValidation{Required: true}))
		f.Focus()
		f.Validate()
		assert.Equal(t, "required", f.Error())

		f.Update(tuitest.KeyPress('x'))
		assert.Empty(t, f.Error())
	})

	t.Run("password hides value in view", func(t *testing.T) {
		f := NewTextField("Token", "", "s3cret", Password())
		assert.Equal(t, "s3cret", f.Value())
		assert.NotContains(t, tuitest.StripANSI(f.View()), "s3cret")
	})

	t.Run("reset clears value and error", func(t *testing.T) {
		f := NewTextField("Name", "", "x", WithValidation(FieldValidation{Required: true}))
		f.SetValue("")
		f.Validate()
		f.SetValue("y")
		f.Reset()
		assert.Empty(t, f.Value())
		assert.Empty(t, f.Error())
	})

	t.Run("view changes with focus", func(t *testing.T) {
		f := NewTextField("Name", "", "")
		unfocused := f.View()

		f.Focus()
		assert.NotEqual(t, unfocused, f.View())
	})

	t.Run("non key messages pass through", func(t *testing.T) {
		f := NewTextField("Name", "", "")
		f.Focus()
		_, _ = f.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
		assert.Empty(t, f.Value())
	})
}
