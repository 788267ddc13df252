package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/sprintpoker/pkg/tuitest"
)

func required() TextOption {
	return WithValidation(FieldValidation{Required: true})
}

func TestDialog(t *testing.T) {
	t.Run("creation focuses first field", func(t *testing.T) {
		f1 := NewTextField("Name", "", "")
		f2 := NewTextField("Email", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"name", "email"})

		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
		assert.False(t, d.Submitted())
		assert.False(t, d.Cancelled())
	})

	t.Run("empty dialog", func(t *testing.T) {
		d := NewDialog("Empty", []Field{}, []string{})
		assert.Empty(t, d.FormValues())
		d.Update(tuitest.KeyEnter())
		assert.True(t, d.Submitted())
	})

	t.Run("tab advances focus", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		f3 := NewTextField("C", "", "")
		d := NewDialog("Test", []Field{f1, f2, f3}, []string{"a", "b", "c"})

		d.Update(tuitest.KeyTab())
		assert.True(t, f2.Focused())

		d.Update(tuitest.KeyTab())
		assert.False(t, f2.Focused())
		assert.True(t, f3.Focused())
	})

	t.Run("enter past last field submits", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		d.Update(tuitest.KeyEnter())
		assert.True(t, d.Submitted())
	})

	t.Run("shift+tab retreats focus", func(t *testing.T) {
		f1 := NewTextField("A", "", "")
		f2 := NewTextField("B", "", "")
		d := NewDialog("Test", []Field{f1, f2}, []string{"a", "b"})

		d.Update(tuitest.KeyTab())
		d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift}))
		assert.True(t, f1.Focused())
		assert.False(t, f2.Focused())
	})

	t.Run("invalid fields block submission", func(t *testing.T) {
		f1 := NewTextField("URL", "", "", required())
		f2 := NewTextField("JQL", "", "project = P", required())
		d := NewDialog("Test", []Field{f1, f2}, []string{"url", "jql"})

		d.Update(tuitest.KeyEnter())
		d.Update(tuitest.KeyEnter())

		assert.False(t, d.Submitted())
		assert.True(t, f1.Focused(), "focus returns to the first invalid field")
		assert.Equal(t, "required", f1.Error())
	})

	t.Run("fixing the field allows submission", func(t *testing.T) {
		f1 := NewTextField("URL", "", "", required())
		d := NewDialog("Test", []Field{f1}, []string{"url"})

		d.Update(tuitest.KeyEnter())
		assert.False(t, d.Submitted())

		for _, msg := range tuitest.Type("https://x") {
			d.Update(msg)
		}
		d.Update(tuitest.KeyEnter())
		assert.True(t, d.Submitted())
		assert.Equal(t, "https://x", d.FormValues()["url"])
	})

	t.Run("escape cancels", func(t *testing.T) {
		d := NewDialog("Test", []Field{NewTextField("A", "", "")}, []string{"a"})

		d.Update(tuitest.KeyEsc())
		assert.True(t, d.Cancelled())
		assert.False(t, d.Submitted())
	})

	t.Run("locked dialog ignores input until reopened", func(t *testing.T) {
		f1 := NewTextField("A", "", "x")
		d := NewDialog("Test", []Field{f1}, []string{"a"})

		d.Update(tuitest.KeyEnter())
		assert.True(t, d.Submitted())
		d.Lock()

		d.Update(tuitest.KeyEsc())
		assert.False(t, d.Cancelled())

		d.Reopen()
		assert.False(t, d.Submitted())
		d.Update(tuitest.KeyEsc())
		assert.True(t, d.Cancelled())
	})

	t.Run("FormValues extracts all values", func(t *testing.T) {
		f1 := NewTextField("Name", "", "Alice")
		f2 := NewTextField("Email", "", "alice@test.com")
		d := NewDialog("Test", []Field{f1, f2}, []string{"name", "email"})

		vals := d.FormValues()
		assert.Equal(t, "Alice", vals["name"])
		assert.Equal(t, "alice@test.com", vals["email"])
	})

	t.Run("view renders fields and help", func(t *testing.T) {
		d := NewDialog("Test Form", []Field{NewTextField("Name", "", ""), NewTextField("Color", "", "")}, []string{"name", "color"})

		view := d.View()
		assert.Contains(t, view, "Name")
		assert.Contains(t, view, "Color")
		assert.Contains(t, view, "tab")
	})
}
