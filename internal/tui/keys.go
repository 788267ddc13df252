package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Focus    key.Binding
	Add      key.Binding
	Import   key.Binding
	Jira     key.Binding
	Delete   key.Binding
	Reveal   key.Binding
	Clear    key.Binding
	End      key.Binding
	Export   key.Binding
	ExportHT key.Binding
	New      key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev card")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next card")),
		Select:   key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "select")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tasks/cards")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Import:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import file")),
		Jira:     key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "import from jira")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		Reveal:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reveal")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear votes")),
		End:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "end session")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export markdown")),
		ExportHT: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export html")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpLine renders "key desc" pairs for the enabled bindings.
func helpLine(bindings ...key.Binding) string {
	var out string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if out != "" {
			out += "  "
		}
		out += h.Key + ": " + h.Desc
	}
	return out
}
