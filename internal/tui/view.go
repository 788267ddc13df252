package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/colonyops/sprintpoker/internal/core/export"
	"github.com/colonyops/sprintpoker/internal/core/poker"
	"github.com/colonyops/sprintpoker/internal/core/session"
	"github.com/colonyops/sprintpoker/internal/core/styles"
	"github.com/colonyops/sprintpoker/internal/core/tracker"
)

const appTitle = "Sprint Poker"

// View renders the model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the current screen and its overlays.
func (m Model) render() string {
	var content string
	switch m.sess.Phase() {
	case session.PhasePreSession:
		content = m.renderWelcome()
	case session.PhaseSummary:
		content = m.renderSummary()
	default:
		content = m.renderActive()
	}

	switch m.state {
	case stateConfirming:
		content = m.modal.Overlay(content, m.width, m.height)
	case stateJiraImport:
		content = overlayCenter(content, m.renderJiraDialog(), m.width, m.height)
	}

	return m.toastView.Overlay(content, m.width, m.height)
}

func (m Model) renderWelcome() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render(appTitle),
		"",
		"Estimate work items together: add tasks, vote, reveal and export a summary.",
		"",
		styles.TextMutedStyle.Render("enter: start session  q: quit"),
	)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// --- Active ---

func (m Model) renderActive() string {
	header := styles.TitleStyle.Render(appTitle)
	if u := m.sess.User(); u != "" {
		header += styles.TextMutedStyle.Render("  voting as ") + styles.VoterNameStyle.Render(u)
	}

	listWidth := 32
	if m.width > 0 {
		listWidth = max(m.width/3, 24)
	}

	left := styles.PanelStyle.Width(listWidth).Render(m.renderTaskList())
	right := styles.PanelStyle.Render(m.renderVoting())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	parts := []string{header, "", body}
	if in := m.renderInput(); in != "" {
		parts = append(parts, "", in)
	}
	parts = append(parts, styles.HelpStyle.Render(m.activeHelp()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTaskList() string {
	tasks := m.sess.Tasks()
	title := "Tasks"
	if m.focus == panelTasks {
		title = styles.FormTitleStyle.Render(title)
	} else {
		title = styles.FormTitleBlurredStyle.Render(title)
	}

	if len(tasks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "",
			styles.TextMutedStyle.Render("No tasks yet. Press a to add one."))
	}

	selected := m.sess.SelectedID()
	lines := []string{title, ""}
	for i, t := range tasks {
		cursor := "  "
		if i == m.cursor && m.focus == panelTasks {
			cursor = styles.IconCursor + " "
		}

		status := styles.IconPending
		style := styles.TaskNormalStyle
		if t.Revealed {
			status = styles.IconRevealed
			style = styles.TaskRevealedStyle
		}
		if t.ID == selected {
			style = styles.TaskSelectedStyle
		}

		line := cursor + status + " " + style.Render(t.Identifier)
		if t.Revealed {
			line += styles.TextMutedStyle.Render(" (" + export.FormatAverage(t.AverageScore) + ")")
		} else if n := t.VoterCount(); n > 0 {
			line += styles.TextMutedStyle.Render(fmt.Sprintf(" [%d]", n))
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderVoting() string {
	t, ok := m.sess.Selected()
	if !ok {
		return styles.TextMutedStyle.Render("Select a task from the list to start voting or view its details.")
	}

	lines := []string{styles.TitleStyle.Render("Task: " + t.Identifier), ""}

	if t.Revealed {
		lines = append(lines, "Average: "+styles.AverageScoreStyle.Render(export.FormatAverage(t.AverageScore)), "")
		votes := t.Votes()
		if len(votes) == 0 {
			lines = append(lines, styles.TextMutedStyle.Render("No votes were cast."))
		}
		for _, v := range votes {
			lines = append(lines, "  "+styles.VoterNameStyle.Render(v.Voter)+": "+v.Value.String())
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	n := t.VoterCount()
	if n == 1 {
		lines = append(lines, "1 user has voted so far.")
	} else {
		lines = append(lines, fmt.Sprintf("%d users have voted so far.", n))
	}

	if u := m.sess.User(); u != "" {
		if v, ok := t.VoteOf(u); ok {
			lines = append(lines, styles.TextMutedStyle.Render("Your vote: ")+v.Value.String())
		}
	}

	lines = append(lines, "", m.renderDeck(t))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderDeck(t poker.Task) string {
	var mine string
	if u := m.sess.User(); u != "" {
		if v, ok := t.VoteOf(u); ok {
			mine = v.Value.String()
		}
	}

	cards := make([]string, 0, len(m.cards))
	for i, c := range m.cards {
		style := styles.CardStyle
		switch {
		case m.focus == panelDeck && i == m.cardCursor:
			style = styles.CardCursorStyle
		case c.String() == mine:
			style = styles.CardChosenStyle
		}
		cards = append(cards, style.Render(c.String()))
	}

	rows := wrapCards(cards, m.deckWidth())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) deckWidth() int {
	if m.width == 0 {
		return 80
	}
	return max(m.width-m.width/3-8, 20)
}

// wrapCards lays cards out left to right, starting a new row when width is
// exceeded.
func wrapCards(cards []string, width int) []string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, c := range cards {
		w := lipgloss.Width(c)
		if rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, c)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return rows
}

func (m Model) renderInput() string {
	var label string
	switch m.state {
	case stateAddingTask:
		label = "Add task"
	case stateImportingFile:
		label = "Import tasks from file"
	case stateNamingUser:
		label = "Enter your name to vote"
	default:
		return ""
	}

	parts := []string{styles.FormTitleStyle.Render(label), m.input.View()}
	if m.inputErr != "" {
		parts = append(parts, styles.FormErrorStyle.Render(m.inputErr))
	}
	parts = append(parts, styles.FormHelpStyle.Render("enter: confirm  esc: cancel"))
	return styles.FormFieldFocusedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) activeHelp() string {
	k := m.keys
	t, ok := m.sess.Selected()

	reveal, revote := k.Reveal, k.Clear
	reveal.SetEnabled(ok && !t.Revealed && t.HasVotes())
	revote.SetEnabled(ok && t.HasVotes())
	if ok && t.Revealed {
		revote.SetHelp("c", "re-vote")
	}

	if m.focus == panelDeck {
		vote := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add vote"))
		if u := m.sess.User(); ok && u != "" {
			if _, voted := t.VoteOf(u); voted {
				vote.SetHelp("enter", "update vote")
			}
		}
		vote.SetEnabled(ok && !t.Revealed)
		return helpLine(k.Left, k.Right, vote, reveal, revote, k.Focus, k.End)
	}
	return helpLine(k.Up, k.Down, k.Select, k.Add, k.Import, k.Jira, k.Delete, reveal, revote, k.End, k.Quit)
}

// --- Jira dialog ---

func (m Model) renderJiraDialog() string {
	if m.jiraDialog == nil {
		return ""
	}

	parts := []string{styles.ModalTitleStyle.Render(m.jiraDialog.Title), "", m.jiraDialog.View()}

	switch st := m.jiraFlow.State().(type) {
	case tracker.Loading:
		parts = append(parts, "", m.spinner.View()+" Fetching issues...")
	case tracker.Failed:
		parts = append(parts, "", styles.ErrorStyle.Width(60).Render(st.Message))
	}

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// --- Summary ---

func (m *Model) refreshSummary() {
	md := export.Markdown(m.sess.Tasks())

	width := max(m.summary.Width()-2, 20)
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.summary.SetContent(md)
		return
	}

	out, err := r.Render(md)
	if err != nil {
		m.log.Debug().Err(err).Msg("render summary markdown")
		out = md
	}
	m.summary.SetContent(strings.TrimRight(out, "\n"))
}

func (m Model) renderSummary() string {
	tasks := m.sess.Tasks()
	parts := []string{styles.TitleStyle.Render(appTitle + " - Session Summary")}

	if m.summaryWarning != "" {
		parts = append(parts, styles.WarningStyle.Render(styles.IconWarning+" "+m.summaryWarning))
	}

	if len(tasks) == 0 {
		parts = append(parts, "", styles.TextMutedStyle.Render("No tasks were estimated in this session."))
	} else {
		parts = append(parts, "", m.summary.View())
	}

	exportMD, exportHTML := m.keys.Export, m.keys.ExportHT
	exportMD.SetEnabled(len(tasks) > 0)
	exportHTML.SetEnabled(len(tasks) > 0)
	parts = append(parts, styles.HelpStyle.Render(helpLine(exportMD, exportHTML, m.keys.Up, m.keys.Down, m.keys.New, m.keys.Quit)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
