package tui

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/sprintpoker/internal/core/export"
	"github.com/colonyops/sprintpoker/internal/core/logging"
	"github.com/colonyops/sprintpoker/internal/core/poker"
	"github.com/colonyops/sprintpoker/internal/core/session"
	"github.com/colonyops/sprintpoker/internal/core/tracker"
)

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	if m.state == stateConfirming {
		return m.handleModalKey(msg)
	}

	switch m.sess.Phase() {
	case session.PhasePreSession:
		return m.handleWelcomeKey(msg)
	case session.PhaseSummary:
		return m.handleSummaryKey(msg)
	}

	switch m.state {
	case stateAddingTask, stateImportingFile, stateNamingUser:
		return m.handleInputKey(msg)
	case stateJiraImport:
		return m.handleJiraKey(msg)
	}

	return m.handleActiveKey(msg)
}

// --- Welcome ---

func (m Model) handleWelcomeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		return m.startSession()
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	}
	return m, nil
}

func (m Model) startSession() (tea.Model, tea.Cmd) {
	if err := m.sess.Start(); err != nil {
		return m, m.notify(ToastError, err.Error())
	}
	if m.cfg.User != "" && m.sess.User() == "" {
		_ = m.sess.SetUser(m.cfg.User)
	}

	var cmd tea.Cmd
	if len(m.preload) > 0 {
		added, err := m.sess.AddTasks(m.preload)
		if err == nil && len(added) > 0 {
			m.selectIndex(0)
			cmd = m.notify(ToastInfo, fmt.Sprintf("Loaded %d task(s)", len(added)))
		}
		m.preload = nil
	}
	m.log.Info().Ctx(m.ctx).Msg("session started")
	return m, cmd
}

// --- Active ---

func (m Model) handleActiveKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.modal = newActionModal("Quit", "Quit sprintpoker? The session is not saved.", modalQuit, "")
		m.state = stateConfirming
		return m, nil
	case key.Matches(msg, m.keys.Add):
		return m.openInput(stateAddingTask, "Task identifier, e.g. PROJ-123")
	case key.Matches(msg, m.keys.Import):
		return m.openInput(stateImportingFile, "Path to a text file, one identifier per line")
	case key.Matches(msg, m.keys.Jira):
		return m.openJiraDialog()
	case key.Matches(msg, m.keys.End):
		return m.endSession()
	case key.Matches(msg, m.keys.Reveal):
		return m.revealSelected()
	case key.Matches(msg, m.keys.Clear):
		return m.clearSelected()
	case key.Matches(msg, m.keys.Focus):
		if m.focus == panelTasks {
			if _, ok := m.sess.Selected(); ok {
				m.focus = panelDeck
			}
		} else {
			m.focus = panelTasks
		}
		return m, nil
	}

	if m.focus == panelDeck {
		return m.handleDeckKey(msg)
	}
	return m.handleTaskListKey(msg)
}

func (m Model) handleTaskListKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	tasks := m.sess.Tasks()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(tasks) {
			m.selectIndex(m.cursor)
			m.focus = panelDeck
		}
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			m.modal = newActionModal("Delete Task", fmt.Sprintf("Delete task %q and its votes?", t.Identifier), modalDeleteTask, t.ID)
			m.state = stateConfirming
		}
	}
	return m, nil
}

func (m Model) handleDeckKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.focus = panelTasks
	case key.Matches(msg, m.keys.Left):
		if m.cardCursor > 0 {
			m.cardCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cardCursor < len(m.cards)-1 {
			m.cardCursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.cardCursor < len(m.cards) {
			return m.castVote(m.cards[m.cardCursor])
		}
	}
	return m, nil
}

func (m *Model) selectIndex(i int) {
	tasks := m.sess.Tasks()
	if i < 0 || i >= len(tasks) {
		return
	}
	m.cursor = i
	_ = m.sess.SelectTask(tasks[i].ID)
}

func (m Model) castVote(value poker.Value) (tea.Model, tea.Cmd) {
	t, ok := m.sess.Selected()
	if !ok {
		return m, m.notify(ToastWarning, "Select a task first")
	}
	if t.Revealed {
		return m, m.notify(ToastWarning, "Votes are revealed; press c to re-vote")
	}

	if m.sess.User() == "" {
		v := value
		m.pendingVal = &v
		return m.openInput(stateNamingUser, "Your name")
	}

	if err := m.sess.Vote(t.ID, value); err != nil {
		return m, m.notify(ToastError, err.Error())
	}
	m.log.Debug().Ctx(logging.WithTaskID(m.ctx, t.ID)).Str("value", value.String()).Msg("vote cast")
	return m, nil
}

func (m Model) revealSelected() (tea.Model, tea.Cmd) {
	t, ok := m.sess.Selected()
	if !ok {
		return m, m.notify(ToastWarning, "Select a task first")
	}
	if !t.HasVotes() {
		return m, m.notify(ToastWarning, "No votes to reveal yet")
	}
	if err := m.sess.Reveal(t.ID); err != nil {
		return m, m.notify(ToastError, err.Error())
	}
	m.log.Debug().Ctx(logging.WithTaskID(m.ctx, t.ID)).Int("votes", t.VoterCount()).Msg("votes revealed")
	return m, nil
}

func (m Model) clearSelected() (tea.Model, tea.Cmd) {
	t, ok := m.sess.Selected()
	if !ok || !t.HasVotes() {
		return m, nil
	}
	if err := m.sess.ClearVotes(t.ID); err != nil {
		return m, m.notify(ToastError, err.Error())
	}
	return m, nil
}

func (m Model) endSession() (tea.Model, tea.Cmd) {
	report, err := m.sess.End()
	if err != nil {
		return m, m.notify(ToastError, err.Error())
	}
	m.summaryWarning = report.Warning()
	m.focus = panelTasks
	m.refreshSummary()
	return m, nil
}

// --- Line input (add task, import file, name) ---

func (m Model) openInput(state UIState, placeholder string) (tea.Model, tea.Cmd) {
	m.state = state
	m.inputErr = ""
	m.input.Reset()
	m.input.Placeholder = placeholder
	if state == stateNamingUser && m.cfg.User != "" {
		m.input.SetValue(m.cfg.User)
	}
	return m, m.input.Focus()
}

func (m *Model) closeInput() {
	m.state = stateNormal
	m.inputErr = ""
	m.input.Blur()
	m.input.Reset()
}

func (m Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pendingVal = nil
		m.closeInput()
		return m, nil
	case "enter":
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.inputErr = "A value is required"
		return m, nil
	}

	switch m.state {
	case stateAddingTask:
		if _, err := m.sess.AddTask(value); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		if _, ok := m.sess.Selected(); !ok {
			m.selectIndex(len(m.sess.Tasks()) - 1)
		}
		m.closeInput()
		return m, nil

	case stateImportingFile:
		m.closeInput()
		return m, readTaskFile(value)

	case stateNamingUser:
		if err := m.sess.SetUser(value); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.closeInput()
		if m.pendingVal != nil {
			v := *m.pendingVal
			m.pendingVal = nil
			return m.castVote(v)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleFileImport(msg fileImportMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn().Ctx(m.ctx).Err(msg.err).Str("path", msg.path).Msg("file import failed")
		return m, m.notify(ToastError, "Error reading file: "+msg.err.Error())
	}

	added, err := m.sess.AddTasks(msg.identifiers)
	if err != nil {
		return m, m.notify(ToastError, err.Error())
	}
	if _, ok := m.sess.Selected(); !ok && len(added) > 0 {
		m.selectIndex(len(m.sess.Tasks()) - len(added))
	}
	return m, m.notify(ToastSuccess, fmt.Sprintf("Imported %d task(s) from %s", len(added), msg.path))
}

// --- Jira import ---

func (m Model) openJiraDialog() (tea.Model, tea.Cmd) {
	if m.src == nil {
		return m, m.notify(ToastWarning, "Jira import is not available")
	}
	m.jiraDialog = newJiraDialog(m.cfg.Jira.URL, m.cfg.Jira.Email, m.token, m.cfg.Jira.JQL)
	m.jiraFlow.Reset()
	m.state = stateJiraImport
	return m, nil
}

func (m Model) handleJiraKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.jiraFlow.Loading() {
		return m, nil
	}

	var cmd tea.Cmd
	m.jiraDialog, cmd = m.jiraDialog.Update(msg)

	switch {
	case m.jiraDialog.Cancelled():
		m.jiraDialog = nil
		m.jiraFlow.Reset()
		m.state = stateNormal
		return m, nil
	case m.jiraDialog.Submitted():
		q := jiraQuery(m.jiraDialog.FormValues())
		if err := m.jiraFlow.Begin(); errors.Is(err, tracker.ErrBusy) {
			return m, nil
		}
		m.jiraDialog.Lock()
		return m, tea.Batch(fetchJira(m.ctx, m.src, q), m.spinner.Tick)
	}

	return m, cmd
}

func (m Model) handleJiraResult(msg jiraResultMsg) (tea.Model, tea.Cmd) {
	var added int
	st := m.jiraFlow.Finish(msg.keys, msg.err, func(keys []string) error {
		tasks, err := m.sess.AddTasks(keys)
		added = len(tasks)
		return err
	})

	switch st := st.(type) {
	case tracker.Done:
		m.jiraDialog = nil
		m.jiraFlow.Reset()
		m.state = stateNormal
		if _, ok := m.sess.Selected(); !ok && added > 0 {
			m.selectIndex(len(m.sess.Tasks()) - added)
		}
		return m, m.notify(ToastSuccess, fmt.Sprintf("Imported %d task(s) from Jira", st.Imported))
	case tracker.Failed:
		m.log.Warn().Ctx(m.ctx).Err(st.Err).Msg("jira import failed")
		if m.jiraDialog != nil {
			m.jiraDialog.Reopen()
		}
	}
	return m, nil
}

// --- Summary ---

func (m Model) handleSummaryKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.New):
		if err := m.sess.StartNew(); err != nil {
			return m, m.notify(ToastError, err.Error())
		}
		m.cursor = 0
		m.cardCursor = 0
		m.focus = panelTasks
		m.summaryWarning = ""
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m.exportSummary(export.FormatMarkdown)
	case key.Matches(msg, m.keys.ExportHT):
		return m.exportSummary(export.FormatHTML)
	}

	var cmd tea.Cmd
	m.summary, cmd = m.summary.Update(msg)
	return m, cmd
}

func (m Model) exportSummary(f export.Format) (tea.Model, tea.Cmd) {
	tasks := m.sess.Tasks()
	if len(tasks) == 0 {
		return m, m.notify(ToastWarning, "Nothing to export")
	}
	return m, writeExport(exportPath(m.cfg, f), f, tasks)
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.notify(ToastError, "Export failed: "+msg.err.Error())
	}
	return m, m.notify(ToastSuccess, "Summary written to "+msg.path)
}

// --- Modal ---

func (m Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
		return m, nil
	case "esc", "n":
		m.modal = Modal{}
		m.state = stateNormal
		return m, nil
	case "y":
		return m.confirmModal()
	case "enter":
		if !m.modal.ConfirmSelected() {
			m.modal = Modal{}
			m.state = stateNormal
			return m, nil
		}
		return m.confirmModal()
	}
	return m, nil
}

func (m Model) confirmModal() (tea.Model, tea.Cmd) {
	action, target := m.modal.action, m.modal.target
	m.modal = Modal{}
	m.state = stateNormal

	switch action {
	case modalDeleteTask:
		if err := m.sess.DeleteTask(target); err != nil {
			return m, m.notify(ToastError, err.Error())
		}
		if n := len(m.sess.Tasks()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		if _, ok := m.sess.Selected(); !ok {
			m.focus = panelTasks
		}
	case modalQuit:
		return m, m.quit()
	}
	return m, nil
}
