// Package tui implements the interactive planning-poker screens.
package tui

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/sprintpoker/internal/core/config"
	"github.com/colonyops/sprintpoker/internal/core/logging"
	"github.com/colonyops/sprintpoker/internal/core/poker"
	"github.com/colonyops/sprintpoker/internal/core/session"
	"github.com/colonyops/sprintpoker/internal/core/styles"
	"github.com/colonyops/sprintpoker/internal/core/tracker"
	"github.com/colonyops/sprintpoker/internal/tui/components/form"
)

// UIState is the input mode of the active screen.
type UIState int

const (
	stateNormal UIState = iota
	stateAddingTask
	stateImportingFile
	stateNamingUser
	stateJiraImport
	stateConfirming
)

// panel is which half of the active screen receives navigation keys.
type panel int

const (
	panelTasks panel = iota
	panelDeck
)

// Options configures a Model.
type Options struct {
	Context context.Context
	Session *session.Session
	Config  *config.Config
	// Source serves the Jira import. A nil Source disables it.
	Source tracker.Source
	// Preload identifiers are added when the session starts.
	Preload []string
	// JiraToken prefills the token field of the Jira import dialog.
	JiraToken string
}

// Model is the root bubbletea model.
type Model struct {
	ctx  context.Context
	sess *session.Session
	cfg  *config.Config
	src  tracker.Source
	log  zerolog.Logger
	keys keyMap

	width  int
	height int

	state   UIState
	focus   panel
	preload []string
	token   string // from --jira-token; typed tokens live only in the dialog

	cards      []poker.Value
	cardCursor int
	cursor     int

	input      textinput.Model
	inputErr   string
	pendingVal *poker.Value // vote waiting for a voter name

	jiraDialog *form.Dialog
	jiraFlow   *tracker.Flow
	spinner    spinner.Model

	modal Modal

	summary        viewport.Model
	summaryWarning string

	toasts    *ToastController
	toastView *ToastView

	quitting bool
}

// New returns a model on the welcome screen.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithSessionID(ctx, opts.Session.ID)

	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	toasts := NewToastController()

	return Model{
		ctx:       ctx,
		sess:      opts.Session,
		cfg:       cfg,
		src:       opts.Source,
		log:       logging.Component("tui"),
		keys:      defaultKeyMap(),
		preload:   opts.Preload,
		token:     opts.JiraToken,
		cards:     cfg.Cards(),
		input:     newLineInput(),
		jiraFlow:  tracker.NewFlow(),
		spinner:   s,
		summary:   viewport.New(),
		toasts:    toasts,
		toastView: NewToastView(toasts),
	}
}

func newLineInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.SetWidth(48)

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)
	return ti
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Session returns the session the model drives.
func (m Model) Session() *session.Session { return m.sess }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case jiraResultMsg:
		return m.handleJiraResult(msg)
	case fileImportMsg:
		return m.handleFileImport(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)

	case toastTickMsg:
		return m.handleToastTick()
	case spinner.TickMsg:
		if !m.jiraFlow.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

// forward passes non-key messages (cursor blink, etc.) to the focused input.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case stateAddingTask, stateImportingFile, stateNamingUser:
		m.input, cmd = m.input.Update(msg)
	case stateJiraImport:
		if m.jiraDialog != nil {
			m.jiraDialog, cmd = m.jiraDialog.Update(msg)
		}
	}
	if m.sess.Phase() == session.PhaseSummary {
		var vcmd tea.Cmd
		m.summary, vcmd = m.summary.Update(msg)
		cmd = tea.Batch(cmd, vcmd)
	}
	return m, cmd
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.summary.SetWidth(max(msg.Width-4, 20))
	m.summary.SetHeight(max(msg.Height-8, 5))
	if m.sess.Phase() == session.PhaseSummary {
		m.refreshSummary()
	}
	return m, nil
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toasts.Tick(toastTickInterval)
	if !m.toasts.HasToasts() {
		m.toasts.SetTicking(false)
		return m, nil
	}
	return m, scheduleToastTick()
}

// notify pushes a toast and starts the tick timer when needed.
func (m *Model) notify(level ToastLevel, msg string) tea.Cmd {
	m.toasts.Push(level, msg)
	if m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}
