package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/sprintpoker/internal/core/config"
	"github.com/colonyops/sprintpoker/internal/core/export"
	"github.com/colonyops/sprintpoker/internal/core/poker"
	"github.com/colonyops/sprintpoker/internal/core/taskfile"
	"github.com/colonyops/sprintpoker/internal/core/tracker"
	"github.com/colonyops/sprintpoker/internal/tui/components/form"
)

type jiraResultMsg struct {
	keys []string
	err  error
}

type fileImportMsg struct {
	path        string
	identifiers []string
	err         error
}

type exportDoneMsg struct {
	path string
	err  error
}

// fetchJira runs the search off the update loop. The result is applied to the
// session in Update.
func fetchJira(ctx context.Context, src tracker.Source, q tracker.Query) tea.Cmd {
	return func() tea.Msg {
		if err := q.Validate(); err != nil {
			return jiraResultMsg{err: err}
		}
		keys, err := src.Fetch(ctx, q)
		return jiraResultMsg{keys: keys, err: err}
	}
}

func readTaskFile(path string) tea.Cmd {
	return func() tea.Msg {
		ids, err := taskfile.ReadFile(path)
		return fileImportMsg{path: path, identifiers: ids, err: err}
	}
}

func writeExport(path string, f export.Format, tasks []poker.Task) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: export.Write(path, f, tasks)}
	}
}

// exportPath places the summary in the configured directory.
func exportPath(cfg *config.Config, f export.Format) string {
	return export.PathFor(cfg.ExportPath(), f)
}

const (
	jiraFieldURL   = "url"
	jiraFieldEmail = "email"
	jiraFieldToken = "token"
	jiraFieldJQL   = "jql"
)

func newJiraDialog(url, email, token, jql string) *form.Dialog {
	required := form.WithValidation(form.FieldValidation{Required: true})
	fields := []form.Field{
		form.NewTextField("Jira URL", "https://your-domain.atlassian.net", url, form.WithValidation(form.HTTPURL)),
		form.NewTextField("Email", "you@example.com", email, required),
		form.NewTextField("API Token", "token", token, required, form.Password()),
		form.NewTextField("JQL", "project = PROJ AND sprint in openSprints()", jql, required, form.WithWidth(56)),
	}
	return form.NewDialog("Import from Jira", fields, []string{jiraFieldURL, jiraFieldEmail, jiraFieldToken, jiraFieldJQL})
}

func jiraQuery(values map[string]string) tracker.Query {
	return tracker.Query{
		BaseURL: values[jiraFieldURL],
		Email:   values[jiraFieldEmail],
		Token:   values[jiraFieldToken],
		JQL:     values[jiraFieldJQL],
	}.Trimmed()
}
