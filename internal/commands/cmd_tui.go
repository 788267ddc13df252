package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/sprintpoker/internal/core/config"
	"github.com/colonyops/sprintpoker/internal/core/session"
	"github.com/colonyops/sprintpoker/internal/core/taskfile"
	"github.com/colonyops/sprintpoker/internal/integration/jira"
	"github.com/colonyops/sprintpoker/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	tasks []string
	user  string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "tasks",
			Aliases:     []string{"t"},
			Usage:       "identifier files or glob patterns to load when the session starts",
			Destination: &cmd.tasks,
		},
		&cli.StringFlag{
			Name:        "user",
			Aliases:     []string{"u"},
			Usage:       "voter name (overrides the config user)",
			Sources:     cli.EnvVars("SPRINTPOKER_USER"),
			Destination: &cmd.user,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	loaded, err := cmd.flags.ValidConfig()
	if err != nil {
		return err
	}

	cfg := *loaded
	if cmd.user != "" {
		cfg.User = cmd.user
	}

	var preload []string
	if len(cmd.tasks) > 0 {
		ids, err := taskfile.Load(cmd.tasks)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		preload = ids
	}

	sess := session.New()
	log.Info().Str("session_id", sess.ID).Int("preload", len(preload)).Msg("starting tui")

	m := tui.New(tui.Options{
		Context:   ctx,
		Session:   sess,
		Config:    &cfg,
		Source:    newJiraClient(&cfg),
		Preload:   preload,
		JiraToken: cmd.flags.JiraToken,
	})

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func newJiraClient(cfg *config.Config) *jira.Client {
	return jira.New(
		jira.WithTimeout(cfg.Jira.Timeout),
		jira.WithMaxResults(cfg.Jira.MaxResults),
	)
}
