package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

const rootDescription = `Sprint Poker runs a planning-poker session in your terminal: add task
identifiers by hand, from files, or from a Jira JQL search, vote with a
card deck, reveal the average, and export a markdown or HTML summary.

Run 'sprintpoker' with no arguments to open the interactive session.`

// NewRoot returns the root command with every subcommand registered and the
// TUI as its default action. Lifecycle hooks are left to the caller.
func NewRoot(flags *Flags, version string) *cli.Command {
	app := &cli.Command{
		Name:        appName,
		Usage:       "Estimate work items with planning poker in the terminal",
		UsageText:   "sprintpoker [global options] command [command options]",
		Description: rootDescription,
		Version:     version,
		Flags:       GlobalFlags(flags),
	}

	tuiCmd := NewTuiCmd(flags)

	app = NewJiraCmd(flags).Register(app)
	app = NewSummaryCmd(flags).Register(app)
	app = NewDeckCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'sprintpoker --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return app
}
