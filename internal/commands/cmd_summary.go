package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/sprintpoker/internal/core/export"
	"github.com/colonyops/sprintpoker/internal/core/session"
	"github.com/colonyops/sprintpoker/internal/core/taskfile"
	"github.com/colonyops/sprintpoker/internal/printer"
)

type SummaryCmd struct {
	flags  *Flags
	format string
	out    string
}

// NewSummaryCmd creates the summary command.
func NewSummaryCmd(flags *Flags) *SummaryCmd {
	return &SummaryCmd{flags: flags}
}

// Register adds the summary command to the application.
func (cmd *SummaryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "summary",
		Usage:     "Write a summary skeleton for identifier files",
		UsageText: "sprintpoker summary [options] <file or glob>...",
		Description: `Loads task identifiers from the given files (one per line, globs such as
'backlog/**/*.txt' allowed) and writes the session summary without opening
the TUI. No votes have been cast, so every task is listed as not revealed.

Use '--out -' to print the document instead of writing a file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (md, html)",
				Value:       "md",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path (defaults to the configured export path)",
				Destination: &cmd.out,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SummaryCmd) run(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.ValidConfig()
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(cmd.format)
	if err != nil {
		return err
	}

	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one identifier file is required")
	}

	ids, err := taskfile.Load(c.Args().Slice())
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	sess := session.New()
	if err := sess.Start(); err != nil {
		return err
	}
	if _, err := sess.AddTasks(ids); err != nil {
		return err
	}

	if cmd.out == "-" {
		doc, err := export.Render(format, sess.Tasks())
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(c.Root().Writer, doc)
		return err
	}

	path := cmd.out
	if path == "" {
		path = export.PathFor(cfg.ExportPath(), format)
	}

	p := printer.Ctx(ctx)
	p.Infof("Loaded %d identifier(s) from %d source(s)", len(ids), c.Args().Len())

	if err := export.Write(path, format, sess.Tasks()); err != nil {
		return err
	}

	p.Successf("Wrote %d task(s) to %s", len(ids), path)
	return nil
}
