package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/sprintpoker/internal/core/config"
	"github.com/colonyops/sprintpoker/internal/core/styles"
	"github.com/colonyops/sprintpoker/internal/core/tracker"
	"github.com/colonyops/sprintpoker/pkg/iojson"
)

// newSource builds the tracker used by the jira command. Tests replace it.
var newSource = func(cfg *config.Config) tracker.Source {
	return newJiraClient(cfg)
}

// isInteractive reports whether missing fields may be prompted for.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

type JiraCmd struct {
	flags *Flags

	url   string
	email string
	jql   string
	json  bool
}

type jiraKeyLine struct {
	Key string `json:"key"`
}

// NewJiraCmd creates the jira command.
func NewJiraCmd(flags *Flags) *JiraCmd {
	return &JiraCmd{flags: flags}
}

// Register adds the jira command to the application.
func (cmd *JiraCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "jira",
		Usage:     "Print the issue keys matching a JQL query",
		UsageText: "sprintpoker jira [options]",
		Description: `Runs a JQL search against Jira and prints one issue key per line, in
the order Jira returns them. The output can be saved and loaded later with
'sprintpoker --tasks <file>'.

Values not given as flags fall back to the jira section of the config file.
When stdin is a terminal, anything still missing is prompted for.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "url",
				Usage:       "Jira base URL, e.g. https://your-domain.atlassian.net",
				Destination: &cmd.url,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "Jira account email",
				Destination: &cmd.email,
			},
			&cli.StringFlag{
				Name:        "jql",
				Usage:       "JQL query selecting the issues",
				Destination: &cmd.jql,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print one JSON object per key",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *JiraCmd) run(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.ValidConfig()
	if err != nil {
		return err
	}

	q := tracker.Query{
		BaseURL: firstNonEmpty(cmd.url, cfg.Jira.URL),
		Email:   firstNonEmpty(cmd.email, cfg.Jira.Email),
		Token:   cmd.flags.JiraToken,
		JQL:     firstNonEmpty(cmd.jql, cfg.Jira.JQL),
	}.Trimmed()

	if q.Validate() != nil && isInteractive() {
		if err := promptQuery(&q); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
		q = q.Trimmed()
	}

	if err := q.Validate(); err != nil {
		return fmt.Errorf("incomplete jira query: %w", err)
	}

	w := c.Root().Writer
	st := tracker.NewFlow().Run(ctx, newSource(cfg), q, func(keys []string) error {
		return cmd.printKeys(w, keys)
	})
	if failed, ok := st.(tracker.Failed); ok {
		if cmd.json {
			// The envelope is the whole report; exit non-zero without a second message.
			if err := iojson.WriteError(w, failed.Message, nil); err != nil {
				return err
			}
			return cli.Exit("", 1)
		}
		return errors.New(failed.Message)
	}

	return nil
}

func (cmd *JiraCmd) printKeys(w io.Writer, keys []string) error {
	for _, k := range keys {
		if cmd.json {
			if err := iojson.WriteLine(w, jiraKeyLine{Key: k}); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}

// promptQuery asks for the fields of q that are still empty.
var promptQuery = func(q *tracker.Query) error {
	var fields []huh.Field
	if q.BaseURL == "" {
		fields = append(fields, huh.NewInput().
			Title("Jira URL").
			Placeholder("https://your-domain.atlassian.net").
			Validate(requiredValue("url")).
			Value(&q.BaseURL))
	}
	if q.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Validate(requiredValue("email")).
			Value(&q.Email))
	}
	if q.Token == "" {
		fields = append(fields, huh.NewInput().
			Title("API Token").
			EchoMode(huh.EchoModePassword).
			Validate(requiredValue("token")).
			Value(&q.Token))
	}
	if q.JQL == "" {
		fields = append(fields, huh.NewInput().
			Title("JQL").
			Placeholder("project = PROJ AND sprint in openSprints()").
			Validate(requiredValue("jql")).
			Value(&q.JQL))
	}
	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(styles.FormTheme()).Run()
}

func requiredValue(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
