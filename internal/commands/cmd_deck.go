package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/sprintpoker/internal/core/styles"
	"github.com/colonyops/sprintpoker/pkg/iojson"
)

type DeckCmd struct {
	flags *Flags
	json  bool
}

type deckCard struct {
	Label   string `json:"label"`
	Numeric bool   `json:"numeric"`
}

// NewDeckCmd creates the deck command.
func NewDeckCmd(flags *Flags) *DeckCmd {
	return &DeckCmd{flags: flags}
}

// Register adds the deck command to the application.
func (cmd *DeckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "deck",
		Usage:       "Print the configured card deck",
		UsageText:   "sprintpoker deck [--json]",
		Description: "Lists the cards offered on the voting screen. Numeric cards count toward the average; the rest are recorded but ignored by it.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the deck as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DeckCmd) run(_ context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.ValidConfig()
	if err != nil {
		return err
	}

	cards := cfg.Cards()
	w := c.Root().Writer

	if cmd.json {
		out := make([]deckCard, 0, len(cards))
		for _, card := range cards {
			out = append(out, deckCard{Label: card.String(), Numeric: card.IsNumeric()})
		}
		return iojson.WriteIndented(w, out)
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsNumeric() {
			rendered = append(rendered, styles.CardStyle.Render(card.String()))
		} else {
			rendered = append(rendered, styles.CardChosenStyle.Render(card.String()))
		}
	}

	_, err = fmt.Fprintln(w, strings.Join(rendered, " "))
	return err
}
