package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/sprintpoker/internal/core/config"
	"github.com/colonyops/sprintpoker/internal/printer"
)

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

func testFlags(t *testing.T) *Flags {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.Dir = t.TempDir()
	return &Flags{Config: &cfg}
}

// runApp registers cmd on a fresh root command and runs it with args. Both
// the command writer and the printer write to the returned buffer.
func runApp(t *testing.T, cmd registrar, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer

	app := &cli.Command{
		Name:           "sprintpoker",
		Writer:         &buf,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	cmd.Register(app)

	ctx := printer.WithPrinter(context.Background(), printer.New(&buf))
	err := app.Run(ctx, append([]string{"sprintpoker"}, args...))
	return buf.String(), err
}
