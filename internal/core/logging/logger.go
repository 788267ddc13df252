// Package logging provides component loggers and context-carried ids for
// structured log events.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with a "cmp" field. Events logged
// with .Ctx(ctx) also pick up the session and task ids stored in ctx.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger().Hook(ContextHook{})
}
