package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidateCmd_Valid(t *testing.T) {
	flags := testFlags(t)
	flags.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")

	out, err := runApp(t, NewConfigValidateCmd(flags), "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, ansi.Strip(out), "Configuration is valid")
}

func TestConfigValidateCmd_InvalidJSON(t *testing.T) {
	flags := testFlags(t)
	flags.Config.Theme = "neon"
	flags.Config.Deck = []string{"?", "?"}

	out, err := runApp(t, NewConfigValidateCmd(flags), "config", "validate", "--format", "json")
	require.Error(t, err)

	var result validationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "theme")
	assert.Contains(t, fields, "deck[1]")

	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "Deck", result.Warnings[0].Category)
}

func TestConfigValidateCmd_InvalidText(t *testing.T) {
	flags := testFlags(t)
	flags.Config.Export.Filename = "../escape.md"

	out, err := runApp(t, NewConfigValidateCmd(flags), "config", "validate")
	require.Error(t, err)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "export.filename")
	assert.Contains(t, plain, "1 error(s) found")
}
