package commands

import (
	"encoding/json"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckCmd_Text(t *testing.T) {
	flags := testFlags(t)
	flags.Config.Deck = []string{"1", "2", "?"}

	out, err := runApp(t, NewDeckCmd(flags), "deck")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "1")
	assert.Contains(t, plain, "?")
}

func TestDeckCmd_JSON(t *testing.T) {
	flags := testFlags(t)
	flags.Config.Deck = []string{"0.5", "☕"}

	out, err := runApp(t, NewDeckCmd(flags), "deck", "--json")
	require.NoError(t, err)

	var cards []deckCard
	require.NoError(t, json.Unmarshal([]byte(out), &cards))
	assert.Equal(t, []deckCard{{Label: "0.5", Numeric: true}, {Label: "☕", Numeric: false}}, cards)
}
