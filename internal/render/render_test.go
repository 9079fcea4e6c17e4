package render_test

import (
	"strings"
	"testing"

	"github.com/mtbarta/connectn/internal/board"
	"github.com/mtbarta/connectn/internal/protocol"
	"github.com/mtbarta/connectn/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardASCIIShowsEmptyAndFilledCells(t *testing.T) {
	b := board.New(7, 6, 2)
	b.Place(2, 1)
	b.Place(2, 2)

	out := render.Board(b, false)
	lines := strings.Split(out, "\n")
	require.True(t, len(lines) >= 4)
	assert.Contains(t, lines[0], "0 1 2 3 4 5 6")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")

	// bottom-most non-frame row (row 0) is the last content row; it must show
	// player 1's disc in column 2 and dots elsewhere.
	var row0 string
	for _, l := range lines {
		if strings.HasPrefix(l, "│") && strings.Contains(l, "1") {
			row0 = l
		}
	}
	require.NotEmpty(t, row0)
	assert.Equal(t, "│ . . 1 . . . . │", row0)
}

func TestBoardEmojiUsesDiscs(t *testing.T) {
	b := board.New(7, 6, 2)
	b.Place(0, 1)
	out := render.Board(b, true)
	assert.Contains(t, out, "\U0001F534")
}

func TestEndOfGameWinner(t *testing.T) {
	line := render.EndOfGame("Alice", true, nil, false)
	assert.Equal(t, "Alice won", line)
}

func TestEndOfGameDraw(t *testing.T) {
	line := render.EndOfGame("", false, nil, false)
	assert.Equal(t, "Draw", line)
}

func TestEndOfGameSilentWithErrorsAppendsSuffix(t *testing.T) {
	errs := map[string]protocol.ErrorKind{
		"bot.py": protocol.Timeout,
	}
	line := render.EndOfGame("Alice", true, errs, true)
	assert.Equal(t, "Alice won [bot.py: timeout]", line)
}

func TestEndOfGameNotSilentOmitsSuffix(t *testing.T) {
	errs := map[string]protocol.ErrorKind{"bot.py": protocol.Timeout}
	line := render.EndOfGame("Alice", true, errs, false)
	assert.Equal(t, "Alice won", line)
}

func TestScoreboardRanksDescendingInput(t *testing.T) {
	entries := []render.Entry{
		{Name: "Alice", Score: 3},
		{Name: "Bob", Score: 1},
	}
	lines := render.Scoreboard(entries)
	assert.Equal(t, []string{"1. Alice (3)", "2. Bob (1)"}, lines)
}
