// Package render implements the pure board/end-of-game/score formatting described in §4.6.
// None of it depends on where the result is written -- callers decide
// whether to print it, log it, or assert on it in a test.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mtbarta/connectn/internal/board"
	"github.com/mtbarta/connectn/internal/protocol"
)

// emojiDiscs is the deterministic disc palette for emoji mode, indexed by player number 1..4.
var emojiDiscs = map[int]string{
	1: "\U0001F534", // red circle
	2: "\U0001F7E1", // yellow circle
	3: "\U0001F7E2", // green circle
	4: "\U0001F535", // blue circle
}

var discColors = map[int]lipgloss.Color{
	1: lipgloss.Color("196"),
	2: lipgloss.Color("226"),
	3: lipgloss.Color("34"),
	4: lipgloss.Color("33"),
}

// disc renders one cell's value: "." when empty, an emoji disc or coloured number in emoji
// mode, or the plain player number in ASCII mode.
func disc(no int, emoji bool) string {
	if no == board.Empty {
		return "."
	}
	if !emoji {
		return strconv.Itoa(no)
	}
	if d, ok := emojiDiscs[no]; ok {
		return d
	}
	color, ok := discColors[no]
	if !ok {
		color = lipgloss.Color("245")
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(strconv.Itoa(no))
}

// Board renders the full grid: a Unicode box-drawing frame, column numbers 0..width-1 mod
// 10 above and below, rows rendered top-down (row height-1 first).
func Board(b *board.Board, emoji bool) string {
	var sb strings.Builder
	writeColumnNumbers(&sb, b.Width)
	sb.WriteString("┌" + strings.Repeat("─", b.Width*2+1) + "┐\n")
	for y := b.Height - 1; y >= 0; y-- {
		sb.WriteString("│ ")
		for x := 0; x < b.Width; x++ {
			sb.WriteString(disc(b.Cell(x, y), emoji))
			sb.WriteString(" ")
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", b.Width*2+1) + "┘\n")
	writeColumnNumbers(&sb, b.Width)
	return strings.TrimRight(sb.String(), "\n")
}

func writeColumnNumbers(sb *strings.Builder, width int) {
	sb.WriteString("  ")
	for x := 0; x < width; x++ {
		fmt.Fprintf(sb, "%d ", x%10)
	}
	sb.WriteString("\n")
}

// EndOfGame renders the end-of-game line: "<winner> won" or "Draw", optionally followed by
// " [player: reason, ...]" when silent is set and there are recorded errors.
func EndOfGame(winnerName string, hasWinner bool, errorsByName map[string]protocol.ErrorKind, silent bool) string {
	var line string
	if hasWinner {
		line = fmt.Sprintf("%s won", winnerName)
	} else {
		line = "Draw"
	}
	if !silent || len(errorsByName) == 0 {
		return line
	}
	var parts []string
	for _, name := range sortedKeys(errorsByName) {
		parts = append(parts, fmt.Sprintf("%s: %s", name, errorsByName[name]))
	}
	return fmt.Sprintf("%s [%s]", line, strings.Join(parts, ", "))
}

func sortedKeys(m map[string]protocol.ErrorKind) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// ScoreLine renders one "<rank>. <name> (<score>)" line (§4.6).
func ScoreLine(rank int, name string, score int) string {
	return fmt.Sprintf("%d. %s (%d)", rank, name, score)
}

// Scoreboard renders every score line for an already-ranked (name, score) sequence.
func Scoreboard(ranked []Entry) []string {
	lines := make([]string, len(ranked))
	for i, e := range ranked {
		lines[i] = ScoreLine(i+1, e.Name, e.Score)
	}
	return lines
}

// Entry is one ranked scoreboard row.
type Entry struct {
	Name  string
	Score int
}
