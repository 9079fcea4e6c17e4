package protocol

import (
	"strconv"
	"strings"

	"github.com/mtbarta/connectn/internal/board"
)

// Move is a validated column/row pair, ready to be applied to a Board with Board.Place.
type Move struct {
	Col, Row int
}

// StopLine is the literal line a player sends to resign (or, for a subprocess, the line
// filtered for "stop" before any integer parsing is attempted).
const StopLine = "stop"

// Sanitize validates one candidate move against the current board. It is a pure function of
// (board, input): given the same board and the same string it always returns the same
// result, which is what lets the match engine reuse it identically for Human and Subprocess
// players (§4.2).
//
// The checks are applied in order and the first one that fails wins:
//  1. the literal line "stop" is a user-requested resignation.
//  2. the line must parse as a base-10 integer.
//  3. the column must be within [0, board.Width).
//  4. the column must not already be full.
func Sanitize(b *board.Board, input string) (Move, ErrorKind, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == StopLine {
		return Move{}, UserInterrupt, false
	}
	col, err := strconv.Atoi(trimmed)
	if err != nil {
		return Move{}, InvalidInput, false
	}
	if col < 0 || col >= b.Width {
		return Move{}, OutOfBounds, false
	}
	row := b.FallHeight(col)
	if row == b.Height {
		return Move{}, ColumnFull, false
	}
	return Move{Col: col, Row: row}, 0, true
}
