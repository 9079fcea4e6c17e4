package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// SkipMove is the sentinel broadcast to other players meaning "the player whose turn it
// would have been has no move this round" -- eliminated or skipped.
const SkipMove = -1

// DebugPrefix marks a line from a child as a debug line: logged (unless suppressed) and
// otherwise ignored, never treated as a move.
const DebugPrefix = ">"

// RuntimeErrorPrefix marks a line from a child as the start of a stack trace.
const RuntimeErrorPrefix = "Traceback"

// Handshake formats the line written to a child immediately after spawn:
// "<width> <height> <nb_players> <own_no>\n".
func Handshake(width, height, numPlayers, ownNo int) string {
	return fmt.Sprintf("%d %d %d %d\n", width, height, numPlayers, ownNo)
}

// MoveLine formats the line written to a child reporting the column just played, or
// SkipMove if the player whose turn it was had none.
func MoveLine(col int) string {
	return strconv.Itoa(col) + "\n"
}

// IsDebugLine reports whether line is a debug line (to be logged, never parsed as a move).
func IsDebugLine(line string) bool {
	return strings.HasPrefix(line, DebugPrefix)
}

// IsRuntimeErrorLine reports whether line marks the start of a stack trace.
func IsRuntimeErrorLine(line string) bool {
	return strings.HasPrefix(line, RuntimeErrorPrefix)
}
