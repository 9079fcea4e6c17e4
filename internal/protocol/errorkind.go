// Package protocol implements the player wire protocol: the line-oriented handshake and
// move exchange described in the system's external interfaces, the closed taxonomy of
// ways a player can fail, and the pure sanitisation function shared by every player kind.
package protocol

// ErrorKind classifies why a player was eliminated from a match. It crosses the match
// boundary as data, never as a Go error -- see Match.Result.Errors.
type ErrorKind uint8

const (
	// InvalidInput means the line received could not be parsed as an integer.
	InvalidInput ErrorKind = iota
	// OutOfBounds means the parsed column falls outside [0, width).
	OutOfBounds
	// ColumnFull means the chosen column has no empty row left.
	ColumnFull
	// Timeout means no non-filtered line arrived within the per-read deadline.
	Timeout
	// RuntimeError means the child's output started with "Traceback", or its stderr was
	// non-empty when it should not have been.
	RuntimeError
	// UserInterrupt means the player sent the literal line "stop".
	UserInterrupt
)

//go:generate go tool enumer -type=ErrorKind -transform=snake -text -json -values errorkind.go
