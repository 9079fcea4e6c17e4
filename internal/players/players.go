// Package players implements the player adapter: a uniform interface over human-interactive
// and subprocess-driven players (§4.2). The two kinds are modelled as a
// closed tagged variant -- Human and Subprocess -- sharing one capability interface; there is
// no runtime-dispatched object hierarchy beyond that.
package players

import (
	"context"

	"github.com/mtbarta/connectn/internal/board"
	"github.com/mtbarta/connectn/internal/protocol"
)

// Kind distinguishes the two player variants.
type Kind int

const (
	Human Kind = iota
	Subprocess
)

func (k Kind) String() string {
	switch k {
	case Human:
		return "human"
	case Subprocess:
		return "subprocess"
	default:
		return "unknown"
	}
}

// Spec is the player specification: its colour on the board, its kind, a display name, and
// whether it is still alive. Alive starts true at StartGame and is flipped to false exactly
// once, by the match engine, when the player is eliminated.
type Spec struct {
	No          int
	Kind        Kind
	DisplayName string
	Alive       bool

	// SourcePath is only meaningful for Subprocess players.
	SourcePath string
}

// Player is anything able to play one seat in a match: start, answer for a move, be told of
// other players' moves, be eliminated, and shut down at the end of the match.
//
// AskMove attempts exactly one read: it does not retry on a recoverable error. Retrying
// (for Human players, on invalid_input/out_of_bounds/column_full) is the match engine's
// responsibility, because whether an error is recoverable depends on the player's Kind
// (§7).
type Player interface {
	// Spec returns the player's specification. The match engine owns Alive; mutate it there,
	// not through this pointer.
	Spec() *Spec

	// StartGame initialises the player. For Subprocess, this is when the child is spawned and
	// the handshake line is written.
	StartGame(ctx context.Context, width, height, numPlayers int) error

	// AskMove obtains one candidate move. ok is false iff the attempt failed, in which case
	// kind explains why.
	AskMove(ctx context.Context, b *board.Board) (move protocol.Move, kind protocol.ErrorKind, ok bool)

	// TellMove informs this player that another player has just played col, or protocol.SkipMove
	// for a skip.
	TellMove(col int)

	// LoseGame is called when this player is eliminated (the match engine itself clears
	// Spec.Alive) and releases any resources it holds (e.g. a subprocess channel) -- it need
	// not wait for match end to do so.
	LoseGame()

	// StopGame terminates the player cooperatively at match end. Idempotent.
	StopGame()
}
