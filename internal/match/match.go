// Package match implements the per-game state machine: turn rotation across an arbitrary
// number of players, input validation and elimination, and broadcast of the last move, all
// driven by one Board and one Player adapter per seat (§4.4).
package match

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mtbarta/connectn/internal/board"
	"github.com/mtbarta/connectn/internal/players"
	"github.com/mtbarta/connectn/internal/protocol"
	"github.com/mtbarta/connectn/internal/render"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Options bundles the match-runner flags (§6) that the match engine needs, so this package
// has no dependency on the flag package itself -- the CLI layer (out of scope, §1) parses
// flags and constructs Options.
type Options struct {
	// Silent suppresses the per-turn board rendering; only the end-of-game line is produced.
	Silent bool
	// Emoji selects the emoji board renderer instead of the ASCII one.
	Emoji bool
	// Deadline is the per-read deadline D for Subprocess players. Zero means subproc.DefaultDeadline.
	Deadline time.Duration
	// SuppressChildDebug, if true, drops ">"-prefixed child debug lines instead of logging them.
	SuppressChildDebug bool
	// Output receives per-turn board renderings. Defaults to os.Stdout.
	Output io.Writer
}

func (o Options) output() io.Writer {
	if o.Output == nil {
		return os.Stdout
	}
	return o.Output
}

// Result is what a completed match reports to its caller: the participants (in seating
// order), the winner (nil for a draw or for LAST_STANDING with no players left -- which
// cannot happen once alive_players reaches exactly 1), and the per-player error that
// eliminated them, if any.
type Result struct {
	Participants []*players.Spec
	Winner       *players.Spec
	Errors       map[int]protocol.ErrorKind
	FinalBoard   *board.Board
}

// recoverableForHuman is the set of error kinds a Human player is re-prompted for, rather
// than being eliminated on (§7). They are fatal, single-shot, for a Subprocess player.
func recoverableForHuman(kind protocol.ErrorKind) bool {
	switch kind {
	case protocol.InvalidInput, protocol.OutOfBounds, protocol.ColumnFull:
		return true
	default:
		return false
	}
}

// Run executes one match to completion: INIT (start every player concurrently) -> PLAYING
// (the strictly sequential turn loop) -> WON / DRAW / LAST_STANDING. It always tears down
// every player (StopGame) before returning, even if ctx is cancelled mid-match.
func Run(ctx context.Context, b *board.Board, ps []players.Player, opts Options) (Result, error) {
	n := len(ps)
	result := Result{
		Errors: make(map[int]protocol.ErrorKind),
	}
	for _, p := range ps {
		result.Participants = append(result.Participants, p.Spec())
	}

	// INIT: start every player concurrently, wait for all before entering PLAYING.
	var startGroup errgroup.Group
	for _, p := range ps {
		p := p
		startGroup.Go(func() error {
			return p.StartGame(ctx, b.Width, b.Height, b.NumPlayers)
		})
	}
	defer stopAll(ps)
	if err := startGroup.Wait(); err != nil {
		return result, err
	}
	for _, p := range ps {
		p.Spec().Alive = true
	}

	aliveCount := n
	turn := 0
	for {
		if aliveCount <= 1 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		i := turn % n
		p := ps[i]
		spec := p.Spec()

		if !spec.Alive {
			broadcast(ps, i, protocol.SkipMove)
			turn++
			continue
		}

		if !opts.Silent {
			fmt.Fprintln(opts.output(), render.Board(b, opts.Emoji))
		}

		move, kind, ok := attemptMove(ctx, p, b, opts)
		if !ok {
			p.LoseGame()
			result.Errors[spec.No] = kind
			spec.Alive = false
			aliveCount--
			broadcast(ps, i, protocol.SkipMove)
			turn++
			continue
		}

		b.Place(move.Col, spec.No)
		broadcast(ps, i, move.Col)

		if b.CheckWin(spec.No) {
			result.Winner = spec
			result.FinalBoard = b
			return result, nil
		}
		if b.CheckDraw() {
			result.FinalBoard = b
			return result, nil
		}
		turn++
	}

	result.FinalBoard = b
	if aliveCount == 1 {
		for _, p := range ps {
			if p.Spec().Alive {
				result.Winner = p.Spec()
				break
			}
		}
	}
	return result, nil
}

// attemptMove calls AskMove once, and for a Human player whose error is recoverable,
// re-prompts until either a move or a terminal error is obtained. A Subprocess player's
// first failed attempt is always terminal.
func attemptMove(ctx context.Context, p players.Player, b *board.Board, opts Options) (protocol.Move, protocol.ErrorKind, bool) {
	for {
		move, kind, ok := p.AskMove(ctx, b)
		if ok {
			return move, 0, true
		}
		if p.Spec().Kind == players.Human && recoverableForHuman(kind) {
			continue
		}
		return protocol.Move{}, kind, false
	}
}

// broadcast informs every living player other than mover of the move just played (or
// protocol.SkipMove), in player-number order. All broadcasts for one turn complete before
// the next AskMove.
func broadcast(ps []players.Player, mover int, col int) {
	for j, p := range ps {
		if j == mover {
			continue
		}
		if !p.Spec().Alive {
			continue
		}
		p.TellMove(col)
	}
}

// stopAll tears down every player concurrently. Called unconditionally on return from Run,
// so no subprocess is ever leaked, win/draw/interrupt/error alike.
func stopAll(ps []players.Player) {
	var wg errgroup.Group
	for _, p := range ps {
		p := p
		wg.Go(func() error {
			p.StopGame()
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		klog.V(1).Infof("match: error during teardown: %s", err)
	}
}
