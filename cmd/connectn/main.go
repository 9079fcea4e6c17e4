// Command connectn runs a single match between the player programs (or interactive
// "user" seats) given on the command line (§6 "CLI surface (match runner)").
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/janpfeifer/must"
	"github.com/mtbarta/connectn/internal/board"
	"github.com/mtbarta/connectn/internal/match"
	"github.com/mtbarta/connectn/internal/players"
	"github.com/mtbarta/connectn/internal/profilers"
	"github.com/mtbarta/connectn/internal/protocol"
	"github.com/mtbarta/connectn/internal/render"
	"github.com/mtbarta/connectn/internal/spinning"
	"k8s.io/klog/v2"
)

var (
	flagGrid          gridFlag = gridFlag{width: 7, height: 6}
	flagNumPlayers    = flag.Int("p", 0, "Total number of players; unfilled seats become \"user\".")
	flagSilent        = flag.Bool("s", false, "Silent: only print the end-of-game line.")
	flagEmoji         = flag.Bool("e", false, "Render the board with coloured emoji discs.")
	flagSuppressDebug = flag.Bool("n", false, "Suppress child debug (\">\"-prefixed) logging.")
	flagDeadline      = flag.Duration("d", 100*time.Millisecond, "Per-read deadline D for subprocess players.")
)

func init() {
	flag.Var(&flagGrid, "g", "Grid size as \"W H\" (default \"7 6\").")
}

// gridFlag parses the "-g W H" two-token flag value (§6).
type gridFlag struct {
	width, height int
}

func (g *gridFlag) String() string {
	return fmt.Sprintf("%d %d", g.width, g.height)
}

func (g *gridFlag) Set(value string) error {
	var w, h int
	if _, err := fmt.Sscanf(value, "%d %d", &w, &h); err != nil {
		return fmt.Errorf("connectn: -g wants \"W H\", got %q", value)
	}
	g.width, g.height = w, h
	return nil
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 5*time.Second)
	defer cancel()

	profilers.Setup(ctx)
	defer profilers.OnQuit()

	ps := must.M1(buildPlayers(flag.Args()))
	b := board.New(flagGrid.width, flagGrid.height, len(ps))

	result := must.M1(match.Run(ctx, b, ps, match.Options{
		Silent:             *flagSilent,
		Emoji:              *flagEmoji,
		Deadline:           *flagDeadline,
		SuppressChildDebug: *flagSuppressDebug,
	}))

	report(result)
}

// buildPlayers turns the positional CLI arguments into Player adapters. An argument of
// literal "user" is an interactive Human; anything else is a Subprocess player sourced from
// that path. Seats left unfilled by -p become additional Human players.
func buildPlayers(args []string) ([]players.Player, error) {
	n := *flagNumPlayers
	if n < len(args) {
		n = len(args)
	}
	if n < 2 {
		n = 2
	}

	ps := make([]players.Player, n)
	for i := 0; i < n; i++ {
		no := i + 1
		if i >= len(args) || args[i] == "user" {
			ps[i] = players.NewHuman(no, fmt.Sprintf("user-%d", no))
			continue
		}
		path := args[i]
		ps[i] = players.NewSubprocess(no, baseName(path), path, *flagDeadline, !*flagSuppressDebug)
	}
	return ps, nil
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func report(result match.Result) {
	errsByName := make(map[string]protocol.ErrorKind, len(result.Errors))
	for _, p := range result.Participants {
		if kind, ok := result.Errors[p.No]; ok {
			errsByName[p.DisplayName] = kind
		}
	}
	var winnerName string
	hasWinner := result.Winner != nil
	if hasWinner {
		winnerName = result.Winner.DisplayName
	}
	fmt.Println(render.EndOfGame(winnerName, hasWinner, errsByName, *flagSilent))
	os.Exit(0)
}
