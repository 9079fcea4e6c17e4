// Command connectn-tournament runs a round-robin tournament between every player program
// found under a directory (§6 "CLI surface (tournament runner)").
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/janpfeifer/must"
	"github.com/mtbarta/connectn/internal/match"
	"github.com/mtbarta/connectn/internal/profilers"
	"github.com/mtbarta/connectn/internal/spinning"
	"github.com/mtbarta/connectn/internal/tournament"
	"k8s.io/klog/v2"
)

var (
	flagGrid          gridFlag = gridFlag{width: 7, height: 6}
	flagDir           = flag.String("d", "ai", "Directory of player programs.")
	flagNumPlayers    = flag.Int("p", 2, "Number of players per match.")
	flagRematches     = flag.Int("r", 1, "Number of rematches per permutation.")
	flagLogToFile     = flag.Bool("l", false, "Redirect progress/ranking output to a file named \"log\".")
	flagSilent        = flag.Bool("s", false, "Silent: suppress per-turn board rendering within each match.")
	flagEmoji         = flag.Bool("e", false, "Render boards with coloured emoji discs.")
	flagSuppressDebug = flag.Bool("n", false, "Suppress child debug (\">\"-prefixed) logging.")
	flagDeadline      = flag.Duration("deadline", 100*time.Millisecond, "Per-read deadline D for subprocess players.")
)

func init() {
	flag.Var(&flagGrid, "g", "Grid size as \"W H\" (default \"7 6\"), forwarded to every match.")
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
		return fmt.Errorf("connectn-tournament: -g wants \"W H\", got %q", value)
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

	logWriter := os.Stdout
	if *flagLogToFile {
		f := must.M1(os.Create("log"))
		defer f.Close()
		logWriter = f
	}

	summary := must.M1(tournament.Run(ctx, tournament.Options{
		Dir:        *flagDir,
		NumPlayers: *flagNumPlayers,
		Rematches:  *flagRematches,
		Width:      flagGrid.width,
		Height:     flagGrid.height,
		Log:        logWriter,
		Match: match.Options{
			Silent:             *flagSilent,
			Emoji:              *flagEmoji,
			Deadline:           *flagDeadline,
			SuppressChildDebug: *flagSuppressDebug,
		},
	}))

	if len(summary.Errors) > 0 {
		klog.V(1).Infof("tournament: %d programs recorded at least one error during play", len(summary.Errors))
	}
	fmt.Printf("tournament complete: %d draws, %d programs with errors\n", summary.Draws, len(summary.Errors))
}
