package tournament

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/mtbarta/connectn/internal/board"
	"github.com/mtbarta/connectn/internal/generics"
	"github.com/mtbarta/connectn/internal/match"
	"github.com/mtbarta/connectn/internal/players"
	"github.com/mtbarta/connectn/internal/protocol"
	"github.com/mtbarta/connectn/internal/render"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// defaultConcurrency is the semaphore size C from §4.5 step 4: up to this many matches run
// simultaneously, each spawning up to NumPlayers children, so C*NumPlayers bounds the total
// number of live subprocesses.
const defaultConcurrency = 200

// Options bundles everything the driver needs to discover programs, build match-ups, and run
// them -- the tournament-runner CLI's flags (§6), parsed elsewhere.
type Options struct {
	Dir         string
	NumPlayers  int
	Rematches   int
	Concurrency int // 0 means defaultConcurrency

	Width, Height int // grid size forwarded to every match's board; 0 means 7x6 (§6 default)

	Match match.Options

	// Log receives the per-match progress line and the final ranking. Defaults to os.Stdout;
	// the "-l" flag re-points this at a file without touching klog's own stderr output.
	Log io.Writer
}

func (o Options) log() io.Writer {
	if o.Log == nil {
		return os.Stdout
	}
	return o.Log
}

func (o Options) width() int {
	if o.Width == 0 {
		return 7
	}
	return o.Width
}

func (o Options) height() int {
	if o.Height == 0 {
		return 6
	}
	return o.Height
}

// Summary is the driver's return value in addition to the ranking it prints (SPEC_FULL.md §E):
// the final score table, the number of drawn matches, and every player's eliminating errors,
// keyed by program basename.
type Summary struct {
	Scores map[string]int
	Draws  int
	Errors map[string][]string
}

// Run discovers programs under opts.Dir, enumerates every combination/permutation/rematch of
// opts.NumPlayers programs, and runs them under a bounded-concurrency errgroup (§4.5). A
// single match's failure is recorded and never cancels the others.
func Run(ctx context.Context, opts Options) (Summary, error) {
	programs, err := Discover(opts.Dir)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Scores: make(map[string]int),
		Errors: make(map[string][]string),
	}
	for _, p := range programs {
		summary.Scores[p.BaseName] = 0
	}

	seatings := matchUps(programs, opts.NumPlayers, opts.Rematches)
	total := len(seatings)

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var (
		mu     sync.Mutex
		played int
	)

	var wg errgroup.Group
	wg.SetLimit(concurrency)
	for i, seating := range seatings {
		i, seating := i, seating
		wg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			result, err := runOneMatch(ctx, seating, opts)
			if err != nil {
				klog.Errorf("tournament: match %d failed to start: %s", i, err)
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			played++
			fmt.Fprintln(opts.log(), formatMatchLine(played, total, seating, result))

			if result.Winner != nil {
				summary.Scores[result.Winner.DisplayName]++
			} else {
				summary.Draws++
			}
			for no, kind := range result.Errors {
				name := seating[no-1].BaseName
				summary.Errors[name] = append(summary.Errors[name], kind.String())
			}
			return nil
		})
	}
	_ = wg.Wait()

	writeRanking(opts.log(), summary.Scores)
	return summary, nil
}

// runOneMatch builds one board and one subprocess player per seat, then runs the match to
// completion.
func runOneMatch(ctx context.Context, seating []Program, opts Options) (match.Result, error) {
	b := board.New(opts.width(), opts.height(), len(seating))
	ps := make([]players.Player, len(seating))
	for i, prog := range seating {
		ps[i] = players.NewSubprocess(i+1, prog.BaseName, prog.Path, opts.Match.Deadline, !opts.Match.SuppressChildDebug)
	}
	matchOpts := opts.Match
	matchOpts.Output = opts.log()
	return match.Run(ctx, b, ps, matchOpts)
}

// formatMatchLine renders the "(i/total) p1 vs p2 ... -> winner [errors]" progress line
// (§4.5 step 5).
func formatMatchLine(played, total int, seating []Program, result match.Result) string {
	names := make([]string, len(seating))
	for i, p := range seating {
		names[i] = p.BaseName
	}

	errsByName := make(map[string]protocol.ErrorKind, len(result.Errors))
	for no, kind := range result.Errors {
		errsByName[seating[no-1].BaseName] = kind
	}

	var hasWinner bool
	var winnerName string
	if result.Winner != nil {
		hasWinner = true
		winnerName = result.Winner.DisplayName
	}

	outcome := render.EndOfGame(winnerName, hasWinner, errsByName, true)
	return fmt.Sprintf("(%d/%d) %s -> %s", played, total, joinVS(names), outcome)
}

func joinVS(names []string) string {
	out := names[0]
	for _, n := range names[1:] {
		out += " vs " + n
	}
	return out
}

func writeRanking(w io.Writer, scores map[string]int) {
	entries := make([]render.Entry, 0, len(scores))
	for name := range generics.SortedKeys(scores) {
		entries = append(entries, render.Entry{Name: name, Score: scores[name]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	fmt.Fprintln(w)
	for _, line := range render.Scoreboard(entries) {
		fmt.Fprintln(w, line)
	}
}
