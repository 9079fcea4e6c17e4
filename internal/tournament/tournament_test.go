package tournament_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/mtbarta/connectn/internal/match"
	"github.com/mtbarta/connectn/internal/tournament"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFiltersExtensionsAndDotfiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.py", "b.js", "c.class", "d.out", "e", ".hidden", "f.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	programs, err := tournament.Discover(dir)
	require.NoError(t, err)

	var names []string
	for _, p := range programs {
		names = append(names, p.BaseName)
	}
	require.ElementsMatch(t, []string{"a.py", "b.js", "c.class", "d.out", "e"}, names)
}

// writeAlwaysPlaysColumn writes a python bot that always plays the given column.
func writeAlwaysPlaysColumn(t *testing.T, dir, name string, col int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := `
import sys
sys.stdin.readline()
while True:
    print(` + strconv.Itoa(col) + `)
    sys.stdout.flush()
    line = sys.stdin.readline()
    if not line:
        break
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// TestRunTwoBotRematchesScoresConsistently follows S5's setup: pool {X,Y}, R=2, so 4 matches.
// X stacks column 3 and Y stacks column 0, so whichever bot moves first completes its four
// first; the test checks that every one of the 4 matches ends as a win or a draw.
func TestRunTwoBotRematchesScoresConsistently(t *testing.T) {
	dir := t.TempDir()
	writeAlwaysPlaysColumn(t, dir, "x.py", 3)
	writeAlwaysPlaysColumn(t, dir, "y.py", 0)

	opts := tournament.Options{
		Dir:        dir,
		NumPlayers: 2,
		Rematches:  2,
		Match: match.Options{
			Silent:   true,
			Deadline: 2 * time.Second,
		},
		Log: discardWriter{},
	}
	summary, err := tournament.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Scores["x.py"]+summary.Scores["y.py"]+summary.Draws)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
