package subproc_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mtbarta/connectn/internal/subproc"
	"github.com/stretchr/testify/require"
)

// writeScript writes an executable Python script to a temp dir and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.py")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestSpawnHandshakeAndEcho(t *testing.T) {
	script := writeScript(t, `
import sys
line = sys.stdin.readline()
while True:
    col = sys.stdin.readline()
    if not col:
        break
    print(col.strip())
    sys.stdout.flush()
`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := subproc.Spawn(ctx, script, 7, 6, 2, 1, nil)
	require.NoError(t, err)
	defer ch.Stop()

	require.NoError(t, ch.WriteMove(3))
	line, _, ok := ch.ReadMove(2 * time.Second)
	require.True(t, ok)
	require.Equal(t, "3", line)
}

func TestReadMoveTimeout(t *testing.T) {
	script := writeScript(t, `
import sys, time
sys.stdin.readline()
time.sleep(1)
print(0)
`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := subproc.Spawn(ctx, script, 7, 6, 2, 1, nil)
	require.NoError(t, err)
	defer ch.Stop()

	_, kind, ok := ch.ReadMove(100 * time.Millisecond)
	require.False(t, ok)
	require.Equal(t, "timeout", kind.String())
}

func TestReadMoveSkipsDebugLines(t *testing.T) {
	script := writeScript(t, `
import sys
sys.stdin.readline()
print("> thinking")
sys.stdout.flush()
print(5)
sys.stdout.flush()
`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var debugLines []string
	ch, err := subproc.Spawn(ctx, script, 7, 6, 2, 1, func(source, line string) {
		debugLines = append(debugLines, line)
	})
	require.NoError(t, err)
	defer ch.Stop()

	line, _, ok := ch.ReadMove(2 * time.Second)
	require.True(t, ok)
	require.Equal(t, "5", line)
	require.Equal(t, []string{"> thinking"}, debugLines)
}

func TestReadMoveRuntimeErrorOnTraceback(t *testing.T) {
	script := writeScript(t, `
import sys
sys.stdin.readline()
print("Traceback (most recent call last):")
sys.stdout.flush()
`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := subproc.Spawn(ctx, script, 7, 6, 2, 1, nil)
	require.NoError(t, err)
	defer ch.Stop()

	_, kind, ok := ch.ReadMove(2 * time.Second)
	require.False(t, ok)
	require.Equal(t, "runtime_error", kind.String())
}

func TestStopIsIdempotent(t *testing.T) {
	script := writeScript(t, `
import sys
sys.stdin.readline()
sys.stdin.readline()
`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := subproc.Spawn(ctx, script, 7, 6, 2, 1, nil)
	require.NoError(t, err)
	ch.Stop()
	require.NotPanics(t, func() { ch.Stop() })
}
