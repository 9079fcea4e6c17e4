// Package subproc implements the subprocess channel: spawning a player program, reading its
// moves under a strict per-read deadline, writing broadcasts to it, and tearing it down
// cleanly -- idempotently, and without leaking a child even on early return.
package subproc

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mtbarta/connectn/internal/protocol"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"k8s.io/klog/v2"
)

// DefaultDeadline is the default per-read deadline D (§4.3, §6).
const DefaultDeadline = 100 * time.Millisecond

// maxStderrBuffer bounds how much of a child's stderr is retained for the runtime_error
// diagnostic -- enough to show a Python traceback without letting a chatty child grow
// unbounded memory.
const maxStderrBuffer = 64 * 1024

// maxDebugLines bounds how many ">"-prefixed debug lines a single ask are willing to read
// before giving up on ever seeing a move, treating the child as broken. Each debug line
// still re-arms the read deadline exactly as specified; this only guards against a child
// that talks forever without ever producing a move or timing out.
const maxDebugLines = 1000

// State is the subprocess handle's lifecycle.
type State int

const (
	Fresh State = iota
	Running
	Closed
)

// DebugSink receives a child's ">"-prefixed debug lines, if logging of them is enabled.
type DebugSink func(sourcePath, line string)

// Channel owns one subprocess: its pid, its stdin writer and stdout reader, and its
// lifecycle. Exactly one Channel exists per Subprocess player per match; it is owned
// exclusively by that player's adapter.
type Channel struct {
	SourcePath string

	mu    sync.Mutex
	state State
	cmd   *exec.Cmd
	stdin io.WriteCloser

	lines   chan string
	readErr chan error
	closed  chan struct{}

	stderr safeBuffer

	debugSink DebugSink
}

// safeBuffer guards a bytes.Buffer so os/exec's internal stderr-copy goroutine (which calls
// Write) and ReadMove's polling (which calls Len/String) never race on the same buffer. It
// retains at most maxStderrBuffer bytes (the first ones written); later output is dropped.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if room := maxStderrBuffer - b.buf.Len(); room < len(p) {
		if room > 0 {
			b.buf.Write(p[:room])
		}
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *safeBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Dispatch resolves a source path to a runnable command line, per the fixed
// extension-to-command-line table (§4.3). Exported so a tournament driver can record it per
// discovered program; Spawn calls it again from the source path for every child it starts.
func Dispatch(sourcePath string) (name string, args []string) {
	switch filepath.Ext(sourcePath) {
	case ".py":
		return "python3", []string{sourcePath}
	case ".js":
		return "node", []string{sourcePath}
	case ".class":
		dir := filepath.Dir(sourcePath)
		class := strings.TrimSuffix(filepath.Base(sourcePath), ".class")
		return "java", []string{"-cp", dir, class}
	default:
		return "./" + sourcePath, nil
	}
}

// Spawn starts the child for sourcePath and writes the initial handshake line
// "<width> <height> <nb_players> <own_no>\n", then drains it.
func Spawn(ctx context.Context, sourcePath string, width, height, numPlayers, ownNo int, sink DebugSink) (*Channel, error) {
	name, args := Dispatch(sourcePath)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrapf(err, "subproc: failed to open stdin pipe for %s", sourcePath)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrapf(err, "subproc: failed to open stdout pipe for %s", sourcePath)
	}

	c := &Channel{
		SourcePath: sourcePath,
		cmd:        cmd,
		stdin:      stdin,
		lines:      make(chan string, 16),
		readErr:    make(chan error, 1),
		closed:     make(chan struct{}),
		debugSink:  sink,
	}
	cmd.Stderr = &c.stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "subproc: failed to spawn %s", sourcePath)
	}
	c.state = Running
	disableEcho(stdin)

	go c.pump(stdout)

	handshake := protocol.Handshake(width, height, numPlayers, ownNo)
	if _, err := io.WriteString(stdin, handshake); err != nil {
		c.Stop()
		return nil, errors.Wrapf(err, "subproc: failed to write handshake to %s", sourcePath)
	}
	klog.V(2).Infof("subproc: spawned %s (pid %d), handshake %q", sourcePath, cmd.Process.Pid, strings.TrimSpace(handshake))
	return c, nil
}

// disableEcho turns off line echo on w's controlling terminal, if it has one. A child
// spawned with piped stdio (the normal case) has none, so this is a no-op; it only matters
// when the host has attached a real pty.
func disableEcho(w io.Writer) {
	f, ok := w.(*os.File)
	if !ok {
		return
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	_, _ = term.MakeRaw(fd)
}

// pump reads stdout line by line in the background for as long as the child lives, feeding
// c.lines. It is the only goroutine that touches stdout, so ReadMove's deadline-bound select
// never blocks a future read.
func (c *Channel) pump(stdout io.ReadCloser) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	for scanner.Scan() {
		select {
		case c.lines <- strings.TrimRight(scanner.Text(), " \t\r\n"):
		case <-c.closed:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.readErr <- err
	} else {
		c.readErr <- io.EOF
	}
}

// ReadMove reads lines from stdout with a per-read deadline D, applying the filter rules in
// order: a debug line is logged (if enabled) and skipped, re-arming the deadline; a line
// starting "Traceback", or any line once the child has written non-empty stderr, is a
// runtime error; any other line is the move. If the stream closes (EOF) with non-empty
// stderr already collected, that is also a runtime error -- a crashing child typically
// writes its traceback to stderr and closes stdout rather than printing "Traceback" on it.
// Otherwise, if the deadline elapses or the stream closes before a non-filter line arrives,
// it returns Timeout.
func (c *Channel) ReadMove(deadline time.Duration) (string, protocol.ErrorKind, bool) {
	timer := time.NewTimer(deadline)
	defer timer.Stop()

	debugLines := 0
	for {
		select {
		case line, ok := <-c.lines:
			if !ok {
				return "", protocol.Timeout, false
			}
			if protocol.IsDebugLine(line) {
				if c.debugSink != nil {
					c.debugSink(c.SourcePath, line)
				}
				debugLines++
				if debugLines > maxDebugLines {
					return "", protocol.RuntimeError, false
				}
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(deadline)
				continue
			}
			if protocol.IsRuntimeErrorLine(line) || c.hasStderr() {
				klog.V(1).Infof("subproc: %s: runtime error, stderr=%q", c.SourcePath, c.StderrSnapshot())
				return "", protocol.RuntimeError, false
			}
			return line, 0, true
		case err := <-c.readErr:
			if len(c.lines) > 0 {
				// Lines read before EOF are still queued: handle them first.
				c.readErr <- err
				continue
			}
			if c.hasStderr() {
				klog.V(1).Infof("subproc: %s: runtime error, stderr=%q", c.SourcePath, c.StderrSnapshot())
				return "", protocol.RuntimeError, false
			}
			return "", protocol.Timeout, false
		case <-timer.C:
			return "", protocol.Timeout, false
		}
	}
}

func (c *Channel) hasStderr() bool {
	return c.stderr.Len() > 0
}

// StderrSnapshot returns the (bounded) stderr collected so far, for diagnostics.
func (c *Channel) StderrSnapshot() string {
	if c.stderr.Len() > maxStderrBuffer {
		return c.stderr.String()[:maxStderrBuffer]
	}
	return c.stderr.String()
}

// WriteMove writes "<col>\n" to stdin and flushes.
func (c *Channel) WriteMove(col int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Running {
		return errors.Errorf("subproc: %s: write on a %v channel", c.SourcePath, c.state)
	}
	if _, err := io.WriteString(c.stdin, protocol.MoveLine(col)); err != nil {
		return errors.Wrapf(err, "subproc: %s: failed to write move", c.SourcePath)
	}
	return nil
}

// Stop terminates the child if it is still live, waits briefly, and reaps it. Idempotent:
// calling it more than once, or on a child that already exited on its own, never errors.
func (c *Channel) Stop() {
	c.mu.Lock()
	if c.state == Closed {
		c.mu.Unlock()
		return
	}
	c.state = Closed
	cmd := c.cmd
	stdin := c.stdin
	c.mu.Unlock()

	close(c.closed)
	_ = stdin.Close()
	if cmd.Process != nil {
		_ = cmd.Process.Signal(os.Interrupt)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-done
	}
}

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Running:
		return "running"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
