package players

import (
	"context"
	"time"

	"github.com/mtbarta/connectn/internal/board"
	"github.com/mtbarta/connectn/internal/protocol"
	"github.com/mtbarta/connectn/internal/subproc"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// SubprocessPlayer is a player backed by a child process speaking the wire protocol over its
// stdin/stdout. Exactly one subproc.Channel exists per SubprocessPlayer, for the lifetime of
// one match.
type SubprocessPlayer struct {
	spec     Spec
	Deadline time.Duration
	DebugLog bool

	channel *subproc.Channel
}

// NewSubprocess creates a subprocess player seated at colour no, backed by the program at
// sourcePath. deadline is the per-read deadline D (subproc.DefaultDeadline if zero).
func NewSubprocess(no int, displayName, sourcePath string, deadline time.Duration, debugLog bool) *SubprocessPlayer {
	if deadline <= 0 {
		deadline = subproc.DefaultDeadline
	}
	return &SubprocessPlayer{
		spec: Spec{
			No:          no,
			Kind:        Subprocess,
			DisplayName: displayName,
			Alive:       true,
			SourcePath:  sourcePath,
		},
		Deadline: deadline,
		DebugLog: debugLog,
	}
}

var _ Player = (*SubprocessPlayer)(nil)

func (s *SubprocessPlayer) Spec() *Spec { return &s.spec }

func (s *SubprocessPlayer) StartGame(ctx context.Context, width, height, numPlayers int) error {
	var sink subproc.DebugSink
	if s.DebugLog {
		sink = func(source, line string) {
			klog.V(1).Infof("%s: %s", source, line)
		}
	}
	ch, err := subproc.Spawn(ctx, s.spec.SourcePath, width, height, numPlayers, s.spec.No, sink)
	if err != nil {
		return errors.Wrapf(err, "player %d (%s)", s.spec.No, s.spec.SourcePath)
	}
	s.channel = ch
	return nil
}

// AskMove reads one line from stdout under the deadline and sanitises it. A single failed
// attempt is terminal for a Subprocess player -- the match engine does not retry.
func (s *SubprocessPlayer) AskMove(_ context.Context, b *board.Board) (protocol.Move, protocol.ErrorKind, bool) {
	line, kind, ok := s.channel.ReadMove(s.Deadline)
	if !ok {
		return protocol.Move{}, kind, false
	}
	return protocol.Sanitize(b, line)
}

func (s *SubprocessPlayer) TellMove(col int) {
	if s.channel == nil {
		return
	}
	if err := s.channel.WriteMove(col); err != nil {
		klog.V(1).Infof("player %d (%s): %s", s.spec.No, s.spec.SourcePath, err)
	}
}

// LoseGame releases the subprocess immediately rather than waiting for match end.
func (s *SubprocessPlayer) LoseGame() {
	if s.channel != nil {
		s.channel.Stop()
	}
}

func (s *SubprocessPlayer) StopGame() {
	if s.channel != nil {
		s.channel.Stop()
	}
}
