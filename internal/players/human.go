package players

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/mtbarta/connectn/internal/board"
	"github.com/mtbarta/connectn/internal/protocol"
)

// HumanPlayer solicits moves from a local terminal, or from an embedding chat front-end
// through InputHook/OutputHook. The core has no import dependency on any such front-end:
// these are the "two opaque hook functions" referred to by §1's scope section.
type HumanPlayer struct {
	spec Spec

	// InputHook, if set, is used instead of reading a line from stdin to solicit a move.
	InputHook func() (string, error)
	// OutputHook, if set, is used instead of writing to stdout to inform the player of a move.
	OutputHook func(line string)

	reader *bufio.Reader
}

// NewHuman creates a human player seated at colour no.
func NewHuman(no int, displayName string) *HumanPlayer {
	return &HumanPlayer{
		spec: Spec{
			No:          no,
			Kind:        Human,
			DisplayName: displayName,
			Alive:       true,
		},
		reader: bufio.NewReader(os.Stdin),
	}
}

var _ Player = (*HumanPlayer)(nil)

func (h *HumanPlayer) Spec() *Spec { return &h.spec }

func (h *HumanPlayer) StartGame(_ context.Context, _, _, _ int) error {
	return nil
}

// AskMove solicits one line of input -- through InputHook if installed, otherwise stdin --
// and sanitises it against the board. It makes exactly one attempt; the match engine
// re-prompts on a recoverable error.
func (h *HumanPlayer) AskMove(_ context.Context, b *board.Board) (protocol.Move, protocol.ErrorKind, bool) {
	line, err := h.readLine()
	if err != nil {
		return protocol.Move{}, protocol.UserInterrupt, false
	}
	return protocol.Sanitize(b, line)
}

func (h *HumanPlayer) readLine() (string, error) {
	if h.InputHook != nil {
		return h.InputHook()
	}
	fmt.Printf("Column for player %d: ", h.spec.No)
	line, err := h.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return line, nil
}

// TellMove informs the player of a move played elsewhere. A no-op unless OutputHook is set.
func (h *HumanPlayer) TellMove(col int) {
	if h.OutputHook == nil {
		return
	}
	if col == protocol.SkipMove {
		h.OutputHook("(skipped)")
		return
	}
	h.OutputHook("played column " + strconv.Itoa(col))
}

// LoseGame is a no-op for a human player: there is no subprocess resource to release, and
// the match engine owns Spec.Alive.
func (h *HumanPlayer) LoseGame() {}

func (h *HumanPlayer) StopGame() {}
