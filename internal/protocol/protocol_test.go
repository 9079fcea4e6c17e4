package protocol_test

import (
	"testing"

	"github.com/mtbarta/connectn/internal/board"
	"github.com/mtbarta/connectn/internal/protocol"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeStop(t *testing.T) {
	b := board.New(7, 6, 2)
	_, kind, ok := protocol.Sanitize(b, "stop")
	assert.False(t, ok)
	assert.Equal(t, protocol.UserInterrupt, kind)
}

func TestSanitizeInvalidInput(t *testing.T) {
	b := board.New(7, 6, 2)
	_, kind, ok := protocol.Sanitize(b, "banana")
	assert.False(t, ok)
	assert.Equal(t, protocol.InvalidInput, kind)
}

func TestSanitizeOutOfBounds(t *testing.T) {
	b := board.New(7, 6, 2)
	for _, in := range []string{"-1", "7", "100"} {
		_, kind, ok := protocol.Sanitize(b, in)
		assert.False(t, ok)
		assert.Equal(t, protocol.OutOfBounds, kind)
	}
}

func TestSanitizeColumnFull(t *testing.T) {
	b := board.New(7, 6, 2)
	for i := 0; i < 6; i++ {
		b.Place(0, 1)
	}
	_, kind, ok := protocol.Sanitize(b, "0")
	assert.False(t, ok)
	assert.Equal(t, protocol.ColumnFull, kind)
}

func TestSanitizeValid(t *testing.T) {
	b := board.New(7, 6, 2)
	move, _, ok := protocol.Sanitize(b, "  3 ")
	assert.True(t, ok)
	assert.Equal(t, protocol.Move{Col: 3, Row: 0}, move)
}

func TestSanitizeIsPure(t *testing.T) {
	b := board.New(7, 6, 2)
	b.Place(2, 1)
	m1, k1, ok1 := protocol.Sanitize(b, "2")
	m2, k2, ok2 := protocol.Sanitize(b, "2")
	assert.Equal(t, m1, m2)
	assert.Equal(t, k1, k2)
	assert.Equal(t, ok1, ok2)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "invalid_input", protocol.InvalidInput.String())
	assert.Equal(t, "out_of_bounds", protocol.OutOfBounds.String())
	assert.Equal(t, "column_full", protocol.ColumnFull.String())
	assert.Equal(t, "timeout", protocol.Timeout.String())
	assert.Equal(t, "runtime_error", protocol.RuntimeError.String())
	assert.Equal(t, "user_interrupt", protocol.UserInterrupt.String())
}

func TestIsDebugLine(t *testing.T) {
	assert.True(t, protocol.IsDebugLine("> thinking..."))
	assert.False(t, protocol.IsDebugLine("3"))
}

func TestIsRuntimeErrorLine(t *testing.T) {
	assert.True(t, protocol.IsRuntimeErrorLine("Traceback (most recent call last):"))
	assert.False(t, protocol.IsRuntimeErrorLine("3"))
}
