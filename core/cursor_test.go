package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorMoves(t *testing.T) {
	c := Cursor{}

	assert.ErrorIs(t, c.MoveLeft(), ErrStartOfLine)
	assert.Equal(t, 0, c.Offset)

	assert.NoError(t, c.MoveRight(2))
	assert.NoError(t, c.MoveRight(2))
	assert.Equal(t, 2, c.Offset)

	assert.ErrorIs(t, c.MoveRight(2), ErrEndOfLine)
	assert.Equal(t, 2, c.Offset)

	assert.NoError(t, c.MoveLeft())
	assert.Equal(t, 1, c.Offset)

	c.MoveHome()
	assert.Equal(t, 0, c.Offset)

	c.MoveEnd(5)
	assert.Equal(t, 5, c.Offset)
}

func TestCursorClamp(t *testing.T) {
	c := Cursor{Offset: 7}
	c.clamp(3)
	assert.Equal(t, 3, c.Offset)

	c.Offset = -1
	c.clamp(3)
	assert.Equal(t, 0, c.Offset)

	// An empty line pins the cursor to 0.
	c.Offset = 2
	c.clamp(0)
	assert.Equal(t, 0, c.Offset)
}
