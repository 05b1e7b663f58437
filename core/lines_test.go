package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rootSort builds a real root carrying a glyph, the way a line looks after
// its first glyph replaced the placeholder.
func rootSort(t *testing.T, name string, id LineID, dir Direction, anchor Point) Sort {
	t.Helper()
	s := sortWithGlyph(t, name, 500)
	s.IsBufferRoot = true
	s.Line = id
	s.Direction = dir
	s.Anchor = anchor
	return s
}

func placeholderSort(id LineID, dir Direction, anchor Point) Sort {
	return Sort{
		ID:           newSortID(),
		IsBufferRoot: true,
		Line:         id,
		Direction:    dir,
		Anchor:       anchor,
	}
}

// twoLineBuffer lays out "ab" on one line and "cd" on the next.
func twoLineBuffer(t *testing.T) (*SortBuffer, LineID, LineID) {
	t.Helper()
	first, second := newLineID(), newLineID()
	b := FromSorts([]Sort{
		rootSort(t, "a", first, LTR, Point{}),
		sortWithGlyph(t, "b", 500),
		rootSort(t, "c", second, LTR, Point{Y: -1280}),
		sortWithGlyph(t, "d", 500),
	})
	return b, first, second
}

func TestLineIndexTwoLines(t *testing.T) {
	b, first, second := twoLineBuffer(t)
	ix := NewLineIndex(b)

	lines := ix.Lines()
	require.Len(t, lines, 2)

	assert.Equal(t, first, lines[0].ID)
	assert.Equal(t, 0, lines[0].Root)
	assert.Equal(t, 2, lines[0].Length)

	assert.Equal(t, second, lines[1].ID)
	assert.Equal(t, 2, lines[1].Root)
	assert.Equal(t, 2, lines[1].Length)
}

func TestLineIndexRootShiftsWithEdits(t *testing.T) {
	b, _, second := twoLineBuffer(t)
	ix := NewLineIndex(b)

	// Growing the first line pushes the second root right; the id still
	// resolves.
	require.NoError(t, b.Insert(1, sortWithGlyph(t, "x", 500)))

	rootIdx, err := ix.RootIndex(second)
	require.NoError(t, err)
	assert.Equal(t, 3, rootIdx)
	assert.Equal(t, 2, ix.LineLength(rootIdx))
}

func TestLineIndexStaleID(t *testing.T) {
	b, _, _ := twoLineBuffer(t)
	ix := NewLineIndex(b)

	_, err := ix.RootIndex(newLineID())
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestLineLengthExcludesPlaceholder(t *testing.T) {
	id := newLineID()
	b := FromSorts([]Sort{
		placeholderSort(id, LTR, Point{}),
	})
	ix := NewLineIndex(b)

	lines := ix.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].Length)

	// Non-root sorts after the placeholder still count.
	require.NoError(t, b.Insert(1, sortWithGlyph(t, "a", 500)))
	assert.Equal(t, 1, ix.LineLength(0))
}

func TestLineLengthOnNonRoot(t *testing.T) {
	b, _, _ := twoLineBuffer(t)
	ix := NewLineIndex(b)

	// Index 1 is "b", not a root.
	assert.Equal(t, 0, ix.LineLength(1))
	assert.Equal(t, 0, ix.LineLength(99))
}

func TestLineOf(t *testing.T) {
	b, first, second := twoLineBuffer(t)
	ix := NewLineIndex(b)

	for i, want := range []LineID{first, first, second, second} {
		info, ok := ix.lineOf(i)
		require.True(t, ok, "index %d", i)
		assert.Equal(t, want, info.ID, "index %d", i)
	}
}

func TestCheckPartition(t *testing.T) {
	ix := NewLineIndex(NewSortBuffer())
	assert.NoError(t, ix.checkPartition())

	b, _, _ := twoLineBuffer(t)
	assert.NoError(t, NewLineIndex(b).checkPartition())

	bad := FromSorts([]Sort{sortWithGlyph(t, "a", 500)})
	assert.Error(t, NewLineIndex(bad).checkPartition())
}
