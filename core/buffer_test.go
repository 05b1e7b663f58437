package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortWithGlyph(t *testing.T, name string, advance float64) Sort {
	t.Helper()
	id, err := ParseGlyphID(name)
	require.NoError(t, err)
	return newSort(id, advance)
}

func glyphNames(b *SortBuffer) []string {
	var names []string
	b.Each(func(_ int, s Sort) bool {
		names = append(names, s.Glyph.String())
		return true
	})
	return names
}

func TestSortBufferInsertAppend(t *testing.T) {
	b := NewSortBuffer()
	require.True(t, b.IsEmpty())

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, b.Insert(b.Len(), sortWithGlyph(t, name, 500)))
	}

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []string{"a", "b", "c"}, glyphNames(b))
	require.NoError(t, b.checkInvariants())
}

func TestSortBufferInsertMiddleRelocatesGap(t *testing.T) {
	b := NewSortBuffer()
	for _, name := range []string{"a", "b", "d"} {
		require.NoError(t, b.Insert(b.Len(), sortWithGlyph(t, name, 500)))
	}

	// Gap sits at the end; inserting at index 2 forces a relocation.
	require.NoError(t, b.Insert(2, sortWithGlyph(t, "c", 500)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, glyphNames(b))

	// And back at the front.
	require.NoError(t, b.Insert(0, sortWithGlyph(t, "x", 500)))
	assert.Equal(t, []string{"x", "a", "b", "c", "d"}, glyphNames(b))
	require.NoError(t, b.checkInvariants())
}

func TestSortBufferDeleteRemovesExactIndex(t *testing.T) {
	// The classic off-by-one: deleting index i must never take out i-1 or
	// i+1, regardless of where the gap currently sits.
	for target := 0; target < 3; target++ {
		b := NewSortBuffer()
		for _, name := range []string{"a", "b", "c"} {
			require.NoError(t, b.Insert(b.Len(), sortWithGlyph(t, name, 500)))
		}

		deleted, err := b.Delete(target)
		require.NoError(t, err)

		want := []string{"a", "b", "c"}
		assert.Equal(t, want[target], deleted.Glyph.String())
		assert.Equal(t, append(append([]string{}, want[:target]...), want[target+1:]...), glyphNames(b))
		require.NoError(t, b.checkInvariants())
	}
}

func TestSortBufferInsertDeleteRoundTrip(t *testing.T) {
	// delete(i) after insert(i, s) restores the pre-insert logical content,
	// for every valid i.
	base := []string{"a", "b", "c", "d", "e"}
	for i := 0; i <= len(base); i++ {
		b := NewSortBuffer()
		for _, name := range base {
			require.NoError(t, b.Insert(b.Len(), sortWithGlyph(t, name, 500)))
		}

		require.NoError(t, b.Insert(i, sortWithGlyph(t, "x", 500)))
		_, err := b.Delete(i)
		require.NoError(t, err)

		assert.Equal(t, base, glyphNames(b), "round trip at index %d", i)
		require.NoError(t, b.checkInvariants())
	}
}

func TestSortBufferIndexOutOfRange(t *testing.T) {
	b := NewSortBuffer()
	require.NoError(t, b.Insert(0, sortWithGlyph(t, "a", 500)))

	err := b.Insert(2, sortWithGlyph(t, "b", 500))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = b.Delete(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = b.Delete(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	// Failed calls must leave the content alone.
	assert.Equal(t, []string{"a"}, glyphNames(b))
}

func TestSortBufferGrowPreservesOrder(t *testing.T) {
	b := NewSortBuffer()
	var want []string
	for i := 0; i < initialBufferCapacity*3; i++ {
		name := string(rune('a' + i%26))
		require.NoError(t, b.Insert(b.Len(), sortWithGlyph(t, name, 500)))
		want = append(want, name)
	}

	assert.Equal(t, initialBufferCapacity*3, b.Len())
	assert.Equal(t, want, glyphNames(b))
	require.NoError(t, b.checkInvariants())
}

func TestSortBufferGrowWithInteriorGap(t *testing.T) {
	b := NewSortBuffer()
	for i := 0; i < initialBufferCapacity; i++ {
		require.NoError(t, b.Insert(b.Len(), sortWithGlyph(t, "a", 500)))
	}

	// Park the gap in the middle, then force growth.
	require.NoError(t, b.Insert(initialBufferCapacity/2, sortWithGlyph(t, "x", 500)))

	idx, found := b.Find(MustGlyphID("x"), 0)
	require.True(t, found)
	assert.Equal(t, initialBufferCapacity/2, idx)
	assert.Equal(t, initialBufferCapacity+1, b.Len())
	require.NoError(t, b.checkInvariants())
}

func TestSortBufferFind(t *testing.T) {
	b := NewSortBuffer()
	for _, name := range []string{"a", "b", "a", "c"} {
		require.NoError(t, b.Insert(b.Len(), sortWithGlyph(t, name, 500)))
	}

	idx, found := b.Find(MustGlyphID("a"), 0)
	require.True(t, found)
	assert.Equal(t, 0, idx)

	idx, found = b.Find(MustGlyphID("a"), 1)
	require.True(t, found)
	assert.Equal(t, 2, idx)

	_, found = b.Find(MustGlyphID("z"), 0)
	assert.False(t, found)
}

func TestSortBufferResetAndSorts(t *testing.T) {
	b := NewSortBuffer()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, b.Insert(b.Len(), sortWithGlyph(t, name, 500)))
	}

	snapshot := b.Sorts()
	_, err := b.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, glyphNames(b))

	b.Reset(snapshot)
	assert.Equal(t, []string{"a", "b", "c"}, glyphNames(b))
	require.NoError(t, b.checkInvariants())
}
