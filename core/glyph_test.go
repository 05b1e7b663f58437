package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGlyphID(t *testing.T) {
	valid := []string{"a", "A", "zero", "uni0628", "a.alt1", "o_o", "dotless-i"}
	for _, name := range valid {
		id, err := ParseGlyphID(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, id.String())
		assert.False(t, id.IsZero())
	}

	invalid := []string{"", "a b", "glyph/name", "ä", strings.Repeat("a", 64)}
	for _, name := range invalid {
		_, err := ParseGlyphID(name)
		assert.ErrorIs(t, err, ErrInvalidGlyphName, "%q should be rejected", name)
	}
}

func TestMustGlyphIDPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustGlyphID("") })
}

func TestGlyphIDsFromText(t *testing.T) {
	ids := GlyphIDsFromText("ab1")
	require.Len(t, ids, 3)
	assert.Equal(t, "a", ids[0].String())
	assert.Equal(t, "b", ids[1].String())
	assert.Equal(t, "1", ids[2].String())

	// Precomposed non-ASCII gets a uniXXXX name.
	ids = GlyphIDsFromText("\u00e9")
	require.Len(t, ids, 1)
	assert.Equal(t, "uni00E9", ids[0].String())

	// A combining sequence is one grapheme cluster, one glyph.
	ids = GlyphIDsFromText("e\u0301")
	require.Len(t, ids, 1)
	assert.Equal(t, "uni0065uni0301", ids[0].String())

	// Space is a glyph too.
	ids = GlyphIDsFromText(" ")
	require.Len(t, ids, 1)
	assert.Equal(t, "uni0020", ids[0].String())
}

func TestStaticMetrics(t *testing.T) {
	metrics := NewStaticMetrics()
	metrics.Set(MustGlyphID("a"), 520)

	w, err := metrics.AdvanceWidth(MustGlyphID("a"))
	require.NoError(t, err)
	assert.Equal(t, 520.0, w)

	_, err = metrics.AdvanceWidth(MustGlyphID("b"))
	assert.ErrorIs(t, err, ErrGlyphNotFound)
}
