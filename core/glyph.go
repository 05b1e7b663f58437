package core

import (
	"fmt"

	"github.com/rivo/uniseg"
)

// GlyphID identifies a glyph in the font under edit. It is deliberately
// opaque: construct one through ParseGlyphID so arbitrary strings cannot be
// mixed in by accident.
type GlyphID struct {
	name string
}

// ParseGlyphID validates name as a glyph identifier. Names follow the usual
// development-name rules: 1-63 characters from [A-Za-z0-9._-].
func ParseGlyphID(name string) (GlyphID, error) {
	if name == "" {
		return GlyphID{}, fmt.Errorf("ParseGlyphID: %w: empty name", ErrInvalidGlyphName)
	}
	if len(name) > 63 {
		return GlyphID{}, fmt.Errorf("ParseGlyphID: %w: %q exceeds 63 characters", ErrInvalidGlyphName, name)
	}
	for _, r := range name {
		if !isGlyphNameChar(r) {
			return GlyphID{}, fmt.Errorf("ParseGlyphID: %w: %q contains %q", ErrInvalidGlyphName, name, r)
		}
	}
	return GlyphID{name: name}, nil
}

// MustGlyphID is ParseGlyphID for names known to be valid at compile time.
// It panics on invalid input.
func MustGlyphID(name string) GlyphID {
	id, err := ParseGlyphID(name)
	if err != nil {
		panic(err)
	}
	return id
}

func isGlyphNameChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '-':
		return true
	}
	return false
}

func (g GlyphID) String() string { return g.name }

// IsZero reports whether g is the zero identifier, used internally for root
// placeholders that hold a line open before its first glyph arrives.
func (g GlyphID) IsZero() bool { return g.name == "" }

// GlyphIDsFromText converts typed text into glyph identifiers, one per
// grapheme cluster. Single alphanumeric ASCII clusters keep their literal
// name; everything else gets a uniXXXX-style name per code point so that
// combining sequences stay addressable as one glyph.
func GlyphIDsFromText(text string) []GlyphID {
	var ids []GlyphID
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 1 && isLiteralNameRune(runes[0]) {
			ids = append(ids, GlyphID{name: string(runes[0])})
			continue
		}
		name := ""
		for _, r := range runes {
			name += fmt.Sprintf("uni%04X", r)
		}
		if len(name) > 63 {
			name = name[:63]
		}
		ids = append(ids, GlyphID{name: name})
	}
	return ids
}

func isLiteralNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// GlyphMetricsProvider supplies per-glyph advance widths in design units.
// Implementations report ErrGlyphNotFound for glyphs missing from the font;
// the layout engine substitutes its fallback width and flags the line
// degraded instead of aborting.
type GlyphMetricsProvider interface {
	AdvanceWidth(id GlyphID) (float64, error)
}

// StaticMetrics is a fixed in-memory metrics table, mainly for tests and the
// example adapter.
type StaticMetrics struct {
	widths map[GlyphID]float64
}

func NewStaticMetrics() *StaticMetrics {
	return &StaticMetrics{widths: make(map[GlyphID]float64)}
}

func (m *StaticMetrics) Set(id GlyphID, width float64) {
	m.widths[id] = width
}

func (m *StaticMetrics) AdvanceWidth(id GlyphID) (float64, error) {
	w, ok := m.widths[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrGlyphNotFound, id)
	}
	return w, nil
}
