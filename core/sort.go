package core

import "sync/atomic"

// SortID uniquely identifies a placed sort for the lifetime of the process.
type SortID uint64

var nextSortID atomic.Uint64

func newSortID() SortID {
	return SortID(nextSortID.Add(1))
}

// Direction is the text flow direction of a line, fixed when the line is
// created. Mixed-direction runs within one line are out of scope.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "RTL"
	}
	return "LTR"
}

// Point is a position in design space.
type Point struct {
	X float64
	Y float64
}

// Sort is a placed glyph instance, analogous to a piece of movable type.
// Its on-screen position is derived by the layout engine on every pass and
// never stored here.
//
// The Line, Direction, Anchor and CursorOffset fields are only meaningful on
// buffer roots; a root with a zero Glyph is a placeholder keeping an empty
// line open until its first glyph arrives.
type Sort struct {
	ID           SortID
	Glyph        GlyphID
	AdvanceWidth float64
	IsBufferRoot bool

	Line         LineID
	Direction    Direction
	Anchor       Point
	CursorOffset int
}

func newSort(glyph GlyphID, advance float64) Sort {
	return Sort{
		ID:           newSortID(),
		Glyph:        glyph,
		AdvanceWidth: advance,
	}
}

// isPlaceholder reports whether s is an empty root placeholder. Placeholders
// are invisible to line lengths, sequences and layout.
func (s Sort) isPlaceholder() bool {
	return s.IsBufferRoot && s.Glyph.IsZero()
}
