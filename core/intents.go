package core

// Intents are the discrete editing commands the input layer delivers to the
// engine. One intent maps to one edit step; the surrounding event loop
// serializes them, so the engine never needs internal locking.
type Intent any

// InsertGlyph places one glyph at the cursor of the active line.
type InsertGlyph struct {
	Glyph GlyphID
}

// InsertText places one glyph per grapheme cluster of Text, in order.
type InsertText struct {
	Text string
}

// DeleteBefore removes the sort left of the cursor (backspace). A no-op at
// the start of the line.
type DeleteBefore struct{}

// DeleteAfter removes the sort right of the cursor (forward delete). A no-op
// at the end of the line.
type DeleteAfter struct{}

type CursorDirection int

const (
	CursorLeft CursorDirection = iota
	CursorRight
	CursorUp
	CursorDown
	CursorHome
	CursorEnd
)

// MoveCursor moves within the active line (Left/Right/Home/End) or switches
// the active line (Up/Down).
type MoveCursor struct {
	Direction CursorDirection
}

// NewLine places a new buffer root after the cursor; sorts right of the
// cursor move onto the new line. Direction is fixed for the line's lifetime.
type NewLine struct {
	Direction Direction
}
