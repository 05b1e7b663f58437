package core

// Cursor is a logical offset within one line, in [0, lineLength]. Offset 0
// sits before the line's first sort, lineLength after its last. Only the
// active line carries a live cursor; inactive lines remember their offset on
// their root sort.
type Cursor struct {
	Offset int
}

// clamp keeps the offset inside [0, lineLen]. Motions below never leave the
// range, but edits elsewhere in the line can shrink it under the cursor.
func (c *Cursor) clamp(lineLen int) {
	if c.Offset < 0 {
		c.Offset = 0
	}
	if c.Offset > lineLen {
		c.Offset = lineLen
	}
}

// MoveLeft steps one position toward the line start. At offset 0 it reports
// ErrStartOfLine and moves nothing; callers treat that as a quiet no-op.
func (c *Cursor) MoveLeft() error {
	if c.Offset <= 0 {
		return ErrStartOfLine
	}
	c.Offset--
	return nil
}

// MoveRight steps one position toward the line end, reporting ErrEndOfLine
// at offset lineLen.
func (c *Cursor) MoveRight(lineLen int) error {
	if c.Offset >= lineLen {
		return ErrEndOfLine
	}
	c.Offset++
	return nil
}

// MoveHome jumps to offset 0.
func (c *Cursor) MoveHome() {
	c.Offset = 0
}

// MoveEnd jumps to offset lineLen.
func (c *Cursor) MoveEnd(lineLen int) {
	c.Offset = lineLen
}
