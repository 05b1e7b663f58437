package core

// Selection is a contiguous range of sorts within the active line, spanned
// between a fixed anchor and the live cursor. It only drives copy; editing
// intents operate at the cursor regardless of any selection.

// StartSelection anchors a selection at the current cursor offset. Cursor
// motion then extends it.
func (e *editor) StartSelection() {
	rootIdx, root, err := e.activeRoot()
	if err != nil {
		return
	}
	cursor := Cursor{Offset: root.CursorOffset}
	cursor.clamp(e.lines.LineLength(rootIdx))
	e.selectionAnchor = cursor.Offset
}

// ClearSelection drops the selection anchor.
func (e *editor) ClearSelection() {
	e.selectionAnchor = -1
}

// Selection returns the normalized selection range [start, end) in line
// offsets, or ok=false when no selection is active.
func (e *editor) Selection() (start, end int, ok bool) {
	if e.selectionAnchor < 0 {
		return 0, 0, false
	}
	rootIdx, root, err := e.activeRoot()
	if err != nil {
		return 0, 0, false
	}
	cursor := Cursor{Offset: root.CursorOffset}
	cursor.clamp(e.lines.LineLength(rootIdx))

	start, end = e.selectionAnchor, cursor.Offset
	if start > end {
		start, end = end, start
	}
	return start, end, true
}
