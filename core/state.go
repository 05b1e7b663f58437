package core

import (
	"fmt"
	"log"
	"strings"
)

// State is the externally visible editor state.
type State struct {
	ActiveLine LineID // Line owning the live cursor (0 = none)
	StatusLine string // Content for a status line, if the UI wants one
	Message    string // Temporary message to display
	Quit       bool   // Flag indicating the session should end

	// LineAdvance is the vertical distance between consecutive line anchors
	// in design units. Defaults to one em plus typical descender depth.
	LineAdvance float64
}

// InitialState creates a default state.
func InitialState() State {
	return State{
		LineAdvance: 1280,
	}
}

// snapshot is one history entry: the full logical buffer content plus the
// active line at the time.
type snapshot struct {
	sorts      []Sort
	activeLine LineID
}

// Concrete implementation of Editor
type editor struct {
	buffer  *SortBuffer
	lines   *LineIndex
	layout  *LayoutEngine
	metrics GlyphMetricsProvider
	state   State

	// Selection anchor offset within the active line, -1 when inactive.
	selectionAnchor int

	// Lines whose most recent layout pass needed fallback widths.
	degraded map[LineID]bool

	history    []snapshot
	historyPos int
	maxHistory uint32

	clipboard    Clipboard
	updateSignal chan Signal
}

// New creates a new editor session around the given metrics provider. The
// clipboard may be nil; copy and paste then report an error instead.
func New(metrics GlyphMetricsProvider, clipboard Clipboard) Editor {
	buf := NewSortBuffer()
	e := &editor{
		buffer:          buf,
		lines:           NewLineIndex(buf),
		layout:          NewLayoutEngine(metrics),
		metrics:         metrics,
		state:           InitialState(),
		selectionAnchor: -1,
		degraded:        make(map[LineID]bool),
		history:         []snapshot{},
		historyPos:      -1,
		maxHistory:      1000,
		clipboard:       clipboard,
		updateSignal:    make(chan Signal, 100),
	}

	// Save the initial state as the first history entry
	e.SaveHistory()

	return e
}

// SetMaxHistory allows setting the maximum number of history entries.
// Default is 1000.
func (e *editor) SetMaxHistory(max uint32) {
	e.maxHistory = max
}

// SetFallbackAdvance configures the width substituted for missing glyphs.
func (e *editor) SetFallbackAdvance(w float64) {
	e.layout.SetFallbackAdvance(w)
}

func (e *editor) GetBuffer() *SortBuffer { return e.buffer }

func (e *editor) Lines() []LineInfo { return e.lines.Lines() }

func (e *editor) GetState() State { return e.state }

func (e *editor) SetState(state State) { e.state = state }

func (e *editor) UpdateStatus(status string) { e.state.StatusLine = status }

func (e *editor) Quit() {
	e.state.Quit = true
	e.DispatchSignal(QuitSignal{})
}

func (e *editor) GetUpdateSignalChan() <-chan Signal { return e.updateSignal }

// ActiveLine returns the line owning the live cursor. A stale id falls back
// to the last line in the buffer, mirroring how the session recovers after
// the active line was deleted.
func (e *editor) ActiveLine() (LineID, bool) {
	if e.state.ActiveLine != 0 {
		if _, err := e.lines.RootIndex(e.state.ActiveLine); err == nil {
			return e.state.ActiveLine, true
		}
	}
	lines := e.lines.Lines()
	if len(lines) == 0 {
		return 0, false
	}
	e.state.ActiveLine = lines[len(lines)-1].ID
	return e.state.ActiveLine, true
}

func (e *editor) SetActiveLine(id LineID) error {
	if _, err := e.lines.RootIndex(id); err != nil {
		return err
	}
	e.state.ActiveLine = id
	e.ClearSelection()
	return nil
}

// activeRoot resolves the active line to its root index. The *Sort pointer
// is only valid until the next buffer mutation.
func (e *editor) activeRoot() (int, *Sort, error) {
	id, ok := e.ActiveLine()
	if !ok {
		return 0, nil, ErrNoActiveLine
	}
	rootIdx, err := e.lines.RootIndex(id)
	if err != nil {
		return 0, nil, err
	}
	return rootIdx, e.buffer.at(rootIdx), nil
}

// elementIndex maps a logical line offset to the buffer index of the element
// it addresses (for access) or displaces (for insertion). A real root is the
// line's element 0; a placeholder root is skipped over.
func (e *editor) elementIndex(rootIdx, offset int) int {
	root, _ := e.buffer.Get(rootIdx)
	if root.isPlaceholder() {
		return rootIdx + 1 + offset
	}
	return rootIdx + offset
}

func (e *editor) CursorOffset(id LineID) (int, error) {
	rootIdx, err := e.lines.RootIndex(id)
	if err != nil {
		return 0, err
	}
	root, _ := e.buffer.Get(rootIdx)
	c := Cursor{Offset: root.CursorOffset}
	c.clamp(e.lines.LineLength(rootIdx))
	return c.Offset, nil
}

// HandleIntent executes one editing intent. Boundary conditions (cursor at
// a line edge, deletion on an empty line) are quiet no-ops; only real
// failures are returned or dispatched.
func (e *editor) HandleIntent(intent Intent) error {
	switch intent := intent.(type) {
	case InsertGlyph:
		if err := e.insertGlyph(intent.Glyph); err != nil {
			return err
		}
		e.SaveHistory()
		return nil

	case InsertText:
		ids := GlyphIDsFromText(intent.Text)
		for _, id := range ids {
			if err := e.insertGlyph(id); err != nil {
				return err
			}
		}
		if len(ids) > 0 {
			e.SaveHistory()
		}
		return nil

	case DeleteBefore:
		if e.deleteBeforeCursor() {
			e.SaveHistory()
		}
		return nil

	case DeleteAfter:
		if e.deleteAfterCursor() {
			e.SaveHistory()
		}
		return nil

	case MoveCursor:
		e.moveCursor(intent.Direction)
		return nil

	case NewLine:
		e.newLine(intent.Direction)
		e.SaveHistory()
		return nil
	}

	return nil
}

// advanceFor snapshots the metric captured on the sort at insertion time.
func (e *editor) advanceFor(glyph GlyphID) float64 {
	w, err := e.metrics.AdvanceWidth(glyph)
	if err != nil {
		return e.layout.fallback
	}
	return w
}

// insertGlyph places one glyph at the cursor of the active line, creating a
// first line on demand. The target buffer index is re-derived from the line
// index on every call; nothing physical is cached across edits.
func (e *editor) insertGlyph(glyph GlyphID) error {
	if _, ok := e.ActiveLine(); !ok {
		e.createLine(LTR, Point{})
	}

	rootIdx, root, err := e.activeRoot()
	if err != nil {
		return err
	}

	lineID := root.Line
	cursor := Cursor{Offset: root.CursorOffset}
	cursor.clamp(e.lines.LineLength(rootIdx))
	offset := cursor.Offset

	s := newSort(glyph, e.advanceFor(glyph))

	if root.isPlaceholder() && offset == 0 {
		// The first glyph typed into an empty line replaces the placeholder
		// in place and becomes the real root.
		s.IsBufferRoot = true
		s.Line = root.Line
		s.Direction = root.Direction
		s.Anchor = root.Anchor
		s.CursorOffset = 1
		if err := e.buffer.Set(rootIdx, s); err != nil {
			return err
		}
		e.afterMutation()
		e.DispatchSignal(SortInsertedSignal{line: lineID, offset: offset})
		return nil
	}

	target := e.elementIndex(rootIdx, offset)
	if err := e.buffer.Insert(target, s); err != nil {
		return err
	}

	if target == rootIdx {
		// Inserting at offset 0 displaces the root: the new first sort takes
		// over the line's root identity so root flags keep partitioning the
		// buffer correctly.
		oldRoot := e.buffer.at(target + 1)
		inserted := e.buffer.at(target)
		inserted.IsBufferRoot = true
		inserted.Line = oldRoot.Line
		inserted.Direction = oldRoot.Direction
		inserted.Anchor = oldRoot.Anchor
		oldRoot.IsBufferRoot = false
		oldRoot.Line = 0
		oldRoot.CursorOffset = 0
		rootIdx = target
	}

	e.buffer.at(rootIdx).CursorOffset = offset + 1
	e.afterMutation()
	e.DispatchSignal(SortInsertedSignal{line: lineID, offset: offset})
	return nil
}

// deleteBeforeCursor implements backspace. Returns whether the buffer
// changed. The cursor at offset k sits right of the element at k-1; exactly
// that element is removed.
func (e *editor) deleteBeforeCursor() bool {
	rootIdx, root, err := e.activeRoot()
	if err != nil {
		return false
	}

	lineLen := e.lines.LineLength(rootIdx)
	cursor := Cursor{Offset: root.CursorOffset}
	cursor.clamp(lineLen)
	if cursor.Offset == 0 {
		// Start of line: quiet no-op, never an error.
		return false
	}

	lineID := root.Line
	offset := cursor.Offset
	target := e.elementIndex(rootIdx, offset) - 1
	e.removeAt(rootIdx, target, lineLen, offset-1)
	e.afterMutation()
	e.DispatchSignal(SortDeletedSignal{line: lineID, offset: offset - 1})
	return true
}

// deleteAfterCursor implements forward delete. Returns whether the buffer
// changed. The cursor offset is unchanged.
func (e *editor) deleteAfterCursor() bool {
	rootIdx, root, err := e.activeRoot()
	if err != nil {
		return false
	}

	lineLen := e.lines.LineLength(rootIdx)
	cursor := Cursor{Offset: root.CursorOffset}
	cursor.clamp(lineLen)
	if cursor.Offset == lineLen {
		return false
	}

	lineID := root.Line
	offset := cursor.Offset
	target := e.elementIndex(rootIdx, offset)
	e.removeAt(rootIdx, target, lineLen, offset)
	e.afterMutation()
	e.DispatchSignal(SortDeletedSignal{line: lineID, offset: offset})
	return true
}

// removeAt deletes the buffer element at target within the line rooted at
// rootIdx. Deleting the root itself hands the root identity to its
// successor; deleting the line's last element destroys the line.
func (e *editor) removeAt(rootIdx, target, lineLen, cursorAfter int) {
	root := e.buffer.at(rootIdx)
	lineID := root.Line

	if target != rootIdx {
		e.buffer.Delete(target)
		e.buffer.at(rootIdx).CursorOffset = cursorAfter
		return
	}

	if lineLen > 1 {
		// The root is being deleted but the line lives on: promote the next
		// sort to root before the delete shifts it into place.
		succ := e.buffer.at(rootIdx + 1)
		succ.IsBufferRoot = true
		succ.Line = root.Line
		succ.Direction = root.Direction
		succ.Anchor = root.Anchor
		succ.CursorOffset = cursorAfter
		e.buffer.Delete(rootIdx)
		return
	}

	// Last sort of the line: the line goes with it.
	e.buffer.Delete(rootIdx)
	delete(e.degraded, lineID)
	if e.state.ActiveLine == lineID {
		e.state.ActiveLine = 0
	}
	e.DispatchSignal(LineRemovedSignal{line: lineID})
}

func (e *editor) moveCursor(dir CursorDirection) {
	rootIdx, root, err := e.activeRoot()
	if err != nil {
		return
	}

	lineLen := e.lines.LineLength(rootIdx)
	cursor := Cursor{Offset: root.CursorOffset}
	cursor.clamp(lineLen)

	switch dir {
	case CursorLeft:
		// Boundary motions are quiet no-ops.
		_ = cursor.MoveLeft()
		root.CursorOffset = cursor.Offset
	case CursorRight:
		_ = cursor.MoveRight(lineLen)
		root.CursorOffset = cursor.Offset
	case CursorHome:
		cursor.MoveHome()
		root.CursorOffset = cursor.Offset
	case CursorEnd:
		cursor.MoveEnd(lineLen)
		root.CursorOffset = cursor.Offset
	case CursorUp:
		e.moveToAdjacentLine(-1)
	case CursorDown:
		e.moveToAdjacentLine(+1)
	}
}

// moveToAdjacentLine switches the active line to the previous or next root.
// Moving up lands at the end of the previous line, moving down at the start
// of the next, as the original editor did. At the first or last line this is
// a no-op.
func (e *editor) moveToAdjacentLine(step int) {
	id, ok := e.ActiveLine()
	if !ok {
		return
	}
	lines := e.lines.Lines()
	current := -1
	for i, info := range lines {
		if info.ID == id {
			current = i
			break
		}
	}
	if current < 0 {
		return
	}
	next := current + step
	if next < 0 || next >= len(lines) {
		return
	}

	target := lines[next]
	if step < 0 {
		e.buffer.at(target.Root).CursorOffset = target.Length
	} else {
		e.buffer.at(target.Root).CursorOffset = 0
	}
	e.state.ActiveLine = target.ID
	e.ClearSelection()
}

// createLine appends a fresh placeholder root and makes it active.
func (e *editor) createLine(dir Direction, anchor Point) LineID {
	id := newLineID()
	root := Sort{
		ID:           newSortID(),
		IsBufferRoot: true,
		Line:         id,
		Direction:    dir,
		Anchor:       anchor,
	}
	e.buffer.Insert(e.buffer.Len(), root)
	e.state.ActiveLine = id
	e.ClearSelection()
	e.DispatchSignal(LineCreatedSignal{line: id, direction: dir})
	return id
}

// newLine places a new buffer root at the cursor. Sorts right of the cursor
// now follow the new root and belong to the new line; the new line's anchor
// drops one LineAdvance below the current one.
func (e *editor) newLine(dir Direction) {
	rootIdx, root, err := e.activeRoot()
	if err != nil {
		// Empty session: the new line is the first line.
		e.createLine(dir, Point{})
		return
	}

	cursor := Cursor{Offset: root.CursorOffset}
	cursor.clamp(e.lines.LineLength(rootIdx))

	id := newLineID()
	anchor := Point{X: root.Anchor.X, Y: root.Anchor.Y - e.state.LineAdvance}
	placeholder := Sort{
		ID:           newSortID(),
		IsBufferRoot: true,
		Line:         id,
		Direction:    dir,
		Anchor:       anchor,
	}

	target := e.elementIndex(rootIdx, cursor.Offset)
	e.buffer.Insert(target, placeholder)
	e.state.ActiveLine = id
	e.ClearSelection()
	e.afterMutation()
	e.DispatchSignal(LineCreatedSignal{line: id, direction: dir})
}

// CurrentSequence returns the line's sorts in logical order, for rendering
// and persistence. Root placeholders are invisible.
func (e *editor) CurrentSequence(id LineID) ([]SequenceEntry, error) {
	rootIdx, err := e.lines.RootIndex(id)
	if err != nil {
		return nil, err
	}

	var entries []SequenceEntry
	for i := rootIdx; i < e.buffer.Len(); i++ {
		s, _ := e.buffer.Get(i)
		if i > rootIdx && s.IsBufferRoot {
			break
		}
		if s.isPlaceholder() {
			continue
		}
		entries = append(entries, SequenceEntry{Sort: s.ID, Glyph: s.Glyph})
	}
	return entries, nil
}

// LayoutPositions lays the line out and records whether it degraded.
func (e *editor) LayoutPositions(id LineID) (LineLayout, error) {
	layout, err := e.layout.LayoutLine(e.buffer, e.lines, id)
	if err != nil {
		return LineLayout{}, err
	}
	if layout.Degraded && !e.degraded[id] {
		e.DispatchSignal(DegradedLineSignal{line: id})
		e.DispatchMessage(GlyphMissingMessage)
	}
	e.degraded[id] = layout.Degraded
	return layout, nil
}

// IsDegraded reports whether the line's most recent layout pass substituted
// fallback widths.
func (e *editor) IsDegraded(id LineID) bool {
	return e.degraded[id]
}

// FindInLine returns the offset of the first occurrence of glyph in the
// line, at or after from.
func (e *editor) FindInLine(id LineID, glyph GlyphID, from int) (int, bool) {
	rootIdx, err := e.lines.RootIndex(id)
	if err != nil {
		return 0, false
	}
	lineLen := e.lines.LineLength(rootIdx)
	if from < 0 {
		from = 0
	}
	for offset := from; offset < lineLen; offset++ {
		s, ok := e.buffer.Get(e.elementIndex(rootIdx, offset))
		if !ok {
			break
		}
		if s.Glyph == glyph {
			return offset, true
		}
	}
	return 0, false
}

// Copy writes the selected sorts (or the whole active line) to the
// clipboard as space-separated glyph names.
func (e *editor) Copy() error {
	if e.clipboard == nil {
		err := fmt.Errorf("copy: no clipboard available")
		e.DispatchError(ErrCopyFailedId, err)
		return err
	}

	id, ok := e.ActiveLine()
	if !ok {
		return ErrNoActiveLine
	}
	entries, err := e.CurrentSequence(id)
	if err != nil {
		return err
	}

	if start, end, selected := e.Selection(); selected {
		if end > len(entries) {
			end = len(entries)
		}
		entries = entries[start:end]
	}

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Glyph.String()
	}

	if err := e.clipboard.Write(strings.Join(names, " ")); err != nil {
		e.DispatchError(ErrCopyFailedId, err)
		return err
	}

	e.DispatchSignal(CopySignal{totalSorts: len(entries)})
	e.DispatchMessage(SortsCopiedMessage)
	return nil
}

// Paste inserts the clipboard's glyph names at the cursor and returns how
// many sorts were placed. Invalid names abort before anything is inserted.
func (e *editor) Paste() (int, error) {
	if e.clipboard == nil {
		err := fmt.Errorf("paste: no clipboard available")
		e.DispatchError(ErrPasteFailedId, err)
		return 0, err
	}

	text, err := e.clipboard.Read()
	if err != nil {
		e.DispatchError(ErrPasteFailedId, err)
		return 0, err
	}

	fields := strings.Fields(text)
	ids := make([]GlyphID, 0, len(fields))
	for _, field := range fields {
		id, err := ParseGlyphID(field)
		if err != nil {
			e.DispatchError(ErrPasteFailedId, err)
			return 0, err
		}
		ids = append(ids, id)
	}

	for _, id := range ids {
		if err := e.insertGlyph(id); err != nil {
			return 0, err
		}
	}
	if len(ids) > 0 {
		e.SaveHistory()
	}

	e.DispatchSignal(PasteSignal{totalSorts: len(ids)})
	e.DispatchMessage(SortsPastedMessage)
	return len(ids), nil
}

// SaveHistory records the current buffer as an undo point, discarding any
// redo tail.
func (e *editor) SaveHistory() {
	snap := snapshot{
		sorts:      e.buffer.Sorts(),
		activeLine: e.state.ActiveLine,
	}

	if e.historyPos < len(e.history)-1 {
		e.history = e.history[:e.historyPos+1]
	}
	e.history = append(e.history, snap)

	if uint32(len(e.history)) > e.maxHistory {
		drop := len(e.history) - int(e.maxHistory)
		e.history = e.history[drop:]
	}
	e.historyPos = len(e.history) - 1
}

func (e *editor) Undo() error {
	if e.historyPos <= 0 {
		e.DispatchMessage(NothingToUndoMessage)
		return fmt.Errorf("undo: %w", ErrNothingToUndo)
	}
	e.historyPos--
	e.restore(e.history[e.historyPos])
	e.DispatchSignal(UndoSignal{})
	return nil
}

func (e *editor) Redo() error {
	if e.historyPos >= len(e.history)-1 {
		e.DispatchMessage(NothingToRedoMessage)
		return fmt.Errorf("redo: %w", ErrNothingToRedo)
	}
	e.historyPos++
	e.restore(e.history[e.historyPos])
	e.DispatchSignal(RedoSignal{})
	return nil
}

func (e *editor) restore(snap snapshot) {
	e.buffer.Reset(snap.sorts)
	e.state.ActiveLine = snap.activeLine
	e.ClearSelection()
	e.reconcile()
}

// afterMutation runs the consistency pass every edit step ends with.
func (e *editor) afterMutation() {
	e.reconcile()
}

// reconcile re-derives everything cached against the buffer's ground truth:
// root cursor offsets are clamped to their line's true length, the selection
// anchor to the active line, and a buffer left starting with a non-root sort
// is repaired by promoting that sort. The buffer itself is the single source
// of truth; anything disagreeing with it is corrected, not trusted.
func (e *editor) reconcile() {
	if err := e.buffer.checkInvariants(); err != nil {
		log.Println("sort buffer invariant check failed:", err)
	}

	if err := e.lines.checkPartition(); err != nil {
		log.Println("line partition check failed, promoting first sort:", err)
		first := e.buffer.at(0)
		first.IsBufferRoot = true
		if first.Line == 0 {
			first.Line = newLineID()
		}
	}

	for _, info := range e.lines.Lines() {
		root := e.buffer.at(info.Root)
		c := Cursor{Offset: root.CursorOffset}
		c.clamp(info.Length)
		root.CursorOffset = c.Offset

		if e.state.ActiveLine == info.ID && e.selectionAnchor > info.Length {
			e.selectionAnchor = info.Length
		}
	}
}
