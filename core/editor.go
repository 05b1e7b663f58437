package core

// SequenceEntry is one element of a line's readback sequence, in logical
// order. It carries everything an external renderer or persistence layer
// needs to resolve the glyph.
type SequenceEntry struct {
	Sort  SortID
	Glyph GlyphID
}

// Editor is the façade coordinating the sort buffer, line index, cursor and
// layout engine for external callers. All operations run to completion
// within one edit step; input events are expected to be serialized by the
// surrounding event loop.
type Editor interface {
	// Buffer access
	GetBuffer() *SortBuffer
	Lines() []LineInfo

	// Active line and cursor
	ActiveLine() (LineID, bool)
	SetActiveLine(id LineID) error
	CursorOffset(id LineID) (int, error)

	// Editing
	HandleIntent(intent Intent) error

	// Readback for rendering, hit-testing and persistence
	CurrentSequence(id LineID) ([]SequenceEntry, error)
	LayoutPositions(id LineID) (LineLayout, error)
	IsDegraded(id LineID) bool

	// Selection (within the active line)
	StartSelection()
	ClearSelection()
	Selection() (start, end int, ok bool)

	// Clipboard
	Copy() error
	Paste() (int, error)

	// History
	SaveHistory()
	Undo() error
	Redo() error

	// Search
	FindInLine(id LineID, glyph GlyphID, from int) (int, bool)

	// Signals for UI consumers
	GetUpdateSignalChan() <-chan Signal
	DispatchError(id ErrorId, err error)
	DispatchMessage(args ...string)
	DispatchSignal(signal Signal)

	GetState() State
	SetState(State)
	UpdateStatus(status string)
	Quit()
}

// Clipboard abstracts the system clipboard so the engine stays testable; the
// bubbletea adapter wires the real one.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}
