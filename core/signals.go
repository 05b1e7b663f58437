package core

type Signal any

// SortInsertedSignal fires after a glyph lands in a line.
type SortInsertedSignal struct {
	line   LineID
	offset int
}

func (s SortInsertedSignal) Value() (line LineID, offset int) {
	return s.line, s.offset
}

// SortDeletedSignal fires after a sort is removed from a line.
type SortDeletedSignal struct {
	line   LineID
	offset int
}

func (s SortDeletedSignal) Value() (line LineID, offset int) {
	return s.line, s.offset
}

// LineCreatedSignal fires when a new buffer root is placed.
type LineCreatedSignal struct {
	line      LineID
	direction Direction
}

func (s LineCreatedSignal) Value() (line LineID, direction Direction) {
	return s.line, s.direction
}

// LineRemovedSignal fires when a line's last sort is deleted.
type LineRemovedSignal struct {
	line LineID
}

func (s LineRemovedSignal) Value() LineID {
	return s.line
}

// DegradedLineSignal fires when a layout pass had to substitute fallback
// advance widths on a line.
type DegradedLineSignal struct {
	line LineID
}

func (s DegradedLineSignal) Value() LineID {
	return s.line
}

type CopySignal struct {
	totalSorts int
}

func (s CopySignal) Value() int {
	return s.totalSorts
}

type PasteSignal struct {
	totalSorts int
}

func (s PasteSignal) Value() int {
	return s.totalSorts
}

type UndoSignal struct{}

type RedoSignal struct{}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	return m.id, m.value
}

type QuitSignal struct{}

type ErrorSignal EditorError

func (e ErrorSignal) Value() (id ErrorId, err error) {
	return e.id, e.err
}

func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default: // Ignore if the channel is full
	}
}
