package core

import (
	"errors"
	"log"
)

var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrGlyphNotFound    = errors.New("glyph not found")
	ErrLineNotFound     = errors.New("line not found")
	ErrInvalidGlyphName = errors.New("invalid glyph name")
	ErrStartOfLine      = errors.New("start of line")
	ErrEndOfLine        = errors.New("end of line")
	ErrFirstLine        = errors.New("first line")
	ErrLastLine         = errors.New("last line")
	ErrNoActiveLine     = errors.New("no active line")
	ErrNoSelection      = errors.New("no selection")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
)

type ErrorId int

const (
	ErrIndexOutOfRangeId ErrorId = iota
	ErrGlyphNotFoundId
	ErrLineNotFoundId
	ErrInvalidGlyphNameId
	ErrStartOfLineId
	ErrEndOfLineId
	ErrFirstLineId
	ErrLastLineId
	ErrNoActiveLineId
	ErrNoSelectionId
	ErrUndoFailedId
	ErrRedoFailedId
	ErrCopyFailedId
	ErrPasteFailedId
)

// EditorError pairs a dispatchable id with the underlying error, so UI
// consumers can react per class without string matching.
type EditorError struct {
	id  ErrorId
	err error
}

func (e *EditorError) Error() string { return e.err.Error() }
func (e *EditorError) Unwrap() error { return e.err }
func (e *EditorError) Id() ErrorId   { return e.id }

func (e *editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
