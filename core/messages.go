package core

import "log"

var (
	EmptyMessage         = ""
	SortsCopiedMessage   = "sorts copied"
	SortsPastedMessage   = "sorts pasted"
	LineCreatedMessage   = "line created"
	GlyphMissingMessage  = "glyph unavailable"
	NothingToUndoMessage = "nothing to undo"
	NothingToRedoMessage = "nothing to redo"
)

func (e *editor) DispatchMessage(args ...string) {
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	select {
	case e.updateSignal <- MessageSignal{id, value}:
	default:
		log.Println("Channel is full, unable to send message signal")
	}
}
