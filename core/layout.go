package core

import (
	"errors"
	"fmt"
)

// DefaultFallbackAdvance is used for glyphs the metrics provider does not
// know. Roughly half an em at 1000 units per em.
const DefaultFallbackAdvance = 500.0

// Placement is one laid-out sort: where its origin sits in design space and
// how far the pen advances past it.
type Placement struct {
	Sort         SortID
	Glyph        GlyphID
	Pos          Point
	AdvanceWidth float64
}

// LineLayout is the result of laying out one line in logical order.
// Degraded marks that at least one advance width had to be substituted with
// the fallback because the glyph was missing from the font.
type LineLayout struct {
	Line       LineID
	Direction  Direction
	Placements []Placement
	Degraded   bool
}

// LayoutEngine computes design-space positions for a line's sorts by
// accumulating advance widths from the line anchor. It holds no state about
// the buffer: LayoutLine is read-only and idempotent, safe to call once per
// rendered frame.
type LayoutEngine struct {
	metrics  GlyphMetricsProvider
	fallback float64
}

func NewLayoutEngine(metrics GlyphMetricsProvider) *LayoutEngine {
	return &LayoutEngine{
		metrics:  metrics,
		fallback: DefaultFallbackAdvance,
	}
}

// SetFallbackAdvance configures the advance width substituted for missing
// glyphs.
func (e *LayoutEngine) SetFallbackAdvance(w float64) {
	if w > 0 {
		e.fallback = w
	}
}

// advance resolves a sort's advance width. The live provider wins so that
// metric edits elsewhere in the editor show up on the next pass; a missing
// glyph falls back to the configured width and degrades the line.
func (e *LayoutEngine) advance(s Sort) (float64, bool) {
	w, err := e.metrics.AdvanceWidth(s.Glyph)
	if err != nil {
		if errors.Is(err, ErrGlyphNotFound) {
			return e.fallback, true
		}
		return e.fallback, true
	}
	return w, false
}

// LayoutLine walks the line's sorts in logical order and assigns each a
// design-space position. LTR accumulates left to right from the anchor; RTL
// keeps the same logical order but accumulates right to left, so the first
// logical sort sits at the rightmost position. A stale line id yields
// ErrLineNotFound.
func (e *LayoutEngine) LayoutLine(buf *SortBuffer, ix *LineIndex, id LineID) (LineLayout, error) {
	rootIdx, err := ix.RootIndex(id)
	if err != nil {
		return LineLayout{}, fmt.Errorf("LayoutLine: %w", err)
	}
	root, _ := buf.Get(rootIdx)

	layout := LineLayout{
		Line:      id,
		Direction: root.Direction,
	}

	pen := root.Anchor
	for i := rootIdx; i < buf.Len(); i++ {
		s, _ := buf.Get(i)
		if i > rootIdx && s.IsBufferRoot {
			break
		}
		if s.isPlaceholder() {
			continue
		}

		w, degraded := e.advance(s)
		if degraded {
			layout.Degraded = true
		}

		layout.Placements = append(layout.Placements, Placement{
			Sort:         s.ID,
			Glyph:        s.Glyph,
			Pos:          pen,
			AdvanceWidth: w,
		})

		switch root.Direction {
		case RTL:
			pen.X -= w
		default:
			pen.X += w
		}
	}

	return layout, nil
}
