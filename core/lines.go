package core

import (
	"fmt"
	"sync/atomic"
)

// LineID is a stable identifier for a line, assigned when its root is
// created. Physical indices shift on every edit; LineIDs do not.
type LineID uint32

var nextLineID atomic.Uint32

func newLineID() LineID {
	return LineID(nextLineID.Add(1))
}

// LineInfo describes one derived line: the root's current logical index in
// the buffer and the line's logical length (root inclusive, placeholder
// excluded).
type LineInfo struct {
	ID        LineID
	Root      int
	Length    int
	Direction Direction
}

// LineIndex derives line boundaries from the flat SortBuffer. It is a
// non-owning view: nothing is cached, every query rescans the buffer, so the
// index can never disagree with the buffer's ground truth.
type LineIndex struct {
	buf *SortBuffer
}

func NewLineIndex(buf *SortBuffer) *LineIndex {
	return &LineIndex{buf: buf}
}

// Lines enumerates all lines in buffer order.
func (ix *LineIndex) Lines() []LineInfo {
	var lines []LineInfo
	ix.buf.Each(func(i int, s Sort) bool {
		if s.IsBufferRoot {
			lines = append(lines, LineInfo{
				ID:        s.Line,
				Root:      i,
				Length:    ix.LineLength(i),
				Direction: s.Direction,
			})
		}
		return true
	})
	return lines
}

// RootIndex resolves a LineID to the root's current logical index. A stale
// id yields ErrLineNotFound; callers recover by re-resolving against Lines.
func (ix *LineIndex) RootIndex(id LineID) (int, error) {
	found := -1
	ix.buf.Each(func(i int, s Sort) bool {
		if s.IsBufferRoot && s.Line == id {
			found = i
			return false
		}
		return true
	})
	if found < 0 {
		return 0, fmt.Errorf("RootIndex: %w: line %d", ErrLineNotFound, id)
	}
	return found, nil
}

// LineLength counts the logical elements of the line rooted at rootIdx: from
// the root inclusive up to, excluding, the next root or the buffer end. An
// empty root placeholder never counts. The count is always derived from the
// buffer content itself; it cannot drift from what Insert and Delete did.
func (ix *LineIndex) LineLength(rootIdx int) int {
	root, ok := ix.buf.Get(rootIdx)
	if !ok || !root.IsBufferRoot {
		return 0
	}
	length := 0
	if !root.isPlaceholder() {
		length++
	}
	for i := rootIdx + 1; i < ix.buf.Len(); i++ {
		s, _ := ix.buf.Get(i)
		if s.IsBufferRoot {
			break
		}
		length++
	}
	return length
}

// lineOf returns the LineInfo containing logical index i.
func (ix *LineIndex) lineOf(i int) (LineInfo, bool) {
	rootIdx := -1
	for j := i; j >= 0; j-- {
		s, ok := ix.buf.Get(j)
		if !ok {
			return LineInfo{}, false
		}
		if s.IsBufferRoot {
			rootIdx = j
			break
		}
	}
	if rootIdx < 0 {
		return LineInfo{}, false
	}
	root, _ := ix.buf.Get(rootIdx)
	return LineInfo{
		ID:        root.Line,
		Root:      rootIdx,
		Length:    ix.LineLength(rootIdx),
		Direction: root.Direction,
	}, true
}

// checkPartition verifies that root flags partition the buffer into
// contiguous lines: every non-empty buffer starts with a root. Used by the
// editor's consistency pass.
func (ix *LineIndex) checkPartition() error {
	if ix.buf.IsEmpty() {
		return nil
	}
	first, _ := ix.buf.Get(0)
	if !first.IsBufferRoot {
		return fmt.Errorf("line partition violated: buffer starts with a non-root sort")
	}
	return nil
}
