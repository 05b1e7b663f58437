package core

import "fmt"

const initialBufferCapacity = 64

// SortBuffer is a gap buffer holding every sort of an editing session in one
// flat array. All lines share it; the LineIndex derives line boundaries from
// the buffer-root flags.
//
// The gap is tracked as explicit start/end indices into the backing slice,
// never pointers. Logical indices always skip the gap, so callers never see
// it. Invariant: 0 <= gapStart <= gapEnd <= len(data).
type SortBuffer struct {
	data     []Sort
	gapStart int
	gapEnd   int
}

// NewSortBuffer creates an empty buffer with a small initial gap.
func NewSortBuffer() *SortBuffer {
	return &SortBuffer{
		data:   make([]Sort, initialBufferCapacity),
		gapEnd: initialBufferCapacity,
	}
}

// FromSorts builds a buffer holding the given sorts, with the gap after them.
// Used when restoring history snapshots and loading sessions.
func FromSorts(sorts []Sort) *SortBuffer {
	capacity := max(len(sorts)*2, initialBufferCapacity)
	data := make([]Sort, capacity)
	copy(data, sorts)
	return &SortBuffer{
		data:     data,
		gapStart: len(sorts),
		gapEnd:   capacity,
	}
}

// Len returns the logical length: backing length minus the gap.
func (b *SortBuffer) Len() int {
	return len(b.data) - (b.gapEnd - b.gapStart)
}

func (b *SortBuffer) IsEmpty() bool {
	return b.Len() == 0
}

// physical maps a logical index to its slot in the backing array.
func (b *SortBuffer) physical(i int) int {
	if i < b.gapStart {
		return i
	}
	return i + (b.gapEnd - b.gapStart)
}

// Get returns the sort at logical index i.
func (b *SortBuffer) Get(i int) (Sort, bool) {
	if i < 0 || i >= b.Len() {
		return Sort{}, false
	}
	return b.data[b.physical(i)], true
}

// Set replaces the sort at logical index i.
func (b *SortBuffer) Set(i int, s Sort) error {
	if i < 0 || i >= b.Len() {
		return fmt.Errorf("Set: %w: index %d, length %d", ErrIndexOutOfRange, i, b.Len())
	}
	b.data[b.physical(i)] = s
	return nil
}

// at returns a pointer into the backing array for in-place mutation of
// per-root state. Valid only until the next insert or delete.
func (b *SortBuffer) at(i int) *Sort {
	if i < 0 || i >= b.Len() {
		return nil
	}
	return &b.data[b.physical(i)]
}

// moveGapTo relocates the gap so that gapStart == pos. Cost is proportional
// to the distance moved, which is what makes edits near the cursor cheap.
func (b *SortBuffer) moveGapTo(pos int) {
	if pos == b.gapStart {
		return
	}
	gapSize := b.gapEnd - b.gapStart
	if pos < b.gapStart {
		// Shift the span [pos, gapStart) to the far side of the gap.
		n := b.gapStart - pos
		copy(b.data[b.gapEnd-n:b.gapEnd], b.data[pos:b.gapStart])
	} else {
		// Shift the span [gapEnd, gapEnd+distance) down before the gap.
		n := pos - b.gapStart
		copy(b.data[b.gapStart:b.gapStart+n], b.data[b.gapEnd:b.gapEnd+n])
	}
	b.gapStart = pos
	b.gapEnd = pos + gapSize
}

// grow doubles the backing array, keeping logical order and re-opening the
// gap between the two halves.
func (b *SortBuffer) grow() {
	oldCap := len(b.data)
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = initialBufferCapacity
	}
	data := make([]Sort, newCap)
	copy(data, b.data[:b.gapStart])
	tail := oldCap - b.gapEnd
	copy(data[newCap-tail:], b.data[b.gapEnd:])
	b.data = data
	b.gapEnd = newCap - tail
}

// Insert places s at logical index i, shifting everything at or after i one
// position right. Inserting at the gap edge is O(1); anywhere else pays for
// relocating the gap first.
func (b *SortBuffer) Insert(i int, s Sort) error {
	if i < 0 || i > b.Len() {
		return fmt.Errorf("Insert: %w: index %d, length %d", ErrIndexOutOfRange, i, b.Len())
	}
	if b.gapStart >= b.gapEnd {
		b.grow()
	}
	b.moveGapTo(i)
	b.data[b.gapStart] = s
	b.gapStart++
	return nil
}

// Delete removes exactly the sort at logical index i, not a neighbour, by
// absorbing its slot into the gap, and returns it.
func (b *SortBuffer) Delete(i int) (Sort, error) {
	if i < 0 || i >= b.Len() {
		return Sort{}, fmt.Errorf("Delete: %w: index %d, length %d", ErrIndexOutOfRange, i, b.Len())
	}
	b.moveGapTo(i)
	deleted := b.data[b.gapEnd]
	b.data[b.gapEnd] = Sort{}
	b.gapEnd++
	return deleted, nil
}

// Each walks the buffer in logical order, skipping the gap. The walk stops
// early if fn returns false.
func (b *SortBuffer) Each(fn func(i int, s Sort) bool) {
	n := b.Len()
	for i := 0; i < n; i++ {
		if !fn(i, b.data[b.physical(i)]) {
			return
		}
	}
}

// Sorts returns a copy of the logical content. Used for history snapshots.
func (b *SortBuffer) Sorts() []Sort {
	out := make([]Sort, 0, b.Len())
	b.Each(func(_ int, s Sort) bool {
		out = append(out, s)
		return true
	})
	return out
}

// Reset replaces the whole content in place, re-opening the gap after it.
func (b *SortBuffer) Reset(sorts []Sort) {
	capacity := max(len(sorts)*2, initialBufferCapacity)
	if capacity > len(b.data) {
		b.data = make([]Sort, capacity)
	} else {
		clear(b.data)
	}
	copy(b.data, sorts)
	b.gapStart = len(sorts)
	b.gapEnd = len(b.data)
}

// Find returns the logical index of the first sort with the given glyph at
// or after from.
func (b *SortBuffer) Find(glyph GlyphID, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < b.Len(); i++ {
		if b.data[b.physical(i)].Glyph == glyph {
			return i, true
		}
	}
	return 0, false
}

// checkInvariants verifies the standing gap invariants. Exercised by tests
// and by the editor's consistency pass after every mutation.
func (b *SortBuffer) checkInvariants() error {
	if b.gapStart < 0 || b.gapStart > b.gapEnd || b.gapEnd > len(b.data) {
		return fmt.Errorf("gap invariant violated: start=%d end=%d cap=%d", b.gapStart, b.gapEnd, len(b.data))
	}
	return nil
}
