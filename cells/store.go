// Package cells implements the packed storage of a linear quadtree: one
// unordered list of entries per cell, addressed by linear cell index.
package cells

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/lqtree/spatial"
)

// Entry is a stored object with its key and bounding box.
type Entry[K, O, B any] struct {
	Key    K
	Object O
	Box    B
}

// Store is a fixed number of cells, each holding a list of entries. Entries
// are addressed by cell index and offset within the cell. Offsets are stable
// until a removal from the same cell relocates the cell's last entry.
type Store[K, O, B any] struct {
	cells [][]Entry[K, O, B]
	size  int
}

// NewStore returns an empty store with the given number of cells.
func NewStore[K, O, B any](cellCount int) *Store[K, O, B] {
	return &Store[K, O, B]{
		cells: make([][]Entry[K, O, B], cellCount),
	}
}

// CellCount returns the number of cells.
func (s *Store[K, O, B]) CellCount() int {
	return len(s.cells)
}

// Len returns the number of entries in all cells.
func (s *Store[K, O, B]) Len() int {
	return s.size
}

// Cell returns the entries of a cell. The returned slice must not be
// modified and is only valid until the next change to the store.
func (s *Store[K, O, B]) Cell(cell int) []Entry[K, O, B] {
	s.checkCell(cell)
	return s.cells[cell]
}

// At returns the entry at the given location.
func (s *Store[K, O, B]) At(cell, offset int) Entry[K, O, B] {
	s.checkOffset(cell, offset)
	return s.cells[cell][offset]
}

// Add appends an entry to a cell and returns its offset.
func (s *Store[K, O, B]) Add(cell int, e Entry[K, O, B]) int {
	s.checkCell(cell)

	s.cells[cell] = append(s.cells[cell], e)
	s.size++
	return len(s.cells[cell]) - 1
}

// RemoveAt removes the entry at the given location by moving the cell's last
// entry into its place.
//
// When an entry was moved, its key is returned with relocated set to true and
// the caller must record that the key now lives at the removed location.
func (s *Store[K, O, B]) RemoveAt(cell, offset int) (moved K, relocated bool) {
	s.checkOffset(cell, offset)

	entries := s.cells[cell]
	last := len(entries) - 1

	if offset != last {
		entries[offset] = entries[last]
		moved = entries[offset].Key
		relocated = true
	}

	entries[last] = Entry[K, O, B]{}
	s.cells[cell] = entries[:last]
	s.size--
	return moved, relocated
}

// Update overwrites the entry at the given location.
func (s *Store[K, O, B]) Update(cell, offset int, e Entry[K, O, B]) {
	s.checkOffset(cell, offset)
	s.cells[cell][offset] = e
}

// Each calls f with every non-empty cell, in ascending cell index order.
func (s *Store[K, O, B]) Each(f func(cell int, entries []Entry[K, O, B])) {
	for cell, entries := range s.cells {
		if len(entries) != 0 {
			f(cell, entries)
		}
	}
}

// Clone returns a deep copy of the store.
func (s *Store[K, O, B]) Clone() *Store[K, O, B] {
	clone := &Store[K, O, B]{
		cells: make([][]Entry[K, O, B], len(s.cells)),
		size:  s.size,
	}

	for cell, entries := range s.cells {
		if len(entries) != 0 {
			clone.cells[cell] = append([]Entry[K, O, B](nil), entries...)
		}
	}
	return clone
}

func (s *Store[K, O, B]) checkCell(cell int) {
	if cell < 0 || cell >= len(s.cells) {
		panic(errors.New("cell index is out of range").
			WithType(spatial.ErrTypeBrokenInvariant).
			WithTag("cell", cell).
			WithTag("cell_count", len(s.cells)))
	}
}

func (s *Store[K, O, B]) checkOffset(cell, offset int) {
	s.checkCell(cell)

	if offset < 0 || offset >= len(s.cells[cell]) {
		panic(errors.New("cell offset is out of range").
			WithType(spatial.ErrTypeBrokenInvariant).
			WithTag("cell", cell).
			WithTag("offset", offset).
			WithTag("cell_len", len(s.cells[cell])))
	}
}
