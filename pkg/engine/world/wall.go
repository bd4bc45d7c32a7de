package world

import (
	"errors"
	"fmt"
	"iter"

	"github.com/zyedidia/generic/mapset"
)

var (
	// ErrNotAdjacent indicates wall endpoints that are not one grid step apart.
	ErrNotAdjacent = errors.New("world: wall endpoints must be grid-axis adjacent")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("world: coordinate out of bounds")
)

// Wall is an unordered unit segment between two adjacent corner points.
// Walls built with NewWall or Cell.Side keep A before B so equal segments compare equal.
type Wall struct {
	A Point
	B Point
}

// NewWall returns the canonical wall between a and b
func NewWall(a, b Point) (Wall, error) {
	if !a.Adjacent(b) {
		return Wall{}, fmt.Errorf("%w: %v-%v", ErrNotAdjacent, a, b)
	}
	if b.Less(a) {
		a, b = b, a
	}
	return Wall{A: a, B: b}, nil
}

// MustWall is NewWall for endpoints known to be adjacent
func MustWall(a, b Point) Wall {
	w, err := NewWall(a, b)
	if err != nil {
		panic(err)
	}
	return w
}

// Horizontal reports whether the wall runs along a row
func (w Wall) Horizontal() bool {
	return w.A.Y == w.B.Y
}

func (w Wall) String() string {
	return fmt.Sprintf("%v-%v", w.A, w.B)
}

// WallSet is an insertion-ordered set of walls. Walls are never removed.
type WallSet struct {
	order []Wall
	index mapset.Set[Wall]
}

// NewWallSet creates an empty wall set
func NewWallSet() *WallSet {
	return &WallSet{index: mapset.New[Wall]()}
}

// Add inserts w and returns false if it was already present
func (s *WallSet) Add(w Wall) bool {
	if s.index.Has(w) {
		return false
	}
	s.index.Put(w)
	s.order = append(s.order, w)
	return true
}

// Has returns true if w is in the set
func (s *WallSet) Has(w Wall) bool {
	return s.index.Has(w)
}

// Len returns the number of walls
func (s *WallSet) Len() int {
	return len(s.order)
}

// All yields the walls in insertion order
func (s *WallSet) All() iter.Seq[Wall] {
	return func(yield func(Wall) bool) {
		for _, w := range s.order {
			if !yield(w) {
				return
			}
		}
	}
}
