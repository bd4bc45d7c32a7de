package world

import (
	"errors"
	"slices"
	"testing"
)

func TestNewWall_Canonical(t *testing.T) {
	a := Point{X: 2, Y: 3}
	b := Point{X: 2, Y: 2}
	w1, err := NewWall(a, b)
	if err != nil {
		t.Fatalf("NewWall error = %v", err)
	}
	w2, _ := NewWall(b, a)
	if w1 != w2 {
		t.Errorf("NewWall(a,b) = %v, NewWall(b,a) = %v, want equal", w1, w2)
	}
	if w1.A != b {
		t.Errorf("wall starts at %v, want %v", w1.A, b)
	}
	if w1.Horizontal() {
		t.Error("vertical wall reported horizontal")
	}
}

func TestNewWall_NotAdjacent(t *testing.T) {
	cases := []struct {
		name string
		a, b Point
	}{
		{"Same", Point{X: 1, Y: 1}, Point{X: 1, Y: 1}},
		{"Diagonal", Point{X: 1, Y: 1}, Point{X: 2, Y: 2}},
		{"TwoApart", Point{X: 0, Y: 0}, Point{X: 2, Y: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewWall(tc.a, tc.b); !errors.Is(err, ErrNotAdjacent) {
				t.Errorf("NewWall(%v, %v) error = %v, want ErrNotAdjacent", tc.a, tc.b, err)
			}
		})
	}
}

func TestCellSides_MatchNewWall(t *testing.T) {
	c := Cell{X: 3, Y: 1}
	for _, dir := range AllDirections() {
		side := c.Side(dir)
		canonical := MustWall(side.B, side.A)
		if side != canonical {
			t.Errorf("Side(%v) = %v, not canonical (%v)", dir, side, canonical)
		}
		// The neighbor sees the same segment from the other side
		if !slices.Contains(c.Neighbor(dir).Sides(), side) {
			t.Errorf("neighbor of %v towards %v lacks side %v", c, dir, side)
		}
	}
}

func TestHeading_DirectionRoundTrip(t *testing.T) {
	for _, dir := range AllDirections() {
		h := dir.Heading()
		if !h.IsValid() {
			t.Errorf("%v heading %d is not valid", dir, h)
		}
		if h.Direction() != dir {
			t.Errorf("%v -> %d -> %v", dir, h, h.Direction())
		}
	}
	if Heading(45).IsValid() {
		t.Error("Heading(45).IsValid() = true")
	}
	// Heading 0 faces growing Y
	if rowDelta, _ := Heading0.Direction().Delta(); rowDelta != 1 {
		t.Errorf("Heading0 row delta = %d, want 1", rowDelta)
	}
}

func TestCellTouches(t *testing.T) {
	c := Cell{X: 2, Y: 2}
	for _, o := range []Cell{{X: 1, Y: 1}, {X: 3, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 1}} {
		if !c.Touches(o) {
			t.Errorf("%v.Touches(%v) = false", c, o)
		}
	}
	for _, o := range []Cell{{X: 0, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 0}} {
		if c.Touches(o) {
			t.Errorf("%v.Touches(%v) = true", c, o)
		}
	}
}
