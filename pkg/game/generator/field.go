package generator

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"fieldgen/pkg/engine/world"
)

// Field is a finished localization map. It is read-only; its sequences can be iterated any number of times.
type Field struct {
	seed       int64
	plan       Plan
	grid       *world.Grid
	components []Component
	racks      []world.Cell
	prohibited mapset.Set[world.Cell]
	poses      []world.Pose
}

// freeze hands the run's state over to an immutable Field
func (r *run) freeze(seed int64) *Field {
	return &Field{
		seed:       seed,
		plan:       r.plan,
		grid:       r.grid,
		components: r.registry.Snapshot(),
		racks:      slices.Clone(r.racks),
		prohibited: r.prohibited,
		poses:      slices.Clone(r.poses),
	}
}

// Seed returns the seed of the generator that produced the field
func (f *Field) Seed() int64 {
	return f.seed
}

// Plan returns the rack, component and wall counts of the field
func (f *Field) Plan() Plan {
	return f.plan
}

// Size returns the number of cells per side
func (f *Field) Size() int {
	return f.grid.Size()
}

// Walls yields every wall segment: rack walls, generated walls, then the border
func (f *Field) Walls() iter.Seq[world.Wall] {
	return f.grid.Walls()
}

// WallCount returns the number of wall segments, border included
func (f *Field) WallCount() int {
	return f.grid.WallCount()
}

// HasWall returns true if the segment is walled
func (f *Field) HasWall(w world.Wall) bool {
	return f.grid.HasWall(w)
}

// StartPoints yields the start poses in the order they were drawn
func (f *Field) StartPoints() iter.Seq[world.Pose] {
	return func(yield func(world.Pose) bool) {
		for _, p := range f.poses {
			if !yield(p) {
				return
			}
		}
	}
}

// Racks returns the rack cells in placement order
func (f *Field) Racks() []world.Cell {
	return slices.Clone(f.racks)
}

// IsRack returns true if c is a rack cell
func (f *Field) IsRack(c world.Cell) bool {
	return f.prohibited.Has(c)
}

// Components returns the final component table in rack order
func (f *Field) Components() []Component {
	return slices.Clone(f.components)
}

// Region returns the label of a corner point
func (f *Field) Region(p world.Point) world.RegionID {
	return f.grid.Region(p)
}

// IsClosed reports whether territory labelled id is closed
func (f *Field) IsClosed(id world.RegionID) bool {
	if id < 0 || int(id) >= len(f.components) {
		return false
	}
	c := f.components[id]
	return c.Closed && c.ID == id
}

// FreeCells returns the number of cells not covered by a rack
func (f *Field) FreeCells() int {
	return f.Size()*f.Size() - f.prohibited.Size()
}

// Reach counts the free cells reachable from c through gaps in the walls
func (f *Field) Reach(c world.Cell) int {
	return f.grid.Reach(c, f.prohibited)
}

// Validate audits the field: wall counts and geometry, connectivity of the free area,
// closed territories, rack labels, border ownership and start poses.
func (f *Field) Validate() error {
	return errors.Join(
		f.validateWalls(),
		f.validateConnectivity(),
		f.validateClosed(),
		f.validateRacks(),
		f.validateStartPoints(),
	)
}

func (f *Field) validateWalls() error {
	size := f.Size()
	if want := 4*size + f.plan.Walls; f.WallCount() != want {
		return fmt.Errorf("field has %d walls, want %d", f.WallCount(), want)
	}
	for w := range f.Walls() {
		if !f.grid.InBounds(w.A) || !f.grid.InBounds(w.B) || !w.A.Adjacent(w.B) {
			return fmt.Errorf("malformed wall %v", w)
		}
	}
	for _, w := range f.grid.BorderWalls() {
		if !f.HasWall(w) {
			return fmt.Errorf("border wall %v missing", w)
		}
	}
	return nil
}

func (f *Field) validateConnectivity() error {
	if pockets := f.grid.Pockets(f.prohibited); pockets != 1 {
		return fmt.Errorf("free area split into %d pockets", pockets)
	}
	return nil
}

func (f *Field) validateClosed() error {
	for w := range f.Walls() {
		a, b := f.Region(w.A), f.Region(w.B)
		if a != b && (f.IsClosed(a) || f.IsClosed(b)) {
			return fmt.Errorf("wall %v joins closed territory across regions %d and %d", w, a, b)
		}
	}
	return nil
}

func (f *Field) validateRacks() error {
	for i, rack := range f.racks {
		id := f.components[i].ID
		for _, p := range rack.Corners() {
			if got := f.Region(p); got != id {
				return fmt.Errorf("rack %v corner %v labelled %d, want %d", rack, p, got, id)
			}
		}
		for _, side := range rack.Sides() {
			if !f.HasWall(side) {
				return fmt.Errorf("rack %v side %v missing", rack, side)
			}
		}
	}

	var err error
	f.grid.ForEachPoint(func(p world.Point, id world.RegionID) {
		if err == nil && f.grid.OnBorder(p) && id != BorderID {
			err = fmt.Errorf("ring point %v labelled %d", p, id)
		}
	})
	return err
}

func (f *Field) validateStartPoints() error {
	seen := mapset.New[world.Pose]()
	for _, p := range f.poses {
		switch {
		case !f.grid.HasCell(p.Cell):
			return fmt.Errorf("start pose %v off the grid", p)
		case f.IsRack(p.Cell):
			return fmt.Errorf("start pose %v on a rack", p)
		case !p.Heading.IsValid():
			return fmt.Errorf("start pose %v has invalid heading", p)
		case seen.Has(p):
			return fmt.Errorf("start pose %v drawn twice", p)
		}
		seen.Put(p)
	}
	return nil
}
