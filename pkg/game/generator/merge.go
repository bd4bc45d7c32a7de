package generator

import (
	"github.com/sirupsen/logrus"

	"fieldgen/pkg/engine/world"
)

// mergeComponents consolidates the per-rack components:
// racks on the outer ring join the border, touching racks share a component,
// and random pairs are merged until the plan's component count is reached.
func (r *run) mergeComponents() error {
	r.registry = NewRegistry(len(r.racks))

	// A rack corner on the ring belongs to the border, so the whole rack does
	for i, rack := range r.racks {
		if r.touchesBorder(rack) {
			r.registry.Merge(r.registry.ID(i), BorderID)
		}
	}

	// Racks that touch side or corner never end up split across components
	for i := range r.racks {
		for j := i + 1; j < len(r.racks); j++ {
			if r.racks[i].Touches(r.racks[j]) {
				r.union(j, i)
			}
		}
	}

	live := len(r.registry.Live())
	adjacent := live

	// Random reduction; picking the same component twice is a free no-op.
	// Every successful merge lowers live by one, so the loop ends once live reaches the target.
	rejected := 0
	for live > r.plan.Components {
		if rejected >= r.opts.MaxAttempts {
			return infeasible("stuck at %d components, target %d", live, r.plan.Components)
		}
		a := r.rng.Intn(len(r.racks))
		b := r.rng.Intn(len(r.racks))
		if !r.union(a, b) {
			rejected++
			continue
		}
		live--
		rejected = 0
	}

	r.log.WithFields(logrus.Fields{
		"after_adjacency": adjacent,
		"live":            live,
		"target":          r.plan.Components,
	}).Debug("components merged")

	return nil
}

// union merges rack a's component into rack b's and returns false if they already match.
// The border label is never merged away.
func (r *run) union(a, b int) bool {
	src, dst := r.registry.ID(a), r.registry.ID(b)
	if src == dst {
		return false
	}
	if src == BorderID {
		src, dst = dst, src
	}
	r.registry.Merge(src, dst)
	return true
}

// paint claims the ring for the border and each rack's corners for its component,
// then raises the rack walls. A rack layout that already seals off free cells is infeasible.
func (r *run) paint() error {
	for _, w := range r.grid.BorderWalls() {
		r.grid.SetRegion(w.A, BorderID)
		r.grid.SetRegion(w.B, BorderID)
	}

	for i, rack := range r.racks {
		id := r.registry.ID(i)
		for _, p := range rack.Corners() {
			if err := r.grid.SetRegion(p, id); err != nil {
				return err
			}
		}
		for _, side := range rack.Sides() {
			if _, err := r.grid.AddWall(side); err != nil {
				return err
			}
		}
	}

	if pockets := r.grid.Pockets(r.prohibited); pockets != 1 {
		return infeasible("rack layout splits the free area into %d pockets", pockets)
	}

	return nil
}

// freeCells returns the number of cells not covered by a rack
func (r *run) freeCells() int {
	size := r.grid.Size()
	return size*size - r.prohibited.Size()
}

// firstFreeCell returns the first free cell in row order
func (r *run) firstFreeCell() world.Cell {
	var first *world.Cell
	r.grid.ForEachCell(func(c world.Cell) {
		if first == nil && !r.prohibited.Has(c) {
			first = &c
		}
	})
	return *first
}
