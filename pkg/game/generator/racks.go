package generator

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"fieldgen/pkg/engine/world"
)

// placeRacks draws plan.Racks distinct rack cells uniformly over the grid.
// The grid is not touched yet; the rack cells become the prohibited start cells.
func (r *run) placeRacks() error {
	size := r.grid.Size()
	r.prohibited = mapset.New[world.Cell]()
	r.racks = make([]world.Cell, 0, r.plan.Racks)

	rejected := 0
	for len(r.racks) < r.plan.Racks {
		if rejected >= r.opts.MaxAttempts {
			return infeasible("placed %d of %d racks", len(r.racks), r.plan.Racks)
		}

		c := world.Cell{X: r.rng.Intn(size), Y: r.rng.Intn(size)}
		if r.prohibited.Has(c) {
			rejected++
			continue
		}

		r.prohibited.Put(c)
		r.racks = append(r.racks, c)
		rejected = 0
	}

	r.log.WithFields(logrus.Fields{
		"racks": len(r.racks),
	}).Debug("racks placed")

	return nil
}

// touchesBorder reports whether any corner of the rack lies on the outer ring
func (r *run) touchesBorder(rack world.Cell) bool {
	for _, p := range rack.Corners() {
		if r.grid.OnBorder(p) {
			return true
		}
	}
	return false
}
