package generator

import (
	"github.com/sirupsen/logrus"

	"fieldgen/pkg/engine/world"
)

// Reasons a candidate wall is turned down
const (
	rejectOutside   = "outside"
	rejectDuplicate = "duplicate"
	rejectBorder    = "border"
	rejectClosed    = "closed"
	rejectSplits    = "splits"
)

// buildWalls grows internal walls out of the component territories by
// rejection sampling until plan.Walls internal segments exist, then adds the border.
// No accepted wall may disconnect the free cells or touch a closed territory from outside.
func (r *run) buildWalls() error {
	territories, ids := r.territories()
	if len(ids) == 0 {
		return infeasible("no open territory to grow walls from")
	}

	internal := r.grid.InternalWallCount()
	if internal > r.plan.Walls {
		return infeasible("racks already raise %d walls, plan allows %d", internal, r.plan.Walls)
	}

	free := r.freeCells()
	origin := r.firstFreeCell()
	rejects := map[string]int{}
	rejected := 0

	for internal < r.plan.Walls {
		if rejected >= r.opts.MaxAttempts {
			r.log.WithFields(logrus.Fields{
				"walls":   internal,
				"target":  r.plan.Walls,
				"rejects": rejects,
			}).Debug("wall generation stuck")
			return infeasible("placed %d of %d internal walls", internal, r.plan.Walls)
		}

		id := ids[r.rng.Intn(len(ids))]
		points := territories[id]
		from := points[r.rng.Intn(len(points))]
		to := from.Step(world.Direction(r.rng.Intn(4)))

		wall, reason := r.candidate(id, from, to, free, origin)
		if reason != "" {
			rejects[reason]++
			rejected++
			continue
		}

		r.grid.AddWall(wall)
		if r.grid.Region(to) == world.NoRegion {
			r.grid.SetRegion(to, id)
			territories[id] = append(territories[id], to)
		}
		internal++
		rejected = 0
	}

	for _, w := range r.grid.BorderWalls() {
		r.grid.AddWall(w)
	}

	r.log.WithFields(logrus.Fields{
		"internal": internal,
		"total":    r.grid.WallCount(),
		"rejects":  rejects,
	}).Debug("walls generated")

	return nil
}

// candidate checks the wall from → to grown by territory id and returns the reason it is rejected, if any
func (r *run) candidate(id world.RegionID, from, to world.Point, free int, origin world.Cell) (world.Wall, string) {
	if !r.grid.InBounds(to) {
		return world.Wall{}, rejectOutside
	}

	wall := world.MustWall(from, to)
	switch {
	case r.grid.HasWall(wall):
		return wall, rejectDuplicate
	case r.grid.IsBorderWall(wall):
		return wall, rejectBorder
	case r.registry.IsClosed(id), r.registry.IsClosed(r.grid.Region(to)):
		return wall, rejectClosed
	case r.grid.Reach(origin, r.prohibited, wall) < free:
		return wall, rejectSplits
	}

	return wall, ""
}

// territories collects the claimed points of open components by label.
// The border and closed components never grow walls.
// Labels follow registry order so draws stay reproducible.
func (r *run) territories() (map[world.RegionID][]world.Point, []world.RegionID) {
	territories := make(map[world.RegionID][]world.Point)
	var ids []world.RegionID

	for _, id := range r.registry.Live() {
		if id == BorderID || r.registry.IsClosed(id) {
			continue
		}
		if points := r.grid.PointsOf(id); len(points) > 0 {
			territories[id] = points
			ids = append(ids, id)
		}
	}

	return territories, ids
}
