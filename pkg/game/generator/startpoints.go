package generator

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"fieldgen/pkg/engine/world"
)

// pickStartPoints draws opts.StartPoints distinct poses whose cell is not a rack cell.
// Only the rack cell itself is excluded; free cells next to a rack are fair game.
func (r *run) pickStartPoints() error {
	size := r.grid.Size()
	want := r.opts.StartPoints
	if available := len(world.AllHeadings()) * r.freeCells(); want > available {
		return infeasible("%d start poses requested, only %d exist", want, available)
	}

	seen := mapset.New[world.Pose]()
	r.poses = make([]world.Pose, 0, want)

	rejected := 0
	for len(r.poses) < want {
		if rejected >= r.opts.MaxAttempts {
			return infeasible("picked %d of %d start poses", len(r.poses), want)
		}

		pose := world.Pose{
			Cell:    world.Cell{X: r.rng.Intn(size), Y: r.rng.Intn(size)},
			Heading: world.Direction(r.rng.Intn(4)).Heading(),
		}
		if r.prohibited.Has(pose.Cell) || seen.Has(pose) {
			rejected++
			continue
		}

		seen.Put(pose)
		r.poses = append(r.poses, pose)
		rejected = 0
	}

	r.log.WithFields(logrus.Fields{
		"poses": len(r.poses),
	}).Debug("start points picked")

	return nil
}
