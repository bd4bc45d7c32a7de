package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"fieldgen/pkg/engine/world"
)

// newTestRun builds a bare run on an empty grid with its own random stream.
func newTestRun(size int, plan Plan, seed int64) *run {
	opts := DefaultOptions()
	opts.MapSize = size
	return &run{
		rng:  rand.New(rand.NewSource(seed)),
		opts: opts,
		log:  opts.logger(),
		plan: plan,
		grid: world.NewGrid(size),
	}
}

// withRacks places the given racks instead of drawing them.
func (r *run) withRacks(racks ...world.Cell) *run {
	r.racks = racks
	r.prohibited = mapset.New[world.Cell]()
	for _, c := range racks {
		r.prohibited.Put(c)
	}
	r.plan.Racks = len(racks)
	return r
}

func TestPlaceRacks_Distinct(t *testing.T) {
	r := newTestRun(4, Plan{Racks: 15}, 1)
	require.NoError(t, r.placeRacks())

	require.Len(t, r.racks, 15)
	assert.Equal(t, 15, r.prohibited.Size())
	for _, c := range r.racks {
		assert.True(t, r.grid.HasCell(c), "rack %v off the grid", c)
	}
	assert.Equal(t, 0, r.grid.WallCount(), "placement must not touch the grid")
}

func TestMergeComponents_TouchingRacksShareComponent(t *testing.T) {
	r := newTestRun(8, Plan{Components: 4}, 1).withRacks(
		world.Cell{X: 2, Y: 2},
		world.Cell{X: 3, Y: 3}, // diagonal to the first
		world.Cell{X: 5, Y: 5},
		world.Cell{X: 5, Y: 2},
	)
	require.NoError(t, r.mergeComponents())

	assert.Equal(t, r.registry.ID(0), r.registry.ID(1))
	assert.NotEqual(t, r.registry.ID(0), r.registry.ID(2))
	assert.NotEqual(t, r.registry.ID(2), r.registry.ID(3))
	assert.Len(t, r.registry.Live(), 3)
	assert.True(t, r.registry.Independent(0))
	assert.False(t, r.registry.Independent(1))
}

func TestMergeComponents_ReducesToTarget(t *testing.T) {
	r := newTestRun(8, Plan{Components: 2}, 7).withRacks(
		world.Cell{X: 1, Y: 1},
		world.Cell{X: 4, Y: 1},
		world.Cell{X: 1, Y: 4},
		world.Cell{X: 4, Y: 4},
		world.Cell{X: 6, Y: 6},
	)
	require.NoError(t, r.mergeComponents())
	assert.Len(t, r.registry.Live(), 2)
}

func TestMergeComponents_BorderRacksJoinBorder(t *testing.T) {
	r := newTestRun(6, Plan{Components: 2}, 1).withRacks(
		world.Cell{X: 0, Y: 3},
		world.Cell{X: 2, Y: 2},
	)
	require.NoError(t, r.mergeComponents())
	require.NoError(t, r.paint())

	assert.Equal(t, BorderID, r.registry.ID(0))
	for _, p := range r.racks[0].Corners() {
		assert.Equal(t, BorderID, r.grid.Region(p), "corner %v", p)
	}
	for _, p := range r.racks[1].Corners() {
		assert.Equal(t, world.RegionID(1), r.grid.Region(p), "corner %v", p)
	}
	r.grid.ForEachPoint(func(p world.Point, id world.RegionID) {
		if r.grid.OnBorder(p) {
			assert.Equal(t, BorderID, id, "ring point %v", p)
		}
	})
	for _, rack := range r.racks {
		for _, side := range rack.Sides() {
			assert.True(t, r.grid.HasWall(side), "rack %v side %v", rack, side)
		}
	}
}

func TestPaint_SealedCornerIsInfeasible(t *testing.T) {
	r := newTestRun(4, Plan{Components: 1}, 1).withRacks(
		world.Cell{X: 0, Y: 1},
		world.Cell{X: 1, Y: 0},
	)
	require.NoError(t, r.mergeComponents())
	assert.ErrorIs(t, r.paint(), ErrGenerationInfeasible)
}

func TestCloseComponents(t *testing.T) {
	racks := []world.Cell{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 5, Y: 5}}

	r := newTestRun(8, Plan{Components: 3}, 1).withRacks(racks...)
	r.opts.CyclicProbability = 1
	require.NoError(t, r.mergeComponents())
	r.closeComponents()
	assert.True(t, r.registry.IsClosed(0))
	assert.False(t, r.registry.Snapshot()[1].Closed, "absorbed component stays open")
	assert.True(t, r.registry.IsClosed(2))

	r = newTestRun(8, Plan{Components: 3}, 1).withRacks(racks...)
	r.opts.CyclicProbability = 0
	require.NoError(t, r.mergeComponents())
	r.closeComponents()
	for _, c := range r.registry.Snapshot() {
		assert.False(t, c.Closed)
	}
}

func TestBuildWalls_ClosedTerritoryUntouched(t *testing.T) {
	r := newTestRun(6, Plan{Components: 2, Walls: 16}, 3).withRacks(
		world.Cell{X: 1, Y: 1},
		world.Cell{X: 3, Y: 3},
	)
	require.NoError(t, r.mergeComponents())
	require.NoError(t, r.paint())
	r.registry.Close(0)
	require.NoError(t, r.buildWalls())

	assert.Equal(t, 16, r.grid.InternalWallCount())
	assert.Equal(t, 16+4*6, r.grid.WallCount())
	assert.Equal(t, 4, len(r.grid.PointsOf(0)), "closed territory never grows")
	for w := range r.grid.Walls() {
		a, b := r.grid.Region(w.A), r.grid.Region(w.B)
		if a == 0 || b == 0 {
			assert.Equal(t, a, b, "wall %v leaves the closed rack", w)
		}
	}
	assert.Equal(t, r.freeCells(), r.grid.Reach(r.firstFreeCell(), r.prohibited))
}

func TestTerritories_OpenComponentsInRegistryOrder(t *testing.T) {
	r := newTestRun(6, Plan{Components: 2, Walls: 16}, 3).withRacks(
		world.Cell{X: 3, Y: 3},
		world.Cell{X: 1, Y: 1},
	)
	require.NoError(t, r.mergeComponents())
	require.NoError(t, r.paint())

	territories, ids := r.territories()
	assert.Equal(t, []world.RegionID{0, 1}, ids)
	assert.Equal(t, r.grid.PointsOf(0), territories[0])
	assert.Equal(t, world.Point{X: 3, Y: 3}, territories[0][0])
	assert.NotContains(t, territories, BorderID)

	r.registry.Close(0)
	territories, ids = r.territories()
	assert.Equal(t, []world.RegionID{1}, ids)
	assert.Len(t, territories[1], 4)
}

func TestBuildWalls_TooFewWallsForRacks(t *testing.T) {
	r := newTestRun(6, Plan{Components: 1, Walls: 3}, 1).withRacks(world.Cell{X: 2, Y: 2})
	require.NoError(t, r.mergeComponents())
	require.NoError(t, r.paint())
	assert.ErrorIs(t, r.buildWalls(), ErrGenerationInfeasible)
}

func TestBuildWalls_GivesUpWhenEveryCandidateIsRejected(t *testing.T) {
	// Every internal segment walled would cut the free cells apart
	r := newTestRun(6, Plan{Components: 1, Walls: InternalSegments(6)}, 1).withRacks(world.Cell{X: 2, Y: 2})
	r.opts.MaxAttempts = 100
	require.NoError(t, r.mergeComponents())
	require.NoError(t, r.paint())

	err := r.buildWalls()
	assert.ErrorIs(t, err, ErrGenerationInfeasible)
	assert.ErrorContains(t, err, "internal walls")
	assert.Less(t, r.grid.InternalWallCount(), InternalSegments(6))
	assert.Equal(t, r.freeCells(), r.grid.Reach(r.firstFreeCell(), r.prohibited), "accepted walls keep the field connected")
}

func TestBuildWalls_NoTerritory(t *testing.T) {
	// The only rack sits on the ring, so nothing may grow walls
	r := newTestRun(4, Plan{Components: 1, Walls: 8}, 1).withRacks(world.Cell{X: 0, Y: 0})
	require.NoError(t, r.mergeComponents())
	require.NoError(t, r.paint())
	assert.ErrorIs(t, r.buildWalls(), ErrGenerationInfeasible)
}

func TestPickStartPoints_AvoidRacks(t *testing.T) {
	r := newTestRun(3, Plan{}, 5).withRacks(world.Cell{X: 0, Y: 0}, world.Cell{X: 2, Y: 1})
	// Every pose that exists: 7 free cells, 4 headings
	r.opts.StartPoints = 28
	require.NoError(t, r.pickStartPoints())

	require.Len(t, r.poses, 28)
	seen := mapset.New[world.Pose]()
	for _, p := range r.poses {
		assert.False(t, r.prohibited.Has(p.Cell), "pose %v on a rack", p)
		assert.True(t, p.Heading.IsValid())
		assert.False(t, seen.Has(p), "pose %v twice", p)
		seen.Put(p)
	}

	r.opts.StartPoints = 29
	assert.ErrorIs(t, r.pickStartPoints(), ErrGenerationInfeasible)
}
