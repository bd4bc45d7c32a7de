package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldgen/pkg/engine/world"
)

func TestRegistry_MergeRewritesEveryCarrier(t *testing.T) {
	r := NewRegistry(4)

	assert.Equal(t, 1, r.Merge(1, 0))
	assert.Equal(t, 1, r.Merge(2, 3))
	// Both components labelled 3 follow the merge, not just the first one found
	assert.Equal(t, 2, r.Merge(3, 0))

	for i := 0; i < r.Len(); i++ {
		assert.Equal(t, world.RegionID(0), r.ID(i), "component %d", i)
	}
	assert.Equal(t, []world.RegionID{0}, r.Live())
	assert.True(t, r.Independent(0))
	assert.False(t, r.Independent(3), "component 3 was relabelled")
}

func TestRegistry_MergeSameLabelIsNoop(t *testing.T) {
	r := NewRegistry(2)
	assert.Equal(t, 0, r.Merge(1, 1))
	assert.Equal(t, []world.RegionID{0, 1}, r.Live())
}

func TestRegistry_MergeIntoBorder(t *testing.T) {
	r := NewRegistry(3)
	r.Merge(2, BorderID)
	r.Merge(0, BorderID)

	assert.Equal(t, []world.RegionID{BorderID, 1}, r.Live())
	assert.False(t, r.Independent(0))
	assert.True(t, r.Independent(1))
}

func TestRegistry_MergeUnknownPanics(t *testing.T) {
	r := NewRegistry(3)
	r.Merge(1, 0)

	require.Panics(t, func() { r.Merge(1, 2) }, "label 1 is no longer carried")
	require.Panics(t, func() { r.Merge(2, 9) }, "label 9 never existed")
}

func TestRegistry_Closed(t *testing.T) {
	r := NewRegistry(3)
	r.Merge(2, 1)
	r.Close(1)

	assert.True(t, r.IsClosed(1))
	assert.False(t, r.IsClosed(0))
	assert.False(t, r.IsClosed(BorderID))
	assert.False(t, r.IsClosed(world.NoRegion))
	require.Panics(t, func() { r.Close(2) }, "absorbed components cannot be closed")

	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.True(t, snap[1].Closed)
	assert.Equal(t, world.RegionID(1), snap[2].ID)
}
