package world

import (
	"github.com/spakin/disjoint"
	"github.com/zyedidia/generic/mapset"
)

// Reach counts the cells reachable from start by BFS, moving only through
// gaps with no wall. Cells in blocked are never entered. extra walls are
// treated as present for this query only.
func (g *Grid) Reach(start Cell, blocked mapset.Set[Cell], extra ...Wall) int {
	if !g.HasCell(start) || blocked.Has(start) {
		return 0
	}

	visited := mapset.New[Cell]()
	visited.Put(start)
	queue := []Cell{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range AllDirections() {
			if g.Blocked(current, dir, extra...) {
				continue
			}
			next := current.Neighbor(dir)
			if visited.Has(next) || blocked.Has(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}

	return visited.Size()
}

// Pockets counts the connected regions formed by cells outside blocked,
// using a union-find over open gaps. A fully connected free area has one pocket.
func (g *Grid) Pockets(blocked mapset.Set[Cell]) int {
	elements := make(map[Cell]*disjoint.Element)
	g.ForEachCell(func(c Cell) {
		if !blocked.Has(c) {
			elements[c] = disjoint.NewElement()
		}
	})

	// Joining towards East and South covers every gap once
	for c, e := range elements {
		for _, dir := range []Direction{East, South} {
			if g.Blocked(c, dir) {
				continue
			}
			if other, ok := elements[c.Neighbor(dir)]; ok {
				disjoint.Union(e, other)
			}
		}
	}

	roots := mapset.New[*disjoint.Element]()
	for _, e := range elements {
		roots.Put(e.Find())
	}
	return roots.Size()
}
