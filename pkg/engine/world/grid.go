package world

import (
	"fmt"
	"iter"
)

// RegionID labels the region a corner point belongs to
type RegionID int

// NoRegion marks a corner point that has not been claimed by any region
const NoRegion RegionID = -1

// Grid is a square lattice of Size×Size cells with encapsulated corner point storage
type Grid struct {
	size    int
	regions [][]RegionID
	walls   *WallSet
}

// NewGrid creates an empty grid with size cells per side
func NewGrid(size int) *Grid {
	g := &Grid{}
	g.Build(size)
	return g
}

// Build initializes the grid with the given size; every point is unclaimed and there are no walls
func (g *Grid) Build(size int) {
	if size <= 0 {
		panic("Grid size must be positive")
	}

	g.size = size
	g.regions = make([][]RegionID, size+1)
	for y := range g.regions {
		g.regions[y] = make([]RegionID, size+1)
		for x := range g.regions[y] {
			g.regions[y][x] = NoRegion
		}
	}
	g.walls = NewWallSet()
}

// Size returns the number of cells per side
func (g *Grid) Size() int {
	return g.size
}

// InBounds checks if a corner point lies on the lattice
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X <= g.size && p.Y >= 0 && p.Y <= g.size
}

// HasCell checks if a cell lies inside the grid
func (g *Grid) HasCell(c Cell) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// OnBorder checks if a point lies on the outer ring
func (g *Grid) OnBorder(p Point) bool {
	return g.InBounds(p) && (p.X == 0 || p.Y == 0 || p.X == g.size || p.Y == g.size)
}

// IsBorderWall checks if both endpoints lie on the same outer edge
func (g *Grid) IsBorderWall(w Wall) bool {
	switch {
	case w.Horizontal():
		return w.A.Y == 0 || w.A.Y == g.size
	default:
		return w.A.X == 0 || w.A.X == g.size
	}
}

// Region returns the region of p, or NoRegion if p is out of bounds
func (g *Grid) Region(p Point) RegionID {
	if !g.InBounds(p) {
		return NoRegion
	}
	return g.regions[p.Y][p.X]
}

// SetRegion assigns p to region id
func (g *Grid) SetRegion(p Point, id RegionID) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: point %v", ErrOutOfBounds, p)
	}
	g.regions[p.Y][p.X] = id
	return nil
}

// AddWall inserts w and returns false if it was already present
func (g *Grid) AddWall(w Wall) (bool, error) {
	if !g.InBounds(w.A) || !g.InBounds(w.B) {
		return false, fmt.Errorf("%w: wall %v", ErrOutOfBounds, w)
	}
	return g.walls.Add(w), nil
}

// HasWall returns true if w is present
func (g *Grid) HasWall(w Wall) bool {
	return g.walls.Has(w)
}

// WallCount returns the number of walls, border included
func (g *Grid) WallCount() int {
	return g.walls.Len()
}

// Walls yields every wall in insertion order
func (g *Grid) Walls() iter.Seq[Wall] {
	return g.walls.All()
}

// InternalWallCount returns the number of walls that are not border segments
func (g *Grid) InternalWallCount() int {
	n := 0
	for w := range g.walls.All() {
		if !g.IsBorderWall(w) {
			n++
		}
	}
	return n
}

// BorderWalls returns the 4×Size unit segments tracing the outer ring
func (g *Grid) BorderWalls() []Wall {
	walls := make([]Wall, 0, 4*g.size)
	for i := 0; i < g.size; i++ {
		walls = append(walls,
			Wall{A: Point{X: i, Y: 0}, B: Point{X: i + 1, Y: 0}},
			Wall{A: Point{X: i, Y: g.size}, B: Point{X: i + 1, Y: g.size}},
			Wall{A: Point{X: 0, Y: i}, B: Point{X: 0, Y: i + 1}},
			Wall{A: Point{X: g.size, Y: i}, B: Point{X: g.size, Y: i + 1}},
		)
	}
	return walls
}

// ForEachPoint iterates over all corner points row by row
func (g *Grid) ForEachPoint(fn func(p Point, id RegionID)) {
	for y := 0; y <= g.size; y++ {
		for x := 0; x <= g.size; x++ {
			fn(Point{X: x, Y: y}, g.regions[y][x])
		}
	}
}

// ForEachCell iterates over all cells row by row
func (g *Grid) ForEachCell(fn func(c Cell)) {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			fn(Cell{X: x, Y: y})
		}
	}
}

// PointsOf returns the points claimed by region id, row by row
func (g *Grid) PointsOf(id RegionID) []Point {
	var points []Point
	g.ForEachPoint(func(p Point, region RegionID) {
		if region == id {
			points = append(points, p)
		}
	})
	return points
}

// Blocked reports whether moving out of c towards dir crosses a wall, the
// grid edge, or one of the extra walls
func (g *Grid) Blocked(c Cell, dir Direction, extra ...Wall) bool {
	if !g.HasCell(c.Neighbor(dir)) {
		return true
	}
	side := c.Side(dir)
	if g.walls.Has(side) {
		return true
	}
	for _, w := range extra {
		if w == side {
			return true
		}
	}
	return false
}
