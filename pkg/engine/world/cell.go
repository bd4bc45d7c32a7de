// Package world provides generic 2D grid primitives for walled lattice maps.
// A map of size N has N×N cells and (N+1)×(N+1) corner points; walls are
// unit segments between grid-axis-adjacent corner points.
package world

import "fmt"

// Point is a grid corner coordinate
type Point struct {
	X int
	Y int
}

// Step returns the point one unit away in the given direction
func (p Point) Step(dir Direction) Point {
	rowDelta, colDelta := dir.Delta()
	return Point{X: p.X + colDelta, Y: p.Y + rowDelta}
}

// Less orders points by row, then by column
func (p Point) Less(o Point) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Adjacent reports whether o is exactly one grid axis step away from p
func (p Point) Adjacent(o Point) bool {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx+dy*dy == 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cell is a cell index. Cell (x, y) is the unit square whose top-left corner is Point (x, y).
type Cell struct {
	X int
	Y int
}

// Corners returns the four corner points of the cell: top-left, top-right, bottom-left, bottom-right
func (c Cell) Corners() [4]Point {
	return [4]Point{
		{X: c.X, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X + 1, Y: c.Y + 1},
	}
}

// Neighbor returns the adjacent cell in the given direction
func (c Cell) Neighbor(dir Direction) Cell {
	rowDelta, colDelta := dir.Delta()
	return Cell{X: c.X + colDelta, Y: c.Y + rowDelta}
}

// Side returns the wall segment separating the cell from its neighbor in dir
func (c Cell) Side(dir Direction) Wall {
	corners := c.Corners()
	switch dir {
	case North:
		return Wall{A: corners[0], B: corners[1]}
	case East:
		return Wall{A: corners[1], B: corners[3]}
	case South:
		return Wall{A: corners[2], B: corners[3]}
	default:
		return Wall{A: corners[0], B: corners[2]}
	}
}

// Sides returns the four boundary segments of the cell
func (c Cell) Sides() []Wall {
	sides := make([]Wall, 0, 4)
	for _, dir := range AllDirections() {
		sides = append(sides, c.Side(dir))
	}
	return sides
}

// Touches reports whether the cells are equal or adjacent horizontally, vertically or diagonally
func (c Cell) Touches(o Cell) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.X, c.Y)
}

// Pose is a robot start position: a cell plus the heading the robot faces
type Pose struct {
	Cell
	Heading Heading
}

func (p Pose) String() string {
	return fmt.Sprintf("%v@%d", p.Cell, p.Heading)
}
