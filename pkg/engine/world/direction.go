package world

// Direction represents a cardinal direction
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Delta returns the row and column offsets for this direction.
// Rows grow with Y, columns with X.
func (d Direction) Delta() (rowDelta, colDelta int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Heading returns the robot heading that faces this direction.
// Heading 0 looks towards growing Y, -90 towards growing X.
func (d Direction) Heading() Heading {
	switch d {
	case North:
		return Heading180
	case East:
		return HeadingMinus90
	case West:
		return Heading90
	default:
		return Heading0
	}
}

// Heading is a robot orientation in degrees.
type Heading int

// Headings a start pose may carry
const (
	Heading0       Heading = 0
	Heading90      Heading = 90
	HeadingMinus90 Heading = -90
	Heading180     Heading = 180
)

// AllHeadings returns the valid headings in draw order
func AllHeadings() []Heading {
	return []Heading{Heading0, Heading90, HeadingMinus90, Heading180}
}

// IsValid returns true if h is one of the four grid-aligned headings
func (h Heading) IsValid() bool {
	switch h {
	case Heading0, Heading90, HeadingMinus90, Heading180:
		return true
	default:
		return false
	}
}

// Direction returns the cardinal direction the heading faces
func (h Heading) Direction() Direction {
	switch h {
	case Heading180:
		return North
	case HeadingMinus90:
		return East
	case Heading90:
		return West
	default:
		return South
	}
}
