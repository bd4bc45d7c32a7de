// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zyedidia/generic/mapset"

	"fieldgen/pkg/engine/world"
	"fieldgen/pkg/game/generator"
)

// fieldLattice draws the field as text: '+' corners, '-' and '|' walls,
// 'R' rack cells, 's' cells holding a start pose and '.' other free cells.
func fieldLattice(f *generator.Field) []string {
	size := f.Size()
	starts := mapset.New[world.Cell]()
	for p := range f.StartPoints() {
		starts.Put(p.Cell)
	}

	lines := make([]string, 0, 2*size+1)
	for y := 0; y <= size; y++ {
		// Corner row: horizontal walls between (x,y) and (x+1,y)
		row := make([]byte, 0, 2*size+1)
		for x := 0; x <= size; x++ {
			row = append(row, '+')
			if x == size {
				break
			}
			if f.HasWall(world.Wall{A: world.Point{X: x, Y: y}, B: world.Point{X: x + 1, Y: y}}) {
				row = append(row, '-')
			} else {
				row = append(row, ' ')
			}
		}
		lines = append(lines, string(row))
		if y == size {
			break
		}

		// Cell row: vertical walls between (x,y) and (x,y+1)
		row = make([]byte, 0, 2*size+1)
		for x := 0; x <= size; x++ {
			if f.HasWall(world.Wall{A: world.Point{X: x, Y: y}, B: world.Point{X: x, Y: y + 1}}) {
				row = append(row, '|')
			} else {
				row = append(row, ' ')
			}
			if x == size {
				break
			}
			c := world.Cell{X: x, Y: y}
			switch {
			case f.IsRack(c):
				row = append(row, 'R')
			case starts.Has(c):
				row = append(row, 's')
			default:
				row = append(row, '.')
			}
		}
		lines = append(lines, string(row))
	}
	return lines
}

// WriteField writes the debug dump of f: metadata, legend, lattice,
// component table, racks, corner labels and start poses.
func WriteField(w io.Writer, f *generator.Field) error {
	b := bufio.NewWriter(w)
	size := f.Size()
	plan := f.Plan()

	fmt.Fprintln(b, "=== FIELD DUMP DEBUG (racks, components, walls, start poses) ===")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "--- Metadata ---")
	fmt.Fprintf(b, "seed: %d\n", f.Seed())
	fmt.Fprintf(b, "map_size: %d\n", size)
	fmt.Fprintf(b, "coordinate_system: x,y (0-based, x=horizontal, y=down; cells are indexed by their top-left corner)\n")
	fmt.Fprintf(b, "racks: %d\n", plan.Racks)
	fmt.Fprintf(b, "component_target: %d\n", plan.Components)
	fmt.Fprintf(b, "internal_walls: %d\n", plan.Walls)
	fmt.Fprintf(b, "total_walls: %d\n", f.WallCount())
	fmt.Fprintf(b, "free_cells: %d\n", f.FreeCells())
	if err := f.Validate(); err != nil {
		fmt.Fprintf(b, "valid: false (%v)\n", err)
	} else {
		fmt.Fprintln(b, "valid: true")
	}
	fmt.Fprintln(b, "")

	fmt.Fprintln(b, "--- Legend ---")
	fmt.Fprintln(b, "+ = corner  - | = wall  R = rack  s = start pose  . = free cell")
	fmt.Fprintln(b, "")

	fmt.Fprintln(b, "--- Field ---")
	for _, line := range fieldLattice(f) {
		fmt.Fprintln(b, line)
	}
	fmt.Fprintln(b, "")

	fmt.Fprintln(b, "--- Components ---")
	racks := f.Racks()
	for _, c := range f.Components() {
		fmt.Fprintf(b, "  origin: %d rack: %d,%d id: %s independent: %v closed: %v\n",
			c.Origin, racks[c.Origin].X, racks[c.Origin].Y, regionName(c.ID), c.Independent(), c.Closed)
	}
	fmt.Fprintln(b, "")

	fmt.Fprintln(b, "--- Corner labels (B = border, . = unclaimed) ---")
	for y := 0; y <= size; y++ {
		for x := 0; x <= size; x++ {
			id := f.Region(world.Point{X: x, Y: y})
			switch id {
			case generator.BorderID:
				fmt.Fprint(b, "  B")
			case world.NoRegion:
				fmt.Fprint(b, "  .")
			default:
				fmt.Fprintf(b, "%3d", id)
			}
		}
		fmt.Fprintln(b)
	}
	fmt.Fprintln(b, "")

	fmt.Fprintln(b, "--- Start poses (x y heading facing) ---")
	for p := range f.StartPoints() {
		fmt.Fprintf(b, "  x: %d y: %d heading: %d facing: %v\n", p.X, p.Y, p.Heading, p.Heading.Direction())
	}
	fmt.Fprintln(b, "")

	fmt.Fprintln(b, "=== END FIELD DUMP ===")
	return b.Flush()
}

func regionName(id world.RegionID) string {
	if id == generator.BorderID {
		return "border"
	}
	return fmt.Sprint(int(id))
}

// DumpFieldToFile writes the debug dump of f to path and returns its absolute path.
func DumpFieldToFile(f *generator.Field, path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	out, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := WriteField(out, f); err != nil {
		return absPath, err
	}
	if err := out.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
