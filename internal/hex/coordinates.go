// Package hex holds the cube-coordinate math, directions and edge
// classification shared by the grid model and the triangulator.
package hex

import (
	"fmt"
	"math"
)

// Coordinates is a cube coordinate. Only X and Z are stored; Y is derived
// so that X+Y+Z == 0 always holds.
type Coordinates struct {
	X int `yaml:"x"`
	Z int `yaml:"z"`
}

// New returns cube coordinates from the two stored axes.
func New(x, z int) Coordinates {
	return Coordinates{X: x, Z: z}
}

// Y returns the implicit third cube coordinate.
func (c Coordinates) Y() int {
	return -c.X - c.Z
}

// FromOffset converts offset (column, row) coordinates, where odd rows are
// shifted half a cell to the right, into cube coordinates.
func FromOffset(col, row int) Coordinates {
	return Coordinates{X: col - row/2, Z: row}
}

// ToOffset is the inverse of FromOffset.
func (c Coordinates) ToOffset() (col, row int) {
	return c.X + c.Z/2, c.Z
}

// DistanceTo returns the number of steps between c and o.
func (c Coordinates) DistanceTo(o Coordinates) int {
	dx := abs(c.X - o.X)
	dy := abs(c.Y() - o.Y())
	dz := abs(c.Z - o.Z)
	return (dx + dy + dz) / 2
}

var steps = [DirectionCount]Coordinates{
	NE: {X: 0, Z: 1},
	E:  {X: 1, Z: 0},
	SE: {X: 1, Z: -1},
	SW: {X: 0, Z: -1},
	W:  {X: -1, Z: 0},
	NW: {X: -1, Z: 1},
}

// Step returns the neighboring coordinate in direction d.
func (c Coordinates) Step(d Direction) Coordinates {
	s := steps[d]
	return Coordinates{X: c.X + s.X, Z: c.Z + s.Z}
}

// FromPlane converts a point on the XZ plane into the coordinates of the
// cell containing it. innerRadius and outerRadius describe the cell size.
func FromPlane(px, pz, innerRadius, outerRadius float32) Coordinates {
	x := float64(px) / (float64(innerRadius) * 2)
	y := -x
	offset := float64(pz) / (float64(outerRadius) * 3)
	x -= offset
	y -= offset

	ix := math.Round(x)
	iy := math.Round(y)
	iz := math.Round(-x - y)

	if int(ix+iy+iz) != 0 {
		dx := math.Abs(x - ix)
		dy := math.Abs(y - iy)
		dz := math.Abs(-x - y - iz)
		if dx > dy && dx > dz {
			ix = -iy - iz
		} else if dz > dy {
			iz = -ix - iy
		}
	}
	return Coordinates{X: int(ix), Z: int(iz)}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y(), c.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
