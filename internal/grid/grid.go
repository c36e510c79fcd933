// Package grid is the long-lived hex terrain model. Cells are stored in a
// flat arena and grouped into rectangular chunks; every mutation that changes
// rendered geometry queues the affected chunks for rebuild.
//
// A Grid is not safe for concurrent mutation. Readers may run in parallel
// as long as no mutation happens at the same time.
package grid

import (
	"errors"
	"fmt"

	"hexmesh/internal/hex"
)

// ErrInvalidSize is returned for non-positive grid dimensions.
var ErrInvalidSize = errors.New("grid: invalid size")

type Grid struct {
	chunkCountX, chunkCountZ int
	chunkSizeX, chunkSizeZ   int
	cellCountX, cellCountZ   int

	cells      []Cell
	chunkCells [][]int
	dirty      dirtyQueue
}

// New builds a grid of chunkCountX × chunkCountZ chunks, each holding
// chunkSizeX × chunkSizeZ cells. All chunks start dirty.
func New(chunkCountX, chunkCountZ, chunkSizeX, chunkSizeZ int) (*Grid, error) {
	if chunkCountX <= 0 || chunkCountZ <= 0 || chunkSizeX <= 0 || chunkSizeZ <= 0 {
		return nil, fmt.Errorf("%w: %dx%d chunks of %dx%d cells", ErrInvalidSize, chunkCountX, chunkCountZ, chunkSizeX, chunkSizeZ)
	}
	g := &Grid{
		chunkCountX: chunkCountX,
		chunkCountZ: chunkCountZ,
		chunkSizeX:  chunkSizeX,
		chunkSizeZ:  chunkSizeZ,
		cellCountX:  chunkCountX * chunkSizeX,
		cellCountZ:  chunkCountZ * chunkSizeZ,
	}
	g.cells = make([]Cell, g.cellCountX*g.cellCountZ)
	g.chunkCells = make([][]int, chunkCountX*chunkCountZ)
	g.dirty = newDirtyQueue(len(g.chunkCells))

	i := 0
	for row := 0; row < g.cellCountZ; row++ {
		for col := 0; col < g.cellCountX; col++ {
			g.createCell(col, row, i)
			i++
		}
	}
	g.MarkAllDirty()
	return g, nil
}

func (g *Grid) createCell(col, row, i int) {
	c := &g.cells[i]
	c.index = i
	c.col, c.row = col, row
	c.coordinates = hex.FromOffset(col, row)
	for d := range c.neighbors {
		c.neighbors[d] = noNeighbor
	}

	if col > 0 {
		g.link(i, hex.W, i-1)
	}
	if row > 0 {
		if row&1 == 0 {
			g.link(i, hex.SE, i-g.cellCountX)
			if col > 0 {
				g.link(i, hex.SW, i-g.cellCountX-1)
			}
		} else {
			g.link(i, hex.SW, i-g.cellCountX)
			if col < g.cellCountX-1 {
				g.link(i, hex.SE, i-g.cellCountX+1)
			}
		}
	}

	chunkX := col / g.chunkSizeX
	chunkZ := row / g.chunkSizeZ
	c.chunk = chunkX + chunkZ*g.chunkCountX
	g.chunkCells[c.chunk] = append(g.chunkCells[c.chunk], i)
}

// link wires the symmetric neighbor relation.
func (g *Grid) link(i int, d hex.Direction, j int) {
	g.cells[i].neighbors[d] = j
	g.cells[j].neighbors[d.Opposite()] = i
}

// CellCount returns the number of cells in the arena.
func (g *Grid) CellCount() int { return len(g.cells) }

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (x, z int) { return g.cellCountX, g.cellCountZ }

// ChunkCount returns the number of chunks.
func (g *Grid) ChunkCount() int { return len(g.chunkCells) }

// ChunkCells returns the arena indices of the cells in a chunk. The slice
// must not be modified.
func (g *Grid) ChunkCells(chunk int) []int {
	if chunk < 0 || chunk >= len(g.chunkCells) {
		return nil
	}
	return g.chunkCells[chunk]
}

// Cell returns the cell in arena slot i, or nil when out of range.
func (g *Grid) Cell(i int) *Cell {
	if i < 0 || i >= len(g.cells) {
		return nil
	}
	return &g.cells[i]
}

// CellAt looks a cell up by offset coordinates.
func (g *Grid) CellAt(col, row int) (*Cell, bool) {
	if col < 0 || col >= g.cellCountX || row < 0 || row >= g.cellCountZ {
		return nil, false
	}
	return &g.cells[col+row*g.cellCountX], true
}

// CellAtCoordinates looks a cell up by cube coordinates.
func (g *Grid) CellAtCoordinates(c hex.Coordinates) (*Cell, bool) {
	col, row := c.ToOffset()
	if row < 0 {
		return nil, false
	}
	return g.CellAt(col, row)
}

// Neighbor returns the neighbor of c in direction d, if any.
func (g *Grid) Neighbor(c *Cell, d hex.Direction) (*Cell, bool) {
	n, ok := c.NeighborIndex(d)
	if !ok {
		return nil, false
	}
	return &g.cells[n], true
}

func (g *Grid) neighbor(c *Cell, d hex.Direction) *Cell {
	n, _ := g.Neighbor(c, d)
	return n
}

// ValidateWater reports adjacent underwater cells that disagree on their
// water level.
func (g *Grid) ValidateWater() error {
	var errs []error
	for i := range g.cells {
		c := &g.cells[i]
		if !c.IsUnderwater() {
			continue
		}
		for _, d := range [...]hex.Direction{hex.NE, hex.E, hex.SE} {
			n := g.neighbor(c, d)
			if n == nil || !n.IsUnderwater() || n.waterLevel == c.waterLevel {
				continue
			}
			errs = append(errs, fmt.Errorf("cells %v and %v: water level %d != %d", c.coordinates, n.coordinates, c.waterLevel, n.waterLevel))
		}
	}
	return errors.Join(errs...)
}
