package grid

import (
	"errors"
	"testing"

	"hexmesh/internal/hex"
)

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := New(2, 2, 5, 5)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	g.DrainDirty()
	return g
}

func mustCell(t *testing.T, g *Grid, col, row int) *Cell {
	t.Helper()
	c, ok := g.CellAt(col, row)
	if !ok {
		t.Fatalf("cell (%d,%d) missing", col, row)
	}
	return c
}

func TestNewRejectsInvalidSize(t *testing.T) {
	if _, err := New(0, 1, 5, 5); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("got %v, want ErrInvalidSize", err)
	}
}

func TestNeighborsAreSymmetric(t *testing.T) {
	g := newTestGrid(t)
	for i := 0; i < g.CellCount(); i++ {
		c := g.Cell(i)
		for _, d := range hex.Directions {
			n, ok := g.Neighbor(c, d)
			if !ok {
				continue
			}
			back, ok := g.Neighbor(n, d.Opposite())
			if !ok || back != c {
				t.Fatalf("cell %v %v: neighbor link is not symmetric", c.Coordinates(), d)
			}
			if n.Coordinates() != c.Coordinates().Step(d) {
				t.Fatalf("cell %v %v: neighbor at %v, want %v", c.Coordinates(), d, n.Coordinates(), c.Coordinates().Step(d))
			}
		}
	}
}

func TestBoundaryHasNoNeighbor(t *testing.T) {
	g := newTestGrid(t)
	c := mustCell(t, g, 0, 0)
	for _, d := range []hex.Direction{hex.W, hex.SW, hex.SE} {
		if _, ok := g.Neighbor(c, d); ok {
			t.Fatalf("corner cell should have no %v neighbor", d)
		}
	}
	if _, ok := g.CellAt(-1, 0); ok {
		t.Fatalf("out of range lookup returned a cell")
	}
	if _, ok := g.CellAtCoordinates(hex.New(100, 100)); ok {
		t.Fatalf("out of range cube lookup returned a cell")
	}
	if g.Cell(g.CellCount()) != nil {
		t.Fatalf("out of range index returned a cell")
	}
}

func TestCellAtCoordinates(t *testing.T) {
	g := newTestGrid(t)
	want := mustCell(t, g, 3, 7)
	got, ok := g.CellAtCoordinates(want.Coordinates())
	if !ok || got != want {
		t.Fatalf("cube lookup of %v failed", want.Coordinates())
	}
}

func TestChunkMembership(t *testing.T) {
	g := newTestGrid(t)
	if g.ChunkCount() != 4 {
		t.Fatalf("chunk count: got %d, want 4", g.ChunkCount())
	}
	total := 0
	for ch := 0; ch < g.ChunkCount(); ch++ {
		cells := g.ChunkCells(ch)
		if len(cells) != 25 {
			t.Fatalf("chunk %d: got %d cells, want 25", ch, len(cells))
		}
		for _, i := range cells {
			if g.Cell(i).Chunk() != ch {
				t.Fatalf("cell %d listed in chunk %d but belongs to %d", i, ch, g.Cell(i).Chunk())
			}
		}
		total += len(cells)
	}
	if total != g.CellCount() {
		t.Fatalf("chunks cover %d cells, want %d", total, g.CellCount())
	}
}

func TestCellLayoutAccessors(t *testing.T) {
	g := newTestGrid(t)
	c := mustCell(t, g, 7, 3)
	if c.Index() != 3*10+7 || c.Col() != 7 || c.Row() != 3 {
		t.Fatalf("layout: got index %d at (%d,%d), want %d at (7,3)", c.Index(), c.Col(), c.Row(), 3*10+7)
	}
	if c.Coordinates() != hex.FromOffset(7, 3) {
		t.Fatalf("coordinates: got %v, want %v", c.Coordinates(), hex.FromOffset(7, 3))
	}
	if c.Chunk() != 1 {
		t.Fatalf("chunk: got %d, want 1", c.Chunk())
	}
	if g.Cell(c.Index()) != c {
		t.Fatalf("arena slot does not hold the cell")
	}
}
