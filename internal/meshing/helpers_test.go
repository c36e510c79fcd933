package meshing

import (
	"math/rand"
	"testing"

	"hexmesh/internal/grid"
	"hexmesh/internal/hex"
	"hexmesh/internal/metrics"
	"hexmesh/internal/noise"

	"github.com/go-gl/mathgl/mgl32"
)

// flatMetrics disables all jitter so positions are exact.
func flatMetrics() *metrics.Metrics {
	return metrics.New(metrics.DefaultParams(), noise.Flat(), nil)
}

func noisyMetrics() *metrics.Metrics {
	return metrics.New(metrics.DefaultParams(), noise.Generate(7, 64), noise.NewHashGrid(7, 64, 0.25))
}

func newGrid(t testing.TB, chunksX, chunksZ, sizeX, sizeZ int) *grid.Grid {
	t.Helper()
	g, err := grid.New(chunksX, chunksZ, sizeX, sizeZ)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	return g
}

func cellAt(t testing.TB, g *grid.Grid, col, row int) *grid.Cell {
	t.Helper()
	c, ok := g.CellAt(col, row)
	if !ok {
		t.Fatalf("no cell at (%d,%d)", col, row)
	}
	return c
}

func build(m *metrics.Metrics, features Features, g *grid.Grid, chunk int) *ChunkMesh {
	tri := NewTriangulator(m, features)
	out := tri.NewChunkMesh(chunk)
	tri.Triangulate(g, chunk, out)
	return out
}

// randomize applies a deterministic mix of edits through the mutation API.
func randomize(g *grid.Grid, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	n := g.CellCount()
	for i := 0; i < n; i++ {
		g.SetElevation(i, rng.Intn(6))
		g.SetTerrainType(i, rng.Intn(5))
	}
	for i := 0; i < n; i++ {
		if rng.Intn(5) == 0 {
			c := g.Cell(i)
			g.SetWaterLevel(i, c.Elevation()+1)
		}
	}
	for i := 0; i < n; i++ {
		switch rng.Intn(4) {
		case 0:
			g.SetOutgoingRiver(i, hex.Direction(rng.Intn(hex.DirectionCount)))
		case 1:
			g.AddRoad(i, hex.Direction(rng.Intn(hex.DirectionCount)))
			g.AddRoad(i, hex.Direction(rng.Intn(hex.DirectionCount)))
		}
		if rng.Intn(3) == 0 {
			g.SetWalled(i, true)
		}
	}
}

// checkStreams verifies attribute presence and index bounds of every layer.
func checkStreams(t *testing.T, cm *ChunkMesh) {
	t.Helper()
	for l := Layer(0); l < LayerCount; l++ {
		m := cm.Layer(l)
		n := len(m.Positions)
		if len(m.Indices)%3 != 0 {
			t.Fatalf("%v: %d indices is not a triangle list", l, len(m.Indices))
		}
		for _, idx := range m.Indices {
			if int(idx) >= n {
				t.Fatalf("%v: index %d out of range %d", l, idx, n)
			}
		}
		want := func(has bool) int {
			if has {
				return n
			}
			return 0
		}
		if got := len(m.Colors); got != want(l.HasColors()) {
			t.Fatalf("%v: got %d colors, want %d", l, got, want(l.HasColors()))
		}
		if got := len(m.UV); got != want(l.HasUV()) {
			t.Fatalf("%v: got %d uvs, want %d", l, got, want(l.HasUV()))
		}
		if got := len(m.UV2); got != want(l.HasUV2()) {
			t.Fatalf("%v: got %d uv2s, want %d", l, got, want(l.HasUV2()))
		}
	}
}

func sameMesh(a, b *ChunkMesh) bool {
	for l := Layer(0); l < LayerCount; l++ {
		ma, mb := a.Layer(l), b.Layer(l)
		if !equalSlices(ma.Positions, mb.Positions) ||
			!equalSlices(ma.Colors, mb.Colors) ||
			!equalSlices(ma.UV, mb.UV) ||
			!equalSlices(ma.UV2, mb.UV2) ||
			!equalSlices(ma.Indices, mb.Indices) {
			return false
		}
	}
	return equalSlices(a.Bridges, b.Bridges) && equalSlices(a.Towers, b.Towers)
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// countVertex counts the positions within 1e-4 of want.
func countVertex(ps []mgl32.Vec3, want mgl32.Vec3) int {
	n := 0
	for _, p := range ps {
		if p.ApproxEqualThreshold(want, 1e-4) {
			n++
		}
	}
	return n
}

// insideTriangleXZ reports whether p lies strictly inside any triangle of
// m, projected onto the XZ plane.
func insideTriangleXZ(m *Mesh, p mgl32.Vec3) bool {
	const eps = 1e-4
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Positions[m.Indices[i]]
		b := m.Positions[m.Indices[i+1]]
		c := m.Positions[m.Indices[i+2]]
		d := (b.Z()-c.Z())*(a.X()-c.X()) + (c.X()-b.X())*(a.Z()-c.Z())
		if mgl32.Abs(d) < eps {
			continue
		}
		l1 := ((b.Z()-c.Z())*(p.X()-c.X()) + (c.X()-b.X())*(p.Z()-c.Z())) / d
		l2 := ((c.Z()-a.Z())*(p.X()-c.X()) + (a.X()-c.X())*(p.Z()-c.Z())) / d
		l3 := 1 - l1 - l2
		if l1 > eps && l2 > eps && l3 > eps {
			return true
		}
	}
	return false
}
