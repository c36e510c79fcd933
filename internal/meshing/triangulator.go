// Package meshing turns grid cells into render layers. A Triangulator builds
// one chunk at a time; the Scheduler decides which chunks need it.
package meshing

import (
	"hexmesh/internal/grid"
	"hexmesh/internal/hex"
	"hexmesh/internal/metrics"

	"github.com/go-gl/mathgl/mgl32"
)

// Features switch the optional builders on and off. With every feature off,
// edges are triangulated coarsely from their end points only; rivers, roads,
// shores and walls all attach to the inner edge vertices.
type Features struct {
	Rivers bool `yaml:"rivers"`
	Roads  bool `yaml:"roads"`
	Walls  bool `yaml:"walls"`
	Water  bool `yaml:"water"`
}

// AllFeatures enables every builder.
func AllFeatures() Features {
	return Features{Rivers: true, Roads: true, Walls: true, Water: true}
}

// Triangulator holds no state between Triangulate calls beyond reusable
// references; it is not safe for concurrent use, give each goroutine its own.
type Triangulator struct {
	m        *metrics.Metrics
	features Features
	coarse   bool

	g   *grid.Grid
	out *ChunkMesh

	terrain    *Mesh
	rivers     *Mesh
	roads      *Mesh
	water      *Mesh
	waterShore *Mesh
	estuaries  *Mesh
	walls      *Mesh
}

// NewTriangulator binds a triangulator to a metrics context.
func NewTriangulator(m *metrics.Metrics, features Features) *Triangulator {
	return &Triangulator{
		m:        m,
		features: features,
		coarse:   features == Features{},
	}
}

// Triangulate clears out and rebuilds every layer of the given chunk.
func (t *Triangulator) Triangulate(g *grid.Grid, chunk int, out *ChunkMesh) {
	t.g = g
	t.out = out
	t.terrain = out.Layer(Terrain)
	t.rivers = out.Layer(Rivers)
	t.roads = out.Layer(Roads)
	t.water = out.Layer(Water)
	t.waterShore = out.Layer(WaterShore)
	t.estuaries = out.Layer(Estuaries)
	t.walls = out.Layer(Walls)
	defer func() {
		t.g = nil
		t.out = nil
	}()

	out.Clear()
	for _, i := range g.ChunkCells(chunk) {
		t.triangulateCell(g.Cell(i))
	}
}

// NewChunkMesh allocates a chunk mesh that perturbs with this triangulator's
// metrics.
func (t *Triangulator) NewChunkMesh(chunk int) *ChunkMesh {
	return NewChunkMesh(chunk, t.m.Perturb)
}

func (t *Triangulator) triangulateCell(c *grid.Cell) {
	for _, d := range hex.Directions {
		t.triangulateDirection(d, c)
	}
}

func (t *Triangulator) triangulateDirection(d hex.Direction, c *grid.Cell) {
	center := t.position(c)
	e := metrics.NewEdgeVertices(
		center.Add(t.m.FirstSolidCorner(d)),
		center.Add(t.m.SecondSolidCorner(d)),
	)

	if t.hasRiver(c) {
		if t.riverThrough(c, d) {
			e.V3[1] = t.m.StreamBedY(c.Elevation())
			if c.HasRiverBeginOrEnd() {
				t.triangulateWithRiverBeginOrEnd(c, center, e)
			} else {
				t.triangulateWithRiver(d, c, center, e)
			}
		} else {
			t.triangulateAdjacentToRiver(d, c, center, e)
		}
	} else {
		t.triangulateWithoutRiver(d, c, center, e)
	}

	if d <= hex.SE {
		t.triangulateConnection(d, c, e)
	}
	if t.underwater(c) {
		t.triangulateWater(d, c, center)
	}
}

func (t *Triangulator) triangulateWithoutRiver(d hex.Direction, c *grid.Cell, center mgl32.Vec3, e metrics.EdgeVertices) {
	t.triangulateEdgeFan(center, e, t.m.Color(c.TerrainType()))
	if t.hasRoads(c) {
		x, y := t.roadInterpolators(d, c)
		t.triangulateRoad(
			center,
			metrics.Lerp(center, e.V1, x),
			metrics.Lerp(center, e.V5, y),
			e, t.roadThrough(c, d),
		)
	}
}

func (t *Triangulator) triangulateConnection(d hex.Direction, c *grid.Cell, e1 metrics.EdgeVertices) {
	n, ok := t.g.Neighbor(c, d)
	if !ok {
		return
	}
	cellY := t.position(c).Y()
	neighborY := t.position(n).Y()

	bridge := t.m.Bridge(d)
	bridge[1] = neighborY - cellY
	e2 := metrics.NewEdgeVertices(e1.V1.Add(bridge), e1.V5.Add(bridge))

	hasRiver := t.riverThrough(c, d)
	hasRoad := t.roadThrough(c, d)

	if hasRiver {
		e2.V3[1] = t.m.StreamBedY(n.Elevation())
		t.triangulateRiverConnection(d, c, n, e1, e2)
	}

	if c.EdgeTypeTo(n) == hex.Slope {
		t.triangulateEdgeTerraces(e1, c, e2, n, hasRoad)
	} else {
		t.triangulateEdgeStrip(
			e1, t.m.Color(c.TerrainType()),
			e2, t.m.Color(n.TerrainType()),
			hasRoad,
		)
	}

	t.addEdgeWall(e1, c, e2, n, hasRiver, hasRoad)

	if d > hex.E {
		return
	}
	next, ok := t.g.Neighbor(c, d.Next())
	if !ok {
		return
	}
	v5 := e1.V5.Add(t.m.Bridge(d.Next()))
	v5[1] = t.position(next).Y()

	// Lowest cell goes to the bottom; the rotation keeps ties stable.
	switch {
	case c.Elevation() <= n.Elevation() && c.Elevation() <= next.Elevation():
		t.triangulateCorner(e1.V5, c, e2.V5, n, v5, next)
	case c.Elevation() <= n.Elevation():
		t.triangulateCorner(v5, next, e1.V5, c, e2.V5, n)
	case n.Elevation() <= next.Elevation():
		t.triangulateCorner(e2.V5, n, v5, next, e1.V5, c)
	default:
		t.triangulateCorner(v5, next, e1.V5, c, e2.V5, n)
	}
}

func (t *Triangulator) triangulateEdgeTerraces(begin metrics.EdgeVertices, beginCell *grid.Cell, end metrics.EdgeVertices, endCell *grid.Cell, hasRoad bool) {
	beginColor := t.m.Color(beginCell.TerrainType())
	endColor := t.m.Color(endCell.TerrainType())

	e2 := t.m.TerraceLerpEdge(begin, end, 1)
	c2 := t.m.TerraceColorLerp(beginColor, endColor, 1)
	t.triangulateEdgeStrip(begin, beginColor, e2, c2, hasRoad)

	for i := 2; i < t.m.TerraceSteps; i++ {
		e1, c1 := e2, c2
		e2 = t.m.TerraceLerpEdge(begin, end, i)
		c2 = t.m.TerraceColorLerp(beginColor, endColor, i)
		t.triangulateEdgeStrip(e1, c1, e2, c2, hasRoad)
	}

	t.triangulateEdgeStrip(e2, c2, end, endColor, hasRoad)
}

func (t *Triangulator) triangulateEdgeFan(center mgl32.Vec3, e metrics.EdgeVertices, color mgl32.Vec4) {
	if t.coarse {
		t.terrain.AddTriangle(center, e.V1, e.V5)
		t.terrain.AddTriangleColor1(color)
		return
	}
	t.terrain.AddTriangle(center, e.V1, e.V2)
	t.terrain.AddTriangle(center, e.V2, e.V3)
	t.terrain.AddTriangle(center, e.V3, e.V4)
	t.terrain.AddTriangle(center, e.V4, e.V5)
	for i := 0; i < 4; i++ {
		t.terrain.AddTriangleColor1(color)
	}
}

func (t *Triangulator) triangulateEdgeStrip(e1 metrics.EdgeVertices, c1 mgl32.Vec4, e2 metrics.EdgeVertices, c2 mgl32.Vec4, hasRoad bool) {
	if t.coarse {
		t.terrain.AddQuad(e1.V1, e1.V5, e2.V1, e2.V5)
		t.terrain.AddQuadColor2(c1, c2)
		return
	}
	t.terrain.AddQuad(e1.V1, e1.V2, e2.V1, e2.V2)
	t.terrain.AddQuad(e1.V2, e1.V3, e2.V2, e2.V3)
	t.terrain.AddQuad(e1.V3, e1.V4, e2.V3, e2.V4)
	t.terrain.AddQuad(e1.V4, e1.V5, e2.V4, e2.V5)
	for i := 0; i < 4; i++ {
		t.terrain.AddQuadColor2(c1, c2)
	}
	if hasRoad {
		t.triangulateRoadSegment(e1.V2, e1.V3, e1.V4, e2.V2, e2.V3, e2.V4)
	}
}

func (t *Triangulator) position(c *grid.Cell) mgl32.Vec3 {
	return t.m.CellPosition(c.Col(), c.Row(), c.Elevation())
}

// The helpers below apply the feature switches so the builders can ask
// plain questions about a cell.

func (t *Triangulator) hasRiver(c *grid.Cell) bool {
	return t.features.Rivers && c.HasRiver()
}

func (t *Triangulator) riverThrough(c *grid.Cell, d hex.Direction) bool {
	return t.features.Rivers && c.HasRiverThroughEdge(d)
}

func (t *Triangulator) hasRoads(c *grid.Cell) bool {
	return t.features.Roads && c.HasRoads()
}

func (t *Triangulator) roadThrough(c *grid.Cell, d hex.Direction) bool {
	return t.features.Roads && c.HasRoadThroughEdge(d)
}

func (t *Triangulator) underwater(c *grid.Cell) bool {
	return t.features.Water && c.IsUnderwater()
}
