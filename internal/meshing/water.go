package meshing

import (
	"hexmesh/internal/grid"
	"hexmesh/internal/hex"
	"hexmesh/internal/metrics"

	"github.com/go-gl/mathgl/mgl32"
)

func (t *Triangulator) triangulateWater(d hex.Direction, c *grid.Cell, center mgl32.Vec3) {
	center[1] = t.m.WaterSurfaceY(c.WaterLevel())
	n, ok := t.g.Neighbor(c, d)
	if ok && !t.underwater(n) {
		t.triangulateWaterShore(d, c, n, center)
	} else {
		t.triangulateOpenWater(d, c, n, center)
	}
}

// triangulateOpenWater fills the wedge and, toward submerged neighbors, the
// water bridge and corner. n may be nil at the map border.
func (t *Triangulator) triangulateOpenWater(d hex.Direction, c, n *grid.Cell, center mgl32.Vec3) {
	c1 := center.Add(t.m.FirstWaterCorner(d))
	c2 := center.Add(t.m.SecondWaterCorner(d))
	t.water.AddTriangle(center, c1, c2)

	if d > hex.SE || n == nil {
		return
	}
	bridge := t.m.WaterBridge(d)
	e1 := c1.Add(bridge)
	e2 := c2.Add(bridge)
	t.water.AddQuad(c1, c2, e1, e2)

	if d > hex.E {
		return
	}
	next, ok := t.g.Neighbor(c, d.Next())
	if !ok || !t.underwater(next) {
		return
	}
	t.water.AddTriangle(c2, e2, c2.Add(t.m.WaterBridge(d.Next())))
}

// triangulateWaterShore runs from the water corners of c to the solid edge
// of the dry neighbor n. Shore UV V is 0 at open water and 1 at the land.
func (t *Triangulator) triangulateWaterShore(d hex.Direction, c, n *grid.Cell, center mgl32.Vec3) {
	e1 := metrics.NewEdgeVertices(
		center.Add(t.m.FirstWaterCorner(d)),
		center.Add(t.m.SecondWaterCorner(d)),
	)
	t.water.AddTriangle(center, e1.V1, e1.V2)
	t.water.AddTriangle(center, e1.V2, e1.V3)
	t.water.AddTriangle(center, e1.V3, e1.V4)
	t.water.AddTriangle(center, e1.V4, e1.V5)

	center2 := t.m.CellCenter(n.Col(), n.Row())
	center2[1] = center.Y()
	e2 := metrics.NewEdgeVertices(
		center2.Add(t.m.SecondSolidCorner(d.Opposite())),
		center2.Add(t.m.FirstSolidCorner(d.Opposite())),
	)

	if t.riverThrough(c, d) {
		t.triangulateEstuary(e1, e2, c.HasIncomingRiver() && c.IncomingRiver() == d)
	} else {
		t.waterShore.AddQuad(e1.V1, e1.V2, e2.V1, e2.V2)
		t.waterShore.AddQuad(e1.V2, e1.V3, e2.V2, e2.V3)
		t.waterShore.AddQuad(e1.V3, e1.V4, e2.V3, e2.V4)
		t.waterShore.AddQuad(e1.V4, e1.V5, e2.V4, e2.V5)
		for i := 0; i < 4; i++ {
			t.waterShore.AddQuadUVRect(0, 0, 0, 1)
		}
	}

	next, ok := t.g.Neighbor(c, d.Next())
	if !ok {
		return
	}
	nextUnderwater := t.underwater(next)
	var corner mgl32.Vec3
	if nextUnderwater {
		corner = t.m.FirstWaterCorner(d.Previous())
	} else {
		corner = t.m.FirstSolidCorner(d.Previous())
	}
	v3 := t.m.CellCenter(next.Col(), next.Row()).Add(corner)
	v3[1] = center.Y()
	t.waterShore.AddTriangle(e1.V5, e2.V5, v3)
	var v float32 = 1
	if nextUnderwater {
		v = 0
	}
	t.waterShore.AddTriangleUV(mgl32.Vec2{0, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{0, v})
}

// triangulateEstuary replaces the middle of a shore strip where a river
// meets open water. UV2 carries the river flow, running outward for an
// outgoing river and inward for an incoming one.
func (t *Triangulator) triangulateEstuary(e1, e2 metrics.EdgeVertices, incomingRiver bool) {
	t.waterShore.AddTriangle(e2.V1, e1.V2, e1.V1)
	t.waterShore.AddTriangle(e2.V5, e1.V5, e1.V4)
	t.waterShore.AddTriangleUV(mgl32.Vec2{0, 1}, mgl32.Vec2{0, 0}, mgl32.Vec2{0, 0})
	t.waterShore.AddTriangleUV(mgl32.Vec2{0, 1}, mgl32.Vec2{0, 0}, mgl32.Vec2{0, 0})

	t.estuaries.AddQuad(e2.V1, e1.V2, e2.V2, e1.V3)
	t.estuaries.AddTriangle(e1.V3, e2.V2, e2.V4)
	t.estuaries.AddQuad(e1.V3, e1.V4, e2.V4, e2.V5)

	t.estuaries.AddQuadUV(
		mgl32.Vec2{0, 1}, mgl32.Vec2{0, 0},
		mgl32.Vec2{1, 1}, mgl32.Vec2{0, 0},
	)
	t.estuaries.AddTriangleUV(mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{1, 1})
	t.estuaries.AddQuadUV(
		mgl32.Vec2{0, 0}, mgl32.Vec2{0, 0},
		mgl32.Vec2{1, 1}, mgl32.Vec2{0, 1},
	)

	if incomingRiver {
		t.estuaries.AddQuadUV2(
			mgl32.Vec2{1.5, 1}, mgl32.Vec2{0.7, 1.15},
			mgl32.Vec2{1, 0.8}, mgl32.Vec2{0.5, 1.1},
		)
		t.estuaries.AddTriangleUV2(mgl32.Vec2{0.5, 1.1}, mgl32.Vec2{1, 0.8}, mgl32.Vec2{0, 0.8})
		t.estuaries.AddQuadUV2(
			mgl32.Vec2{0.5, 1.1}, mgl32.Vec2{0.3, 1.15},
			mgl32.Vec2{0, 0.8}, mgl32.Vec2{-0.5, 1},
		)
		return
	}
	t.estuaries.AddQuadUV2(
		mgl32.Vec2{-0.5, -0.2}, mgl32.Vec2{0.3, -0.35},
		mgl32.Vec2{0, 0}, mgl32.Vec2{0.5, -0.3},
	)
	t.estuaries.AddTriangleUV2(mgl32.Vec2{0.5, -0.3}, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0})
	t.estuaries.AddQuadUV2(
		mgl32.Vec2{0.5, -0.3}, mgl32.Vec2{0.7, -0.35},
		mgl32.Vec2{1, 0}, mgl32.Vec2{1.5, -0.2},
	)
}
