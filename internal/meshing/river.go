package meshing

import (
	"hexmesh/internal/grid"
	"hexmesh/internal/hex"
	"hexmesh/internal/metrics"

	"github.com/go-gl/mathgl/mgl32"
)

func (t *Triangulator) triangulateWithRiverBeginOrEnd(c *grid.Cell, center mgl32.Vec3, e metrics.EdgeVertices) {
	color := t.m.Color(c.TerrainType())
	m := metrics.NewEdgeVertices(
		metrics.Lerp(center, e.V1, 0.5),
		metrics.Lerp(center, e.V5, 0.5),
	)
	m.V3[1] = e.V3[1]

	t.triangulateEdgeStrip(m, color, e, color, false)
	t.triangulateEdgeFan(center, m, color)

	if t.underwater(c) {
		return
	}
	reversed := c.HasIncomingRiver()
	surfaceY := t.m.RiverSurfaceY(c.Elevation())
	t.triangulateRiverQuad(m.V2, m.V4, e.V2, e.V4, surfaceY, surfaceY, 0.6, reversed)

	center[1] = surfaceY
	m.V2[1] = surfaceY
	m.V4[1] = surfaceY
	t.rivers.AddTriangle(center, m.V2, m.V4)
	if reversed {
		t.rivers.AddTriangleUV(mgl32.Vec2{0.5, 0.4}, mgl32.Vec2{1, 0.2}, mgl32.Vec2{0, 0.2})
	} else {
		t.rivers.AddTriangleUV(mgl32.Vec2{0.5, 0.4}, mgl32.Vec2{0, 0.6}, mgl32.Vec2{1, 0.6})
	}
}

// triangulateWithRiver builds the channel for a river that passes through
// the cell. The opposite exit makes it straight, the neighboring exits make
// it sharp and the ones two steps away make it gentle.
func (t *Triangulator) triangulateWithRiver(d hex.Direction, c *grid.Cell, center mgl32.Vec3, e metrics.EdgeVertices) {
	var centerL, centerR mgl32.Vec3
	switch {
	case t.riverThrough(c, d.Opposite()):
		centerL = center.Add(t.m.FirstSolidCorner(d.Previous()).Mul(0.25))
		centerR = center.Add(t.m.SecondSolidCorner(d.Next()).Mul(0.25))
	case t.riverThrough(c, d.Next()):
		centerL = center
		centerR = metrics.Lerp(center, e.V5, 2.0/3.0)
	case t.riverThrough(c, d.Previous()):
		centerL = metrics.Lerp(center, e.V1, 2.0/3.0)
		centerR = center
	case t.riverThrough(c, d.Next2()):
		centerL = center
		centerR = center.Add(t.m.SolidEdgeMiddle(d.Next()).Mul(0.5 * metrics.InnerToOuter))
	default:
		centerL = center.Add(t.m.SolidEdgeMiddle(d.Previous()).Mul(0.5 * metrics.InnerToOuter))
		centerR = center
	}
	center = metrics.Lerp(centerL, centerR, 0.5)

	m := metrics.NewEdgeVerticesStep(
		metrics.Lerp(centerL, e.V1, 0.5),
		metrics.Lerp(centerR, e.V5, 0.5),
		1.0/6.0,
	)
	m.V3[1] = e.V3[1]
	center[1] = e.V3[1]

	color := t.m.Color(c.TerrainType())
	t.triangulateEdgeStrip(m, color, e, color, false)

	t.terrain.AddTriangle(centerL, m.V1, m.V2)
	t.terrain.AddTriangleColor1(color)
	t.terrain.AddQuad(centerL, center, m.V2, m.V3)
	t.terrain.AddQuadColor1(color)
	t.terrain.AddQuad(center, centerR, m.V3, m.V4)
	t.terrain.AddQuadColor1(color)
	t.terrain.AddTriangle(centerR, m.V4, m.V5)
	t.terrain.AddTriangleColor1(color)

	if t.underwater(c) {
		return
	}
	reversed := c.IncomingRiver() == d
	surfaceY := t.m.RiverSurfaceY(c.Elevation())
	t.triangulateRiverQuad(centerL, centerR, m.V2, m.V4, surfaceY, surfaceY, 0.4, reversed)
	t.triangulateRiverQuad(m.V2, m.V4, e.V2, e.V4, surfaceY, surfaceY, 0.6, reversed)
}

// triangulateAdjacentToRiver pulls the wedge center toward the channel so
// the banks stay smooth.
func (t *Triangulator) triangulateAdjacentToRiver(d hex.Direction, c *grid.Cell, center mgl32.Vec3, e metrics.EdgeVertices) {
	if t.hasRoads(c) {
		t.triangulateRoadAdjacentToRiver(d, c, center, e)
	}

	if t.riverThrough(c, d.Next()) {
		if t.riverThrough(c, d.Previous()) {
			center = center.Add(t.m.SolidEdgeMiddle(d).Mul(metrics.InnerToOuter * 0.5))
		} else if t.riverThrough(c, d.Previous2()) {
			center = center.Add(t.m.FirstSolidCorner(d).Mul(0.25))
		}
	} else if t.riverThrough(c, d.Previous()) && t.riverThrough(c, d.Next2()) {
		center = center.Add(t.m.SecondSolidCorner(d).Mul(0.25))
	}

	m := metrics.NewEdgeVertices(
		metrics.Lerp(center, e.V1, 0.5),
		metrics.Lerp(center, e.V5, 0.5),
	)
	color := t.m.Color(c.TerrainType())
	t.triangulateEdgeStrip(m, color, e, color, false)
	t.triangulateEdgeFan(center, m, color)
}

// triangulateRiverConnection emits the river surface between c and its
// neighbor n, turning it into a waterfall where one side is submerged.
func (t *Triangulator) triangulateRiverConnection(d hex.Direction, c, n *grid.Cell, e1, e2 metrics.EdgeVertices) {
	cellY := t.m.RiverSurfaceY(c.Elevation())
	neighborY := t.m.RiverSurfaceY(n.Elevation())

	switch {
	case !t.underwater(c) && !t.underwater(n):
		reversed := c.HasIncomingRiver() && c.IncomingRiver() == d
		t.triangulateRiverQuad(e1.V2, e1.V4, e2.V2, e2.V4, cellY, neighborY, 0.8, reversed)
	case !t.underwater(c) && c.Elevation() > n.WaterLevel():
		t.triangulateWaterfallInWater(e1.V2, e1.V4, e2.V2, e2.V4, cellY, neighborY, t.m.WaterSurfaceY(n.WaterLevel()))
	case t.underwater(c) && !t.underwater(n) && n.Elevation() > c.WaterLevel():
		t.triangulateWaterfallInWater(e2.V4, e2.V2, e1.V4, e1.V2, neighborY, cellY, t.m.WaterSurfaceY(c.WaterLevel()))
	}
}

// triangulateRiverQuad lays a river surface quad from the y1 edge to the y2
// edge. V runs along the flow starting at v; reversed flips it for rivers
// flowing toward the cell center.
func (t *Triangulator) triangulateRiverQuad(v1, v2, v3, v4 mgl32.Vec3, y1, y2, v float32, reversed bool) {
	v1[1], v2[1] = y1, y1
	v3[1], v4[1] = y2, y2
	t.rivers.AddQuad(v1, v2, v3, v4)
	if reversed {
		t.rivers.AddQuadUVRect(1, 0, 0.8-v, 0.6-v)
	} else {
		t.rivers.AddQuadUVRect(0, 1, v, v+0.2)
	}
}

// triangulateWaterfallInWater drops a river from y1 toward y2 but stops it
// at the water surface. The quad is perturbed before clipping so the cut
// stays horizontal.
func (t *Triangulator) triangulateWaterfallInWater(v1, v2, v3, v4 mgl32.Vec3, y1, y2, waterY float32) {
	v1[1], v2[1] = y1, y1
	v3[1], v4[1] = y2, y2
	v1 = t.m.Perturb(v1)
	v2 = t.m.Perturb(v2)
	v3 = t.m.Perturb(v3)
	v4 = t.m.Perturb(v4)

	f := (waterY - y2) / (y1 - y2)
	v3 = metrics.Lerp(v3, v1, f)
	v4 = metrics.Lerp(v4, v2, f)
	v3[1], v4[1] = waterY, waterY

	t.rivers.AddQuadUnperturbed(v1, v2, v3, v4)
	t.rivers.AddQuadUVRect(0, 1, 0.8, 1)
}
