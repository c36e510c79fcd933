package meshing

import (
	"hexmesh/internal/grid"
	"hexmesh/internal/hex"
	"hexmesh/internal/metrics"

	"github.com/go-gl/mathgl/mgl32"
)

// roadInterpolators returns how far toward the first and second edge
// corners the road reaches: halfway when a road leaves through that side,
// a quarter for a dead end.
func (t *Triangulator) roadInterpolators(d hex.Direction, c *grid.Cell) (x, y float32) {
	if t.roadThrough(c, d) {
		return 0.5, 0.5
	}
	x, y = 0.25, 0.25
	if t.roadThrough(c, d.Previous()) {
		x = 0.5
	}
	if t.roadThrough(c, d.Next()) {
		y = 0.5
	}
	return x, y
}

func (t *Triangulator) triangulateRoad(center, mL, mR mgl32.Vec3, e metrics.EdgeVertices, hasRoadThroughEdge bool) {
	if !hasRoadThroughEdge {
		t.triangulateRoadEdge(center, mL, mR)
		return
	}
	mC := metrics.Lerp(mL, mR, 0.5)
	t.triangulateRoadSegment(mL, mC, mR, e.V2, e.V3, e.V4)
	t.roads.AddTriangle(center, mL, mC)
	t.roads.AddTriangle(center, mC, mR)
	t.roads.AddTriangleUV(mgl32.Vec2{1, 0}, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0})
	t.roads.AddTriangleUV(mgl32.Vec2{1, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{0, 0})
}

func (t *Triangulator) triangulateRoadEdge(center, mL, mR mgl32.Vec3) {
	t.roads.AddTriangle(center, mL, mR)
	t.roads.AddTriangleUV(mgl32.Vec2{1, 0}, mgl32.Vec2{0, 0}, mgl32.Vec2{0, 0})
}

// triangulateRoadSegment is two quads; U is 1 on the road's center line and
// 0 on its sides.
func (t *Triangulator) triangulateRoadSegment(v1, v2, v3, v4, v5, v6 mgl32.Vec3) {
	t.roads.AddQuad(v1, v2, v4, v5)
	t.roads.AddQuad(v2, v3, v5, v6)
	t.roads.AddQuadUVRect(0, 1, 0, 0)
	t.roads.AddQuadUVRect(1, 0, 0, 0)
}

// triangulateRoadAdjacentToRiver moves the road center away from the river
// channel. Which way depends on how the river runs through the cell.
func (t *Triangulator) triangulateRoadAdjacentToRiver(d hex.Direction, c *grid.Cell, center mgl32.Vec3, e metrics.EdgeVertices) {
	hasRoadThroughEdge := t.roadThrough(c, d)
	previousHasRiver := t.riverThrough(c, d.Previous())
	nextHasRiver := t.riverThrough(c, d.Next())
	x, y := t.roadInterpolators(d, c)
	roadCenter := center

	switch {
	case c.HasRiverBeginOrEnd():
		roadCenter = roadCenter.Add(
			t.m.SolidEdgeMiddle(c.RiverBeginOrEndDirection().Opposite()).Mul(1.0 / 3.0),
		)

	case c.IncomingRiver() == c.OutgoingRiver().Opposite():
		// Straight river: the road center moves onto this bank.
		var corner mgl32.Vec3
		if previousHasRiver {
			if !hasRoadThroughEdge && !t.roadThrough(c, d.Next()) {
				return
			}
			corner = t.m.SecondSolidCorner(d)
		} else {
			if !hasRoadThroughEdge && !t.roadThrough(c, d.Previous()) {
				return
			}
			corner = t.m.FirstSolidCorner(d)
		}
		roadCenter = roadCenter.Add(corner.Mul(0.5))
		if c.IncomingRiver() == d.Next() &&
			(t.roadThrough(c, d.Next2()) || t.roadThrough(c, d.Opposite())) {
			t.addBridge(roadCenter, center.Sub(corner.Mul(0.5)))
		}
		center = center.Add(corner.Mul(0.25))

	case c.IncomingRiver() == c.OutgoingRiver().Previous():
		roadCenter = roadCenter.Sub(t.m.SecondCorner(c.IncomingRiver()).Mul(0.2))

	case c.IncomingRiver() == c.OutgoingRiver().Next():
		roadCenter = roadCenter.Sub(t.m.FirstCorner(c.IncomingRiver()).Mul(0.2))

	case previousHasRiver && nextHasRiver:
		// Inside of a V bend.
		if !hasRoadThroughEdge {
			return
		}
		offset := t.m.SolidEdgeMiddle(d).Mul(metrics.InnerToOuter)
		roadCenter = roadCenter.Add(offset.Mul(0.7))
		center = center.Add(offset.Mul(0.5))

	default:
		// Outside of a gentle curve: pull toward the middle direction.
		middle := d
		if previousHasRiver {
			middle = d.Next()
		} else if nextHasRiver {
			middle = d.Previous()
		}
		if !t.roadThrough(c, middle) &&
			!t.roadThrough(c, middle.Previous()) &&
			!t.roadThrough(c, middle.Next()) {
			return
		}
		roadCenter = roadCenter.Add(t.m.SolidEdgeMiddle(middle).Mul(0.25))
	}

	mL := metrics.Lerp(roadCenter, e.V1, x)
	mR := metrics.Lerp(roadCenter, e.V5, y)
	t.triangulateRoad(roadCenter, mL, mR, e, hasRoadThroughEdge)
	if previousHasRiver {
		t.triangulateRoadEdge(roadCenter, center, mL)
	}
	if nextHasRiver {
		t.triangulateRoadEdge(roadCenter, mR, center)
	}
}

// addBridge records a bridge between two unperturbed road centers on
// opposite banks.
func (t *Triangulator) addBridge(roadCenter1, roadCenter2 mgl32.Vec3) {
	roadCenter1 = t.m.Perturb(roadCenter1)
	roadCenter2 = t.m.Perturb(roadCenter2)
	span := roadCenter2.Sub(roadCenter1)
	length := span.Len()
	if length == 0 {
		return
	}
	t.out.Bridges = append(t.out.Bridges, Bridge{
		Position:  roadCenter1.Add(roadCenter2).Mul(0.5),
		Direction: span.Mul(1 / length),
		Length:    length,
		Scale:     length / t.m.BridgeDesignLength,
	})
}
