package metrics

import "github.com/go-gl/mathgl/mgl32"

// EdgeVertices samples a cell edge at five points so that neighboring
// triangulations line up.
type EdgeVertices struct {
	V1, V2, V3, V4, V5 mgl32.Vec3
}

// NewEdgeVertices samples at 0, 1/4, 1/2, 3/4 and 1.
func NewEdgeVertices(corner1, corner2 mgl32.Vec3) EdgeVertices {
	return NewEdgeVerticesStep(corner1, corner2, 0.25)
}

// NewEdgeVerticesStep samples at 0, outerStep, 1/2, 1-outerStep and 1. River
// channels use a narrower outer step.
func NewEdgeVerticesStep(corner1, corner2 mgl32.Vec3, outerStep float32) EdgeVertices {
	return EdgeVertices{
		V1: corner1,
		V2: Lerp(corner1, corner2, outerStep),
		V3: Lerp(corner1, corner2, 0.5),
		V4: Lerp(corner1, corner2, 1-outerStep),
		V5: corner2,
	}
}

// TerraceLerpEdge applies TerraceLerp pointwise.
func (m *Metrics) TerraceLerpEdge(a, b EdgeVertices, step int) EdgeVertices {
	return EdgeVertices{
		V1: m.TerraceLerp(a.V1, b.V1, step),
		V2: m.TerraceLerp(a.V2, b.V2, step),
		V3: m.TerraceLerp(a.V3, b.V3, step),
		V4: m.TerraceLerp(a.V4, b.V4, step),
		V5: m.TerraceLerp(a.V5, b.V5, step),
	}
}
