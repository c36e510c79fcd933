package metrics

import "github.com/go-gl/mathgl/mgl32"

// TerraceLerp moves from a toward b in stepped fashion: X/Z advance every
// step while Y only rises on odd steps, giving flat terraces between ramps.
func (m *Metrics) TerraceLerp(a, b mgl32.Vec3, step int) mgl32.Vec3 {
	if step >= m.TerraceSteps {
		return b
	}
	h := float32(step) * m.horizontalTerraceStep
	a[0] += (b[0] - a[0]) * h
	a[2] += (b[2] - a[2]) * h
	// integer division keeps the staircase
	v := float32((step+1)/2) * m.verticalTerraceStep
	a[1] += (b[1] - a[1]) * v
	return a
}

// TerraceColorLerp blends colors using the horizontal fraction only.
func (m *Metrics) TerraceColorLerp(a, b mgl32.Vec4, step int) mgl32.Vec4 {
	if step >= m.TerraceSteps {
		return b
	}
	h := float32(step) * m.horizontalTerraceStep
	return lerp4(a, b, h)
}

// WallLerp finds the wall base between near and far: halfway on XZ, and
// biased toward the lower side vertically.
func (m *Metrics) WallLerp(near, far mgl32.Vec3) mgl32.Vec3 {
	near[0] += (far[0] - near[0]) * 0.5
	near[2] += (far[2] - near[2]) * 0.5
	v := m.wallElevationOffset
	if near[1] >= far[1] {
		v = 1 - m.wallElevationOffset
	}
	near[1] += (far[1]-near[1])*v + m.WallYOffset
	return near
}

// WallThicknessOffset is half the wall thickness along the horizontal
// near→far direction.
func (m *Metrics) WallThicknessOffset(near, far mgl32.Vec3) mgl32.Vec3 {
	offset := mgl32.Vec3{far[0] - near[0], 0, far[2] - near[2]}
	if offset.Len() == 0 {
		return offset
	}
	return offset.Normalize().Mul(m.WallThickness * 0.5)
}

// Lerp is an unclamped linear interpolation between two positions.
func Lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// LerpColor is Lerp for colors.
func LerpColor(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return lerp4(a, b, t)
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
