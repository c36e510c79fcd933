package meshing

import (
	"fmt"

	"hexmesh/internal/grid"
	"hexmesh/internal/hex"
	"hexmesh/internal/metrics"

	"github.com/go-gl/mathgl/mgl32"
)

// cornerKind is the resolved shape of a three-cell corner.
type cornerKind uint8

const (
	cornerFlat cornerKind = iota
	cornerSlopeSlope
	cornerSlopeFlat
	cornerFlatSlope
	cornerSlopeCliff
	cornerCliffSlope
	cornerCliffCliffSlopeRight
	cornerCliffCliffSlopeLeft
)

func (k cornerKind) String() string {
	switch k {
	case cornerFlat:
		return "Flat"
	case cornerSlopeSlope:
		return "SlopeSlope"
	case cornerSlopeFlat:
		return "SlopeFlat"
	case cornerFlatSlope:
		return "FlatSlope"
	case cornerSlopeCliff:
		return "SlopeCliff"
	case cornerCliffSlope:
		return "CliffSlope"
	case cornerCliffCliffSlopeRight:
		return "CliffCliffSlopeRight"
	case cornerCliffCliffSlopeLeft:
		return "CliffCliffSlopeLeft"
	}
	return fmt.Sprintf("cornerKind(%d)", uint8(k))
}

// cornerCase maps the edge types bottom→left, bottom→right and left→right of
// a sorted corner to its shape. leftBelowRight only matters for the
// cliff-cliff-slope corners, where it picks which cliff gets terraced.
func cornerCase(left, right, top hex.EdgeType, leftBelowRight bool) cornerKind {
	switch {
	case left == hex.Slope && right == hex.Slope:
		return cornerSlopeSlope
	case left == hex.Slope && right == hex.Flat:
		return cornerSlopeFlat
	case left == hex.Slope && right == hex.Cliff:
		return cornerSlopeCliff
	case left == hex.Flat && right == hex.Slope:
		return cornerFlatSlope
	case left == hex.Cliff && right == hex.Slope:
		return cornerCliffSlope
	case left == hex.Cliff && right == hex.Cliff && top == hex.Slope:
		if leftBelowRight {
			return cornerCliffCliffSlopeRight
		}
		return cornerCliffCliffSlopeLeft
	}
	return cornerFlat
}

// triangulateCorner fills the gap between three cells. bottom is the lowest;
// left and right follow clockwise.
func (t *Triangulator) triangulateCorner(
	bottom mgl32.Vec3, bottomCell *grid.Cell,
	left mgl32.Vec3, leftCell *grid.Cell,
	right mgl32.Vec3, rightCell *grid.Cell,
) {
	kind := cornerCase(
		bottomCell.EdgeTypeTo(leftCell),
		bottomCell.EdgeTypeTo(rightCell),
		leftCell.EdgeTypeTo(rightCell),
		leftCell.Elevation() < rightCell.Elevation(),
	)

	switch kind {
	case cornerSlopeSlope:
		t.triangulateCornerTerraces(bottom, bottomCell, left, leftCell, right, rightCell)
	case cornerSlopeFlat:
		t.triangulateCornerTerraces(left, leftCell, right, rightCell, bottom, bottomCell)
	case cornerFlatSlope:
		t.triangulateCornerTerraces(right, rightCell, bottom, bottomCell, left, leftCell)
	case cornerSlopeCliff:
		t.triangulateCornerTerracesCliff(bottom, bottomCell, left, leftCell, right, rightCell)
	case cornerCliffSlope:
		t.triangulateCornerCliffTerraces(bottom, bottomCell, left, leftCell, right, rightCell)
	case cornerCliffCliffSlopeRight:
		t.triangulateCornerCliffTerraces(right, rightCell, bottom, bottomCell, left, leftCell)
	case cornerCliffCliffSlopeLeft:
		t.triangulateCornerTerracesCliff(left, leftCell, right, rightCell, bottom, bottomCell)
	default:
		t.terrain.AddTriangle(bottom, left, right)
		t.terrain.AddTriangleColor(
			t.m.Color(bottomCell.TerrainType()),
			t.m.Color(leftCell.TerrainType()),
			t.m.Color(rightCell.TerrainType()),
		)
	}

	t.addCornerWall(bottom, bottomCell, left, leftCell, right, rightCell)
}

func (t *Triangulator) triangulateCornerTerraces(
	begin mgl32.Vec3, beginCell *grid.Cell,
	left mgl32.Vec3, leftCell *grid.Cell,
	right mgl32.Vec3, rightCell *grid.Cell,
) {
	beginColor := t.m.Color(beginCell.TerrainType())
	leftColor := t.m.Color(leftCell.TerrainType())
	rightColor := t.m.Color(rightCell.TerrainType())

	v3 := t.m.TerraceLerp(begin, left, 1)
	v4 := t.m.TerraceLerp(begin, right, 1)
	c3 := t.m.TerraceColorLerp(beginColor, leftColor, 1)
	c4 := t.m.TerraceColorLerp(beginColor, rightColor, 1)

	t.terrain.AddTriangle(begin, v3, v4)
	t.terrain.AddTriangleColor(beginColor, c3, c4)

	for i := 2; i < t.m.TerraceSteps; i++ {
		v1, v2 := v3, v4
		c1, c2 := c3, c4
		v3 = t.m.TerraceLerp(begin, left, i)
		v4 = t.m.TerraceLerp(begin, right, i)
		c3 = t.m.TerraceColorLerp(beginColor, leftColor, i)
		c4 = t.m.TerraceColorLerp(beginColor, rightColor, i)
		t.terrain.AddQuad(v1, v2, v3, v4)
		t.terrain.AddQuadColor(c1, c2, c3, c4)
	}

	t.terrain.AddQuad(v3, v4, left, right)
	t.terrain.AddQuadColor(c3, c4, leftColor, rightColor)
}

// triangulateCornerTerracesCliff handles a slope on the left and a cliff on
// the right of begin.
func (t *Triangulator) triangulateCornerTerracesCliff(
	begin mgl32.Vec3, beginCell *grid.Cell,
	left mgl32.Vec3, leftCell *grid.Cell,
	right mgl32.Vec3, rightCell *grid.Cell,
) {
	beginColor := t.m.Color(beginCell.TerrainType())
	rightColor := t.m.Color(rightCell.TerrainType())

	b := boundaryFactor(beginCell.Elevation(), rightCell.Elevation())
	boundary := metrics.Lerp(t.m.Perturb(begin), t.m.Perturb(right), b)
	boundaryColor := metrics.LerpColor(beginColor, rightColor, b)

	t.triangulateBoundaryTriangle(begin, beginCell, left, leftCell, boundary, boundaryColor)

	if leftCell.EdgeTypeTo(rightCell) == hex.Slope {
		t.triangulateBoundaryTriangle(left, leftCell, right, rightCell, boundary, boundaryColor)
	} else {
		t.terrain.AddTriangleUnperturbed(t.m.Perturb(left), t.m.Perturb(right), boundary)
		t.terrain.AddTriangleColor(t.m.Color(leftCell.TerrainType()), rightColor, boundaryColor)
	}
}

// triangulateCornerCliffTerraces mirrors triangulateCornerTerracesCliff.
func (t *Triangulator) triangulateCornerCliffTerraces(
	begin mgl32.Vec3, beginCell *grid.Cell,
	left mgl32.Vec3, leftCell *grid.Cell,
	right mgl32.Vec3, rightCell *grid.Cell,
) {
	beginColor := t.m.Color(beginCell.TerrainType())
	leftColor := t.m.Color(leftCell.TerrainType())

	b := boundaryFactor(beginCell.Elevation(), leftCell.Elevation())
	boundary := metrics.Lerp(t.m.Perturb(begin), t.m.Perturb(left), b)
	boundaryColor := metrics.LerpColor(beginColor, leftColor, b)

	t.triangulateBoundaryTriangle(right, rightCell, begin, beginCell, boundary, boundaryColor)

	if leftCell.EdgeTypeTo(rightCell) == hex.Slope {
		t.triangulateBoundaryTriangle(left, leftCell, right, rightCell, boundary, boundaryColor)
	} else {
		t.terrain.AddTriangleUnperturbed(t.m.Perturb(left), t.m.Perturb(right), boundary)
		t.terrain.AddTriangleColor(leftColor, t.m.Color(rightCell.TerrainType()), boundaryColor)
	}
}

// triangulateBoundaryTriangle fans the terraces from begin to left into a
// single boundary point, which is already perturbed.
func (t *Triangulator) triangulateBoundaryTriangle(
	begin mgl32.Vec3, beginCell *grid.Cell,
	left mgl32.Vec3, leftCell *grid.Cell,
	boundary mgl32.Vec3, boundaryColor mgl32.Vec4,
) {
	beginColor := t.m.Color(beginCell.TerrainType())
	leftColor := t.m.Color(leftCell.TerrainType())

	v2 := t.m.Perturb(t.m.TerraceLerp(begin, left, 1))
	c2 := t.m.TerraceColorLerp(beginColor, leftColor, 1)

	t.terrain.AddTriangleUnperturbed(t.m.Perturb(begin), v2, boundary)
	t.terrain.AddTriangleColor(beginColor, c2, boundaryColor)

	for i := 2; i < t.m.TerraceSteps; i++ {
		v1, c1 := v2, c2
		v2 = t.m.Perturb(t.m.TerraceLerp(begin, left, i))
		c2 = t.m.TerraceColorLerp(beginColor, leftColor, i)
		t.terrain.AddTriangleUnperturbed(v1, v2, boundary)
		t.terrain.AddTriangleColor(c1, c2, boundaryColor)
	}

	t.terrain.AddTriangleUnperturbed(v2, t.m.Perturb(left), boundary)
	t.terrain.AddTriangleColor(c2, leftColor, boundaryColor)
}

// boundaryFactor is the fraction of a cliff covered by one elevation step.
// It is only defined across cliffs; anything else is a classification bug.
func boundaryFactor(low, high int) float32 {
	delta := high - low
	if delta < 0 {
		delta = -delta
	}
	if delta < 2 {
		panic(fmt.Sprintf("meshing: boundary interpolation across %d elevation steps, need a cliff (>= 2)", delta))
	}
	return 1 / float32(delta)
}
