package meshing

import (
	"hexmesh/internal/grid"
	"hexmesh/internal/hex"
	"hexmesh/internal/metrics"

	"github.com/go-gl/mathgl/mgl32"
)

func (t *Triangulator) walled(c *grid.Cell) bool {
	return t.features.Walls && c.Walled()
}

// addEdgeWall raises a wall along the connection between near and far when
// exactly one of them is walled. Rivers and roads leave a capped gap in the
// middle.
func (t *Triangulator) addEdgeWall(near metrics.EdgeVertices, nearCell *grid.Cell, far metrics.EdgeVertices, farCell *grid.Cell, hasRiver, hasRoad bool) {
	if t.walled(nearCell) == t.walled(farCell) ||
		t.underwater(nearCell) || t.underwater(farCell) ||
		nearCell.EdgeTypeTo(farCell) == hex.Cliff {
		return
	}

	t.addWallSegment(near.V1, far.V1, near.V2, far.V2, false)
	if hasRiver || hasRoad {
		t.addWallCap(near.V2, far.V2)
		t.addWallCap(far.V4, near.V4)
	} else {
		t.addWallSegment(near.V2, far.V2, near.V3, far.V3, false)
		t.addWallSegment(near.V3, far.V3, near.V4, far.V4, false)
	}
	t.addWallSegment(near.V4, far.V4, near.V5, far.V5, false)
}

// addCornerWall rotates the corner so the odd cell out becomes the pivot.
func (t *Triangulator) addCornerWall(
	c1 mgl32.Vec3, cell1 *grid.Cell,
	c2 mgl32.Vec3, cell2 *grid.Cell,
	c3 mgl32.Vec3, cell3 *grid.Cell,
) {
	w1, w2, w3 := t.walled(cell1), t.walled(cell2), t.walled(cell3)
	switch {
	case w1 && w2 && !w3:
		t.addCornerWallSegment(c3, cell3, c1, cell1, c2, cell2)
	case w1 && !w2 && w3:
		t.addCornerWallSegment(c2, cell2, c3, cell3, c1, cell1)
	case w1 && !w2 && !w3:
		t.addCornerWallSegment(c1, cell1, c2, cell2, c3, cell3)
	case !w1 && w2 && w3:
		t.addCornerWallSegment(c1, cell1, c2, cell2, c3, cell3)
	case !w1 && w2 && !w3:
		t.addCornerWallSegment(c2, cell2, c3, cell3, c1, cell1)
	case !w1 && !w2 && w3:
		t.addCornerWallSegment(c3, cell3, c1, cell1, c2, cell2)
	}
}

// addCornerWallSegment builds the wall piece around pivot, whose walled
// flag differs from both other cells. Cliffs and water end the wall with a
// wedge or a cap.
func (t *Triangulator) addCornerWallSegment(
	pivot mgl32.Vec3, pivotCell *grid.Cell,
	left mgl32.Vec3, leftCell *grid.Cell,
	right mgl32.Vec3, rightCell *grid.Cell,
) {
	if t.underwater(pivotCell) {
		return
	}
	hasLeftWall := !t.underwater(leftCell) && pivotCell.EdgeTypeTo(leftCell) != hex.Cliff
	hasRightWall := !t.underwater(rightCell) && pivotCell.EdgeTypeTo(rightCell) != hex.Cliff

	switch {
	case hasLeftWall && hasRightWall:
		hasTower := false
		if leftCell.Elevation() == rightCell.Elevation() {
			h := t.m.SampleHashGrid(pivot.Add(left).Add(right).Mul(1.0 / 3.0))
			hasTower = h.E < t.m.WallTowerThreshold
		}
		t.addWallSegment(pivot, left, pivot, right, hasTower)
	case hasLeftWall && leftCell.Elevation() < rightCell.Elevation():
		t.addWallWedge(pivot, left, right)
	case hasLeftWall:
		t.addWallCap(pivot, left)
	case hasRightWall && rightCell.Elevation() < leftCell.Elevation():
		t.addWallWedge(right, pivot, left)
	case hasRightWall:
		t.addWallCap(right, pivot)
	}
}

// addWallSegment builds the inner face, outer face and top of one wall
// piece running from the left near/far pair to the right pair.
func (t *Triangulator) addWallSegment(nearLeft, farLeft, nearRight, farRight mgl32.Vec3, addTower bool) {
	nearLeft = t.m.Perturb(nearLeft)
	farLeft = t.m.Perturb(farLeft)
	nearRight = t.m.Perturb(nearRight)
	farRight = t.m.Perturb(farRight)

	left := t.m.WallLerp(nearLeft, farLeft)
	right := t.m.WallLerp(nearRight, farRight)
	leftOffset := t.m.WallThicknessOffset(nearLeft, farLeft)
	rightOffset := t.m.WallThicknessOffset(nearRight, farRight)
	leftTop := left.Y() + t.m.WallHeight
	rightTop := right.Y() + t.m.WallHeight

	v1 := left.Sub(leftOffset)
	v2 := right.Sub(rightOffset)
	v3, v4 := v1, v2
	v3[1], v4[1] = leftTop, rightTop
	t.walls.AddQuadUnperturbed(v1, v2, v3, v4)

	t1, t2 := v3, v4

	v1 = left.Add(leftOffset)
	v2 = right.Add(rightOffset)
	v3, v4 = v1, v2
	v3[1], v4[1] = leftTop, rightTop
	t.walls.AddQuadUnperturbed(v2, v1, v4, v3)

	t.walls.AddQuadUnperturbed(t1, t2, v3, v4)

	if addTower {
		rightDir := right.Sub(left)
		rightDir[1] = 0
		if l := rightDir.Len(); l > 0 {
			rightDir = rightDir.Mul(1 / l)
		}
		t.out.Towers = append(t.out.Towers, Tower{
			Position: left.Add(right).Mul(0.5),
			Right:    rightDir,
		})
	}
}

// addWallCap closes the end of a wall with a single quad.
func (t *Triangulator) addWallCap(near, far mgl32.Vec3) {
	near = t.m.Perturb(near)
	far = t.m.Perturb(far)

	center := t.m.WallLerp(near, far)
	thickness := t.m.WallThicknessOffset(near, far)

	v1 := center.Sub(thickness)
	v2 := center.Add(thickness)
	v3, v4 := v1, v2
	v3[1] = center.Y() + t.m.WallHeight
	v4[1] = v3[1]
	t.walls.AddQuadUnperturbed(v1, v2, v3, v4)
}

// addWallWedge leans the end of a wall against a cliff at point.
func (t *Triangulator) addWallWedge(near, far, point mgl32.Vec3) {
	near = t.m.Perturb(near)
	far = t.m.Perturb(far)
	point = t.m.Perturb(point)

	center := t.m.WallLerp(near, far)
	thickness := t.m.WallThicknessOffset(near, far)
	top := center.Y() + t.m.WallHeight

	v1 := center.Sub(thickness)
	v2 := center.Add(thickness)
	v3, v4 := v1, v2
	v3[1], v4[1] = top, top
	point[1] = center.Y()
	pointTop := point
	pointTop[1] = top

	t.walls.AddQuadUnperturbed(v1, point, v3, pointTop)
	t.walls.AddQuadUnperturbed(point, v2, pointTop, v4)
	t.walls.AddTriangleUnperturbed(pointTop, v3, v4)
}
