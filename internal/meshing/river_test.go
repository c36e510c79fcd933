package meshing

import (
	"testing"

	"hexmesh/internal/grid"
	"hexmesh/internal/hex"
	"hexmesh/internal/metrics"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWaterfallClipsAtWaterSurface(t *testing.T) {
	m := flatMetrics()
	g := newGrid(t, 1, 1, 2, 1)
	src := cellAt(t, g, 0, 0)
	dst := cellAt(t, g, 1, 0)
	g.SetElevation(src.Index(), 3)
	g.SetElevation(dst.Index(), 1)
	g.SetWaterLevel(dst.Index(), 2)
	g.SetOutgoingRiver(src.Index(), hex.E)
	if !src.HasOutgoingRiver() {
		t.Fatalf("river was not created")
	}

	cm := build(m, AllFeatures(), g, 0)
	checkStreams(t, cm)
	rivers := cm.Layer(Rivers)

	// source end fan quad + triangle, then the waterfall; the submerged
	// destination has no river surface
	if got := rivers.VertexCount(); got != 11 {
		t.Fatalf("river vertices: got %d, want 11", got)
	}
	fall := rivers.Positions[7:11]
	top := m.RiverSurfaceY(src.Elevation())
	water := m.WaterSurfaceY(dst.WaterLevel())
	if fall[0].Y() != top || fall[1].Y() != top {
		t.Fatalf("waterfall top: got %v/%v, want %v", fall[0].Y(), fall[1].Y(), top)
	}
	if fall[2].Y() != water || fall[3].Y() != water {
		t.Fatalf("waterfall bottom: got %v/%v, want water surface %v", fall[2].Y(), fall[3].Y(), water)
	}
	if bed := m.RiverSurfaceY(dst.Elevation()); water == bed {
		t.Fatalf("test setup: water surface equals river floor")
	}
}

func TestStraightRiverQuads(t *testing.T) {
	m := flatMetrics()
	g := newGrid(t, 1, 1, 3, 1)
	a, b := cellAt(t, g, 0, 0), cellAt(t, g, 1, 0)
	g.SetOutgoingRiver(a.Index(), hex.E)
	g.SetOutgoingRiver(b.Index(), hex.E)

	cm := build(m, AllFeatures(), g, 0)
	checkStreams(t, cm)
	rivers := cm.Layer(Rivers)
	// a: end quad+triangle, connection quad; b: two channel quads on
	// each side plus its E connection; c: end quad+triangle
	want := (4 + 3 + 4) + (4*4 + 4) + (4 + 3)
	if got := rivers.VertexCount(); got != want {
		t.Fatalf("river vertices: got %d, want %d", got, want)
	}
	surface := m.RiverSurfaceY(0)
	for i, p := range rivers.Positions {
		if p.Y() != surface {
			t.Fatalf("vertex %d: y = %v, want %v", i, p.Y(), surface)
		}
	}
}

func TestRiverChannelCutsStreamBed(t *testing.T) {
	m := flatMetrics()
	g := newGrid(t, 1, 1, 2, 1)
	g.SetOutgoingRiver(cellAt(t, g, 0, 0).Index(), hex.E)
	cm := build(m, AllFeatures(), g, 0)

	bed := m.StreamBedY(0)
	found := false
	for _, p := range cm.Layer(Terrain).Positions {
		if p.Y() == bed {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no terrain vertex at stream bed height %v", bed)
	}
}

func TestEstuaryOnlyLayerWithUV2(t *testing.T) {
	m := flatMetrics()
	g := newGrid(t, 1, 1, 2, 1)
	land := cellAt(t, g, 0, 0)
	lake := cellAt(t, g, 1, 0)
	g.SetElevation(land.Index(), 1)
	g.SetWaterLevel(lake.Index(), 1)
	g.SetOutgoingRiver(land.Index(), hex.E)
	if !lake.HasIncomingRiver() || !lake.IsUnderwater() {
		t.Fatalf("test setup: lake must be submerged with an incoming river")
	}

	cm := build(m, AllFeatures(), g, 0)
	checkStreams(t, cm)
	est := cm.Layer(Estuaries)
	if got := est.VertexCount(); got != 11 {
		t.Fatalf("estuary vertices: got %d, want 11", got)
	}
	if len(est.UV2) != est.VertexCount() {
		t.Fatalf("estuary uv2: got %d, want %d", len(est.UV2), est.VertexCount())
	}
	// incoming river: flow UV2 starts above 1
	if est.UV2[0].Y() != 1 || est.UV2[0].X() != 1.5 {
		t.Fatalf("incoming estuary uv2[0] = %v", est.UV2[0])
	}
	for l := Layer(0); l < LayerCount; l++ {
		if l != Estuaries && len(cm.Layer(l).UV2) != 0 {
			t.Fatalf("%v carries uv2", l)
		}
	}
}

func TestEstuaryFlowDependsOnRiverDirection(t *testing.T) {
	m := flatMetrics()
	g := newGrid(t, 1, 1, 2, 1)
	land := cellAt(t, g, 0, 0)
	lake := cellAt(t, g, 1, 0)
	g.SetElevation(land.Index(), 1)
	g.SetWaterLevel(lake.Index(), 1)
	g.SetOutgoingRiver(land.Index(), hex.E)
	incoming := build(m, AllFeatures(), g, 0).Layer(Estuaries)

	// the lake overflows into the land cell instead
	g.RemoveRiver(land.Index())
	g.SetOutgoingRiver(lake.Index(), hex.W)
	if !lake.HasOutgoingRiver() || !land.HasIncomingRiver() {
		t.Fatalf("test setup: lake did not overflow into the land cell")
	}
	cm := build(m, AllFeatures(), g, 0)
	checkStreams(t, cm)
	outgoing := cm.Layer(Estuaries)

	if got := outgoing.VertexCount(); got != 11 {
		t.Fatalf("outgoing estuary vertices: got %d, want 11", got)
	}
	if want := (mgl32.Vec2{-0.5, -0.2}); outgoing.UV2[0] != want {
		t.Fatalf("outgoing estuary uv2[0]: got %v, want %v", outgoing.UV2[0], want)
	}
	if want := (mgl32.Vec2{1.5, -0.2}); outgoing.UV2[10] != want {
		t.Fatalf("outgoing estuary uv2[10]: got %v, want %v", outgoing.UV2[10], want)
	}
	if !equalSlices(incoming.Positions, outgoing.Positions) {
		t.Fatalf("estuary geometry changed with the flow direction")
	}
	if equalSlices(incoming.UV2, outgoing.UV2) {
		t.Fatalf("incoming and outgoing estuaries share uv2")
	}
	if !equalSlices(incoming.UV, outgoing.UV) {
		t.Fatalf("estuary shore uv changed with the flow direction")
	}
}

func TestRiverBeginAndEndFans(t *testing.T) {
	m := flatMetrics()
	g := newGrid(t, 1, 1, 2, 1)
	g.SetOutgoingRiver(cellAt(t, g, 0, 0).Index(), hex.E)
	rivers := build(m, AllFeatures(), g, 0).Layer(Rivers)
	surface := m.RiverSurfaceY(0)

	// source: quad 0-3, fan 4-6, connection 7-10; mouth: quad 11-14, fan 15-17
	if got := rivers.VertexCount(); got != 18 {
		t.Fatalf("river vertices: got %d, want 18", got)
	}
	source := m.CellCenter(0, 0)
	source[1] = surface
	if rivers.Positions[4] != source {
		t.Fatalf("source fan apex: got %v, want %v", rivers.Positions[4], source)
	}
	mouth := m.CellCenter(1, 0)
	mouth[1] = surface
	if !rivers.Positions[15].ApproxEqualThreshold(mouth, 1e-5) {
		t.Fatalf("mouth fan apex: got %v, want %v", rivers.Positions[15], mouth)
	}

	// flow runs away from the source apex and toward the mouth apex
	wantSource := []mgl32.Vec2{{0.5, 0.4}, {0, 0.6}, {1, 0.6}}
	wantMouth := []mgl32.Vec2{{0.5, 0.4}, {1, 0.2}, {0, 0.2}}
	if !equalSlices(rivers.UV[4:7], wantSource) {
		t.Fatalf("source fan uv: got %v, want %v", rivers.UV[4:7], wantSource)
	}
	if !equalSlices(rivers.UV[15:18], wantMouth) {
		t.Fatalf("mouth fan uv: got %v, want %v", rivers.UV[15:18], wantMouth)
	}
}

// bentRiver routes a river into the middle cell of a 3x3 grid from the west
// and out through out.
func bentRiver(t *testing.T, out hex.Direction) (*grid.Grid, *grid.Cell) {
	t.Helper()
	g := newGrid(t, 1, 1, 3, 3)
	b := cellAt(t, g, 1, 1)
	w, _ := g.Neighbor(b, hex.W)
	g.SetOutgoingRiver(w.Index(), hex.E)
	g.SetOutgoingRiver(b.Index(), out)
	if b.IncomingRiver() != hex.W || !b.HasOutgoingRiver() || b.OutgoingRiver() != out {
		t.Fatalf("test setup: river through middle cell is %v→%v", b.IncomingRiver(), b.OutgoingRiver())
	}
	return g, b
}

func TestSharpBendChannelHugsCorner(t *testing.T) {
	m := flatMetrics()
	g, b := bentRiver(t, hex.NW)
	cm := build(m, AllFeatures(), g, 0)
	checkStreams(t, cm)
	rivers := cm.Layer(Rivers)
	surface := m.RiverSurfaceY(0)

	center := m.CellCenter(b.Col(), b.Row())
	inner := center
	inner[1] = surface
	// the outer bank is pulled two thirds toward the shared corner
	outer := metrics.Lerp(center, center.Add(m.SecondSolidCorner(hex.W)), 2.0/3.0)
	outer[1] = surface

	if countVertex(rivers.Positions, inner) == 0 {
		t.Fatalf("sharp bend: no river vertex at the cell center %v", inner)
	}
	if countVertex(rivers.Positions, outer) == 0 {
		t.Fatalf("sharp bend: no river vertex at the corner bank %v", outer)
	}
	straight := center.Add(m.FirstSolidCorner(hex.SW).Mul(0.25))
	straight[1] = surface
	if countVertex(rivers.Positions, straight) != 0 {
		t.Fatalf("sharp bend uses the straight channel offset")
	}
}

func TestGentleCurveChannelBulges(t *testing.T) {
	m := flatMetrics()
	g, b := bentRiver(t, hex.NE)
	cm := build(m, AllFeatures(), g, 0)
	checkStreams(t, cm)
	rivers := cm.Layer(Rivers)
	surface := m.RiverSurfaceY(0)

	center := m.CellCenter(b.Col(), b.Row())
	inner := center
	inner[1] = surface
	bulge := center.Add(m.SolidEdgeMiddle(hex.NW).Mul(0.5 * metrics.InnerToOuter))
	bulge[1] = surface

	if countVertex(rivers.Positions, inner) == 0 {
		t.Fatalf("gentle curve: no river vertex at the cell center %v", inner)
	}
	// the W and NE channels share the bulge vertex on the inside of the curve
	if got := countVertex(rivers.Positions, bulge); got < 2 {
		t.Fatalf("gentle curve: bulge vertex %v used %d times, want at least 2", bulge, got)
	}
}
