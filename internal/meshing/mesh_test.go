package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func identity(v mgl32.Vec3) mgl32.Vec3 { return v }

func TestAddQuadWindsTwoTriangles(t *testing.T) {
	m := newMesh(Terrain, identity)
	m.AddTriangle(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1})
	m.AddQuad(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 1})
	want := []uint32{0, 1, 2, 3, 5, 4, 4, 5, 6}
	if !equalSlices(m.Indices, want) {
		t.Fatalf("indices: got %v, want %v", m.Indices, want)
	}
	if m.TriangleCount() != 3 || m.VertexCount() != 7 {
		t.Fatalf("counts: got %d triangles %d vertices, want 3 and 7", m.TriangleCount(), m.VertexCount())
	}
}

func TestAddQuadUVRectCornerOrder(t *testing.T) {
	m := newMesh(Rivers, identity)
	m.AddQuadUVRect(0, 1, 0.4, 0.6)
	want := []mgl32.Vec2{{0, 0.4}, {1, 0.4}, {0, 0.6}, {1, 0.6}}
	if !equalSlices(m.UV, want) {
		t.Fatalf("uv: got %v, want %v", m.UV, want)
	}
}

func TestPerturbOnlyOnPerturbedAdds(t *testing.T) {
	shift := func(v mgl32.Vec3) mgl32.Vec3 { return v.Add(mgl32.Vec3{1, 0, 0}) }
	m := newMesh(Walls, shift)
	m.AddTriangle(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{})
	m.AddTriangleUnperturbed(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{})
	if m.Positions[0].X() != 1 || m.Positions[3].X() != 0 {
		t.Fatalf("perturbation: got %v", m.Positions)
	}
}

func TestClearKeepsCapacity(t *testing.T) {
	cm := NewChunkMesh(0, identity)
	terrain := cm.Layer(Terrain)
	for i := 0; i < 10; i++ {
		terrain.AddQuad(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{})
		terrain.AddQuadColor1(mgl32.Vec4{1, 1, 1, 1})
	}
	cm.Towers = append(cm.Towers, Tower{})
	capBefore := cap(terrain.Positions)
	cm.Clear()
	if terrain.VertexCount() != 0 || len(terrain.Colors) != 0 || len(cm.Towers) != 0 {
		t.Fatalf("clear left data behind")
	}
	if cap(terrain.Positions) != capBefore {
		t.Fatalf("capacity: got %d, want %d", cap(terrain.Positions), capBefore)
	}
}

func TestLayerAttributes(t *testing.T) {
	for l := Layer(0); l < LayerCount; l++ {
		if l.HasUV2() != (l == Estuaries) {
			t.Fatalf("%v: HasUV2 = %v", l, l.HasUV2())
		}
		if l.HasColors() != (l == Terrain) {
			t.Fatalf("%v: HasColors = %v", l, l.HasColors())
		}
	}
	for _, l := range []Layer{Rivers, Roads, WaterShore, Estuaries} {
		if !l.HasUV() {
			t.Fatalf("%v: expected UV", l)
		}
	}
	for _, l := range []Layer{Terrain, Water, Walls} {
		if l.HasUV() {
			t.Fatalf("%v: unexpected UV", l)
		}
	}
}
