package meshing

import "github.com/go-gl/mathgl/mgl32"

// Layer identifies one independently drawn geometry stream.
type Layer uint8

const (
	Terrain Layer = iota
	Rivers
	Roads
	Water
	WaterShore
	Estuaries
	Walls
	LayerCount
)

func (l Layer) String() string {
	switch l {
	case Terrain:
		return "terrain"
	case Rivers:
		return "rivers"
	case Roads:
		return "roads"
	case Water:
		return "water"
	case WaterShore:
		return "water_shore"
	case Estuaries:
		return "estuaries"
	case Walls:
		return "walls"
	}
	return "layer(?)"
}

// HasColors reports whether the layer carries per-vertex colors.
func (l Layer) HasColors() bool { return l == Terrain }

// HasUV reports whether the layer carries a primary UV channel.
func (l Layer) HasUV() bool {
	switch l {
	case Rivers, Roads, WaterShore, Estuaries:
		return true
	}
	return false
}

// HasUV2 reports whether the layer carries a secondary UV channel.
func (l Layer) HasUV2() bool { return l == Estuaries }

// Mesh is the growable vertex/index buffer of one layer. Vertices are never
// shared between triangles; every Add call appends fresh vertices.
type Mesh struct {
	Layer     Layer
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec4
	UV        []mgl32.Vec2
	UV2       []mgl32.Vec2
	Indices   []uint32

	perturb func(mgl32.Vec3) mgl32.Vec3
}

func newMesh(l Layer, perturb func(mgl32.Vec3) mgl32.Vec3) *Mesh {
	return &Mesh{Layer: l, perturb: perturb}
}

// Clear empties every stream, keeping the allocated capacity.
func (m *Mesh) Clear() {
	m.Positions = m.Positions[:0]
	m.Colors = m.Colors[:0]
	m.UV = m.UV[:0]
	m.UV2 = m.UV2[:0]
	m.Indices = m.Indices[:0]
}

// TriangleCount returns the number of triangles in the index list.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// AddTriangle appends a perturbed triangle.
func (m *Mesh) AddTriangle(v1, v2, v3 mgl32.Vec3) {
	m.AddTriangleUnperturbed(m.perturb(v1), m.perturb(v2), m.perturb(v3))
}

// AddTriangleUnperturbed appends a triangle whose positions are used as-is.
func (m *Mesh) AddTriangleUnperturbed(v1, v2, v3 mgl32.Vec3) {
	i := uint32(len(m.Positions))
	m.Positions = append(m.Positions, v1, v2, v3)
	m.Indices = append(m.Indices, i, i+1, i+2)
}

func (m *Mesh) AddTriangleColor(c1, c2, c3 mgl32.Vec4) {
	m.Colors = append(m.Colors, c1, c2, c3)
}

func (m *Mesh) AddTriangleColor1(c mgl32.Vec4) {
	m.Colors = append(m.Colors, c, c, c)
}

func (m *Mesh) AddTriangleUV(uv1, uv2, uv3 mgl32.Vec2) {
	m.UV = append(m.UV, uv1, uv2, uv3)
}

func (m *Mesh) AddTriangleUV2(uv1, uv2, uv3 mgl32.Vec2) {
	m.UV2 = append(m.UV2, uv1, uv2, uv3)
}

// AddQuad appends a perturbed quad. Vertices are given as bottom-left,
// bottom-right, top-left, top-right.
func (m *Mesh) AddQuad(v1, v2, v3, v4 mgl32.Vec3) {
	m.AddQuadUnperturbed(m.perturb(v1), m.perturb(v2), m.perturb(v3), m.perturb(v4))
}

func (m *Mesh) AddQuadUnperturbed(v1, v2, v3, v4 mgl32.Vec3) {
	i := uint32(len(m.Positions))
	m.Positions = append(m.Positions, v1, v2, v3, v4)
	m.Indices = append(m.Indices, i, i+2, i+1, i+1, i+2, i+3)
}

func (m *Mesh) AddQuadColor(c1, c2, c3, c4 mgl32.Vec4) {
	m.Colors = append(m.Colors, c1, c2, c3, c4)
}

// AddQuadColor2 colors the first edge c1 and the second edge c2.
func (m *Mesh) AddQuadColor2(c1, c2 mgl32.Vec4) {
	m.Colors = append(m.Colors, c1, c1, c2, c2)
}

func (m *Mesh) AddQuadColor1(c mgl32.Vec4) {
	m.Colors = append(m.Colors, c, c, c, c)
}

func (m *Mesh) AddQuadUV(uv1, uv2, uv3, uv4 mgl32.Vec2) {
	m.UV = append(m.UV, uv1, uv2, uv3, uv4)
}

// AddQuadUVRect maps the quad onto the [uMin,uMax]×[vMin,vMax] rectangle.
func (m *Mesh) AddQuadUVRect(uMin, uMax, vMin, vMax float32) {
	m.UV = append(m.UV,
		mgl32.Vec2{uMin, vMin},
		mgl32.Vec2{uMax, vMin},
		mgl32.Vec2{uMin, vMax},
		mgl32.Vec2{uMax, vMax},
	)
}

func (m *Mesh) AddQuadUV2(uv1, uv2, uv3, uv4 mgl32.Vec2) {
	m.UV2 = append(m.UV2, uv1, uv2, uv3, uv4)
}

// Bridge places a bridge model across a river. Direction is the unit
// bank-to-bank vector and Scale stretches the model lengthwise.
type Bridge struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Length    float32
	Scale     float32
}

// Tower places a wall tower; Right points along the wall.
type Tower struct {
	Position mgl32.Vec3
	Right    mgl32.Vec3
}

// ChunkMesh is the complete output of one region: all layers plus the
// bridge and tower placements.
type ChunkMesh struct {
	Chunk   int
	Bridges []Bridge
	Towers  []Tower

	layers [LayerCount]*Mesh
}

// NewChunkMesh allocates empty layers that perturb through the given function.
func NewChunkMesh(chunk int, perturb func(mgl32.Vec3) mgl32.Vec3) *ChunkMesh {
	cm := &ChunkMesh{Chunk: chunk}
	for l := Layer(0); l < LayerCount; l++ {
		cm.layers[l] = newMesh(l, perturb)
	}
	return cm
}

// Layer returns the buffer of a layer.
func (cm *ChunkMesh) Layer(l Layer) *Mesh {
	return cm.layers[l]
}

// Clear empties all layers and placements.
func (cm *ChunkMesh) Clear() {
	for _, m := range cm.layers {
		m.Clear()
	}
	cm.Bridges = cm.Bridges[:0]
	cm.Towers = cm.Towers[:0]
}

// TriangleCount sums the triangles of every layer.
func (cm *ChunkMesh) TriangleCount() int {
	n := 0
	for _, m := range cm.layers {
		n += m.TriangleCount()
	}
	return n
}
