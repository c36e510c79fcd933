// Package metrics is the immutable geometric context shared by every
// triangulation call: cell dimensions, terrace and wall constants, the
// perturbation noise and the hash grid.
package metrics

import (
	"hexmesh/internal/hex"
	"hexmesh/internal/noise"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	OuterToInner = 0.866025404
	InnerToOuter = 1 / OuterToInner
)

// Params are the tunable constants. Zero values are not valid; start from
// DefaultParams.
type Params struct {
	OuterRadius              float32 `yaml:"outerRadius"`
	SolidFactor              float32 `yaml:"solidFactor"`
	WaterFactor              float32 `yaml:"waterFactor"`
	ElevationStep            float32 `yaml:"elevationStep"`
	TerracesPerSlope         int     `yaml:"terracesPerSlope"`
	CellPerturbStrength      float32 `yaml:"cellPerturbStrength"`
	ElevationPerturbStrength float32 `yaml:"elevationPerturbStrength"`
	NoiseScale               float32 `yaml:"noiseScale"`
	StreamBedOffset          float32 `yaml:"streamBedOffset"`
	WaterSurfaceOffset       float32 `yaml:"waterSurfaceOffset"`
	WallHeight               float32 `yaml:"wallHeight"`
	WallYOffset              float32 `yaml:"wallYOffset"`
	WallThickness            float32 `yaml:"wallThickness"`
	WallTowerThreshold       float32 `yaml:"wallTowerThreshold"`
	BridgeDesignLength       float32 `yaml:"bridgeDesignLength"`
	HashGridSize             int     `yaml:"hashGridSize"`
	HashGridScale            float32 `yaml:"hashGridScale"`

	// Palette maps terrain type indices to vertex colors.
	Palette []mgl32.Vec4 `yaml:"-"`
}

// DefaultPalette colors terrain types 0..4: sand, grass, mud, stone, snow.
var DefaultPalette = []mgl32.Vec4{
	{0.89, 0.80, 0.55, 1},
	{0.44, 0.62, 0.27, 1},
	{0.47, 0.36, 0.25, 1},
	{0.55, 0.55, 0.55, 1},
	{0.95, 0.95, 0.97, 1},
}

// DefaultParams returns the standard cell dimensions: five terrace steps,
// 80% solid cells and walls four units high.
func DefaultParams() Params {
	return Params{
		OuterRadius:              10,
		SolidFactor:              0.8,
		WaterFactor:              0.6,
		ElevationStep:            3,
		TerracesPerSlope:         2,
		CellPerturbStrength:      4,
		ElevationPerturbStrength: 1.5,
		NoiseScale:               0.003,
		StreamBedOffset:          -1.75,
		WaterSurfaceOffset:       -0.5,
		WallHeight:               4,
		WallYOffset:              -1,
		WallThickness:            0.75,
		WallTowerThreshold:       0.5,
		BridgeDesignLength:       7,
		HashGridSize:             256,
		HashGridScale:            0.25,
		Palette:                  DefaultPalette,
	}
}

// Metrics is built once per world and never mutated.
type Metrics struct {
	Params

	InnerRadius      float32
	BlendFactor      float32
	WaterBlendFactor float32
	TerraceSteps     int

	horizontalTerraceStep float32
	verticalTerraceStep   float32
	wallElevationOffset   float32

	corners [hex.DirectionCount + 1]mgl32.Vec3
	noise   noise.Sampler
	hash    *noise.HashGrid
}

// New derives the full context. A nil sampler disables perturbation and a
// nil hash grid is replaced by one seeded with zero.
func New(p Params, sampler noise.Sampler, hash *noise.HashGrid) *Metrics {
	if sampler == nil {
		sampler = noise.Flat()
	}
	if hash == nil {
		hash = noise.NewHashGrid(0, p.HashGridSize, p.HashGridScale)
	}
	if len(p.Palette) == 0 {
		p.Palette = DefaultPalette
	}
	m := &Metrics{
		Params:           p,
		InnerRadius:      p.OuterRadius * OuterToInner,
		BlendFactor:      1 - p.SolidFactor,
		WaterBlendFactor: 1 - p.WaterFactor,
		TerraceSteps:     p.TerracesPerSlope*2 + 1,
		noise:            sampler,
		hash:             hash,
	}
	m.horizontalTerraceStep = 1 / float32(m.TerraceSteps)
	m.verticalTerraceStep = 1 / float32(p.TerracesPerSlope+1)
	m.wallElevationOffset = m.verticalTerraceStep

	r, ir := p.OuterRadius, m.InnerRadius
	m.corners = [hex.DirectionCount + 1]mgl32.Vec3{
		{0, 0, r},
		{ir, 0, 0.5 * r},
		{ir, 0, -0.5 * r},
		{0, 0, -r},
		{-ir, 0, -0.5 * r},
		{-ir, 0, 0.5 * r},
		{0, 0, r},
	}
	return m
}

// Color returns the palette color for a terrain type, clamping out of range
// indices to the last entry.
func (m *Metrics) Color(terrainType int) mgl32.Vec4 {
	if terrainType < 0 {
		terrainType = 0
	}
	if terrainType >= len(m.Palette) {
		terrainType = len(m.Palette) - 1
	}
	return m.Palette[terrainType]
}

func (m *Metrics) FirstCorner(d hex.Direction) mgl32.Vec3 {
	return m.corners[d]
}

func (m *Metrics) SecondCorner(d hex.Direction) mgl32.Vec3 {
	return m.corners[d+1]
}

func (m *Metrics) FirstSolidCorner(d hex.Direction) mgl32.Vec3 {
	return m.corners[d].Mul(m.SolidFactor)
}

func (m *Metrics) SecondSolidCorner(d hex.Direction) mgl32.Vec3 {
	return m.corners[d+1].Mul(m.SolidFactor)
}

// SolidEdgeMiddle is the midpoint of the solid edge in direction d.
func (m *Metrics) SolidEdgeMiddle(d hex.Direction) mgl32.Vec3 {
	return m.corners[d].Add(m.corners[d+1]).Mul(0.5 * m.SolidFactor)
}

// Bridge is the offset from a solid edge to the neighbor's solid edge.
func (m *Metrics) Bridge(d hex.Direction) mgl32.Vec3 {
	return m.corners[d].Add(m.corners[d+1]).Mul(m.BlendFactor)
}

func (m *Metrics) FirstWaterCorner(d hex.Direction) mgl32.Vec3 {
	return m.corners[d].Mul(m.WaterFactor)
}

func (m *Metrics) SecondWaterCorner(d hex.Direction) mgl32.Vec3 {
	return m.corners[d+1].Mul(m.WaterFactor)
}

func (m *Metrics) WaterBridge(d hex.Direction) mgl32.Vec3 {
	return m.corners[d].Add(m.corners[d+1]).Mul(m.WaterBlendFactor)
}

// CellCenter places the cell at offset (col,row) on the XZ plane.
func (m *Metrics) CellCenter(col, row int) mgl32.Vec3 {
	x := (float32(col) + float32(row)*0.5 - float32(row/2)) * (m.InnerRadius * 2)
	z := float32(row) * (m.OuterRadius * 1.5)
	return mgl32.Vec3{x, 0, z}
}

// FromPosition returns the coordinates of the cell whose unperturbed hexagon
// contains position. Y is ignored.
func (m *Metrics) FromPosition(position mgl32.Vec3) hex.Coordinates {
	return hex.FromPlane(position.X(), position.Z(), m.InnerRadius, m.OuterRadius)
}

// CellPosition returns the cell center raised to its elevation, including
// the vertical jitter.
func (m *Metrics) CellPosition(col, row, elevation int) mgl32.Vec3 {
	p := m.CellCenter(col, row)
	p[1] = float32(elevation) * m.ElevationStep
	p[1] += (m.SampleNoise(p).Y()*2 - 1) * m.ElevationPerturbStrength
	return p
}

// StreamBedY, RiverSurfaceY and WaterSurfaceY convert integer levels to heights.
func (m *Metrics) StreamBedY(elevation int) float32 {
	return (float32(elevation) + m.StreamBedOffset) * m.ElevationStep
}

func (m *Metrics) RiverSurfaceY(elevation int) float32 {
	return (float32(elevation) + m.WaterSurfaceOffset) * m.ElevationStep
}

func (m *Metrics) WaterSurfaceY(waterLevel int) float32 {
	return (float32(waterLevel) + m.WaterSurfaceOffset) * m.ElevationStep
}

// SampleHashGrid returns the deterministic hash for a world position.
func (m *Metrics) SampleHashGrid(position mgl32.Vec3) noise.Hash {
	return m.hash.Sample(position)
}
