// Package export writes triangulated layers to disk for inspection in
// external tools.
package export

import (
	"bufio"
	"fmt"
	"io"

	"hexmesh/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// WriteOBJ writes the given meshes as a single Wavefront OBJ object. Terrain
// colors go out as vertex colors after the position, UVs as vt records.
// Faces keep the meshes' winding.
func WriteOBJ(w io.Writer, name string, meshes ...*meshing.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "o %s\n", name)

	base := 1
	for _, m := range meshes {
		withColor := len(m.Colors) == len(m.Positions)
		withUV := len(m.UV) == len(m.Positions) && len(m.UV) > 0

		for i, p := range m.Positions {
			if withColor {
				c := m.Colors[i]
				fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", p[0], p[1], p[2], c[0], c[1], c[2])
			} else {
				fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
			}
		}
		if withUV {
			for _, uv := range m.UV {
				fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
			}
		}
		for i := 0; i+2 < len(m.Indices); i += 3 {
			a := base + int(m.Indices[i])
			b := base + int(m.Indices[i+1])
			c := base + int(m.Indices[i+2])
			if withUV {
				fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
			}
		}
		base += len(m.Positions)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj %s: %w", name, err)
	}
	return nil
}

// Placements lists the model instances produced alongside the layers.
type Placements struct {
	Bridges []BridgePlacement `yaml:"bridges"`
	Towers  []TowerPlacement  `yaml:"towers"`
}

type BridgePlacement struct {
	Chunk     int        `yaml:"chunk"`
	Position  [3]float32 `yaml:"position,flow"`
	Direction [3]float32 `yaml:"direction,flow"`
	Scale     float32    `yaml:"scale"`
}

type TowerPlacement struct {
	Chunk    int        `yaml:"chunk"`
	Position [3]float32 `yaml:"position,flow"`
	Right    [3]float32 `yaml:"right,flow"`
}

// CollectPlacements gathers bridges and towers from chunk meshes in chunk
// order.
func CollectPlacements(chunks []*meshing.ChunkMesh) Placements {
	var p Placements
	for _, cm := range chunks {
		for _, b := range cm.Bridges {
			p.Bridges = append(p.Bridges, BridgePlacement{
				Chunk:     cm.Chunk,
				Position:  vec(b.Position),
				Direction: vec(b.Direction),
				Scale:     b.Scale,
			})
		}
		for _, t := range cm.Towers {
			p.Towers = append(p.Towers, TowerPlacement{
				Chunk:    cm.Chunk,
				Position: vec(t.Position),
				Right:    vec(t.Right),
			})
		}
	}
	return p
}

// WritePlacements encodes p as YAML.
func WritePlacements(w io.Writer, p Placements) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("write placements: %w", err)
	}
	return enc.Close()
}

func vec(v mgl32.Vec3) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}
