// Package scene applies scripted grid edits from YAML files. Each edit runs
// through the grid's mutation API, so the usual precedence rules between
// rivers, roads and special features apply.
//
//	edits:
//	  - op: elevation
//	    cells: [[2, 3], [3, 3]]
//	    value: 2
//	    radius: 1
//	  - op: river
//	    cells: [[2, 3]]
//	    direction: E
//	  - op: walled
//	    points: [[45.5, 30]]
//	    value: 1
//
// Points are world XZ positions resolved to the cell under them, the way an
// editor resolves a click on the terrain.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"hexmesh/internal/grid"
	"hexmesh/internal/hex"
	"hexmesh/internal/metrics"

	"github.com/go-gl/mathgl/mgl32"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownOp  = errors.New("unknown scene op")
	ErrOutOfRange = errors.New("cell out of range")
	ErrNoMetrics  = errors.New("points need metrics")
)

// Op names an edit.
type Op string

const (
	OpElevation   Op = "elevation"
	OpTerrain     Op = "terrain"
	OpWater       Op = "water"
	OpRiver       Op = "river"
	OpRoad        Op = "road"
	OpWalled      Op = "walled"
	OpSpecial     Op = "special"
	OpRemoveRoads Op = "remove-roads"
	OpRemoveRiver Op = "remove-river"

	OpRemoveOutgoingRiver Op = "remove-outgoing-river"
	OpRemoveIncomingRiver Op = "remove-incoming-river"
)

// Edit applies one op to every listed cell. Radius widens each cell into a
// hex brush; brush cells past the map edge are skipped.
type Edit struct {
	Op        Op          `yaml:"op"`
	Cells     [][]int     `yaml:"cells"`  // [col, row] pairs
	Points    [][]float32 `yaml:"points"` // [x, z] world positions
	Value     int         `yaml:"value"`
	Direction string      `yaml:"direction"`
	Radius    int         `yaml:"radius"`
}

type Scene struct {
	Edits []Edit `yaml:"edits"`
}

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &s, nil
}

// Apply runs the edits in order. It stops at the first edit that cannot be
// interpreted; edits before it stay applied. m resolves point edits and may
// be nil when the scene only addresses cells.
func Apply(g *grid.Grid, m *metrics.Metrics, s *Scene) error {
	for i, e := range s.Edits {
		if err := apply(g, m, e); err != nil {
			return fmt.Errorf("edit %d (%s): %w", i, e.Op, err)
		}
	}
	return nil
}

func apply(g *grid.Grid, m *metrics.Metrics, e Edit) error {
	var (
		d   hex.Direction
		run func(i int)
	)
	switch e.Op {
	case OpRiver, OpRoad:
		var ok bool
		d, ok = hex.ParseDirection(e.Direction)
		if !ok {
			return fmt.Errorf("bad direction %q", e.Direction)
		}
	}

	switch e.Op {
	case OpElevation:
		run = func(i int) { g.SetElevation(i, e.Value) }
	case OpTerrain:
		run = func(i int) { g.SetTerrainType(i, e.Value) }
	case OpWater:
		run = func(i int) { g.SetWaterLevel(i, e.Value) }
	case OpRiver:
		run = func(i int) { g.SetOutgoingRiver(i, d) }
	case OpRoad:
		run = func(i int) { g.AddRoad(i, d) }
	case OpWalled:
		run = func(i int) { g.SetWalled(i, e.Value != 0) }
	case OpSpecial:
		run = func(i int) { g.SetSpecialIndex(i, e.Value) }
	case OpRemoveRoads:
		run = g.RemoveRoads
	case OpRemoveRiver:
		run = g.RemoveRiver
	case OpRemoveOutgoingRiver:
		run = g.RemoveOutgoingRiver
	case OpRemoveIncomingRiver:
		run = g.RemoveIncomingRiver
	default:
		return ErrUnknownOp
	}

	centers, err := targets(g, m, e)
	if err != nil {
		return err
	}
	for _, center := range centers {
		for _, i := range brush(g, center, e.Radius) {
			run(i)
		}
	}
	return nil
}

// targets resolves the cells and points of an edit, in that order.
func targets(g *grid.Grid, m *metrics.Metrics, e Edit) ([]*grid.Cell, error) {
	out := make([]*grid.Cell, 0, len(e.Cells)+len(e.Points))
	for _, pair := range e.Cells {
		if len(pair) != 2 {
			return nil, fmt.Errorf("cell %v: want [col, row]", pair)
		}
		c, ok := g.CellAt(pair[0], pair[1])
		if !ok {
			return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, pair[0], pair[1])
		}
		out = append(out, c)
	}
	if len(e.Points) > 0 && m == nil {
		return nil, ErrNoMetrics
	}
	for _, p := range e.Points {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %v: want [x, z]", p)
		}
		co := m.FromPosition(mgl32.Vec3{p[0], 0, p[1]})
		c, ok := g.CellAtCoordinates(co)
		if !ok {
			return nil, fmt.Errorf("%w: point (%g,%g) at %v", ErrOutOfRange, p[0], p[1], co)
		}
		out = append(out, c)
	}
	return out, nil
}

// brush lists the cells within radius steps of center, row by row.
func brush(g *grid.Grid, center *grid.Cell, radius int) []int {
	if radius <= 0 {
		return []int{center.Index()}
	}
	c := center.Coordinates()
	var out []int
	for z := c.Z - radius; z <= c.Z+radius; z++ {
		for x := c.X - radius; x <= c.X+radius; x++ {
			co := hex.New(x, z)
			if co.DistanceTo(c) > radius {
				continue
			}
			if cell, ok := g.CellAtCoordinates(co); ok {
				out = append(out, cell.Index())
			}
		}
	}
	return out
}
