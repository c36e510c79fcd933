package grid

import "hexmesh/internal/hex"

// noNeighbor marks an empty neighbor slot at the grid boundary.
const noNeighbor = -1

// Cell is one hex of the terrain model. Cells live in the grid's arena and
// refer to their neighbors by slot index; fields are only written through
// the Grid mutation methods so the river/road/special invariants hold.
type Cell struct {
	index       int
	col, row    int
	coordinates hex.Coordinates
	chunk       int

	elevation    int
	terrainType  int
	waterLevel   int
	specialIndex int
	walled       bool

	roads [hex.DirectionCount]bool

	hasIncomingRiver, hasOutgoingRiver bool
	incomingRiver, outgoingRiver       hex.Direction

	neighbors [hex.DirectionCount]int
}

// Index is the cell's slot in the grid arena.
func (c *Cell) Index() int                   { return c.index }
func (c *Cell) Col() int                     { return c.col }
func (c *Cell) Row() int                     { return c.row }
func (c *Cell) Coordinates() hex.Coordinates { return c.coordinates }
func (c *Cell) Chunk() int                   { return c.chunk }

func (c *Cell) Elevation() int    { return c.elevation }
func (c *Cell) TerrainType() int  { return c.terrainType }
func (c *Cell) WaterLevel() int   { return c.waterLevel }
func (c *Cell) SpecialIndex() int { return c.specialIndex }
func (c *Cell) Walled() bool      { return c.walled }

// IsSpecial reports whether a special feature occupies the cell.
func (c *Cell) IsSpecial() bool {
	return c.specialIndex > 0
}

// IsUnderwater reports whether the water level is above the cell floor.
func (c *Cell) IsUnderwater() bool {
	return c.waterLevel > c.elevation
}

func (c *Cell) HasIncomingRiver() bool       { return c.hasIncomingRiver }
func (c *Cell) HasOutgoingRiver() bool       { return c.hasOutgoingRiver }
func (c *Cell) IncomingRiver() hex.Direction { return c.incomingRiver }
func (c *Cell) OutgoingRiver() hex.Direction { return c.outgoingRiver }
func (c *Cell) HasRiver() bool               { return c.hasIncomingRiver || c.hasOutgoingRiver }
func (c *Cell) HasRiverBeginOrEnd() bool     { return c.hasIncomingRiver != c.hasOutgoingRiver }

// HasRoadThroughEdge reports whether a road crosses edge d.
func (c *Cell) HasRoadThroughEdge(d hex.Direction) bool {
	return c.roads[d]
}

// RiverBeginOrEndDirection is the single river direction of a source or
// sink cell.
func (c *Cell) RiverBeginOrEndDirection() hex.Direction {
	if c.hasIncomingRiver {
		return c.incomingRiver
	}
	return c.outgoingRiver
}

// HasRiverThroughEdge reports whether a river enters or leaves through d.
func (c *Cell) HasRiverThroughEdge(d hex.Direction) bool {
	return c.hasIncomingRiver && c.incomingRiver == d ||
		c.hasOutgoingRiver && c.outgoingRiver == d
}

// HasRoads reports whether any edge carries a road.
func (c *Cell) HasRoads() bool {
	for _, r := range c.roads {
		if r {
			return true
		}
	}
	return false
}

// NeighborIndex returns the arena slot of the neighbor in direction d.
func (c *Cell) NeighborIndex(d hex.Direction) (int, bool) {
	n := c.neighbors[d]
	return n, n != noNeighbor
}

// EdgeTypeTo classifies the edge between c and other.
func (c *Cell) EdgeTypeTo(other *Cell) hex.EdgeType {
	return hex.Classify(c.elevation, other.elevation)
}

func (c *Cell) elevationDifference(other *Cell) int {
	d := c.elevation - other.elevation
	if d < 0 {
		return -d
	}
	return d
}

// isValidRiverDestination: water only flows downhill or into a lake whose
// surface sits at the neighbor floor.
func (c *Cell) isValidRiverDestination(neighbor *Cell) bool {
	return neighbor != nil && (c.elevation >= neighbor.elevation || c.waterLevel == neighbor.elevation)
}
