package grid

import "hexmesh/internal/hex"

// The mutation API. Every method takes an arena index; unknown indices are
// ignored. Conflicts are resolved by precedence instead of errors: a river
// clears the road on its edge and any special feature, a special feature
// clears rivers and roads, and roads never cross cliffs or rivers.

// SetElevation raises or lowers a cell, dropping rivers that would now flow
// uphill and roads that now cross a cliff.
func (g *Grid) SetElevation(i, elevation int) {
	c := g.Cell(i)
	if c == nil || c.elevation == elevation {
		return
	}
	c.elevation = elevation
	g.validateRivers(c)
	for _, d := range hex.Directions {
		if !c.roads[d] {
			continue
		}
		if n := g.neighbor(c, d); n != nil && c.elevationDifference(n) > 1 {
			g.setRoad(c, d, false)
		}
	}
	g.refresh(c)
}

// SetTerrainType changes the surface type index used for vertex colors.
func (g *Grid) SetTerrainType(i, terrainType int) {
	c := g.Cell(i)
	if c == nil || c.terrainType == terrainType {
		return
	}
	c.terrainType = terrainType
	g.refresh(c)
}

// SetWaterLevel changes the water level and revalidates rivers, since a lake
// can make an uphill river valid or invalid. It does not keep adjacent
// underwater cells at the same level; callers that need that check it with
// ValidateWater.
func (g *Grid) SetWaterLevel(i, level int) {
	c := g.Cell(i)
	if c == nil || c.waterLevel == level {
		return
	}
	c.waterLevel = level
	g.validateRivers(c)
	g.refresh(c)
}

// SetWalled toggles the wall flag.
func (g *Grid) SetWalled(i int, walled bool) {
	c := g.Cell(i)
	if c == nil || c.walled == walled {
		return
	}
	c.walled = walled
	g.refresh(c)
}

// SetSpecialIndex places (index > 0) or clears (0) a special feature.
// Placing one removes the cell's rivers and roads.
func (g *Grid) SetSpecialIndex(i, index int) {
	c := g.Cell(i)
	if c == nil || c.specialIndex == index {
		return
	}
	if index > 0 {
		g.removeRiver(c)
		g.removeRoads(c)
	}
	c.specialIndex = index
	g.refreshSelfOnly(c)
}

// SetOutgoingRiver starts a river leaving the cell through d. Nothing happens
// when there is no neighbor or the water would run uphill. Any road on that
// edge and the special features of both cells are cleared.
func (g *Grid) SetOutgoingRiver(i int, d hex.Direction) {
	c := g.Cell(i)
	if c == nil || c.hasOutgoingRiver && c.outgoingRiver == d {
		return
	}
	n := g.neighbor(c, d)
	if !c.isValidRiverDestination(n) {
		return
	}

	g.removeOutgoingRiver(c)
	if c.hasIncomingRiver && c.incomingRiver == d {
		g.removeIncomingRiver(c)
	}
	c.hasOutgoingRiver = true
	c.outgoingRiver = d
	c.specialIndex = 0

	g.removeIncomingRiver(n)
	n.hasIncomingRiver = true
	n.incomingRiver = d.Opposite()
	n.specialIndex = 0

	g.setRoad(c, d, false)
	g.refreshSelfOnly(c)
	g.refreshSelfOnly(n)
}

// RemoveOutgoingRiver deletes the river leaving the cell, if any.
func (g *Grid) RemoveOutgoingRiver(i int) {
	if c := g.Cell(i); c != nil {
		g.removeOutgoingRiver(c)
	}
}

// RemoveIncomingRiver deletes the river entering the cell, if any.
func (g *Grid) RemoveIncomingRiver(i int) {
	if c := g.Cell(i); c != nil {
		g.removeIncomingRiver(c)
	}
}

// RemoveRiver deletes both river directions of the cell.
func (g *Grid) RemoveRiver(i int) {
	if c := g.Cell(i); c != nil {
		g.removeRiver(c)
	}
}

// AddRoad adds a road through d. It is refused when the edge already has a
// road or a river, either cell holds a special feature, there is no neighbor,
// or the edge is a cliff.
func (g *Grid) AddRoad(i int, d hex.Direction) {
	c := g.Cell(i)
	if c == nil || c.roads[d] || c.HasRiverThroughEdge(d) || c.IsSpecial() {
		return
	}
	n := g.neighbor(c, d)
	if n == nil || n.IsSpecial() || c.elevationDifference(n) > 1 {
		return
	}
	g.setRoad(c, d, true)
}

// RemoveRoad deletes the road through d, if any.
func (g *Grid) RemoveRoad(i int, d hex.Direction) {
	c := g.Cell(i)
	if c == nil || !c.roads[d] {
		return
	}
	g.setRoad(c, d, false)
}

// RemoveRoads deletes every road of the cell.
func (g *Grid) RemoveRoads(i int) {
	if c := g.Cell(i); c != nil {
		g.removeRoads(c)
	}
}

func (g *Grid) removeRoads(c *Cell) {
	for _, d := range hex.Directions {
		if c.roads[d] {
			g.setRoad(c, d, false)
		}
	}
}

func (g *Grid) setRoad(c *Cell, d hex.Direction, state bool) {
	n := g.neighbor(c, d)
	if n == nil || c.roads[d] == state {
		return
	}
	c.roads[d] = state
	n.roads[d.Opposite()] = state
	g.refreshSelfOnly(n)
	g.refreshSelfOnly(c)
}

func (g *Grid) removeOutgoingRiver(c *Cell) {
	if !c.hasOutgoingRiver {
		return
	}
	c.hasOutgoingRiver = false
	g.refreshSelfOnly(c)

	if n := g.neighbor(c, c.outgoingRiver); n != nil {
		n.hasIncomingRiver = false
		g.refreshSelfOnly(n)
	}
}

func (g *Grid) removeIncomingRiver(c *Cell) {
	if !c.hasIncomingRiver {
		return
	}
	c.hasIncomingRiver = false
	g.refreshSelfOnly(c)

	if n := g.neighbor(c, c.incomingRiver); n != nil {
		n.hasOutgoingRiver = false
		g.refreshSelfOnly(n)
	}
}

func (g *Grid) removeRiver(c *Cell) {
	g.removeOutgoingRiver(c)
	g.removeIncomingRiver(c)
}

func (g *Grid) validateRivers(c *Cell) {
	if c.hasOutgoingRiver && !c.isValidRiverDestination(g.neighbor(c, c.outgoingRiver)) {
		g.removeOutgoingRiver(c)
	}
	if c.hasIncomingRiver {
		if n := g.neighbor(c, c.incomingRiver); n == nil || !n.isValidRiverDestination(c) {
			g.removeIncomingRiver(c)
		}
	}
}
