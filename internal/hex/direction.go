package hex

// Direction names one of the six edges of a pointy-top hexagon,
// clockwise starting at north-east.
type Direction uint8

const (
	NE Direction = iota
	E
	SE
	SW
	W
	NW
)

// DirectionCount is the number of hex directions.
const DirectionCount = 6

// Directions lists all directions in clockwise order.
var Directions = [DirectionCount]Direction{NE, E, SE, SW, W, NW}

func (d Direction) Opposite() Direction {
	if d < 3 {
		return d + 3
	}
	return d - 3
}

func (d Direction) Previous() Direction {
	if d == NE {
		return NW
	}
	return d - 1
}

func (d Direction) Next() Direction {
	if d == NW {
		return NE
	}
	return d + 1
}

func (d Direction) Previous2() Direction {
	d -= 2
	if d >= DirectionCount {
		// wrapped below zero
		return d + DirectionCount
	}
	return d
}

func (d Direction) Next2() Direction {
	d += 2
	if d <= NW {
		return d
	}
	return d - DirectionCount
}

func (d Direction) String() string {
	switch d {
	case NE:
		return "NE"
	case E:
		return "E"
	case SE:
		return "SE"
	case SW:
		return "SW"
	case W:
		return "W"
	case NW:
		return "NW"
	}
	return "Direction(?)"
}

// ParseDirection accepts the short names returned by String.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}
