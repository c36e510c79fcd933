package hex

// EdgeType classifies the connection between two cells by elevation difference.
type EdgeType uint8

const (
	Flat EdgeType = iota
	Slope
	Cliff
)

func (t EdgeType) String() string {
	switch t {
	case Flat:
		return "Flat"
	case Slope:
		return "Slope"
	case Cliff:
		return "Cliff"
	}
	return "EdgeType(?)"
}

// Classify returns Flat for equal elevations, Slope for a difference of one
// and Cliff for anything larger.
func Classify(e1, e2 int) EdgeType {
	if e1 == e2 {
		return Flat
	}
	delta := e2 - e1
	if delta == 1 || delta == -1 {
		return Slope
	}
	return Cliff
}
