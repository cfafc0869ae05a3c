package dla

import "image/color"

// State enumerates the lattice cell states.
type State uint8

const (
	// Empty marks a cell with no particle.
	Empty State = iota
	// Occupied marks a mobile particle that may still move.
	Occupied
	// Stuck marks a particle that has joined the aggregate. It never changes again.
	Stuck
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	case Stuck:
		return "stuck"
	default:
		return "unknown"
	}
}

// Cell is one lattice site. Color only matters for rendering.
type Cell struct {
	State State
	Color color.RGBA
}

// Particle returns an Occupied cell with the given color.
func Particle(c color.RGBA) Cell { return Cell{State: Occupied, Color: c} }

// Frozen returns a Stuck cell with the given color.
func Frozen(c color.RGBA) Cell { return Cell{State: Stuck, Color: c} }
