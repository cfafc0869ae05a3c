package dla

import pkgcore "dla/pkg/core"

const (
	// DefaultDownBias is the probability of stepping toward the floor.
	DefaultDownBias = 0.75
	// DefaultMoveAttempts bounds how many occupied targets a particle may
	// draw before it stalls for the tick.
	DefaultMoveAttempts = 5
)

// Planner proposes biased diagonal random-walk moves.
type Planner struct {
	// DownBias is the probability that dy is +1 (toward the bottom row).
	DownBias float64
	// Attempts is the number of in-bounds candidates drawn before giving up.
	Attempts int

	rng *pkgcore.RNG
}

// NewPlanner returns a planner drawing from rng.
func NewPlanner(rng *pkgcore.RNG, downBias float64, attempts int) *Planner {
	return &Planner{DownBias: downBias, Attempts: attempts, rng: rng}
}

// ProposeMove returns the destination for the mobile particle at (x, y).
//
// Each draw picks dx in {-1,+1} uniformly and dy = +1 with probability
// DownBias, else -1. Out-of-bounds draws are redrawn without consuming an
// attempt. An in-bounds but non-Empty target consumes one attempt; once
// Attempts are spent the particle stays at (x, y) for this tick.
func (p *Planner) ProposeMove(g *Grid, x, y int) (int, int) {
	if !p.canReach(g, x, y) {
		return x, y
	}
	for attempt := 0; attempt < p.Attempts; attempt++ {
		nx, ny := p.draw(g, x, y)
		if g.at(nx, ny).State == Empty {
			return nx, ny
		}
	}
	return x, y
}

// draw loops until it produces an in-bounds diagonal. canReach guarantees at
// least one such diagonal has a non-zero probability.
func (p *Planner) draw(g *Grid, x, y int) (int, int) {
	for {
		dx := -1
		if p.rng.Bool() {
			dx = 1
		}
		dy := -1
		if p.rng.Chance(p.DownBias) {
			dy = 1
		}
		if g.In(x+dx, y+dy) {
			return x + dx, y + dy
		}
	}
}

// canReach reports whether any diagonal neighbour is in bounds and has a
// non-zero chance of being drawn. It is false on one-cell-wide or
// one-cell-tall grids, and on the top row when DownBias is 0.
func (p *Planner) canReach(g *Grid, x, y int) bool {
	for _, dy := range [2]int{-1, 1} {
		// Negated comparisons: a NaN bias reaches no diagonal.
		if dy == 1 && !(p.DownBias > 0) {
			continue
		}
		if dy == -1 && !(p.DownBias < 1) {
			continue
		}
		for _, dx := range [2]int{-1, 1} {
			if g.In(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}
