package dla

// IsStuck reports whether the particle at (x, y) is immobilized.
//
// A Stuck cell stays stuck. An Occupied cell is stuck when it sits on the
// bottom row, or when any in-bounds Moore neighbour is already Stuck. The
// neighbour test is one level deep: it asks whether a neighbour is stuck
// now, not whether it would become stuck. Out-of-range neighbours are
// skipped rather than wrapped.
func IsStuck(g *Grid, x, y int) bool {
	switch g.mustGet(x, y).State {
	case Stuck:
		return true
	case Empty:
		return false
	}
	if y == g.h-1 {
		return true
	}
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.h {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= g.w {
				continue
			}
			if g.at(nx, ny).State == Stuck {
				return true
			}
		}
	}
	return false
}
