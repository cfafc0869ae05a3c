package dla

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("dla: coordinate out of bounds")
	// ErrInvalidConfiguration is returned when a run cannot be constructed.
	ErrInvalidConfiguration = errors.New("dla: invalid configuration")
)

// BoundsError reports the offending coordinate. It unwraps to ErrOutOfBounds.
type BoundsError struct {
	X, Y int
	W, H int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("dla: coordinate (%d,%d) outside %dx%d grid", e.X, e.Y, e.W, e.H)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// Grid stores a rectangular lattice of cells in row-major order. Its
// dimensions are fixed at construction.
type Grid struct {
	w, h  int
	cells []Cell
}

// NewGrid allocates an all-Empty grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, &ConfigError{Field: "size", Reason: fmt.Sprintf("grid dimensions must be positive, got %dx%d", w, h)}
	}
	if w > math.MaxInt/h {
		return nil, &ConfigError{Field: "size", Reason: fmt.Sprintf("%dx%d cells overflow int", w, h)}
	}
	return &Grid{w: w, h: h, cells: make([]Cell, w*h)}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Get returns the cell at (x, y).
func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.In(x, y) {
		return Cell{}, &BoundsError{X: x, Y: y, W: g.w, H: g.h}
	}
	return g.cells[y*g.w+x], nil
}

// Set overwrites the cell at (x, y).
func (g *Grid) Set(x, y int, c Cell) error {
	if !g.In(x, y) {
		return &BoundsError{X: x, Y: y, W: g.w, H: g.h}
	}
	g.cells[y*g.w+x] = c
	return nil
}

// Count returns how many cells are in state s.
func (g *Grid) Count(s State) int {
	n := 0
	for _, c := range g.cells {
		if c.State == s {
			n++
		}
	}
	return n
}

// Clear resets every cell to Empty.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{w: g.w, h: g.h, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// CopyFrom overwrites g with the contents of src, which must have the same
// dimensions.
func (g *Grid) CopyFrom(src *Grid) {
	if src.w != g.w || src.h != g.h {
		panic(fmt.Sprintf("dla: CopyFrom size mismatch %dx%d vs %dx%d", src.w, src.h, g.w, g.h))
	}
	copy(g.cells, src.cells)
}

// at and put skip bounds checks; callers must have validated (x, y).
func (g *Grid) at(x, y int) Cell { return g.cells[y*g.w+x] }

func (g *Grid) put(x, y int, c Cell) { g.cells[y*g.w+x] = c }

// mustGet and mustSet are used by the engines, whose sweeps only visit valid
// coordinates. A bounds failure there is a logic defect.
func (g *Grid) mustGet(x, y int) Cell {
	c, err := g.Get(x, y)
	if err != nil {
		panic(err)
	}
	return c
}

func (g *Grid) mustSet(x, y int, c Cell) {
	if err := g.Set(x, y, c); err != nil {
		panic(err)
	}
}
