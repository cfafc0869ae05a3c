package dla

import (
	pkgcore "dla/pkg/core"

	"golang.org/x/sync/errgroup"
)

// Buffered is a double-buffered engine. Every step plans all particles
// against an immutable snapshot of the grid, in parallel column bands, and
// then commits the plans sequentially in the sweep order used by Run.
//
// This is not equivalent to Run: a particle only sees what its neighbours
// looked like at the start of the step, so freezing propagates one cell per
// step and aggregate shapes differ statistically. During commit a move whose
// target has been filled by an earlier commit is dropped and the particle
// stays put. Conservation, Stuck permanence and the convergence rule are the
// same as Run's.
//
// Each band draws from its own RNG stream, so results are reproducible for a
// given seed and worker count.
type Buffered struct {
	base

	snap  *Grid
	bands []band
}

type band struct {
	x0, x1  int
	planner *Planner
	plans   []plan
}

type plan struct {
	x, y   int
	nx, ny int
	freeze bool
}

// NewBuffered returns a seeded Buffered engine. Initial placement matches
// Run for the same seed.
func NewBuffered(cfg Config) (*Buffered, error) {
	b, err := newBase(cfg)
	if err != nil {
		return nil, err
	}
	e := &Buffered{base: b, snap: b.grid.Clone()}
	e.Reset(0)
	return e, nil
}

// Name returns the simulation identifier.
func (e *Buffered) Name() string { return NameBuffered }

// Reset reseeds the grid and the band RNG streams. A zero seed falls back
// to the configured seed.
func (e *Buffered) Reset(seed int64) {
	s := e.effectiveSeed(seed)
	e.seed(pkgcore.NewRNG(s))
	e.bands = splitBands(e.grid.w, e.cfg.Params.Workers)
	for i := range e.bands {
		rng := pkgcore.NewStreamRNG(s, uint64(i)+1)
		e.bands[i].planner = NewPlanner(rng, e.cfg.Params.DownBias, e.cfg.Params.MoveAttempts)
	}
}

// splitBands divides w columns into at most n contiguous, ordered bands.
func splitBands(w, n int) []band {
	if n > w {
		n = w
	}
	if n < 1 {
		n = 1
	}
	bands := make([]band, 0, n)
	per := w / n
	extra := w % n
	x := 0
	for i := 0; i < n; i++ {
		width := per
		if i < extra {
			width++
		}
		bands = append(bands, band{x0: x, x1: x + width})
		x += width
	}
	return bands
}

// Step plans every particle from the snapshot, commits the plans and
// reports whether the run has converged.
func (e *Buffered) Step() bool {
	if e.converged {
		return true
	}
	e.snap.CopyFrom(e.grid)

	var eg errgroup.Group
	for i := range e.bands {
		bd := &e.bands[i]
		eg.Go(func() error {
			bd.planAll(e.snap)
			return nil
		})
	}
	// Planning cannot fail; Wait only joins the band goroutines.
	_ = eg.Wait()

	g := e.grid
	mobile := false
	for i := range e.bands {
		for _, p := range e.bands[i].plans {
			c := g.mustGet(p.x, p.y)
			if p.freeze {
				g.mustSet(p.x, p.y, e.frozen(c))
				e.stuck++
				continue
			}
			mobile = true
			if p.nx == p.x && p.ny == p.y {
				continue
			}
			if g.mustGet(p.nx, p.ny).State != Empty {
				continue
			}
			g.mustSet(p.nx, p.ny, c)
			g.mustSet(p.x, p.y, Cell{})
		}
	}
	e.steps++
	e.converged = !mobile
	return e.converged
}

// planAll records a plan for every Occupied cell in the band, visiting
// columns left to right and rows bottom to top.
func (bd *band) planAll(snap *Grid) {
	bd.plans = bd.plans[:0]
	for x := bd.x0; x < bd.x1; x++ {
		for y := snap.h - 1; y >= 0; y-- {
			if snap.at(x, y).State != Occupied {
				continue
			}
			if IsStuck(snap, x, y) {
				bd.plans = append(bd.plans, plan{x: x, y: y, nx: x, ny: y, freeze: true})
				continue
			}
			nx, ny := bd.planner.ProposeMove(snap, x, y)
			bd.plans = append(bd.plans, plan{x: x, y: y, nx: nx, ny: ny})
		}
	}
}

// newBufferedFromGrid wraps an already populated grid, bypassing seeding.
func newBufferedFromGrid(g *Grid, cfg Config, seed int64) *Buffered {
	e := &Buffered{base: base{cfg: cfg}}
	e.adopt(g)
	e.snap = g.Clone()
	e.bands = splitBands(g.w, cfg.Params.Workers)
	for i := range e.bands {
		rng := pkgcore.NewStreamRNG(seed, uint64(i)+1)
		e.bands[i].planner = NewPlanner(rng, cfg.Params.DownBias, cfg.Params.MoveAttempts)
	}
	return e
}
