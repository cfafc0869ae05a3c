package dla

import (
	"image/color"

	"dla/internal/core"
	pkgcore "dla/pkg/core"
)

// Registry names of the two engines.
const (
	NameSweep    = "dla"
	NameBuffered = "dla-buffered"
)

// base holds the state shared by both engines: the grid they own and the
// particle bookkeeping.
type base struct {
	cfg  Config
	grid *Grid

	particles int
	stuck     int
	steps     int
	converged bool
	lastSeed  int64
}

func newBase(cfg Config) (base, error) {
	if err := cfg.Validate(); err != nil {
		return base{}, err
	}
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return base{}, err
	}
	return base{cfg: cfg, grid: grid}, nil
}

// Size returns the grid dimensions.
func (b *base) Size() core.Size { return core.Size{W: b.grid.w, H: b.grid.h} }

// Config returns the configuration the run was built with.
func (b *base) Config() Config { return b.cfg }

// Grid exposes the owned grid for read access. Callers must not mutate it
// while the run is active.
func (b *base) Grid() *Grid { return b.grid }

// Steps returns the number of sweeps executed since the last reset.
func (b *base) Steps() int { return b.steps }

// Converged reports whether the last step found no mobile particle.
func (b *base) Converged() bool { return b.converged }

// Counts reports particle totals. Occupied plus Stuck always equals Particles.
func (b *base) Counts() core.Counts {
	return core.Counts{
		Particles: b.particles,
		Occupied:  b.particles - b.stuck,
		Stuck:     b.stuck,
	}
}

// frozen returns the Stuck form of c, honouring RecolorStuck.
func (b *base) frozen(c Cell) Cell {
	if b.cfg.Params.RecolorStuck {
		return Frozen(b.cfg.Params.StuckColor)
	}
	return Frozen(c.Color)
}

// seed clears the grid and places the configured particles.
func (b *base) seed(rng *pkgcore.RNG) {
	b.grid.Clear()
	seedParticles(b.grid, rng, b.cfg.Particles, b.cfg.Params.ParticleColor)
	b.particles = b.cfg.Particles
	b.stuck = 0
	b.steps = 0
	b.converged = false
}

// adopt takes over a hand-built grid, recomputing the bookkeeping.
func (b *base) adopt(g *Grid) {
	b.grid = g
	b.cfg.Width, b.cfg.Height = g.w, g.h
	b.stuck = g.Count(Stuck)
	b.particles = b.stuck + g.Count(Occupied)
	b.cfg.Particles = b.particles
	b.steps = 0
	b.converged = false
}

// Seed returns the seed of the most recent reset.
func (b *base) Seed() int64 { return b.lastSeed }

func (b *base) effectiveSeed(seed int64) int64 {
	if seed == 0 {
		seed = b.cfg.Seed
	}
	b.lastSeed = seed
	return seed
}

// seedParticles places n Occupied cells at distinct uniformly random
// coordinates by rejection sampling. The caller guarantees n <= w*h, so an
// Empty cell always exists while placing and the inner loop terminates.
func seedParticles(g *Grid, rng *pkgcore.RNG, n int, c color.RGBA) {
	for i := 0; i < n; i++ {
		x, y := rng.IntN(g.w), rng.IntN(g.h)
		for g.at(x, y).State != Empty {
			x, y = rng.IntN(g.w), rng.IntN(g.h)
		}
		g.put(x, y, Particle(c))
	}
}

// Run is the reference aggregation engine. It sweeps the grid in place, so
// a mutation made earlier in a sweep is visible to cells visited later in
// the same sweep.
//
// Sweep order: columns left to right (x = 0..w-1); within each column rows
// bottom to top (y = h-1..0). The order is part of the contract because it
// decides which particles settle first within a tick. A particle that moves
// into a column not yet swept is visited again and may move again in the
// same tick.
type Run struct {
	base

	rng     *pkgcore.RNG
	planner *Planner
}

// New seeds numParticles particles on a width x height grid with the
// default walk parameters.
func New(numParticles, width, height int) (*Run, error) {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.Particles = numParticles
	return NewWithConfig(cfg)
}

// NewWithConfig returns a seeded Run configured from cfg.
func NewWithConfig(cfg Config) (*Run, error) {
	b, err := newBase(cfg)
	if err != nil {
		return nil, err
	}
	r := &Run{base: b}
	r.Reset(0)
	return r, nil
}

// newRunFromGrid wraps an already populated grid, bypassing seeding.
func newRunFromGrid(g *Grid, cfg Config, seed int64) *Run {
	r := &Run{base: base{cfg: cfg}}
	r.adopt(g)
	r.rng = pkgcore.NewRNG(seed)
	r.planner = NewPlanner(r.rng, cfg.Params.DownBias, cfg.Params.MoveAttempts)
	return r
}

// Name returns the simulation identifier.
func (r *Run) Name() string { return NameSweep }

// Reset reseeds the grid. A zero seed falls back to the configured seed.
func (r *Run) Reset(seed int64) {
	r.rng = pkgcore.NewRNG(r.effectiveSeed(seed))
	r.planner = NewPlanner(r.rng, r.cfg.Params.DownBias, r.cfg.Params.MoveAttempts)
	r.seed(r.rng)
}

// Step performs one full sweep and reports whether the run has converged.
//
// Stuck particles freeze in place. Mobile particles ask the planner for a
// destination and move there if it differs from their position. The run is
// converged once a sweep meets no mobile particle; a particle that stalled
// this tick keeps the run active.
func (r *Run) Step() bool {
	if r.converged {
		return true
	}
	g := r.grid
	mobile := false
	for x := 0; x < g.w; x++ {
		for y := g.h - 1; y >= 0; y-- {
			c := g.mustGet(x, y)
			if c.State != Occupied {
				continue
			}
			if IsStuck(g, x, y) {
				g.mustSet(x, y, r.frozen(c))
				r.stuck++
				continue
			}
			mobile = true
			nx, ny := r.planner.ProposeMove(g, x, y)
			if nx == x && ny == y {
				continue
			}
			g.mustSet(nx, ny, c)
			g.mustSet(x, y, Cell{})
		}
	}
	r.steps++
	r.converged = !mobile
	return r.converged
}

func init() {
	core.Register(NameSweep, func(cfg map[string]string) (core.Sim, error) {
		r, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return r, nil
	})
	core.Register(NameBuffered, func(cfg map[string]string) (core.Sim, error) {
		b, err := NewBuffered(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}
