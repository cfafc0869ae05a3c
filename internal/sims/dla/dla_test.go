package dla

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"dla/internal/core"
)

func TestNewRejectsOverfullGrid(t *testing.T) {
	if _, err := New(10, 3, 3); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("New(10,3,3) error = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := New(-1, 3, 3); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("New(-1,3,3) error = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := New(1, 0, 3); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("New(1,0,3) error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestNewSeedsDistinctParticles(t *testing.T) {
	for _, n := range []int{0, 1, 50, 100} {
		r, err := New(n, 10, 10)
		if err != nil {
			t.Fatalf("New(%d,10,10): %v", n, err)
		}
		g := r.Grid()
		if got := g.Count(Occupied); got != n {
			t.Fatalf("seeded %d occupied cells, want %d", got, n)
		}
		if got := g.Count(Stuck); got != 0 {
			t.Fatalf("seeding produced %d stuck cells", got)
		}
		counts := r.Counts()
		if counts.Particles != n || counts.Occupied != n || counts.Stuck != 0 {
			t.Fatalf("unexpected counts %+v for %d particles", counts, n)
		}
	}
}

func TestStepConservesAndFreezesMonotonically(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 40
	cfg.Height = 40
	cfg.Particles = 300
	cfg.Seed = 11
	r, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	checkRunInvariants(t, r.Grid(), r.Step, r.Counts, 300, 20000)
	if !r.Converged() {
		t.Fatal("run did not converge")
	}
}

// checkRunInvariants steps until convergence, asserting conservation of
// particles and permanence of stuck cells after every step.
func checkRunInvariants(t *testing.T, g *Grid, step func() bool, counts func() core.Counts, particles, maxSteps int) int {
	t.Helper()
	stuck := make([]bool, g.w*g.h)
	for i := 1; i <= maxSteps; i++ {
		done := step()
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				s := g.at(x, y).State
				idx := y*g.w + x
				if stuck[idx] && s != Stuck {
					t.Fatalf("step %d: stuck cell (%d,%d) became %v", i, x, y, s)
				}
				if s == Stuck {
					stuck[idx] = true
				}
			}
		}
		occupied, frozen := g.Count(Occupied), g.Count(Stuck)
		if occupied+frozen != particles {
			t.Fatalf("step %d: %d occupied + %d stuck != %d particles", i, occupied, frozen, particles)
		}
		c := counts()
		if c.Occupied != occupied || c.Stuck != frozen || c.Particles != particles {
			t.Fatalf("step %d: counts %+v disagree with grid (%d occupied, %d stuck)", i, c, occupied, frozen)
		}
		if done {
			if occupied != 0 {
				t.Fatalf("step %d reported convergence with %d mobile particles", i, occupied)
			}
			return i
		}
	}
	t.Fatalf("no convergence within %d steps", maxSteps)
	return maxSteps
}

func TestStepSettlesSmallGrid(t *testing.T) {
	g := buildGrid(t, 3, 3, map[[2]int]State{
		{1, 0}: Occupied,
		{1, 2}: Stuck,
	})
	r := newRunFromGrid(g, DefaultConfig(), 1)

	steps := 0
	for !r.Step() {
		steps++
		if steps > 5 {
			t.Fatal("3x3 grid did not settle within 5 steps")
		}
	}
	if steps == 0 {
		t.Fatal("the free particle has to move at least once before converging")
	}
	if got := g.Count(Stuck); got != 2 {
		t.Fatalf("expected 2 stuck cells, got %d", got)
	}
	if r.Steps() != steps+1 {
		t.Fatalf("Steps() = %d, want %d", r.Steps(), steps+1)
	}

	before := r.Steps()
	if !r.Step() {
		t.Fatal("a converged run must keep reporting convergence")
	}
	if r.Steps() != before {
		t.Fatal("steps after convergence must not be counted")
	}
}

func TestStepSweepVisibility(t *testing.T) {
	// Column 0 is swept bottom-up: (0,2) freezes on the floor first and
	// (0,1) sees it in the same sweep.
	g := buildGrid(t, 2, 3, map[[2]int]State{
		{0, 1}: Occupied,
		{0, 2}: Occupied,
	})
	r := newRunFromGrid(g, DefaultConfig(), 1)
	if !r.Step() {
		t.Fatal("both particles freeze in the first sweep, so it must converge")
	}
	for _, y := range []int{1, 2} {
		if c, _ := g.Get(0, y); c.State != Stuck {
			t.Fatalf("cell (0,%d) is %v, want stuck", y, c.State)
		}
	}
}

func TestStepRevisitsParticleMovedAhead(t *testing.T) {
	// With full downward bias the particle at (0,0) can only go to (1,1).
	// Column 1 is swept after column 0, so it is visited again and, with
	// column 2 out of bounds, steps back to (0,2) in the same tick.
	g := buildGrid(t, 2, 4, map[[2]int]State{{0, 0}: Occupied})
	cfg := DefaultConfig()
	cfg.Params.DownBias = 1
	r := newRunFromGrid(g, cfg, 1)
	if r.Step() {
		t.Fatal("a moving particle keeps the run active")
	}
	if c, _ := g.Get(0, 2); c.State != Occupied {
		t.Fatalf("cell (0,2) is %v, want the particle after two moves", c.State)
	}
	for _, p := range [][2]int{{0, 0}, {1, 1}} {
		if c, _ := g.Get(p[0], p[1]); c.State != Empty {
			t.Fatalf("cell %v is %v, want empty", p, c.State)
		}
	}
}

func TestStepStallKeepsRunActive(t *testing.T) {
	// A one-column grid gives the top particle no diagonal to move to.
	g := buildGrid(t, 1, 4, map[[2]int]State{{0, 0}: Occupied})
	r := newRunFromGrid(g, DefaultConfig(), 1)
	for i := 0; i < 3; i++ {
		if r.Step() {
			t.Fatal("a stalled particle must keep the run active")
		}
	}
	if c, _ := g.Get(0, 0); c.State != Occupied {
		t.Fatalf("stalled particle changed state to %v", c.State)
	}
}

func TestStuckColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.ParticleColor = color.RGBA{R: 10, G: 20, B: 30, A: 255}
	g := buildGrid(t, 2, 2, nil)
	_ = g.Set(0, 1, Particle(cfg.Params.ParticleColor))
	r := newRunFromGrid(g, cfg, 1)
	r.Step()
	if c, _ := g.Get(0, 1); c.State != Stuck || c.Color != cfg.Params.ParticleColor {
		t.Fatalf("frozen particle should keep its color, got %+v", c)
	}

	cfg.Params.RecolorStuck = true
	g = buildGrid(t, 2, 2, nil)
	_ = g.Set(1, 1, Particle(cfg.Params.ParticleColor))
	r = newRunFromGrid(g, cfg, 1)
	r.Step()
	if c, _ := g.Get(1, 1); c.State != Stuck || c.Color != cfg.Params.StuckColor {
		t.Fatalf("frozen particle should take the stuck color, got %+v", c)
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	cfg.Particles = 120
	cfg.Seed = 99

	a, _ := NewWithConfig(cfg)
	b, _ := NewWithConfig(cfg)
	initial := a.PixelBuffer()
	if !bytes.Equal(initial, b.PixelBuffer()) {
		t.Fatal("equal seeds produced different seedings")
	}
	for !a.Step() {
	}
	for !b.Step() {
	}
	if a.Steps() != b.Steps() || !bytes.Equal(a.PixelBuffer(), b.PixelBuffer()) {
		t.Fatal("equal seeds produced different aggregates")
	}

	a.Reset(0)
	if !bytes.Equal(initial, a.PixelBuffer()) || a.Steps() != 0 || a.Converged() {
		t.Fatal("Reset(0) must reproduce the configured seeding")
	}
	if a.Seed() != 99 {
		t.Fatalf("Seed() = %d after Reset(0), want the configured 99", a.Seed())
	}
	a.Reset(777)
	if bytes.Equal(initial, a.PixelBuffer()) {
		t.Fatal("a different seed should produce a different seeding")
	}
	if a.Seed() != 777 {
		t.Fatalf("Seed() = %d, want 777", a.Seed())
	}
}

func TestRegistryBuildsEngines(t *testing.T) {
	for _, name := range []string{NameSweep, NameBuffered} {
		sim, err := core.Build(name, map[string]string{"w": "12", "h": "10", "particles": "30"})
		if err != nil {
			t.Fatalf("Build(%s): %v", name, err)
		}
		if sim.Name() != name {
			t.Fatalf("Build(%s) returned %s", name, sim.Name())
		}
		if sim.Size() != (core.Size{W: 12, H: 10}) || sim.Counts().Particles != 30 {
			t.Fatalf("Build(%s) ignored the config: size %+v counts %+v", name, sim.Size(), sim.Counts())
		}
		if _, ok := sim.(core.ParameterProvider); !ok {
			t.Fatalf("%s does not describe its parameters", name)
		}

		_, err = core.Build(name, map[string]string{"w": "3", "h": "3", "particles": "10"})
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("Build(%s) overfull error = %v", name, err)
		}
	}
}
