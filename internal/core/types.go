package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells covered by the size.
func (s Size) Cells() int { return s.W * s.H }

// Counts tallies particles by state at a point in time.
type Counts struct {
	Particles int
	Occupied  int
	Stuck     int
}

// Sim defines the contract an aggregation run must implement for the driver.
//
// Step advances the run by one sweep and reports whether the run has
// converged, meaning no mobile particle remains.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() bool
	Steps() int
	Counts() Counts
	PixelBuffer() []byte
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered simulation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for k := range sims {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Build looks up name in the registry and constructs it from cfg.
func Build(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q", name)
	}
	return f(cfg)
}
