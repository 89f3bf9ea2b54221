// Package scenario holds the initial conditions the simulator can start from.
package scenario

import (
	"sort"

	"mad-lbm/pkg/lbm"
)

// Options tunes the stock scenarios.
type Options struct {
	// Inflow is the x velocity imposed by flowing scenarios.
	Inflow float64
	// Seed drives randomized layouts.
	Seed int64
}

// DefaultOptions returns the settings used when none are given.
func DefaultOptions() Options {
	return Options{Inflow: 0.1, Seed: 1}
}

// Setup paints phases and initial populations onto a freshly allocated lattice.
type Setup func(l *lbm.Lattice, set lbm.SetEquilibriumFunc, opts Options)

// Refresh re-pins boundary cells once per step, before collision.
type Refresh func(l *lbm.Lattice, set lbm.SetEquilibriumFunc, opts Options)

// Scenario bundles an initial layout with its optional boundary refresh.
type Scenario struct {
	Name        string
	Description string
	Setup       Setup
	Refresh     Refresh
}

// Build allocates a w*h lattice and runs the scenario setup on it.
func (s Scenario) Build(w, h int, opts Options) *lbm.Lattice {
	l := lbm.NewLattice(w, h)
	if s.Setup != nil {
		s.Setup(l, l.SetEquilibrium, opts)
	}
	return l
}

// Apply runs the refresh hook if the scenario has one.
func (s Scenario) Apply(l *lbm.Lattice, opts Options) {
	if s.Refresh != nil {
		s.Refresh(l, l.SetEquilibrium, opts)
	}
}

var scenarios = map[string]Scenario{}

// Register adds s to the registry, replacing any scenario with the same name.
func Register(s Scenario) {
	if s.Name == "" || s.Setup == nil {
		return
	}
	scenarios[s.Name] = s
}

// Lookup returns the scenario registered under name.
func Lookup(name string) (Scenario, bool) {
	s, ok := scenarios[name]
	return s, ok
}

// Names lists registered scenarios in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
