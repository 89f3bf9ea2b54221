// Package freesurface drives a free-surface lattice Boltzmann fluid through
// the simulator registry.
package freesurface

import (
	"mad-lbm/internal/core"
	"mad-lbm/internal/scenario"
	"mad-lbm/pkg/lbm"
)

// Sim wraps a lattice, the scenario that seeded it and the running totals
// needed for diagnostics.
type Sim struct {
	cfg Config

	scenario scenario.Scenario
	lattice  *lbm.Lattice
	display  []uint8

	steps       uint64
	initialMass float64
	totals      lbm.Transitions
	last        lbm.Transitions
	err         error
}

// New returns a free-surface sim with the provided dimensions using defaults.
func New(w, h int) *Sim {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a sim configured from the provided options. The
// lattice is built immediately from cfg.Seed.
func NewWithConfig(cfg Config) *Sim {
	sc, ok := scenario.Lookup(cfg.Scenario)
	if !ok {
		cfg.Scenario = DefaultScenario
		sc, _ = scenario.Lookup(DefaultScenario)
	}
	s := &Sim{cfg: cfg, scenario: sc}
	s.Reset(0)
	return s
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "freesurface" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Cells exposes the display buffer, one encoded byte per cell.
func (s *Sim) Cells() []uint8 { return s.display }

// Lattice exposes the underlying solver state. Callers must not step it.
func (s *Sim) Lattice() *lbm.Lattice { return s.lattice }

// Scenario reports the active scenario name.
func (s *Sim) Scenario() string { return s.cfg.Scenario }

// Config returns a copy of the active configuration.
func (s *Sim) Config() Config { return s.cfg }

// MaxUPS is the update rate the sim asks its runner for.
func (s *Sim) MaxUPS() int { return s.cfg.Params.MaxUPS }

// Velocity reports the fluid velocity at (x, y). ok is false outside the grid
// and for cells that hold no liquid.
func (s *Sim) Velocity(x, y int) (ux, uy float64, ok bool) {
	l := s.lattice
	if !l.InBounds(x, y) {
		return 0, 0, false
	}
	i := l.Index(x, y)
	if !l.Phases()[i].Liquid() {
		return 0, 0, false
	}
	return l.VelocityX()[i], l.VelocityY()[i], true
}

// Err returns the error that stopped the sim, if any.
func (s *Sim) Err() error { return s.err }

func (s *Sim) options(seed int64) scenario.Options {
	return scenario.Options{Inflow: s.cfg.Params.Inflow, Seed: seed}
}

// Reset rebuilds the lattice from the scenario. A zero seed falls back to the
// configured one.
func (s *Sim) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.cfg.Seed = seed
	s.lattice = s.scenario.Build(s.cfg.Width, s.cfg.Height, s.options(seed))
	s.display = make([]uint8, s.lattice.Len())
	s.steps = 0
	s.totals = lbm.Transitions{}
	s.last = lbm.Transitions{}
	s.err = nil
	s.initialMass = lbm.TotalMass(s.lattice)
	lbm.ComputeCurl(s.lattice)
	s.rebuildDisplay()
}

// Step refreshes the scenario boundaries and advances the lattice once. After
// an instability every call returns the same error until Reset.
func (s *Sim) Step() error {
	if s.err != nil {
		return s.err
	}
	s.scenario.Apply(s.lattice, s.options(s.cfg.Seed))
	t, err := lbm.Step(s.lattice, s.cfg.Params.solver())
	s.steps++
	s.last = t
	s.totals.Add(t)
	s.rebuildDisplay()
	if err != nil {
		s.err = err
		return err
	}
	return nil
}

// Diagnostics summarises mass bookkeeping and phase populations.
type Diagnostics struct {
	Steps uint64

	Mass        float64
	InitialMass float64
	// Drift is Mass - InitialMass. Without sources it equals
	// Created - Discarded.
	Drift     float64
	Discarded float64
	Created   float64

	Phases lbm.PhaseCounts
	Last   lbm.Transitions
	Err    error
}

// Diagnostics reports the current bookkeeping.
func (s *Sim) Diagnostics() Diagnostics {
	mass := lbm.TotalMass(s.lattice)
	return Diagnostics{
		Steps:       s.steps,
		Mass:        mass,
		InitialMass: s.initialMass,
		Drift:       mass - s.initialMass,
		Discarded:   s.totals.Discarded,
		Created:     s.totals.Created,
		Phases:      lbm.CountPhases(s.lattice),
		Last:        s.last,
		Err:         s.err,
	}
}

func init() {
	core.Register("freesurface", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
