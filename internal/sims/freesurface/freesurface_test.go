package freesurface

import (
	"errors"
	"math"
	"slices"
	"testing"

	"mad-lbm/internal/core"
	"mad-lbm/pkg/lbm"
)

func smallConfig(name string) Config {
	cfg := DefaultConfig()
	cfg.Width = 40
	cfg.Height = 30
	cfg.Scenario = name
	return cfg
}

func TestFromMapParsesKnownKeys(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":         "64",
		"h":         "48",
		"seed":      "-7",
		"scenario":  "dam-break",
		"viscosity": "0.05",
		"gravity":   "0.002",
		"beta":      "0.01",
		"inflow":    "-0.03",
		"max_ups":   "60",
	})
	if cfg.Width != 64 || cfg.Height != 48 || cfg.Seed != -7 {
		t.Fatalf("unexpected geometry %+v", cfg)
	}
	if cfg.Scenario != "dam-break" {
		t.Fatalf("scenario = %q", cfg.Scenario)
	}
	want := Params{Viscosity: 0.05, Gravity: 0.002, Beta: 0.01, Inflow: -0.03, MaxUPS: 60}
	if cfg.Params != want {
		t.Fatalf("params = %+v, expected %+v", cfg.Params, want)
	}
}

func TestFromMapKeepsDefaultsOnBadInput(t *testing.T) {
	def := DefaultConfig()
	cfg := FromMap(map[string]string{
		"w":         "wide",
		"h":         "1",
		"scenario":  "tsunami",
		"viscosity": "-1",
		"gravity":   "x",
		"max_ups":   "-5",
	})
	if cfg != def {
		t.Fatalf("bad input changed config: %+v", cfg)
	}
	if FromMap(nil) != def {
		t.Fatal("nil map must yield defaults")
	}
}

func TestRegisteredFactory(t *testing.T) {
	factory, ok := core.Sims()["freesurface"]
	if !ok {
		t.Fatal("freesurface not registered")
	}
	sim := factory(map[string]string{"w": "20", "h": "12", "scenario": "wall"})
	if sim.Name() != "freesurface" {
		t.Fatalf("Name() = %q", sim.Name())
	}
	if got := sim.Size(); got != (core.Size{W: 20, H: 12}) {
		t.Fatalf("Size() = %+v", got)
	}
	if len(sim.Cells()) != 20*12 {
		t.Fatalf("display holds %d cells", len(sim.Cells()))
	}
}

func TestUnknownScenarioFallsBack(t *testing.T) {
	s := NewWithConfig(smallConfig("nope"))
	if s.Scenario() != DefaultScenario {
		t.Fatalf("scenario = %q, expected fallback %q", s.Scenario(), DefaultScenario)
	}
}

func TestResetDeterministic(t *testing.T) {
	s := NewWithConfig(smallConfig("rain"))
	initial := append([]uint8(nil), s.Cells()...)
	for i := 0; i < 10; i++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
	}
	s.Reset(0)
	if !slices.Equal(initial, s.Cells()) {
		t.Fatal("Reset with config seed not deterministic")
	}
	if d := s.Diagnostics(); d.Steps != 0 || d.Discarded != 0 || d.Created != 0 {
		t.Fatalf("Reset left counters behind: %+v", d)
	}
}

func TestDiagnosticsTrackMassDrift(t *testing.T) {
	cfg := smallConfig("dam-break")
	cfg.Params.Gravity = 0.002
	s := NewWithConfig(cfg)
	for i := 0; i < 80; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	d := s.Diagnostics()
	if d.Steps != 80 {
		t.Fatalf("Steps = %d", d.Steps)
	}
	if math.Abs(d.Mass-d.InitialMass-d.Drift) > 1e-12 {
		t.Fatalf("drift %g inconsistent with mass %g - %g", d.Drift, d.Mass, d.InitialMass)
	}
	if diff := math.Abs(d.Drift - (d.Created - d.Discarded)); diff > 1e-9 {
		t.Fatalf("drift %g, created-discarded %g", d.Drift, d.Created-d.Discarded)
	}
	if d.Phases.Interface == 0 || d.Phases.Fluid == 0 {
		t.Fatalf("unexpected phase counts %+v", d.Phases)
	}
}

func TestInstabilityIsSticky(t *testing.T) {
	s := NewWithConfig(smallConfig("simple-barrier"))
	l := s.Lattice()
	l.SetEquilibrium(l.Width()/2, l.Height()/2, 0, 0, math.NaN(), 1)

	err := s.Step()
	if !errors.Is(err, lbm.ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}
	var ie *lbm.InstabilityError
	if !errors.As(err, &ie) || ie.Y != l.Height()/2 {
		t.Fatalf("expected an instability on the middle row, got %v", err)
	}
	if again := s.Step(); again != err {
		t.Fatalf("second Step returned %v", again)
	}
	if s.Diagnostics().Steps != 1 {
		t.Fatal("failed sim kept stepping")
	}

	s.Reset(0)
	if s.Err() != nil {
		t.Fatal("Reset must clear the error")
	}
	if err := s.Step(); err != nil {
		t.Fatalf("step after reset: %v", err)
	}
}

func TestDisplayEncodesPhaseAndFill(t *testing.T) {
	cases := []struct {
		phase lbm.Phase
		fill  float64
		want  uint8
	}{
		{lbm.PhaseBarrier, 0, 0},
		{lbm.PhaseFluid, 1, uint8(lbm.PhaseFluid)},
		{lbm.PhaseGas, 0, uint8(lbm.PhaseGas)},
		{lbm.PhaseInterface, 0, uint8(lbm.PhaseInterface)},
		{lbm.PhaseInterface, 1, uint8(lbm.PhaseInterface) | 7<<displayFillShift},
		{lbm.PhaseInterface, 1.4, uint8(lbm.PhaseInterface) | 7<<displayFillShift},
		{lbm.PhaseInterface, -0.3, uint8(lbm.PhaseInterface)},
		{lbm.PhaseSource, 1, uint8(lbm.PhaseSource)},
	}
	for _, c := range cases {
		if got := encodeDisplayValue(c.phase, c.fill); got != c.want {
			t.Fatalf("encode(%v, %g) = %#x, expected %#x", c.phase, c.fill, got, c.want)
		}
	}
}

func TestPaletteCoversDisplayValues(t *testing.T) {
	s := NewWithConfig(smallConfig("droplet"))
	palette := s.Palette()
	for i, v := range s.Cells() {
		if int(v) >= len(palette) {
			t.Fatalf("cell %d encodes %d beyond palette of %d", i, v, len(palette))
		}
	}
	empty := palette[encodeDisplayValue(lbm.PhaseInterface, 0)]
	full := palette[encodeDisplayValue(lbm.PhaseInterface, 1)]
	if full.B <= empty.B {
		t.Fatalf("full surface %v not bluer than empty %v", full, empty)
	}
	if palette[encodeDisplayValue(lbm.PhaseInterface, 1)] != toRGBA(fluidColor) {
		t.Fatal("full surface should match fluid")
	}
}

func TestParameterSetters(t *testing.T) {
	s := NewWithConfig(smallConfig("wall"))
	if !s.SetFloatParameter("viscosity", 0.5) {
		t.Fatal("viscosity should be settable")
	}
	if got := s.Config().Params.Viscosity; got != 0.2 {
		t.Fatalf("viscosity clamped to %g, expected 0.2", got)
	}
	if !s.SetFloatParameter("gravity", 0.003) || s.Config().Params.Gravity != 0.003 {
		t.Fatal("gravity not updated")
	}
	if s.SetFloatParameter("max_ups", 10) {
		t.Fatal("max_ups is an int control")
	}
	if s.SetFloatParameter("beta", 0.1) {
		t.Fatal("beta is not adjustable live")
	}
	if !s.SetIntParameter("max_ups", 30) || s.MaxUPS() != 30 {
		t.Fatalf("max_ups = %d", s.MaxUPS())
	}

	snap := s.Parameters()
	p, ok := snap.Find("gravity")
	if !ok {
		t.Fatal("gravity missing from snapshot")
	}
	if v, ok := p.Float(); !ok || v != 0.003 {
		t.Fatalf("snapshot gravity = %q", p.Value)
	}
	if p, ok := snap.Find("scenario"); !ok || p.Value != "wall" {
		t.Fatalf("snapshot scenario = %+v", p)
	}
}

func TestVelocityOnlyForLiquid(t *testing.T) {
	cfg := smallConfig("simple-barrier")
	cfg.Params.Inflow = 0.04
	s := NewWithConfig(cfg)
	ux, uy, ok := s.Velocity(20, 15)
	if !ok || math.Abs(ux-0.04) > 1e-12 || uy != 0 {
		t.Fatalf("Velocity(20,15) = %f, %f, %v", ux, uy, ok)
	}
	if _, _, ok := s.Velocity(0, 0); ok {
		t.Fatal("barrier cell reported a velocity")
	}
	if _, _, ok := s.Velocity(-1, 3); ok {
		t.Fatal("out of bounds cell reported a velocity")
	}
}

func TestRunTrialStableDamBreak(t *testing.T) {
	cfg := smallConfig("dam-break")
	res := RunTrial(cfg, 60)
	if !res.Stable() || res.StepsRun != 60 {
		t.Fatalf("trial ended after %d steps: %v", res.StepsRun, res.Err)
	}
	if res.MaxSpeed <= 0 {
		t.Fatal("collapsing column never moved")
	}
	if res.MaxAbsDrift < math.Abs(res.Diagnostics.Drift) {
		t.Fatalf("peak drift %g below final drift %g", res.MaxAbsDrift, res.Diagnostics.Drift)
	}
}

func TestRunTrialStopsOnInstability(t *testing.T) {
	cfg := smallConfig("simple-barrier")
	cfg.Params.Inflow = 0.7
	cfg.Params.Viscosity = 0.005
	res := RunTrial(cfg, 400)
	if res.Stable() {
		t.Skipf("supersonic inflow stayed stable for %d steps", res.StepsRun)
	}
	if !errors.Is(res.Err, lbm.ErrUnstable) {
		t.Fatalf("unexpected result: %d steps, %v", res.StepsRun, res.Err)
	}
}
