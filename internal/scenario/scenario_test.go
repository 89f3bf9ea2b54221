package scenario

import (
	"math"
	"slices"
	"testing"

	"mad-lbm/pkg/lbm"
)

func mustLookup(t *testing.T, name string) Scenario {
	t.Helper()
	s, ok := Lookup(name)
	if !ok {
		t.Fatalf("scenario %q not registered", name)
	}
	return s
}

func TestNamesAreSortedAndComplete(t *testing.T) {
	want := []string{"dam-break", "droplet", "flowing-water", "rain", "resting-water", "simple-barrier", "wall"}
	if got := Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, expected %v", got, want)
	}
}

func TestRegisterIgnoresIncompleteScenarios(t *testing.T) {
	before := len(Names())
	Register(Scenario{Name: "no-setup"})
	Register(Scenario{Setup: restingWater})
	if len(Names()) != before {
		t.Fatal("incomplete scenario was registered")
	}
}

func TestRestingWaterSmallGrid(t *testing.T) {
	l := mustLookup(t, "resting-water").Build(7, 5, DefaultOptions())
	if got := l.Phase(3, 2); got != lbm.PhaseInterface {
		t.Fatalf("(3,2) = %v, expected interface", got)
	}
	if got := l.Phase(3, 1); got != lbm.PhaseFluid {
		t.Fatalf("(3,1) = %v, expected fluid", got)
	}
	if got := l.Phase(3, 3); got != lbm.PhaseGas {
		t.Fatalf("(3,3) = %v, expected gas", got)
	}

	p := lbm.DefaultParams()
	lbm.Collide(l, p.Viscosity, p.Gravity)
	lbm.Stream(l)
	rho := l.Density()[l.Index(3, 2)]
	if rho < 0.9 || rho > 1.1 {
		t.Fatalf("interface density %f outside [0.9, 1.1]", rho)
	}
}

func TestRestingWaterTwoRowsFromSurface(t *testing.T) {
	l := mustLookup(t, "resting-water").Build(9, 7, DefaultOptions())
	if got := l.Phase(4, 3); got != lbm.PhaseInterface {
		t.Fatalf("(4,3) = %v, expected interface", got)
	}
	if got := l.Phase(4, 1); got != lbm.PhaseFluid {
		t.Fatalf("(4,1) = %v, expected fluid", got)
	}
	if got := l.Phase(4, 5); got != lbm.PhaseGas {
		t.Fatalf("(4,5) = %v, expected gas", got)
	}
	if a := l.Fill()[l.Index(4, 3)]; a != 0 {
		t.Fatalf("surface fill %f, expected 0", a)
	}
}

func TestLayoutsKeepFluidAwayFromGas(t *testing.T) {
	sizes := [][2]int{{7, 5}, {9, 7}, {32, 24}, {64, 48}}
	for _, name := range Names() {
		s := mustLookup(t, name)
		for _, sz := range sizes {
			l := s.Build(sz[0], sz[1], DefaultOptions())
			if x, y, bad := lbm.FluidTouchesGas(l); bad {
				t.Fatalf("%s %dx%d: fluid at (%d,%d) touches gas", name, sz[0], sz[1], x, y)
			}
			w, h := l.Width(), l.Height()
			for x := 0; x < w; x++ {
				if l.Phase(x, 0) != lbm.PhaseBarrier || l.Phase(x, h-1) != lbm.PhaseBarrier {
					t.Fatalf("%s: border column %d is open", name, x)
				}
			}
			for y := 0; y < h; y++ {
				if l.Phase(0, y) != lbm.PhaseBarrier || l.Phase(w-1, y) != lbm.PhaseBarrier {
					t.Fatalf("%s: border row %d is open", name, y)
				}
			}
		}
	}
}

func TestDamBreakIncludesCorner(t *testing.T) {
	l := mustLookup(t, "dam-break").Build(30, 30, DefaultOptions())
	if got := l.Phase(10, 10); got != lbm.PhaseInterface {
		t.Fatalf("corner = %v, expected interface", got)
	}
	if got := l.Phase(5, 5); got != lbm.PhaseFluid {
		t.Fatalf("block interior = %v, expected fluid", got)
	}
	if got := l.Phase(11, 5); got != lbm.PhaseGas {
		t.Fatalf("cell right of the block = %v, expected gas", got)
	}
}

func TestRainIsDeterministicForSeed(t *testing.T) {
	s := mustLookup(t, "rain")
	opts := Options{Seed: 42}
	a := s.Build(48, 40, opts)
	b := s.Build(48, 40, opts)
	if !slices.Equal(a.Phases(), b.Phases()) {
		t.Fatal("same seed produced different layouts")
	}
	c := lbm.CountPhases(a)
	if c.Fluid == 0 || c.Interface == 0 || c.Gas == 0 {
		t.Fatalf("rain layout lacks a phase: %+v", c)
	}
}

func TestFlowingWaterRefreshPinsSources(t *testing.T) {
	s := mustLookup(t, "flowing-water")
	opts := Options{Inflow: 0.05}
	l := s.Build(40, 30, opts)
	sources := lbm.CountPhases(l).Source
	if sources == 0 {
		t.Fatal("flowing-water has no source cells")
	}
	if got := l.Phase(postX(40), 2); got != lbm.PhaseBarrier {
		t.Fatalf("post cell = %v, expected barrier", got)
	}

	i := l.Index(1, 2)
	if l.Phases()[i] != lbm.PhaseSource {
		t.Fatalf("(1,2) = %v, expected source", l.Phases()[i])
	}
	l.SetEquilibrium(1, 2, -0.1, 0.02, 1.3, 1)
	s.Apply(l, opts)
	if ux, uy, rho := l.VelocityX()[i], l.VelocityY()[i], l.Density()[i]; math.Abs(ux-0.05) > 1e-12 || uy != 0 || rho != 1 {
		t.Fatalf("refresh left (%f,%f) rho %f", ux, uy, rho)
	}
	if lbm.CountPhases(l).Source != sources {
		t.Fatal("refresh changed the source set")
	}
}

func TestScenarioStepsStayStable(t *testing.T) {
	p := lbm.DefaultParams()
	for _, name := range Names() {
		s := mustLookup(t, name)
		opts := DefaultOptions()
		l := s.Build(40, 30, opts)
		for step := 0; step < 50; step++ {
			s.Apply(l, opts)
			if _, err := lbm.Step(l, p); err != nil {
				t.Fatalf("%s: step %d: %v", name, step, err)
			}
		}
		if x, y, bad := lbm.FluidTouchesGas(l); bad {
			t.Fatalf("%s: fluid at (%d,%d) touches gas after stepping", name, x, y)
		}
	}
}
