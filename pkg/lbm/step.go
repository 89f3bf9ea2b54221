package lbm

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnstable reports non-physical density. The lattice must be discarded.
var ErrUnstable = errors.New("lbm: simulation became unstable")

// InstabilityError pinpoints the first cell found with non-positive density.
type InstabilityError struct {
	X, Y int
	Rho  float64
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("lbm: simulation became unstable at (%d,%d): rho=%g, fluid speed too high", e.X, e.Y, e.Rho)
}

// Unwrap lets errors.Is match ErrUnstable.
func (e *InstabilityError) Unwrap() error { return ErrUnstable }

// Params holds the physical constants of a full step.
type Params struct {
	Viscosity float64
	Gravity   float64
	Beta      float64
}

// DefaultParams returns the settings used by the stock scenarios.
func DefaultParams() Params {
	return Params{Viscosity: 0.02, Gravity: 0.001, Beta: DefaultBeta}
}

// Step runs collide, stream and interface evolution in sequence, then checks
// stability and refreshes the curl field. A non-nil error means the lattice
// state is corrupted.
func Step(l *Lattice, p Params) (Transitions, error) {
	Collide(l, p.Viscosity, p.Gravity)
	Stream(l)
	t := EvolveInterface(l, p.Beta)
	if err := CheckStability(l); err != nil {
		return t, err
	}
	ComputeCurl(l)
	return t, nil
}

// CheckStability samples the middle row and fails when any liquid cell there
// has rho <= 0 or NaN.
func CheckStability(l *Lattice) error {
	if l.h == 0 {
		return nil
	}
	y := l.h / 2
	row := y * l.w
	for x := 0; x < l.w; x++ {
		i := row + x
		if !l.phase[i].Liquid() {
			continue
		}
		if rho := l.rho[i]; rho <= 0 || math.IsNaN(rho) {
			return &InstabilityError{X: x, Y: y, Rho: rho}
		}
	}
	return nil
}

// ComputeCurl fills the curl field with duy/dx - dux/dy using central
// differences. Border cells are left at zero.
func ComputeCurl(l *Lattice) {
	w := l.w
	l.ForEachCell(func(i, _, _ int) {
		l.curl[i] = l.uy[i+1] - l.uy[i-1] - l.ux[i+w] + l.ux[i-w]
	}, false)
}

// TotalMass sums the mass of every cell that is neither barrier nor gas.
func TotalMass(l *Lattice) float64 {
	total := 0.0
	for i, p := range l.phase {
		if p.Liquid() {
			total += l.mass[i]
		}
	}
	return total
}

// PhaseCounts is a histogram of cell phases.
type PhaseCounts struct {
	Barrier, Fluid, Gas, Interface, Source int
}

// CountPhases tallies the phases of every cell, borders included.
func CountPhases(l *Lattice) PhaseCounts {
	var c PhaseCounts
	for _, p := range l.phase {
		switch p {
		case PhaseBarrier:
			c.Barrier++
		case PhaseFluid:
			c.Fluid++
		case PhaseGas:
			c.Gas++
		case PhaseInterface:
			c.Interface++
		case PhaseSource:
			c.Source++
		}
	}
	return c
}

// FluidTouchesGas reports the first fluid cell with a gas cell among its eight
// neighbours. ok is false when the layout is consistent.
func FluidTouchesGas(l *Lattice) (x, y int, ok bool) {
	l.ForEachCell(func(i, cx, cy int) {
		if ok || l.phase[i] != PhaseFluid {
			return
		}
		for _, d := range Directions[1:] {
			if l.phase[l.neighbor(i, d)] == PhaseGas {
				x, y, ok = cx, cy, true
				return
			}
		}
	}, false)
	return x, y, ok
}
