package freesurface

import (
	"math"

	"mad-lbm/pkg/lbm"
)

// TrialResult captures telemetry from a headless run used for parameter
// sweeps.
type TrialResult struct {
	Config Config
	// StepsRun counts the steps executed, including a failing one.
	StepsRun int
	// Err is the instability that ended the run early, if any.
	Err error
	// MaxAbsDrift is the largest |mass - initial mass| seen.
	MaxAbsDrift float64
	// MaxSpeed is the largest liquid speed seen, in lattice units.
	MaxSpeed    float64
	Diagnostics Diagnostics
}

// Stable reports whether the run completed without an instability.
func (r TrialResult) Stable() bool { return r.Err == nil }

// RunTrial builds a sim from cfg and advances it up to steps times, sampling
// drift and peak speed after every step.
func RunTrial(cfg Config, steps int) TrialResult {
	s := NewWithConfig(cfg)
	res := TrialResult{Config: s.Config()}
	for i := 0; i < steps; i++ {
		err := s.Step()
		res.StepsRun++
		if err != nil {
			res.Err = err
			break
		}
		d := math.Abs(lbm.TotalMass(s.lattice) - s.initialMass)
		res.MaxAbsDrift = math.Max(res.MaxAbsDrift, d)
		res.MaxSpeed = math.Max(res.MaxSpeed, maxSpeed(s.lattice))
	}
	res.Diagnostics = s.Diagnostics()
	return res
}

func maxSpeed(l *lbm.Lattice) float64 {
	phases := l.Phases()
	ux, uy := l.VelocityX(), l.VelocityY()
	peak := 0.0
	for i, p := range phases {
		if !p.Liquid() {
			continue
		}
		peak = math.Max(peak, math.Hypot(ux[i], uy[i]))
	}
	return peak
}
