package scenario

import (
	"math"

	pcore "mad-lbm/pkg/core"
	"mad-lbm/pkg/lbm"
)

func init() {
	Register(Scenario{
		Name:        "resting-water",
		Description: "still pool filling the lower half of the box",
		Setup:       restingWater,
	})
	Register(Scenario{
		Name:        "flowing-water",
		Description: "pool driven by submerged sources past a barrier post",
		Setup:       flowingWater,
		Refresh:     refreshLowerSources,
	})
	Register(Scenario{
		Name:        "simple-barrier",
		Description: "flooded channel with a vertical plate across the stream",
		Setup:       simpleBarrier,
		Refresh:     refreshChannel,
	})
	Register(Scenario{
		Name:        "wall",
		Description: "column of water released from the left half",
		Setup:       wall,
	})
	Register(Scenario{
		Name:        "dam-break",
		Description: "block of water collapsing from the lower left corner",
		Setup:       damBreak,
	})
	Register(Scenario{
		Name:        "droplet",
		Description: "single drop falling into a shallow pool",
		Setup:       droplet,
	})
	Register(Scenario{
		Name:        "rain",
		Description: "seeded shower of drops over a shallow pool",
		Setup:       rain,
	})
}

func restingWater(l *lbm.Lattice, set lbm.SetEquilibriumFunc, _ Options) {
	box(l)
	surface := l.Height() / 2
	paintLiquid(l, set, func(_, y int) bool { return y <= surface }, 0, 0, 0)
}

// postX is where flowing-water places its barrier post.
func postX(w int) int { return w / 3 }

func flowingWater(l *lbm.Lattice, set lbm.SetEquilibriumFunc, opts Options) {
	box(l)
	w, h := l.Width(), l.Height()
	surface := h / 2
	barrierColumn(l, postX(w), 1, surface+h/8)
	paintLiquid(l, set, func(_, y int) bool { return y <= surface }, 0, 0, 0)
	top := lowerSourceTop(h)
	sourceColumn(l, set, 1, 1, top, opts.Inflow)
	sourceColumn(l, set, w-2, 1, top, opts.Inflow)
}

// lowerSourceTop is the highest source row, kept two rows below the surface.
func lowerSourceTop(h int) int { return h/2 - 2 }

func refreshLowerSources(l *lbm.Lattice, set lbm.SetEquilibriumFunc, opts Options) {
	top := lowerSourceTop(l.Height())
	pinSources(l, set, 1, 1, top, opts.Inflow)
	pinSources(l, set, l.Width()-2, 1, top, opts.Inflow)
}

func simpleBarrier(l *lbm.Lattice, set lbm.SetEquilibriumFunc, opts Options) {
	box(l)
	w, h := l.Width(), l.Height()
	half := max(h/8, 1)
	barrierColumn(l, w/4, h/2-half, h/2+half)
	paintLiquid(l, set, func(_, _ int) bool { return true }, opts.Inflow, 0, 1)
	sourceColumn(l, set, 1, 1, h-2, opts.Inflow)
	sourceColumn(l, set, w-2, 1, h-2, opts.Inflow)
}

func refreshChannel(l *lbm.Lattice, set lbm.SetEquilibriumFunc, opts Options) {
	h := l.Height()
	pinSources(l, set, 1, 1, h-2, opts.Inflow)
	pinSources(l, set, l.Width()-2, 1, h-2, opts.Inflow)
}

func wall(l *lbm.Lattice, set lbm.SetEquilibriumFunc, _ Options) {
	box(l)
	front := l.Width() / 2
	paintLiquid(l, set, func(x, _ int) bool { return x <= front }, 0, 0, 0)
}

func damBreak(l *lbm.Lattice, set lbm.SetEquilibriumFunc, _ Options) {
	box(l)
	right, top := l.Width()/3, l.Height()/3
	paintLiquid(l, set, func(x, y int) bool { return x <= right && y <= top }, 0, 0, 0)
}

// poolDepth is the surface row of the shallow pool under falling drops.
func poolDepth(h int) int { return h / 4 }

func droplet(l *lbm.Lattice, set lbm.SetEquilibriumFunc, _ Options) {
	box(l)
	w, h := l.Width(), l.Height()
	depth := poolDepth(h)
	drop := disc{
		cx: float64(w) / 2,
		cy: float64(h) * 3 / 4,
		r:  math.Max(float64(min(w, h))/8, 1.5),
	}
	paintLiquid(l, set, func(x, y int) bool {
		return y <= depth || drop.contains(x, y)
	}, 0, 0, 0.5)
}

func rain(l *lbm.Lattice, set lbm.SetEquilibriumFunc, opts Options) {
	box(l)
	w, h := l.Width(), l.Height()
	depth := poolDepth(h)
	rng := pcore.NewRNG(opts.Seed)
	maxR := max(min(w, h)/12, 2)
	drops := make([]disc, rng.IntRange(2, 4))
	for i := range drops {
		r := float64(rng.IntRange(2, maxR))
		drops[i] = disc{
			cx: rng.FloatRange(r+1, float64(w)-r-2),
			cy: rng.FloatRange(float64(h)/2, float64(h)-r-2),
			r:  r,
		}
	}
	paintLiquid(l, set, func(x, y int) bool {
		if y <= depth {
			return true
		}
		for _, d := range drops {
			if d.contains(x, y) {
				return true
			}
		}
		return false
	}, 0, 0, 0.5)
}
