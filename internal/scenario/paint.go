package scenario

import "mad-lbm/pkg/lbm"

// box flags the border as barrier and every interior cell as gas.
func box(l *lbm.Lattice) {
	w, h := l.Width(), l.Height()
	l.ForEachCell(func(_, x, y int) {
		if x == 0 || y == 0 || x == w-1 || y == h-1 {
			l.SetPhase(x, y, lbm.PhaseBarrier)
			return
		}
		l.SetPhase(x, y, lbm.PhaseGas)
	}, true)
}

// barrierColumn flags x as barrier for rows y0..y1, clipped to the interior.
func barrierColumn(l *lbm.Lattice, x, y0, y1 int) {
	if x < 1 || x > l.Width()-2 {
		return
	}
	y0 = max(y0, 1)
	y1 = min(y1, l.Height()-2)
	for y := y0; y <= y1; y++ {
		l.SetPhase(x, y, lbm.PhaseBarrier)
	}
}

// paintLiquid fills every non-barrier interior cell for which inside reports
// true. A cell becomes fluid only when none of its neighbours would stay gas;
// the others form the interface skin, with fill fraction skin.
func paintLiquid(l *lbm.Lattice, set lbm.SetEquilibriumFunc, inside func(x, y int) bool, ux, uy, skin float64) {
	solid := func(x, y int) bool {
		return !l.InBounds(x, y) || l.Phase(x, y) == lbm.PhaseBarrier
	}
	wet := func(x, y int) bool {
		return solid(x, y) || inside(x, y)
	}
	l.ForEachCell(func(_, x, y int) {
		if solid(x, y) || !inside(x, y) {
			return
		}
		surface := false
		for _, d := range lbm.Directions[1:] {
			dx, dy := d.Offset()
			if !wet(x+dx, y+dy) {
				surface = true
				break
			}
		}
		if surface {
			l.SetPhase(x, y, lbm.PhaseInterface)
			set(x, y, ux, uy, 1, skin)
			return
		}
		l.SetPhase(x, y, lbm.PhaseFluid)
		set(x, y, ux, uy, 1, 1)
	}, false)
}

// sourceColumn flags rows y0..y1 of column x as source cells at (ux, 0).
func sourceColumn(l *lbm.Lattice, set lbm.SetEquilibriumFunc, x, y0, y1 int, ux float64) {
	if x < 1 || x > l.Width()-2 {
		return
	}
	y0 = max(y0, 1)
	y1 = min(y1, l.Height()-2)
	for y := y0; y <= y1; y++ {
		if l.Phase(x, y) == lbm.PhaseBarrier {
			continue
		}
		l.SetPhase(x, y, lbm.PhaseSource)
		set(x, y, ux, 0, 1, 1)
	}
}

// pinSources re-imposes (ux, 0) at unit density on rows y0..y1 of column x
// wherever the cell is a source.
func pinSources(l *lbm.Lattice, set lbm.SetEquilibriumFunc, x, y0, y1 int, ux float64) {
	if x < 1 || x > l.Width()-2 {
		return
	}
	y0 = max(y0, 1)
	y1 = min(y1, l.Height()-2)
	for y := y0; y <= y1; y++ {
		if l.Phase(x, y) == lbm.PhaseSource {
			set(x, y, ux, 0, 1, 1)
		}
	}
}

type disc struct {
	cx, cy, r float64
}

func (d disc) contains(x, y int) bool {
	dx := float64(x) - d.cx
	dy := float64(y) - d.cy
	return dx*dx+dy*dy <= d.r*d.r
}
