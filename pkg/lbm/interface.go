package lbm

// DefaultBeta is the fill-fraction hysteresis used by EvolveInterface.
const DefaultBeta = 0.001

// Transitions summarises one pass of EvolveInterface.
type Transitions struct {
	// Filled counts interface cells that became fluid.
	Filled int
	// Emptied counts interface cells that became gas.
	Emptied int
	// Promoted counts gas cells turned into interface around filled cells.
	Promoted int
	// Demoted counts fluid cells turned into interface around emptied cells.
	Demoted int

	// Discarded is the excess mass dropped when filled cells are clamped to
	// mass = rho.
	Discarded float64
	// Created is the negative residual mass forgotten when cells empty. It is
	// reported as a positive amount of mass that appears.
	Created float64
}

// Add accumulates o into t.
func (t *Transitions) Add(o Transitions) {
	t.Filled += o.Filled
	t.Emptied += o.Emptied
	t.Promoted += o.Promoted
	t.Demoted += o.Demoted
	t.Discarded += o.Discarded
	t.Created += o.Created
}

// Any reports whether at least one interface cell changed phase.
func (t Transitions) Any() bool { return t.Filled > 0 || t.Emptied > 0 }

// EvolveInterface converts interface cells whose fill fraction left
// [-beta, 1+beta] into fluid or gas, and reclassifies their neighbours so no
// fluid cell ever touches a gas cell.
//
// All qualifying cells transition in the same call. They are collected first
// and then applied, filled cells before emptied ones, which keeps the result
// independent of scan order.
func EvolveInterface(l *Lattice, beta float64) Transitions {
	var t Transitions
	l.filled = l.filled[:0]
	l.emptied = l.emptied[:0]
	l.ForEachCell(func(i, _, _ int) {
		if l.phase[i] != PhaseInterface {
			return
		}
		switch a := l.alpha[i]; {
		case a > 1+beta:
			l.filled = append(l.filled, i)
		case a < -beta:
			l.emptied = append(l.emptied, i)
		}
	}, false)

	for _, i := range l.filled {
		l.phase[i] = PhaseFluid
		// Clamping drops the excess; it is reported rather than redistributed.
		t.Discarded += l.mass[i] - l.rho[i]
		l.mass[i] = l.rho[i]
		l.alpha[i] = 1
		t.Filled++

		eq := Equilibrium(1, l.ux[i], l.uy[i])
		for _, d := range Directions[1:] {
			j := l.neighbor(i, d)
			if l.phase[j] != PhaseGas {
				continue
			}
			l.phase[j] = PhaseInterface
			l.setCell(j, eq)
			l.rho[j] = 1
			l.ux[j] = l.ux[i]
			l.uy[j] = l.uy[i]
			l.mass[j] = 0
			l.alpha[j] = 0
			t.Promoted++
		}
	}

	for _, i := range l.emptied {
		l.phase[i] = PhaseGas
		t.Created -= l.mass[i]
		t.Emptied++
		for _, d := range Directions[1:] {
			j := l.neighbor(i, d)
			if l.phase[j] != PhaseFluid {
				continue
			}
			l.phase[j] = PhaseInterface
			t.Demoted++
		}
	}
	return t
}

func (l *Lattice) neighbor(i int, d Direction) int {
	dx, dy := d.Offset()
	return i + dy*l.w + dx
}
