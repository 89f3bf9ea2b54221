package lbm

// Stream propagates populations to their neighbours, exchanges mass across
// liquid faces, refreshes rho/u/alpha from the streamed populations and swaps
// the distribution buffers.
//
// For a target cell i and a direction d pointing at neighbour j, the population
// arriving in i travels along the opposite of d:
//   - j barrier: bounce-back, i's own outgoing population along d returns.
//   - j gas: the population is rebuilt from the equilibrium at atmospheric
//     density and i's velocity, so the gas side exerts pressure but carries no
//     momentum. No mass crosses the face.
//   - otherwise: plain propagation from j. Mass changes by what came in minus
//     what went out, scaled by the mean fill when both cells are interface.
func Stream(l *Lattice) {
	for i := range l.delta {
		l.delta[i] = 0
	}

	w := l.w
	l.ForEachCell(func(i, _, _ int) {
		target := l.phase[i]
		if !target.Liquid() {
			return
		}
		var gasEq Distributions
		gasEqReady := false
		dm := 0.0
		for _, d := range Directions {
			opp := d.Opposite()
			if d == C {
				l.next[C][i] = l.f[C][i]
				continue
			}
			dx, dy := d.Offset()
			j := i + dy*w + dx
			switch l.phase[j] {
			case PhaseBarrier:
				l.next[opp][i] = l.f[d][i]
			case PhaseGas:
				if !gasEqReady {
					gasEq = Equilibrium(1, l.ux[i], l.uy[i])
					gasEqReady = true
				}
				l.next[opp][i] = gasEq[opp]
			default:
				in := l.f[opp][j]
				l.next[opp][i] = in
				exchange := in - l.f[d][i]
				if target == PhaseInterface && l.phase[j] == PhaseInterface {
					exchange *= 0.5 * (l.alpha[i] + l.alpha[j])
				}
				dm += exchange
			}
		}
		l.delta[i] = dm
	}, false)

	l.ForEachCell(func(i, _, _ int) {
		if !l.phase[i].Liquid() {
			return
		}
		var f Distributions
		for d := range f {
			f[d] = l.next[d][i]
		}
		rho := f.Density()
		ux, uy := f.Velocity(rho)
		l.mass[i] += l.delta[i]
		l.rho[i] = rho
		l.ux[i] = ux
		l.uy[i] = uy
		l.alpha[i] = l.mass[i] / rho
	}, false)

	l.swap()
}
