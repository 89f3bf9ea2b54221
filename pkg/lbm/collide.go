package lbm

// Collide applies BGK relaxation with gravity to every fluid, interface and
// source cell. Density and velocity are recomputed from the current populations
// and cached for streaming and rendering. Barrier and gas cells are skipped.
//
// viscosity must be greater than -1/6; this is not checked.
func Collide(l *Lattice, viscosity, gravity float64) {
	l.ForEachCell(func(i, _, _ int) {
		if !l.phase[i].Liquid() {
			return
		}
		f := l.Cell(i)
		rho := f.Density()
		ux, uy := f.Velocity(rho)
		l.rho[i] = rho
		l.ux[i] = ux
		l.uy[i] = uy
		l.setCell(i, CollideCell(f, rho, ux, uy, l.mass[i], viscosity, gravity))
	}, false)
}
