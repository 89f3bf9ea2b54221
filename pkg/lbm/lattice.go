package lbm

// Phase tags the role a cell plays in the free-surface model.
type Phase uint8

const (
	// PhaseBarrier is the zero value so freshly allocated cells never take part
	// in the flow.
	PhaseBarrier Phase = iota
	PhaseFluid
	PhaseGas
	PhaseInterface
	// PhaseSource cells behave like fluid but are re-pinned every step by a
	// refresh hook.
	PhaseSource
)

func (p Phase) String() string {
	switch p {
	case PhaseBarrier:
		return "barrier"
	case PhaseFluid:
		return "fluid"
	case PhaseGas:
		return "gas"
	case PhaseInterface:
		return "interface"
	case PhaseSource:
		return "source"
	default:
		return "unknown"
	}
}

// Liquid reports whether cells of phase p carry populations and mass.
func (p Phase) Liquid() bool {
	return p == PhaseFluid || p == PhaseInterface || p == PhaseSource
}

// SetEquilibriumFunc initialises cell (x, y) at equilibrium for the given
// velocity, density and fill fraction.
type SetEquilibriumFunc func(x, y int, ux, uy, rho, alpha float64)

// Lattice stores a dense 2D D2Q9 grid in structure-of-arrays form.
type Lattice struct {
	w, h int

	f    [NumDirections][]float64
	next [NumDirections][]float64

	rho   []float64
	ux    []float64
	uy    []float64
	mass  []float64
	alpha []float64
	curl  []float64
	phase []Phase

	// scratch buffers reused across steps
	delta   []float64
	filled  []int
	emptied []int
}

// NewLattice allocates a w*h lattice with every cell flagged as barrier.
func NewLattice(w, h int) *Lattice {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	total := w * h
	l := &Lattice{
		w:     w,
		h:     h,
		rho:   make([]float64, total),
		ux:    make([]float64, total),
		uy:    make([]float64, total),
		mass:  make([]float64, total),
		alpha: make([]float64, total),
		curl:  make([]float64, total),
		phase: make([]Phase, total),
		delta: make([]float64, total),
	}
	for d := range l.f {
		l.f[d] = make([]float64, total)
		l.next[d] = make([]float64, total)
	}
	return l
}

// NewLatticeAtEquilibrium allocates a lattice whose interior cells are fluid at
// equilibrium for (rho, ux, uy). The outer border stays barrier.
func NewLatticeAtEquilibrium(w, h int, rho, ux, uy float64) *Lattice {
	l := NewLattice(w, h)
	eq := Equilibrium(rho, ux, uy)
	l.ForEachCell(func(i, _, _ int) {
		for d := range eq {
			l.f[d][i] = eq[d]
			l.next[d][i] = eq[d]
		}
		l.rho[i] = rho
		l.ux[i] = ux
		l.uy[i] = uy
		l.mass[i] = rho
		l.alpha[i] = 1
		l.phase[i] = PhaseFluid
	}, false)
	return l
}

// Width returns the number of columns.
func (l *Lattice) Width() int { return l.w }

// Height returns the number of rows.
func (l *Lattice) Height() int { return l.h }

// Len returns the number of cells.
func (l *Lattice) Len() int { return l.w * l.h }

// Index returns the linear index of (x, y).
func (l *Lattice) Index(x, y int) int { return y*l.w + x }

// Coords is the inverse of Index.
func (l *Lattice) Coords(i int) (x, y int) { return i % l.w, i / l.w }

// InBounds reports whether (x, y) lies on the grid.
func (l *Lattice) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.w && y < l.h
}

// ForEachCell calls fn for every cell in row-major order. Borders are skipped
// unless includeBorders is set since streaming needs a one-cell halo.
func (l *Lattice) ForEachCell(fn func(i, x, y int), includeBorders bool) {
	x0, y0, x1, y1 := 1, 1, l.w-1, l.h-1
	if includeBorders {
		x0, y0, x1, y1 = 0, 0, l.w, l.h
	}
	for y := y0; y < y1; y++ {
		row := y * l.w
		for x := x0; x < x1; x++ {
			fn(row+x, x, y)
		}
	}
}

// Phase returns the phase of (x, y).
func (l *Lattice) Phase(x, y int) Phase { return l.phase[l.Index(x, y)] }

// SetPhase flags (x, y) without touching its populations.
func (l *Lattice) SetPhase(x, y int, p Phase) { l.phase[l.Index(x, y)] = p }

// Cell gathers the current populations of cell i.
func (l *Lattice) Cell(i int) Distributions {
	var f Distributions
	for d := range f {
		f[d] = l.f[d][i]
	}
	return f
}

func (l *Lattice) setCell(i int, f Distributions) {
	for d := range f {
		l.f[d][i] = f[d]
	}
}

// Distribution returns the current population of cell i along d.
func (l *Lattice) Distribution(d Direction, i int) float64 { return l.f[d][i] }

// SetEquilibrium overwrites cell (x, y) with the equilibrium populations for
// (rho, ux, uy) and sets mass = rho*alpha. The phase is left unchanged.
func (l *Lattice) SetEquilibrium(x, y int, ux, uy, rho, alpha float64) {
	i := l.Index(x, y)
	l.setCell(i, Equilibrium(rho, ux, uy))
	l.rho[i] = rho
	l.ux[i] = ux
	l.uy[i] = uy
	l.alpha[i] = alpha
	l.mass[i] = rho * alpha
}

// Phases exposes the phase flags. Callers must treat it as read-only.
func (l *Lattice) Phases() []Phase { return l.phase }

// Density exposes the cached macroscopic density.
func (l *Lattice) Density() []float64 { return l.rho }

// VelocityX exposes the cached x velocity.
func (l *Lattice) VelocityX() []float64 { return l.ux }

// VelocityY exposes the cached y velocity.
func (l *Lattice) VelocityY() []float64 { return l.uy }

// Mass exposes the per-cell liquid mass.
func (l *Lattice) Mass() []float64 { return l.mass }

// Fill exposes the fill fraction (mass/rho). Only meaningful for fluid,
// interface and source cells.
func (l *Lattice) Fill() []float64 { return l.alpha }

// Curl exposes the vorticity field computed by ComputeCurl.
func (l *Lattice) Curl() []float64 { return l.curl }

// swap hands the freshly streamed buffer over to the current slot.
func (l *Lattice) swap() { l.f, l.next = l.next, l.f }

// Clone returns a deep copy of the lattice.
func (l *Lattice) Clone() *Lattice {
	c := NewLattice(l.w, l.h)
	for d := range l.f {
		copy(c.f[d], l.f[d])
		copy(c.next[d], l.next[d])
	}
	copy(c.rho, l.rho)
	copy(c.ux, l.ux)
	copy(c.uy, l.uy)
	copy(c.mass, l.mass)
	copy(c.alpha, l.alpha)
	copy(c.curl, l.curl)
	copy(c.phase, l.phase)
	return c
}
