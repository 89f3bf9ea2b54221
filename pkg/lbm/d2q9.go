package lbm

// Direction enumerates the nine D2Q9 lattice velocities.
type Direction uint8

const (
	C Direction = iota
	N
	S
	E
	W
	NE
	NW
	SE
	SW
)

// NumDirections is the number of discrete velocities per cell.
const NumDirections = 9

const (
	four9ths = 4.0 / 9.0
	one9th   = 1.0 / 9.0
	one36th  = 1.0 / 36.0
)

var directionOffsets = [NumDirections][2]int{
	C:  {0, 0},
	N:  {0, 1},
	S:  {0, -1},
	E:  {1, 0},
	W:  {-1, 0},
	NE: {1, 1},
	NW: {-1, 1},
	SE: {1, -1},
	SW: {-1, -1},
}

var oppositeDirections = [NumDirections]Direction{
	C:  C,
	N:  S,
	S:  N,
	E:  W,
	W:  E,
	NE: SW,
	NW: SE,
	SE: NW,
	SW: NE,
}

var directionNames = [NumDirections]string{"C", "N", "S", "E", "W", "NE", "NW", "SE", "SW"}

// Directions lists every lattice velocity in storage order.
var Directions = [NumDirections]Direction{C, N, S, E, W, NE, NW, SE, SW}

// Offset returns the unit lattice vector of d. y grows upward.
func (d Direction) Offset() (dx, dy int) {
	o := directionOffsets[d]
	return o[0], o[1]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return oppositeDirections[d] }

func (d Direction) String() string {
	if int(d) >= NumDirections {
		return "?"
	}
	return directionNames[d]
}

// Distributions holds the nine populations of a single cell, indexed by Direction.
type Distributions [NumDirections]float64

// Equilibrium returns the second-order D2Q9 equilibrium populations for the
// macroscopic state (rho, ux, uy).
func Equilibrium(rho, ux, uy float64) Distributions {
	ux3 := 3 * ux
	uy3 := 3 * uy
	ux2 := ux * ux
	uy2 := uy * uy
	uxuy2 := 2 * ux * uy
	u2 := ux2 + uy2
	u215 := 1.5 * u2
	one9thRho := one9th * rho
	one36thRho := one36th * rho

	var f Distributions
	f[C] = four9ths * rho * (1 - u215)
	f[E] = one9thRho * (1 + ux3 + 4.5*ux2 - u215)
	f[W] = one9thRho * (1 - ux3 + 4.5*ux2 - u215)
	f[N] = one9thRho * (1 + uy3 + 4.5*uy2 - u215)
	f[S] = one9thRho * (1 - uy3 + 4.5*uy2 - u215)
	f[NE] = one36thRho * (1 + ux3 + uy3 + 4.5*(u2+uxuy2) - u215)
	f[SE] = one36thRho * (1 + ux3 - uy3 + 4.5*(u2-uxuy2) - u215)
	f[NW] = one36thRho * (1 - ux3 + uy3 + 4.5*(u2-uxuy2) - u215)
	f[SW] = one36thRho * (1 - ux3 - uy3 + 4.5*(u2+uxuy2) - u215)
	return f
}

// Density returns the zeroth moment (sum of all populations).
func (f *Distributions) Density() float64 {
	return f[C] + f[N] + f[S] + f[E] + f[W] + f[NE] + f[NW] + f[SE] + f[SW]
}

// Velocity returns the first moments divided by rho.
func (f *Distributions) Velocity(rho float64) (ux, uy float64) {
	ux = (f[E] + f[NE] + f[SE] - f[W] - f[NW] - f[SW]) / rho
	uy = (f[N] + f[NE] + f[NW] - f[S] - f[SE] - f[SW]) / rho
	return ux, uy
}

// Omega converts a kinematic viscosity into the BGK relaxation rate. Larger
// viscosity means slower relaxation.
func Omega(viscosity float64) float64 {
	return 1 / (3*viscosity + 0.5)
}

// CollideCell relaxes f toward the equilibrium of (rho, ux, uy) and applies a
// gravity body force proportional to the cell mass. The force moves population
// from the upward directions into the downward ones, so density is unchanged.
func CollideCell(f Distributions, rho, ux, uy, mass, viscosity, gravity float64) Distributions {
	omega := Omega(viscosity)
	eq := Equilibrium(rho, ux, uy)
	for d := range f {
		f[d] += omega * (eq[d] - f[d])
	}
	if gravity != 0 {
		axis := gravity * mass * one9th
		diag := gravity * mass * one36th
		f[N] -= axis
		f[S] += axis
		f[NE] -= diag
		f[NW] -= diag
		f[SE] += diag
		f[SW] += diag
	}
	return f
}
