// Package render turns lattice state into RGBA frames.
package render

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"mad-lbm/pkg/lbm"
)

// Field selects what a frame shows.
type Field int

const (
	// FieldPhase paints the sim palette: phases, with surface cells shaded by fill.
	FieldPhase Field = iota
	FieldSpeed
	FieldDensity
	FieldCurl
	FieldFill
	fieldCount
)

var fieldNames = [...]string{"phase", "speed", "density", "curl", "fill"}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// Next cycles through the fields.
func (f Field) Next() Field { return (f + 1) % fieldCount }

// ParseField maps a name back to its field.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return FieldPhase, false
}

// Scalar extracts a field as a Height x Width matrix whose row 0 is the top of
// the domain. Cells that hold no liquid take a neutral value drawn from the
// liquid so they never widen the autoscale range. It returns nil for
// FieldPhase or an empty lattice.
func Scalar(l *lbm.Lattice, f Field) *mat.Dense {
	w, h := l.Width(), l.Height()
	if f == FieldPhase || f >= fieldCount || w == 0 || h == 0 {
		return nil
	}
	phases := l.Phases()
	rho, ux, uy := l.Density(), l.VelocityX(), l.VelocityY()
	fill, curl := l.Fill(), l.Curl()

	data := make([]float64, w*h)
	neutral := math.NaN()
	for y := 0; y < h; y++ {
		row := (h - 1 - y) * w
		for x := 0; x < w; x++ {
			i := y*w + x
			if !phases[i].Liquid() {
				data[row+x] = math.NaN()
				continue
			}
			var v float64
			switch f {
			case FieldSpeed:
				v = math.Hypot(ux[i], uy[i])
			case FieldDensity:
				v = rho[i]
			case FieldCurl:
				v = curl[i]
			case FieldFill:
				v = fill[i]
			}
			if math.IsNaN(neutral) {
				neutral = v
			}
			data[row+x] = v
		}
	}
	if math.IsNaN(neutral) {
		neutral = 0
	}
	for i, v := range data {
		if math.IsNaN(v) {
			data[i] = neutral
		}
	}
	return mat.NewDense(h, w, data)
}

// Range reports the colour scale for m. Curl is made symmetric around zero.
func Range(m *mat.Dense, f Field) (lo, hi float64) {
	if m == nil {
		return 0, 0
	}
	lo, hi = mat.Min(m), mat.Max(m)
	if f == FieldCurl {
		bound := math.Max(math.Abs(lo), math.Abs(hi))
		return -bound, bound
	}
	return lo, hi
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}
