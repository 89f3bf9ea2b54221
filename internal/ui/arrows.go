package ui

import (
	"math"

	"mad-lbm/internal/core"
)

// VelocityField exposes per-cell fluid velocity in lattice coordinates, y up.
// ok is false where the cell holds no liquid.
type VelocityField interface {
	Velocity(x, y int) (ux, uy float64, ok bool)
}

type arrowSample struct {
	x, y   int
	sx, sy float64
}

// arrowGrid spreads roughly targetArrows sample points evenly over the grid.
// Screen positions are cell centres with row 0 at the top.
func arrowGrid(size core.Size, scale int) ([]arrowSample, float64) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	if scale <= 0 {
		scale = 1
	}
	const (
		targetArrows = 360.0
		minSpacing   = 4
		maxSpacing   = 20
	)
	spacing := int(math.Sqrt(float64(size.W*size.H) / targetArrows))
	spacing = max(minSpacing, min(spacing, maxSpacing))

	countX := max((size.W+spacing-1)/spacing, 1)
	countY := max((size.H+spacing-1)/spacing, 1)
	startX := max((size.W-1-(countX-1)*spacing)/2, 0)
	startY := max((size.H-1-(countY-1)*spacing)/2, 0)

	samples := make([]arrowSample, 0, countX*countY)
	for yi := 0; yi < countY; yi++ {
		y := min(startY+yi*spacing, size.H-1)
		for xi := 0; xi < countX; xi++ {
			x := min(startX+xi*spacing, size.W-1)
			samples = append(samples, arrowSample{
				x:  x,
				y:  y,
				sx: (float64(x) + 0.5) * float64(scale),
				sy: (float64(size.H-1-y) + 0.5) * float64(scale),
			})
		}
	}
	return samples, float64(spacing * scale)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
