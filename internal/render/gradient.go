package render

import (
	"image/color"
	"math"

	"github.com/mazznoer/colorgrad"
)

const gradientSteps = 256

// Gradient is a colour map sampled into a fixed lookup table.
type Gradient struct {
	colors []color.RGBA
}

// NewGradient samples g into a lookup table.
func NewGradient(g colorgrad.Gradient) Gradient {
	samples := g.Colors(gradientSteps)
	colors := make([]color.RGBA, len(samples))
	for i, c := range samples {
		colors[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return Gradient{colors: colors}
}

var (
	// Sequential maps magnitudes such as speed and fill.
	Sequential = NewGradient(colorgrad.Viridis())
	// Diverging maps signed values such as curl, zero in the middle.
	Diverging = NewGradient(colorgrad.RdBu())
)

// At returns the colour at t, clamped to [0, 1]. NaN maps to the low end.
func (g Gradient) At(t float64) color.RGBA {
	if len(g.colors) == 0 {
		return color.RGBA{}
	}
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return g.colors[int(t*float64(len(g.colors)-1)+0.5)]
}
