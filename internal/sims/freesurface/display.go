package freesurface

import (
	"image/color"

	"mad-lbm/pkg/lbm"
)

const (
	displayPhaseMask = 0x07
	displayFillShift = 3
	displayFillMask  = 0x38
	displayFillSteps = 8
	displayEntries   = 64
)

var freesurfacePalette = buildPalette()

// Palette exposes the color palette used for rendering the display buffer.
func (s *Sim) Palette() []color.RGBA {
	return freesurfacePalette
}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, displayEntries)
	for i := range palette {
		phase := lbm.Phase(i & displayPhaseMask)
		level := (i & displayFillMask) >> displayFillShift
		palette[i] = toRGBA(paletteColorFor(phase, float64(level)/float64(displayFillSteps-1)))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

var (
	barrierColor = color.NRGBA{R: 90, G: 90, B: 96, A: 255}
	gasColor     = color.NRGBA{R: 18, G: 20, B: 28, A: 255}
	fluidColor   = color.NRGBA{R: 40, G: 110, B: 200, A: 255}
	sourceColor  = color.NRGBA{R: 60, G: 190, B: 170, A: 255}
)

func paletteColorFor(phase lbm.Phase, fill float64) color.NRGBA {
	switch phase {
	case lbm.PhaseBarrier:
		return barrierColor
	case lbm.PhaseFluid:
		return fluidColor
	case lbm.PhaseSource:
		return sourceColor
	case lbm.PhaseInterface:
		// Surface cells shade from gas to fluid with their fill fraction.
		return blendColors(gasColor, fluidColor, 0.25+0.75*fill)
	default:
		return gasColor
	}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	inv := 1 - overlayWeight
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*inv + float64(b)*overlayWeight + 0.5)
	}
	return color.NRGBA{
		R: mix(base.R, overlay.R),
		G: mix(base.G, overlay.G),
		B: mix(base.B, overlay.B),
		A: mix(base.A, overlay.A),
	}
}

func encodeDisplayValue(phase lbm.Phase, fill float64) uint8 {
	value := uint8(phase) & displayPhaseMask
	if phase == lbm.PhaseInterface {
		level := int(fill*float64(displayFillSteps-1) + 0.5)
		level = max(0, min(level, displayFillSteps-1))
		value |= uint8(level<<displayFillShift) & displayFillMask
	}
	return value
}

func (s *Sim) rebuildDisplay() {
	phases := s.lattice.Phases()
	fill := s.lattice.Fill()
	for i := range s.display {
		s.display[i] = encodeDisplayValue(phases[i], fill[i])
	}
}
