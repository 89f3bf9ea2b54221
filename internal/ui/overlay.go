//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"mad-lbm/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws velocity arrows on top of the base view.
type Overlay struct {
	sim        core.Sim
	scale      int
	showArrows bool

	pixel      *ebiten.Image
	samples    []arrowSample
	sampleSpan float64
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	o.samples, o.sampleSpan = arrowGrid(sim.Size(), scale)
	return o
}

// Update toggles the arrows with V.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		o.showArrows = !o.showArrows
	}
}

// Draw renders the overlay onto the provided screen. The caller must hold the
// lock guarding the sim.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showArrows {
		return
	}
	field, ok := o.sim.(VelocityField)
	if !ok {
		return
	}
	const (
		calmThreshold = 0.002
		maxSpeed      = 0.15
		headAngle     = math.Pi / 6
	)
	scale := float64(max(o.scale, 1))
	minLength := o.sampleSpan * 0.35
	maxLength := o.sampleSpan * 0.7
	dot := math.Max(o.sampleSpan*0.15, scale*0.75)

	for _, s := range o.samples {
		ux, uy, ok := field.Velocity(s.x, s.y)
		if !ok {
			continue
		}
		speed := math.Hypot(ux, uy)
		if speed < calmThreshold {
			o.drawPoint(screen, s.sx, s.sy, dot, color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}
		// Screen rows grow downwards.
		nx, ny := ux/speed, -uy/speed
		normalized := clamp01(speed / maxSpeed)
		length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
		headLength := math.Min(length*0.3, scale*4.5)
		tail := length * 0.4
		tipX, tipY := s.sx+nx*(length-tail), s.sy+ny*(length-tail)
		tailX, tailY := s.sx-nx*tail, s.sy-ny*tail
		thickness := math.Max(scale*(0.5+0.5*normalized), 1)

		col := arrowColor(normalized)
		o.drawLine(screen, tailX, tailY, tipX-nx*headLength, tipY-ny*headLength, thickness, col)
		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, thickness*0.85, col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func arrowColor(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(math.Round(220 + 35*t)),
		G: uint8(math.Round(220 - 120*t)),
		B: uint8(math.Round(230 - 170*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}
