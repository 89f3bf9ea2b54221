//go:build ebiten

package render

import (
	"image/color"

	"mad-lbm/pkg/lbm"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads composed frames to an ebiten image and scales them onto
// the screen.
type GridPainter struct {
	frame *Frame
	img   *ebiten.Image
}

// NewGridPainter allocates a painter for a w x h lattice.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		frame: NewFrame(w, h),
		img:   ebiten.NewImage(w, h),
	}
}

// Blit paints field f of l at the given integer scale.
func (p *GridPainter) Blit(screen *ebiten.Image, l *lbm.Lattice, f Field, cells []uint8, palette []color.RGBA, scale int) {
	if scale <= 0 {
		scale = 1
	}
	p.frame.Paint(l, f, cells, palette)
	p.img.WritePixels(p.frame.Image().Pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
