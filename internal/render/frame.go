package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"mad-lbm/pkg/lbm"
)

// Frame composes lattice state into an RGBA image with y pointing up.
type Frame struct {
	img *image.RGBA
	w   int
	h   int
}

// NewFrame allocates a frame for a w x h lattice.
func NewFrame(w, h int) *Frame {
	return &Frame{img: image.NewRGBA(image.Rect(0, 0, w, h)), w: w, h: h}
}

// Image returns the backing image. It is overwritten by the next Paint.
func (fr *Frame) Image() *image.RGBA { return fr.img }

// Paint renders field f. cells and palette come from the sim display buffer
// and colour every cell in FieldPhase, and the non-liquid cells otherwise.
func (fr *Frame) Paint(l *lbm.Lattice, f Field, cells []uint8, palette []color.RGBA) {
	if l.Width() != fr.w || l.Height() != fr.h || len(cells) < fr.w*fr.h {
		return
	}
	pix := fr.img.Pix
	stride := fr.img.Stride
	for y := 0; y < fr.h; y++ {
		row := pix[(fr.h-1-y)*stride:]
		fillPaletteRGBA(row, cells[y*fr.w:(y+1)*fr.w], palette)
	}
	m := Scalar(l, f)
	if m == nil {
		return
	}
	lo, hi := Range(m, f)
	grad := Sequential
	if f == FieldCurl {
		grad = Diverging
	}
	phases := l.Phases()
	for y := 0; y < fr.h; y++ {
		r := fr.h - 1 - y
		row := pix[r*stride:]
		for x := 0; x < fr.w; x++ {
			if !phases[y*fr.w+x].Liquid() {
				continue
			}
			putRGBA(row, x, grad.At(normalize(m.At(r, x), lo, hi)))
		}
	}
}

// Scaled returns the frame enlarged by an integer factor with nearest
// neighbour sampling. A factor of 1 returns the backing image.
func (fr *Frame) Scaled(scale int) *image.RGBA {
	if scale <= 1 {
		return fr.img
	}
	dst := image.NewRGBA(image.Rect(0, 0, fr.w*scale, fr.h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), fr.img, fr.img.Bounds(), draw.Src, nil)
	return dst
}
