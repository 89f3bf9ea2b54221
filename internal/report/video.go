package report

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// AVIWriter appends frames to a Motion-JPEG AVI file.
type AVIWriter struct {
	aw     mjpeg.AviWriter
	buf    bytes.Buffer
	opts   jpeg.Options
	w, h   int
	frames int
	closed bool
}

// NewAVIWriter creates path and prepares it for w x h frames at fps.
func NewAVIWriter(path string, w, h, fps, quality int) (*AVIWriter, error) {
	if w <= 0 || h <= 0 || fps <= 0 {
		return nil, fmt.Errorf("avi %s: invalid geometry %dx%d@%d", path, w, h, fps)
	}
	aw, err := mjpeg.New(path, int32(w), int32(h), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("avi %s: %w", path, err)
	}
	return &AVIWriter{aw: aw, opts: jpeg.Options{Quality: quality}, w: w, h: h}, nil
}

// AddFrame encodes img as JPEG and appends it. The image must match the size
// given to NewAVIWriter.
func (v *AVIWriter) AddFrame(img image.Image) error {
	if b := img.Bounds(); b.Dx() != v.w || b.Dy() != v.h {
		return fmt.Errorf("avi frame %dx%d, expected %dx%d", b.Dx(), b.Dy(), v.w, v.h)
	}
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &v.opts); err != nil {
		return fmt.Errorf("encode frame %d: %w", v.frames, err)
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("write frame %d: %w", v.frames, err)
	}
	v.frames++
	return nil
}

// Frames reports how many frames were written.
func (v *AVIWriter) Frames() int { return v.frames }

// Close finalises the AVI index. It is safe to call more than once.
func (v *AVIWriter) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	if err := v.aw.Close(); err != nil {
		return fmt.Errorf("close avi: %w", err)
	}
	return nil
}
