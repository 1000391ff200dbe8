// Package imaging holds the immutable raster type the pipeline operates on
// and the decode/resample helpers that produce it from uploaded files.
package imaging

import (
	"fmt"
	"image"
)

// RasterImage is a width×height buffer of non-premultiplied RGBA samples,
// 4 bytes per pixel. Instances are immutable once built; transforms return
// new images.
type RasterImage struct {
	Width  int
	Height int
	Pix    []uint8
}

// FromNRGBA copies an NRGBA image into a RasterImage.
func FromNRGBA(src *image.NRGBA) *RasterImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &RasterImage{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
	for y := 0; y < h; y++ {
		srcOff := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out.Pix[y*w*4:(y+1)*w*4], src.Pix[srcOff:srcOff+w*4])
	}
	return out
}

// ToNRGBA copies the raster into a stdlib NRGBA image.
func (r *RasterImage) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	return img
}

// At returns the RGBA sample at (x, y). Coordinates outside the image
// return a fully transparent black sample.
func (r *RasterImage) At(x, y int) (uint8, uint8, uint8, uint8) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0, 0, 0, 0
	}
	i := (y*r.Width + x) * 4
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3]
}

// Clone returns a deep copy, used where a stage needs to composite over
// the source without touching it.
func (r *RasterImage) Clone() *RasterImage {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &RasterImage{Width: r.Width, Height: r.Height, Pix: pix}
}

// Validate rejects images the pipeline cannot work with. This is the only
// hard failure in the core: everything downstream degrades instead.
func (r *RasterImage) Validate() error {
	if r == nil {
		return fmt.Errorf("imaging: nil image")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("imaging: zero-size image (%dx%d)", r.Width, r.Height)
	}
	if len(r.Pix) != r.Width*r.Height*4 {
		return fmt.Errorf("imaging: pixel buffer length %d does not match %dx%d", len(r.Pix), r.Width, r.Height)
	}
	return nil
}

// SolidFill builds a uniform image, handy for tests and guide canvases.
func SolidFill(w, h int, cr, cg, cb, ca uint8) *RasterImage {
	out := &RasterImage{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = cr
		out.Pix[i+1] = cg
		out.Pix[i+2] = cb
		out.Pix[i+3] = ca
	}
	return out
}

// MirrorHorizontal returns the image flipped about its vertical axis.
// Used as the deterministic fallback when side-view regeneration fails.
func (r *RasterImage) MirrorHorizontal() *RasterImage {
	out := &RasterImage{Width: r.Width, Height: r.Height, Pix: make([]uint8, len(r.Pix))}
	for y := 0; y < r.Height; y++ {
		row := y * r.Width * 4
		for x := 0; x < r.Width; x++ {
			si := row + x*4
			di := row + (r.Width-1-x)*4
			copy(out.Pix[di:di+4], r.Pix[si:si+4])
		}
	}
	return out
}
