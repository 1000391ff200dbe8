package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// ToWorkingResolution resamples the image to a square size×size raster with
// premultiplied-alpha-aware CatmullRom filtering. Premultiplying first
// prevents dark halo artifacts at transparent edges. An image already at
// the target size is returned unchanged.
func ToWorkingResolution(r *RasterImage, size int) *RasterImage {
	if r.Width == size && r.Height == size {
		return r
	}

	// Premultiply alpha
	premul := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i := 0; i < len(r.Pix); i += 4 {
		a := float64(r.Pix[i+3]) / 255.0
		premul.Pix[i] = uint8(float64(r.Pix[i])*a + 0.5)
		premul.Pix[i+1] = uint8(float64(r.Pix[i+1])*a + 0.5)
		premul.Pix[i+2] = uint8(float64(r.Pix[i+2])*a + 0.5)
		premul.Pix[i+3] = r.Pix[i+3]
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply alpha
	out := &RasterImage{Width: size, Height: size, Pix: make([]uint8, size*size*4)}
	for i := 0; i < len(out.Pix); i += 4 {
		a := float64(dst.Pix[i+3])
		if a > 1 {
			inv := 255.0 / a
			out.Pix[i] = clamp8(float64(dst.Pix[i]) * inv)
			out.Pix[i+1] = clamp8(float64(dst.Pix[i+1]) * inv)
			out.Pix[i+2] = clamp8(float64(dst.Pix[i+2]) * inv)
		}
		out.Pix[i+3] = dst.Pix[i+3]
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
