// Package analysis extracts per-pixel signals from a portrait: dominant
// color clusters, bright/dark point sets, and an edge map. Its output is
// the shared input of feature classification and pose detection.
package analysis

import (
	"image"

	"avatarforge/internal/heuristics"
	"avatarforge/internal/imaging"
)

// Result is the full signal bundle for one image. It keeps a reference to
// the source raster so downstream stages can sample original colors
// without re-decoding.
type Result struct {
	Source *imaging.RasterImage
	Width  int
	Height int

	// Brightness and Saturation are HSV value and saturation per pixel,
	// both in [0,1], row-major.
	Brightness []float64
	Saturation []float64

	Clusters     []ColorCluster
	BrightPoints []image.Point
	DarkPoints   []image.Point

	// Edges is gradient magnitude per pixel normalized to [0,1]. All zeros
	// on a uniform image.
	Edges []float64
}

// Analyze computes every signal over the working-resolution image. It has
// no failure mode: pathological inputs (uniform, fully transparent) yield
// empty point sets and a zero edge map.
func Analyze(img *imaging.RasterImage) *Result {
	w, h := img.Width, img.Height
	res := &Result{
		Source:     img,
		Width:      w,
		Height:     h,
		Brightness: make([]float64, w*h),
		Saturation: make([]float64, w*h),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(x, y)
			v, s := hsvValueSat(r, g, b)
			i := y*w + x
			res.Brightness[i] = v
			res.Saturation[i] = s
			if a == 0 {
				continue
			}
			if v > heuristics.BrightnessFloor {
				res.BrightPoints = append(res.BrightPoints, image.Point{X: x, Y: y})
			} else if v < heuristics.DarknessCeiling {
				res.DarkPoints = append(res.DarkPoints, image.Point{X: x, Y: y})
			}
		}
	}

	res.Clusters = clusterColors(img)
	res.Edges = edgeMap(res.Brightness, w, h)
	return res
}

// BrightnessAt returns the brightness sample at (x, y), zero outside the
// image.
func (r *Result) BrightnessAt(x, y int) float64 {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0
	}
	return r.Brightness[y*r.Width+x]
}

// hsvValueSat converts an RGB sample to HSV value and saturation.
func hsvValueSat(r, g, b uint8) (float64, float64) {
	maxC := r
	if g > maxC {
		maxC = g
	}
	if b > maxC {
		maxC = b
	}
	minC := r
	if g < minC {
		minC = g
	}
	if b < minC {
		minC = b
	}
	v := float64(maxC) / 255.0
	if maxC == 0 {
		return 0, 0
	}
	return v, float64(maxC-minC) / float64(maxC)
}
