// Package depth lifts a flat portrait into a per-cell protrusion field
// using additive zone and color heuristics. This is a deterministic,
// explainable substitute for a trained depth model, on purpose.
package depth

import (
	"avatarforge/internal/heuristics"
	"avatarforge/internal/imaging"
)

// Field is a square grid of depth scalars in [DepthMin, DepthMax],
// row-major, one value per mesh grid cell.
type Field struct {
	Resolution int
	Values     []float64
}

// At returns the depth at grid cell (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Resolution+x]
}

// Synthesize samples the source image nearest-neighbor on normalized grid
// coordinates and sums the named contributions for each cell. Transparent
// samples are pinned to the minimum depth regardless of any other signal.
func Synthesize(img *imaging.RasterImage, resolution int, multiplier float64) *Field {
	f := &Field{
		Resolution: resolution,
		Values:     make([]float64, resolution*resolution),
	}

	for gy := 0; gy < resolution; gy++ {
		ny := cellCoord(gy, resolution)
		sy := nearestSample(ny, img.Height)
		for gx := 0; gx < resolution; gx++ {
			nx := cellCoord(gx, resolution)
			sx := nearestSample(nx, img.Width)

			r, g, b, a := img.At(sx, sy)
			f.Values[gy*resolution+gx] = cellDepth(r, g, b, a, nx, ny, multiplier)
		}
	}
	return f
}

// cellDepth is the per-sample heuristic. Each contribution is named in
// heuristics so tests can hit exact boundaries.
func cellDepth(r, g, b, a uint8, nx, ny, multiplier float64) float64 {
	if a < heuristics.TransparentAlpha {
		return heuristics.DepthMin
	}

	brightness, saturation := valueSat(r, g, b)

	d := heuristics.DepthBase
	if ny < heuristics.FaceZoneBottom {
		d += heuristics.DepthFaceZone
	}
	if ny < heuristics.EyeZoneBottom && brightness < heuristics.DarknessCeiling {
		d += heuristics.DepthEyeSocket
	}
	if ny > heuristics.LipBandTop && ny < heuristics.LipBandBottom && redDominant(r, g, b) {
		d += heuristics.DepthLip
	}
	if ny > heuristics.TorsoBandTop && ny < heuristics.TorsoBandBottom {
		d += heuristics.DepthTorso
		if nx > 0.5-heuristics.ChestHalfWidth && nx < 0.5+heuristics.ChestHalfWidth {
			d += heuristics.DepthChest
		}
	}
	if brightness > heuristics.DepthBrightLevel {
		d += heuristics.DepthBright
	}
	if saturation > heuristics.DepthSaturationLevel {
		d += heuristics.DepthSaturation
	}

	return heuristics.Clamp(d*multiplier, heuristics.DepthMin, heuristics.DepthMax)
}

func redDominant(r, g, b uint8) bool {
	return int(r) > int(g)+heuristics.RedDominanceMargin && int(r) > int(b)+heuristics.RedDominanceMargin
}

func valueSat(r, g, b uint8) (float64, float64) {
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
	if maxC == 0 {
		return 0, 0
	}
	return float64(maxC) / 255.0, float64(maxC-minC) / float64(maxC)
}

// cellCoord maps a grid index to normalized [0,1] coordinates.
func cellCoord(i, resolution int) float64 {
	if resolution <= 1 {
		return 0
	}
	return float64(i) / float64(resolution-1)
}

// nearestSample maps a normalized coordinate to the closest source pixel.
func nearestSample(n float64, extent int) int {
	s := int(n*float64(extent-1) + 0.5)
	if s < 0 {
		s = 0
	}
	if s >= extent {
		s = extent - 1
	}
	return s
}
