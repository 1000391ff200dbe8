package analysis

import "math"

// Sobel kernel pair (horizontal / vertical).
var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// edgeMap computes gradient magnitude per pixel, normalized so the
// strongest edge is 1.0. A uniform image yields all zeros; normalization
// is skipped when there is nothing to normalize.
func edgeMap(brightness []float64, w, h int) []float64 {
	edges := make([]float64, w*h)
	maxMag := 0.0

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := brightness[(y+ky)*w+(x+kx)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			mag := math.Sqrt(gx*gx + gy*gy)
			edges[y*w+x] = mag
			if mag > maxMag {
				maxMag = mag
			}
		}
	}

	if maxMag > 0 {
		for i := range edges {
			edges[i] /= maxMag
		}
	}
	return edges
}
