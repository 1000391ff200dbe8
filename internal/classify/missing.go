package classify

import (
	"avatarforge/internal/analysis"
	"avatarforge/internal/heuristics"

	"gonum.org/v1/gonum/stat"
)

// limbWindow is a normalized sampling rectangle for one body part.
type limbWindow struct {
	x0, x1, y0, y1 float64
}

// Limb sampling windows in normalized image coordinates. Arm/hand windows
// hug the image sides where outstretched limbs land; legs and torso are
// central.
var (
	leftArmWindow   = limbWindow{0.00, 0.15, 0.45, 0.80}
	rightArmWindow  = limbWindow{0.85, 1.00, 0.45, 0.80}
	leftHandWindow  = limbWindow{0.00, 0.15, 0.70, 0.85}
	rightHandWindow = limbWindow{0.85, 1.00, 0.70, 0.85}
	legsWindow      = limbWindow{0.25, 0.75, 0.85, 1.00}
	torsoWindow     = limbWindow{0.35, 0.65, 0.50, 0.85}
)

// detectMissingParts flags body parts whose sampling window is
// statistically empty: low brightness variance and a mean close to the
// background estimate. This is a coarse variance check; its thresholds are
// pinned in heuristics and its false-positive behavior on low-contrast art
// is accepted as-is.
func detectMissingParts(res *analysis.Result) MissingParts {
	bg := backgroundMean(res)
	return MissingParts{
		Arms:  windowEmpty(res, leftArmWindow, bg) && windowEmpty(res, rightArmWindow, bg),
		Hands: windowEmpty(res, leftHandWindow, bg) && windowEmpty(res, rightHandWindow, bg),
		Legs:  windowEmpty(res, legsWindow, bg),
		Torso: windowEmpty(res, torsoWindow, bg),
	}
}

// windowEmpty samples window brightness on the 0-255 scale and applies the
// variance + mean-delta test. Fully transparent windows are trivially
// empty.
func windowEmpty(res *analysis.Result, w limbWindow, bg float64) bool {
	samples := windowSamples(res, w)
	if len(samples) == 0 {
		return true
	}
	// stat.Variance needs two samples; a lone pixel has nothing to vary.
	var variance float64
	if len(samples) > 1 {
		variance = stat.Variance(samples, nil)
	}
	mean := stat.Mean(samples, nil)
	delta := mean - bg
	if delta < 0 {
		delta = -delta
	}
	return variance < heuristics.MissingPartVariance && delta < heuristics.MissingPartMeanDelta
}

func windowSamples(res *analysis.Result, w limbWindow) []float64 {
	x0 := int(w.x0 * float64(res.Width))
	x1 := int(w.x1 * float64(res.Width))
	y0 := int(w.y0 * float64(res.Height))
	y1 := int(w.y1 * float64(res.Height))

	var samples []float64
	for y := y0; y < y1 && y < res.Height; y++ {
		for x := x0; x < x1 && x < res.Width; x++ {
			_, _, _, a := res.Source.At(x, y)
			if a == 0 {
				continue
			}
			samples = append(samples, res.Brightness[y*res.Width+x]*255.0)
		}
	}
	return samples
}

// backgroundMean estimates the backdrop brightness from the four 8x8
// corner patches.
func backgroundMean(res *analysis.Result) float64 {
	const patch = 8
	var samples []float64
	corners := [][2]int{{0, 0}, {res.Width - patch, 0}, {0, res.Height - patch}, {res.Width - patch, res.Height - patch}}
	for _, c := range corners {
		for dy := 0; dy < patch; dy++ {
			for dx := 0; dx < patch; dx++ {
				x, y := c[0]+dx, c[1]+dy
				if x < 0 || y < 0 || x >= res.Width || y >= res.Height {
					continue
				}
				samples = append(samples, res.Brightness[y*res.Width+x]*255.0)
			}
		}
	}
	if len(samples) == 0 {
		return 0
	}
	return stat.Mean(samples, nil)
}
