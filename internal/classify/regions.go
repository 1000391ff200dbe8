package classify

import (
	"avatarforge/internal/analysis"
	"avatarforge/internal/heuristics"
)

// regionStats aggregates fractional coverage of the signals the feature
// rules care about, over a horizontal band of the image.
type regionStats struct {
	total int // opaque pixels in the band

	darkCoverage     float64 // brightness < DarknessCeiling
	brightCoverage   float64 // brightness > BrightnessFloor
	metallicCoverage float64 // bright and desaturated
	redCoverage      float64 // red-dominant
	edgeMean         float64

	avgR, avgG, avgB float64
}

// bandStats scans rows [top*h, bottom*h) and returns coverage ratios. An
// empty band (fully transparent) returns the zero value; callers never
// divide by the population themselves.
func bandStats(res *analysis.Result, top, bottom float64) regionStats {
	var s regionStats
	y0 := int(top * float64(res.Height))
	y1 := int(bottom * float64(res.Height))
	if y1 > res.Height {
		y1 = res.Height
	}

	var dark, bright, metallic, red int
	var edgeSum, sumR, sumG, sumB float64

	for y := y0; y < y1; y++ {
		for x := 0; x < res.Width; x++ {
			pr, pg, pb, pa := res.Source.At(x, y)
			if pa == 0 {
				continue
			}
			s.total++
			i := y*res.Width + x
			v := res.Brightness[i]
			sat := res.Saturation[i]
			edgeSum += res.Edges[i]
			sumR += float64(pr)
			sumG += float64(pg)
			sumB += float64(pb)

			if v < heuristics.DarknessCeiling {
				dark++
			}
			if v > heuristics.BrightnessFloor {
				bright++
				if sat < 0.25 {
					metallic++
				}
			}
			if int(pr) > int(pg)+heuristics.RedDominanceMargin && int(pr) > int(pb)+heuristics.RedDominanceMargin {
				red++
			}
		}
	}

	if s.total == 0 {
		return s
	}
	n := float64(s.total)
	s.darkCoverage = float64(dark) / n
	s.brightCoverage = float64(bright) / n
	s.metallicCoverage = float64(metallic) / n
	s.redCoverage = float64(red) / n
	s.edgeMean = edgeSum / n
	s.avgR = sumR / n
	s.avgG = sumG / n
	s.avgB = sumB / n
	return s
}

// confidence maps a coverage ratio to how far it sits from the decision
// threshold, scaled to [0,1]. Exactly at the threshold the classifier is
// maximally unsure and reports 0.
func confidence(coverage, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	d := coverage - threshold
	if d < 0 {
		d = -d
	}
	return heuristics.Clamp(d/threshold, 0, 1)
}
