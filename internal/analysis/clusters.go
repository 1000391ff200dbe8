package analysis

import (
	"sort"

	"avatarforge/internal/heuristics"
	"avatarforge/internal/imaging"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorCluster is one dominant-color bucket: its running-average color and
// how many sampled pixels fell into it.
type ColorCluster struct {
	R, G, B uint8
	Count   int
}

// Color returns the cluster center as a colorful.Color.
func (c ColorCluster) Color() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

type runningCluster struct {
	sumR, sumG, sumB float64
	count            int
}

func (rc *runningCluster) center() colorful.Color {
	n := float64(rc.count)
	return colorful.Color{R: rc.sumR / n / 255.0, G: rc.sumG / n / 255.0, B: rc.sumB / n / 255.0}
}

// clusterColors groups opaque sampled pixels into color buckets using RGB
// distance with a fixed tolerance, keeping the most frequent buckets.
func clusterColors(img *imaging.RasterImage) []ColorCluster {
	var clusters []*runningCluster

	step := heuristics.ClusterSampleStep
	for y := 0; y < img.Height; y += step {
		for x := 0; x < img.Width; x += step {
			r, g, b, a := img.At(x, y)
			if a == 0 {
				continue
			}
			px := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}

			matched := false
			for _, rc := range clusters {
				// DistanceRgb works on unit components; scale back to levels
				// so the tolerance reads in 0-255 units.
				if px.DistanceRgb(rc.center())*255.0 <= heuristics.ClusterTolerance {
					rc.sumR += float64(r)
					rc.sumG += float64(g)
					rc.sumB += float64(b)
					rc.count++
					matched = true
					break
				}
			}
			if !matched {
				clusters = append(clusters, &runningCluster{
					sumR: float64(r), sumG: float64(g), sumB: float64(b), count: 1,
				})
			}
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].count > clusters[j].count
	})
	if len(clusters) > heuristics.MaxColorClusters {
		clusters = clusters[:heuristics.MaxColorClusters]
	}

	out := make([]ColorCluster, len(clusters))
	for i, rc := range clusters {
		n := float64(rc.count)
		out[i] = ColorCluster{
			R:     uint8(rc.sumR/n + 0.5),
			G:     uint8(rc.sumG/n + 0.5),
			B:     uint8(rc.sumB/n + 0.5),
			Count: rc.count,
		}
	}
	return out
}
