// Package heuristics collects every tuned threshold the pipeline uses in
// one place, so tests can target exact boundaries instead of chasing magic
// numbers through the stages.
package heuristics

// Working resolution all analysis runs at. Uploads are resampled to this
// square size before any stage sees them.
const WorkingResolution = 256

// Color clustering (dominant-color extraction).
const (
	// ClusterTolerance is the maximum RGB-space distance (0–255 scale) for
	// a pixel to join an existing cluster.
	ClusterTolerance = 35.0

	// MaxColorClusters caps how many clusters are kept, ordered by frequency.
	MaxColorClusters = 8

	// ClusterSampleStep subsamples pixels during clustering. 2 means every
	// other pixel in both axes.
	ClusterSampleStep = 2
)

// Brightness point sets. Fractions of the full 0–255 scale.
const (
	DarknessCeiling = 0.20
	BrightnessFloor = 0.80
)

// Region bands, as fractions of image height. Head is the top of the
// image; body overlaps the mouth band on purpose (clothing starts at the
// shoulders).
const (
	HeadBandBottom  = 0.40
	EyeBandTop      = 0.15
	EyeBandBottom   = 0.30
	MouthBandTop    = 0.30
	MouthBandBottom = 0.50
	BodyBandTop     = 0.40
)

// Feature-classification coverage thresholds. Each is the fractional
// coverage of the target color/brightness range within its region band at
// which the feature is considered present.
const (
	HeadwearDarkCoverage   = 0.30
	EyewearDarkCoverage    = 0.25
	LaserEyeRedCoverage    = 0.15
	GrillBrightCoverage    = 0.12
	FangBrightCoverage     = 0.10
	ClothingDarkCoverage   = 0.30
	MulticolorClusterCount = 4
)

// Character-type vote. Five boolean flags (hat, sunglasses, grill/fangs,
// clothing, multicolor fur) each contribute one vote.
const NFTVoteThreshold = 3

// Pose asymmetry.
const (
	// AsymmetryThreshold is the ratio above which the pose is rewritten
	// toward the canonical reference before depth synthesis.
	AsymmetryThreshold = 0.3

	// MinLandmarkPixels is the smallest opaque-pixel population for which
	// landmark estimation is attempted. Below it the detector reports zero
	// confidence and the pipeline passes the image through untouched.
	MinLandmarkPixels = 64
)

// Depth synthesis. Contributions are summed, scaled by the configured
// multiplier, and clamped to [DepthMin, DepthMax].
const (
	DepthMin = 0.02
	DepthMax = 0.8

	DepthBase       = 0.10 // any visible pixel
	DepthFaceZone   = 0.30 // y < FaceZoneBottom
	DepthEyeSocket  = 0.15 // dark pixel above EyeZoneBottom
	DepthLip        = 0.20 // red-dominant pixel in the lip band
	DepthTorso      = 0.15 // TorsoBandTop <= y < TorsoBandBottom
	DepthChest      = 0.10 // torso band, central x
	DepthBright     = 0.20 // brightness > DepthBrightLevel
	DepthSaturation = 0.25 // saturation > DepthSaturationLevel

	FaceZoneBottom  = 0.60
	EyeZoneBottom   = 0.40
	LipBandTop      = 0.40
	LipBandBottom   = 0.60
	TorsoBandTop    = 0.60
	TorsoBandBottom = 0.85
	ChestHalfWidth  = 0.20 // |nx - 0.5| below this counts as central

	DepthBrightLevel     = 0.80
	DepthSaturationLevel = 0.60

	// TransparentAlpha: pixels below 50% alpha are forced to DepthMin.
	TransparentAlpha = 128

	// RedDominanceMargin: R must exceed both G and B by this many levels
	// for the lip-protrusion bonus.
	RedDominanceMargin = 40
)

// Missing-part detection. Brightness statistics are computed on the 0–255
// scale over a limb sampling window; a window is "empty" (part missing)
// when its variance is below MissingPartVariance and its mean sits within
// MissingPartMeanDelta of the background estimate.
const (
	MissingPartVariance  = 80.0
	MissingPartMeanDelta = 12.0
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
