// Package pose estimates left/right arm landmarks from brightness
// heuristics, scores pose asymmetry, and rewrites asymmetric portraits
// toward the canonical reference pose.
package pose

import (
	"math"

	"avatarforge/internal/analysis"
	"avatarforge/internal/heuristics"
)

// Landmark is a point in normalized image coordinates ([0,1] both axes,
// y down).
type Landmark struct {
	X float64
	Y float64
}

// Arm holds one side's landmarks and its angle from horizontal in
// [0,180] degrees, measured outward from the shoulder.
type Arm struct {
	Shoulder Landmark
	Elbow    Landmark
	Wrist    Landmark
	Angle    float64
}

// Estimate is the asymmetry verdict for one portrait. Built once per
// image; AsymmetryRatio is 0 for a perfectly mirrored pose.
type Estimate struct {
	Left  Arm
	Right Arm

	AsymmetryRatio        float64
	RequiresNormalization bool

	// Confidence is 0 when landmark estimation found no usable subject, in
	// which case the estimate is a pass-through default.
	Confidence float64
}

// Detect estimates arm landmarks from the opaque-pixel silhouette. When
// the silhouette is too small to place landmarks it returns a
// zero-confidence pass-through estimate instead of failing.
func Detect(res *analysis.Result) Estimate {
	minX, minY, maxX, maxY, count := silhouetteBounds(res)
	if count < heuristics.MinLandmarkPixels {
		return Estimate{}
	}

	w := float64(maxX - minX + 1)
	h := float64(maxY - minY + 1)
	cx := (float64(minX) + float64(maxX)) / 2.0

	// Shoulders sit at fixed fractions of the silhouette box.
	shoulderY := float64(minY) + 0.30*h
	leftShoulder := Landmark{X: (cx - 0.20*w) / float64(res.Width), Y: shoulderY / float64(res.Height)}
	rightShoulder := Landmark{X: (cx + 0.20*w) / float64(res.Width), Y: shoulderY / float64(res.Height)}

	// Wrists are the outermost opaque pixels in the arm band.
	bandTop := int(shoulderY)
	bandBottom := int(shoulderY + 0.40*h)
	leftWrist, lok := extremePoint(res, bandTop, bandBottom, true)
	rightWrist, rok := extremePoint(res, bandTop, bandBottom, false)
	if !lok || !rok {
		return Estimate{}
	}

	left := buildArm(leftShoulder, leftWrist)
	right := buildArm(rightShoulder, rightWrist)

	ratio := AsymmetryFromAngles(left.Angle, right.Angle)
	return Estimate{
		Left:                  left,
		Right:                 right,
		AsymmetryRatio:        ratio,
		RequiresNormalization: ratio > heuristics.AsymmetryThreshold,
		Confidence:            heuristics.Clamp(float64(count)/float64(res.Width*res.Height)*4.0, 0.1, 1.0),
	}
}

// ArmAngle returns an arm's angle from horizontal in [0,180] degrees.
// Δx is taken outward from the shoulder so mirrored arms measure equal,
// and the angle is atan2(-Δy, Δx) folded into [0,180].
func ArmAngle(shoulder, wrist Landmark) float64 {
	dx := math.Abs(wrist.X - shoulder.X)
	dy := wrist.Y - shoulder.Y
	deg := math.Atan2(-dy, dx) * 180.0 / math.Pi
	if deg < 0 {
		deg += 360
	}
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}

// AsymmetryFromAngles is the normalized left/right angle difference.
func AsymmetryFromAngles(leftAngle, rightAngle float64) float64 {
	return math.Abs(leftAngle-rightAngle) / 180.0
}

func buildArm(shoulder, wrist Landmark) Arm {
	return Arm{
		Shoulder: shoulder,
		Elbow:    Landmark{X: (shoulder.X + wrist.X) / 2, Y: (shoulder.Y + wrist.Y) / 2},
		Wrist:    wrist,
		Angle:    ArmAngle(shoulder, wrist),
	}
}

func silhouetteBounds(res *analysis.Result) (minX, minY, maxX, maxY, count int) {
	minX, minY = res.Width, res.Height
	maxX, maxY = -1, -1
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			_, _, _, a := res.Source.At(x, y)
			if a < heuristics.TransparentAlpha {
				continue
			}
			count++
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	return
}

// extremePoint finds the outermost opaque pixel in the arm band: the
// smallest x for the left side, the largest for the right.
func extremePoint(res *analysis.Result, yTop, yBottom int, left bool) (Landmark, bool) {
	bestX := -1
	bestY := 0
	if yBottom > res.Height {
		yBottom = res.Height
	}
	for y := yTop; y < yBottom; y++ {
		for x := 0; x < res.Width; x++ {
			_, _, _, a := res.Source.At(x, y)
			if a < heuristics.TransparentAlpha {
				continue
			}
			if bestX < 0 || (left && x < bestX) || (!left && x > bestX) {
				bestX = x
				bestY = y
			}
		}
	}
	if bestX < 0 {
		return Landmark{}, false
	}
	return Landmark{X: float64(bestX) / float64(res.Width), Y: float64(bestY) / float64(res.Height)}, true
}
