package pose

import (
	"avatarforge/internal/imaging"
)

// Guide overlay appearance. The zones are alpha-blended over the portrait
// at the canonical arm positions so depth synthesis reads a symmetric
// silhouette.
const (
	guideR     = 40
	guideG     = 200
	guideB     = 120
	guideAlpha = 90

	// guideHalfHeight is the vertical half-extent of each arm guide bar,
	// as a fraction of image height.
	guideHalfHeight = 0.03
)

// Normalize composites canonical-pose guide zones over a copy of the
// image: one horizontal bar per side at shoulder height, reaching from the
// shoulder to the image edge. The transform is deterministic; the same
// estimate always yields the same corrected image.
func Normalize(img *imaging.RasterImage, est Estimate) *imaging.RasterImage {
	out := img.Clone()
	blendArmGuide(out, est.Left, true)
	blendArmGuide(out, est.Right, false)
	return out
}

func blendArmGuide(img *imaging.RasterImage, arm Arm, left bool) {
	cy := int(arm.Shoulder.Y * float64(img.Height))
	half := int(guideHalfHeight * float64(img.Height))
	if half < 1 {
		half = 1
	}

	x0 := 0
	x1 := int(arm.Shoulder.X * float64(img.Width))
	if !left {
		x0 = x1
		x1 = img.Width
	}

	for y := cy - half; y <= cy+half; y++ {
		if y < 0 || y >= img.Height {
			continue
		}
		for x := x0; x < x1; x++ {
			blendPixel(img, x, y)
		}
	}
}

func blendPixel(img *imaging.RasterImage, x, y int) {
	i := (y*img.Width + x) * 4
	a := float64(guideAlpha) / 255.0
	img.Pix[i] = mix(img.Pix[i], guideR, a)
	img.Pix[i+1] = mix(img.Pix[i+1], guideG, a)
	img.Pix[i+2] = mix(img.Pix[i+2], guideB, a)
	if img.Pix[i+3] < guideAlpha {
		img.Pix[i+3] = guideAlpha
	}
}

func mix(dst, src uint8, a float64) uint8 {
	return uint8(float64(dst)*(1-a) + float64(src)*a + 0.5)
}
