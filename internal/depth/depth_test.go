package depth

import (
	"math"
	"testing"

	"avatarforge/internal/heuristics"
	"avatarforge/internal/imaging"
)

func TestTransparentPixelsPinToMinimum(t *testing.T) {
	img := imaging.SolidFill(32, 32, 255, 0, 0, 0)
	f := Synthesize(img, 16, 1.0)

	for i, v := range f.Values {
		if v != heuristics.DepthMin {
			t.Fatalf("transparent cell %d depth = %f, want %f", i, v, heuristics.DepthMin)
		}
	}
}

func TestBrightSaturatedFaceZoneHitsUpperClamp(t *testing.T) {
	// Pure red: brightness 1.0, saturation 1.0. In the face zone the sum
	// exceeds the clamp, so depth lands exactly on the maximum.
	img := imaging.SolidFill(32, 32, 255, 0, 0, 255)
	f := Synthesize(img, 16, 1.0)

	if v := f.At(8, 0); v != heuristics.DepthMax {
		t.Fatalf("face-zone depth = %f, want %f", v, heuristics.DepthMax)
	}
}

func TestGrayZoneContributions(t *testing.T) {
	img := imaging.SolidFill(64, 64, 128, 128, 128, 255)
	f := Synthesize(img, 64, 1.0)

	// Face zone: base + face bonus
	if v := f.At(0, 0); math.Abs(v-0.4) > 1e-9 {
		t.Fatalf("face-zone depth = %f, want 0.4", v)
	}
	// Torso band, off-center: base + torso bonus
	y := 78 * (f.Resolution - 1) / 100
	if v := f.At(0, y); math.Abs(v-0.25) > 1e-9 {
		t.Fatalf("torso depth = %f, want 0.25", v)
	}
	// Torso band, central: + chest bonus
	if v := f.At(31, y); math.Abs(v-0.35) > 1e-9 {
		t.Fatalf("chest depth = %f, want 0.35", v)
	}
	// Below the torso band: base only
	if v := f.At(0, 62); math.Abs(v-0.1) > 1e-9 {
		t.Fatalf("lower depth = %f, want 0.1", v)
	}
}

func TestMultiplierClampsLow(t *testing.T) {
	img := imaging.SolidFill(32, 32, 128, 128, 128, 255)
	f := Synthesize(img, 8, 0.01)

	for i, v := range f.Values {
		if v != heuristics.DepthMin {
			t.Fatalf("cell %d depth = %f, want lower clamp %f", i, v, heuristics.DepthMin)
		}
	}
}

func TestFieldResolution(t *testing.T) {
	img := imaging.SolidFill(32, 32, 128, 128, 128, 255)
	f := Synthesize(img, 24, 1.0)
	if f.Resolution != 24 || len(f.Values) != 24*24 {
		t.Fatalf("field %d with %d values", f.Resolution, len(f.Values))
	}
}

func TestEyeSocketBonus(t *testing.T) {
	// Dark pixels above the eye line get the socket recess bonus on top of
	// the face-zone bonus.
	img := imaging.SolidFill(64, 64, 20, 20, 20, 255)
	f := Synthesize(img, 64, 1.0)

	if v := f.At(0, 0); math.Abs(v-0.55) > 1e-9 {
		t.Fatalf("dark face depth = %f, want 0.55", v)
	}
	// Below the eye zone the socket bonus disappears
	y := (f.Resolution - 1) / 2
	if v := f.At(0, y); math.Abs(v-0.4) > 1e-9 {
		t.Fatalf("dark cheek depth = %f, want 0.4", v)
	}
}
