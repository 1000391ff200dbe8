package classify

import (
	"testing"

	"avatarforge/internal/analysis"
	"avatarforge/internal/heuristics"
	"avatarforge/internal/imaging"
)

func analyze(img *imaging.RasterImage) *analysis.Result {
	return analysis.Analyze(img)
}

func TestClassifySolidGrayIsGeneric(t *testing.T) {
	p := Classify(analyze(imaging.SolidFill(64, 64, 128, 128, 128, 255)))

	if p.CharacterType != CharacterGeneric {
		t.Fatalf("character type = %q, want generic", p.CharacterType)
	}
	if p.Headwear.Present || p.Eyewear.Present || p.Clothing.Present {
		t.Fatalf("features detected on a featureless image: %+v", p)
	}
	if p.Mouth.HasTeeth || p.Mouth.HasGrill {
		t.Fatalf("mouth features on a featureless image: %+v", p.Mouth)
	}
	if p.Fur.Pattern != "solid" {
		t.Fatalf("fur pattern = %q, want solid", p.Fur.Pattern)
	}
}

func TestClassifyDarkHeadBand(t *testing.T) {
	img := imaging.SolidFill(64, 64, 128, 128, 128, 255)
	// Head and eye bands fully dark: a pulled-down helmet with shades
	for y := 0; y < int(heuristics.HeadBandBottom*float64(img.Height)); y++ {
		for x := 0; x < 64; x++ {
			i := (y*64 + x) * 4
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 15, 15, 15
		}
	}
	p := Classify(analyze(img))

	if !p.Headwear.Present {
		t.Fatal("headwear not detected under full dark coverage")
	}
	if p.Headwear.Type != "helmet" {
		t.Fatalf("headwear type = %q, want helmet", p.Headwear.Type)
	}
	if !p.Eyewear.Present || p.Eyewear.Type != "sunglasses" {
		t.Fatalf("eyewear = %+v, want sunglasses", p.Eyewear)
	}
}

func TestConfidenceZeroAtThreshold(t *testing.T) {
	if c := confidence(heuristics.HeadwearDarkCoverage, heuristics.HeadwearDarkCoverage); c != 0 {
		t.Fatalf("confidence at the exact threshold = %f, want 0", c)
	}
	if c := confidence(heuristics.HeadwearDarkCoverage*2, heuristics.HeadwearDarkCoverage); c != 1 {
		t.Fatalf("confidence at double coverage = %f, want 1", c)
	}
}

func TestCharacterTypeVote(t *testing.T) {
	base := FeatureProfile{}

	// Three votes: hat + sunglasses + clothing
	nft := base
	nft.Headwear.Present = true
	nft.Eyewear = Eyewear{Present: true, Type: "sunglasses"}
	nft.Clothing.Present = true
	if got := characterType(nft); got != CharacterNFT {
		t.Fatalf("3 votes = %q, want nft_character", got)
	}

	// Two votes stay below threshold; no override fires
	two := base
	two.Headwear.Present = true
	two.Clothing.Present = true
	if got := characterType(two); got != CharacterGeneric {
		t.Fatalf("2 votes = %q, want generic", got)
	}
}

func TestCharacterTypeOverrides(t *testing.T) {
	fanged := FeatureProfile{Mouth: Mouth{HasTeeth: true}}
	if got := characterType(fanged); got != CharacterAnimal {
		t.Fatalf("fanged = %q, want animal", got)
	}

	laser := FeatureProfile{Eyewear: Eyewear{Present: true, Type: "laser"}}
	if got := characterType(laser); got != CharacterRobot {
		t.Fatalf("laser eyes = %q, want robot", got)
	}

	military := FeatureProfile{Headwear: Headwear{Present: true, Type: "military_helmet"}}
	if got := characterType(military); got != CharacterHuman {
		t.Fatalf("military helmet = %q, want human", got)
	}
}

func TestMissingPartsOnTransparentImage(t *testing.T) {
	p := Classify(analyze(imaging.SolidFill(64, 64, 0, 0, 0, 0)))
	mp := p.MissingParts
	if !mp.Arms || !mp.Legs || !mp.Torso || !mp.Hands {
		t.Fatalf("transparent image should miss every part: %+v", mp)
	}
}

func TestMissingPartsOnHighVarianceImage(t *testing.T) {
	// Checkerboard: variance far above the emptiness threshold everywhere
	img := imaging.SolidFill(64, 64, 0, 0, 0, 255)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if (x+y)%2 == 0 {
				i := (y*64 + x) * 4
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 255, 255, 255
			}
		}
	}
	mp := detectMissingParts(analyze(img))
	if mp.Arms || mp.Legs || mp.Torso || mp.Hands {
		t.Fatalf("high-variance windows flagged as empty: %+v", mp)
	}
}

func TestWindowEmptySingleSample(t *testing.T) {
	// Only one opaque pixel in the arm window: a lone sample has zero
	// variance, not an undefined one
	img := imaging.SolidFill(8, 8, 100, 100, 100, 0)
	img.Pix[(3*8+0)*4+3] = 255

	res := analyze(img)
	if !windowEmpty(res, leftArmWindow, backgroundMean(res)) {
		t.Fatal("single-sample background-colored window not flagged empty")
	}
}

func TestNearestColorName(t *testing.T) {
	if got := nearestColorName(230, 20, 20); got != "red" {
		t.Fatalf("bright red named %q", got)
	}
	if got := nearestColorName(10, 10, 10); got != "black" {
		t.Fatalf("near-black named %q", got)
	}
}
