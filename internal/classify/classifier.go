package classify

import (
	"avatarforge/internal/analysis"
	"avatarforge/internal/heuristics"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Classify runs every feature rule over the analysis result and derives
// the character type. It never fails: a signal-free image produces an
// all-absent profile with CharacterGeneric.
func Classify(res *analysis.Result) FeatureProfile {
	head := bandStats(res, 0, heuristics.HeadBandBottom)
	eyes := bandStats(res, heuristics.EyeBandTop, heuristics.EyeBandBottom)
	mouth := bandStats(res, heuristics.MouthBandTop, heuristics.MouthBandBottom)
	body := bandStats(res, heuristics.BodyBandTop, 1.0)

	p := FeatureProfile{
		Headwear: classifyHeadwear(head),
		Eyewear:  classifyEyewear(eyes),
		Mouth:    classifyMouth(mouth),
		Clothing: classifyClothing(body),
		Fur:      classifyFur(res),
	}
	p.MissingParts = detectMissingParts(res)
	p.CharacterType = characterType(p)
	return p
}

func classifyHeadwear(s regionStats) Headwear {
	hw := Headwear{Confidence: confidence(s.darkCoverage, heuristics.HeadwearDarkCoverage)}
	if s.darkCoverage <= heuristics.HeadwearDarkCoverage {
		return hw
	}
	hw.Present = true
	hw.Color = nearestColorName(s.avgR, s.avgG, s.avgB)
	switch {
	case s.darkCoverage > 0.5 && s.avgG > s.avgR && s.avgG > s.avgB:
		hw.Type = "military_helmet"
	case s.darkCoverage > 0.5:
		hw.Type = "helmet"
	default:
		hw.Type = "cap"
	}
	return hw
}

func classifyEyewear(s regionStats) Eyewear {
	ew := Eyewear{EyeColor: nearestColorName(s.avgR, s.avgG, s.avgB)}

	// Laser eyes outrank sunglasses: a red-saturated eye band is an
	// emitter effect, not a lens.
	if s.redCoverage > heuristics.LaserEyeRedCoverage {
		ew.Present = true
		ew.Type = "laser"
		ew.EyeColor = "red"
		ew.Confidence = confidence(s.redCoverage, heuristics.LaserEyeRedCoverage)
		return ew
	}

	ew.Confidence = confidence(s.darkCoverage, heuristics.EyewearDarkCoverage)
	if s.darkCoverage > heuristics.EyewearDarkCoverage {
		ew.Present = true
		ew.Type = "sunglasses"
	}
	return ew
}

func classifyMouth(s regionStats) Mouth {
	m := Mouth{Style: "neutral", Confidence: confidence(s.brightCoverage, heuristics.FangBrightCoverage)}
	if s.darkCoverage > 0.2 {
		m.Style = "open"
	}
	if s.brightCoverage > heuristics.FangBrightCoverage {
		m.HasTeeth = true
		m.Style = "toothy"
	}
	if s.metallicCoverage > heuristics.GrillBrightCoverage {
		m.HasGrill = true
		m.Confidence = confidence(s.metallicCoverage, heuristics.GrillBrightCoverage)
	}
	return m
}

func classifyClothing(s regionStats) Clothing {
	c := Clothing{Confidence: confidence(s.darkCoverage, heuristics.ClothingDarkCoverage)}
	if s.darkCoverage <= heuristics.ClothingDarkCoverage {
		return c
	}
	c.Present = true
	if s.darkCoverage > 0.55 {
		c.Type = "suit"
	} else {
		c.Type = "shirt"
	}
	if s.metallicCoverage > 0.05 {
		c.Accessories = append(c.Accessories, "chain")
	}
	return c
}

func classifyFur(res *analysis.Result) Fur {
	f := Fur{PrimaryColor: "unknown", Pattern: "solid", Texture: "smooth"}
	if len(res.Clusters) == 0 {
		return f
	}
	top := res.Clusters[0]
	f.PrimaryColor = nearestColorName(float64(top.R), float64(top.G), float64(top.B))
	switch {
	case len(res.Clusters) >= heuristics.MulticolorClusterCount:
		f.Pattern = "multicolor"
	case len(res.Clusters) > 1:
		f.Pattern = "mixed"
	}

	var edgeSum float64
	for _, e := range res.Edges {
		edgeSum += e
	}
	if edgeSum/float64(len(res.Edges)) > 0.15 {
		f.Texture = "textured"
	}
	return f
}

// characterType derives the coarse class from a weighted vote over five
// boolean flags. Three or more votes means a heavily-accessorized NFT-style
// character; below that, three single-cause overrides are checked in order.
func characterType(p FeatureProfile) CharacterType {
	votes := 0
	if p.Headwear.Present {
		votes++
	}
	if p.Eyewear.Present && p.Eyewear.Type == "sunglasses" {
		votes++
	}
	if p.Mouth.HasGrill || p.Mouth.HasTeeth {
		votes++
	}
	if p.Clothing.Present {
		votes++
	}
	if p.Fur.Pattern == "multicolor" {
		votes++
	}

	if votes >= heuristics.NFTVoteThreshold {
		return CharacterNFT
	}
	if p.Mouth.HasTeeth && !p.Mouth.HasGrill {
		return CharacterAnimal
	}
	if p.Eyewear.Type == "laser" {
		return CharacterRobot
	}
	if p.Headwear.Type == "military_helmet" {
		return CharacterHuman
	}
	return CharacterGeneric
}

// namedPalette is the small set of colors features are reported as.
var namedPalette = []struct {
	name string
	c    colorful.Color
}{
	{"black", colorful.Color{R: 0.05, G: 0.05, B: 0.05}},
	{"white", colorful.Color{R: 0.95, G: 0.95, B: 0.95}},
	{"gray", colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
	{"red", colorful.Color{R: 0.85, G: 0.1, B: 0.1}},
	{"green", colorful.Color{R: 0.1, G: 0.7, B: 0.2}},
	{"blue", colorful.Color{R: 0.1, G: 0.25, B: 0.85}},
	{"yellow", colorful.Color{R: 0.9, G: 0.85, B: 0.1}},
	{"orange", colorful.Color{R: 0.95, G: 0.55, B: 0.1}},
	{"purple", colorful.Color{R: 0.55, G: 0.15, B: 0.7}},
	{"brown", colorful.Color{R: 0.45, G: 0.3, B: 0.15}},
	{"pink", colorful.Color{R: 0.95, G: 0.6, B: 0.7}},
}

// nearestColorName maps an average RGB (0-255 components) to the closest
// palette name by perceptual distance.
func nearestColorName(r, g, b float64) string {
	px := colorful.Color{R: r / 255.0, G: g / 255.0, B: b / 255.0}
	best := namedPalette[0].name
	bestDist := px.DistanceLab(namedPalette[0].c)
	for _, entry := range namedPalette[1:] {
		if d := px.DistanceLab(entry.c); d < bestDist {
			bestDist = d
			best = entry.name
		}
	}
	return best
}
