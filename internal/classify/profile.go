// Package classify turns pixel signals into a discrete FeatureProfile:
// headwear, eyewear, mouth style, clothing, fur, missing parts, and the
// overall character type.
package classify

// CharacterType is the coarse class of the portrait subject.
type CharacterType string

const (
	CharacterHuman   CharacterType = "human"
	CharacterAnimal  CharacterType = "animal"
	CharacterRobot   CharacterType = "robot"
	CharacterNFT     CharacterType = "nft_character"
	CharacterGeneric CharacterType = "generic"
)

// Headwear describes hats, caps, and helmets found in the head band.
type Headwear struct {
	Present    bool
	Type       string
	Color      string
	Confidence float64
}

// Eyewear describes glasses, sunglasses, and laser-eye effects.
type Eyewear struct {
	Present    bool
	Type       string
	EyeColor   string
	Confidence float64
}

// Mouth describes the mouth band: open/neutral style, visible teeth, and
// metallic grills.
type Mouth struct {
	Style      string
	HasTeeth   bool
	HasGrill   bool
	Confidence float64
}

// Clothing describes the body band below the shoulders.
type Clothing struct {
	Present     bool
	Type        string
	Accessories []string
	Confidence  float64
}

// Fur summarizes overall coat/skin color and texture.
type Fur struct {
	PrimaryColor string
	Pattern      string
	Texture      string
}

// MissingParts flags limbs whose sampling window shows no subject content.
type MissingParts struct {
	Arms  bool
	Legs  bool
	Torso bool
	Hands bool
}

// FeatureProfile is the classification result for one portrait. Built once
// and never mutated.
type FeatureProfile struct {
	CharacterType CharacterType
	Headwear      Headwear
	Eyewear       Eyewear
	Mouth         Mouth
	Clothing      Clothing
	Fur           Fur
	MissingParts  MissingParts
}
