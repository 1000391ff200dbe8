// Package rig owns the candidate bone and morph-target catalogs and the
// tier-budget allocator that truncates them for a subscription plan.
package rig

// Bone is one skeleton joint. Parent is an index into the catalog and is
// always smaller than the bone's own index (the root uses -1), so any
// prefix of the catalog is a closed hierarchy.
type Bone struct {
	Name   string
	Parent int
}

// boneDef is the authoring form: parents by name, resolved to indices once
// at init.
type boneDef struct {
	name   string
	parent string
}

// Candidate bone catalog in priority order: core skeleton, then primary
// limbs, then facial bones, then fingers, then the remainder. The ordering
// is human-authored; truncation always keeps a usable skeleton.
var boneDefs = []boneDef{
	// Core skeleton
	{"hips", ""},
	{"spine", "hips"},
	{"spine_upper", "spine"},
	{"chest", "spine_upper"},
	{"neck", "chest"},
	{"head", "neck"},

	// Primary limbs
	{"clavicle_l", "chest"},
	{"upper_arm_l", "clavicle_l"},
	{"forearm_l", "upper_arm_l"},
	{"hand_l", "forearm_l"},
	{"clavicle_r", "chest"},
	{"upper_arm_r", "clavicle_r"},
	{"forearm_r", "upper_arm_r"},
	{"hand_r", "forearm_r"},
	{"thigh_l", "hips"},
	{"calf_l", "thigh_l"},
	{"foot_l", "calf_l"},
	{"thigh_r", "hips"},
	{"calf_r", "thigh_r"},
	{"foot_r", "calf_r"},

	// Facial bones
	{"jaw", "head"},
	{"eye_l", "head"},
	{"eye_r", "head"},
	{"eyelid_l", "head"},
	{"eyelid_r", "head"},
	{"brow_l", "head"},
	{"brow_r", "head"},
	{"cheek_l", "head"},
	{"cheek_r", "head"},
	{"nose", "head"},

	// Fingers, left then right, three joints each
	{"thumb_1_l", "hand_l"},
	{"thumb_2_l", "thumb_1_l"},
	{"thumb_3_l", "thumb_2_l"},
	{"index_1_l", "hand_l"},
	{"index_2_l", "index_1_l"},
	{"index_3_l", "index_2_l"},
	{"middle_1_l", "hand_l"},
	{"middle_2_l", "middle_1_l"},
	{"middle_3_l", "middle_2_l"},
	{"ring_1_l", "hand_l"},
	{"ring_2_l", "ring_1_l"},
	{"ring_3_l", "ring_2_l"},
	{"pinky_1_l", "hand_l"},
	{"pinky_2_l", "pinky_1_l"},
	{"pinky_3_l", "pinky_2_l"},
	{"thumb_1_r", "hand_r"},
	{"thumb_2_r", "thumb_1_r"},
	{"thumb_3_r", "thumb_2_r"},
	{"index_1_r", "hand_r"},
	{"index_2_r", "index_1_r"},
	{"index_3_r", "index_2_r"},
	{"middle_1_r", "hand_r"},
	{"middle_2_r", "middle_1_r"},
	{"middle_3_r", "middle_2_r"},
	{"ring_1_r", "hand_r"},
	{"ring_2_r", "ring_1_r"},
	{"ring_3_r", "ring_2_r"},
	{"pinky_1_r", "hand_r"},
	{"pinky_2_r", "pinky_1_r"},
	{"pinky_3_r", "pinky_2_r"},

	// Remainder: toes, twist helpers, hair, tail, ears, cloth
	{"toes_l", "foot_l"},
	{"toes_r", "foot_r"},
	{"upper_arm_twist_l", "upper_arm_l"},
	{"upper_arm_twist_r", "upper_arm_r"},
	{"forearm_twist_l", "forearm_l"},
	{"forearm_twist_r", "forearm_r"},
	{"thigh_twist_l", "thigh_l"},
	{"thigh_twist_r", "thigh_r"},
	{"hair_root", "head"},
	{"hair_1", "hair_root"},
	{"hair_2", "hair_1"},
	{"tail_root", "hips"},
	{"tail_1", "tail_root"},
	{"tail_2", "tail_1"},
	{"tail_3", "tail_2"},
	{"ear_l", "head"},
	{"ear_r", "head"},
	{"skirt_front", "hips"},
	{"skirt_back", "hips"},
	{"prop_anchor", "hand_r"},
}

// BoneCatalog is the resolved candidate list.
var BoneCatalog = resolveBones(boneDefs)

func resolveBones(defs []boneDef) []Bone {
	index := make(map[string]int, len(defs))
	out := make([]Bone, len(defs))
	for i, d := range defs {
		parent := -1
		if d.parent != "" {
			p, ok := index[d.parent]
			if !ok {
				panic("rig: bone " + d.name + " declared before parent " + d.parent)
			}
			parent = p
		}
		out[i] = Bone{Name: d.name, Parent: parent}
		index[d.name] = i
	}
	return out
}

// MorphCatalog is the candidate morph-target list in priority order: basic
// expressions, then eye/mouth control, then visemes, then hand gestures,
// then tier-specific extras.
var MorphCatalog = []string{
	// Basic expressions
	"neutral", "smile", "frown", "angry", "surprised",
	"sad", "happy", "disgusted", "scared", "wink",

	// Eye and mouth control
	"blink_l", "blink_r", "eye_wide_l", "eye_wide_r", "squint_l",
	"squint_r", "pupil_dilate", "jaw_open", "mouth_smile_l", "mouth_smile_r",
	"mouth_pucker", "mouth_stretch", "lip_upper_up", "lip_lower_down", "tongue_out",

	// Visemes
	"viseme_aa", "viseme_ee", "viseme_ih", "viseme_oh", "viseme_ou",
	"viseme_f", "viseme_v", "viseme_m", "viseme_p", "viseme_th",
	"viseme_ch", "viseme_ss", "viseme_nn", "viseme_rr", "viseme_kk",

	// Hand gestures
	"fist_l", "fist_r", "point_l", "point_r", "open_l",
	"open_r", "thumbs_up_l", "thumbs_up_r", "pinch_l", "pinch_r",

	// Tier-specific extras
	"brow_up_l", "brow_up_r", "brow_down", "cheek_puff", "nose_sneer",
	"ear_wiggle", "tail_wag", "hair_sway", "glow", "laser_pulse",
}
