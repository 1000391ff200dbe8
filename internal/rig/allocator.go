package rig

// RigAllocation is the bone/morph subset actually attached to an avatar.
// Computed once at rig-generation time; a new allocation fully replaces
// the old one, never a partial update.
type RigAllocation struct {
	Tier         string
	Bones        []Bone
	MorphTargets []string
}

// Allocate truncates the candidate catalogs to the tier budget. The
// truncation is stable: the same catalogs and budget always produce an
// identical allocation. A budget larger than a catalog returns the full
// catalog, never a padded one.
func Allocate(bones []Bone, morphs []string, tier string, budget TierBudget) RigAllocation {
	nb := budget.MaxBones
	if nb > len(bones) {
		nb = len(bones)
	}
	if nb < 0 {
		nb = 0
	}
	nm := budget.MaxMorphTargets
	if nm > len(morphs) {
		nm = len(morphs)
	}
	if nm < 0 {
		nm = 0
	}

	alloc := RigAllocation{
		Tier:         tier,
		Bones:        make([]Bone, nb),
		MorphTargets: make([]string, nm),
	}
	copy(alloc.Bones, bones[:nb])
	copy(alloc.MorphTargets, morphs[:nm])
	return alloc
}
