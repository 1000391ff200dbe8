package rig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TierBudget caps what a subscription level may attach to an avatar.
type TierBudget struct {
	MaxBones        int `yaml:"max_bones"`
	MaxMorphTargets int `yaml:"max_morph_targets"`
	MaxOutputSizeMB int `yaml:"max_output_size_mb"`
}

// DefaultTiers is the compiled-in tier table. The persistence layer is the
// source of truth upstream; this core only needs the resolved records.
var DefaultTiers = map[string]TierBudget{
	"free":  {MaxBones: 20, MaxMorphTargets: 5, MaxOutputSizeMB: 10},
	"tier2": {MaxBones: 35, MaxMorphTargets: 12, MaxOutputSizeMB: 25},
	"tier3": {MaxBones: 50, MaxMorphTargets: 25, MaxOutputSizeMB: 50},
	"tier4": {MaxBones: 65, MaxMorphTargets: 40, MaxOutputSizeMB: 100},
	"tier5": {MaxBones: 80, MaxMorphTargets: 60, MaxOutputSizeMB: 200},
}

// BudgetFor resolves a tier name against the table, falling back to the
// free tier for unknown names. An unknown tier is a degradation, not an
// error: the caller still gets a valid, minimal rig.
func BudgetFor(tiers map[string]TierBudget, name string) TierBudget {
	if b, ok := tiers[name]; ok {
		return b
	}
	return tiers["free"]
}

// LoadTierFile reads a YAML tier table, overlaying entries onto the
// defaults so a partial file only overrides what it names.
func LoadTierFile(path string) (map[string]TierBudget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rig: read tier file %s: %w", path, err)
	}

	var overrides map[string]TierBudget
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("rig: parse tier file %s: %w", path, err)
	}

	tiers := make(map[string]TierBudget, len(DefaultTiers)+len(overrides))
	for k, v := range DefaultTiers {
		tiers[k] = v
	}
	for k, v := range overrides {
		tiers[k] = v
	}
	return tiers, nil
}
