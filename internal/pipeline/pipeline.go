// Package pipeline wires the synthesis stages end to end: analyze,
// classify and pose-check in parallel, normalize when needed, then depth,
// mesh, and rig allocation. Each invocation is a pure transformation over
// immutable inputs; requests share no mutable state.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"

	"avatarforge/internal/analysis"
	"avatarforge/internal/artifact"
	"avatarforge/internal/classify"
	"avatarforge/internal/depth"
	"avatarforge/internal/genai"
	"avatarforge/internal/heuristics"
	"avatarforge/internal/imaging"
	"avatarforge/internal/mesh"
	"avatarforge/internal/pose"
	"avatarforge/internal/rig"

	"github.com/google/uuid"
)

// Options configures one pipeline instance. Zero values select defaults.
type Options struct {
	WorkingResolution int
	MeshResolution    int
	DepthMultiplier   float64
	Tiers             map[string]rig.TierBudget

	// Inference is the optional generative collaborator used for
	// feature-consistent side-view regeneration. Nil disables it; failures
	// fall back to a deterministic mirror either way.
	Inference *genai.Client

	// Detect overrides the pose detector, mainly so callers can substitute
	// a trained estimator. Nil selects the built-in heuristic detector.
	Detect func(*analysis.Result) pose.Estimate
}

func (o Options) withDefaults() Options {
	if o.WorkingResolution <= 0 {
		o.WorkingResolution = heuristics.WorkingResolution
	}
	if o.MeshResolution <= 0 {
		o.MeshResolution = heuristics.WorkingResolution
	}
	if o.DepthMultiplier <= 0 {
		o.DepthMultiplier = 1.0
	}
	if o.Tiers == nil {
		o.Tiers = rig.DefaultTiers
	}
	if o.Detect == nil {
		o.Detect = pose.Detect
	}
	return o
}

// Avatar is one request's complete output, stored immutably alongside the
// generated mesh.
type Avatar struct {
	ID   string
	Tier string

	Profile    classify.FeatureProfile
	Pose       pose.Estimate
	Normalized bool

	Depth *depth.Field
	Mesh  *mesh.Mesh3D
	Rig   rig.RigAllocation

	// Portrait is the working-resolution image the mesh was synthesized
	// from (pose-corrected when normalization ran).
	Portrait *imaging.RasterImage

	// SideView is the auxiliary regenerated view, present only when the
	// profile reported missing parts. It is the mirror fallback when the
	// inference service was unavailable.
	SideView *imaging.RasterImage
}

// Generate runs the full pipeline for one portrait and tier. The only
// error it returns is a malformed input image; every downstream stage
// degrades instead of failing.
func Generate(ctx context.Context, img *imaging.RasterImage, tier string, opts Options) (*Avatar, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	working := imaging.ToWorkingResolution(img, opts.WorkingResolution)
	signals := analysis.Analyze(working)

	// Classification and pose detection read the same immutable analysis
	// result and can run concurrently.
	var profile classify.FeatureProfile
	var estimate pose.Estimate
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		profile = classify.Classify(signals)
	}()
	go func() {
		defer wg.Done()
		estimate = opts.Detect(signals)
	}()
	wg.Wait()

	normalized := false
	if estimate.RequiresNormalization {
		working = pose.Normalize(working, estimate)
		normalized = true
	}

	budget := rig.BudgetFor(opts.Tiers, tier)
	meshRes := artifact.ClampResolution(opts.MeshResolution, budget.MaxOutputSizeMB)

	field := depth.Synthesize(working, meshRes, opts.DepthMultiplier)
	grid := mesh.Assemble(field)
	alloc := rig.Allocate(rig.BoneCatalog, rig.MorphCatalog, tier, budget)

	av := &Avatar{
		ID:         uuid.NewString(),
		Tier:       tier,
		Profile:    profile,
		Pose:       estimate,
		Normalized: normalized,
		Depth:      field,
		Mesh:       grid,
		Rig:        alloc,
		Portrait:   working,
	}

	if anyPartMissing(profile.MissingParts) {
		av.SideView = regenerateSideView(ctx, opts.Inference, working, profile)
	}

	return av, nil
}

func anyPartMissing(mp classify.MissingParts) bool {
	return mp.Arms || mp.Legs || mp.Torso || mp.Hands
}

// regenerateSideView asks the inference service for a feature-consistent
// auxiliary view to complete missing limbs. On any failure — no client,
// timeout, bad bytes — the fallback is a horizontal mirror of the working
// image: deterministic, and enough for the rigging stage to seed limbs.
func regenerateSideView(ctx context.Context, client *genai.Client, working *imaging.RasterImage, profile classify.FeatureProfile) *imaging.RasterImage {
	if client == nil {
		return working.MirrorHorizontal()
	}

	raw, err := client.Generate(ctx, genai.Request{
		Prompt:         sideViewPrompt(profile),
		NegativePrompt: "blurry, extra limbs, text, watermark",
		Width:          working.Width,
		Height:         working.Height,
		Steps:          25,
		GuidanceScale:  7.5,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeline: side-view inference failed, using mirror fallback: %v\n", err)
		return working.MirrorHorizontal()
	}

	side, err := imaging.DecodeImage(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeline: side-view decode failed, using mirror fallback: %v\n", err)
		return working.MirrorHorizontal()
	}
	return imaging.ToWorkingResolution(side, working.Width)
}

func sideViewPrompt(p classify.FeatureProfile) string {
	desc := string(p.CharacterType) + " character, side view, full body, " + p.Fur.PrimaryColor + " " + p.Fur.Pattern
	if p.Headwear.Present {
		desc += ", wearing " + p.Headwear.Color + " " + p.Headwear.Type
	}
	if p.Clothing.Present {
		desc += ", " + p.Clothing.Type
	}
	return desc
}
