package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"avatarforge/internal/imaging"
	"avatarforge/internal/pipeline"
)

// inspectmesh runs the pipeline on a single portrait and dumps the
// classification, pose verdict, depth statistics, and mesh counts.
func main() {
	in := flag.String("in", "", "Portrait image to inspect")
	tier := flag.String("tier", "free", "Subscription tier")
	meshRes := flag.Int("res", 0, "Mesh grid resolution (default: 256)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspectmesh -in portrait.png [-tier tier3] [-res 128]")
		os.Exit(1)
	}

	img, err := imaging.LoadImage(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	av, err := pipeline.Generate(context.Background(), img, *tier, pipeline.Options{MeshResolution: *meshRes})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := av.Profile
	fmt.Printf("avatar %s (%s tier)\n", av.ID, av.Tier)
	fmt.Printf("  character: %s\n", p.CharacterType)
	fmt.Printf("  headwear:  present=%v type=%q color=%q conf=%.2f\n", p.Headwear.Present, p.Headwear.Type, p.Headwear.Color, p.Headwear.Confidence)
	fmt.Printf("  eyewear:   present=%v type=%q conf=%.2f\n", p.Eyewear.Present, p.Eyewear.Type, p.Eyewear.Confidence)
	fmt.Printf("  mouth:     style=%q teeth=%v grill=%v\n", p.Mouth.Style, p.Mouth.HasTeeth, p.Mouth.HasGrill)
	fmt.Printf("  clothing:  present=%v type=%q accessories=%v\n", p.Clothing.Present, p.Clothing.Type, p.Clothing.Accessories)
	fmt.Printf("  fur:       %s %s %s\n", p.Fur.PrimaryColor, p.Fur.Pattern, p.Fur.Texture)
	fmt.Printf("  missing:   arms=%v legs=%v torso=%v hands=%v\n", p.MissingParts.Arms, p.MissingParts.Legs, p.MissingParts.Torso, p.MissingParts.Hands)

	fmt.Printf("pose: asymmetry=%.3f normalize=%v confidence=%.2f (L=%.1f° R=%.1f°)\n",
		av.Pose.AsymmetryRatio, av.Pose.RequiresNormalization, av.Pose.Confidence,
		av.Pose.Left.Angle, av.Pose.Right.Angle)

	min, max, mean := depthStats(av.Depth.Values)
	fmt.Printf("depth: %dx%d min=%.3f max=%.3f mean=%.3f\n", av.Depth.Resolution, av.Depth.Resolution, min, max, mean)
	fmt.Printf("mesh: %d vertices, %d faces\n", av.Mesh.VertexCount(), av.Mesh.FaceCount())
	fmt.Printf("rig: %d bones, %d morph targets\n", len(av.Rig.Bones), len(av.Rig.MorphTargets))
}

func depthStats(values []float64) (min, max, mean float64) {
	min, max = values[0], values[0]
	var sum float64
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return min, max, sum / float64(len(values))
}
