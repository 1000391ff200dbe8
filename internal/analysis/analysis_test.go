package analysis

import (
	"testing"

	"avatarforge/internal/imaging"
)

func TestAnalyzeUniformGray(t *testing.T) {
	img := imaging.SolidFill(32, 32, 128, 128, 128, 255)
	res := Analyze(img)

	if len(res.BrightPoints) != 0 {
		t.Fatalf("uniform gray produced %d bright points", len(res.BrightPoints))
	}
	if len(res.DarkPoints) != 0 {
		t.Fatalf("uniform gray produced %d dark points", len(res.DarkPoints))
	}
	if len(res.Clusters) != 1 {
		t.Fatalf("uniform gray produced %d clusters, want 1", len(res.Clusters))
	}
	for i, e := range res.Edges {
		if e != 0 {
			t.Fatalf("uniform image has nonzero edge %f at %d", e, i)
		}
	}
}

func TestAnalyzeFullyTransparent(t *testing.T) {
	img := imaging.SolidFill(32, 32, 0, 0, 0, 0)
	res := Analyze(img)

	if len(res.BrightPoints) != 0 || len(res.DarkPoints) != 0 {
		t.Fatal("transparent image produced brightness points")
	}
	if len(res.Clusters) != 0 {
		t.Fatalf("transparent image produced %d clusters", len(res.Clusters))
	}
}

func TestAnalyzeBrightDarkSplit(t *testing.T) {
	img := imaging.SolidFill(32, 32, 250, 250, 250, 255)
	// Bottom half near-black
	for y := 16; y < 32; y++ {
		for x := 0; x < 32; x++ {
			i := (y*32 + x) * 4
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 10, 10, 10
		}
	}
	res := Analyze(img)

	if len(res.BrightPoints) == 0 {
		t.Fatal("no bright points on a half-white image")
	}
	if len(res.DarkPoints) == 0 {
		t.Fatal("no dark points on a half-black image")
	}
	if len(res.Clusters) < 2 {
		t.Fatalf("expected at least 2 clusters, got %d", len(res.Clusters))
	}
	// The boundary row must carry the strongest edges
	maxEdge := 0.0
	for _, e := range res.Edges {
		if e > maxEdge {
			maxEdge = e
		}
	}
	if maxEdge != 1.0 {
		t.Fatalf("edge map not normalized: max %f", maxEdge)
	}
}

func TestClustersOrderedByFrequency(t *testing.T) {
	img := imaging.SolidFill(32, 32, 200, 30, 30, 255)
	// A small blue patch, far outside the red cluster tolerance
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := (y*32 + x) * 4
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 20, 30, 220
		}
	}
	res := Analyze(img)

	if len(res.Clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(res.Clusters))
	}
	if res.Clusters[0].Count <= res.Clusters[1].Count {
		t.Fatal("clusters not ordered by frequency")
	}
	if res.Clusters[0].R < res.Clusters[0].B {
		t.Fatal("dominant cluster should be the red one")
	}
}
