package pipeline

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"avatarforge/internal/artifact"
)

func writePortrait(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 120, 130, 140, 255
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePortrait(t, dir, "alice.png"),
		writePortrait(t, dir, "bob.png"),
	}

	store, err := artifact.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var done atomic.Int64
	results := RunBatch(context.Background(), BatchConfig{
		Paths:   paths,
		Tier:    "free",
		Opts:    Options{WorkingResolution: 64, MeshResolution: 16},
		Store:   store,
		Workers: 2,
		OnDone:  func() { done.Add(1) },
	})

	if len(results) != 2 {
		t.Fatalf("%d results, want 2", len(results))
	}
	for _, r := range results {
		if !r.Success {
			t.Fatalf("%s failed: %s", r.Path, r.Error)
		}
		if r.AvatarID == "" {
			t.Fatalf("%s has no avatar id", r.Path)
		}
	}
	if done.Load() != 2 {
		t.Fatalf("progress callback ran %d times", done.Load())
	}

	for _, key := range []string{"alice.avatar", "alice.webp", "bob.avatar", "bob.webp"} {
		data, ok := store.Get(key)
		if !ok || len(data) == 0 {
			t.Fatalf("store missing %s", key)
		}
	}

	// The stored container still decodes and matches the mesh contract
	data, _ := store.Get("alice.avatar")
	c, err := artifact.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Vertices)/3 != 16*16 {
		t.Fatalf("stored mesh has %d vertices, want 256", len(c.Vertices)/3)
	}
}

func TestRunBatchReportsBadInputs(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := artifact.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	results := RunBatch(context.Background(), BatchConfig{
		Paths:   []string{bad},
		Tier:    "free",
		Opts:    Options{WorkingResolution: 64, MeshResolution: 16},
		Store:   store,
		Workers: 1,
	})
	if results[0].Success || results[0].Error == "" {
		t.Fatalf("corrupt input not reported: %+v", results[0])
	}
}
