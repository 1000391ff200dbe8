package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"input_dir":"portraits","tier":"tier3","mesh_resolution":128}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{})

	if cfg.InputDir != "portraits" || cfg.Tier != "tier3" {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.MeshResolution != 128 {
		t.Fatalf("mesh resolution = %d, want 128", cfg.MeshResolution)
	}
	// Defaults filled in
	if cfg.WorkingResolution != 256 || cfg.DepthMultiplier != 1.0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Workers <= 0 || cfg.InferenceTimeoutSec != 20 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{InputDir: "from-file", Tier: "tier2", Workers: 4}
	cfg.Resolve(Flags{InputDir: "from-flag", Tier: "tier5", Workers: 8})

	if cfg.InputDir != "from-flag" || cfg.Tier != "tier5" || cfg.Workers != 8 {
		t.Fatalf("flags did not win: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed json accepted")
	}
}
