package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"avatarforge/internal/artifact"
	"avatarforge/internal/config"
	"avatarforge/internal/genai"
	"avatarforge/internal/pipeline"
	"avatarforge/internal/rig"

	"github.com/cheggaaa/pb/v3"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory of portrait images")
	outputDir := flag.String("output", "", "Output directory (default: avatars)")
	tier := flag.String("tier", "", "Subscription tier: free, tier2..tier5 (default: free)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Process only first N portraits for testing")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Tier:      *tier,
		Workers:   *workers,
	})

	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no input directory. Use -input flag or config.json.")
		os.Exit(1)
	}

	paths, err := listPortraits(cfg.InputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing portraits: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "No portraits found in %s\n", cfg.InputDir)
		os.Exit(1)
	}
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
	}

	// Tier table
	tiers := rig.DefaultTiers
	if cfg.TierFile != "" {
		tiers, err = rig.LoadTierFile(cfg.TierFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tier file: %v\n", err)
			os.Exit(1)
		}
	}

	// Artifact store: S3 bucket when configured, local directory otherwise
	var store artifact.Store
	if cfg.S3Endpoint != "" {
		store, err = artifact.NewMinioStore(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Secure)
	} else {
		store, err = artifact.NewFSStore(cfg.OutputDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening artifact store: %v\n", err)
		os.Exit(1)
	}

	opts := pipeline.Options{
		WorkingResolution: cfg.WorkingResolution,
		MeshResolution:    cfg.MeshResolution,
		DepthMultiplier:   cfg.DepthMultiplier,
		Tiers:             tiers,
	}
	if cfg.InferenceURL != "" {
		opts.Inference = genai.NewClient(cfg.InferenceURL,
			time.Duration(cfg.InferenceTimeoutSec)*time.Second, cfg.InferenceMaxCalls)
	}

	fmt.Printf("Generating %d avatars (%s tier, %d workers)\n", len(paths), cfg.Tier, cfg.Workers)
	start := time.Now()

	bar := pb.StartNew(len(paths))
	results := pipeline.RunBatch(context.Background(), pipeline.BatchConfig{
		Paths:   paths,
		Tier:    cfg.Tier,
		Opts:    opts,
		Store:   store,
		Workers: cfg.Workers,
		OnDone:  func() { bar.Increment() },
	})
	bar.Finish()

	ok := 0
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			fmt.Fprintf(os.Stderr, "  FAIL %s: %s\n", r.Path, r.Error)
		}
	}
	fmt.Printf("Done: %d/%d succeeded in %.1fs\n", ok, len(results), time.Since(start).Seconds())
	if ok < len(results) {
		os.Exit(1)
	}
}

func listPortraits(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".tga":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
