package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"avatarforge/internal/artifact"
	"avatarforge/internal/imaging"
)

// BatchConfig holds the shared resources for one batch run.
type BatchConfig struct {
	Paths   []string
	Tier    string
	Opts    Options
	Store   artifact.Store
	Workers int

	// OnDone is called once per finished item (from worker goroutines);
	// nil disables progress reporting.
	OnDone func()
}

// BatchResult is the outcome of processing one portrait.
type BatchResult struct {
	Path     string
	AvatarID string
	Success  bool
	Error    string
}

// RunBatch processes all portraits with a bounded worker pool. Independent
// requests share nothing mutable, so workers need no locking beyond the
// channel feeding them.
func RunBatch(ctx context.Context, cfg BatchConfig) []BatchResult {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	results := make([]BatchResult, len(cfg.Paths))
	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processPortrait(ctx, cfg, cfg.Paths[idx])
				if cfg.OnDone != nil {
					cfg.OnDone()
				}
			}
		}()
	}

	for i := range cfg.Paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func processPortrait(ctx context.Context, cfg BatchConfig, path string) BatchResult {
	img, err := imaging.LoadImage(path)
	if err != nil {
		return BatchResult{Path: path, Error: err.Error()}
	}

	av, err := Generate(ctx, img, cfg.Tier, cfg.Opts)
	if err != nil {
		return BatchResult{Path: path, Error: err.Error()}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	container := artifact.Build(av.ID, string(av.Profile.CharacterType), av.Mesh, av.Rig)
	data, err := artifact.Encode(container)
	if err != nil {
		return BatchResult{Path: path, Error: err.Error()}
	}
	if err := cfg.Store.Put(name+".avatar", data, 0); err != nil {
		return BatchResult{Path: path, Error: err.Error()}
	}

	preview, err := artifact.EncodePreview(av.Portrait)
	if err != nil {
		return BatchResult{Path: path, Error: fmt.Sprintf("preview: %v", err)}
	}
	if err := cfg.Store.Put(name+".webp", preview, 0); err != nil {
		return BatchResult{Path: path, Error: err.Error()}
	}

	return BatchResult{Path: path, AvatarID: av.ID, Success: true}
}
