// Package config loads the JSON run configuration and fills in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"avatarforge/internal/heuristics"
)

// Config holds all configurable paths and pipeline settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`
	TierFile  string `json:"tier_file"`

	// Pipeline settings
	Tier              string  `json:"tier"`
	WorkingResolution int     `json:"working_resolution"`
	MeshResolution    int     `json:"mesh_resolution"`
	DepthMultiplier   float64 `json:"depth_multiplier"`
	Workers           int     `json:"workers"`

	// Generative inference collaborator (optional)
	InferenceURL        string `json:"inference_url"`
	InferenceTimeoutSec int    `json:"inference_timeout_sec"`
	InferenceMaxCalls   int    `json:"inference_max_calls"`

	// Object store (optional; filesystem store is used when empty)
	S3Endpoint  string `json:"s3_endpoint"`
	S3AccessKey string `json:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key"`
	S3Bucket    string `json:"s3_bucket"`
	S3Secure    bool   `json:"s3_secure"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir  string
	OutputDir string
	Tier      string
	Workers   int
}

// Resolve fills in any empty fields with defaults. CLI flags take priority
// when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Tier != "" {
		c.Tier = flags.Tier
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "avatars"
	}
	if c.Tier == "" {
		c.Tier = "free"
	}
	if c.WorkingResolution <= 0 {
		c.WorkingResolution = heuristics.WorkingResolution
	}
	if c.MeshResolution <= 0 {
		c.MeshResolution = heuristics.WorkingResolution
	}
	if c.DepthMultiplier <= 0 {
		c.DepthMultiplier = 1.0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.InferenceTimeoutSec <= 0 {
		c.InferenceTimeoutSec = 20
	}
	if c.InferenceMaxCalls <= 0 {
		c.InferenceMaxCalls = 2
	}
}
