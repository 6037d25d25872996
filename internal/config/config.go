// Package config provides configuration management for the antler tool.
// It handles loading, saving, and managing user preferences including
// the preferred ANTs installation and default operation parameters.
//
// Configuration is stored in JSON format at ~/.antler.json and includes:
//   - Preferred ANTs bin directory (set interactively by `antler setup`)
//   - Default registration iteration schedule and warp interpolation
//   - ITK thread count passed to toolkit invocations
//   - Helper tool names for surface-to-volume mapping and label merging
//
// The package gracefully handles missing configuration files by
// returning empty configurations, allowing the tool to work with
// sensible defaults when no explicit configuration exists.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds user preferences for the ANTs toolkit and misc defaults.
type Config struct {
	ANTsBin         string `json:"ants_bin"`
	Iterations      string `json:"iterations,omitempty"`
	Interpolation   string `json:"interpolation,omitempty"`
	Threads         int    `json:"threads,omitempty"`
	DigestAlgorithm string `json:"digest_algorithm,omitempty"`
	MapperTool      string `json:"mapper_tool,omitempty"`
	MergerTool      string `json:"merger_tool,omitempty"`
}

// Path returns the absolute path to the antler configuration file (~/.antler.json).
func Path() string {
	home := os.Getenv("HOME")
	if home == "" {
		if wd, _ := os.Getwd(); wd != "" {
			return filepath.Join(wd, ".antler.json")
		}
	}
	return filepath.Join(home, ".antler.json")
}

// Load reads configuration from disk. If missing, returns an empty config and nil error.
func Load() (*Config, error) {
	var cfg Config
	p := Path()
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return &Config{}, nil // treat parse issues as empty config (non-fatal)
	}
	return &cfg, nil
}

// Save writes configuration to disk.
func Save(cfg *Config) error {
	p := Path()
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}
