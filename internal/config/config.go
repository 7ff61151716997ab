// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads the project configuration spec §6 names: a YAML
// file with a godotenv `.env` overlay for secrets and deployment-specific
// values, grounded on theRebelliousNerd-codenerd's internal/config.Load
// (defaults -> yaml.Unmarshal -> env overrides) and the teacher's
// analytics.LoadEnvFile godotenv usage.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Profile toggles optional backends (spec §6).
type Profile string

const (
	ProfileLocal Profile = "local"
	ProfileCloud Profile = "cloud"
	ProfileDev   Profile = "dev"
	ProfileProd  Profile = "prod"
)

// QdrantMode says where vectors live. The engine core never embeds
// vectors itself; it only emits them for an external consumer.
type QdrantMode string

const (
	QdrantMemory   QdrantMode = "memory"
	QdrantEmbedded QdrantMode = "embedded"
	QdrantRemote   QdrantMode = "remote"
)

// BuildBudget bounds a single build run.
type BuildBudget struct {
	MaxDurationSeconds int `yaml:"max_duration_seconds"`
	MaxMemoryMB        int `yaml:"max_memory_mb"`
}

// IncrementalConfig configures the rebuild cache (§4.7) and the global L1
// IR cache's per-project soft quota (§5).
type IncrementalConfig struct {
	Enabled                  bool  `yaml:"enabled"`
	CacheTTLSeconds          int   `yaml:"cache_ttl_s"`
	MaxEntries               int   `yaml:"max_entries"`
	PerProjectSoftLimitBytes int64 `yaml:"per_project_soft_limit_bytes"`
}

// ModesConfig configures the mode controller (§4.8).
type ModesConfig struct {
	BalancedIdleMinutes   int  `yaml:"balanced_idle_minutes"`
	StartupIntegrityCheck bool `yaml:"startup_integrity_check"`
}

// Config is the full project configuration, loaded from a YAML file and
// overlaid with `.env` / process environment variables.
type Config struct {
	Profile          Profile           `yaml:"profile"`
	QdrantMode       QdrantMode        `yaml:"qdrant_mode"`
	MaxFileSizeBytes int64             `yaml:"max_file_size_bytes"`
	ParserLazyLoad   bool              `yaml:"parser_lazy_load"`
	ParallelWorkers  int               `yaml:"parallel_workers"`
	BuildBudget      BuildBudget       `yaml:"build_budget"`
	Incremental      IncrementalConfig `yaml:"incremental"`
	Modes            ModesConfig       `yaml:"modes"`
}

// Default returns the configuration used when no project file is present.
func Default() *Config {
	return &Config{
		Profile:          ProfileLocal,
		QdrantMode:       QdrantMemory,
		MaxFileSizeBytes: 2 * 1024 * 1024,
		ParserLazyLoad:   true,
		ParallelWorkers:  4,
		BuildBudget: BuildBudget{
			MaxDurationSeconds: 120,
			MaxMemoryMB:        2048,
		},
		Incremental: IncrementalConfig{
			Enabled:                  true,
			CacheTTLSeconds:          600,
			MaxEntries:               1000,
			PerProjectSoftLimitBytes: 300 * 1024,
		},
		Modes: ModesConfig{
			BalancedIdleMinutes:   5,
			StartupIntegrityCheck: true,
		},
	}
}

// Load reads the YAML config at path, falling back to Default() when the
// file does not exist, then overlays envFile (if non-empty, loaded via
// godotenv) and the process environment on top.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays CODEINTEL_* environment variables on top of
// whatever Load already read from YAML/defaults.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CODEINTEL_PROFILE"); v != "" {
		c.Profile = Profile(v)
	}
	if v := os.Getenv("CODEINTEL_QDRANT_MODE"); v != "" {
		c.QdrantMode = QdrantMode(v)
	}
	if v := os.Getenv("CODEINTEL_MAX_FILE_SIZE_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxFileSizeBytes = n
		}
	}
	if v := os.Getenv("CODEINTEL_PARALLEL_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ParallelWorkers = n
		}
	}
	if v := os.Getenv("CODEINTEL_INCREMENTAL_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Incremental.Enabled = b
		}
	}
}

// IdleThreshold returns modes.balanced_idle_minutes as a time.Duration,
// consumed by internal/mode.NewIdleDetector.
func (c *Config) IdleThreshold() time.Duration {
	return time.Duration(c.Modes.BalancedIdleMinutes) * time.Minute
}

// RebuildCacheTTL returns incremental.cache_ttl_s as a time.Duration,
// consumed by internal/incremental.NewRebuildCache.
func (c *Config) RebuildCacheTTL() time.Duration {
	return time.Duration(c.Incremental.CacheTTLSeconds) * time.Second
}

// Save writes the configuration back to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
