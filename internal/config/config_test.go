// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Profile != ProfileLocal {
		t.Fatalf("expected default profile %q, got %q", ProfileLocal, cfg.Profile)
	}
	if cfg.ParallelWorkers != 4 {
		t.Fatalf("expected default parallel_workers 4, got %d", cfg.ParallelWorkers)
	}
}

func TestLoadParsesYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	yamlBody := []byte(`
profile: prod
qdrant_mode: remote
parallel_workers: 16
incremental:
  enabled: false
  cache_ttl_s: 120
`)
	if err := os.WriteFile(path, yamlBody, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Profile != ProfileProd {
		t.Fatalf("expected profile prod, got %q", cfg.Profile)
	}
	if cfg.QdrantMode != QdrantRemote {
		t.Fatalf("expected qdrant_mode remote, got %q", cfg.QdrantMode)
	}
	if cfg.ParallelWorkers != 16 {
		t.Fatalf("expected parallel_workers 16, got %d", cfg.ParallelWorkers)
	}
	if cfg.Incremental.Enabled {
		t.Fatalf("expected incremental.enabled false")
	}
	if cfg.Incremental.CacheTTLSeconds != 120 {
		t.Fatalf("expected cache_ttl_s 120, got %d", cfg.Incremental.CacheTTLSeconds)
	}
	// Untouched defaults should survive partial overrides.
	if cfg.Incremental.MaxEntries != 1000 {
		t.Fatalf("expected default max_entries to survive partial yaml, got %d", cfg.Incremental.MaxEntries)
	}
}

func TestEnvOverrideWinsOverYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte("parallel_workers: 8\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("CODEINTEL_PARALLEL_WORKERS", "32")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ParallelWorkers != 32 {
		t.Fatalf("expected env override to win with 32, got %d", cfg.ParallelWorkers)
	}
}

func TestIdleThresholdAndRebuildCacheTTLConversions(t *testing.T) {
	cfg := Default()
	cfg.Modes.BalancedIdleMinutes = 5
	cfg.Incremental.CacheTTLSeconds = 600

	if got := cfg.IdleThreshold(); got.Minutes() != 5 {
		t.Fatalf("expected 5m idle threshold, got %v", got)
	}
	if got := cfg.RebuildCacheTTL(); got.Seconds() != 600 {
		t.Fatalf("expected 600s rebuild cache TTL, got %v", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Profile = ProfileDev
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := Load(path, "")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Profile != ProfileDev {
		t.Fatalf("expected profile dev after round trip, got %q", reloaded.Profile)
	}
}
