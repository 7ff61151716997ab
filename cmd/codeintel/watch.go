// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/codeintel-oss/engine/internal/cache"
	"github.com/codeintel-oss/engine/internal/config"
	"github.com/codeintel-oss/engine/internal/engine"
	apperrors "github.com/codeintel-oss/engine/internal/errors"
	"github.com/codeintel-oss/engine/internal/incremental"
	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/mode"
	"github.com/codeintel-oss/engine/internal/output"
)

var (
	watchRulesFlag   string
	watchIntervalSec int
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Rebuild on file changes, throttling analysis depth through the mode controller",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchRulesFlag, "rules", "", "atom rule YAML file or directory (required)")
	watchCmd.Flags().IntVar(&watchIntervalSec, "interval", 2, "seconds between filesystem polls")
	_ = watchCmd.MarkFlagRequired("rules")
}

// runWatch polls the repository tree for content changes rather than
// subscribing to OS file events: no filesystem-notification library
// appears anywhere in the example pack, and this engine's mode controller
// already treats "file saved" as an opaque event (spec §4.8), so polling
// is a legitimate source for it without introducing an unseen dependency.
func runWatch(cmd *cobra.Command, args []string) error {
	repoRoot := args[0]
	logger := output.NewLoggerWithWriter(verbosity(), os.Stderr)

	cfg, err := config.Load(configPathFlag, envFileFlag)
	if err != nil {
		return apperrors.NewIOError("failed loading config", err.Error(), "check --config path and YAML syntax", err)
	}
	rules, err := loadRules(watchRulesFlag)
	if err != nil {
		return err
	}

	idle := mode.NewIdleDetector(cfg.IdleThreshold())
	controller := mode.NewController(idle)
	reg := engine.NewRegistry()

	// Each rebuild is a whole-repository engine.Build; pipeline then works
	// out which symbols the changeset actually touched (spec §4.7), and
	// l1Cache holds the last-known-good IR payload per symbol so an
	// unaffected symbol's node doesn't need re-marshaling on every poll,
	// per spec §5's Global L1 IR Cache.
	pipeline := incremental.NewPipeline(incremental.NewRebuildCache(cfg.Incremental.MaxEntries, cfg.RebuildCacheTTL()), 32)
	l1Cache := cache.New(100000, cfg.Incremental.PerProjectSoftLimitBytes, cache.DefaultFairnessMultiple)
	prevHashes := map[string]incremental.SymbolHash{}

	lastDigest := ""
	ticker := time.NewTicker(time.Duration(watchIntervalSec) * time.Second)
	defer ticker.Stop()

	logger.Progress("Watching %s (interval %ds, idle threshold %s)", repoRoot, watchIntervalSec, cfg.IdleThreshold())
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case <-ticker.C:
			digest, err := treeDigest(repoRoot, cfg.MaxFileSizeBytes)
			if err != nil {
				logger.Warning("digest failed: %v", err)
				continue
			}

			ev := mode.EventIdle
			if digest != lastDigest {
				ev = mode.EventFileSaved
				idle.Touch()
			}
			lastDigest = digest

			current := controller.HandleEvent(ev, true)
			if ev != mode.EventFileSaved {
				continue
			}

			logger.Progress("Change detected, rebuilding in %s mode (%v)", current, current.Layers())
			result, err := engine.Build(cmd.Context(), repoRoot, cfg, reg, rules)
			if err != nil {
				logger.Error("build failed: %v", err)
				continue
			}
			logger.Statistic("%d matches, %d taint paths", len(result.Matches), len(result.Paths))

			nextHashes := engine.SymbolHashes(result.Snapshot)
			revDeps := engine.ReverseDeps(result.Snapshot)
			plan := pipeline.Plan(result.Snapshot.ComputeID(), prevHashes, nextHashes, revDeps)
			logger.Debug("rebuild plan: %d direct, %d transitive", len(plan.Direct), len(plan.Transitive))
			refreshSymbolCache(l1Cache, repoRoot, result.Snapshot, plan)
			prevHashes = nextHashes
		}
	}
}

// refreshSymbolCache writes each Function/Method node's IR payload into the
// L1 cache under its own symbol FQN, skipping nodes the rebuild plan didn't
// touch: an unaffected symbol's previously cached bytes are still the
// current ones, so re-marshaling and re-storing them on every poll would
// only cost cycles without changing what's cached.
func refreshSymbolCache(l1Cache *cache.L1Cache, projectID string, snap *ir.Snapshot, plan *incremental.RebuildPlan) {
	touched := make(map[string]bool, len(plan.Direct)+len(plan.Transitive))
	for id := range plan.Direct {
		touched[id] = true
	}
	for id := range plan.Transitive {
		touched[id] = true
	}

	for _, n := range snap.AllNodes() {
		if n.Kind != ir.NodeFunction && n.Kind != ir.NodeMethod {
			continue
		}
		if n.FQN == "" || !touched[n.FQN] {
			continue
		}
		if payload, err := json.Marshal(n); err == nil {
			l1Cache.Put(projectID, n.FQN, payload)
		}
	}
}

// treeDigest hashes every tracked file's mtime+size, a cheap proxy for
// "something under repoRoot changed" without re-reading file contents on
// every poll.
func treeDigest(repoRoot string, maxFileSizeBytes int64) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "node_modules", "vendor", ".cie", ".codeintel":
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if maxFileSizeBytes > 0 && info.Size() > maxFileSizeBytes {
			return nil
		}
		h.Write([]byte(path))
		h.Write([]byte(info.ModTime().String()))
		fmt.Fprintf(h, "%d", info.Size())
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
