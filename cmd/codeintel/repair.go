// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/codeintel-oss/engine/internal/config"
	"github.com/codeintel-oss/engine/internal/engine"
	apperrors "github.com/codeintel-oss/engine/internal/errors"
	"github.com/codeintel-oss/engine/internal/mode"
	"github.com/codeintel-oss/engine/internal/output"
	"github.com/codeintel-oss/engine/internal/snapshot"
)

var (
	repairRulesFlag string
	repairDBFlag    string
)

var repairCmd = &cobra.Command{
	Use:   "repair <path>",
	Short: "Force a full Repair-mode rebuild and re-verify the snapshot store's integrity",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepair,
}

func init() {
	repairCmd.Flags().StringVar(&repairRulesFlag, "rules", "", "atom rule YAML file or directory (required)")
	repairCmd.Flags().StringVar(&repairDBFlag, "snapshot-db", "", "sqlite snapshot store to repair (required)")
	_ = repairCmd.MarkFlagRequired("rules")
	_ = repairCmd.MarkFlagRequired("snapshot-db")
}

// runRepair drives the mode controller's EventStartup transition directly:
// a schema mismatch or a failed integrity check both mean Repair mode
// (spec §4.8), so this command always enters Repair regardless of what
// SchemaOK reports, then rewrites the store from a clean full rebuild.
func runRepair(cmd *cobra.Command, args []string) error {
	repoRoot := args[0]
	logger := output.NewLoggerWithWriter(verbosity(), os.Stderr)

	cfg, err := config.Load(configPathFlag, envFileFlag)
	if err != nil {
		return apperrors.NewIOError("failed loading config", err.Error(), "check --config path and YAML syntax", err)
	}

	store, err := snapshot.Open(repairDBFlag)
	if err != nil {
		return apperrors.NewIOError("failed opening snapshot store", err.Error(), "", err)
	}
	defer store.Close()

	schemaOK, err := store.SchemaOK()
	if err != nil {
		return apperrors.NewIOError("failed checking snapshot schema", err.Error(), "", err)
	}

	idle := mode.NewIdleDetector(cfg.IdleThreshold())
	controller := mode.NewController(idle)
	current := controller.HandleEvent(mode.EventStartup, schemaOK)
	if current != mode.Repair {
		logger.Progress("Schema is current; forcing Repair mode anyway as requested")
	}

	rules, err := loadRules(repairRulesFlag)
	if err != nil {
		return err
	}

	reg := engine.NewRegistry()
	logger.StartProgress("Repairing snapshot", -1)
	result, err := engine.Build(cmd.Context(), repoRoot, cfg, reg, rules)
	logger.FinishProgress()
	if err != nil {
		return apperrors.NewIOError("repair build failed", err.Error(), "", err)
	}

	if err := persistSnapshot(result, repairDBFlag); err != nil {
		return err
	}

	mismatchID, err := store.VerifyIntegrity(result.Snapshot.ComputeID())
	if err != nil {
		return apperrors.NewIOError("integrity verification failed to run", err.Error(), "", err)
	}
	if mismatchID != "" {
		return apperrors.NewIntegrityError("snapshot failed integrity verification after repair",
			"entity "+mismatchID+" content hash mismatch",
			"delete the snapshot store and run `codeintel repair` again")
	}

	logger.Statistic("Repair complete: %d matches, %d taint paths, snapshot verified", len(result.Matches), len(result.Paths))
	return nil
}
