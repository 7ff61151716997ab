// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeintel-oss/engine/internal/config"
	"github.com/codeintel-oss/engine/internal/engine"
	apperrors "github.com/codeintel-oss/engine/internal/errors"
	"github.com/codeintel-oss/engine/internal/output"
	"github.com/codeintel-oss/engine/internal/sarif"
	"github.com/codeintel-oss/engine/internal/snapshot"
	"github.com/codeintel-oss/engine/internal/taint"
)

var (
	rulesFlag      string
	outFlag        string
	snapshotDBFlag string
)

var buildCmd = &cobra.Command{
	Use:   "build <path>",
	Short: "Build the layered IR for a repository and run taint rules over it",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&rulesFlag, "rules", "", "atom rule YAML file or directory (required)")
	buildCmd.Flags().StringVar(&outFlag, "out", "", "SARIF output path, defaults to stdout")
	buildCmd.Flags().StringVar(&snapshotDBFlag, "snapshot-db", "", "persist the snapshot to this sqlite file")
	_ = buildCmd.MarkFlagRequired("rules")
}

func runBuild(cmd *cobra.Command, args []string) error {
	repoRoot := args[0]
	logger := output.NewLoggerWithWriter(verbosity(), os.Stderr)

	cfg, err := config.Load(configPathFlag, envFileFlag)
	if err != nil {
		return apperrors.NewIOError("failed loading config", err.Error(), "check --config path and YAML syntax", err)
	}

	rules, err := loadRules(rulesFlag)
	if err != nil {
		return err
	}
	logger.Statistic("Loaded %d taint rules from %s", len(rules), rulesFlag)

	reg := engine.NewRegistry()
	logger.StartProgress("Building IR", -1)
	result, err := engine.Build(cmd.Context(), repoRoot, cfg, reg, rules)
	logger.FinishProgress()
	if err != nil {
		return apperrors.NewIOError("build failed", err.Error(), "", err)
	}
	logger.Statistic("%d matches, %d taint paths across %d documents",
		len(result.Matches), len(result.Paths), len(result.Snapshot.Documents))

	if snapshotDBFlag != "" {
		if err := persistSnapshot(result, snapshotDBFlag); err != nil {
			return err
		}
	}

	return writeSARIF(result, ruleMap(rules), outFlag)
}

// persistSnapshot stores every node in the built snapshot keyed by its own
// ID under the snapshot's content-addressed ID, so a later `repair` run can
// call Store.VerifyIntegrity against it.
func persistSnapshot(result *engine.Result, dbPath string) error {
	store, err := snapshot.Open(dbPath)
	if err != nil {
		return apperrors.NewIOError("failed opening snapshot store", err.Error(), "", err)
	}
	defer store.Close()

	snapID := result.Snapshot.ComputeID()
	for _, doc := range result.Snapshot.Documents {
		for _, n := range doc.Nodes {
			payload, err := json.Marshal(n)
			if err != nil {
				return apperrors.NewIOError("failed encoding node", err.Error(), "", err)
			}
			if err := store.Put(snapID, n.ID, payload); err != nil {
				return apperrors.NewIOError("failed persisting snapshot entity", err.Error(), "", err)
			}
		}
	}
	return nil
}

func writeSARIF(result *engine.Result, rules map[string]taint.AtomRule, outPath string) error {
	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return apperrors.NewIOError("failed creating SARIF output file", err.Error(), "", err)
		}
		defer f.Close()
		report := sarif.NewReport(result.Snapshot, rules)
		if err := report.Write(f, result.Matches, result.Paths); err != nil {
			return apperrors.NewIOError("failed writing SARIF report", err.Error(), "", err)
		}
		return nil
	}

	report := sarif.NewReport(result.Snapshot, rules)
	if err := report.Write(w, result.Matches, result.Paths); err != nil {
		return apperrors.NewIOError("failed writing SARIF report", err.Error(), "", err)
	}
	return nil
}
