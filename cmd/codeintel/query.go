// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/codeintel-oss/engine/internal/config"
	"github.com/codeintel-oss/engine/internal/engine"
	apperrors "github.com/codeintel-oss/engine/internal/errors"
	"github.com/codeintel-oss/engine/internal/metrics"
	"github.com/codeintel-oss/engine/internal/output"
	"github.com/codeintel-oss/engine/internal/query"
)

var (
	fromKindFlag string
	fromNameFlag string
	toKindFlag   string
	toNameFlag   string
	edgesFlag    string
	backwardFlag bool
	maxDepthFlag int
	budgetFlag   string
)

var queryCmd = &cobra.Command{
	Use:   "query <path>",
	Short: "Build the IR for a repository and run a reachability query over it",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&fromKindFlag, "from-kind", "Func", "selector kind: Var, Func, Call, Block, Class, Module, Source, Sink")
	queryCmd.Flags().StringVar(&fromNameFlag, "from-name", "", "selector name or glob pattern")
	queryCmd.Flags().StringVar(&toKindFlag, "to-kind", "Func", "selector kind for the target set")
	queryCmd.Flags().StringVar(&toNameFlag, "to-name", "", "selector name or glob pattern for the target set")
	queryCmd.Flags().StringVar(&edgesFlag, "edges", "call", "comma-separated edge kinds to traverse: dfg, cfg, call, all")
	queryCmd.Flags().BoolVar(&backwardFlag, "backward", false, "traverse edges target-to-source")
	queryCmd.Flags().IntVar(&maxDepthFlag, "max-depth", 0, "override the selected budget's max depth, 0 keeps the preset")
	queryCmd.Flags().StringVar(&budgetFlag, "budget", "default", "query budget preset: light, default, heavy")
}

func runQuery(cmd *cobra.Command, args []string) error {
	repoRoot := args[0]
	logger := output.NewLoggerWithWriter(verbosity(), os.Stderr)

	cfg, err := config.Load(configPathFlag, envFileFlag)
	if err != nil {
		return apperrors.NewIOError("failed loading config", err.Error(), "check --config path and YAML syntax", err)
	}

	reg := engine.NewRegistry()
	logger.StartProgress("Building IR", -1)
	result, err := engine.Build(cmd.Context(), repoRoot, cfg, reg, nil)
	logger.FinishProgress()
	if err != nil {
		return apperrors.NewIOError("build failed", err.Error(), "", err)
	}

	from, err := selectorFor(fromKindFlag, fromNameFlag)
	if err != nil {
		return err
	}
	to, err := selectorFor(toKindFlag, toNameFlag)
	if err != nil {
		return err
	}
	edges, err := edgeSelectorFor(edgesFlag, backwardFlag)
	if err != nil {
		return err
	}
	budget, err := budgetFor(budgetFlag, maxDepthFlag)
	if err != nil {
		return err
	}

	eng := query.NewEngine(result.Snapshot)
	start := time.Now()
	pathSet := eng.Reachable(from, to, edges, budget)
	elapsed := time.Since(start).Seconds()

	if pathSet.BudgetExhausted {
		metrics.QueryAborted()
		return apperrors.NewBudgetError("query exceeded its budget before finishing",
			fmt.Sprintf("%d paths found before %s budget was exhausted", len(pathSet.Paths), budgetFlag),
			"retry with --budget heavy or narrow the selectors")
	}
	metrics.QueryExecuted(elapsed)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pathSet)
}

func selectorFor(kind, name string) (query.Selector, error) {
	switch strings.ToLower(kind) {
	case "var":
		return query.Var(name), nil
	case "func":
		return query.Func(name), nil
	case "call":
		return query.Call(name), nil
	case "block":
		return query.Block(name), nil
	case "class":
		return query.Class(name), nil
	case "module":
		return query.Module(name), nil
	case "source":
		return query.Source(name), nil
	case "sink":
		return query.Sink(name), nil
	default:
		return query.Selector{}, apperrors.NewUsageError("unknown selector kind",
			kind, "use one of Var, Func, Call, Block, Class, Module, Source, Sink")
	}
}

func edgeSelectorFor(spec string, backward bool) (query.EdgeSelector, error) {
	var sel query.EdgeSelector
	first := true
	for _, part := range strings.Split(spec, ",") {
		var next query.EdgeSelector
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "dfg":
			next = query.DFG
		case "cfg":
			next = query.CFG
		case "call":
			next = query.CALL
		case "all":
			next = query.ALL
		default:
			return query.EdgeSelector{}, apperrors.NewUsageError("unknown edge kind",
				part, "use dfg, cfg, call, or all, comma-separated")
		}
		if first {
			sel = next
			first = false
		} else {
			sel = sel.Or(next)
		}
	}
	if backward {
		sel = sel.Backwards()
	}
	return sel, nil
}

func budgetFor(name string, maxDepthOverride int) (query.Budget, error) {
	var b query.Budget
	switch strings.ToLower(name) {
	case "light":
		b = query.BudgetLight
	case "default":
		b = query.BudgetDefault
	case "heavy":
		b = query.BudgetHeavy
	default:
		return query.Budget{}, apperrors.NewUsageError("unknown budget preset",
			name, "use light, default, or heavy")
	}
	if maxDepthOverride > 0 {
		b.MaxDepth = maxDepthOverride
	}
	return b, nil
}
