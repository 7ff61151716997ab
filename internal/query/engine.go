// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"time"

	"github.com/codeintel-oss/engine/internal/ir"
)

// Strategy orders neighbor expansion during a path search. All strategies
// must produce identical result sets for terminating queries (spec §4.6);
// they only affect which paths are found first under a budget that cuts
// the search short.
type Strategy interface {
	// Order returns candidates in the sequence they should be explored.
	Order(idx *Index, candidates []adj) []adj
}

// DepthFirstStrategy is the default: eager depth-first expansion in the
// adjacency list's natural (insertion) order. Grounded on
// dsl/dataflow_executor.go's findPath, a plain recursive DFS over the
// call graph.
type DepthFirstStrategy struct{}

func (DepthFirstStrategy) Order(idx *Index, candidates []adj) []adj { return candidates }

// CostBasedStrategy reorders candidates to expand lower-fanout nodes
// first, cheaply approximating "prefer the path least likely to blow the
// node/edge budget before reaching the target."
type CostBasedStrategy struct{}

func (CostBasedStrategy) Order(idx *Index, candidates []adj) []adj {
	out := append([]adj{}, candidates...)
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && len(idx.forward[out[j-1].other]) > len(idx.forward[out[j].other]) {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

// Engine runs path queries against one indexed snapshot.
type Engine struct {
	idx      *Index
	strategy Strategy
}

// NewEngine builds an engine with the default depth-first strategy.
func NewEngine(snap *ir.Snapshot) *Engine {
	return &Engine{idx: BuildIndex(snap), strategy: DepthFirstStrategy{}}
}

// WithStrategy swaps the execution strategy.
func (e *Engine) WithStrategy(s Strategy) *Engine {
	e.strategy = s
	return e
}

// Reachable answers the existential query `from >> to via edges` (spec
// §4.6): does at least one path exist from any node matching `from` to
// any node matching `to`, following `edges`, within `budget`.
func (e *Engine) Reachable(from, to Selector, edges EdgeSelector, budget Budget) PathSet {
	starts := e.idx.SelectNodes(from)
	goal := make(map[string]bool)
	for _, n := range e.idx.SelectNodes(to) {
		goal[n.ID] = true
	}

	t := newTracker(budget, time.Now())
	var result PathSet
	for _, s := range starts {
		if t.exhausted(time.Now()) {
			result.BudgetExhausted = true
			break
		}
		paths := e.dfs(s.ID, goal, edges, t, budget.MaxDepth)
		result.Paths = append(result.Paths, paths...)
		if len(result.Paths) > 0 && budget.MaxPaths > 0 && len(result.Paths) >= budget.MaxPaths {
			break
		}
	}
	if t.exhausted(time.Now()) {
		result.BudgetExhausted = true
	}
	return result
}

// ForallPaths answers the universal variant: every path from `from`
// matching `to` via `edges` must satisfy `holds`. An exhausted budget
// means the universal claim was never fully checked — Holds is reported
// as false-with-BudgetExhausted rather than vacuously true.
func (e *Engine) ForallPaths(from, to Selector, edges EdgeSelector, budget Budget, holds func(Path) bool) VerificationResult {
	ps := e.Reachable(from, to, edges, budget)
	var violations []Path
	for _, p := range ps.Paths {
		if !holds(p) {
			violations = append(violations, p)
		}
	}
	return VerificationResult{
		Holds:           len(violations) == 0 && !ps.BudgetExhausted,
		Violations:      violations,
		BudgetExhausted: ps.BudgetExhausted,
	}
}

// dfs performs a depth-bounded, budget-tracked depth-first search from
// start to any node in goal, collecting every simple path found.
func (e *Engine) dfs(start string, goal map[string]bool, edges EdgeSelector, t *tracker, maxDepth int) []Path {
	var results []Path
	visiting := map[string]bool{start: true}
	var walk func(nodeID string, nodePath, edgePath []string)
	walk = func(nodeID string, nodePath, edgePath []string) {
		if t.exhausted(time.Now()) {
			return
		}
		if maxDepth > 0 && len(nodePath) > maxDepth {
			t.markTruncated()
			return
		}
		hops := len(nodePath) - 1
		if edges.MaxDepth > 0 && hops > edges.MaxDepth {
			return
		}
		if goal[nodeID] && hops >= 1 && hops >= edges.MinDepth {
			results = append(results, Path{NodeIDs: append([]string{}, nodePath...), EdgeIDs: append([]string{}, edgePath...)})
			t.pathsFound++
			if t.budget.MaxPaths > 0 && t.pathsFound >= t.budget.MaxPaths {
				return
			}
		}
		candidates := e.strategy.Order(e.idx, e.idx.neighbors(nodeID, edges))
		for _, c := range candidates {
			t.edgesSeen++
			if visiting[c.other] {
				continue
			}
			t.nodesSeen++
			visiting[c.other] = true
			walk(c.other, append(nodePath, c.other), append(edgePath, c.edgeID))
			delete(visiting, c.other)
			if t.exhausted(time.Now()) {
				return
			}
		}
	}
	walk(start, []string{start}, nil)
	return results
}
