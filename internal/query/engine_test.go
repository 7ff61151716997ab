// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"testing"

	"github.com/codeintel-oss/engine/internal/ir"
)

func sampleSnapshot() *ir.Snapshot {
	doc := &ir.IRDocument{FilePath: "a.go", Language: ir.LangGo}
	doc.Nodes = []ir.Node{
		{ID: "f1", Kind: ir.NodeFunction, Name: "handler"},
		{ID: "f2", Kind: ir.NodeFunction, Name: "query"},
		{ID: "f3", Kind: ir.NodeFunction, Name: "execute"},
	}
	doc.Edges = []ir.Edge{
		ir.NewEdge(ir.EdgeCalls, "f1", "f2", nil),
		ir.NewEdge(ir.EdgeCalls, "f2", "f3", nil),
	}
	snap := ir.NewSnapshot("repo", "test")
	snap.AddDocument(doc)
	return snap
}

func TestReachableFindsMultiHopPath(t *testing.T) {
	snap := sampleSnapshot()
	e := NewEngine(snap)
	result := e.Reachable(Func("handler"), Func("execute"), CALL, BudgetDefault)
	if result.BudgetExhausted {
		t.Fatalf("did not expect budget exhaustion")
	}
	if len(result.Paths) != 1 {
		t.Fatalf("expected exactly 1 path, got %d: %+v", len(result.Paths), result.Paths)
	}
	if got := result.Paths[0].NodeIDs; len(got) != 3 || got[0] != "f1" || got[2] != "f3" {
		t.Fatalf("expected path f1->f2->f3, got %v", got)
	}
}

func TestReachableRespectsMaxDepthBudget(t *testing.T) {
	snap := sampleSnapshot()
	e := NewEngine(snap)
	tight := Budget{MaxNodes: 100, MaxEdges: 100, MaxPaths: 10, MaxDepth: 1}
	result := e.Reachable(Func("handler"), Func("execute"), CALL, tight)
	if len(result.Paths) != 0 {
		t.Fatalf("expected no path within depth 1, got %+v", result.Paths)
	}
	if !result.BudgetExhausted {
		t.Fatalf("expected a max_depth cutoff to report budget_exhausted")
	}
}

func TestReachableZeroBudgetReportsExhausted(t *testing.T) {
	snap := sampleSnapshot()
	e := NewEngine(snap)
	result := e.Reachable(Func("handler"), Func("execute"), CALL, Budget{})
	if len(result.Paths) != 0 {
		t.Fatalf("expected no paths from a zero budget, got %+v", result.Paths)
	}
	if !result.BudgetExhausted {
		t.Fatalf("expected a zero budget to report budget_exhausted")
	}
}

func TestForallPathsDetectsViolation(t *testing.T) {
	snap := sampleSnapshot()
	e := NewEngine(snap)
	result := e.ForallPaths(Func("handler"), Func("execute"), CALL, BudgetDefault, func(p Path) bool {
		return len(p.NodeIDs) <= 2
	})
	if result.Holds {
		t.Fatalf("expected a 3-node path to violate the <=2-node predicate")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(result.Violations))
	}
}
