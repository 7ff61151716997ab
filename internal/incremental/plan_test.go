// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package incremental

import "testing"

func TestBuildPlanPropagatesSignatureChangeToCallers(t *testing.T) {
	diffs := []SymbolDiff{
		{SymbolID: "app.build_query", Impact: SignatureChange},
	}
	revDeps := ReverseDepGraph{
		"app.build_query": {"app.handler"},
		"app.handler":     {"app.main"},
	}
	plan := BuildPlan(diffs, revDeps)
	all := plan.AllSymbols()
	want := map[string]bool{"app.build_query": true, "app.handler": true, "app.main": true}
	if len(all) != len(want) {
		t.Fatalf("expected %d symbols in plan, got %d: %v", len(want), len(all), all)
	}
	for _, id := range all {
		if !want[id] {
			t.Fatalf("unexpected symbol %q in plan", id)
		}
	}
}

func TestBuildPlanLocalIRDoesNotPropagate(t *testing.T) {
	diffs := []SymbolDiff{
		{SymbolID: "app.helper", Impact: LocalIR},
	}
	revDeps := ReverseDepGraph{
		"app.helper": {"app.caller"},
	}
	plan := BuildPlan(diffs, revDeps)
	all := plan.AllSymbols()
	if len(all) != 1 || all[0] != "app.helper" {
		t.Fatalf("expected only the LocalIR symbol itself, got %v", all)
	}
}

func TestBuildPlanSkipsNoImpact(t *testing.T) {
	diffs := []SymbolDiff{{SymbolID: "app.unchanged", Impact: NoImpact}}
	plan := BuildPlan(diffs, ReverseDepGraph{})
	if len(plan.AllSymbols()) != 0 {
		t.Fatalf("expected empty plan for a NoImpact-only changeset")
	}
}
