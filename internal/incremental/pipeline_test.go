// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package incremental

import (
	"testing"
	"time"
)

func TestPipelinePlanCacheHitOnIdenticalChangeset(t *testing.T) {
	cache := NewRebuildCache(100, time.Minute)
	p := NewPipeline(cache, 8)

	prev := map[string]SymbolHash{"app.f": {SignatureHash: "s1", BodyHash: "b1"}}
	next := map[string]SymbolHash{"app.f": {SignatureHash: "s1", BodyHash: "b2"}}
	revDeps := ReverseDepGraph{}

	first := p.Plan("snap-1", prev, next, revDeps)
	second := p.Plan("snap-1", prev, next, revDeps)

	if first == nil || second == nil {
		t.Fatalf("expected non-nil plans")
	}
	runs := p.RecentRuns()
	if len(runs) != 2 {
		t.Fatalf("expected 2 audit records, got %d", len(runs))
	}
	if runs[0].CacheHit != true {
		t.Fatalf("expected most recent run to be a cache hit")
	}
	if runs[1].CacheHit != false {
		t.Fatalf("expected first run to be a cache miss")
	}
	if runs[0].RunID == "" || runs[1].RunID == "" || runs[0].RunID == runs[1].RunID {
		t.Fatalf("expected each run to get a distinct RunID, got %+v", runs)
	}
}

func TestPipelineRecentRunsOrderedMostRecentFirst(t *testing.T) {
	cache := NewRebuildCache(100, time.Minute)
	p := NewPipeline(cache, 2)

	revDeps := ReverseDepGraph{}
	p.Plan("snap-1", nil, map[string]SymbolHash{"a": {SignatureHash: "1", BodyHash: "1"}}, revDeps)
	p.Plan("snap-1", nil, map[string]SymbolHash{"b": {SignatureHash: "2", BodyHash: "2"}}, revDeps)
	p.Plan("snap-1", nil, map[string]SymbolHash{"c": {SignatureHash: "3", BodyHash: "3"}}, revDeps)

	runs := p.RecentRuns()
	if len(runs) != 2 {
		t.Fatalf("expected ring buffer capped at 2, got %d", len(runs))
	}
	if _, ok := runs[0].ImpactSummary["structural_change"]; !ok {
		t.Fatalf("expected most recent run's summary to include structural_change, got %+v", runs[0].ImpactSummary)
	}
}
