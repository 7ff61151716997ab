// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package incremental

import "testing"

func TestClassifyNoImpact(t *testing.T) {
	h := SymbolHash{SymbolID: "app.handler", SignatureHash: "sig1", BodyHash: "body1"}
	if got := Classify(h, h); got != NoImpact {
		t.Fatalf("expected NoImpact, got %v", got)
	}
}

func TestClassifyLocalIR(t *testing.T) {
	prev := SymbolHash{SignatureHash: "sig1", BodyHash: "body1"}
	next := SymbolHash{SignatureHash: "sig1", BodyHash: "body2"}
	if got := Classify(prev, next); got != LocalIR {
		t.Fatalf("expected LocalIR, got %v", got)
	}
}

func TestClassifySignatureChange(t *testing.T) {
	prev := SymbolHash{SignatureHash: "sig1", BodyHash: "body1"}
	next := SymbolHash{SignatureHash: "sig2", BodyHash: "body1"}
	if got := Classify(prev, next); got != SignatureChange {
		t.Fatalf("expected SignatureChange, got %v", got)
	}
}

func TestDiffSymbolsDetectsAdditionsAndRemovals(t *testing.T) {
	prev := map[string]SymbolHash{
		"app.old": {SignatureHash: "s", BodyHash: "b"},
	}
	next := map[string]SymbolHash{
		"app.new": {SignatureHash: "s2", BodyHash: "b2"},
	}
	diffs := DiffSymbols(prev, next)
	if len(diffs) != 2 {
		t.Fatalf("expected 2 diffs (1 add, 1 remove), got %d: %+v", len(diffs), diffs)
	}
	byID := make(map[string]Impact)
	for _, d := range diffs {
		byID[d.SymbolID] = d.Impact
	}
	if byID["app.old"] != StructuralChange {
		t.Fatalf("expected removal to be StructuralChange, got %v", byID["app.old"])
	}
	if byID["app.new"] != StructuralChange {
		t.Fatalf("expected addition to be StructuralChange, got %v", byID["app.new"])
	}
}
