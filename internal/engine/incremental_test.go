// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/codeintel-oss/engine/internal/incremental"
	"github.com/codeintel-oss/engine/internal/ir"
)

func buildSnapshotWithCall(t *testing.T) *ir.Snapshot {
	t.Helper()
	doc := &ir.IRDocument{RepoID: "repo", FilePath: "handler.go", Language: ir.LangGo}
	caller := ir.Node{ID: "fn:caller", Kind: ir.NodeFunction, FQN: "pkg.Caller", Name: "Caller", Language: ir.LangGo}
	callee := ir.Node{ID: "fn:callee", Kind: ir.NodeFunction, FQN: "pkg.Callee", Name: "Callee", Language: ir.LangGo}
	doc.Nodes = []ir.Node{caller, callee}
	snap := ir.NewSnapshot("repo", "dev")
	snap.AddDocument(doc)
	snap.GlobalEdges = append(snap.GlobalEdges, ir.NewEdge(ir.EdgeCalls, caller.ID, callee.ID, nil))
	return snap
}

func TestSymbolHashesCoversEveryFunctionAndMethod(t *testing.T) {
	snap := buildSnapshotWithCall(t)
	hashes := SymbolHashes(snap)
	if len(hashes) != 2 {
		t.Fatalf("expected 2 symbol hashes, got %d", len(hashes))
	}
	if _, ok := hashes["pkg.Caller"]; !ok {
		t.Fatalf("expected hash for pkg.Caller")
	}
	if hashes["pkg.Caller"].SignatureHash == "" || hashes["pkg.Caller"].BodyHash == "" {
		t.Fatalf("expected non-empty signature and body hashes")
	}
}

func TestReverseDepsMapsCalleeToCallers(t *testing.T) {
	snap := buildSnapshotWithCall(t)
	revDeps := ReverseDeps(snap)
	callers := revDeps["pkg.Callee"]
	if len(callers) != 1 || callers[0] != "pkg.Caller" {
		t.Fatalf("expected pkg.Callee's callers to be [pkg.Caller], got %v", callers)
	}
}

func TestSymbolHashesStableAcrossIdenticalSnapshots(t *testing.T) {
	a := SymbolHashes(buildSnapshotWithCall(t))
	b := SymbolHashes(buildSnapshotWithCall(t))
	diffs := incremental.DiffSymbols(a, b)
	for _, d := range diffs {
		if d.Impact != incremental.NoImpact {
			t.Fatalf("expected no impact between identical snapshots, got %+v", d)
		}
	}
}
