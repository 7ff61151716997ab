// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package semantic

import (
	"testing"

	"github.com/codeintel-oss/engine/internal/ir"
)

func TestCFGBuilderBranchAndSeal(t *testing.T) {
	doc := &ir.IRDocument{FilePath: "a.go", Language: ir.LangGo}
	b := NewCFGBuilder(doc, "func:f", "pkg.f", "a.go", ir.LangGo)

	cond := b.AddBlock(BlockBranch, ir.Span{StartLine: 2, EndLine: 2})
	b.Link(b.EntryID(), cond, ir.CFGNormal, true)

	trueArm := b.AddBlock(BlockNormal, ir.Span{StartLine: 3, EndLine: 3})
	falseArm := b.AddBlock(BlockNormal, ir.Span{StartLine: 5, EndLine: 5})
	b.Link(cond, trueArm, ir.CFGTrueBranch, false)
	b.Link(cond, falseArm, ir.CFGFalseBranch, false)

	merge := b.AddBlock(BlockNormal, ir.Span{StartLine: 6, EndLine: 6})
	b.Link(trueArm, merge, ir.CFGNormal, false)
	b.Link(falseArm, merge, ir.CFGNormal, true)
	b.Seal()

	var cfgEdges []ir.Edge
	for _, e := range doc.Edges {
		if e.Kind == ir.EdgeCFG {
			cfgEdges = append(cfgEdges, e)
		}
	}
	// entry->cond, cond->true, cond->false, true->merge, false->merge, merge->exit
	if len(cfgEdges) != 6 {
		t.Fatalf("expected 6 CFG edges, got %d", len(cfgEdges))
	}

	sawExit := false
	for _, e := range cfgEdges {
		if e.TargetID == b.ExitID() {
			sawExit = true
		}
	}
	if !sawExit {
		t.Fatalf("expected Seal to link the merge block to exit")
	}

	var blockNodes int
	for _, n := range doc.Nodes {
		if n.Kind == ir.NodeBlock {
			blockNodes++
		}
	}
	if blockNodes != 6 {
		t.Fatalf("expected 6 block nodes (entry, exit, cond, true, false, merge), got %d", blockNodes)
	}
}

func TestDFGEmitterSkipsOutOfScopeRead(t *testing.T) {
	doc := &ir.IRDocument{FilePath: "a.py", Language: ir.LangPython}
	scope := NewScopeStack("module")
	scope.Declare("user", "node:user")
	emitter := NewDFGEmitter(doc, scope, "func:handler")

	if !emitter.Read("user", nil) {
		t.Fatalf("expected in-scope read to emit")
	}
	if emitter.Read("ghost", nil) {
		t.Fatalf("expected out-of-scope read to be skipped")
	}

	var reads int
	for _, e := range doc.Edges {
		if e.Kind == ir.EdgeReads {
			reads++
		}
	}
	if reads != 1 {
		t.Fatalf("expected exactly 1 Reads edge, got %d", reads)
	}
}
