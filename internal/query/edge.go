// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package query

import "github.com/codeintel-oss/engine/internal/ir"

// EdgeSelector names which ir.EdgeKind(s) a traversal may follow, plus
// direction/depth modifiers (spec §4.6: "DFG, CFG, CALL, ALL, plus
// .backward() and .depth(max, min=1); union with |").
type EdgeSelector struct {
	Kinds     []ir.EdgeKind
	Backward  bool
	MaxDepth  int // 0 means unbounded (still subject to the query Budget)
	MinDepth  int
}

// DFG, CFG, CALL, ALL are the base edge selectors spec §4.6 names.
var (
	DFG  = EdgeSelector{Kinds: []ir.EdgeKind{ir.EdgeDFG, ir.EdgeReads, ir.EdgeWrites}}
	CFG  = EdgeSelector{Kinds: []ir.EdgeKind{ir.EdgeCFG}}
	CALL = EdgeSelector{Kinds: []ir.EdgeKind{ir.EdgeCalls}}
	ALL  = EdgeSelector{Kinds: []ir.EdgeKind{
		ir.EdgeContains, ir.EdgeCalls, ir.EdgeImports, ir.EdgeReferences,
		ir.EdgeReads, ir.EdgeWrites, ir.EdgeInherits, ir.EdgeImplements,
		ir.EdgeThrows, ir.EdgeReturns, ir.EdgeYields, ir.EdgeDFG, ir.EdgeCFG,
	}}
)

// Or unions two edge selectors' kind sets, modeling spec §4.6's `|`.
func (e EdgeSelector) Or(other EdgeSelector) EdgeSelector {
	kinds := append(append([]ir.EdgeKind{}, e.Kinds...), other.Kinds...)
	return EdgeSelector{Kinds: dedupKinds(kinds), Backward: e.Backward, MaxDepth: e.MaxDepth, MinDepth: e.MinDepth}
}

// Backwards returns a copy that traverses edges target-to-source.
func (e EdgeSelector) Backwards() EdgeSelector {
	e.Backward = true
	return e
}

// Depth bounds traversal to [min, max] hops.
func (e EdgeSelector) Depth(max int, min int) EdgeSelector {
	e.MaxDepth = max
	e.MinDepth = min
	return e
}

func (e EdgeSelector) has(kind ir.EdgeKind) bool {
	for _, k := range e.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func dedupKinds(kinds []ir.EdgeKind) []ir.EdgeKind {
	seen := make(map[ir.EdgeKind]bool, len(kinds))
	var out []ir.EdgeKind
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
