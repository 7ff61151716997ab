// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"encoding/json"

	"github.com/codeintel-oss/engine/internal/incremental"
	"github.com/codeintel-oss/engine/internal/ir"
)

// SymbolHashes derives a incremental.SymbolHash per Function/Method node in
// a built snapshot, keyed by FQN. The signature hash covers everything a
// caller observes from outside the symbol (name, parameter and return-type
// attrs, visibility, async-ness); the body hash covers all of the node's
// attributes plus its span. Neither the structural IR nor the parser
// plugins retain the original byte ranges for a symbol's signature and
// body separately, so this is a proxy over the structural attrs a
// Function/Method node already carries rather than a byte-for-byte slice
// of source text. Because the body hash also covers the signature attrs,
// a body-only change moves only the body hash while a signature change
// moves both; Classify checks the signature hash first, so the latter
// still classifies as SignatureChange.
func SymbolHashes(snap *ir.Snapshot) map[string]incremental.SymbolHash {
	out := make(map[string]incremental.SymbolHash)
	for _, n := range snap.AllNodes() {
		if n.Kind != ir.NodeFunction && n.Kind != ir.NodeMethod {
			continue
		}
		if n.FQN == "" {
			continue
		}
		sig, body := signatureAndBodyBytes(n)
		out[n.FQN] = incremental.HashSymbol(n.FQN, sig, body)
	}
	return out
}

func signatureAndBodyBytes(n *ir.Node) (signature, body []byte) {
	sigAttrs := map[string]any{
		"name":       n.Name,
		"kind":       n.Kind,
		"params":     n.Attrs["params"],
		"return":     n.Attrs["return_type"],
		"visibility": n.Attrs["visibility"],
		"is_async":   n.Attrs["is_async"],
	}
	sig, _ := json.Marshal(sigAttrs)

	bodyAttrs := map[string]any{"attrs": n.Attrs, "span": n.Span}
	bod, _ := json.Marshal(bodyAttrs)
	return sig, bod
}

// ReverseDeps builds the caller-of graph incremental.BuildPlan walks to
// propagate a signature change to every referrer, from the same resolved
// Calls edges internal/interproc consumes for its call index.
func ReverseDeps(snap *ir.Snapshot) incremental.ReverseDepGraph {
	fqnByNodeID := make(map[string]string)
	for _, n := range snap.AllNodes() {
		if n.Kind == ir.NodeFunction || n.Kind == ir.NodeMethod {
			fqnByNodeID[n.ID] = n.FQN
		}
	}

	revDeps := make(incremental.ReverseDepGraph)
	for _, e := range snap.AllEdges() {
		if e.Kind != ir.EdgeCalls {
			continue
		}
		caller, ok1 := fqnByNodeID[e.SourceID]
		callee, ok2 := fqnByNodeID[e.TargetID]
		if !ok1 || !ok2 {
			continue
		}
		revDeps[callee] = appendUnique(revDeps[callee], caller)
	}
	return revDeps
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
