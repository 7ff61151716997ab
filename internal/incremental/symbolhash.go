// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package incremental implements the rebuild pipeline described in spec
// §4.7: per-symbol hashing, impact classification against a previous
// snapshot, transitive invalidation through the reverse-dependency graph,
// and a content-hash-keyed rebuild cache. Grounded on the teacher's
// graph/callgraph (for the reverse-dependency walk shape) and on
// kraklabs-cie's pkg/ingestion package for the restart/delta-detection
// idiom (atomic checkpoint persistence, git-delta-style change buckets).
package incremental

import (
	"sort"

	"github.com/codeintel-oss/engine/internal/ir"
)

// SymbolHash is the unit of change detection for one symbol (function,
// method, class, module-level declaration). signature_hash covers the
// symbol's externally visible contract (name, params, return type);
// body_hash covers everything else; impact_hash is the combination used
// as the RebuildCache changeset key.
type SymbolHash struct {
	SymbolID      string
	SignatureHash string
	BodyHash      string
	ImpactHash    string
}

// HashSymbol derives a SymbolHash from a symbol ID plus the signature and
// body bytes the caller supplies (engine.SymbolHashes passes JSON
// encodings of a node's structural attrs, not raw source text).
func HashSymbol(symbolID string, signature, body []byte) SymbolHash {
	sig := ir.ContentDigest(signature)
	bod := ir.ContentDigest(body)
	impact := ir.ContentDigest([]byte(sig + "|" + bod))
	return SymbolHash{
		SymbolID:      symbolID,
		SignatureHash: sig,
		BodyHash:      bod,
		ImpactHash:    impact,
	}
}

// SortedChangesetKey produces the cache key for a set of SymbolHashes: the
// sorted impact hashes joined, so two logically identical changesets in
// different discovery orders collide by design (spec §4.7).
func SortedChangesetKey(snapshotID string, hashes []SymbolHash) string {
	keys := make([]string, len(hashes))
	for i, h := range hashes {
		keys[i] = h.SymbolID + "=" + h.ImpactHash
	}
	sort.Strings(keys)
	joined := snapshotID
	for _, k := range keys {
		joined += "|" + k
	}
	return ir.ContentDigest([]byte(joined))
}
