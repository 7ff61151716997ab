// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
)

// idHashLen is the number of hex characters kept in a short ID. Entity IDs
// are truncated for readability; the full digest is kept separately for
// the snapshot integrity record (see internal/snapshot).
const idHashLen = 16

// NormalizePath makes a file path stable across platforms and call sites:
// forward slashes, no leading "./", no leading "/". This is the foundation
// of content-addressed IDs — two generator runs over identical content must
// hash identical strings regardless of how the path was spelled.
func NormalizePath(path string) string {
	if len(path) >= 2 && path[0:2] == "./" {
		path = path[2:]
	}
	path = filepath.Clean(path)
	path = filepath.ToSlash(path)
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	return path
}

// NodeID computes a stable, content-addressed node ID.
//
// The hash input excludes anything that could vary between otherwise
// identical runs (parse timestamps, file iteration order, node identity)
// and includes everything that distinguishes this node from any other
// node with the same kind/name (span, and — for leaf content like
// constants — the content hash of the construct itself).
func NodeID(kind NodeKind, fqn string, span Span, language Language, contentDigest string) string {
	idStr := fmt.Sprintf("%s|%s|%s|%s|%s", kind, fqn, span.String(), language, contentDigest)
	return fmt.Sprintf("%s:%s", shortHash(idStr), string(kind))
}

// EdgeID computes a stable edge ID from its kind and endpoints. Two edges
// with identical (kind, source, target, span) collapse to the same ID,
// which is intentional: the IR does not model multi-edges.
func EdgeID(kind EdgeKind, sourceID, targetID string, span Span) string {
	idStr := fmt.Sprintf("%s|%s|%s|%s", kind, sourceID, targetID, span.String())
	return fmt.Sprintf("edge:%s", shortHash(idStr))
}

// OccurrenceID computes a stable ID for a textual mention.
func OccurrenceID(filePath string, span Span, role OccurrenceRole) string {
	idStr := fmt.Sprintf("%s|%s|%s", NormalizePath(filePath), span.String(), role)
	return fmt.Sprintf("occ:%s", shortHash(idStr))
}

// ContentDigest hashes arbitrary construct content (a function body's
// source text, for example) and returns the full hex SHA-256 digest.
// Callers pass that full digest to NodeID, which folds it into the input
// of the node's short hash.
func ContentDigest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:idHashLen]
}
