// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package semantic

import "github.com/codeintel-oss/engine/internal/ir"

// DFGEmitter appends Reads/Writes edges from an owning function/method to
// the variable nodes it touches, resolved through a ScopeStack. Grounded
// on spec §4.4's rule that variable identity comes from scope lookup and
// an out-of-scope reference emits nothing rather than a best-effort guess.
type DFGEmitter struct {
	doc      *ir.IRDocument
	scope    *ScopeStack
	ownerID  string
}

// NewDFGEmitter binds a DFG emitter to one function/method's scope chain.
func NewDFGEmitter(doc *ir.IRDocument, scope *ScopeStack, ownerID string) *DFGEmitter {
	return &DFGEmitter{doc: doc, scope: scope, ownerID: ownerID}
}

// Read emits a Reads edge from the owner to name's declaring node, if
// name resolves in the current scope chain. Returns false when nothing
// was emitted (out of scope).
func (e *DFGEmitter) Read(name string, span *ir.Span) bool {
	b, ok := e.scope.Lookup(name)
	if !ok {
		return false
	}
	e.doc.Edges = append(e.doc.Edges, ir.NewEdge(ir.EdgeReads, e.ownerID, b.NodeID, span))
	return true
}

// Write emits a Writes edge from the owner to name's declaring node.
func (e *DFGEmitter) Write(name string, span *ir.Span) bool {
	b, ok := e.scope.Lookup(name)
	if !ok {
		return false
	}
	e.doc.Edges = append(e.doc.Edges, ir.NewEdge(ir.EdgeWrites, e.ownerID, b.NodeID, span))
	return true
}
