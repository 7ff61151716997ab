// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package semantic

import "github.com/codeintel-oss/engine/internal/ir"

// ArgKind classifies a call argument at the expression-entity level, for
// TRCR's arg_type constraint (spec §4.5, §4.4 "argument indices/kinds").
type ArgKind string

const (
	ArgLiteral  ArgKind = "literal"
	ArgVariable ArgKind = "variable"
	ArgCall     ArgKind = "call"
	ArgUnknown  ArgKind = "unknown"
)

// ExpressionInfo enriches a structural Expression node (an unresolved or
// resolved call, or a property read) with the type-inference result spec
// §4.4 calls for: "entities for calls and property reads, carrying
// receiver base-type ... and argument indices/kinds."
type ExpressionInfo struct {
	NodeID     string
	BaseType   string
	ArgKinds   []ArgKind
}

// Annotate writes inferred base-type/arg-kind information onto an existing
// Expression node's Attrs, looked up by ID. A no-op if the node is missing
// (the caller raced a document that dropped it — defensive, not expected).
func Annotate(doc *ir.IRDocument, info ExpressionInfo) {
	node, ok := doc.NodeByID(info.NodeID)
	if !ok {
		return
	}
	if info.BaseType != "" {
		node.SetAttr("base_type", info.BaseType)
	}
	if len(info.ArgKinds) > 0 {
		kinds := make([]string, len(info.ArgKinds))
		for i, k := range info.ArgKinds {
			kinds[i] = string(k)
		}
		node.SetAttr("arg_kinds", kinds)
	}
}

// ClassifyArgKind makes a syntax-only guess at an argument's kind from its
// literal source text, used when full type inference has not run (Fast
// mode, spec §4.6's build profiles).
func ClassifyArgKind(text string) ArgKind {
	if text == "" {
		return ArgUnknown
	}
	switch text[0] {
	case '"', '\'', '`':
		return ArgLiteral
	}
	if isDigit(text[0]) {
		return ArgLiteral
	}
	if containsCallParen(text) {
		return ArgCall
	}
	return ArgVariable
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func containsCallParen(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '(' {
			return true
		}
	}
	return false
}
