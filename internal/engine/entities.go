// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"strings"

	"github.com/codeintel-oss/engine/internal/ir"
	"github.com/codeintel-oss/engine/internal/taint"
)

// ExtractEntities projects every call-expression node in snap into a
// taint.Entity and records the FQN of the function/method each entity
// lives inside, for internal/interproc.NewAnalyzer's entityOwner
// parameter. Grounded on the expr_kind/call_name Attrs convention every
// internal/lang/* plugin emits for call expressions (structural.go's
// walkCallsInBody and its Python/TypeScript equivalents).
func ExtractEntities(snap *ir.Snapshot) ([]taint.Entity, map[string]string) {
	ownerFQN := make(map[string]string, 256)
	for _, n := range snap.AllNodes() {
		if n.Kind == ir.NodeFunction || n.Kind == ir.NodeMethod {
			ownerFQN[n.ID] = n.FQN
		}
	}

	var entities []taint.Entity
	owner := make(map[string]string, 256)

	for _, n := range snap.AllNodes() {
		if n.Kind != ir.NodeExpression {
			continue
		}
		switch n.StringAttr("expr_kind") {
		case "call":
			e := entityForCall(n)
			entities = append(entities, e)
			if fqn, ok := ownerFQN[n.ParentID]; ok {
				owner[e.ID] = fqn
			}
		}
	}

	return entities, owner
}

// ApplyTaintTags stamps each matched node's `taint_tags` attribute from its
// rule's declared Tags (falling back to the rule's Kind when a rule carries
// no tags of its own), so `internal/query`'s Source/Sink selectors have
// something to match against. Run after internal/taint.Matcher.Match,
// since it needs the AtomMatch -> NodeID mapping that produces.
func ApplyTaintTags(snap *ir.Snapshot, matches []taint.AtomMatch, rules map[string]taint.AtomRule) {
	nodeByID := make(map[string]*ir.Node, 256)
	for _, n := range snap.AllNodes() {
		nodeByID[n.ID] = n
	}

	for _, m := range matches {
		n, ok := nodeByID[m.NodeID]
		if !ok {
			continue
		}
		rule, ok := rules[m.RuleID]
		if !ok {
			continue
		}
		tags := rule.Tags
		if len(tags) == 0 {
			tags = []string{string(rule.Kind)}
		}
		existing, _ := n.Attr("taint_tags")
		merged, _ := existing.([]string)
		for _, t := range tags {
			merged = appendTagUnique(merged, t)
		}
		n.SetAttr("taint_tags", merged)
	}
}

func appendTagUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

// entityForCall splits a call expression's recorded call_name on its last
// "." so "db.Query" becomes BaseType "db" / CallName "Query" (the shape
// internal/taint.MatchClause expects), matching the teacher pack's
// receiver/method split rather than treating the dotted text as one atom.
func entityForCall(n *ir.Node) taint.Entity {
	qualified := n.StringAttr("call_name")
	baseType, callName := qualified, ""
	if idx := strings.LastIndex(qualified, "."); idx >= 0 {
		baseType, callName = qualified[:idx], qualified[idx+1:]
	} else {
		callName = qualified
		baseType = ""
	}
	return taint.Entity{
		ID:            n.ID,
		Kind:          taint.EntityCall,
		BaseType:      baseType,
		CallName:      callName,
		Args:          callArgs(n),
		QualifiedCall: qualified,
		NodeID:        n.ID,
	}
}

// callArgs reads the "args" attribute every internal/lang/* plugin's
// walkCalls/walkCallsInBody now records on a call Expression node (the
// source text of each argument expression), for internal/taint.MatchClause's
// args/constraints clauses.
func callArgs(n *ir.Node) []string {
	v, ok := n.Attr("args")
	if !ok {
		return nil
	}
	args, _ := v.([]string)
	return args
}
