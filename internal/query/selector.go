// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package query implements the path/flow algebra over a built Snapshot
// (spec §4.6): node selectors, edge selectors with traversal modifiers,
// and budget-bounded existential/universal path search. No direct teacher
// analog exists — the teacher exposes taint detection through a Python
// rule DSL executed out of process; this package is grounded on
// dsl/dataflow_executor.go's BFS/path-finding shape (findPath,
// pathHasSanitizer) generalized into a reusable Go query algebra.
package query

import (
	"path"
	"strings"

	"github.com/codeintel-oss/engine/internal/ir"
)

// SelectorKind names the closed set of node selectors spec §4.6 defines.
type SelectorKind string

const (
	SelVar    SelectorKind = "Var"
	SelFunc   SelectorKind = "Func"
	SelCall   SelectorKind = "Call"
	SelBlock  SelectorKind = "Block"
	SelClass  SelectorKind = "Class"
	SelModule SelectorKind = "Module"
	SelSource SelectorKind = "Source"
	SelSink   SelectorKind = "Sink"
	SelField  SelectorKind = "Field"
	SelAny    SelectorKind = "Any"
)

// Selector matches a set of nodes in a built snapshot index.
type Selector struct {
	Kind      SelectorKind
	Name      string // exact or glob pattern, per Kind
	FieldObj  string // only for SelField: the object-side name
	FieldName string // only for SelField: the field name
	Category  string // only for SelSource/SelSink: taint atom category/tag
}

// Var, Func, Call, Block, Class selectors by exact name.
func Var(name string) Selector   { return Selector{Kind: SelVar, Name: name} }
func Func(name string) Selector  { return Selector{Kind: SelFunc, Name: name} }
func Call(name string) Selector  { return Selector{Kind: SelCall, Name: name} }
func Block(name string) Selector { return Selector{Kind: SelBlock, Name: name} }
func Class(name string) Selector { return Selector{Kind: SelClass, Name: name} }

// Module selects by a glob pattern over module/file FQN.
func Module(pattern string) Selector { return Selector{Kind: SelModule, Name: pattern} }

// Source/Sink select by taint atom category (matched against a node's
// `taint_tags` attribute, populated from internal/taint.AtomMatch).
func Source(category string) Selector { return Selector{Kind: SelSource, Category: category} }
func Sink(category string) Selector   { return Selector{Kind: SelSink, Category: category} }

// Field selects a property-read Expression node by (object, field) pair.
func Field(obj, field string) Selector {
	return Selector{Kind: SelField, FieldObj: obj, FieldName: field}
}

// AnySelector matches every node, the identity selector for `.via(ALL)`
// style broad searches.
var AnySelector = Selector{Kind: SelAny}

// Matches reports whether n satisfies the selector.
func (s Selector) Matches(n *ir.Node) bool {
	switch s.Kind {
	case SelAny:
		return true
	case SelVar:
		return n.Kind == ir.NodeVariable && n.Name == s.Name
	case SelFunc:
		return n.Kind == ir.NodeFunction && n.Name == s.Name
	case SelCall:
		return n.Kind == ir.NodeExpression && n.StringAttr("expr_kind") == "call" && n.StringAttr("call_name") == s.Name
	case SelBlock:
		return n.Kind == ir.NodeBlock && n.StringAttr("block_kind") == s.Name
	case SelClass:
		return n.Kind == ir.NodeClass && n.Name == s.Name
	case SelModule:
		ok, _ := path.Match(s.Name, n.FQN)
		return (n.Kind == ir.NodeModule || n.Kind == ir.NodeFile) && ok
	case SelSource, SelSink:
		tags, _ := n.Attr("taint_tags")
		list, _ := tags.([]string)
		for _, t := range list {
			if t == s.Category {
				return true
			}
		}
		return false
	case SelField:
		return n.Kind == ir.NodeExpression && n.StringAttr("expr_kind") == "field_read" &&
			n.StringAttr("field_object") == s.FieldObj && n.StringAttr("field_name") == s.FieldName
	default:
		return false
	}
}

// matchesGlobName is a helper selectors can use for wildcard name matching.
func matchesGlobName(pattern, name string) bool {
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == name
	}
	ok, _ := path.Match(pattern, name)
	return ok
}
