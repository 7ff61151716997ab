// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package interproc builds per-function taint summaries from intra-
// procedural AtomMatch results and BFS's the call graph to connect
// declared sources to declared sinks across function boundaries (spec
// §4.6 "Interprocedural taint"). Grounded on the teacher's
// core.TaintSummary (graph/callgraph/core/taint_summary.go) and
// builder/taint.go's per-function summary pass, replacing its Python-AST
// def-use chain step with a lookup against already-matched
// internal/taint.AtomMatch results.
package interproc

// FunctionSummary is the interprocedural contract for one function: which
// parameters taint propagates through, and whether its return value
// carries taint. Grounded on core.TaintSummary's TaintedParams/
// TaintedReturn fields, narrowed to what BFS needs (spec §4.6 names
// exactly {name, tainted_params, return_tainted, confidence}).
type FunctionSummary struct {
	Name          string
	TaintedParams map[int]bool
	ReturnTainted bool
	Confidence    float64
}

// NewFunctionSummary starts an empty summary for fqn.
func NewFunctionSummary(fqn string) *FunctionSummary {
	return &FunctionSummary{Name: fqn, TaintedParams: make(map[int]bool)}
}

// MarkParamTainted records that calling this function with tainted data in
// argument position idx propagates taint, keeping the highest observed
// confidence across repeated markings.
func (s *FunctionSummary) MarkParamTainted(idx int, confidence float64) {
	s.TaintedParams[idx] = true
	if confidence > s.Confidence {
		s.Confidence = confidence
	}
}

// MarkReturnTainted records that this function's return value is tainted.
func (s *FunctionSummary) MarkReturnTainted(confidence float64) {
	s.ReturnTainted = true
	if confidence > s.Confidence {
		s.Confidence = confidence
	}
}
