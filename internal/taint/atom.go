// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package taint implements the Taint Rule Compiler & Matcher (TRCR):
// loading declarative atom YAML, inferring tier/candidate plans, and
// matching compiled rules against IR entities. Grounded on the teacher's
// graph/callgraph/analysis/taint/analyzer.go (forward taint state machine)
// and dsl/call_matcher.go (clause evaluation), generalized from the
// teacher's hardcoded source/sink string lists into the compiled-rule
// pipeline spec §4.5 and §9 describe.
package taint

// AtomKind classifies what a compiled rule detects.
type AtomKind string

const (
	KindSource     AtomKind = "source"
	KindSink       AtomKind = "sink"
	KindSanitizer  AtomKind = "sanitizer"
	KindPropagator AtomKind = "propagator"
)

// Severity mirrors the atom YAML's severity field (spec §6).
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Tier is a specificity class governing which candidate-generation
// strategies are legal for a rule (spec §4.5, §9's closed-enum guidance).
type Tier string

const (
	Tier1 Tier = "tier1"
	Tier2 Tier = "tier2"
	Tier3 Tier = "tier3"
)

// ArgConstraintKind names the argument constraint forms the atom YAML
// schema allows (spec §6).
type ArgConstraintKind string

const (
	ArgConst         ArgConstraintKind = "const"
	ArgNotConst      ArgConstraintKind = "not_const"
	ArgStringLiteral ArgConstraintKind = "string_literal"
)

// Constraints narrows a match clause beyond type/call/read shape.
type Constraints struct {
	ArgType ArgConstraintKind
}

// MatchClause is one OR-branch of an atom's match criteria (spec §6).
// At most one of BaseType/BaseTypePattern, and at most one of
// Call/CallPattern, may be set — enforced by compile in loader.go, which
// also rejects a clause with no base_type, call or read criterion.
type MatchClause struct {
	BaseType        string
	BaseTypePattern string
	Call            string
	CallPattern     string
	Read            string
	Args            []int
	Constraints     Constraints
}

// AtomRule is the compiled form of a declarative atom (spec §3).
type AtomRule struct {
	ID          string
	Kind        AtomKind
	Tags        []string
	Severity    Severity
	CWE         []string
	OWASP       string
	Description string
	Match       []MatchClause

	Tier          Tier
	CandidatePlan []CandidateGenerator

	// SourceFile/SourceLine identify where this atom was defined, for
	// compile-error reporting (spec §6 "reported with file/line").
	SourceFile string
	SourceLine int
}
