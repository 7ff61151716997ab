// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package taint

import "fmt"

// GeneratorKind is the closed enum of candidate-generation strategies (spec
// §9: "a tagged-variant design... dispatched in a match. New strategies
// extend the enum, not a plugin loader"). Dispatch lives in Matcher's
// candidatesFor switch rather than behind an interface, so adding a
// strategy is a compile-time-checked enum extension.
type GeneratorKind string

const (
	GenExactTypeCall GeneratorKind = "ExactTypeCall" // O(1) hash on (base_type, call)
	GenExactCall     GeneratorKind = "ExactCall"      // O(1) hash on call
	GenCallPrefix    GeneratorKind = "CallPrefix"     // trie, call_pattern with trailing '*'
	GenTypeSuffix    GeneratorKind = "TypeSuffix"     // trie, base_type_pattern with leading '*'
	GenTrigram       GeneratorKind = "Trigram"        // substring match
	GenToken         GeneratorKind = "Token"          // token-index fallback
	GenFallback      GeneratorKind = "Fallback"       // O(N) linear scan, tier3 only
)

// CandidateGenerator is one step of a rule's candidate-generation plan,
// carrying a relative cost estimate used to order plan execution (cheapest
// first).
type CandidateGenerator struct {
	Kind GeneratorKind
	Cost int
}

// planFor builds the ordered candidate-generation plan for one clause,
// per spec §4.5 item 3. Every non-fallback generator is O(1) or trie-backed;
// Fallback is only ever returned for a tier3 clause with no indexable
// field, and ValidatePlan rejects it being combined with anything else.
func planFor(tier Tier, c MatchClause) []CandidateGenerator {
	switch {
	case c.BaseType != "" && c.Call != "":
		return []CandidateGenerator{{GenExactTypeCall, 1}}
	case c.BaseType != "" && c.CallPattern != "":
		return []CandidateGenerator{{GenCallPrefix, 2}}
	case c.BaseTypePattern != "" && c.Call != "":
		return []CandidateGenerator{{GenTypeSuffix, 2}}
	case c.BaseTypePattern != "" && c.CallPattern != "":
		return []CandidateGenerator{{GenTrigram, 3}, {GenToken, 4}}
	case c.Call != "":
		return []CandidateGenerator{{GenExactCall, 1}}
	case c.CallPattern != "":
		return []CandidateGenerator{{GenCallPrefix, 2}}
	case c.Read != "":
		return []CandidateGenerator{{GenExactCall, 1}}
	case c.BaseType != "" || c.BaseTypePattern != "":
		return []CandidateGenerator{{GenTypeSuffix, 2}}
	default:
		if tier != Tier3 {
			// No indexable field but not tier3: treat as a token-match
			// clause rather than reach for the linear scan.
			return []CandidateGenerator{{GenToken, 4}}
		}
		return []CandidateGenerator{{GenFallback, 1000}}
	}
}

// ValidatePlan enforces spec §4.5's "Fallback may not appear alongside any
// other generator".
func ValidatePlan(plan []CandidateGenerator) error {
	hasFallback := false
	for _, g := range plan {
		if g.Kind == GenFallback {
			hasFallback = true
		}
	}
	if hasFallback && len(plan) > 1 {
		return fmt.Errorf("taint: Fallback generator may not appear alongside other generators")
	}
	return nil
}
