// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package taint

// inferClauseTier classifies one clause's specificity per spec §4.5:
//   tier1: exact base_type and exact call, no wildcards
//   tier2: any other clause with at most one wildcard (base_type_pattern
//          or call_pattern), including a single exact field
//   tier3: both base_type_pattern and call_pattern set
// No numeric specificity score is computed.
func inferClauseTier(c MatchClause) Tier {
	wildcards := 0
	if c.BaseTypePattern != "" {
		wildcards++
	}
	if c.CallPattern != "" {
		wildcards++
	}

	exactFields := 0
	if c.BaseType != "" {
		exactFields++
	}
	if c.Call != "" {
		exactFields++
	}
	if c.Read != "" {
		exactFields++
	}

	switch {
	case wildcards == 0 && c.BaseType != "" && c.Call != "":
		return Tier1
	case wildcards <= 1:
		return Tier2
	default:
		return Tier3
	}
}

// inferRuleTier takes the loosest (most permissive) tier required across an
// atom's OR'd clauses — a rule is only as specific as its weakest clause.
func inferRuleTier(clauses []MatchClause) Tier {
	tier := Tier1
	for _, c := range clauses {
		ct := inferClauseTier(c)
		if tierRank(ct) > tierRank(tier) {
			tier = ct
		}
	}
	return tier
}

func tierRank(t Tier) int {
	switch t {
	case Tier1:
		return 1
	case Tier2:
		return 2
	default:
		return 3
	}
}
