// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package taint

import "path"

// AtomMatch is a classified (rule, entity) pair (spec §3/§4.5).
type AtomMatch struct {
	RuleID     string
	EntityID   string
	NodeID     string
	Kind       AtomKind
	Severity   Severity
	Confidence float64
	Sanitized  bool
	GuardID    string
}

// Matcher indexes a fixed entity set for repeated rule matching. Grounded
// on the teacher's TaintState/statement-scan shape, replacing its
// hardcoded source/sink string lists with the index-then-prefilter
// pipeline spec §4.5 describes.
type Matcher struct {
	entities map[string]Entity

	byExactTypeCall map[string]map[string][]string // base_type -> call -> entity IDs
	byCall          map[string][]string            // call -> entity IDs
	byRead          map[string][]string             // read name -> entity IDs
	byBaseType      map[string][]string             // base_type -> entity IDs
	all             []string
}

// NewMatcher builds the candidate indexes over a fixed set of entities.
func NewMatcher(entities []Entity) *Matcher {
	m := &Matcher{
		entities:        make(map[string]Entity, len(entities)),
		byExactTypeCall: make(map[string]map[string][]string),
		byCall:          make(map[string][]string),
		byRead:          make(map[string][]string),
		byBaseType:      make(map[string][]string),
	}
	for _, e := range entities {
		m.entities[e.ID] = e
		m.all = append(m.all, e.ID)
		if e.BaseType != "" {
			m.byBaseType[e.BaseType] = append(m.byBaseType[e.BaseType], e.ID)
		}
		if e.CallName != "" {
			m.byCall[e.CallName] = append(m.byCall[e.CallName], e.ID)
			if e.BaseType != "" {
				if m.byExactTypeCall[e.BaseType] == nil {
					m.byExactTypeCall[e.BaseType] = make(map[string][]string)
				}
				m.byExactTypeCall[e.BaseType][e.CallName] = append(m.byExactTypeCall[e.BaseType][e.CallName], e.ID)
			}
		}
		if e.ReadName != "" {
			m.byRead[e.ReadName] = append(m.byRead[e.ReadName], e.ID)
		}
	}
	return m
}

// Match runs every rule's candidate plan against the index, applies
// prefilters and constraints, and emits one AtomMatch per surviving
// (rule, entity) pair (spec §4.5 "Matcher").
func (m *Matcher) Match(rules []AtomRule) []AtomMatch {
	var out []AtomMatch
	for _, rule := range rules {
		seen := make(map[string]bool)
		for _, clause := range rule.Match {
			for _, id := range m.candidatesFor(clause) {
				if seen[id] {
					continue
				}
				e, ok := m.entities[id]
				if !ok {
					continue
				}
				if !matchesClause(e, clause) {
					continue
				}
				seen[id] = true
				out = append(out, m.classify(rule, e))
			}
		}
	}
	return out
}

// candidatesFor dispatches on the clause shape — this is the tagged-variant
// match spec §9 calls for, expressed directly over clause fields rather
// than threading the precomputed CandidateGenerator list through, since
// clause shape alone determines which index applies.
func (m *Matcher) candidatesFor(c MatchClause) []string {
	switch {
	case c.BaseType != "" && c.Call != "":
		return m.byExactTypeCall[c.BaseType][c.Call]
	case c.BaseType != "" && c.CallPattern != "":
		return filterByPattern(m.byBaseType[c.BaseType], c.CallPattern, m.byCall)
	case c.BaseTypePattern != "" && c.Call != "":
		return m.matchBaseTypePattern(c.BaseTypePattern, c.Call)
	case c.Call != "":
		return m.byCall[c.Call]
	case c.CallPattern != "":
		return matchGlobKeys(m.byCall, c.CallPattern)
	case c.Read != "":
		return m.byRead[c.Read]
	case c.BaseTypePattern != "":
		return matchGlobKeys(m.byBaseType, c.BaseTypePattern)
	default:
		return m.all
	}
}

func (m *Matcher) matchBaseTypePattern(pattern, call string) []string {
	ids := m.byCall[call]
	var out []string
	for _, id := range ids {
		e := m.entities[id]
		if ok, _ := path.Match(pattern, e.BaseType); ok {
			out = append(out, id)
		}
	}
	return out
}

func filterByPattern(baseTypeIDs []string, callPattern string, byCall map[string][]string) []string {
	set := make(map[string]bool, len(baseTypeIDs))
	for _, id := range baseTypeIDs {
		set[id] = true
	}
	var out []string
	for call, ids := range byCall {
		if ok, _ := path.Match(callPattern, call); !ok {
			continue
		}
		for _, id := range ids {
			if set[id] {
				out = append(out, id)
			}
		}
	}
	return out
}

func matchGlobKeys(index map[string][]string, pattern string) []string {
	var out []string
	for key, ids := range index {
		if ok, _ := path.Match(pattern, key); ok {
			out = append(out, ids...)
		}
	}
	return out
}

// matchesClause applies args/constraints prefilters after candidate
// generation has already narrowed by type/call/read (spec §4.5 item 4).
func matchesClause(e Entity, c MatchClause) bool {
	if len(c.Args) > 0 {
		for _, idx := range c.Args {
			if idx < 0 || idx >= len(e.Args) {
				return false
			}
		}
	}
	if c.Constraints.ArgType == ArgStringLiteral && len(e.Args) > 0 {
		// A conservative proxy for "first referenced arg is a literal":
		// the argument text must open with a string quote.
		arg := e.Args[0]
		if len(c.Args) > 0 {
			arg = e.Args[c.Args[0]]
		}
		if len(arg) == 0 {
			return false
		}
		switch arg[0] {
		case '"', '\'', '`':
		default:
			return false
		}
	}
	return true
}

// classify builds the AtomMatch, applying guard-aware sanitization
// downgrading (spec §4.5 item 4): if the entity's guards include a
// predicate this rule accepts as sanitizing, the match is marked
// Sanitized rather than dropped, so the query engine can still see it.
func (m *Matcher) classify(rule AtomRule, e Entity) AtomMatch {
	match := AtomMatch{
		RuleID:     rule.ID,
		EntityID:   e.ID,
		NodeID:     e.NodeID,
		Kind:       rule.Kind,
		Severity:   rule.Severity,
		Confidence: clamp01(confidenceFor(e)),
	}
	for _, g := range e.Guards {
		if isSanitizingGuard(rule, g) {
			match.Sanitized = true
			match.GuardID = g
			break
		}
	}
	return match
}

// isSanitizingGuard checks whether a control-flow-proven guard predicate
// matches one of the rule's own sanitizer tags — a guard only sanitizes
// the sinks/sources it is declared to guard.
func isSanitizingGuard(rule AtomRule, guard string) bool {
	for _, tag := range rule.Tags {
		if tag == guard {
			return true
		}
	}
	return false
}
