// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package taint

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawAtom mirrors the atom YAML schema from spec §6.
type rawAtom struct {
	ID          string       `yaml:"id"`
	Kind        string       `yaml:"kind"`
	Severity    string       `yaml:"severity"`
	Tags        []string     `yaml:"tags"`
	CWE         []string     `yaml:"cwe"`
	OWASP       string       `yaml:"owasp"`
	Description string       `yaml:"description"`
	Match       []rawClause  `yaml:"match"`
}

type rawClause struct {
	BaseType        string          `yaml:"base_type"`
	BaseTypePattern string          `yaml:"base_type_pattern"`
	Call            string          `yaml:"call"`
	CallPattern     string          `yaml:"call_pattern"`
	Read            string          `yaml:"read"`
	Args            []int           `yaml:"args"`
	Constraints     rawConstraints  `yaml:"constraints"`
}

type rawConstraints struct {
	ArgType string `yaml:"arg_type"`
}

// Load parses an atom YAML document — either a list under top-level key
// `atoms:`, or a bare top-level sequence (spec §6) — and compiles each
// atom independently. A malformed atom is rejected with a diagnostic
// carrying its source line; the rest of the file still compiles (spec §7:
// "rule compile error... fatal for that rule file" is scoped to the
// offending atom, not the whole document).
func Load(filename string, data []byte) ([]AtomRule, []CompileError) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, []CompileError{{File: filename, Line: 0, Message: fmt.Sprintf("yaml parse error: %v", err)}}
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]

	var items *yaml.Node
	switch root.Kind {
	case yaml.SequenceNode:
		items = root
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "atoms" {
				items = root.Content[i+1]
			}
		}
	}
	if items == nil || items.Kind != yaml.SequenceNode {
		return nil, []CompileError{{File: filename, Line: root.Line, Message: "expected a top-level sequence or an `atoms:` key"}}
	}

	var rules []AtomRule
	var errs []CompileError
	for _, item := range items.Content {
		var raw rawAtom
		if err := item.Decode(&raw); err != nil {
			errs = append(errs, CompileError{File: filename, Line: item.Line, Message: err.Error()})
			continue
		}
		rule, err := compile(raw, filename, item.Line)
		if err != nil {
			errs = append(errs, CompileError{File: filename, Line: item.Line, AtomID: raw.ID, Message: err.Error()})
			continue
		}
		rules = append(rules, rule)
	}
	return rules, errs
}

// CompileError reports a single rejected atom with its file/line (spec §6:
// "Validation errors fail the compile and are reported with file/line").
type CompileError struct {
	File    string
	Line    int
	AtomID  string
	Message string
}

func (e CompileError) Error() string {
	if e.AtomID != "" {
		return fmt.Sprintf("%s:%d: atom %q: %s", e.File, e.Line, e.AtomID, e.Message)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

func compile(raw rawAtom, file string, line int) (AtomRule, error) {
	if raw.ID == "" {
		return AtomRule{}, fmt.Errorf("atom missing id")
	}
	kind := AtomKind(raw.Kind)
	switch kind {
	case KindSource, KindSink, KindSanitizer, KindPropagator:
	default:
		return AtomRule{}, fmt.Errorf("unknown kind %q", raw.Kind)
	}
	if len(raw.Match) == 0 {
		return AtomRule{}, fmt.Errorf("atom has no match clauses")
	}

	clauses := make([]MatchClause, 0, len(raw.Match))
	for i, rc := range raw.Match {
		if rc.BaseType != "" && rc.BaseTypePattern != "" {
			return AtomRule{}, fmt.Errorf("match[%d]: base_type and base_type_pattern are mutually exclusive", i)
		}
		if rc.Call != "" && rc.CallPattern != "" {
			return AtomRule{}, fmt.Errorf("match[%d]: call and call_pattern are mutually exclusive", i)
		}
		if rc.BaseType == "" && rc.BaseTypePattern == "" && rc.Call == "" && rc.CallPattern == "" && rc.Read == "" {
			return AtomRule{}, fmt.Errorf("match[%d]: clause has no base_type/call/read criteria", i)
		}
		clauses = append(clauses, MatchClause{
			BaseType:        normalizeBaseType(rc.BaseType),
			BaseTypePattern: normalizeBaseType(rc.BaseTypePattern),
			Call:            rc.Call,
			CallPattern:     rc.CallPattern,
			Read:            rc.Read,
			Args:            rc.Args,
			Constraints:     Constraints{ArgType: ArgConstraintKind(rc.Constraints.ArgType)},
		})
	}

	tier := inferRuleTier(clauses)
	var plan []CandidateGenerator
	for _, c := range clauses {
		plan = append(plan, planFor(tier, c)...)
	}
	if err := ValidatePlan(plan); err != nil {
		return AtomRule{}, err
	}

	return AtomRule{
		ID:            raw.ID,
		Kind:          kind,
		Tags:          raw.Tags,
		Severity:      Severity(raw.Severity),
		CWE:           raw.CWE,
		OWASP:         raw.OWASP,
		Description:   raw.Description,
		Match:         clauses,
		Tier:          tier,
		CandidatePlan: plan,
		SourceFile:    file,
		SourceLine:    line,
	}, nil
}

// ecosystemAliases normalizes known base-type aliases (spec §4.5 item 1),
// e.g. the pysqlite2 compatibility shim resolving to its modern name.
var ecosystemAliases = map[string]string{
	"pysqlite2.dbapi2.cursor": "sqlite3.Cursor",
	"pysqlite2.dbapi2.Cursor": "sqlite3.Cursor",
}

func normalizeBaseType(baseType string) string {
	if baseType == "" {
		return ""
	}
	if canon, ok := ecosystemAliases[baseType]; ok {
		return canon
	}
	return baseType
}
