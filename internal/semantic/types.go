// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package semantic

import "fmt"

// Type is the closed interface every inferred type shape implements.
// Grounded on the teacher's core.Type (types_extended.go), generalized
// with a Substitute method so generic substitution can recurse into
// nested parameterizations (spec §4.4: "Substitutions recurse into nested
// generics (List<Map<K,V>>)").
type Type interface {
	String() string
	Substitute(subst Substitution) Type
}

// Substitution maps type-variable names to concrete types.
type Substitution map[string]Type

// NamedType is a concrete nominal type, e.g. "string", "app.UserService".
type NamedType struct {
	Name string
}

func (t NamedType) String() string { return t.Name }

func (t NamedType) Substitute(Substitution) Type { return t }

// TypeVariable is an unresolved generic parameter, e.g. "K" in Map<K,V>.
type TypeVariable struct {
	Name string
}

func (t TypeVariable) String() string { return t.Name }

func (t TypeVariable) Substitute(subst Substitution) Type {
	if concrete, ok := subst[t.Name]; ok {
		return concrete
	}
	return t
}

// GenericType is a parameterized type, e.g. List<Map<K,V>>.
type GenericType struct {
	Base Type
	Args []Type
}

func (t GenericType) String() string {
	s := t.Base.String() + "<"
	for i, a := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ">"
}

// Substitute recurses into every type argument, per spec §4.4.
func (t GenericType) Substitute(subst Substitution) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(subst)
	}
	return GenericType{Base: t.Base.Substitute(subst), Args: args}
}

// NullableType wraps a type with a `T?` / `T | null` marker, preserved
// rather than collapsed into its inner type (spec §4.4).
type NullableType struct {
	Inner Type
}

func (t NullableType) String() string { return t.Inner.String() + "?" }

func (t NullableType) Substitute(subst Substitution) Type {
	return NullableType{Inner: t.Inner.Substitute(subst)}
}

// UnknownType marks a binding inference could not resolve.
type UnknownType struct{}

func (UnknownType) String() string { return "unknown" }

func (u UnknownType) Substitute(Substitution) Type { return u }

// ConfidenceSource names where an inferred binding's type came from,
// mirroring the teacher's core.ConfidenceSource tiers.
type ConfidenceSource string

const (
	ConfidenceAnnotation  ConfidenceSource = "annotation"
	ConfidenceLiteral     ConfidenceSource = "literal"
	ConfidenceConstructor ConfidenceSource = "constructor"
	ConfidenceReturnType  ConfidenceSource = "return_type"
	ConfidenceAssignment  ConfidenceSource = "assignment"
	ConfidenceAttribute   ConfidenceSource = "attribute"
	ConfidenceHeuristic   ConfidenceSource = "heuristic"
	ConfidenceUnknown     ConfidenceSource = "unknown"
)

// Score returns the fixed confidence weight for a source tier.
func (c ConfidenceSource) Score() float64 {
	switch c {
	case ConfidenceAnnotation:
		return 1.0
	case ConfidenceLiteral, ConfidenceConstructor:
		return 0.95
	case ConfidenceReturnType:
		return 0.9
	case ConfidenceAssignment:
		return 0.85
	case ConfidenceAttribute:
		return 0.8
	case ConfidenceHeuristic:
		return 0.7
	default:
		return 0.0
	}
}

// TypeConflict records a constraint that disagreed with an existing
// binding. Spec §4.4: "Constraints are recorded but never silently dropped
// on conflict; conflicts are reported as diagnostics."
type TypeConflict struct {
	VarName  string
	Existing Type
	New      Type
	File     string
	Line     int
}

func (c TypeConflict) String() string {
	return fmt.Sprintf("%s:%d: %s inferred as both %s and %s", c.File, c.Line, c.VarName, c.Existing, c.New)
}
