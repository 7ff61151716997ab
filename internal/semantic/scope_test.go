// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package semantic

import "testing"

func TestScopeStackLookupOutward(t *testing.T) {
	s := NewScopeStack("module")
	s.Declare("x", "node:x")
	s.Push("func:f")
	s.Declare("y", "node:y")

	if b, ok := s.Lookup("y"); !ok || b.NodeID != "node:y" {
		t.Fatalf("expected y to resolve in innermost scope, got %+v ok=%v", b, ok)
	}
	if b, ok := s.Lookup("x"); !ok || b.NodeID != "node:x" {
		t.Fatalf("expected x to resolve from outer scope, got %+v ok=%v", b, ok)
	}
	if _, ok := s.Lookup("z"); ok {
		t.Fatalf("expected z to be out of scope")
	}

	s.Pop()
	if _, ok := s.Lookup("y"); ok {
		t.Fatalf("expected y to go out of scope after pop")
	}
}

func TestScopeStackNeverPopsRoot(t *testing.T) {
	s := NewScopeStack("module")
	s.Pop()
	s.Declare("x", "node:x")
	if _, ok := s.Lookup("x"); !ok {
		t.Fatalf("expected root scope to survive a pop with nothing pushed")
	}
}

func TestTypeStoreHigherConfidenceWins(t *testing.T) {
	ts := NewTypeStore()
	ts.Constrain("x", UnknownType{}, ConfidenceHeuristic, "a.py", 1)
	ts.Constrain("x", NamedType{Name: "int"}, ConfidenceAnnotation, "a.py", 2)

	typ, ok := ts.Lookup("x")
	if !ok || typ.String() != "int" {
		t.Fatalf("expected annotation to win over heuristic, got %v ok=%v", typ, ok)
	}
	if len(ts.Conflicts()) != 0 {
		t.Fatalf("expected no conflicts when a higher-confidence source wins")
	}
}

func TestTypeStoreRecordsConflict(t *testing.T) {
	ts := NewTypeStore()
	ts.Constrain("x", NamedType{Name: "int"}, ConfidenceAssignment, "a.py", 1)
	ts.Constrain("x", NamedType{Name: "string"}, ConfidenceAssignment, "a.py", 2)

	if len(ts.Conflicts()) != 1 {
		t.Fatalf("expected one conflict, got %d", len(ts.Conflicts()))
	}
	typ, _ := ts.Lookup("x")
	if typ.String() != "int" {
		t.Fatalf("expected the original binding to survive an equal-confidence conflict, got %v", typ)
	}
}

func TestGenericTypeSubstituteRecurses(t *testing.T) {
	listOfMap := GenericType{
		Base: NamedType{Name: "List"},
		Args: []Type{GenericType{
			Base: NamedType{Name: "Map"},
			Args: []Type{TypeVariable{Name: "K"}, TypeVariable{Name: "V"}},
		}},
	}
	subst := Substitution{"K": NamedType{Name: "string"}, "V": NamedType{Name: "int"}}
	got := listOfMap.Substitute(subst).String()
	want := "List<Map<string, int>>"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
