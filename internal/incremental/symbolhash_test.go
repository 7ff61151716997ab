// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package incremental

import "testing"

func TestHashSymbolDeterministic(t *testing.T) {
	sig := []byte("func Handle(r *Request) Response")
	body := []byte("{ return Response{} }")

	a := HashSymbol("app.Handle", sig, body)
	b := HashSymbol("app.Handle", sig, body)
	if a != b {
		t.Fatalf("expected identical inputs to hash identically: %+v vs %+v", a, b)
	}
}

func TestHashSymbolBodyOnlyChangeKeepsSignatureHash(t *testing.T) {
	sig := []byte("func Handle(r *Request) Response")
	a := HashSymbol("app.Handle", sig, []byte("{ return ok() }"))
	b := HashSymbol("app.Handle", sig, []byte("{ return notOk() }"))

	if a.SignatureHash != b.SignatureHash {
		t.Fatalf("expected identical signature hash across a body-only change")
	}
	if a.BodyHash == b.BodyHash {
		t.Fatalf("expected different body hash across a body-only change")
	}
	if a.ImpactHash == b.ImpactHash {
		t.Fatalf("expected impact hash to change when body changes")
	}
}

func TestSortedChangesetKeyOrderIndependent(t *testing.T) {
	h1 := SymbolHash{SymbolID: "app.a", ImpactHash: "h1"}
	h2 := SymbolHash{SymbolID: "app.b", ImpactHash: "h2"}

	k1 := SortedChangesetKey("snap-1", []SymbolHash{h1, h2})
	k2 := SortedChangesetKey("snap-1", []SymbolHash{h2, h1})
	if k1 != k2 {
		t.Fatalf("expected changeset key to be independent of input order")
	}
}
