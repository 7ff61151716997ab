// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	if err := s.Put("snap-1", "entity-1", []byte("payload")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := s.Get("snap-1", "entity-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || string(got) != "payload" {
		t.Fatalf("expected round-trip hit, got %q, %v", got, ok)
	}
}

func TestGetMissingEntity(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.Get("snap-1", "does-not-exist")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss for an entity that was never stored")
	}
}

func TestSchemaOKOnFreshStore(t *testing.T) {
	s := openTestStore(t)
	ok, err := s.SchemaOK()
	if err != nil {
		t.Fatalf("schema ok: %v", err)
	}
	if !ok {
		t.Fatalf("expected a freshly initialized store to report the current schema version")
	}
}

func TestVerifyIntegrityDetectsTamperedPayload(t *testing.T) {
	s := openTestStore(t)
	if err := s.Put("snap-1", "entity-1", []byte("original")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.db.Exec(`UPDATE entities SET payload = ? WHERE entity_id = ?`, []byte("tampered"), "entity-1"); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	mismatch, err := s.VerifyIntegrity("snap-1")
	if err != nil {
		t.Fatalf("verify integrity: %v", err)
	}
	if mismatch != "entity-1" {
		t.Fatalf("expected mismatch on entity-1, got %q", mismatch)
	}
}

func TestVerifyIntegrityCleanStoreReportsNoMismatch(t *testing.T) {
	s := openTestStore(t)
	if err := s.Put("snap-1", "entity-1", []byte("payload")); err != nil {
		t.Fatalf("put: %v", err)
	}
	mismatch, err := s.VerifyIntegrity("snap-1")
	if err != nil {
		t.Fatalf("verify integrity: %v", err)
	}
	if mismatch != "" {
		t.Fatalf("expected no mismatch, got %q", mismatch)
	}
}
