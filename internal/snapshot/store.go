// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package snapshot persists IR snapshots as a key-value store keyed by
// (snapshot_id, entity_id), spec §6. No teacher file owns this concern
// directly; backed by modernc.org/sqlite (pure-Go, CGO-free, already
// reachable in this module's dependency graph) via database/sql, the
// natural ecosystem choice for an embedded KV-ish store rather than
// hand-rolling a file-based format.
package snapshot

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/codeintel-oss/engine/internal/ir"
)

// CurrentSchemaVersion is compared against a persisted snapshot's own
// recorded version at open time (spec §6: "a version manager compares it
// against the current compiled version at startup and triggers Repair on
// mismatch").
const CurrentSchemaVersion = 1

// Store is a sqlite-backed entity store for one snapshot file on disk.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the sqlite database at path and ensures
// its schema tables exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schema_meta (version INTEGER NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS entities (
			snapshot_id TEXT NOT NULL,
			entity_id   TEXT NOT NULL,
			payload     BLOB NOT NULL,
			content_hash TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, entity_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM schema_meta`).Scan(&count); err != nil {
		return fmt.Errorf("read schema_meta: %w", err)
	}
	if count == 0 {
		if _, err := s.db.Exec(`INSERT INTO schema_meta (version) VALUES (?)`, CurrentSchemaVersion); err != nil {
			return fmt.Errorf("init schema_meta: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the version recorded in this store's schema_meta
// table.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	if err := s.db.QueryRow(`SELECT version FROM schema_meta LIMIT 1`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// SchemaOK reports whether this store's recorded schema version matches
// CurrentSchemaVersion. A false result is the trigger spec §6/§4.8
// describe for entering Repair mode.
func (s *Store) SchemaOK() (bool, error) {
	v, err := s.SchemaVersion()
	if err != nil {
		return false, err
	}
	return v == CurrentSchemaVersion, nil
}

// Put stores payload under (snapshotID, entityID), recording a content
// hash for later integrity verification.
func (s *Store) Put(snapshotID, entityID string, payload []byte) error {
	hash := ir.ContentDigest(payload)
	_, err := s.db.Exec(
		`INSERT INTO entities (snapshot_id, entity_id, payload, content_hash) VALUES (?, ?, ?, ?)
		 ON CONFLICT (snapshot_id, entity_id) DO UPDATE SET payload = excluded.payload, content_hash = excluded.content_hash`,
		snapshotID, entityID, payload, hash,
	)
	if err != nil {
		return fmt.Errorf("put entity %s/%s: %w", snapshotID, entityID, err)
	}
	return nil
}

// Get retrieves the payload stored under (snapshotID, entityID).
func (s *Store) Get(snapshotID, entityID string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM entities WHERE snapshot_id = ? AND entity_id = ?`,
		snapshotID, entityID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get entity %s/%s: %w", snapshotID, entityID, err)
	}
	return payload, true, nil
}

// VerifyIntegrity recomputes the content hash for every row under
// snapshotID and compares it against the stored hash (spec §6: "Opening a
// snapshot verifies its integrity hash; mismatch triggers Repair mode").
// Returns the first mismatching entity ID, or "" if every row checks out.
func (s *Store) VerifyIntegrity(snapshotID string) (mismatchEntityID string, err error) {
	rows, err := s.db.Query(
		`SELECT entity_id, payload, content_hash FROM entities WHERE snapshot_id = ?`,
		snapshotID,
	)
	if err != nil {
		return "", fmt.Errorf("verify integrity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entityID, storedHash string
		var payload []byte
		if err := rows.Scan(&entityID, &payload, &storedHash); err != nil {
			return "", fmt.Errorf("verify integrity scan: %w", err)
		}
		if ir.ContentDigest(payload) != storedHash {
			return entityID, nil
		}
	}
	return "", rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
