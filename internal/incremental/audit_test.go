// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package incremental

import "testing"

func TestAuditRingWrapsAtCapacity(t *testing.T) {
	r := newAuditRing(2)
	r.record(AuditRecord{ChangesetHash: "a"})
	r.record(AuditRecord{ChangesetHash: "b"})
	r.record(AuditRecord{ChangesetHash: "c"})

	recent := r.recent()
	if len(recent) != 2 {
		t.Fatalf("expected ring to hold exactly 2 entries, got %d", len(recent))
	}
	if recent[0].ChangesetHash != "c" || recent[1].ChangesetHash != "b" {
		t.Fatalf("expected [c, b], got %+v", recent)
	}
}
