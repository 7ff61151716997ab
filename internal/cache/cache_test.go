// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package cache

import "testing"

func TestGetPutRoundTrip(t *testing.T) {
	c := New(100, 0, 0)
	c.Put("proj-a", "sym-1", []byte("payload"))
	got, ok := c.Get("proj-a", "sym-1")
	if !ok || string(got) != "payload" {
		t.Fatalf("expected round-trip hit, got %q, %v", got, ok)
	}
}

func TestGetMissForDifferentProject(t *testing.T) {
	c := New(100, 0, 0)
	c.Put("proj-a", "sym-1", []byte("payload"))
	if _, ok := c.Get("proj-b", "sym-1"); ok {
		t.Fatalf("expected a miss: same key under a different project must not collide")
	}
}

func TestPerProjectSoftQuotaEvictsOldestFirst(t *testing.T) {
	c := New(1000, 30, 1000) // 30-byte quota, fairness effectively disabled
	c.Put("proj-a", "k1", make([]byte, 20))
	c.Put("proj-a", "k2", make([]byte, 20)) // now 40 bytes, over 30-byte quota

	if _, ok := c.Get("proj-a", "k1"); ok {
		t.Fatalf("expected k1 (oldest) to be evicted once over quota")
	}
	if _, ok := c.Get("proj-a", "k2"); !ok {
		t.Fatalf("expected k2 (newest) to survive")
	}
	entries, bytes := c.ProjectStats("proj-a")
	if entries != 1 || bytes != 20 {
		t.Fatalf("expected 1 entry / 20 bytes after quota eviction, got %d / %d", entries, bytes)
	}
}

func TestFairnessCapsNoisyProjectAmongManyQuietOnes(t *testing.T) {
	// 19 quiet projects holding 1 entry each, plus one noisy project that
	// keeps writing. With the default fairness multiple (10), the mean
	// stays low (dominated by the 19 one-entry projects) so the noisy
	// project's own growth eventually outruns mean*10 and gets evicted
	// back down, regardless of how many times it writes.
	c := New(10000, 1<<30, 0) // huge byte quota; default fairness multiple
	for i := 0; i < 19; i++ {
		c.Put("proj-quiet-"+string(rune('a'+i)), "k", []byte("x"))
	}
	for i := 0; i < 50; i++ {
		c.Put("proj-noisy", string(rune('A'+(i%26)))+string(rune('0'+i/26)), []byte("x"))
	}

	noisyEntries, _ := c.ProjectStats("proj-noisy")
	if noisyEntries >= 50 {
		t.Fatalf("expected fairness eviction to cap the noisy project well below 50 writes, got %d", noisyEntries)
	}
}
