// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package cache implements the Global L1 IR Cache described in spec §5: a
// process-wide cache shared across build sessions, with a per-project soft
// quota (default <=300KB) and fair eviction so one noisy project cannot
// starve another. Grounded on the teacher's ImportMapCache
// (graph/callgraph/builder/cache.go) for the Get/Put/mutex shape, widened
// from a plain unbounded map to an LRU with quota and fairness accounting
// since the teacher's cache has neither.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSoftQuotaBytes is spec §5's default per-project soft quota.
const DefaultSoftQuotaBytes = 300 * 1024

// DefaultFairnessMultiple bounds how many more entries one project may
// hold than the mean across all projects (spec §5: "no project may hold
// more entries than the mean * 10").
const DefaultFairnessMultiple = 10

type entry struct {
	projectID string
	key       string
	value     []byte
}

// L1Cache is the process-wide IR cache. One instance is shared across every
// build session in the process.
type L1Cache struct {
	mu               sync.Mutex
	lru              *lru.Cache[string, *entry]
	softQuotaBytes   int64
	fairnessMultiple int
	projectBytes     map[string]int64
	projectCount     map[string]int
}

// New builds an L1Cache bounded at capacity total entries, with the given
// per-project soft quota (bytes) and fairness multiple. Zero values fall
// back to spec defaults.
func New(capacity int, softQuotaBytes int64, fairnessMultiple int) *L1Cache {
	if capacity <= 0 {
		capacity = 100000
	}
	if softQuotaBytes <= 0 {
		softQuotaBytes = DefaultSoftQuotaBytes
	}
	if fairnessMultiple <= 0 {
		fairnessMultiple = DefaultFairnessMultiple
	}
	c := &L1Cache{
		softQuotaBytes:   softQuotaBytes,
		fairnessMultiple: fairnessMultiple,
		projectBytes:     make(map[string]int64),
		projectCount:     make(map[string]int),
	}
	c.lru, _ = lru.NewWithEvict[string, *entry](capacity, c.onEvict)
	return c
}

// cacheKey namespaces a caller's key by project so two projects can't
// collide on the same content-addressed key.
func cacheKey(projectID, key string) string {
	return projectID + "\x00" + key
}

// onEvict is the global-LRU eviction callback; it keeps per-project
// bookkeeping in sync whenever the backing LRU drops an entry on its own
// (capacity eviction, not one of our own quota/fairness evictions, which
// call removeLocked directly and update bookkeeping themselves).
func (c *L1Cache) onEvict(_ string, e *entry) {
	c.projectBytes[e.projectID] -= int64(len(e.value))
	c.projectCount[e.projectID]--
	if c.projectCount[e.projectID] <= 0 {
		delete(c.projectBytes, e.projectID)
		delete(c.projectCount, e.projectID)
	}
}

// Get retrieves a cached value for (projectID, key).
func (c *L1Cache) Get(projectID, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lru.Get(cacheKey(projectID, key))
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Put stores value under (projectID, key), then enforces the per-project
// soft quota and cross-project fairness bound, evicting that project's
// own least-recently-used entries first.
func (c *L1Cache) Put(projectID, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ck := cacheKey(projectID, key)
	if old, ok := c.lru.Peek(ck); ok {
		c.projectBytes[projectID] -= int64(len(old.value))
		c.projectCount[projectID]--
	}

	c.lru.Add(ck, &entry{projectID: projectID, key: key, value: value})
	c.projectBytes[projectID] += int64(len(value))
	c.projectCount[projectID]++

	c.enforceQuotaLocked(projectID)
	c.enforceFairnessLocked()
}

// enforceQuotaLocked evicts projectID's own oldest entries until it is back
// under its soft byte quota. Called with c.mu held.
func (c *L1Cache) enforceQuotaLocked(projectID string) {
	for c.projectBytes[projectID] > c.softQuotaBytes {
		if !c.evictOldestOfLocked(projectID) {
			return
		}
	}
}

// enforceFairnessLocked evicts from any project holding more entries than
// mean*fairnessMultiple across all tracked projects. Called with c.mu held.
func (c *L1Cache) enforceFairnessLocked() {
	if len(c.projectCount) == 0 {
		return
	}
	total := 0
	for _, n := range c.projectCount {
		total += n
	}
	mean := total / len(c.projectCount)
	limit := mean * c.fairnessMultiple
	if limit == 0 {
		return
	}
	for projectID, n := range c.projectCount {
		for n > limit {
			if !c.evictOldestOfLocked(projectID) {
				break
			}
			n--
		}
	}
}

// evictOldestOfLocked removes the least-recently-used entry belonging to
// projectID by scanning the backing LRU's key order (oldest to newest).
// Returns false if the project has no entries left to evict.
func (c *L1Cache) evictOldestOfLocked(projectID string) bool {
	for _, ck := range c.lru.Keys() {
		e, ok := c.lru.Peek(ck)
		if !ok || e.projectID != projectID {
			continue
		}
		c.lru.Remove(ck) // triggers onEvict, which updates bookkeeping
		return true
	}
	return false
}

// ProjectStats reports the current entry count and byte usage for a
// project, for diagnostics and tests.
func (c *L1Cache) ProjectStats(projectID string) (entries int, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectCount[projectID], c.projectBytes[projectID]
}

// Len returns the total number of entries cached across all projects.
func (c *L1Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
