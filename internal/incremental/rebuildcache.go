// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package incremental

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// RebuildResult pairs a computed plan with a marker telling a cache hit
// apart from a fresh run. The cache itself stores *RebuildPlan values, and
// no code in this package constructs a RebuildResult.
type RebuildResult struct {
	Plan      *RebuildPlan
	FromCache bool
}

// RebuildCache memoizes rebuild plans keyed by (snapshot_id, sorted
// changeset) per spec §4.7 item 4. Backed by golang-lru/v2's expirable LRU,
// which gives TTL expiry and LRU eviction from one data structure instead
// of layering a manual expiry sweep on top of a plain LRU (the teacher's
// type_cache.go only needed plain LRU; the TTL requirement here is new, so
// this reaches for the library's purpose-built variant rather than hand-
// rolling a timestamp wrapper).
type RebuildCache struct {
	cache *expirable.LRU[string, *RebuildPlan]
}

// NewRebuildCache builds a cache bounded by maxEntries with entries expiring
// after ttl. ttl <= 0 means entries never expire on their own (still subject
// to LRU eviction at maxEntries).
func NewRebuildCache(maxEntries int, ttl time.Duration) *RebuildCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &RebuildCache{cache: expirable.NewLRU[string, *RebuildPlan](maxEntries, nil, ttl)}
}

// Get looks up a previously computed plan for a changeset key (see
// SortedChangesetKey).
func (c *RebuildCache) Get(changesetKey string) (*RebuildPlan, bool) {
	return c.cache.Get(changesetKey)
}

// Put stores a freshly computed plan under its changeset key.
func (c *RebuildCache) Put(changesetKey string, plan *RebuildPlan) {
	c.cache.Add(changesetKey, plan)
}

// Len reports the number of live (non-expired) cache entries.
func (c *RebuildCache) Len() int {
	return c.cache.Len()
}
