// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package semantic

import lru "github.com/hashicorp/golang-lru/v2"

// TypeCache memoizes inferred types across incremental rebuilds, keyed by
// a caller-chosen string (typically "<file>:<symbol>:<expr-span>").
// Grounded on the teacher's TypeCache (type_cache.go), which hand-rolled
// a container/list LRU; this engine already pulls in golang-lru/v2 for
// the L1 IR cache, so the same library serves here instead of
// reimplementing LRU eviction a second time.
type TypeCache struct {
	cache *lru.Cache[string, Type]
}

// NewTypeCache builds a cache bounded to capacity entries (teacher default:
// 10000, kept the same here absent a reason to diverge).
func NewTypeCache(capacity int) *TypeCache {
	if capacity <= 0 {
		capacity = 10000
	}
	c, _ := lru.New[string, Type](capacity)
	return &TypeCache{cache: c}
}

// Get returns the cached type for key, if present.
func (tc *TypeCache) Get(key string) (Type, bool) {
	return tc.cache.Get(key)
}

// Put stores an inferred type under key.
func (tc *TypeCache) Put(key string, typ Type) {
	tc.cache.Add(key, typ)
}

// Invalidate drops every entry whose key satisfies matches; callers use it
// when a file's structural IR is rebuilt and its stale expression spans
// could otherwise collide with a fresh rebuild's spans.
func (tc *TypeCache) Invalidate(matches func(key string) bool) {
	for _, key := range tc.cache.Keys() {
		if matches(key) {
			tc.cache.Remove(key)
		}
	}
}
