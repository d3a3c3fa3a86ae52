// SPDX-License-Identifier: MIT

// Package expr - structural equality & hash-consing.
//
// Purpose:
//   - IsDuplicateOf: deep structural comparison with a tolerance on
//     embedded constants.
//   - DedupCache: one rewrite pass collapsing duplicate subgraphs into a
//     single shared instance.
//
// AI-Hints:
//   - A DedupCache is single-threaded and meant for one pass; run it before
//     publishing a graph to concurrent evaluators.

package expr

import (
	"math"

	"github.com/katalvlaran/lvlexpr/matrix"
)

// samePayload compares everything but the operands, with tolerance tol on
// embedded numbers.
func (n *Node) samePayload(o *Node, tol float64) bool {
	if n.kind != o.kind || n.dims != o.dims || n.params != o.params ||
		n.start != o.start || n.count != o.count || n.expKind != o.expKind || n.n != o.n {
		return false
	}
	if math.Abs(n.k-o.k) > tol || len(n.vec) != len(o.vec) {
		return false
	}
	if !matrix.SliceClose(n.vec, o.vec, 0, tol) {
		return false
	}
	if (n.mat == nil) != (o.mat == nil) {
		return false
	}
	if n.mat != nil {
		ok, err := matrix.AllClose(n.mat, o.mat, 0, tol)
		if err != nil || !ok {
			return false
		}
	}

	return true
}

// IsDuplicateOf reports whether n and o compute the same function by
// structure: same operators, same shapes, embedded constants equal within
// DefaultDuplicateTolerance, and operands pairwise duplicates.
// Complexity: O(V) over distinct node pairs.
func (n *Node) IsDuplicateOf(o *Node) bool {
	type pair struct{ x, y uint64 }
	seen := make(map[pair]bool)
	var eq func(x, y *Node) bool
	eq = func(x, y *Node) bool {
		if x == y {
			return true
		}
		if x == nil || y == nil {
			return false
		}
		key := pair{x.id, y.id}
		if r, ok := seen[key]; ok {
			return r
		}
		r := x.samePayload(y, DefaultDuplicateTolerance) && eq(x.a, y.a) && eq(x.b, y.b)
		seen[key] = r

		return r
	}

	return eq(n, o)
}

// dedupKey is the exact part of the structural key; embedded constants are
// compared within tolerance inside a bucket.
type dedupKey struct {
	kind   Kind
	dims   int
	params int
	start  int
	count  int
	a, b   uint64
}

// DedupCache maps structural keys to the surviving representative of each
// class. Create one per rewrite pass.
type DedupCache struct {
	buckets map[dedupKey][]*Node
	done    map[uint64]*Node // input node ID -> representative
	tol     float64
}

// NewDedupCache returns an empty cache using DefaultDuplicateTolerance.
func NewDedupCache() *DedupCache {
	return &DedupCache{
		buckets: make(map[dedupKey][]*Node),
		done:    make(map[uint64]*Node),
		tol:     DefaultDuplicateTolerance,
	}
}

// Len returns the number of distinct representatives held by the cache.
func (c *DedupCache) Len() int {
	total := 0
	for _, b := range c.buckets {
		total += len(b)
	}

	return total
}

// Deduplicate returns the canonical representative of n.
// MAIN DESCRIPTION:
//   - Post-order rewrite: operands first, then the node's own class lookup.
//
// Implementation:
//   - Stage 1: a node already visited in this pass returns its representative.
//   - Stage 2: deduplicate operands; when any operand changed, clone the node
//     onto the new operands (nodes are immutable, never patched in place).
//   - Stage 3: look up the bucket for (kind, shape, slice, operand IDs) and
//     compare embedded constants within tolerance; insert when new.
//
// Behavior highlights:
//   - The result evaluates identically to n; only node count shrinks.
//   - Representatives are the first instance met in depth-first order.
//
// Complexity:
//   - O(V · bucket size) time, O(V) space.
func (c *DedupCache) Deduplicate(n *Node) *Node {
	if n == nil {
		return nil
	}
	if r, ok := c.done[n.id]; ok {
		return r
	}
	a, b := c.Deduplicate(n.a), c.Deduplicate(n.b)
	cand := n
	if a != n.a || b != n.b {
		clone := *n
		clone.id = nextID.Add(1)
		clone.a, clone.b = a, b
		cand = &clone
	}
	key := dedupKey{kind: cand.kind, dims: cand.dims, params: cand.params, start: cand.start, count: cand.count}
	if a != nil {
		key.a = a.id
	}
	if b != nil {
		key.b = b.id
	}
	rep := cand
	found := false
	for _, m := range c.buckets[key] {
		if m.samePayload(cand, c.tol) {
			rep, found = m, true
			break
		}
	}
	if !found {
		c.buckets[key] = append(c.buckets[key], cand)
	}
	c.done[n.id] = rep
	if cand != n {
		c.done[cand.id] = rep
	}

	return rep
}

// Deduplicated returns the canonical representative of n in cache.
func (n *Node) Deduplicated(cache *DedupCache) *Node {
	return cache.Deduplicate(n)
}

// Dedup runs one fresh deduplication pass over n.
func Dedup(n *Node) *Node {
	cache := NewDedupCache()
	out := cache.Deduplicate(n)
	log.Debug("deduplicated {{before}} nodes into {{after}}", "before", NodeCount(n), "after", cache.Len())

	return out
}
