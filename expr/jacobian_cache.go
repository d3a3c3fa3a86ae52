// SPDX-License-Identifier: MIT

package expr

// jacobianKey identifies one Jacobian slot: a node seen through one input
// value slot and one seed Jacobian slot. Top-level nodes share (0, 0); nodes
// under a composition see the inner node's slots.
type jacobianKey struct {
	node uint64
	in   int
	seed int
}

// jacobianCache is the satellite of the value slot map: it holds Jacobian
// slots separately so a node may have its Jacobian compiled without its
// value and vice versa. Scoped to one compilation.
type jacobianCache struct {
	slots map[jacobianKey]int
	hits  int // lookups served by an existing slot
}

func newJacobianCache() *jacobianCache {
	return &jacobianCache{slots: make(map[jacobianKey]int)}
}

func (c *jacobianCache) lookup(k jacobianKey) (int, bool) {
	slot, ok := c.slots[k]
	if ok {
		c.hits++
	}

	return slot, ok
}

func (c *jacobianCache) store(k jacobianKey, slot int) { c.slots[k] = slot }
