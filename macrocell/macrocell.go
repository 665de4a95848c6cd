// Package macrocell defines the quadtree node one tier above the cell
// block: four child pointers plus the two memoized future slots
// (one-generation Step, jump-ahead Next) that make Hashlife's recursion
// sub-quadratic. A Cell never mutates its Children after construction;
// only the Future slots are ever filled in after the fact, by whichever
// universe operation computes them first.
package macrocell

import "github.com/arenahash/hashlife/node"

// Children names the four quadrants of a macrocell, each a pointer into
// the tier below this one.
type Children struct {
	NW, NE, SW, SE node.Ptr
}

// Future holds the memoized results of evolving a macrocell forward:
// Step is one generation at this tier's base resolution, Next is
// 2^(tier-2) generations, the largest jump Hashlife can take in one
// recursive call. Both start Null and are filled in lazily, at most
// once, the first time a universe operation needs them.
type Future struct {
	Step, Next node.Ptr
}

// Cell is a macrocell record as stored in a tier's hash-consing set: its
// identity (Children) plus the mutable memo (Future) computed from it.
// Equality and hashing for interning purposes only ever consider
// Children; Future is not part of a macrocell's logical identity.
type Cell struct {
	Children
	Future Future
}

// New builds an un-evolved Cell from its four children; both Future slots
// start Null.
func New(nw, ne, sw, se node.Ptr) Cell {
	return Cell{
		Children: Children{NW: nw, NE: ne, SW: sw, SE: se},
		Future:   Future{Step: node.Null, Next: node.Null},
	}
}

// fibonacciConstant is the 64-bit golden-ratio odd constant used by
// boost::hash_combine-style mixing: each combine step adds this constant
// and shifted copies of the accumulator to a new value and XORs the sum
// in, so that permuting the inputs changes the result.
const fibonacciConstant = 0x9e3779b97f4a7c15

// combine folds h into the accumulator seed, order-sensitively:
// combining in a different order (or swapping which child contributes
// which hash) produces a different result.
func combine(seed uint64, h uint64) uint64 {
	return seed ^ (h + fibonacciConstant + (seed << 6) + (seed >> 2))
}

// Hash returns the order-sensitive combined hash of the four children's
// own hashes (childHash resolves a node.Ptr to that tier's content hash
// for the child it names). Swapping any two children changes the result.
func (c Children) Hash(childHash func(node.Ptr) uint64) uint64 {
	var h uint64
	h = combine(h, childHash(c.NW))
	h = combine(h, childHash(c.NE))
	h = combine(h, childHash(c.SW))
	h = combine(h, childHash(c.SE))
	return h
}

// Equal reports whether two Children tuples name the same four pointers
// in the same quadrant order.
func (c Children) Equal(other Children) bool {
	return c.NW == other.NW && c.NE == other.NE && c.SW == other.SW && c.SE == other.SE
}
