// Package node defines the pointer type shared by every tier of the
// hash-consing set: a 32-bit index into a per-tier table. Pointer equality
// after interning stands in for structural equality of the pointed-to
// macrocell or cell block.
package node

// Ptr indexes a record within one tier's table. A Ptr is only meaningful
// relative to the tier it was produced from; comparing pointers from two
// different tiers is a programmer error the caller must avoid.
type Ptr uint32

// Null is the sentinel pointer value. It fills a macrocell's Future slots
// until they are computed and accompanies a failed intern's error; a
// successful intern never returns it.
const Null Ptr = 0xFFFFFFFF

// Valid reports whether p is not the null sentinel.
func (p Ptr) Valid() bool { return p != Null }

// Index returns p as a plain int, for indexing into a backing slice.
func (p Ptr) Index() int { return int(p) }

// FromIndex converts a non-negative slice index into a Ptr.
func FromIndex(i int) Ptr { return Ptr(uint32(i)) }
