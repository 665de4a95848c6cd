// Package hashset implements the dense, insert-only hash-consing set each
// tier of the universe uses to give every distinct macrocell (or, at tier
// zero, every distinct cell block) a single canonical node.Ptr. Entries
// are never removed individually: Clear discards everything at once, the
// same all-or-nothing reclamation discipline as the arena package.
package hashset

import (
	"fmt"

	"github.com/arenahash/hashlife/arena"
	"github.com/arenahash/hashlife/node"
)

// occupiedBit marks a slot as holding a value. tagMask selects the bits of
// a slot's stored byte that participate in the cheap pre-comparison done
// before a full key equality check. It has always been 0xEF here rather
// than the cleaner 0x7F: changing it now would shift every existing
// table's collision behaviour for no benefit.
const (
	occupiedBit byte = 0x80
	tagMask     byte = 0xEF
)

// maxInsertProbes bounds how far Emplace will walk the probe sequence
// before giving up and reporting the table full. Lookups are not bound by
// this constant: they walk until they hit an empty slot or have examined
// every slot once.
const maxInsertProbes = 10

// tagWidth is the bit width of the hash value tagOf reduces from: the top
// 7 bits come from shifting right by tagWidth-7 before masking.
const tagWidth = 64

func tagOf(hash uint64) byte {
	return occupiedBit | (byte(hash>>(tagWidth-7)) & tagMask)
}

// Set is a fixed-capacity, open-addressed hash table mapping a projected
// key K to a stored value V, with linear probing. V is the full record
// (which may carry mutable memo fields beyond its identity); K is the
// part of V that determines its identity for interning purposes.
type Set[V any, K comparable] struct {
	values   *arena.Buffer[V]
	meta     *arena.Buffer[byte]
	keyOf    func(V) K
	hashOf   func(K) uint64
	capacity int
	size     int
}

// New builds an empty Set with room for exactly capacity entries. keyOf
// projects a stored value to its identity key; hashOf hashes that key.
func New[V any, K comparable](capacity int, keyOf func(V) K, hashOf func(K) uint64) *Set[V, K] {
	return &Set[V, K]{
		values:   arena.NewBuffer[V](capacity),
		meta:     arena.NewBuffer[byte](capacity),
		keyOf:    keyOf,
		hashOf:   hashOf,
		capacity: capacity,
	}
}

// Capacity returns the total number of slots in the table.
func (s *Set[V, K]) Capacity() int { return s.capacity }

// Size returns the number of occupied slots.
func (s *Set[V, K]) Size() int { return s.size }

// Empty reports whether the table holds no entries.
func (s *Set[V, K]) Empty() bool { return s.size == 0 }

func (s *Set[V, K]) slotOccupied(i int) bool {
	return s.meta.At(i)&occupiedBit != 0
}

// Find looks up k, returning its slot and true if present. A lookup walks
// the probe sequence from k's home slot until it finds a match or an
// empty slot (which terminates the sequence, since entries are only ever
// inserted along their own probe chain), examining at most capacity
// slots in total.
func (s *Set[V, K]) Find(k K) (node.Ptr, bool) {
	h := s.hashOf(k)
	want := tagOf(h)
	start := int(h % uint64(s.capacity))
	for i := 0; i < s.capacity; i++ {
		idx := (start + i) % s.capacity
		if !s.slotOccupied(idx) {
			return node.Null, false
		}
		if s.meta.At(idx) == want && s.keyOf(s.values.At(idx)) == k {
			return node.FromIndex(idx), true
		}
	}
	return node.Null, false
}

// Contains reports whether k is present.
func (s *Set[V, K]) Contains(k K) bool {
	_, ok := s.Find(k)
	return ok
}

// Emplace interns v: if a value with the same key is already present, its
// existing pointer is returned unchanged; otherwise v is inserted into
// the first empty slot along its probe sequence and its new pointer is
// returned. Insertion gives up, returning an error, after maxInsertProbes
// slots without finding either a match or a free slot.
func (s *Set[V, K]) Emplace(v V) (node.Ptr, error) {
	k := s.keyOf(v)
	h := s.hashOf(k)
	want := tagOf(h)
	start := int(h % uint64(s.capacity))
	for i := 0; i < maxInsertProbes && i < s.capacity; i++ {
		idx := (start + i) % s.capacity
		if !s.slotOccupied(idx) {
			s.values.Set(idx, v)
			s.meta.Set(idx, want)
			s.size++
			return node.FromIndex(idx), nil
		}
		if s.meta.At(idx) == want && s.keyOf(s.values.At(idx)) == k {
			return node.FromIndex(idx), nil
		}
	}
	return node.Null, fmt.Errorf("hashset: probe limit of %d exceeded inserting key %v", maxInsertProbes, k)
}

// At returns the value stored at p. It panics if p is Null or out of
// range, matching the arena's contract-violation-panics discipline.
func (s *Set[V, K]) At(p node.Ptr) V {
	return s.values.At(p.Index())
}

// Update overwrites the value stored at p in place, without touching its
// metadata byte or changing size. The caller must not change the part of
// V that keyOf projects: Update is meant for mutating auxiliary fields of
// an already-interned record (a memoized future, say), not its identity.
func (s *Set[V, K]) Update(p node.Ptr, v V) {
	s.values.Set(p.Index(), v)
}

// Clear discards every entry at once. The backing buffers are reused in
// place; no allocation occurs.
func (s *Set[V, K]) Clear() {
	for i := 0; i < s.capacity; i++ {
		s.meta.Set(i, 0)
	}
	s.size = 0
}

// Clone returns an independent copy of s: mutating the clone's entries
// does not affect s and vice versa.
func (s *Set[V, K]) Clone() *Set[V, K] {
	clone := New[V, K](s.capacity, s.keyOf, s.hashOf)
	for i := 0; i < s.capacity; i++ {
		clone.meta.Set(i, s.meta.At(i))
		clone.values.Set(i, s.values.At(i))
	}
	clone.size = s.size
	return clone
}

// Iterator walks every slot of a Set, occupied or not, in index order.
// Begin and End bound the valid range; Advance steps forward one slot.
type Iterator[V any, K comparable] struct {
	set *Set[V, K]
	idx int
}

// Begin returns an iterator positioned at the first slot.
func (s *Set[V, K]) Begin() Iterator[V, K] { return Iterator[V, K]{set: s, idx: 0} }

// End returns an iterator positioned one past the last slot.
func (s *Set[V, K]) End() Iterator[V, K] { return Iterator[V, K]{set: s, idx: s.capacity} }

// Advance moves the iterator forward one slot.
func (it *Iterator[V, K]) Advance() { it.idx++ }

// Equal reports whether two iterators over the same Set point at the same
// slot.
func (it Iterator[V, K]) Equal(other Iterator[V, K]) bool { return it.idx == other.idx }

// Occupied reports whether the slot the iterator currently points at
// holds a value.
func (it Iterator[V, K]) Occupied() bool { return it.set.slotOccupied(it.idx) }

// Value returns the value at the iterator's current slot. It is only
// meaningful when Occupied reports true.
func (it Iterator[V, K]) Value() V { return it.set.values.At(it.idx) }

// Index returns the iterator's current slot index, for tests that want to
// reason about iterator arithmetic directly.
func (it Iterator[V, K]) Index() int { return it.idx }
