// Package kernel provides the branch-free bit-parallel primitives that the
// cell block's Life step is built from: single-bit extraction and the
// half/full adders used to sum neighbour counts across a whole word at once.
package kernel

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Bit reports whether bit i of v is set. Bits at or beyond the width of v
// are always clear.
func Bit[T constraints.Unsigned](v T, i uint) bool {
	if i >= uint(unsafe.Sizeof(v))*8 {
		return false
	}
	return (v>>i)&1 != 0
}

// HalfAdd adds a and b bitwise, independently at every bit position: no
// carry propagates between positions. sum+2*carry equals a+b at each bit.
func HalfAdd[T constraints.Unsigned](a, b T) (sum, carry T) {
	return a ^ b, a & b
}

// FullAdd adds a, b and c bitwise, independently at every bit position.
// sum+2*carry equals a+b+c at each bit.
func FullAdd[T constraints.Unsigned](a, b, c T) (sum, carry T) {
	sum = a ^ b ^ c
	carry = (a & b) | (b & c) | (a & c)
	return
}
