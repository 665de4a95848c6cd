// Package cell implements the 8x8 bit-parallel base case of the Hashlife
// quadtree: a single 64-bit bitmap evolved with branch-free Life rules,
// using the full/half adders in kernel to sum neighbour counts across the
// whole block in constant time.
package cell

import (
	"encoding/binary"
	"math/bits"

	"github.com/dchest/siphash"

	"github.com/arenahash/hashlife/kernel"
)

// hashKey0, hashKey1 seed the content hash. Fixed and arbitrary: only
// internal consistency (same bitmap always hashes the same) matters, not
// resistance to adversarial input.
const (
	hashKey0 = 0x9e3779b97f4a7c15
	hashKey1 = 0xc2b2ae3d27d4eb4f
)

// Block is an 8x8 Game-of-Life grid packed row-major into a uint64: the
// cell at row r, column c lives at bit c+8r. Origin is top-left; x
// increases east, y increases south. Block is a value type: copy freely.
type Block uint64

const (
	borderMask = 0x007E7E7E7E7E7E00 // rows/cols 0 and 7 cleared
	innerMask  = 0x00003C3C3C3C0000 // inner 4x4 only (rows/cols 2..5)

	colMaskNoEast = 0x7F7F7F7F7F7F7F7F // column 7 cleared in every row
	colMaskNoWest = 0xFEFEFEFEFEFEFEFE // column 0 cleared in every row

	nibbleHigh = 0xF0F0F0F0F0F0F0F0 // columns 4..7 of every row
	nibbleLow  = 0x0F0F0F0F0F0F0F0F // columns 0..3 of every row

	rowsBottomHalf = 0xFFFFFFFF00000000 // rows 4..7
	rowsTopHalf    = 0x00000000FFFFFFFF // rows 0..3

	quadrantSE = 0xF0F0F0F000000000 // rows 4..7, columns 4..7
	quadrantSW = 0x0F0F0F0F00000000 // rows 4..7, columns 0..3
	quadrantNE = 0x00000000F0F0F0F0 // rows 0..3, columns 4..7
	quadrantNW = 0x000000000F0F0F0F // rows 0..3, columns 0..3
)

// FromBits wraps a raw bitmap as a Block with no validation.
func FromBits(bits uint64) Block { return Block(bits) }

// Bits returns the raw bitmap.
func (b Block) Bits() uint64 { return uint64(b) }

// Parse builds a Block from the textual format: '*' sets the current cell
// alive and advances the column, '.' advances the column leaving the cell
// dead, '$' resets the column and advances the row. Any other character is
// ignored. The parse never fails: rows or columns beyond 8 are simply
// dropped.
func Parse(s string) Block {
	var bits uint64
	row, col := 0, 0
	for _, r := range s {
		switch r {
		case '*':
			if row < 8 && col < 8 {
				bits |= 1 << uint(col+8*row)
			}
			col++
		case '.':
			col++
		case '$':
			row++
			col = 0
		default:
			// ignored
		}
	}
	return Block(bits)
}

// String renders the printable format: 8 lines of 8 characters, '*' for a
// living cell and '.' for a dead one, row by row.
func (b Block) String() string {
	buf := make([]byte, 0, 8*9)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if kernel.Bit(uint64(b), uint(col+8*row)) {
				buf = append(buf, '*')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// PopulationCount returns the number of live cells.
func (b Block) PopulationCount() int {
	return bits.OnesCount64(uint64(b))
}

// Empty reports whether the block has no live cells.
func (b Block) Empty() bool { return b == 0 }

// Equal reports whether two blocks have identical bitmaps.
func (b Block) Equal(other Block) bool { return b == other }

// Hash returns a content hash of the raw bitmap, stable across calls for
// equal blocks. Used as the key hash of the tier-0 hash-consing set.
func (b Block) Hash() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(b))
	return siphash.Hash(hashKey0, hashKey1, buf[:])
}

// North returns b shifted one row north (row r := old row r+1), zero-filling
// the vacated south edge.
func (b Block) North() Block { return Block(uint64(b) >> 8) }

// South returns b shifted one row south (row r := old row r-1), zero-filling
// the vacated north edge.
func (b Block) South() Block { return Block(uint64(b) << 8) }

// West returns b shifted one column west (col c := old col c+1), zero-filling
// the vacated east edge.
func (b Block) West() Block { return Block((uint64(b) >> 1) & colMaskNoEast) }

// East returns b shifted one column east (col c := old col c-1), zero-filling
// the vacated west edge.
func (b Block) East() Block { return Block((uint64(b) << 1) & colMaskNoWest) }

// Center builds the 8x8 block centred on the junction of its four
// neighbours: top-left is the SE quadrant of nw, top-right the SW quadrant
// of ne, bottom-left the NE quadrant of sw, bottom-right the NW quadrant of
// se.
func Center(nw, ne, sw, se Block) Block {
	return Block(
		(uint64(nw)&quadrantSE)>>36 |
			(uint64(ne)&quadrantSW)>>28 |
			(uint64(sw)&quadrantNE)<<28 |
			(uint64(se)&quadrantNW)<<36,
	)
}

// Horizontal stitches the east half of west and the west half of east into
// an 8x8 block straddling their shared boundary.
func Horizontal(west, east Block) Block {
	return Block(
		(uint64(west)&nibbleHigh)>>4 |
			(uint64(east)&nibbleLow)<<4,
	)
}

// Vertical stitches the south half of north and the north half of south into
// an 8x8 block straddling their shared boundary.
func Vertical(north, south Block) Block {
	return Block(
		(uint64(north)&rowsBottomHalf)>>32 |
			(uint64(south)&rowsTopHalf)<<32,
	)
}

// Step applies one generation of B3/S23 to every interior cell. The inner
// 6x6 region of the result is valid; the one-cell border is forced to 0
// since those cells lack a complete neighbourhood within this block alone.
func (b Block) Step() Block {
	v := uint64(b)

	// Horizontal 3-wide sum (self + west + east neighbour) per column.
	h1, h2 := kernel.FullAdd(v<<1, v, v>>1)

	// Vertical 3-wide sum of each horizontal bitplane across the row above
	// and below, collapsed (with deliberate mod-8 wraparound, harmless
	// since counts of 8 and 9 both mean death) into three bitplanes.
	vSum1, carry1 := kernel.FullAdd(h1<<8, h1, h1>>8)
	vSum2, carry2 := kernel.FullAdd(h2<<8, h2, h2>>8)
	sum2, carryTo4 := kernel.HalfAdd(carry1, vSum2)
	sum1 := vSum1
	sum4 := carry2 ^ carryTo4

	three := sum1 & sum2 & ^sum4
	fourAlive := ^sum1 & ^sum2 & sum4 & v
	return Block((three | fourAlive) & borderMask)
}

// Next applies Step twice and returns the result masked to the inner 4x4,
// the base case the macrocell recursion consumes.
func (b Block) Next() Block {
	return Block(uint64(b.Step().Step()) & innerMask)
}
