// Package universe wires the cell, macrocell and hashset packages
// together into a running Hashlife engine: one hash-consing set per
// tier, the recursive jump-ahead Next algorithm, and the full-reset
// reclamation that the arena-backed tables require.
package universe

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/arenahash/hashlife/cell"
	"github.com/arenahash/hashlife/config"
	"github.com/arenahash/hashlife/diag"
	"github.com/arenahash/hashlife/hashset"
	"github.com/arenahash/hashlife/macrocell"
	"github.com/arenahash/hashlife/node"
)

// identityPtrHash is the hash used for every macrocell tier's key: once a
// child pointer has been interned, pointer equality already implies
// structural equality, so the pointer's own value is a sufficient and
// far cheaper stand-in for a content hash.
func identityPtrHash(p node.Ptr) uint64 { return uint64(p) }

func childrenOf(c macrocell.Cell) macrocell.Children { return c.Children }

func childrenHash(c macrocell.Children) uint64 { return c.Hash(identityPtrHash) }

func blockIdentity(b cell.Block) cell.Block { return b }

// Universe owns one hash-consing table per tier: tier 0 holds cell
// blocks, tiers 1..N hold macrocells whose children point one tier down.
type Universe struct {
	tier0 *hashset.Set[cell.Block, cell.Block]
	macro []*hashset.Set[macrocell.Cell, macrocell.Children]
	epoch uuid.UUID
}

// New builds an empty Universe sized according to top.
func New(top config.Topology) (*Universe, error) {
	if err := top.Validate(); err != nil {
		return nil, err
	}
	u := &Universe{
		tier0: hashset.New[cell.Block, cell.Block](top.CellCapacity, blockIdentity, cell.Block.Hash),
		macro: make([]*hashset.Set[macrocell.Cell, macrocell.Children], len(top.TierCapacities)),
	}
	for i, capacity := range top.TierCapacities {
		u.macro[i] = hashset.New[macrocell.Cell, macrocell.Children](capacity, childrenOf, childrenHash)
	}
	u.epoch = uuid.New()
	return u, nil
}

// NumTiers returns the number of macrocell tiers above tier 0.
func (u *Universe) NumTiers() int { return len(u.macro) }

// Epoch identifies the current generation of tables: it changes every
// time Reset runs, so diagnostics from before and after a reset are
// never mistaken for the same run.
func (u *Universe) Epoch() uuid.UUID { return u.epoch }

// Reset discards every interned cell block and macrocell across every
// tier and stamps a fresh epoch id. This is the engine's only
// reclamation mechanism: there is no garbage collection of individual
// unreachable nodes.
func (u *Universe) Reset() {
	u.tier0.Clear()
	for _, m := range u.macro {
		m.Clear()
	}
	u.epoch = uuid.New()
	diag.Trace("universe: reset, new epoch %s", u.epoch)
}

// InternCell interns a cell block into tier 0, returning its canonical
// pointer.
func (u *Universe) InternCell(b cell.Block) (node.Ptr, error) {
	p, err := u.tier0.Emplace(b)
	if err != nil {
		diag.Trace("universe: tier 0 table full at capacity %d", u.tier0.Capacity())
		return node.Null, fmt.Errorf("universe: interning cell block: %w", err)
	}
	return p, nil
}

// Cell returns the cell block tier 0 pointer p refers to.
func (u *Universe) Cell(p node.Ptr) cell.Block {
	return u.tier0.At(p)
}

func (u *Universe) checkTier(tier int) error {
	if tier < 1 || tier > len(u.macro) {
		return fmt.Errorf("universe: tier %d out of range [1, %d]", tier, len(u.macro))
	}
	return nil
}

// InternNode interns a macrocell at the given tier (1-based: tier 1's
// children are tier-0 cell blocks), returning its canonical pointer.
func (u *Universe) InternNode(tier int, children macrocell.Children) (node.Ptr, error) {
	if err := u.checkTier(tier); err != nil {
		return node.Null, err
	}
	p, err := u.macro[tier-1].Emplace(macrocell.New(children.NW, children.NE, children.SW, children.SE))
	if err != nil {
		diag.Trace("universe: tier %d table full at capacity %d", tier, u.macro[tier-1].Capacity())
		return node.Null, fmt.Errorf("universe: interning tier %d macrocell: %w", tier, err)
	}
	return p, nil
}

// Node returns the macrocell record tier-tier pointer p refers to.
func (u *Universe) Node(tier int, p node.Ptr) macrocell.Cell {
	return u.macro[tier-1].At(p)
}

func (u *Universe) putNode(tier int, p node.Ptr, c macrocell.Cell) {
	u.macro[tier-1].Update(p, c)
}

// centeredHorizontal builds the tier-level node straddling the shared
// east/west boundary of west and east, the macrocell analogue of
// cell.Horizontal.
func (u *Universe) centeredHorizontal(tier int, west, east node.Ptr) (node.Ptr, error) {
	w := u.Node(tier, west).Children
	e := u.Node(tier, east).Children
	return u.InternNode(tier, macrocell.Children{NW: w.NE, NE: e.NW, SW: w.SE, SE: e.SW})
}

// centeredVertical builds the tier-level node straddling the shared
// north/south boundary of north and south, the macrocell analogue of
// cell.Vertical.
func (u *Universe) centeredVertical(tier int, north, south node.Ptr) (node.Ptr, error) {
	n := u.Node(tier, north).Children
	s := u.Node(tier, south).Children
	return u.InternNode(tier, macrocell.Children{NW: n.SW, NE: n.SE, SW: s.NW, SE: s.NE})
}

// centeredSub builds the tier-level node centred on the junction of all
// four quadrants, the macrocell analogue of cell.Center.
func (u *Universe) centeredSub(tier int, nw, ne, sw, se node.Ptr) (node.Ptr, error) {
	nwC := u.Node(tier, nw).Children
	neC := u.Node(tier, ne).Children
	swC := u.Node(tier, sw).Children
	seC := u.Node(tier, se).Children
	return u.InternNode(tier, macrocell.Children{NW: nwC.SE, NE: neC.SW, SW: swC.NE, SE: seC.NW})
}

// Next returns the pointer to the macrocell one tier below tier,
// representing the centre of the tier-level macrocell p advanced forward
// 2^(tier-2) generations (the largest single jump Hashlife can take at
// this tier). Results are memoized in p's Future.Next slot: a second
// call with the same (tier, p) does no recursive work.
func (u *Universe) Next(tier int, p node.Ptr) (node.Ptr, error) {
	if err := u.checkTier(tier); err != nil {
		return node.Null, err
	}
	rec := u.Node(tier, p)
	if rec.Future.Next.Valid() {
		return rec.Future.Next, nil
	}

	var result node.Ptr
	var err error
	if tier == 1 {
		result, err = u.nextBase(rec.Children)
	} else {
		result, err = u.nextComposite(tier, rec.Children)
	}
	if err != nil {
		return node.Null, err
	}

	rec.Future.Next = result
	u.putNode(tier, p, rec)
	return result, nil
}

// nextBase handles tier 1, where the four children are tier-0 cell
// blocks: the stitched 8x8 block centred on their junction, evolved two
// generations by the bit kernel, is already the full answer.
func (u *Universe) nextBase(children macrocell.Children) (node.Ptr, error) {
	nw := u.Cell(children.NW)
	ne := u.Cell(children.NE)
	sw := u.Cell(children.SW)
	se := u.Cell(children.SE)
	return u.InternCell(cell.Center(nw, ne, sw, se).Next())
}

// nextComposite handles tier >= 2 with the standard two-pass Hashlife
// recursion: nine overlapping tier-(tier-1) subnodes are each advanced
// once (nine recursive Next calls, at tier-2 results), four tier-(tier-1)
// nodes are rebuilt from those results and advanced a second time (four
// more recursive Next calls), and the final four tier-2 results are
// stitched into the tier-(tier-1) answer. Every recursive Next call is at
// tier-1, strictly smaller than tier, so the recursion always terminates
// at the tier-1 base case.
func (u *Universe) nextComposite(tier int, children macrocell.Children) (node.Ptr, error) {
	sub := tier - 1
	nw, ne, sw, se := children.NW, children.NE, children.SW, children.SE

	n, err := u.centeredHorizontal(sub, nw, ne)
	if err != nil {
		return node.Null, err
	}
	s, err := u.centeredHorizontal(sub, sw, se)
	if err != nil {
		return node.Null, err
	}
	w, err := u.centeredVertical(sub, nw, sw)
	if err != nil {
		return node.Null, err
	}
	e, err := u.centeredVertical(sub, ne, se)
	if err != nil {
		return node.Null, err
	}
	c, err := u.centeredSub(sub, nw, ne, sw, se)
	if err != nil {
		return node.Null, err
	}

	firstPass := func(ptrs ...node.Ptr) ([]node.Ptr, error) {
		out := make([]node.Ptr, len(ptrs))
		for i, ptr := range ptrs {
			r, err := u.Next(sub, ptr)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}

	r, err := firstPass(nw, n, ne, w, c, e, sw, s, se)
	if err != nil {
		return node.Null, err
	}
	cNW, cN, cNE, cW, cC, cE, cSW, cS, cSE := r[0], r[1], r[2], r[3], r[4], r[5], r[6], r[7], r[8]

	q00, err := u.InternNode(sub, macrocell.Children{NW: cNW, NE: cN, SW: cW, SE: cC})
	if err != nil {
		return node.Null, err
	}
	q01, err := u.InternNode(sub, macrocell.Children{NW: cN, NE: cNE, SW: cC, SE: cE})
	if err != nil {
		return node.Null, err
	}
	q10, err := u.InternNode(sub, macrocell.Children{NW: cW, NE: cC, SW: cSW, SE: cS})
	if err != nil {
		return node.Null, err
	}
	q11, err := u.InternNode(sub, macrocell.Children{NW: cC, NE: cE, SW: cS, SE: cSE})
	if err != nil {
		return node.Null, err
	}

	finalQuads, err := firstPass(q00, q01, q10, q11)
	if err != nil {
		return node.Null, err
	}

	return u.InternNode(sub, macrocell.Children{
		NW: finalQuads[0], NE: finalQuads[1], SW: finalQuads[2], SE: finalQuads[3],
	})
}

// Step returns the pointer to the macrocell one tier below tier,
// representing p advanced forward a single generation. Unlike Next, Step
// above tier 1 does not cross-stitch its children's boundaries: it
// simply steps each child independently and restitches them, a
// deliberately simplified approximation above the base case.
func (u *Universe) Step(tier int, p node.Ptr) (node.Ptr, error) {
	if err := u.checkTier(tier); err != nil {
		return node.Null, err
	}
	rec := u.Node(tier, p)
	if rec.Future.Step.Valid() {
		return rec.Future.Step, nil
	}

	var result node.Ptr
	var err error
	if tier == 1 {
		nw := u.Cell(rec.NW)
		ne := u.Cell(rec.NE)
		sw := u.Cell(rec.SW)
		se := u.Cell(rec.SE)
		result, err = u.InternCell(cell.Center(nw, ne, sw, se).Step())
	} else {
		sub := tier - 1
		cnw, e1 := u.Step(sub, rec.NW)
		cne, e2 := u.Step(sub, rec.NE)
		csw, e3 := u.Step(sub, rec.SW)
		cse, e4 := u.Step(sub, rec.SE)
		if err = firstErr(e1, e2, e3, e4); err == nil {
			result, err = u.InternNode(sub, macrocell.Children{NW: cnw, NE: cne, SW: csw, SE: cse})
		}
	}
	if err != nil {
		return node.Null, err
	}

	rec.Future.Step = result
	u.putNode(tier, p, rec)
	return result, nil
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
