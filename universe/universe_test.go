package universe

import (
	"testing"

	"github.com/arenahash/hashlife/cell"
	"github.com/arenahash/hashlife/config"
	"github.com/arenahash/hashlife/macrocell"
)

func newTestUniverse(t *testing.T) *Universe {
	t.Helper()
	u, err := New(config.Topology{
		CellCapacity:   64,
		TierCapacities: []int{64, 64, 64},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return u
}

func TestInternCellDedup(t *testing.T) {
	u := newTestUniverse(t)
	p1, err := u.InternCell(cell.Blinker())
	if err != nil {
		t.Fatalf("InternCell: %v", err)
	}
	p2, err := u.InternCell(cell.Blinker())
	if err != nil {
		t.Fatalf("InternCell: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("interning the same cell block twice should return the same pointer: %v != %v", p1, p2)
	}
}

func TestInternNodeDedup(t *testing.T) {
	u := newTestUniverse(t)
	empty, err := u.InternCell(cell.EmptySquare())
	if err != nil {
		t.Fatalf("InternCell: %v", err)
	}
	children := macrocell.Children{NW: empty, NE: empty, SW: empty, SE: empty}

	p1, err := u.InternNode(1, children)
	if err != nil {
		t.Fatalf("InternNode: %v", err)
	}
	p2, err := u.InternNode(1, children)
	if err != nil {
		t.Fatalf("InternNode: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("interning the same macrocell twice should return the same pointer: %v != %v", p1, p2)
	}
}

func TestNextIsMemoized(t *testing.T) {
	u := newTestUniverse(t)
	empty, err := u.InternCell(cell.EmptySquare())
	if err != nil {
		t.Fatalf("InternCell: %v", err)
	}
	m, err := u.InternNode(1, macrocell.Children{NW: empty, NE: empty, SW: empty, SE: empty})
	if err != nil {
		t.Fatalf("InternNode: %v", err)
	}

	r1, err := u.Next(1, m)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	r2, err := u.Next(1, m)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if r1 != r2 {
		t.Fatalf("two consecutive Next calls on the same node should return the same pointer: %v != %v", r1, r2)
	}

	rec := u.Node(1, m)
	if rec.Future.Next != r1 {
		t.Fatal("Next's result should be memoized into the macrocell's Future.Next slot")
	}
}

func TestNextOfEmptyIsEmpty(t *testing.T) {
	u := newTestUniverse(t)
	empty, err := u.InternCell(cell.EmptySquare())
	if err != nil {
		t.Fatalf("InternCell: %v", err)
	}
	m, err := u.InternNode(1, macrocell.Children{NW: empty, NE: empty, SW: empty, SE: empty})
	if err != nil {
		t.Fatalf("InternNode: %v", err)
	}
	r, err := u.Next(1, m)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got := u.Cell(r); !got.Empty() {
		t.Fatalf("an all-empty macrocell should stay empty forever, got:\n%s", got)
	}
}

func TestNextAtTierTwo(t *testing.T) {
	u := newTestUniverse(t)
	empty, err := u.InternCell(cell.EmptySquare())
	if err != nil {
		t.Fatalf("InternCell: %v", err)
	}
	tier1, err := u.InternNode(1, macrocell.Children{NW: empty, NE: empty, SW: empty, SE: empty})
	if err != nil {
		t.Fatalf("InternNode: %v", err)
	}
	tier2, err := u.InternNode(2, macrocell.Children{NW: tier1, NE: tier1, SW: tier1, SE: tier1})
	if err != nil {
		t.Fatalf("InternNode: %v", err)
	}

	r1, err := u.Next(2, tier2)
	if err != nil {
		t.Fatalf("Next at tier 2: %v", err)
	}
	r2, err := u.Next(2, tier2)
	if err != nil {
		t.Fatalf("Next at tier 2: %v", err)
	}
	if r1 != r2 {
		t.Fatal("Next at tier 2 should be memoized the same way as tier 1")
	}

	got := u.Node(1, r1)
	allEmpty := got.NW == got.NE && got.NE == got.SW && got.SW == got.SE
	if !allEmpty || u.Cell(got.NW) != cell.EmptySquare() {
		t.Fatal("an all-empty tier-2 macrocell should evolve to an all-empty tier-1 result")
	}
}

func TestStepRejectsTierZero(t *testing.T) {
	u := newTestUniverse(t)
	if _, err := u.Next(0, 0); err == nil {
		t.Fatal("Next(0, ...) should report an error: tier 0 has no macrocell structure")
	}
	if _, err := u.Step(0, 0); err == nil {
		t.Fatal("Step(0, ...) should report an error")
	}
}

func TestResetStampsNewEpochAndClearsTables(t *testing.T) {
	u := newTestUniverse(t)
	before := u.Epoch()
	p, err := u.InternCell(cell.Blinker())
	if err != nil {
		t.Fatalf("InternCell: %v", err)
	}
	u.Reset()
	if u.Epoch() == before {
		t.Fatal("Reset should stamp a fresh epoch id")
	}
	if u.tier0.Size() != 0 {
		t.Fatal("Reset should clear tier 0")
	}
	// After reset the table is empty again, so interning the same block
	// must succeed without error.
	if _, err := u.InternCell(cell.Blinker()); err != nil {
		t.Fatalf("InternCell after Reset: %v", err)
	}
	_ = p
}
