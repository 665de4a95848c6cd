package macrocell

import (
	"testing"

	"github.com/arenahash/hashlife/node"
)

func identityHash(p node.Ptr) uint64 { return uint64(p) }

func TestNewStartsUnevolved(t *testing.T) {
	c := New(node.FromIndex(1), node.FromIndex(2), node.FromIndex(3), node.FromIndex(4))
	if c.Future.Step.Valid() || c.Future.Next.Valid() {
		t.Fatal("a freshly built Cell should have both Future slots Null")
	}
}

func TestChildrenEqual(t *testing.T) {
	a := Children{NW: node.FromIndex(1), NE: node.FromIndex(2), SW: node.FromIndex(3), SE: node.FromIndex(4)}
	b := a
	if !a.Equal(b) {
		t.Fatal("identical Children tuples should be Equal")
	}
	swapped := Children{NW: node.FromIndex(2), NE: node.FromIndex(1), SW: node.FromIndex(3), SE: node.FromIndex(4)}
	if a.Equal(swapped) {
		t.Fatal("swapping NW and NE must not compare Equal")
	}
}

func TestHashIsOrderSensitive(t *testing.T) {
	a := Children{NW: node.FromIndex(1), NE: node.FromIndex(2), SW: node.FromIndex(3), SE: node.FromIndex(4)}
	swapped := Children{NW: node.FromIndex(2), NE: node.FromIndex(1), SW: node.FromIndex(3), SE: node.FromIndex(4)}
	if a.Hash(identityHash) == swapped.Hash(identityHash) {
		t.Fatal("swapping NW and NE must change the combined hash")
	}
}

func TestHashIsDeterministic(t *testing.T) {
	a := Children{NW: node.FromIndex(5), NE: node.FromIndex(6), SW: node.FromIndex(7), SE: node.FromIndex(8)}
	b := a
	if a.Hash(identityHash) != b.Hash(identityHash) {
		t.Fatal("equal Children tuples must hash equal")
	}
}
