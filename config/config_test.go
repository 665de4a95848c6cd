package config

import "testing"

func TestParseTopology(t *testing.T) {
	doc := []byte(`
cellCapacity: 1024
tierCapacities: [512, 256, 128]
`)
	top, err := ParseTopology(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if top.CellCapacity != 1024 {
		t.Fatalf("CellCapacity = %d, want 1024", top.CellCapacity)
	}
	if len(top.TierCapacities) != 3 || top.TierCapacities[0] != 512 {
		t.Fatalf("TierCapacities = %v", top.TierCapacities)
	}
}

func TestValidateRejectsNonPositiveCellCapacity(t *testing.T) {
	top := Topology{CellCapacity: 0, TierCapacities: []int{4}}
	if err := top.Validate(); err == nil {
		t.Fatal("expected an error for zero CellCapacity")
	}
}

func TestValidateRejectsEmptyTiers(t *testing.T) {
	top := Topology{CellCapacity: 4, TierCapacities: nil}
	if err := top.Validate(); err == nil {
		t.Fatal("expected an error for an empty tier list")
	}
}

func TestValidateRejectsNonPositiveTier(t *testing.T) {
	top := Topology{CellCapacity: 4, TierCapacities: []int{4, 0}}
	if err := top.Validate(); err == nil {
		t.Fatal("expected an error for a non-positive tier capacity")
	}
}
