// package config loads the declarative topology a universe is built
// from: how many distinct cell blocks and macrocells each tier's
// hash-consing set should have room for. This is run configuration read
// once at startup, not a representation of simulation state.
package config

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// Topology describes the table sizes a universe should allocate.
// TierCapacities[i] is the capacity of the macrocell table at tier i+1
// (tier 0, the cell-block table, is sized by CellCapacity instead).
type Topology struct {
	CellCapacity   int   `json:"cellCapacity"`
	TierCapacities []int `json:"tierCapacities"`
}

// ParseTopology unmarshals a Topology from a YAML document.
func ParseTopology(doc []byte) (Topology, error) {
	var t Topology
	if err := yaml.Unmarshal(doc, &t); err != nil {
		return Topology{}, fmt.Errorf("config: parsing topology: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Topology{}, err
	}
	return t, nil
}

// Validate reports an error if the topology cannot back a usable
// universe: every table needs strictly positive capacity, and there must
// be at least one macrocell tier above the cell blocks.
func (t Topology) Validate() error {
	if t.CellCapacity <= 0 {
		return fmt.Errorf("config: cellCapacity must be positive, got %d", t.CellCapacity)
	}
	if len(t.TierCapacities) == 0 {
		return fmt.Errorf("config: tierCapacities must name at least one tier")
	}
	for i, c := range t.TierCapacities {
		if c <= 0 {
			return fmt.Errorf("config: tierCapacities[%d] must be positive, got %d", i, c)
		}
	}
	return nil
}
