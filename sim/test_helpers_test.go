package sim

import (
	"testing"
)

// newTestCatalog builds a validated catalog over the given components with
// marker "P", a "G" filler, and the empty sentinel, seeded for determinism.
func newTestCatalog(t *testing.T, components ...Item) *Catalog {
	t.Helper()
	items := append([]Item{}, components...)
	items = append(items, "G", EmptyItem)
	c := NewCatalog(items, components, "P", 0, 0, NewPartitionedRNG(NewSimulationKey(42)))
	if err := c.Validate(); err != nil {
		t.Fatalf("test catalog invalid: %v", err)
	}
	return c
}

// newTestBelt wraps NewBelt for the common single-catalog case.
func newTestBelt(t *testing.T, length int, budget int64, components ...Item) *Belt {
	t.Helper()
	return NewBelt(length, newTestCatalog(t, components...), budget, 0)
}

// holdAssembly force-sets a worker's left hand, bypassing Pick, so tests can
// stage completed and corrupted assemblies directly.
func holdAssembly(w *Worker, units ...Item) {
	w.left = append(Assembly(nil), units...)
}

// countersTotal sums every exit counter of a snapshot.
func countersTotal(c BeltCounters) int64 {
	total := c.Other + c.Finished
	for _, n := range c.Unpicked {
		total += n
	}
	return total
}
