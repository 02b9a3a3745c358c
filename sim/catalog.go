// Defines the Catalog, the immutable description of what travels on the belt:
// the item alphabet, the subset that counts as components, the finished-product
// marker, and the stochastic generator feeding the belt's entry slot.

package sim

import (
	"time"
	"unicode"
)

// Item is a single unit travelling on the belt: a component, a filler, the
// finished-product marker, or the empty sentinel marking a vacant slot.
type Item string

// EmptyItem is the empty-slot sentinel. The item catalog must contain it at
// least once so a finished product always has somewhere to land.
const EmptyItem Item = ""

// IsEmpty reports whether the item is the empty-slot sentinel.
func (it Item) IsEmpty() bool { return it == EmptyItem }

// alphanumeric reports whether the item is non-empty and contains only
// letters and digits.
func (it Item) alphanumeric() bool {
	if len(it) == 0 {
		return false
	}
	for _, r := range it {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Catalog is built once from validated configuration and read everywhere.
// Only its RNG streams carry state between NextItem calls.
type Catalog struct {
	items        []Item
	components   []Item
	finished     Item
	componentSet map[Item]struct{}

	// arrival interval bounds; both zero disables the pre-draw pause
	minInterval time.Duration
	maxInterval time.Duration

	rng *PartitionedRNG
}

// NewCatalog copies the supplied slices so later caller mutation cannot
// change the catalog. Call Validate before handing the catalog to a belt.
func NewCatalog(items, components []Item, finished Item, minInterval, maxInterval time.Duration, rng *PartitionedRNG) *Catalog {
	c := &Catalog{
		items:        append([]Item(nil), items...),
		components:   append([]Item(nil), components...),
		finished:     finished,
		componentSet: make(map[Item]struct{}, len(components)),
		minInterval:  minInterval,
		maxInterval:  maxInterval,
		rng:          rng,
	}
	for _, comp := range components {
		c.componentSet[comp] = struct{}{}
	}
	return c
}

// Validate checks the catalog rules and returns a ConfigError naming the
// first violated one. It is side-effect free and idempotent.
func (c *Catalog) Validate() error {
	if !c.finished.alphanumeric() {
		return invalidConfigf("finished product %q is not alphanumeric", string(c.finished))
	}
	if len(c.components) == 0 {
		return invalidConfigf("at least one component is required")
	}
	for _, comp := range c.components {
		if comp == EmptyItem {
			return invalidConfigf("empty string supplied as a component")
		}
		if !comp.alphanumeric() {
			return invalidConfigf("component %q is not alphanumeric", string(comp))
		}
		if len(comp) != 1 {
			return invalidConfigf("component %q must be a single character", string(comp))
		}
		if comp == c.finished {
			return invalidConfigf("component %q equals the finished product marker", string(comp))
		}
		if !c.inItems(comp) {
			return invalidConfigf("component %q does not appear in the item catalog", string(comp))
		}
		if c.countOf(comp) != 1 {
			return invalidConfigf("component %q is declared more than once", string(comp))
		}
	}
	if !c.inItems(EmptyItem) {
		return invalidConfigf("item catalog must contain at least one empty slot item")
	}
	return nil
}

func (c *Catalog) inItems(item Item) bool {
	for _, it := range c.items {
		if it == item {
			return true
		}
	}
	return false
}

func (c *Catalog) countOf(comp Item) int {
	n := 0
	for _, other := range c.components {
		if other == comp {
			n++
		}
	}
	return n
}

// NextItem draws the next item to place on the belt's entry slot, uniformly
// over the full catalog. When an arrival interval is configured it first
// pauses for a random duration in [minInterval, maxInterval] drawn from the
// delays stream, so the pause models timing without biasing item odds.
func (c *Catalog) NextItem() Item {
	if c.maxInterval > 0 {
		pause := c.minInterval
		if span := c.maxInterval - c.minInterval; span > 0 {
			pause += time.Duration(c.rng.ForSubsystem(SubsystemDelays).Int63n(int64(span) + 1))
		}
		time.Sleep(pause)
	}
	draws := c.rng.ForSubsystem(SubsystemItems)
	return c.items[draws.Intn(len(c.items))]
}

// IsComponent reports whether the item belongs to the component set.
func (c *Catalog) IsComponent(item Item) bool {
	_, ok := c.componentSet[item]
	return ok
}

// Finished returns the finished-product marker.
func (c *Catalog) Finished() Item { return c.finished }

// ComponentCount returns the number of distinct components a finished
// product requires.
func (c *Catalog) ComponentCount() int { return len(c.components) }

// Components returns a copy of the declared component list.
func (c *Catalog) Components() []Item {
	return append([]Item(nil), c.components...)
}
