// Implements the Belt, the fixed-length slot array every worker operates on.
// The belt owns the shared tick budget, the exit counters, and the log of
// released combinations.

package sim

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// BeltCounters is a read-only snapshot of the belt's exit accounting.
// Every tick classifies exactly one exiting item, so for a completed run
// Unpicked totals + Other + Finished add up to the consumed tick budget.
type BeltCounters struct {
	Unpicked map[Item]int64 // exits per tracked component
	Other    int64          // filler and empty-slot exits
	Finished int64          // finished-product marker exits
}

// Belt holds the slot array and advances it one position per tick.
// Slot 0 is the entry where freshly generated items appear; the last slot is
// the exit whose content is counted and discarded on the next advance.
type Belt struct {
	slots   []Item
	catalog *Catalog

	budget    int64 // total tick budget configured for the run
	remaining int64 // ticks left; decremented exactly once per advance
	delay     time.Duration

	unpicked map[Item]int64
	other    int64
	finished int64

	released []string // combinations deposited by workers, in release order
}

// NewBelt creates a belt of the given length with every slot empty.
func NewBelt(length int, catalog *Catalog, iterations int64, delay time.Duration) *Belt {
	b := &Belt{
		slots:     make([]Item, length),
		catalog:   catalog,
		budget:    iterations,
		remaining: iterations,
		delay:     delay,
		unpicked:  make(map[Item]int64, catalog.ComponentCount()),
	}
	for _, comp := range catalog.Components() {
		b.unpicked[comp] = 0
	}
	return b
}

// Tick advances the belt by one position: the exit slot's content is counted,
// every item shifts one slot toward the exit, and a freshly drawn item enters
// at slot 0. Returns false without advancing when the budget is exhausted.
// Callers may nest Tick inside an assembly wait; the budget is decremented
// exactly once per advance regardless of call depth.
func (b *Belt) Tick() bool {
	if b.remaining <= 0 {
		return false
	}

	exiting := b.slots[len(b.slots)-1]
	switch {
	case exiting == b.catalog.Finished():
		b.finished++
	case b.catalog.IsComponent(exiting):
		b.unpicked[exiting]++
	default:
		b.other++
	}

	for i := len(b.slots) - 1; i > 0; i-- {
		b.slots[i] = b.slots[i-1]
	}
	b.slots[0] = b.catalog.NextItem()
	b.remaining--

	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	logrus.Debugf("[tick %07d] belt %s", b.Consumed(), b)
	return true
}

// Clear empties the slot after a worker picks its content.
func (b *Belt) Clear(i int) {
	b.slots[i] = EmptyItem
}

// Deposit writes the finished-product marker into an empty slot and records
// the released combination. Returns false if the slot is occupied.
func (b *Belt) Deposit(i int, combination string) bool {
	if b.slots[i] != EmptyItem {
		return false
	}
	b.slots[i] = b.catalog.Finished()
	b.released = append(b.released, combination)
	return true
}

// Slot returns the item currently occupying slot i.
func (b *Belt) Slot(i int) Item { return b.slots[i] }

// Len returns the number of slots.
func (b *Belt) Len() int { return len(b.slots) }

// Remaining returns the number of ticks left in the budget.
func (b *Belt) Remaining() int64 { return b.remaining }

// Consumed returns the number of ticks spent so far.
func (b *Belt) Consumed() int64 { return b.budget - b.remaining }

// Exhausted reports whether the tick budget has run out.
func (b *Belt) Exhausted() bool { return b.remaining <= 0 }

// Counters returns a snapshot of the exit counters. The returned map is a
// copy; mutating it does not touch the belt.
func (b *Belt) Counters() BeltCounters {
	unpicked := make(map[Item]int64, len(b.unpicked))
	for comp, n := range b.unpicked {
		unpicked[comp] = n
	}
	return BeltCounters{Unpicked: unpicked, Other: b.other, Finished: b.finished}
}

// Released returns a copy of the combinations deposited so far, in order.
func (b *Belt) Released() []string {
	return append([]string(nil), b.released...)
}

func (b *Belt) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, item := range b.slots {
		if item == EmptyItem {
			sb.WriteString("_")
		} else {
			sb.WriteString(string(item))
		}
		if i < len(b.slots)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
