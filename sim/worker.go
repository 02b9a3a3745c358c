// Implements the Worker, the per-slot actor that picks components off the
// belt, combines them over a configured number of ticks, and deposits the
// finished product back onto an empty slot.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// WorkerState is the conceptual state derived from the worker's hand pair.
type WorkerState string

const (
	StateIdle            WorkerState = "idle"             // both hands empty
	StateCollecting      WorkerState = "collecting"       // exactly one hand occupied
	StateCombining       WorkerState = "combining"        // both hands occupied, assembly pending
	StateAwaitingRelease WorkerState = "awaiting_release" // left hand holds a completed assembly
)

// Assembly is the ordered record of the units a worker has accumulated
// toward a single product. Membership and length checks operate on whole
// units, never on the characters inside an item name.
type Assembly []Item

// Len returns the number of units picked so far.
func (a Assembly) Len() int { return len(a) }

// Contains reports whether the assembly already holds the given unit.
func (a Assembly) Contains(unit Item) bool {
	for _, u := range a {
		if u == unit {
			return true
		}
	}
	return false
}

// String joins the units into the combination recorded on release.
func (a Assembly) String() string {
	var s string
	for _, u := range a {
		s += string(u)
	}
	return s
}

// Worker holds up to two units at a time. The left hand is the sole
// accumulator of the growing assembly; the right hand stages the single unit
// appended on the next assemble.
type Worker struct {
	id           int
	catalog      *Catalog
	assemblyTime int // whole belt ticks consumed per assemble

	left  Assembly
	right Item
}

// NewWorker creates a worker. The id is assigned by the setup routine that
// builds the crew; the worker itself holds no shared id state.
func NewWorker(id int, catalog *Catalog, assemblyTime int) *Worker {
	return &Worker{
		id:           id,
		catalog:      catalog,
		assemblyTime: assemblyTime,
		right:        EmptyItem,
	}
}

// ID returns the identifier assigned at setup.
func (w *Worker) ID() int { return w.id }

// State derives the conceptual state from the hand pair.
func (w *Worker) State() WorkerState {
	switch {
	case w.left.Len() >= w.catalog.ComponentCount():
		return StateAwaitingRelease
	case w.left.Len() == 0 && w.right == EmptyItem:
		return StateIdle
	case w.left.Len() > 0 && w.right != EmptyItem:
		return StateCombining
	default:
		return StateCollecting
	}
}

// Hands renders the hand pair for logging, empty hands as "_".
func (w *Worker) Hands() (string, string) {
	left, right := "_", "_"
	if w.left.Len() > 0 {
		left = w.left.String()
	}
	if w.right != EmptyItem {
		right = string(w.right)
	}
	return left, right
}

// Pick offers the worker an item from the belt surface. It returns false,
// leaving the item on the belt, when the item is the finished-product marker,
// is not a recognized component, both hands are occupied, or taking it would
// duplicate a unit the worker already holds. On success the item is routed to
// an empty hand: the left (accumulator) hand when both are empty, otherwise
// whichever hand is free. A worker awaiting release may still stage one
// component in the right hand for the next cycle.
func (w *Worker) Pick(item Item) bool {
	if item == w.catalog.Finished() || !w.catalog.IsComponent(item) {
		return false
	}

	if w.left.Len() >= w.catalog.ComponentCount() {
		// Pre-collection: release-pending state does not block intake.
		if w.right != EmptyItem {
			return false
		}
		w.right = item
	} else {
		switch {
		case w.left.Len() == 0 && w.right == EmptyItem:
			w.left = append(w.left, item)
		case w.left.Len() == 0:
			if item == w.right {
				return false
			}
			w.left = append(w.left, item)
		case w.right == EmptyItem:
			if w.left.Contains(item) {
				return false
			}
			w.right = item
		default:
			logrus.Debugf("worker %d hands full, nothing to do", w.id)
			return false
		}
	}

	left, right := w.Hands()
	logrus.Debugf("worker %d picked component %s, hands (%s | %s)", w.id, string(item), left, right)
	return true
}

// CanAssemble reports whether both hands are occupied and the left hand has
// not yet reached the full component count.
func (w *Worker) CanAssemble() bool {
	return w.left.Len() > 0 && w.right != EmptyItem && w.left.Len() < w.catalog.ComponentCount()
}

// Assemble appends the right hand's unit onto the left-hand assembly and
// clears the right hand. The worker then stands at its station for the
// configured assembly duration while the belt keeps moving: each whole tick
// of the wait drives Belt.Tick directly, stopping early the moment the
// shared budget runs out. Returns false without touching the hands when the
// worker is not eligible.
func (w *Worker) Assemble(belt *Belt) bool {
	if !w.CanAssemble() {
		return false
	}

	w.left = append(w.left, w.right)
	w.right = EmptyItem

	left, right := w.Hands()
	if w.left.Len() == w.catalog.ComponentCount() {
		logrus.Infof("worker %d assembled a finished product (%s | %s)", w.id, left, right)
	} else {
		logrus.Infof("worker %d assembled an intermediate product (%s | %s)", w.id, left, right)
	}

	for i := 0; i < w.assemblyTime; i++ {
		if !belt.Tick() {
			break
		}
	}
	return true
}

// HoldsFinished reports whether the left hand holds a complete assembly.
// An empty hand never does. Reaching the component count triggers
// verification: every unit must be a recognized component and no unit may
// repeat. A violation is returned as a ProductError and is never silently
// corrected.
func (w *Worker) HoldsFinished() (bool, error) {
	if w.left.Len() == 0 {
		return false, nil
	}
	count := w.catalog.ComponentCount()
	if w.left.Len() < count {
		return false, nil
	}
	if w.left.Len() > count {
		return false, &ProductError{
			WorkerID:    w.id,
			Combination: w.left.String(),
			Reason:      fmt.Sprintf("holds %d units, want %d", w.left.Len(), count),
		}
	}
	seen := make(map[Item]struct{}, count)
	for _, unit := range w.left {
		if !w.catalog.IsComponent(unit) {
			return false, &ProductError{
				WorkerID:    w.id,
				Combination: w.left.String(),
				Reason:      fmt.Sprintf("unit %q is not a recognized component", string(unit)),
			}
		}
		if _, dup := seen[unit]; dup {
			return false, &ProductError{
				WorkerID:    w.id,
				Combination: w.left.String(),
				Reason:      fmt.Sprintf("unit %q appears more than once", string(unit)),
			}
		}
		seen[unit] = struct{}{}
	}
	return true, nil
}

// Release deposits the finished product onto the given belt slot. It is a
// no-op returning false when the worker does not hold a verified finished
// assembly or the slot is occupied. On success the marker lands in the slot,
// the combination is appended to the belt's results log, and only the left
// hand is cleared; a right hand staged for the next cycle stays put.
func (w *Worker) Release(belt *Belt, slot int) (bool, error) {
	finished, err := w.HoldsFinished()
	if err != nil {
		return false, err
	}
	if !finished {
		return false, nil
	}
	if !belt.Deposit(slot, w.left.String()) {
		return false, nil
	}
	logrus.Infof("worker %d released a product (%s) onto slot %d: %s", w.id, w.left.String(), slot, belt)
	w.left = nil
	return true, nil
}
