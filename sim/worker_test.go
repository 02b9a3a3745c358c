package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPick_RejectsMarkerAndForeignItems(t *testing.T) {
	tests := []struct {
		name string
		item Item
	}{
		{"finished-product marker", "P"},
		{"filler item", "G"},
		{"unknown item", "Z"},
		{"empty sentinel", EmptyItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN an idle worker
			w := NewWorker(1, newTestCatalog(t, "A", "B", "C"), 0)

			// WHEN the item is offered
			picked := w.Pick(tt.item)

			// THEN the pick is refused and the hands stay empty
			if picked {
				t.Fatalf("Pick(%q): got true, want false", tt.item)
			}
			if w.State() != StateIdle {
				t.Errorf("state after refused pick: got %s, want %s", w.State(), StateIdle)
			}
		})
	}
}

func TestWorkerPick_BothHandsEmpty_AccumulatorTakesItem(t *testing.T) {
	// GIVEN an idle worker
	w := NewWorker(1, newTestCatalog(t, "A", "B"), 0)

	// WHEN the first component arrives
	picked := w.Pick("A")

	// THEN the left (accumulator) hand receives it
	assert.True(t, picked)
	assert.Equal(t, Assembly{"A"}, w.left)
	assert.Equal(t, EmptyItem, w.right)
	assert.Equal(t, StateCollecting, w.State())
}

func TestWorkerPick_SecondComponent_GoesToRightHand(t *testing.T) {
	// GIVEN a worker holding one component in the accumulator
	w := NewWorker(1, newTestCatalog(t, "A", "B"), 0)
	w.Pick("A")

	// WHEN a different component arrives
	picked := w.Pick("B")

	// THEN the right hand stages it for the next assemble
	assert.True(t, picked)
	assert.Equal(t, Assembly{"A"}, w.left)
	assert.Equal(t, Item("B"), w.right)
	assert.Equal(t, StateCombining, w.State())
}

func TestWorkerPick_DuplicateOfAccumulator_Refused(t *testing.T) {
	// GIVEN a worker whose accumulator already holds A
	w := NewWorker(1, newTestCatalog(t, "A", "B"), 0)
	w.Pick("A")

	// WHEN another A is offered
	picked := w.Pick("A")

	// THEN the pick is refused and the hands are unchanged
	assert.False(t, picked)
	assert.Equal(t, Assembly{"A"}, w.left)
	assert.Equal(t, EmptyItem, w.right)
}

func TestWorkerPick_DuplicateOfRightHand_Refused(t *testing.T) {
	// GIVEN a worker holding a pre-collected component in the right hand only
	w := NewWorker(1, newTestCatalog(t, "A", "B"), 0)
	w.right = "A"

	// WHEN the same unit is offered
	pickedDup := w.Pick("A")

	// THEN it is refused, while a different component still lands in the accumulator
	assert.False(t, pickedDup)
	assert.True(t, w.Pick("B"))
	assert.Equal(t, Assembly{"B"}, w.left)
	assert.Equal(t, Item("A"), w.right)
}

func TestWorkerPick_HandsFull_Refused(t *testing.T) {
	// GIVEN a worker with both hands occupied
	w := NewWorker(1, newTestCatalog(t, "A", "B", "C"), 0)
	w.Pick("A")
	w.Pick("B")

	// WHEN a third component is offered
	picked := w.Pick("C")

	// THEN the pick is refused
	assert.False(t, picked)
	assert.Equal(t, Assembly{"A"}, w.left)
	assert.Equal(t, Item("B"), w.right)
}

func TestWorkerPick_PreCollectionWhileAwaitingRelease(t *testing.T) {
	// GIVEN a worker holding a completed assembly
	w := NewWorker(1, newTestCatalog(t, "A", "B", "C"), 0)
	holdAssembly(w, "A", "B", "C")

	// WHEN components are offered before the release happens
	first := w.Pick("A")
	second := w.Pick("B")

	// THEN the right hand stages exactly one of them, even a unit already in
	// the finished assembly, and the state stays release-pending
	assert.True(t, first, "release-pending worker must still stage one component")
	assert.False(t, second, "right hand already staged")
	assert.Equal(t, Item("A"), w.right)
	assert.Equal(t, Assembly{"A", "B", "C"}, w.left)
	assert.Equal(t, StateAwaitingRelease, w.State())
}

func TestWorkerAssemble_BuildsUpAssembly(t *testing.T) {
	// GIVEN a worker holding (A | B) over components {A, B, C}
	cat := newTestCatalog(t, "A", "B", "C")
	w := NewWorker(1, cat, 0)
	belt := NewBelt(3, cat, 100, 0)
	w.Pick("A")
	w.Pick("B")

	// WHEN the worker assembles
	assert.True(t, w.CanAssemble())
	assert.True(t, w.Assemble(belt))

	// THEN the right unit is appended onto the accumulator
	assert.Equal(t, Assembly{"A", "B"}, w.left)
	assert.Equal(t, EmptyItem, w.right)

	// WHEN the final component is picked and assembled
	assert.True(t, w.Pick("C"))
	assert.True(t, w.Assemble(belt))

	// THEN the worker holds a verified finished product
	assert.Equal(t, Assembly{"A", "B", "C"}, w.left)
	finished, err := w.HoldsFinished()
	assert.NoError(t, err)
	assert.True(t, finished)
	assert.Equal(t, StateAwaitingRelease, w.State())
}

func TestWorkerAssemble_NotEligible(t *testing.T) {
	cat := newTestCatalog(t, "A", "B")
	belt := NewBelt(3, cat, 100, 0)

	// GIVEN an idle worker
	idle := NewWorker(1, cat, 0)
	// THEN assembling is a no-op
	if idle.Assemble(belt) {
		t.Error("idle worker assembled")
	}

	// GIVEN a worker already holding a completed assembly plus a staged unit
	done := NewWorker(2, cat, 0)
	holdAssembly(done, "A", "B")
	done.right = "A"
	// THEN assembling is refused so the completed assembly cannot grow
	if done.Assemble(belt) {
		t.Error("release-pending worker assembled on top of a finished product")
	}
	assert.Equal(t, Assembly{"A", "B"}, done.left)
	assert.Equal(t, Item("A"), done.right)
}

func TestWorkerAssemble_DrivesBeltDuringWait(t *testing.T) {
	// GIVEN a worker with a three-tick assembly time
	cat := newTestCatalog(t, "A", "B", "C")
	w := NewWorker(1, cat, 3)
	belt := NewBelt(3, cat, 100, 0)
	w.Pick("A")
	w.Pick("B")

	// WHEN the worker assembles
	w.Assemble(belt)

	// THEN the belt advanced once per tick of the wait
	if belt.Consumed() != 3 {
		t.Errorf("belt ticks during assembly: got %d, want 3", belt.Consumed())
	}
}

func TestWorkerAssemble_WaitStopsAtBudget(t *testing.T) {
	// GIVEN a five-tick assembly but only two ticks left in the budget
	cat := newTestCatalog(t, "A", "B", "C")
	w := NewWorker(1, cat, 5)
	belt := NewBelt(3, cat, 2, 0)
	w.Pick("A")
	w.Pick("B")

	// WHEN the worker assembles
	ok := w.Assemble(belt)

	// THEN the hands still update but the belt stops at the budget
	assert.True(t, ok)
	assert.Equal(t, Assembly{"A", "B"}, w.left)
	assert.Equal(t, int64(2), belt.Consumed())
	assert.True(t, belt.Exhausted())
}

func TestWorkerHoldsFinished_PartialAssembly(t *testing.T) {
	// GIVEN a worker mid-collection
	w := NewWorker(1, newTestCatalog(t, "A", "B", "C"), 0)
	holdAssembly(w, "A", "B")

	// WHEN the hand is checked
	finished, err := w.HoldsFinished()

	// THEN it is neither finished nor a fault
	assert.False(t, finished)
	assert.NoError(t, err)
}

func TestWorkerHoldsFinished_FaultVectors(t *testing.T) {
	tests := []struct {
		name  string
		units []Item
	}{
		{"foreign unit", []Item{"A", "B", "D"}},
		{"duplicate unit", []Item{"A", "A", "B"}},
		{"overlong assembly", []Item{"A", "B", "C", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a worker holding a corrupted completed assembly
			w := NewWorker(7, newTestCatalog(t, "A", "B", "C"), 0)
			holdAssembly(w, tt.units...)

			// WHEN the hand is checked
			finished, err := w.HoldsFinished()

			// THEN the check reports an inconsistent product, never true
			if finished {
				t.Fatal("corrupted assembly reported as finished")
			}
			if !errors.Is(err, ErrInconsistentProduct) {
				t.Fatalf("got %v, want an ErrInconsistentProduct", err)
			}
			var fault *ProductError
			if !errors.As(err, &fault) {
				t.Fatalf("got %T, want *ProductError", err)
			}
			assert.Equal(t, 7, fault.WorkerID)
			assert.Equal(t, Assembly(tt.units).String(), fault.Combination)
		})
	}
}

func TestWorkerHoldsFinished_NoComponentsDeclared(t *testing.T) {
	// GIVEN an idle worker over a catalog declaring no components.
	// Validation refuses such a catalog, so it is built directly here.
	cat := NewCatalog([]Item{"G", EmptyItem}, nil, "P", 0, 0, NewPartitionedRNG(NewSimulationKey(42)))
	w := NewWorker(1, cat, 0)

	// WHEN the empty hand is checked
	finished, err := w.HoldsFinished()

	// THEN it never counts as a finished product
	assert.False(t, finished)
	assert.NoError(t, err)
}

func TestWorkerRelease_NoComponentsDeclared_NoOp(t *testing.T) {
	// GIVEN an idle worker over a catalog declaring no components
	cat := NewCatalog([]Item{"G", EmptyItem}, nil, "P", 0, 0, NewPartitionedRNG(NewSimulationKey(42)))
	belt := NewBelt(3, cat, 100, 0)
	w := NewWorker(1, cat, 0)

	// WHEN a release is attempted at an empty slot
	released, err := w.Release(belt, 0)

	// THEN nothing is deposited and no combination is recorded
	assert.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, EmptyItem, belt.Slot(0))
	assert.Empty(t, belt.Released())
}

func TestWorkerRelease_DepositsAndKeepsStagedHand(t *testing.T) {
	// GIVEN a release-pending worker with a pre-collected right hand
	cat := newTestCatalog(t, "A", "B")
	belt := NewBelt(3, cat, 100, 0)
	w := NewWorker(1, cat, 0)
	holdAssembly(w, "A", "B")
	w.right = "A"

	// WHEN the worker releases onto an empty slot
	released, err := w.Release(belt, 1)

	// THEN the marker lands in the slot, the combination is recorded, and
	// only the left hand clears
	assert.NoError(t, err)
	assert.True(t, released)
	assert.Equal(t, Item("P"), belt.Slot(1))
	assert.Equal(t, []string{"AB"}, belt.Released())
	assert.Equal(t, 0, w.left.Len())
	assert.Equal(t, Item("A"), w.right)
	assert.Equal(t, StateCollecting, w.State())
}

func TestWorkerRelease_OccupiedSlot_NoOp(t *testing.T) {
	// GIVEN a release-pending worker facing an occupied slot
	cat := newTestCatalog(t, "A", "B")
	belt := NewBelt(3, cat, 100, 0)
	belt.slots[1] = "G"
	w := NewWorker(1, cat, 0)
	holdAssembly(w, "A", "B")

	// WHEN the release is attempted
	released, err := w.Release(belt, 1)

	// THEN nothing moves and the worker keeps holding
	assert.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, Item("G"), belt.Slot(1))
	assert.Empty(t, belt.Released())
	assert.Equal(t, Assembly{"A", "B"}, w.left)
}

func TestWorkerRelease_WithoutFinishedProduct_NoOp(t *testing.T) {
	// GIVEN a worker mid-collection
	cat := newTestCatalog(t, "A", "B")
	belt := NewBelt(3, cat, 100, 0)
	w := NewWorker(1, cat, 0)
	w.Pick("A")

	// WHEN a release is attempted
	released, err := w.Release(belt, 0)

	// THEN it is refused without touching the belt
	assert.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, EmptyItem, belt.Slot(0))
	assert.Equal(t, Assembly{"A"}, w.left)
}

func TestWorkerRelease_CorruptAssembly_Faults(t *testing.T) {
	// GIVEN a worker holding a corrupted completed assembly
	cat := newTestCatalog(t, "A", "B")
	belt := NewBelt(3, cat, 100, 0)
	w := NewWorker(1, cat, 0)
	holdAssembly(w, "A", "A")

	// WHEN the release is attempted
	released, err := w.Release(belt, 0)

	// THEN the fault propagates and the belt is untouched
	assert.False(t, released)
	assert.True(t, errors.Is(err, ErrInconsistentProduct))
	assert.Equal(t, EmptyItem, belt.Slot(0))
	assert.Empty(t, belt.Released())
}

func TestWorkerState_Derivation(t *testing.T) {
	cat := newTestCatalog(t, "A", "B", "C")

	tests := []struct {
		name  string
		left  Assembly
		right Item
		want  WorkerState
	}{
		{"both hands empty", nil, EmptyItem, StateIdle},
		{"accumulator only", Assembly{"A"}, EmptyItem, StateCollecting},
		{"right hand only", nil, "A", StateCollecting},
		{"both hands occupied", Assembly{"A"}, "B", StateCombining},
		{"partial accumulator and right hand", Assembly{"A", "B"}, "C", StateCombining},
		{"completed assembly", Assembly{"A", "B", "C"}, EmptyItem, StateAwaitingRelease},
		{"completed assembly with staged hand", Assembly{"A", "B", "C"}, "A", StateAwaitingRelease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorker(1, cat, 0)
			w.left = tt.left
			w.right = tt.right
			if got := w.State(); got != tt.want {
				t.Errorf("State(): got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWorkerHands_Rendering(t *testing.T) {
	w := NewWorker(1, newTestCatalog(t, "A", "B"), 0)

	left, right := w.Hands()
	assert.Equal(t, "_", left)
	assert.Equal(t, "_", right)

	w.Pick("A")
	w.Pick("B")
	left, right = w.Hands()
	assert.Equal(t, "A", left)
	assert.Equal(t, "B", right)
}

func TestAssembly_Queries(t *testing.T) {
	a := Assembly{"A", "2", "C"}

	assert.Equal(t, 3, a.Len())
	assert.True(t, a.Contains("2"))
	assert.False(t, a.Contains("B"))
	assert.Equal(t, "A2C", a.String())
	assert.Equal(t, "", Assembly(nil).String())
}
