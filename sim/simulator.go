// sim/simulator.go
package sim

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Simulator is the tick scheduler. It drives the belt until the tick budget
// is exhausted or the run is interrupted, sweeping the slots after every
// advance so workers can pick, assemble, and release in a fixed order.
type Simulator struct {
	Belt *Belt
	// Workers holds the resident crew per slot; Workers[i] are the workers
	// stationed at slot i, visited in construction order every tick.
	Workers [][]*Worker
}

// NewSimulator wires a belt and its worker grid into a scheduler.
func NewSimulator(belt *Belt, workers [][]*Worker) *Simulator {
	return &Simulator{
		Belt:    belt,
		Workers: workers,
	}
}

// Run executes the simulation loop until the tick budget is exhausted or ctx
// is cancelled, and returns the released combinations in release order.
// Cancellation ends the run cleanly with partial results and a nil error; a
// ProductError aborts the run and is returned alongside whatever results
// were accumulated first. Belt counters stay valid in every outcome.
func (s *Simulator) Run(ctx context.Context) ([]string, error) {
	for ctx.Err() == nil && s.Belt.Tick() {
		cont, err := s.sweep(ctx)
		if err != nil {
			logrus.Errorf("[tick %07d] %v", s.Belt.Consumed(), err)
			return s.Belt.Released(), err
		}
		if !cont {
			break
		}
	}
	if ctx.Err() != nil {
		logrus.Infof("[tick %07d] Simulation interrupted", s.Belt.Consumed())
	} else {
		logrus.Infof("[tick %07d] Simulation ended", s.Belt.Consumed())
	}
	return s.Belt.Released(), nil
}

// sweep visits each slot in index order and each resident worker in
// construction order. A worker eligible to assemble does that and nothing
// else this tick; otherwise it attempts a release when the slot surface is
// empty, or a pick when it is occupied. At most one worker consumes or
// releases into a slot per outer tick, so co-located workers never fight
// over the same physical item. Returns false when the run must stop.
func (s *Simulator) sweep(ctx context.Context) (bool, error) {
	// True when the budget already died with the outer tick: the sweep for
	// that final advance still runs in full. A budget death inside a nested
	// assembly wait below stops the sweep immediately instead.
	spentBefore := s.Belt.Exhausted()

	for i := 0; i < s.Belt.Len(); i++ {
		if ctx.Err() != nil {
			return false, nil
		}
		taken := false
		for _, w := range s.Workers[i] {
			if w.CanAssemble() {
				w.Assemble(s.Belt)
				if s.Belt.Exhausted() && !spentBefore {
					return false, nil
				}
				continue
			}
			if taken {
				continue
			}
			if s.Belt.Slot(i) == EmptyItem {
				released, err := w.Release(s.Belt, i)
				if err != nil {
					return false, err
				}
				if released {
					taken = true
				}
			} else if w.Pick(s.Belt.Slot(i)) {
				s.Belt.Clear(i)
				taken = true
			}
		}
	}
	return true, nil
}
