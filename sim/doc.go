// Package sim provides the discrete-event engine behind the assembly-line
// simulator.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - belt.go: the slot array, the shared tick budget, exit counting
//   - worker.go: the two-hand state machine (pick → assemble → release)
//   - simulator.go: the tick scheduler and the per-slot sweep order
//
// # Architecture
//
// A run is assembled by Setup (config.go): it validates a Config, builds the
// immutable Catalog (catalog.go), the Belt, and a grid of Workers, and hands
// them to the Simulator. The Simulator owns no state of its own beyond that
// wiring; counters and released combinations live on the Belt.
//
// Time is a shared tick budget owned by the Belt. Belt.Tick is the single
// advance procedure: the outer loop calls it once per iteration, and an
// assembly wait calls it again for each tick of its duration, so the belt
// keeps moving underneath a busy worker while the budget is still decremented
// exactly once per advance.
//
// All randomness flows through PartitionedRNG (rng.go): runs with the same
// SimulationKey and configuration are bit-for-bit identical.
package sim
