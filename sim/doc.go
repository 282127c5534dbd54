// Package sim provides the discrete-event simulation engine for a single-SKU
// continuous-review (s, S) inventory policy, plus the Monte Carlo estimator
// and grid optimizer built on top of it.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - inventory.go: inventory state (on-hand, on-order, position) and the reorder rule
//   - event.go: the two event types that drive the simulation (DemandArrival, OrderArrival)
//   - simulator.go: the event loop, time-weighted cost accrual, and horizon cutoff
//
// # Architecture
//
// The sim package owns the engine and the estimation layers; random process
// samplers live in the sub-package:
//   - sim/demand/: inter-arrival and lead-time samplers over a per-run *rand.Rand
//
// Layering, top down: GridSearch evaluates an Estimator per (s, S) cell; the
// Estimator runs N independent Simulators with derived seeds; each Simulator
// owns one InventoryState and one random stream, so replications and grid
// cells may execute concurrently without shared mutable state.
//
// # Determinism
//
// For a fixed SimulationConfig and seed, Run produces bit-identical
// RunResults. Replication i of a policy uses seed base+i; grid cell (s, S)
// salts the base seed so every cell is an independent reproducible stream.
package sim
