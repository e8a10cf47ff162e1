// Package sim provides the discrete-event simulation core for theboys:
// heroes travel between bases, wait in their queues, and are rewarded when a
// mission finds a base whose occupants cover every skill it requires.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - registry.go: the entity registry (heroes, bases, missions) and its ordering guarantees
//   - event.go: the tagged Event variant and its constructors
//   - handlers.go: one transition per event kind (the state machine)
//   - scheduler.go: tick buckets drained to quiescence before the clock advances
//   - simulator.go: wiring, seeding and the single dispatch point
//
// # Architecture
//
// The sim package holds the core; collaborators live in sub-packages:
//   - sim/trace/: per-event records and recorders (memory, logrus, JSONL/zstd)
//   - sim/workload/: world spec loading, population generation, initial seeding
//   - sim/store/: SQLite export of a finished run
//
// # Determinism
//
// The core consumes exactly one RandSource, in a fixed order (see RandSource).
// Registry iteration is by ascending ID and each tick's bucket is FIFO, so a
// fixed seed reproduces a byte-identical record stream.
package sim
