package sim

import (
	"hash/fnv"
	"math/rand"
)

// === RandSource ===

// RandSource is the single random source consumed by the simulation core.
// *rand.Rand satisfies it.
//
// Draw order inside the core is fixed: one Intn per GivesUp (destination),
// one per Exits (destination) and one per Enters (duration), each taken when
// the event executes. Same seed, same registry and same seeded events
// therefore reproduce an identical event trace.
type RandSource interface {
	// Intn returns a uniform integer in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// === SimulationKey ===

// SimulationKey is the master seed of a run. A world spec plus its key fully
// determines every population draw and every handler draw.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemWorkload is the RNG subsystem for population generation and
	// initial event seeding. Uses master seed directly.
	SubsystemWorkload = "workload"

	// SubsystemEvents is the RNG subsystem consumed by event handlers
	// (destination choice, time spent inside a base).
	SubsystemEvents = "events"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemWorkload: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Handler draws therefore stay independent of how many population draws a
// world spec consumes.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the generator for the named subsystem, creating it on
// first use. Later calls with the same name return the same *rand.Rand.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemWorkload {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// UniformInt returns a uniform integer in [lo, hi] (inclusive).
// Panics if hi < lo.
func UniformInt(rng RandSource, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
