package sim

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Yannngn/theboys/sim/trace"
)

// scriptedRNG replays fixed draws and remembers the bound of every call.
// Each value must lie in [0, n) for the n it is consumed with.
type scriptedRNG struct {
	vals   []int
	bounds []int
}

func (s *scriptedRNG) Intn(n int) int {
	if len(s.bounds) >= len(s.vals) {
		panic(fmt.Sprintf("scriptedRNG: draw %d requested, only %d scripted", len(s.bounds)+1, len(s.vals)))
	}
	v := s.vals[len(s.bounds)]
	s.bounds = append(s.bounds, n)
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scriptedRNG: value %d out of range [0, %d)", v, n))
	}
	return v
}

// worldBuilder assembles small registries for handler tests.
type worldBuilder struct {
	t   *testing.T
	reg *Registry
}

func newWorld(t *testing.T) *worldBuilder {
	t.Helper()
	return &worldBuilder{t: t, reg: NewRegistry()}
}

func (w *worldBuilder) hero(id, patience, speed int, skills ...int) *worldBuilder {
	w.t.Helper()
	if err := w.reg.AddHero(NewHero(HeroID(id), NewSkillSet(skills...), patience, speed)); err != nil {
		w.t.Fatal(err)
	}
	return w
}

func (w *worldBuilder) base(id, capacity, x, y int) *worldBuilder {
	w.t.Helper()
	if err := w.reg.AddBase(NewBase(BaseID(id), capacity, x, y)); err != nil {
		w.t.Fatal(err)
	}
	return w
}

func (w *worldBuilder) mission(id, x, y int, tick int64, skills ...int) *worldBuilder {
	w.t.Helper()
	if err := w.reg.AddMission(NewMission(MissionID(id), x, y, NewSkillSet(skills...), tick)); err != nil {
		w.t.Fatal(err)
	}
	return w
}

// inside places hero directly in base, affiliated, bypassing events.
func (w *worldBuilder) inside(hero, base int) *worldBuilder {
	b := w.reg.Base(BaseID(base))
	b.Occupants = append(b.Occupants, HeroID(hero))
	w.reg.Hero(HeroID(hero)).SetBase(BaseID(base))
	return w
}

// waiting places hero directly in base's queue, affiliated, bypassing events.
func (w *worldBuilder) waiting(hero, base int) *worldBuilder {
	w.reg.Base(BaseID(base)).Queue.Enqueue(HeroID(hero))
	w.reg.Hero(HeroID(hero)).SetBase(BaseID(base))
	return w
}

func (w *worldBuilder) build() *Registry { return w.reg }

// newTracedSim returns a simulator recording every event in memory.
func newTracedSim(reg *Registry, horizon int64, rng RandSource) (*Simulator, *trace.SimulationTrace) {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	return NewSimulator(reg, horizon, rng, st), st
}

func recordKinds(recs []trace.Record) []string {
	kinds := make([]string, len(recs))
	for i, r := range recs {
		kinds[i] = r.Kind
	}
	return kinds
}

// randomWorld builds a populated registry from seed, the way the driver
// would, without depending on the workload package.
func randomWorld(t *testing.T, seed int64, heroes, bases, missions int, horizon int64) *Registry {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	w := newWorld(t)
	for i := 0; i < bases; i++ {
		w.base(i, 3+rng.Intn(8), rng.Intn(20001), rng.Intn(20001))
	}
	for i := 0; i < heroes; i++ {
		perm := rng.Perm(10)
		w.hero(i, rng.Intn(101), 50+rng.Intn(4951), perm[:1+rng.Intn(3)]...)
	}
	for i := 0; i < missions; i++ {
		perm := rng.Perm(10)
		w.mission(i, rng.Intn(20001), rng.Intn(20001), rng.Int63n(horizon), perm[:6+rng.Intn(5)]...)
	}
	return w.build()
}

// seedRandomWorld schedules every hero's first arrival and every mission.
func seedRandomWorld(t *testing.T, s *Simulator, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	baseIDs := s.Registry.BaseIDs()
	for _, id := range s.Registry.HeroIDs() {
		tick := int64(rng.Intn(4321))
		if err := s.SeedArrival(id, baseIDs[rng.Intn(len(baseIDs))], tick); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range s.Registry.MissionIDs() {
		if err := s.SeedMission(id); err != nil {
			t.Fatal(err)
		}
	}
}
