// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Yannngn/theboys/sim/trace"
)

const (
	// DefaultRetryInterval is the delay before a failed mission tries again (one simulated day).
	DefaultRetryInterval int64 = 24 * 60
	// DefaultHorizon is one simulated year, in minutes.
	DefaultHorizon int64 = 525600

	// minStay is the fixed part of the time a hero spends inside a base.
	minStay = 15
	// maxStayFactor bounds the uniform multiplier applied to patience on Enters.
	maxStayFactor = 20
	// patiencePerQueueSlot is the patience a hero needs per hero already waiting.
	patiencePerQueueSlot = 10
)

// Simulator is the core object that holds the entity registry, the
// tick-bucketed scheduler and the event state machine.
type Simulator struct {
	Registry  *Registry
	Scheduler *Scheduler
	// RetryInterval is the delay between attempts of a mission no base could take.
	RetryInterval int64

	rng      RandSource
	recorder trace.Recorder
}

// NewSimulator creates a simulator over reg for ticks [0, horizon).
// rng is the only random source event handlers consume. A nil recorder
// discards every record.
func NewSimulator(reg *Registry, horizon int64, rng RandSource, rec trace.Recorder) *Simulator {
	if reg == nil {
		panic("NewSimulator: registry must not be nil")
	}
	if rng == nil {
		panic("NewSimulator: rng must not be nil")
	}
	if rec == nil {
		rec = trace.Discard
	}
	return &Simulator{
		Registry:      reg,
		Scheduler:     NewScheduler(horizon),
		RetryInterval: DefaultRetryInterval,
		rng:           rng,
		recorder:      rec,
	}
}

// Clock returns the current simulation tick.
func (sim *Simulator) Clock() int64 { return sim.Scheduler.Clock }

// Horizon returns the exclusive upper bound on simulated ticks.
func (sim *Simulator) Horizon() int64 { return sim.Scheduler.Horizon }

// Schedule hands ev to the scheduler. Returns false if ev lands at or beyond the horizon.
func (sim *Simulator) Schedule(ev Event) bool {
	return sim.Scheduler.Schedule(ev)
}

// SeedArrival schedules the initial arrival of hero at base.
func (sim *Simulator) SeedArrival(hero HeroID, base BaseID, tick int64) error {
	if sim.Registry.Hero(hero) == nil {
		return fmt.Errorf("seeding arrival: unknown hero %d", hero)
	}
	if sim.Registry.Base(base) == nil {
		return fmt.Errorf("seeding arrival: unknown base %d", base)
	}
	if tick < 0 {
		return fmt.Errorf("seeding arrival: hero %d at negative tick %d", hero, tick)
	}
	sim.Schedule(ArrivesEvent(tick, hero, base))
	return nil
}

// SeedMission schedules the first attempt of a mission at its pre-assigned tick.
func (sim *Simulator) SeedMission(id MissionID) error {
	m := sim.Registry.Mission(id)
	if m == nil {
		return fmt.Errorf("seeding mission: unknown mission %d", id)
	}
	if m.Tick < 0 {
		return fmt.Errorf("seeding mission: mission %d at negative tick %d", id, m.Tick)
	}
	sim.Schedule(MissionAttemptEvent(m.Tick, id))
	return nil
}

// Run drives the scheduler through every tick up to the horizon and returns
// the registry's final report.
func (sim *Simulator) Run() Report {
	reg := sim.Registry
	logrus.Infof("Starting simulation: %d heroes, %d bases, %d missions, %d seeded events, horizon=%d ticks",
		len(reg.HeroIDs()), len(reg.BaseIDs()), len(reg.MissionIDs()), sim.Scheduler.Pending(), sim.Horizon())

	sim.Scheduler.Run(sim.execute)

	logrus.Infof("[tick %07d] Simulation ended: %d events executed, %d dropped at horizon",
		sim.Clock(), sim.Scheduler.Executed(), sim.Scheduler.Dropped())

	rep := reg.Report()
	rep.Horizon = sim.Horizon()
	return rep
}

// execute is the single dispatch point from event kind to transition.
func (sim *Simulator) execute(ev Event) []Event {
	logrus.Debugf("[tick %07d] Executing %s", ev.Tick, ev)

	switch ev.Kind {
	case KindArrives:
		return sim.handleArrives(ev)
	case KindAwaits:
		return sim.handleAwaits(ev)
	case KindGivesUp:
		return sim.handleGivesUp(ev)
	case KindNotifies:
		return sim.handleNotifies(ev)
	case KindEnters:
		return sim.handleEnters(ev)
	case KindExits:
		return sim.handleExits(ev)
	case KindTravels:
		return sim.handleTravels(ev)
	case KindMissionAttempt:
		return sim.handleMissionAttempt(ev)
	default:
		panic(fmt.Sprintf("execute: unknown event kind %d", int(ev.Kind)))
	}
}
