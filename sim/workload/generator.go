package workload

import (
	"fmt"

	"github.com/Yannngn/theboys/sim"
	"github.com/Yannngn/theboys/sim/trace"
)

// NewSimulation validates spec, generates its world and returns a simulator
// with every initial arrival and mission attempt already scheduled.
// Deterministic given the same spec: population and seeding draw from the
// workload subsystem, event handlers from the events subsystem.
func NewSimulation(spec *WorldSpec, rec trace.Recorder) (*sim.Simulator, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world spec: %w", err)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	workloadRNG := rng.ForSubsystem(sim.SubsystemWorkload)

	reg, err := Populate(spec, workloadRNG)
	if err != nil {
		return nil, err
	}
	s := sim.NewSimulator(reg, spec.Horizon, rng.ForSubsystem(sim.SubsystemEvents), rec)
	s.RetryInterval = spec.RetryInterval
	if err := Seed(s, spec, workloadRNG); err != nil {
		return nil, err
	}
	return s, nil
}

// Populate creates spec.Bases bases, spec.Heroes heroes and spec.Missions
// missions, in that order, with sequential IDs from 0.
func Populate(spec *WorldSpec, rng sim.RandSource) (*sim.Registry, error) {
	reg := sim.NewRegistry()

	for i := 0; i < spec.Bases; i++ {
		x := sim.UniformInt(rng, 0, spec.WorldSize)
		y := sim.UniformInt(rng, 0, spec.WorldSize)
		capacity := uniform(rng, spec.Base.Capacity)
		if err := reg.AddBase(sim.NewBase(sim.BaseID(i), capacity, x, y)); err != nil {
			return nil, err
		}
	}

	for i := 0; i < spec.Heroes; i++ {
		patience := uniform(rng, spec.Hero.Patience)
		speed := uniform(rng, spec.Hero.Speed)
		skills := sampleSkills(rng, spec.NumSkills, uniform(rng, spec.Hero.Skills))
		if err := reg.AddHero(sim.NewHero(sim.HeroID(i), skills, patience, speed)); err != nil {
			return nil, err
		}
	}

	// A mission requirement can never name more skills than exist.
	missionSkills := spec.Mission.Skills
	missionSkills.Max = min(missionSkills.Max, spec.NumSkills)
	for i := 0; i < spec.Missions; i++ {
		tick := int64(sim.UniformInt(rng, 0, int(spec.Horizon)))
		x := sim.UniformInt(rng, 0, spec.WorldSize)
		y := sim.UniformInt(rng, 0, spec.WorldSize)
		required := sampleSkills(rng, spec.NumSkills, uniform(rng, missionSkills))
		if err := reg.AddMission(sim.NewMission(sim.MissionID(i), x, y, required, tick)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Seed schedules each hero's first arrival and each mission's first attempt.
// Heroes are visited in ascending ID order; each draws its arrival tick in
// [0, ArrivalWindow] and then its base.
func Seed(s *sim.Simulator, spec *WorldSpec, rng sim.RandSource) error {
	baseIDs := s.Registry.BaseIDs()
	if len(baseIDs) == 0 {
		return fmt.Errorf("seeding arrivals: registry has no bases")
	}
	for _, id := range s.Registry.HeroIDs() {
		tick := int64(sim.UniformInt(rng, 0, int(spec.ArrivalWindow)))
		base := baseIDs[rng.Intn(len(baseIDs))]
		if err := s.SeedArrival(id, base, tick); err != nil {
			return err
		}
	}
	for _, id := range s.Registry.MissionIDs() {
		if err := s.SeedMission(id); err != nil {
			return err
		}
	}
	return nil
}

func uniform(rng sim.RandSource, r IntRange) int {
	return sim.UniformInt(rng, r.Min, r.Max)
}

// sampleSkills draws k distinct skills from [0, n) by partial Fisher-Yates.
func sampleSkills(rng sim.RandSource, n, k int) sim.SkillSet {
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	k = min(k, n)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return sim.NewSkillSet(pool[:k]...)
}
