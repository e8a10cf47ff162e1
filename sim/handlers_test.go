package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yannngn/theboys/sim/trace"
)

func TestArrives_EmptyBase_FullVisitCycle(t *testing.T) {
	// GIVEN hero 0 (patience 50, speed 100) and bases 5000 apart
	reg := newWorld(t).
		hero(0, 50, 100, 1).
		base(0, 3, 0, 0).base(1, 3, 3000, 4000).build()
	rng := &scriptedRNG{vals: []int{0, 0}}
	s, st := newTracedSim(reg, 100, rng)
	require.NoError(t, s.SeedArrival(0, 0, 10))

	// WHEN the run completes
	s.Run()

	// THEN the hero waits, enters, stays 15+50*1 ticks, and leaves for base 1
	assert.Equal(t, []string{
		trace.KindArrives, trace.KindAwaits, trace.KindNotifies, trace.KindEnters,
		trace.KindExits, trace.KindTravels, trace.KindNotifies,
	}, recordKinds(st.Records))
	assert.Equal(t, []int{20, 1}, rng.bounds, "stay factor then destination")

	arrives := st.Records[0]
	assert.Equal(t, int64(10), arrives.Tick)
	assert.Equal(t, trace.OutcomeAwaits, arrives.Outcome)
	assert.Equal(t, []int{0}, st.Records[2].Admitted)
	assert.Equal(t, int64(75), st.Records[3].ExitTick)

	exits := st.Records[4]
	assert.Equal(t, int64(75), exits.Tick)
	assert.Equal(t, "1", exits.Destination)

	travels := st.Records[5]
	assert.Equal(t, "0", travels.Base)
	assert.Equal(t, 5000, travels.Distance)
	assert.Equal(t, int64(125), travels.ArrivalTick)

	// AND the arrival at 125 is past the horizon
	assert.Equal(t, 1, s.Scheduler.Dropped())
	assert.Nil(t, reg.Hero(0).Base, "affiliation is cleared once the hero is on the road")
	assert.Empty(t, reg.Base(0).Occupants)
	assert.Equal(t, int64(100), s.Clock())
}

func TestTravels_PerfectSquareDistance_NotRoundedDown(t *testing.T) {
	// GIVEN hero 0 at speed 101 inside base 0 and base 1 exactly 101 away
	reg := newWorld(t).
		hero(0, 0, 101, 1).
		base(0, 3, 0, 0).base(1, 3, 20, 99).build()
	reg.Hero(0).SetBase(0)
	s, st := newTracedSim(reg, 1, &scriptedRNG{})

	// WHEN the hero departs at tick 0
	s.Schedule(TravelsEvent(0, 0, 1))
	s.Run()

	// THEN the trip takes one full tick and the arrival lands on the horizon
	require.Len(t, st.Records, 1)
	assert.Equal(t, 101, st.Records[0].Distance)
	assert.Equal(t, int64(1), st.Records[0].ArrivalTick)
	assert.Equal(t, 1, s.Scheduler.Dropped())
}

func TestArrives_ImpatientHero_GivesUpAndTravels(t *testing.T) {
	// GIVEN base 0 is occupied with three heroes waiting and hero 9 has patience 25
	reg := newWorld(t).
		base(0, 3, 0, 0).base(1, 3, 10, 0).base(2, 3, 10000, 0).
		hero(4, 0, 1).hero(1, 0, 1).hero(2, 0, 1).hero(3, 0, 1).
		hero(9, 25, 100).
		inside(4, 0).waiting(1, 0).waiting(2, 0).waiting(3, 0).build()
	rng := &scriptedRNG{vals: []int{1}}
	s, st := newTracedSim(reg, 10, rng)
	require.NoError(t, s.SeedArrival(9, 0, 0))

	// WHEN it arrives (25 is not more than 10*3)
	s.Run()

	// THEN it gives up and heads for the second of bases {1, 2}
	assert.Equal(t, []string{trace.KindArrives, trace.KindGivesUp, trace.KindTravels}, recordKinds(st.Records))
	assert.Equal(t, trace.OutcomeGivesUp, st.Records[0].Outcome)
	assert.Equal(t, 3, st.Records[0].QueueLen)
	assert.Equal(t, []int{4}, st.Records[0].Occupants)
	assert.Equal(t, "2", st.Records[1].Destination)
	assert.Equal(t, []int{2}, rng.bounds)

	travels := st.Records[2]
	assert.Equal(t, "0", travels.Base)
	assert.Equal(t, "2", travels.Destination)
	assert.Equal(t, int64(100), travels.ArrivalTick)
	assert.Equal(t, 3, reg.Base(0).Queue.Len(), "a hero who gives up never joins the queue")
}

func TestArrives_WaitCondition(t *testing.T) {
	tests := []struct {
		name      string
		patience  int
		occupied  bool
		waiting   int
		wantAwait bool
	}{
		{"empty base, zero patience", 0, false, 0, true},
		{"occupied, empty queue, zero patience", 0, true, 0, false},
		{"occupied, empty queue, some patience", 1, true, 0, true},
		{"patience exactly ten per waiting hero", 20, true, 2, false},
		{"patience above ten per waiting hero", 21, true, 2, true},
		{"free slot but queue not empty", 25, false, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t).base(0, 3, 0, 0).base(1, 3, 1_000_000, 0).hero(0, tt.patience, 1)
			if tt.occupied {
				w.hero(100, 0, 1).inside(100, 0)
			}
			for i := 0; i < tt.waiting; i++ {
				w.hero(200+i, 0, 1).waiting(200+i, 0)
			}
			rng := &scriptedRNG{vals: []int{0}}
			s, st := newTracedSim(w.build(), 1, rng)
			require.NoError(t, s.SeedArrival(0, 0, 0))

			s.Run()

			want := trace.OutcomeGivesUp
			if tt.wantAwait {
				want = trace.OutcomeAwaits
			}
			require.NotEmpty(t, st.Records)
			assert.Equal(t, want, st.Records[0].Outcome)
			assert.True(t, s.Registry.Hero(0).AffiliatedWith(0) || !tt.wantAwait)
		})
	}
}

func TestAwaits_OccupiedBase_QueuesWithoutAdmission(t *testing.T) {
	// GIVEN an occupied base and a patient hero
	reg := newWorld(t).base(0, 3, 0, 0).base(1, 3, 5, 0).
		hero(0, 0, 1).hero(1, 80, 1).inside(0, 0).build()
	s, st := newTracedSim(reg, 1, &scriptedRNG{})
	require.NoError(t, s.SeedArrival(1, 0, 0))

	s.Run()

	// THEN the hero queues and Notifies admits nobody
	assert.Equal(t, []string{trace.KindArrives, trace.KindAwaits, trace.KindNotifies}, recordKinds(st.Records))
	assert.Equal(t, 1, st.Records[1].QueueLen)
	assert.Empty(t, st.Records[2].Admitted)
	assert.Equal(t, []HeroID{1}, reg.Base(0).Queue.Items())
	assert.True(t, reg.Hero(1).AffiliatedWith(0))
}

func TestExits_AdmitsNextWaitingHeroSameTick(t *testing.T) {
	// GIVEN hero 0 inside base 0 and hero 1 waiting behind it
	reg := newWorld(t).base(0, 3, 0, 0).base(1, 3, 1000, 0).
		hero(0, 0, 10).hero(1, 0, 10).inside(0, 0).waiting(1, 0).build()
	rng := &scriptedRNG{vals: []int{0, 0, 0}}
	s, st := newTracedSim(reg, 50, rng)
	s.Schedule(ExitsEvent(5, 0, 0))

	// WHEN the occupant exits
	s.Run()

	// THEN the waiting hero is admitted at the same tick and leaves 15 ticks later
	assert.Equal(t, []string{
		trace.KindExits, trace.KindTravels, trace.KindNotifies, trace.KindEnters,
		trace.KindExits, trace.KindTravels, trace.KindNotifies,
	}, recordKinds(st.Records))
	notifies := st.Records[2]
	assert.Equal(t, int64(5), notifies.Tick)
	assert.Equal(t, []int{1}, notifies.Admitted)
	assert.Equal(t, int64(20), st.Records[3].ExitTick)
	assert.Equal(t, int64(20), st.Records[4].Tick)
	assert.Equal(t, 2, s.Scheduler.Dropped(), "both arrivals at base 1 land past tick 50")
}

func TestMissionAttempt_NoQualifyingBase_RetriesDaily(t *testing.T) {
	// GIVEN a mission needing {1,2,3} no base can ever satisfy
	reg := newWorld(t).base(0, 3, 0, 0).mission(0, 10, 10, 100, 1, 2, 3).build()
	s, st := newTracedSim(reg, 4421, &scriptedRNG{})
	require.NoError(t, s.SeedMission(0))

	// WHEN run to horizon 4421
	rep := s.Run()

	// THEN it is attempted at 100, 1540, 2980 and 4420 and never completes
	attempts := st.OfKind(trace.KindMissionAttempt)
	require.Len(t, attempts, 4)
	for i, rec := range attempts {
		assert.Equal(t, int64(100)+int64(i)*DefaultRetryInterval, rec.Tick)
		assert.Equal(t, i+1, rec.Attempt)
		assert.Equal(t, trace.OutcomeImpossible, rec.Outcome)
		assert.Equal(t, []int{1, 2, 3}, rec.Required)
	}
	assert.Equal(t, 4, reg.Mission(0).Attempts)
	assert.False(t, reg.Mission(0).Completed)
	assert.Equal(t, 0, rep.CompletedMissions)
	assert.Equal(t, 1, s.Scheduler.Dropped())
}

func TestMissionAttempt_Success_RewardsOccupantsOfNearestTiedBase(t *testing.T) {
	// GIVEN bases 1 and 2 equidistant from the mission, both qualifying
	reg := newWorld(t).
		base(2, 3, 0, 30).base(1, 3, 30, 0).base(0, 3, 500, 500).
		hero(0, 0, 1, 1, 2).hero(1, 0, 1, 3).hero(2, 0, 1, 1, 2, 3).hero(3, 0, 1, 1, 2, 3).
		inside(0, 1).inside(1, 1).inside(2, 2).inside(3, 0).
		mission(0, 0, 0, 7, 1, 2, 3).build()
	s, st := newTracedSim(reg, 100, &scriptedRNG{})
	require.NoError(t, s.SeedMission(0))

	rep := s.Run()

	// THEN the lower-ID base wins and only its occupants gain experience
	require.Len(t, st.Records, 1)
	rec := st.Records[0]
	assert.Equal(t, trace.OutcomeComplete, rec.Outcome)
	assert.Equal(t, "1", rec.Base)
	assert.Equal(t, []int{0, 1}, rec.Occupants)
	require.Len(t, rec.Candidates, 1)
	assert.Equal(t, []int{1, 2, 3}, rec.Candidates[0].Skills)

	assert.Equal(t, 1, reg.Hero(0).Experience)
	assert.Equal(t, 1, reg.Hero(1).Experience)
	assert.Equal(t, 0, reg.Hero(2).Experience)
	assert.Equal(t, 0, reg.Hero(3).Experience)
	assert.True(t, reg.Mission(0).Completed)
	assert.Equal(t, 1, rep.CompletedMissions)
	assert.Equal(t, 0, s.Scheduler.Pending(), "a completed mission schedules no retry")
}

func TestMissionAttempt_RetryReevaluatesCurrentOccupants(t *testing.T) {
	// GIVEN a mission that fails at tick 0 and a hero arriving at an empty base later
	reg := newWorld(t).base(0, 3, 0, 0).base(1, 3, 100_000, 0).
		hero(0, 0, 1, 4).mission(0, 0, 0, 0, 4).build()
	rng := &scriptedRNG{vals: []int{0, 0}}
	s, st := newTracedSim(reg, 2000, rng)
	require.NoError(t, s.SeedMission(0))
	require.NoError(t, s.SeedArrival(0, 0, 10))

	s.Run()

	// THEN the second attempt (tick 1440) is still too late: the hero left at 25
	attempts := st.OfKind(trace.KindMissionAttempt)
	require.Len(t, attempts, 2)
	assert.Equal(t, int64(1440), attempts[1].Tick)
	assert.Equal(t, trace.OutcomeImpossible, attempts[1].Outcome)
	assert.Equal(t, 0, reg.Hero(0).Experience)
}

func TestHandlers_InvariantViolations_Panic(t *testing.T) {
	t.Run("travels without affiliation", func(t *testing.T) {
		reg := newWorld(t).base(0, 3, 0, 0).base(1, 3, 1, 0).hero(0, 0, 1).build()
		s := NewSimulator(reg, 10, &scriptedRNG{}, nil)
		s.Schedule(TravelsEvent(0, 0, 1))
		assert.Panics(t, func() { s.Run() })
	})
	t.Run("exits by non-occupant", func(t *testing.T) {
		reg := newWorld(t).base(0, 3, 0, 0).base(1, 3, 1, 0).hero(0, 0, 1).build()
		s := NewSimulator(reg, 10, &scriptedRNG{}, nil)
		s.Schedule(ExitsEvent(0, 0, 0))
		assert.Panics(t, func() { s.Run() })
	})
	t.Run("no destination with a single base", func(t *testing.T) {
		reg := newWorld(t).base(0, 3, 0, 0).hero(0, 0, 1).hero(1, 0, 1).inside(1, 0).build()
		s := NewSimulator(reg, 10, &scriptedRNG{vals: []int{0}}, nil)
		s.Schedule(GivesUpEvent(0, 0, 0))
		assert.Panics(t, func() { s.Run() })
	})
	t.Run("unknown event kind", func(t *testing.T) {
		s := NewSimulator(NewRegistry(), 10, &scriptedRNG{}, nil)
		assert.Panics(t, func() { s.execute(Event{Kind: EventKind(99)}) })
	})
	t.Run("unknown hero", func(t *testing.T) {
		reg := newWorld(t).base(0, 3, 0, 0).build()
		s := NewSimulator(reg, 10, &scriptedRNG{}, nil)
		assert.Panics(t, func() { s.execute(ArrivesEvent(0, 42, 0)) })
	})
}
