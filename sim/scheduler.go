package sim

import "fmt"

// Scheduler is a tick-bucketed work queue over a logical clock.
//
// Each tick owns a FIFO bucket. Run drains the current tick's bucket to
// quiescence before advancing: events appended to the current tick while it
// is being drained run in the same tick, after everything already queued.
// This same-tick cascading is intentional; it lets zero-delay causal chains
// (Arrives → Awaits → Notifies → Enters) resolve fully before time advances.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type Scheduler struct {
	Clock   int64
	Horizon int64 // exclusive upper bound on ticks

	buckets  map[int64][]Event
	pending  int
	executed int
	dropped  int
	running  bool
}

// NewScheduler creates a scheduler for ticks [0, horizon).
func NewScheduler(horizon int64) *Scheduler {
	return &Scheduler{
		Horizon: horizon,
		buckets: make(map[int64][]Event),
	}
}

// Schedule appends ev to the bucket for ev.Tick, preserving arrival order.
// Events at or beyond the horizon are discarded silently and Schedule
// returns false; that is normal termination, not an error.
// Scheduling into a tick that has already been drained is an invariant violation.
func (s *Scheduler) Schedule(ev Event) bool {
	if ev.Tick >= s.Horizon {
		s.dropped++
		return false
	}
	if ev.Tick < 0 || (s.running && ev.Tick < s.Clock) {
		panic(fmt.Sprintf("Schedule: %s targets tick %d, clock is already at %d", ev.Kind, ev.Tick, s.Clock))
	}
	s.buckets[ev.Tick] = append(s.buckets[ev.Tick], ev)
	s.pending++
	return true
}

// Pending returns the number of scheduled events not yet executed.
func (s *Scheduler) Pending() int { return s.pending }

// Executed returns the number of events executed so far.
func (s *Scheduler) Executed() int { return s.executed }

// Dropped returns the number of events discarded for landing at or beyond the horizon.
func (s *Scheduler) Dropped() int { return s.dropped }

// Run advances the clock from 0 to Horizon-1, draining each tick's bucket
// with exec. Every event exec returns is scheduled before the next pop.
// Once nothing is pending the clock jumps straight to the horizon, since no
// further event can execute.
func (s *Scheduler) Run(exec func(Event) []Event) {
	s.running = true
	defer func() { s.running = false }()

	for s.Clock = 0; s.Clock < s.Horizon; s.Clock++ {
		if s.pending == 0 {
			break
		}
		for {
			bucket := s.buckets[s.Clock]
			if len(bucket) == 0 {
				delete(s.buckets, s.Clock)
				break
			}
			ev := bucket[0]
			s.buckets[s.Clock] = bucket[1:]
			s.pending--
			s.executed++

			for _, next := range exec(ev) {
				s.Schedule(next)
			}
		}
	}
	s.Clock = s.Horizon
}
