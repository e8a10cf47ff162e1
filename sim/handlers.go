package sim

import (
	"fmt"
	"strconv"

	"github.com/Yannngn/theboys/sim/trace"
)

// Event handlers. Each one is an atomic transition over the registry that
// emits exactly one record and returns its follow-up events.

func (sim *Simulator) handleArrives(ev Event) []Event {
	h := sim.Registry.mustHero(ev.Hero)
	b := sim.Registry.mustBase(ev.Base)

	queueLen := b.Queue.Len()
	canWait := (b.HasRoom() && queueLen == 0) || h.Patience > patiencePerQueueSlot*queueLen
	h.SetBase(b.ID)

	rec := newRecord(ev, trace.KindArrives)
	rec.QueueLen = queueLen
	rec.Occupants = heroInts(b.Occupants)
	if canWait {
		rec.Outcome = trace.OutcomeAwaits
		sim.recorder.Record(rec)
		return []Event{AwaitsEvent(ev.Tick, h.ID, b.ID)}
	}
	rec.Outcome = trace.OutcomeGivesUp
	sim.recorder.Record(rec)
	return []Event{GivesUpEvent(ev.Tick, h.ID, b.ID)}
}

func (sim *Simulator) handleAwaits(ev Event) []Event {
	h := sim.Registry.mustHero(ev.Hero)
	b := sim.Registry.mustBase(ev.Base)

	b.Queue.Enqueue(h.ID)

	rec := newRecord(ev, trace.KindAwaits)
	rec.QueueLen = b.Queue.Len()
	sim.recorder.Record(rec)
	return []Event{NotifiesEvent(ev.Tick, b.ID)}
}

func (sim *Simulator) handleGivesUp(ev Event) []Event {
	h := sim.Registry.mustHero(ev.Hero)
	b := sim.Registry.mustBase(ev.Base)

	dest := sim.chooseDestination(b.ID)

	rec := newRecord(ev, trace.KindGivesUp)
	rec.Destination = strconv.Itoa(int(dest))
	sim.recorder.Record(rec)
	return []Event{TravelsEvent(ev.Tick, h.ID, dest)}
}

func (sim *Simulator) handleNotifies(ev Event) []Event {
	b := sim.Registry.mustBase(ev.Base)

	var out []Event
	var admitted []int
	for b.HasRoom() && b.Queue.Len() > 0 {
		id := b.Admit()
		admitted = append(admitted, int(id))
		out = append(out, EntersEvent(ev.Tick, id, b.ID))
	}

	rec := trace.Record{
		Tick:      ev.Tick,
		Kind:      trace.KindNotifies,
		Base:      strconv.Itoa(int(b.ID)),
		Admitted:  admitted,
		QueueLen:  b.Queue.Len(),
		Occupants: heroInts(b.Occupants),
	}
	sim.recorder.Record(rec)
	return out
}

func (sim *Simulator) handleEnters(ev Event) []Event {
	h := sim.Registry.mustHero(ev.Hero)
	b := sim.Registry.mustBase(ev.Base)

	stay := int64(minStay + h.Patience*UniformInt(sim.rng, 1, maxStayFactor))
	exitTick := ev.Tick + stay

	rec := newRecord(ev, trace.KindEnters)
	rec.ExitTick = exitTick
	sim.recorder.Record(rec)
	return []Event{ExitsEvent(exitTick, h.ID, b.ID)}
}

func (sim *Simulator) handleExits(ev Event) []Event {
	h := sim.Registry.mustHero(ev.Hero)
	b := sim.Registry.mustBase(ev.Base)

	if !b.IsOccupant(h.ID) {
		panic(fmt.Sprintf("[tick %07d] Exits: hero %d is not inside base %d", ev.Tick, h.ID, b.ID))
	}
	b.Remove(h.ID)
	dest := sim.chooseDestination(b.ID)

	rec := newRecord(ev, trace.KindExits)
	rec.Destination = strconv.Itoa(int(dest))
	sim.recorder.Record(rec)

	// The hero keeps its affiliation until Travels, which runs next in this
	// tick and uses it as the departure base.
	return []Event{
		TravelsEvent(ev.Tick, h.ID, dest),
		NotifiesEvent(ev.Tick, b.ID),
	}
}

func (sim *Simulator) handleTravels(ev Event) []Event {
	h := sim.Registry.mustHero(ev.Hero)
	dest := sim.Registry.mustBase(ev.Base)

	if h.Base == nil {
		panic(fmt.Sprintf("[tick %07d] Travels: hero %d has no base to depart from", ev.Tick, h.ID))
	}
	from := sim.Registry.mustBase(*h.Base)

	distance := int(from.DistanceTo(dest.X, dest.Y))
	arrival := ev.Tick + int64(distance/h.Speed)
	h.ClearBase()

	rec := trace.Record{
		Tick:        ev.Tick,
		Kind:        trace.KindTravels,
		Hero:        strconv.Itoa(int(h.ID)),
		Base:        strconv.Itoa(int(from.ID)),
		Destination: strconv.Itoa(int(dest.ID)),
		Distance:    distance,
		Speed:       h.Speed,
		ArrivalTick: arrival,
	}
	sim.recorder.Record(rec)
	return []Event{ArrivesEvent(arrival, h.ID, dest.ID)}
}

func (sim *Simulator) handleMissionAttempt(ev Event) []Event {
	m := sim.Registry.mustMission(ev.Mission)

	attempt := m.RecordAttempt()
	scanned := scanBases(sim.Registry, m)

	rec := trace.Record{
		Tick:       ev.Tick,
		Kind:       trace.KindMissionAttempt,
		Mission:    strconv.Itoa(int(m.ID)),
		Attempt:    attempt,
		Required:   m.Required.Skills(),
		Candidates: candidateRecords(scanned),
	}

	if n := len(scanned); n > 0 && scanned[n-1].Skills.IsSupersetOf(m.Required) {
		b := sim.Registry.mustBase(scanned[n-1].Base)
		m.Complete()
		for _, id := range b.Occupants {
			sim.Registry.mustHero(id).AddExperience()
		}
		rec.Outcome = trace.OutcomeComplete
		rec.Base = strconv.Itoa(int(b.ID))
		rec.Occupants = heroInts(b.Occupants)
		sim.recorder.Record(rec)
		return nil
	}

	rec.Outcome = trace.OutcomeImpossible
	sim.recorder.Record(rec)
	// The scheduler drops the retry if it lands at or beyond the horizon.
	return []Event{MissionAttemptEvent(ev.Tick+sim.RetryInterval, m.ID)}
}

// chooseDestination picks a base uniformly at random among every base except
// current. Consumes exactly one draw.
func (sim *Simulator) chooseDestination(current BaseID) BaseID {
	ids := sim.Registry.BaseIDs()
	candidates := make([]BaseID, 0, len(ids))
	for _, id := range ids {
		if id != current {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		panic(fmt.Sprintf("chooseDestination: no base other than %d", current))
	}
	return candidates[sim.rng.Intn(len(candidates))]
}

func newRecord(ev Event, kind string) trace.Record {
	return trace.Record{
		Tick: ev.Tick,
		Kind: kind,
		Hero: strconv.Itoa(int(ev.Hero)),
		Base: strconv.Itoa(int(ev.Base)),
	}
}

func heroInts(ids []HeroID) []int {
	if len(ids) == 0 {
		return nil
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

func candidateRecords(cs []Candidate) []trace.Candidate {
	out := make([]trace.Candidate, len(cs))
	for i, c := range cs {
		out[i] = trace.Candidate{
			Base:     int(c.Base),
			Distance: c.Distance,
			Skills:   c.Skills.Skills(),
		}
	}
	return out
}
