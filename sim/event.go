package sim

import "fmt"

// EventKind tags the variant of an Event.
type EventKind int

const (
	KindArrives EventKind = iota
	KindAwaits
	KindGivesUp
	KindNotifies
	KindEnters
	KindExits
	KindTravels
	KindMissionAttempt
)

var kindNames = map[EventKind]string{
	KindArrives:        "ARRIVES",
	KindAwaits:         "AWAITS",
	KindGivesUp:        "GIVES_UP",
	KindNotifies:       "NOTIFIES",
	KindEnters:         "ENTERS",
	KindExits:          "EXITS",
	KindTravels:        "TRAVELS",
	KindMissionAttempt: "MISSION",
}

func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a tagged variant: Kind selects which payload fields are meaningful.
//
//	Arrives, Awaits, GivesUp, Enters, Exits: Hero, Base
//	Travels: Hero, Base (the destination)
//	Notifies: Base
//	MissionAttempt: Mission
//
// Events are plain values; the simulator's dispatch maps Kind to a handler.
type Event struct {
	Kind    EventKind
	Tick    int64 // scheduled execution time (in ticks)
	Hero    HeroID
	Base    BaseID
	Mission MissionID
}

// Timestamp returns the tick the event is scheduled for.
func (e Event) Timestamp() int64 {
	return e.Tick
}

func (e Event) String() string {
	switch e.Kind {
	case KindNotifies:
		return fmt.Sprintf("%s base=%d @%d", e.Kind, e.Base, e.Tick)
	case KindMissionAttempt:
		return fmt.Sprintf("%s mission=%d @%d", e.Kind, e.Mission, e.Tick)
	default:
		return fmt.Sprintf("%s hero=%d base=%d @%d", e.Kind, e.Hero, e.Base, e.Tick)
	}
}

// ArrivesEvent: hero reaches base at tick.
func ArrivesEvent(tick int64, hero HeroID, base BaseID) Event {
	return Event{Kind: KindArrives, Tick: tick, Hero: hero, Base: base}
}

// AwaitsEvent: hero joins base's wait queue.
func AwaitsEvent(tick int64, hero HeroID, base BaseID) Event {
	return Event{Kind: KindAwaits, Tick: tick, Hero: hero, Base: base}
}

// GivesUpEvent: hero refuses base's queue and leaves.
func GivesUpEvent(tick int64, hero HeroID, base BaseID) Event {
	return Event{Kind: KindGivesUp, Tick: tick, Hero: hero, Base: base}
}

// NotifiesEvent: base's gatekeeper admits waiting heroes while it has room.
func NotifiesEvent(tick int64, base BaseID) Event {
	return Event{Kind: KindNotifies, Tick: tick, Base: base}
}

// EntersEvent: an admitted hero settles in and decides when to leave.
func EntersEvent(tick int64, hero HeroID, base BaseID) Event {
	return Event{Kind: KindEnters, Tick: tick, Hero: hero, Base: base}
}

// ExitsEvent: hero leaves base.
func ExitsEvent(tick int64, hero HeroID, base BaseID) Event {
	return Event{Kind: KindExits, Tick: tick, Hero: hero, Base: base}
}

// TravelsEvent: hero departs its affiliated base towards destination.
func TravelsEvent(tick int64, hero HeroID, destination BaseID) Event {
	return Event{Kind: KindTravels, Tick: tick, Hero: hero, Base: destination}
}

// MissionAttemptEvent: mission looks for a qualifying base.
func MissionAttemptEvent(tick int64, mission MissionID) Event {
	return Event{Kind: KindMissionAttempt, Tick: tick, Mission: mission}
}
