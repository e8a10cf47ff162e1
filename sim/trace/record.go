// Package trace provides per-event recording for hero simulations.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Event kinds as they appear in records.
const (
	KindArrives        = "ARRIVES"
	KindAwaits         = "AWAITS"
	KindGivesUp        = "GIVES_UP"
	KindNotifies       = "NOTIFIES"
	KindEnters         = "ENTERS"
	KindExits          = "EXITS"
	KindTravels        = "TRAVELS"
	KindMissionAttempt = "MISSION"
)

// Outcomes of Arrives and MissionAttempt events.
const (
	OutcomeAwaits     = "AWAITS"
	OutcomeGivesUp    = "GIVES UP"
	OutcomeComplete   = "COMPLETE"
	OutcomeImpossible = "IMPOSSIBLE"
)

// Candidate captures one base examined by a mission attempt.
type Candidate struct {
	Base     int     `json:"base"`
	Distance float64 `json:"distance"`
	Skills   []int   `json:"skills"`
}

// Record captures a single executed event. Entity fields hold the decimal
// identifier, or "" when the event does not involve that kind of entity.
// Kind-specific fields are zero when they do not apply.
type Record struct {
	Tick        int64  `json:"tick"`
	Kind        string `json:"kind"`
	Hero        string `json:"hero,omitempty"`
	Base        string `json:"base,omitempty"`
	Mission     string `json:"mission,omitempty"`
	Destination string `json:"destination,omitempty"`

	Outcome   string `json:"outcome,omitempty"`   // Arrives, MissionAttempt
	QueueLen  int    `json:"queue_len,omitempty"` // Arrives (seen on arrival), Awaits (after enqueue)
	Occupants []int  `json:"occupants,omitempty"` // Arrives, Notifies, MissionAttempt (heroes rewarded)
	Admitted  []int  `json:"admitted,omitempty"`  // Notifies

	ExitTick int64 `json:"exit_tick,omitempty"` // Enters

	Distance    int   `json:"distance,omitempty"` // Travels
	Speed       int   `json:"speed,omitempty"`
	ArrivalTick int64 `json:"arrival_tick,omitempty"`

	Attempt    int         `json:"attempt,omitempty"` // MissionAttempt
	Required   []int       `json:"required,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Recorder receives one record per executed event. Implementations are sinks:
// they must not influence simulation semantics.
type Recorder interface {
	Record(rec Record)
}

// Discard is a Recorder that drops every record.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(Record) {}

// Multi fans every record out to each recorder in order.
func Multi(recorders ...Recorder) Recorder {
	rs := make([]Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return multi(rs)
}

type multi []Recorder

func (m multi) Record(rec Record) {
	for _, r := range m {
		r.Record(rec)
	}
}
