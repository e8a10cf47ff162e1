package trace

import (
	"github.com/sirupsen/logrus"
)

// Log streams, one per entity family.
const (
	StreamHeroes   = "heroes"
	StreamBases    = "bases"
	StreamMissions = "missions"
)

// StreamOf returns the log stream a record kind belongs to.
func StreamOf(kind string) string {
	switch kind {
	case KindNotifies:
		return StreamBases
	case KindMissionAttempt:
		return StreamMissions
	default:
		return StreamHeroes
	}
}

// LogRecorder writes each record as a structured logrus entry at Info level.
type LogRecorder struct {
	logger logrus.FieldLogger
}

// NewLogRecorder returns a recorder writing to logger. A nil logger uses
// the logrus standard logger.
func NewLogRecorder(logger logrus.FieldLogger) *LogRecorder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogRecorder{logger: logger}
}

// Record logs rec with its non-empty fields attached.
func (l *LogRecorder) Record(rec Record) {
	fields := logrus.Fields{
		"tick":   rec.Tick,
		"stream": StreamOf(rec.Kind),
	}
	if rec.Hero != "" {
		fields["hero"] = rec.Hero
	}
	if rec.Base != "" {
		fields["base"] = rec.Base
	}
	if rec.Mission != "" {
		fields["mission"] = rec.Mission
	}
	if rec.Destination != "" {
		fields["destination"] = rec.Destination
	}
	if rec.Outcome != "" {
		fields["outcome"] = rec.Outcome
	}

	switch rec.Kind {
	case KindArrives, KindAwaits:
		fields["queue_len"] = rec.QueueLen
	case KindNotifies:
		fields["admitted"] = rec.Admitted
	case KindEnters:
		fields["exit_tick"] = rec.ExitTick
	case KindTravels:
		fields["distance"] = rec.Distance
		fields["speed"] = rec.Speed
		fields["arrival_tick"] = rec.ArrivalTick
	case KindMissionAttempt:
		fields["attempt"] = rec.Attempt
		fields["required"] = rec.Required
		if rec.Outcome == OutcomeComplete {
			fields["heroes"] = rec.Occupants
		}
	}

	l.logger.WithFields(fields).Info(rec.Kind)
}
