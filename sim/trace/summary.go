package trace

// TraceSummary aggregates statistics over recorded events. It is itself a
// Recorder, so a run can be summarized without keeping every record.
type TraceSummary struct {
	TotalEvents        int
	KindDistribution   map[string]int // event kind → count
	Arrivals           int
	GiveUps            int
	GiveUpRate         float64 // GiveUps / Arrivals
	Admissions         int     // heroes admitted across all Notifies
	MissionSuccesses   int
	MissionFailures    int // attempts that found no qualifying base
	MeanTravelDistance float64
	MaxTravelDistance  int
	LastTick           int64

	travels       int
	totalDistance int
}

// NewTraceSummary returns an empty summary ready to record.
func NewTraceSummary() *TraceSummary {
	return &TraceSummary{KindDistribution: make(map[string]int)}
}

// Record folds rec into the summary.
func (s *TraceSummary) Record(r Record) {
	s.TotalEvents++
	s.KindDistribution[r.Kind]++
	if r.Tick > s.LastTick {
		s.LastTick = r.Tick
	}
	switch r.Kind {
	case KindArrives:
		s.Arrivals++
		if r.Outcome == OutcomeGivesUp {
			s.GiveUps++
		}
		s.GiveUpRate = float64(s.GiveUps) / float64(s.Arrivals)
	case KindNotifies:
		s.Admissions += len(r.Admitted)
	case KindTravels:
		s.travels++
		s.totalDistance += r.Distance
		if r.Distance > s.MaxTravelDistance {
			s.MaxTravelDistance = r.Distance
		}
		s.MeanTravelDistance = float64(s.totalDistance) / float64(s.travels)
	case KindMissionAttempt:
		if r.Outcome == OutcomeComplete {
			s.MissionSuccesses++
		} else {
			s.MissionFailures++
		}
	}
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := NewTraceSummary()
	if st == nil {
		return summary
	}
	for _, r := range st.Records {
		summary.Record(r)
	}
	return summary
}
