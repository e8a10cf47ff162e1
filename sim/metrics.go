// Aggregates end-of-run statistics: mission completion and hero experience.

package sim

// HeroReport is a single hero's final state.
type HeroReport struct {
	ID         HeroID
	Experience int
	Patience   int
	Speed      int
	Skills     []int
}

// Report aggregates the registry's final statistics for the driver.
// It is computed once, when the clock reaches the horizon.
type Report struct {
	Horizon           int64
	CompletedMissions int
	TotalMissions     int
	TotalAttempts     int
	MeanAttempts      float64 // TotalAttempts / TotalMissions; 0 when there are no missions
	Heroes            []HeroReport
}

// CompletionRate returns CompletedMissions / TotalMissions, or 0 when there are no missions.
func (rep Report) CompletionRate() float64 {
	if rep.TotalMissions == 0 {
		return 0
	}
	return float64(rep.CompletedMissions) / float64(rep.TotalMissions)
}

// Report computes the end-of-run aggregate over all missions and heroes.
// Heroes are listed in ascending ID order.
func (r *Registry) Report() Report {
	rep := Report{
		TotalMissions: len(r.missionIDs),
		Heroes:        make([]HeroReport, 0, len(r.heroIDs)),
	}
	for _, id := range r.missionIDs {
		m := r.missions[id]
		if m.Completed {
			rep.CompletedMissions++
		}
		rep.TotalAttempts += m.Attempts
	}
	if rep.TotalMissions > 0 {
		rep.MeanAttempts = float64(rep.TotalAttempts) / float64(rep.TotalMissions)
	}
	for _, id := range r.heroIDs {
		h := r.heroes[id]
		rep.Heroes = append(rep.Heroes, HeroReport{
			ID:         h.ID,
			Experience: h.Experience,
			Patience:   h.Patience,
			Speed:      h.Speed,
			Skills:     h.Skills.Skills(),
		})
	}
	return rep
}
