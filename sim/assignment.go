package sim

import (
	"cmp"
	"slices"
)

// Candidate is one base examined while evaluating a mission.
type Candidate struct {
	Base     BaseID
	Distance float64
	Skills   SkillSet // aggregate skills of the base's occupants at evaluation time
}

// RankBases returns every base ID ordered by ascending Euclidean distance to
// (x, y). Distances compare as exact squared integers; equal distances are
// broken by ascending base ID.
func RankBases(reg *Registry, x, y int) []BaseID {
	type ranked struct {
		id   BaseID
		dist int64
	}
	rs := make([]ranked, 0, len(reg.BaseIDs()))
	for _, id := range reg.BaseIDs() {
		rs = append(rs, ranked{id: id, dist: reg.Base(id).SquaredDistanceTo(x, y)})
	}
	slices.SortFunc(rs, func(a, b ranked) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	out := make([]BaseID, len(rs))
	for i, r := range rs {
		out[i] = r.id
	}
	return out
}

// FindBase returns the nearest base whose occupants' combined skills cover
// every skill the mission requires. The boolean is false if no base qualifies.
// Nothing is cached: base composition changes between attempts.
func FindBase(reg *Registry, m *Mission) (BaseID, bool) {
	scanned := scanBases(reg, m)
	if len(scanned) == 0 {
		return 0, false
	}
	last := scanned[len(scanned)-1]
	if !last.Skills.IsSupersetOf(m.Required) {
		return 0, false
	}
	return last.Base, true
}

// scanBases walks the ranked bases and returns every candidate examined, up
// to and including the first match. If no base matches, all bases are returned.
func scanBases(reg *Registry, m *Mission) []Candidate {
	ranked := RankBases(reg, m.X, m.Y)
	scanned := make([]Candidate, 0, len(ranked))
	for _, id := range ranked {
		c := Candidate{
			Base:     id,
			Distance: reg.Base(id).DistanceTo(m.X, m.Y),
			Skills:   reg.BaseSkills(id),
		}
		scanned = append(scanned, c)
		if c.Skills.IsSupersetOf(m.Required) {
			break
		}
	}
	return scanned
}
