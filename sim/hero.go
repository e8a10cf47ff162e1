// Defines the Hero entity: a mobile agent that travels between bases,
// waits in their queues and gains experience from completed missions.

package sim

import "fmt"

// HeroID uniquely identifies a hero for the duration of a run.
type HeroID int

// Hero models a single agent's state in the simulation.
// Static attributes (skills, patience, speed) never change after creation;
// Experience and Base are mutated by event handlers only.
type Hero struct {
	ID         HeroID
	Skills     SkillSet
	Patience   int // >= 0, scales both queue tolerance and time spent inside a base
	Speed      int // > 0, distance units per tick
	Experience int // +1 per mission completed while inside a base

	// Base is the base the hero is affiliated with. nil while traveling
	// and before the first arrival.
	Base *BaseID
}

// NewHero creates a hero with no affiliation and zero experience.
func NewHero(id HeroID, skills SkillSet, patience, speed int) *Hero {
	return &Hero{
		ID:       id,
		Skills:   skills,
		Patience: patience,
		Speed:    speed,
	}
}

// SetBase affiliates the hero with base id.
func (h *Hero) SetBase(id BaseID) {
	h.Base = &id
}

// ClearBase removes the hero's affiliation.
func (h *Hero) ClearBase() {
	h.Base = nil
}

// AffiliatedWith reports whether the hero is currently affiliated with base id.
func (h *Hero) AffiliatedWith(id BaseID) bool {
	return h.Base != nil && *h.Base == id
}

// AddExperience increments the hero's experience by one.
func (h *Hero) AddExperience() {
	h.Experience++
}

func (h Hero) String() string {
	return fmt.Sprintf("Hero: (ID: %d, Patience: %d, Speed: %d, Exp: %d, Skills: %v)",
		h.ID, h.Patience, h.Speed, h.Experience, h.Skills)
}
