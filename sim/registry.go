package sim

import (
	"fmt"
	"slices"
)

// Registry owns every hero, base and mission of a run, keyed by identifier.
// All entities are created before the run starts and none are deleted.
//
// Iteration helpers return identifiers in ascending order so that every
// consumer (seeding, destination choice, mission ranking, reporting) is
// deterministic regardless of map iteration order.
//
// Thread-safety: NOT thread-safe. Only the simulator's event handlers mutate it.
type Registry struct {
	heroes   map[HeroID]*Hero
	bases    map[BaseID]*Base
	missions map[MissionID]*Mission

	heroIDs    []HeroID
	baseIDs    []BaseID
	missionIDs []MissionID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		heroes:   make(map[HeroID]*Hero),
		bases:    make(map[BaseID]*Base),
		missions: make(map[MissionID]*Mission),
	}
}

// AddHero registers h. Returns an error if the ID is already taken.
func (r *Registry) AddHero(h *Hero) error {
	if h == nil {
		return fmt.Errorf("hero cannot be nil")
	}
	if _, exists := r.heroes[h.ID]; exists {
		return fmt.Errorf("hero %d already exists", h.ID)
	}
	r.heroes[h.ID] = h
	r.heroIDs = insertSorted(r.heroIDs, h.ID)
	return nil
}

// AddBase registers b. Returns an error if the ID is already taken.
func (r *Registry) AddBase(b *Base) error {
	if b == nil {
		return fmt.Errorf("base cannot be nil")
	}
	if _, exists := r.bases[b.ID]; exists {
		return fmt.Errorf("base %d already exists", b.ID)
	}
	r.bases[b.ID] = b
	r.baseIDs = insertSorted(r.baseIDs, b.ID)
	return nil
}

// AddMission registers m. Returns an error if the ID is already taken.
func (r *Registry) AddMission(m *Mission) error {
	if m == nil {
		return fmt.Errorf("mission cannot be nil")
	}
	if _, exists := r.missions[m.ID]; exists {
		return fmt.Errorf("mission %d already exists", m.ID)
	}
	r.missions[m.ID] = m
	r.missionIDs = insertSorted(r.missionIDs, m.ID)
	return nil
}

func insertSorted[T ~int](ids []T, id T) []T {
	i, _ := slices.BinarySearch(ids, id)
	return slices.Insert(ids, i, id)
}

// Hero returns the hero with the given ID, or nil.
func (r *Registry) Hero(id HeroID) *Hero { return r.heroes[id] }

// Base returns the base with the given ID, or nil.
func (r *Registry) Base(id BaseID) *Base { return r.bases[id] }

// Mission returns the mission with the given ID, or nil.
func (r *Registry) Mission(id MissionID) *Mission { return r.missions[id] }

// HeroIDs returns all hero IDs in ascending order.
// The returned slice MUST NOT be modified.
func (r *Registry) HeroIDs() []HeroID { return r.heroIDs }

// BaseIDs returns all base IDs in ascending order.
// The returned slice MUST NOT be modified.
func (r *Registry) BaseIDs() []BaseID { return r.baseIDs }

// MissionIDs returns all mission IDs in ascending order.
// The returned slice MUST NOT be modified.
func (r *Registry) MissionIDs() []MissionID { return r.missionIDs }

// BaseSkills returns the union of the skill sets of the base's current occupants.
func (r *Registry) BaseSkills(id BaseID) SkillSet {
	b := r.mustBase(id)
	var skills SkillSet
	for _, hid := range b.Occupants {
		skills = skills.Union(r.mustHero(hid).Skills)
	}
	return skills
}

func (r *Registry) mustHero(id HeroID) *Hero {
	h, ok := r.heroes[id]
	if !ok {
		panic(fmt.Sprintf("unknown hero %d", id))
	}
	return h
}

func (r *Registry) mustBase(id BaseID) *Base {
	b, ok := r.bases[id]
	if !ok {
		panic(fmt.Sprintf("unknown base %d", id))
	}
	return b
}

func (r *Registry) mustMission(id MissionID) *Mission {
	m, ok := r.missions[id]
	if !ok {
		panic(fmt.Sprintf("unknown mission %d", id))
	}
	return m
}
