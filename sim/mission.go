package sim

import "fmt"

// MissionID uniquely identifies a mission for the duration of a run.
type MissionID int

// Mission is a task request located at (X, Y) that needs every skill in
// Required to be present among the occupants of a single base.
type Mission struct {
	ID       MissionID
	X, Y     int
	Required SkillSet
	Tick     int64 // originally scheduled tick

	Completed bool // monotonic false → true
	Attempts  int  // incremented once per MissionAttempt execution
}

// NewMission creates an incomplete mission with no attempts.
func NewMission(id MissionID, x, y int, required SkillSet, tick int64) *Mission {
	return &Mission{
		ID:       id,
		X:        x,
		Y:        y,
		Required: required,
		Tick:     tick,
	}
}

// RecordAttempt increments the attempt counter and returns the new value.
func (m *Mission) RecordAttempt() int {
	m.Attempts++
	return m.Attempts
}

// Complete marks the mission done. Completion never reverts.
func (m *Mission) Complete() {
	m.Completed = true
}

func (m Mission) String() string {
	return fmt.Sprintf("Mission: (ID: %d, Tick: %d, Required: %v, Completed: %v, Attempts: %d)",
		m.ID, m.Tick, m.Required, m.Completed, m.Attempts)
}
