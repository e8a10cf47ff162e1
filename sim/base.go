package sim

import (
	"fmt"
	"math"
	"slices"
)

// BaseID uniquely identifies a base for the duration of a run.
type BaseID int

// Base is a fixed station heroes travel to.
//
// Admission is single-slot: a base admits a new occupant only while it has
// zero occupants. Capacity is carried for reporting but is not enforced as
// an upper bound beyond that rule.
type Base struct {
	ID        BaseID
	Capacity  int
	X, Y      int
	Occupants []HeroID // heroes currently inside, in admission order
	Queue     *WaitQueue
}

// NewBase creates an empty base at (x, y).
func NewBase(id BaseID, capacity, x, y int) *Base {
	return &Base{
		ID:       id,
		Capacity: capacity,
		X:        x,
		Y:        y,
		Queue:    &WaitQueue{},
	}
}

// HasRoom reports whether the base can admit a hero right now.
func (b *Base) HasRoom() bool {
	return len(b.Occupants) == 0
}

// IsOccupant reports whether hero id is currently inside the base.
func (b *Base) IsOccupant(id HeroID) bool {
	return slices.Contains(b.Occupants, id)
}

// Admit moves the head of the wait queue into the occupant list and returns it.
// Panics if the queue is empty.
func (b *Base) Admit() HeroID {
	if b.Queue.Len() == 0 {
		panic(fmt.Sprintf("Base %d: admit from empty queue", b.ID))
	}
	id := b.Queue.Dequeue()
	b.Occupants = append(b.Occupants, id)
	return id
}

// Remove takes hero id out of the occupant list.
// Panics if the hero is not resident.
func (b *Base) Remove(id HeroID) {
	i := slices.Index(b.Occupants, id)
	if i < 0 {
		panic(fmt.Sprintf("Base %d: hero %d is not an occupant", b.ID, id))
	}
	b.Occupants = slices.Delete(b.Occupants, i, i+1)
}

// SquaredDistanceTo returns the exact squared Euclidean distance from the
// base to (x, y).
func (b *Base) SquaredDistanceTo(x, y int) int64 {
	dx, dy := int64(x-b.X), int64(y-b.Y)
	return dx*dx + dy*dy
}

// DistanceTo returns the Euclidean distance from the base to (x, y).
// Perfect squares come out exact, so truncating an integral distance never
// loses a unit.
func (b *Base) DistanceTo(x, y int) float64 {
	return math.Sqrt(float64(b.SquaredDistanceTo(x, y)))
}

func (b Base) String() string {
	return fmt.Sprintf("Base: (ID: %d, Occupants: %d/%d, Queue: %v)", b.ID, len(b.Occupants), b.Capacity, b.Queue)
}
