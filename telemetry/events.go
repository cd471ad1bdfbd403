// Package telemetry provides population tracking, bookmarking, CSV output and
// snapshots for the swamp simulation.
package telemetry

import "github.com/pthm-cable/swamp/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventMating
	EventEggLaid
	EventHatch
	EventKill
	EventCapRefused
	EventTransitRejected
)

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32
	Species  components.Species

	// Optional fields depending on event type
	TargetID uint32                // partner, prey or parent
	Cause    components.DeathCause // deaths and kills
	Count    int                   // hatch clutch size
}

// NewBirthEvent creates a birth event for a hatchling or newborn frog.
func NewBirthEvent(tick int32, childID, parentID uint32, sp components.Species) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		Species:  sp,
		TargetID: parentID,
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int32, entityID uint32, sp components.Species, cause components.DeathCause) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: entityID,
		Species:  sp,
		Cause:    cause,
	}
}

// NewMatingEvent creates a mating event. For flies the initiator is the mother.
func NewMatingEvent(tick int32, initiatorID, partnerID uint32, sp components.Species) Event {
	return Event{
		Type:     EventMating,
		Tick:     tick,
		EntityID: initiatorID,
		Species:  sp,
		TargetID: partnerID,
	}
}

// NewEggLaidEvent creates an egg laid event.
func NewEggLaidEvent(tick int32, eggID, motherID uint32) Event {
	return Event{
		Type:     EventEggLaid,
		Tick:     tick,
		EntityID: eggID,
		Species:  components.SpeciesEgg,
		TargetID: motherID,
	}
}

// NewHatchEvent creates a hatch event with the clutch size.
func NewHatchEvent(tick int32, eggID uint32, clutch int) Event {
	return Event{
		Type:     EventHatch,
		Tick:     tick,
		EntityID: eggID,
		Species:  components.SpeciesEgg,
		Count:    clutch,
	}
}

// NewKillEvent creates a kill event (frog took a fly).
func NewKillEvent(tick int32, frogID, flyID uint32, cause components.DeathCause) Event {
	return Event{
		Type:     EventKill,
		Tick:     tick,
		EntityID: frogID,
		Species:  components.SpeciesFrog,
		TargetID: flyID,
		Cause:    cause,
	}
}

// NewCapRefusedEvent records a mating refused by a population cap.
func NewCapRefusedEvent(tick int32, entityID uint32, sp components.Species) Event {
	return Event{
		Type:     EventCapRefused,
		Tick:     tick,
		EntityID: entityID,
		Species:  sp,
	}
}

// NewTransitRejectedEvent records a move dropped because one was in flight.
func NewTransitRejectedEvent(tick int32, entityID uint32, sp components.Species) Event {
	return Event{
		Type:     EventTransitRejected,
		Tick:     tick,
		EntityID: entityID,
		Species:  sp,
	}
}
