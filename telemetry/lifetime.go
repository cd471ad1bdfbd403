package telemetry

import "github.com/pthm-cable/swamp/components"

// LifetimeStats tracks per-creature statistics over its lifetime.
type LifetimeStats struct {
	Species   components.Species
	BirthTick int32
	Parents   [2]uint32

	Matings  int
	Children int
	Kills    int // frogs only
}

type lifetimeKey struct {
	species components.Species
	id      uint32
}

// LifetimeTracker manages per-creature lifetime statistics. Fly and frog ids
// come from separate counters, so entries are keyed by species and id.
type LifetimeTracker struct {
	stats map[lifetimeKey]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[lifetimeKey]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new creature.
func (lt *LifetimeTracker) Register(sp components.Species, id uint32, birthTick int32, parents [2]uint32) {
	lt.stats[lifetimeKey{sp, id}] = &LifetimeStats{
		Species:   sp,
		BirthTick: birthTick,
		Parents:   parents,
	}
}

// Get returns the lifetime stats for a creature, or nil if not found.
func (lt *LifetimeTracker) Get(sp components.Species, id uint32) *LifetimeStats {
	return lt.stats[lifetimeKey{sp, id}]
}

// Remove removes a creature's stats and returns them (for logging).
func (lt *LifetimeTracker) Remove(sp components.Species, id uint32) *LifetimeStats {
	k := lifetimeKey{sp, id}
	stats := lt.stats[k]
	delete(lt.stats, k)
	return stats
}

// Apply updates per-creature counters from an event. Births credit the
// parent recorded in TargetID.
func (lt *LifetimeTracker) Apply(ev Event) {
	switch ev.Type {
	case EventMating:
		if s := lt.Get(ev.Species, ev.EntityID); s != nil {
			s.Matings++
		}
		if s := lt.Get(ev.Species, ev.TargetID); s != nil {
			s.Matings++
		}
	case EventKill:
		if s := lt.Get(components.SpeciesFrog, ev.EntityID); s != nil {
			s.Kills++
		}
	case EventBirth:
		if s := lt.Get(ev.Species, ev.TargetID); s != nil {
			s.Children++
		}
	}
}

// Count returns the number of tracked creatures.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// ActiveLineages returns the number of distinct first parents among living
// creatures of a species. Founders count as their own lineage.
func (lt *LifetimeTracker) ActiveLineages(sp components.Species) int {
	seen := make(map[uint32]struct{})
	for k, s := range lt.stats {
		if k.species != sp {
			continue
		}
		root := s.Parents[0]
		if s.Parents == ([2]uint32{}) {
			root = k.id
		}
		seen[root] = struct{}{}
	}
	return len(seen)
}
