package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/store"
	"github.com/pthm-cable/swamp/traits"
)

// MovementSystem picks destinations and drives transits frame by frame.
type MovementSystem struct {
	store       *store.Store
	spatial     *SpatialIndex
	rng         *rand.Rand
	steps       int
	commitDelay int
}

// NewMovementSystem creates a movement system. A transit covers its
// displacement in steps frames; occupancy commits commitDelay frames after
// dispatch.
func NewMovementSystem(s *store.Store, spatial *SpatialIndex, rng *rand.Rand, steps, commitDelay int) *MovementSystem {
	return &MovementSystem{store: s, spatial: spatial, rng: rng, steps: steps, commitDelay: commitDelay}
}

// ChooseDestination picks where a creature goes next. Flies with the leader
// gene off try to follow; everyone else walks randomly.
func (m *MovementSystem) ChooseDestination(c store.Creature) components.Cell {
	if !c.IsFrog() && !c.Genome.Genes.Bool(traits.Leader) {
		return m.FollowDestination(c)
	}
	return m.RandomDestination(c)
}

// RandomDestination picks one of the 8 cells at distance mobility from the
// rounded position that is in bounds and unoccupied. Frogs also need their
// whole footprint clear of other frogs. Stays put when nothing qualifies.
func (m *MovementSystem) RandomDestination(c store.Creature) components.Cell {
	here := c.Pos.Round()
	mob := c.Genome.Genes.Int(traits.Mobility)
	frog := c.IsFrog()

	var candidates []components.Cell
	for _, o := range neighbourOffsets {
		dest := here.Add(o[0]*mob, o[1]*mob)
		if m.spatial.OutOfBounds(dest) || m.spatial.OccupiedExcept(dest, LayerAll, c.Entity) {
			continue
		}
		if frog && !m.frogFootprintClear(dest, c.Entity) {
			continue
		}
		candidates = append(candidates, dest)
	}

	if len(candidates) == 0 {
		return here
	}
	return candidates[m.rng.Intn(len(candidates))]
}

func (m *MovementSystem) frogFootprintClear(anchor components.Cell, self ecs.Entity) bool {
	for _, n := range [3]components.Cell{anchor.Add(1, 0), anchor.Add(0, 1), anchor.Add(1, 1)} {
		if m.spatial.OutOfBounds(n) || m.spatial.OccupiedExcept(n, LayerFrogs, self) {
			return false
		}
	}
	return true
}

// FollowDestination collects unoccupied cells shared between this fly's
// neighbourhood and the neighbourhood of each other fly, visited in random
// order, and picks one. Falls back to RandomDestination.
func (m *MovementSystem) FollowDestination(c store.Creature) components.Cell {
	here := c.Pos.Round()
	mine := m.spatial.Surrounding(here)

	others := m.store.Flies()
	m.rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	var candidates []components.Cell
	for _, e := range others {
		if e == c.Entity {
			continue
		}
		pos := *m.store.Creature(e).Pos
		if pos.Round() == here {
			continue
		}
		for _, cell := range m.spatial.Surrounding(pos.Floor()) {
			if containsCell(mine, cell) && !m.spatial.Occupied(cell, LayerAll) {
				candidates = append(candidates, cell)
			}
		}
	}

	if len(candidates) == 0 {
		return m.RandomDestination(c)
	}
	return candidates[m.rng.Intn(len(candidates))]
}

// Dispatch starts a transit toward dest. It returns ErrInTransit, and
// changes nothing, if one is already in flight.
func (m *MovementSystem) Dispatch(e ecs.Entity, dest components.Cell) error {
	c := m.store.Creature(e)
	t := c.Transit
	if t.Active {
		return fmt.Errorf("creature %s %d: %w", c.ID.Species, c.ID.ID, ErrInTransit)
	}
	if t.CommitPending {
		m.commit(c)
	}

	to := dest.Pos()
	*t = components.Transit{
		Active:        true,
		Start:         *c.Pos,
		Dest:          to,
		StepX:         round1((to.X - c.Pos.X) / float32(m.steps)),
		StepY:         round1((to.Y - c.Pos.Y) / float32(m.steps)),
		CommitPending: true,
		CommitCell:    dest,
	}
	return nil
}

// AdvanceFrame moves every in-flight creature one frame along its transit
// and applies occupancy commits that have come due.
func (m *MovementSystem) AdvanceFrame() {
	for _, list := range [2][]ecs.Entity{m.store.Flies(), m.store.Frogs()} {
		for _, e := range list {
			c := m.store.Creature(e)
			if c.Transit.Active || c.Transit.CommitPending {
				m.advance(c)
			}
		}
	}
}

func (m *MovementSystem) advance(c store.Creature) {
	t := c.Transit
	t.Frame++

	if t.Active {
		c.Pos.X = stepAxis(c.Pos.X, t.Start.X, t.Dest.X, t.StepX)
		c.Pos.Y = stepAxis(c.Pos.Y, t.Start.Y, t.Dest.Y, t.StepY)
		// Steps that round to zero would never arrive
		if t.Frame >= m.steps {
			*c.Pos = t.Dest
		}
		if *c.Pos == t.Dest {
			t.Active = false
		}
	}

	if t.CommitPending && t.Frame >= m.commitDelay {
		m.commit(c)
	}
}

// commit moves the occupancy cell (and frog coverage) to the transit target.
func (m *MovementSystem) commit(c store.Creature) {
	t := c.Transit
	c.Occ.Cell = t.CommitCell
	if c.Cover != nil {
		*c.Cover = components.CoverageAt(t.CommitCell)
	}
	t.CommitPending = false
}

// stepAxis advances one axis by step, rounded to 0.1 and clamped so it never
// passes dest.
func stepAxis(cur, start, dest, step float32) float32 {
	switch {
	case dest < start:
		return max(dest, round1(cur+step))
	case dest > start:
		return min(dest, round1(cur+step))
	}
	return cur
}

func round1(v float32) float32 {
	return float32(math.Round(float64(v)*10) / 10)
}

func containsCell(cells []components.Cell, c components.Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
