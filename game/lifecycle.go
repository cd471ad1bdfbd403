package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/store"
	"github.com/pthm-cable/swamp/systems"
	"github.com/pthm-cable/swamp/telemetry"
	"github.com/pthm-cable/swamp/traits"
)

// spawnInitialPopulation places the founder frogs, then the founder flies.
//
// Founder flies descend from a genesis fly (id 0) that only exists while
// their genes are drawn, so the first live fly id is 1.
func (g *Game) spawnInitialPopulation() error {
	cfg := g.cfg

	for i := range cfg.Population.Frogs {
		if err := g.spawnFounderFrog(i); err != nil {
			return fmt.Errorf("placing founder frog %d: %w", i, err)
		}
	}

	genesisGenes := g.genetics.Inherit(nil, nil, g.rng)
	genesis := g.store.AddFly(store.CreatureSpec{Genes: genesisGenes})
	genesisID := g.store.Creature(genesis).ID.ID

	founders := make([]traits.Genes, cfg.Population.Flies)
	for i := range founders {
		founders[i] = g.genetics.Inherit(genesisGenes, genesisGenes, g.rng).
			With(traits.Pheromones, traits.RandomPheromones(g.rng))
	}
	g.store.Remove(genesis)

	for i, genes := range founders {
		cell, err := g.spatial.ChoosePosition()
		if err != nil {
			return fmt.Errorf("placing founder fly %d: %w", i, err)
		}
		gender := g.randomGender()
		e := g.store.AddFly(store.CreatureSpec{
			Pos:     cell.Pos(),
			Gender:  gender,
			Genes:   genes,
			Parents: [2]uint32{genesisID, genesisID},
			Look: components.Appearance{
				Size:   float32(cfg.Fly.Size),
				Colour: components.FlyColour(gender, genes.Bool(traits.Leader)),
			},
		})
		g.registerBirth(e)
	}
	return nil
}

// spawnFounderFrog places one seeded frog. The first two are a guaranteed
// male/female pair.
func (g *Game) spawnFounderFrog(i int) error {
	cfg := g.cfg

	cell, err := g.frogFootprint()
	if err != nil {
		return err
	}

	var gender components.Gender
	switch i {
	case 0:
		gender = components.Male
	case 1:
		gender = components.Female
	default:
		gender = g.randomGender()
	}

	fg := cfg.Frog.FounderGenes
	genes := traits.Genes{
		{Name: traits.Mobility, Value: traits.Num(fg.Mobility)},
		{Name: traits.Survival, Value: traits.Num(fg.Survival)},
		{Name: traits.HopRate, Value: traits.Num(fg.HopRate)},
		{Name: traits.Efficiency, Value: traits.Num(fg.Efficiency)},
		{Name: traits.Pheromones, Value: traits.RandomPheromones(g.rng)},
	}

	e := g.store.AddFrog(store.CreatureSpec{
		Pos:    cell.Pos(),
		Gender: gender,
		Genes:  genes,
		Look:   components.Appearance{Size: float32(cfg.Frog.Size), Colour: components.FrogColour(gender)},
	})
	g.registerBirth(e)
	return nil
}

// frogFootprint picks a random free cell whose whole 2x2 footprint is free.
func (g *Game) frogFootprint() (components.Cell, error) {
	retries := g.cfg.Spatial.MaxPlacementRetries
	for range retries {
		cell, err := g.spatial.ChoosePosition()
		if err != nil {
			return components.Cell{}, err
		}
		if g.spatial.FootprintFree(cell) {
			return cell, nil
		}
	}
	return components.Cell{}, fmt.Errorf("no free frog footprint after %d attempts: %w", retries, systems.ErrGridSaturated)
}

func (g *Game) randomGender() components.Gender {
	if g.rng.Float64() < 0.5 {
		return components.Female
	}
	return components.Male
}

// registerBirth starts lifetime tracking for a new fly or frog.
func (g *Game) registerBirth(e ecs.Entity) {
	c := g.store.Creature(e)
	g.lifetimeTracker.Register(c.ID.Species, c.ID.ID, g.tick, c.Life.Parents)
}

// removeCreature records a death and removes the creature from the store.
// It is a no-op for handles that are already gone.
func (g *Game) removeCreature(e ecs.Entity, cause components.DeathCause) {
	if !g.store.Alive(e) {
		return
	}
	c := g.store.Creature(e)
	id, sp, age := c.ID.ID, c.ID.Species, c.Life.Age

	g.emit(telemetry.NewDeathEvent(g.tick, id, sp, cause))
	g.store.Remove(e)

	lifetime := g.lifetimeTracker.Remove(sp, id)
	g.logDeath(sp, id, age, cause, lifetime)
}
