package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/store"
	"github.com/pthm-cable/swamp/traits"
)

// rig bundles a store and every system over one seeded RNG.
type rig struct {
	cfg      *config.Config
	store    *store.Store
	rng      *rand.Rand
	spatial  *SpatialIndex
	movement *MovementSystem
	breeding *BreedingSystem
	feeding  *FeedingSystem
}

func newRig(t *testing.T, seed int64) *rig {
	t.Helper()
	cfg := config.Default()
	s := store.New()
	rng := rand.New(rand.NewSource(seed))
	spatial := NewSpatialIndex(s, rng, cfg.Grid.Size, cfg.Spatial.MaxPlacementRetries)
	return &rig{
		cfg:      cfg,
		store:    s,
		rng:      rng,
		spatial:  spatial,
		movement: NewMovementSystem(s, spatial, rng, cfg.Transit.Steps, cfg.Transit.CommitDelayFrames),
		breeding: NewBreedingSystem(s, spatial, traits.NewModel(cfg.Genetics), rng, cfg),
		feeding:  NewFeedingSystem(s, spatial, rng, cfg.Predation.LungeChance),
	}
}

func flyGenes(mobility, pheromones int, leader bool) traits.Genes {
	return traits.Genes{
		{Name: traits.Mobility, Value: traits.Num(mobility)},
		{Name: traits.LifeSpan, Value: traits.Num(250)},
		{Name: traits.Leader, Value: traits.Flag(leader)},
		{Name: traits.Pheromones, Value: traits.Num(pheromones)},
	}
}

func frogGenes(pheromones int) traits.Genes {
	return traits.Genes{
		{Name: traits.Mobility, Value: traits.Num(3)},
		{Name: traits.Survival, Value: traits.Num(150)},
		{Name: traits.HopRate, Value: traits.Num(8)},
		{Name: traits.Efficiency, Value: traits.Num(5)},
		{Name: traits.Pheromones, Value: traits.Num(pheromones)},
	}
}

func (r *rig) addFly(x, y int, g components.Gender, age int, genes traits.Genes) ecs.Entity {
	e := r.store.AddFly(store.CreatureSpec{
		Pos:    components.Position{X: float32(x), Y: float32(y)},
		Gender: g,
		Genes:  genes,
	})
	r.store.Creature(e).Life.Age = age
	return e
}

func (r *rig) addFrog(x, y int, g components.Gender, age int, genes traits.Genes) ecs.Entity {
	e := r.store.AddFrog(store.CreatureSpec{
		Pos:    components.Position{X: float32(x), Y: float32(y)},
		Gender: g,
		Genes:  genes,
	})
	r.store.Creature(e).Life.Age = age
	return e
}

// settle runs frames until no transit or commit is pending.
func (r *rig) settle() {
	for range r.cfg.Derived.FramesPerTick {
		r.movement.AdvanceFrame()
	}
}
