package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/store"
	"github.com/pthm-cable/swamp/traits"
)

// Kill describes a fly taken by a frog.
type Kill struct {
	Frog  ecs.Entity
	Cause components.DeathCause // CausePredation or CauseLunge
}

// FeedingSystem resolves frogs eating flies and frogs starving.
type FeedingSystem struct {
	store       *store.Store
	spatial     *SpatialIndex
	rng         *rand.Rand
	lungeChance float64
}

// NewFeedingSystem creates a new feeding system.
func NewFeedingSystem(s *store.Store, spatial *SpatialIndex, rng *rand.Rand, lungeChance float64) *FeedingSystem {
	return &FeedingSystem{store: s, spatial: spatial, rng: rng, lungeChance: lungeChance}
}

// Hunt checks every frog against a fly. A fly whose committed cell is under
// a frog dies with probability 1 - efficiency/10. Each neighbouring cell of
// dest that a frog sits on adds a flat lunge check. The first frog to kill
// wins and has its hunger reset. The fly is not removed here.
func (f *FeedingSystem) Hunt(fly ecs.Entity, dest components.Cell) (Kill, bool) {
	at := f.store.Creature(fly).Occ.Cell
	surrounding := f.spatial.Surrounding(dest)

	for _, fe := range f.store.Frogs() {
		frog := f.store.Creature(fe)

		if frogCovers(frog, at) {
			eff := float64(frog.Genome.Genes.Int(traits.Efficiency))
			if f.rng.Float64() > eff*0.1 {
				frog.Hunger.Ticks = 0
				return Kill{Frog: fe, Cause: components.CausePredation}, true
			}
		}

		for _, c := range surrounding {
			if !frogCovers(frog, c) {
				continue
			}
			if f.rng.Float64() < f.lungeChance {
				frog.Hunger.Ticks = 0
				return Kill{Frog: fe, Cause: components.CauseLunge}, true
			}
		}
	}
	return Kill{}, false
}

func frogCovers(frog store.Creature, c components.Cell) bool {
	return frog.Occ.Cell == c || frog.Cover.Contains(c)
}

// Starve increments a frog's hunger and reports whether it now exceeds the
// frog's survival gene.
func (f *FeedingSystem) Starve(fe ecs.Entity) bool {
	frog := f.store.Creature(fe)
	frog.Hunger.Ticks++
	return frog.Hunger.Ticks > frog.Genome.Genes.Int(traits.Survival)
}
