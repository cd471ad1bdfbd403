package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/store"
	"github.com/pthm-cable/swamp/traits"
)

// BreedingSystem handles mating, pregnancy and egg laying for flies, and
// mating with direct birth for frogs.
type BreedingSystem struct {
	store    *store.Store
	spatial  *SpatialIndex
	genetics traits.Model
	rng      *rand.Rand
	cfg      *config.Config
}

// NewBreedingSystem creates a new breeding system.
func NewBreedingSystem(s *store.Store, spatial *SpatialIndex, genetics traits.Model, rng *rand.Rand, cfg *config.Config) *BreedingSystem {
	return &BreedingSystem{store: s, spatial: spatial, genetics: genetics, rng: rng, cfg: cfg}
}

// Cooldown advances a maternal cooldown and clears it once it exceeds limit.
func Cooldown(life *components.Life, limit int) {
	if life.Maternal == 0 {
		return
	}
	if life.Maternal > limit {
		life.Maternal = 0
		return
	}
	life.Maternal++
}

// Gestate advances a pregnant fly. When the counter reaches the gestation
// threshold an egg is laid next to the mother and the pregnancy resets.
// A father that no longer exists leaves the egg with one missing parent and
// reports ErrMissingPartner alongside the laid egg.
func (b *BreedingSystem) Gestate(e ecs.Entity) (ecs.Entity, bool, error) {
	c := b.store.Creature(e)
	life := c.Life
	if !life.Pregnant {
		return ecs.Entity{}, false, nil
	}

	life.Gestation++
	if life.Gestation < b.cfg.Fly.GestationTicks {
		return ecs.Entity{}, false, nil
	}

	egg := components.Egg{
		Kind:    components.EggFly,
		HatchIn: b.cfg.Fly.HatchTicks,
		Parents: [2]uint32{c.ID.ID, life.Father},
	}
	egg.ParentGenes[0] = c.Genome.Genes.Clone()

	var err error
	if father, ok := b.store.FlyByID(life.Father); ok {
		egg.ParentGenes[1] = b.store.Creature(father).Genome.Genes.Clone()
	} else {
		err = fmt.Errorf("father %d of fly %d: %w", life.Father, c.ID.ID, ErrMissingPartner)
	}

	off := float32(b.cfg.Fly.EggOffset)
	pos := components.Position{X: c.Pos.X + off, Y: c.Pos.Y + off}

	life.Pregnant = false
	life.Gestation = 0
	life.Father = 0

	eggEntity := b.store.AddEgg(store.EggSpec{
		Pos:  pos,
		Egg:  egg,
		Look: components.Appearance{Size: float32(b.cfg.Fly.EggSize), Colour: components.ColourBlack},
	})
	return eggEntity, true, err
}

// MateFly tries to make a female fly pregnant. dest is the cell she is
// heading to this tick; partners must have committed to a cell in its
// neighbourhood. The first qualifying partner in store order wins.
// Returns ErrNoMate or ErrPopulationCap when no mating happens.
func (b *BreedingSystem) MateFly(e ecs.Entity, dest components.Cell) (ecs.Entity, error) {
	c := b.store.Creature(e)
	life := c.Life
	if life.Gender != components.Female || life.Pregnant || life.Maternal != 0 || life.Age <= b.cfg.Fly.MaturityAge {
		return ecs.Entity{}, ErrNoMate
	}

	surrounding := b.spatial.Surrounding(dest)
	if len(b.spatial.Available(surrounding)) == 0 {
		return ecs.Entity{}, ErrNoMate
	}

	genes := c.Genome.Genes
	for _, pe := range b.store.Flies() {
		if pe == e {
			continue
		}
		p := b.store.Creature(pe)
		if !containsCell(surrounding, p.Occ.Cell) ||
			!traits.Compatible(genes, p.Genome.Genes) ||
			p.Life.Gender == life.Gender ||
			p.Life.Age <= b.cfg.Fly.MaturityAge ||
			p.Life.Maternal != 0 {
			continue
		}

		pop := b.cfg.Population
		if b.store.NumFlies()+b.store.NumEggs()*pop.EggWeight >= pop.Limit {
			return ecs.Entity{}, ErrPopulationCap
		}

		life.Pregnant = true
		life.Gestation = 0
		life.Father = p.ID.ID
		life.Maternal = 1
		return pe, nil
	}
	return ecs.Entity{}, ErrNoMate
}

// MateFrog tries to breed a frog with a neighbour. dest is the anchor the
// frog is heading to (or sits at). The newborn is placed directly on a free
// 2x2 footprint on the spawn ring; both parents enter maternal cooldown.
func (b *BreedingSystem) MateFrog(e ecs.Entity, dest components.Cell) (ecs.Entity, error) {
	c := b.store.Creature(e)
	if c.Life.Maternal != 0 || c.Life.Age <= b.cfg.Frog.MaturityAge {
		return ecs.Entity{}, ErrNoMate
	}

	ring := b.spatial.FrogSurrounding(dest)
	for _, pe := range b.store.Frogs() {
		if pe == e {
			continue
		}
		p := b.store.Creature(pe)
		if !frogTouches(p, ring) ||
			p.Life.Gender == c.Life.Gender ||
			!traits.Compatible(c.Genome.Genes, p.Genome.Genes) ||
			p.Life.Maternal != 0 ||
			p.Life.Age <= b.cfg.Frog.MaturityAge {
			continue
		}

		if float64(b.store.NumFrogs()) >= float64(b.store.NumFlies())/b.cfg.Frog.ColonyRatio {
			return ecs.Entity{}, fmt.Errorf("frog colony of %d: %w", b.store.NumFrogs(), ErrPopulationCap)
		}

		sites := b.spatial.FrogSpawnSites(dest)
		if len(sites) == 0 {
			return ecs.Entity{}, fmt.Errorf("no frog spawn site near (%d,%d): %w", dest.X, dest.Y, ErrGridSaturated)
		}
		site := sites[b.rng.Intn(len(sites))]

		genes := b.genetics.Inherit(c.Genome.Genes, p.Genome.Genes, b.rng).
			With(traits.Pheromones, traits.RandomPheromones(b.rng))
		parents := [2]uint32{c.ID.ID, p.ID.ID}

		gender := b.randomGender()
		child := b.store.AddFrog(store.CreatureSpec{
			Pos:     site.Pos(),
			Gender:  gender,
			Genes:   genes,
			Parents: parents,
			Look:    components.Appearance{Size: float32(b.cfg.Frog.Size), Colour: components.FrogColour(gender)},
		})
		for _, parent := range parents {
			pe, ok := b.store.FrogByID(parent)
			if !ok {
				continue
			}
			life := b.store.Creature(pe).Life
			life.Maternal = 1
			life.Children++
		}
		return child, nil
	}
	return ecs.Entity{}, ErrNoMate
}

func frogTouches(p store.Creature, ring []components.Cell) bool {
	if containsCell(ring, p.Occ.Cell) {
		return true
	}
	for _, c := range p.Cover.Cells {
		if containsCell(ring, c) {
			return true
		}
	}
	return false
}

func (b *BreedingSystem) randomGender() components.Gender {
	if b.rng.Float64() < 0.5 {
		return components.Female
	}
	return components.Male
}
