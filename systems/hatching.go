package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/store"
	"github.com/pthm-cable/swamp/traits"
)

// Brood is one hatched egg and the flies it produced.
type Brood struct {
	EggID     uint32
	Parents   [2]uint32
	Offspring []ecs.Entity
}

// HatchEggs counts down every fly egg and hatches those that reach zero.
// Each hatch produces a clutch of flies on random cells around the egg,
// each inheriting from the parent genes captured when the egg was laid.
// Frog eggs are never laid, and are left untouched if present.
func (b *BreedingSystem) HatchEggs() []Brood {
	var broods []Brood
	for _, e := range b.store.Eggs() {
		id, pos, egg := b.store.Egg(e)
		if egg.Kind != components.EggFly {
			continue
		}
		if egg.HatchIn > 0 {
			egg.HatchIn--
		}
		if egg.HatchIn > 0 {
			continue
		}

		// Copy out before adding flies or removing the egg
		state := *egg
		brood := Brood{EggID: id.ID, Parents: state.Parents}
		cells := b.spatial.Surrounding(pos.Floor())

		n := b.cfg.Fly.ClutchMin + b.rng.Intn(b.cfg.Fly.ClutchMax-b.cfg.Fly.ClutchMin+1)
		for range n {
			if len(cells) == 0 {
				break
			}
			cell := cells[b.rng.Intn(len(cells))]
			brood.Offspring = append(brood.Offspring, b.spawnHatchling(cell, state))
		}
		for _, pid := range state.Parents {
			if pe, ok := b.store.FlyByID(pid); ok {
				b.store.Creature(pe).Life.Children += len(brood.Offspring)
			}
		}

		b.store.Remove(e)
		broods = append(broods, brood)
	}
	return broods
}

func (b *BreedingSystem) spawnHatchling(cell components.Cell, egg components.Egg) ecs.Entity {
	genes := b.genetics.Inherit(egg.ParentGenes[0], egg.ParentGenes[1], b.rng).
		With(traits.Pheromones, traits.RandomPheromones(b.rng))
	gender := b.randomGender()
	return b.store.AddFly(store.CreatureSpec{
		Pos:     cell.Pos(),
		Gender:  gender,
		Genes:   genes,
		Parents: egg.Parents,
		Look: components.Appearance{
			Size:   float32(b.cfg.Fly.Size),
			Colour: components.FlyColour(gender, genes.Bool(traits.Leader)),
		},
	})
}
