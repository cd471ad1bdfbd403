package traits

import (
	"math/rand"

	"github.com/pthm-cable/swamp/config"
)

// Model holds inheritance parameters.
type Model struct {
	MutationRate float64
	Defaults     Genes
}

// NewModel builds a Model from the genetics config section.
func NewModel(cfg config.GeneticsConfig) Model {
	return Model{
		MutationRate: cfg.MutationRate,
		Defaults: Genes{
			{Name: Mobility, Value: Num(cfg.Defaults.Mobility)},
			{Name: LifeSpan, Value: Num(cfg.Defaults.LifeSpan)},
			{Name: Leader, Value: Flag(cfg.Defaults.Leader)},
		},
	}
}

// Inherit produces a child gene set. If either parent is missing the child
// gets the default set. Otherwise each trait of a is taken from a or b on a
// fair coin flip, then with probability MutationRate one trait is mutated.
// Pheromones are never inherited; callers roll them with RandomPheromones.
func (m Model) Inherit(a, b Genes, rng *rand.Rand) Genes {
	if a == nil || b == nil {
		return m.Defaults.Clone()
	}

	child := make(Genes, 0, len(a))
	for _, gene := range a {
		if gene.Name == Pheromones {
			continue
		}
		v := gene.Value
		if rng.Float64() < 0.5 {
			if bv, ok := b.Get(gene.Name); ok {
				v = bv
			}
		}
		child = append(child, Gene{Name: gene.Name, Value: v})
	}

	if len(child) > 0 && rng.Float64() < m.MutationRate {
		delta := 1
		if rng.Float64() < 0.5 {
			delta = -1
		}
		i := rng.Intn(len(child))
		child[i].Value = child[i].Value.Mutate(delta)
	}
	return child
}

// RandomPheromones rolls a pheromone tag uniformly in [1, 4].
func RandomPheromones(rng *rand.Rand) Value {
	return Num(rng.Intn(4) + 1)
}

// Compatible reports whether two gene sets may mate: their pheromone tags
// must sum to exactly 4 or 6.
func Compatible(a, b Genes) bool {
	sum := a.Int(Pheromones) + b.Int(Pheromones)
	return sum == 4 || sum == 6
}
