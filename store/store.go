// Package store owns every live fly, frog and egg.
//
// Entities live in an ark ECS world. The store adds per-species id
// counters, insertion-ordered handle lists (scan order for mating matters)
// and id indexes so a father or partner id can be resolved after the fact.
//
// Component pointers returned by the store are only valid until the next
// Add or Remove: ark may move component storage on structural changes.
package store

import (
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/traits"
)

// CreatureSpec describes a fly or frog to add.
type CreatureSpec struct {
	Pos     components.Position
	Gender  components.Gender
	Genes   traits.Genes
	Parents [2]uint32
	Look    components.Appearance
}

// EggSpec describes an egg to add.
type EggSpec struct {
	Pos  components.Position
	Egg  components.Egg
	Look components.Appearance
}

// Creature is a view over one fly or frog. Cover and Hunger are nil for flies.
type Creature struct {
	Entity  ecs.Entity
	ID      *components.Identity
	Pos     *components.Position
	Occ     *components.Occupancy
	Transit *components.Transit
	Life    *components.Life
	Genome  *components.Genome
	Look    *components.Appearance
	Hunger  *components.Hunger
	Cover   *components.Coverage
}

// IsFrog reports whether the creature is a frog.
func (c Creature) IsFrog() bool {
	return c.ID.Species == components.SpeciesFrog
}

// Store holds the ECS world and per-species bookkeeping.
type Store struct {
	world *ecs.World

	flyMapper *ecs.Map7[
		components.Identity,
		components.Position,
		components.Occupancy,
		components.Transit,
		components.Life,
		components.Genome,
		components.Appearance,
	]
	frogMapper *ecs.Map9[
		components.Identity,
		components.Position,
		components.Occupancy,
		components.Transit,
		components.Life,
		components.Genome,
		components.Appearance,
		components.Hunger,
		components.Coverage,
	]
	eggMapper *ecs.Map4[
		components.Identity,
		components.Position,
		components.Egg,
		components.Appearance,
	]

	// Individual component mappers for lookups
	idMap      *ecs.Map1[components.Identity]
	posMap     *ecs.Map1[components.Position]
	occMap     *ecs.Map1[components.Occupancy]
	transitMap *ecs.Map1[components.Transit]
	lifeMap    *ecs.Map1[components.Life]
	genomeMap  *ecs.Map1[components.Genome]
	lookMap    *ecs.Map1[components.Appearance]
	hungerMap  *ecs.Map1[components.Hunger]
	coverMap   *ecs.Map1[components.Coverage]
	eggMap     *ecs.Map1[components.Egg]

	occFilter   *ecs.Filter2[components.Identity, components.Occupancy]
	coverFilter *ecs.Filter1[components.Coverage]
	viewFilter  *ecs.Filter3[components.Identity, components.Position, components.Appearance]

	flies []ecs.Entity
	frogs []ecs.Entity
	eggs  []ecs.Entity

	flyByID  map[uint32]ecs.Entity
	frogByID map[uint32]ecs.Entity

	nextFlyID  uint32
	nextFrogID uint32
	nextEggID  uint32
}

// New creates an empty store.
func New() *Store {
	world := ecs.NewWorld()
	return &Store{
		world: world,
		flyMapper: ecs.NewMap7[
			components.Identity,
			components.Position,
			components.Occupancy,
			components.Transit,
			components.Life,
			components.Genome,
			components.Appearance,
		](world),
		frogMapper: ecs.NewMap9[
			components.Identity,
			components.Position,
			components.Occupancy,
			components.Transit,
			components.Life,
			components.Genome,
			components.Appearance,
			components.Hunger,
			components.Coverage,
		](world),
		eggMapper: ecs.NewMap4[
			components.Identity,
			components.Position,
			components.Egg,
			components.Appearance,
		](world),
		idMap:       ecs.NewMap1[components.Identity](world),
		posMap:      ecs.NewMap1[components.Position](world),
		occMap:      ecs.NewMap1[components.Occupancy](world),
		transitMap:  ecs.NewMap1[components.Transit](world),
		lifeMap:     ecs.NewMap1[components.Life](world),
		genomeMap:   ecs.NewMap1[components.Genome](world),
		lookMap:     ecs.NewMap1[components.Appearance](world),
		hungerMap:   ecs.NewMap1[components.Hunger](world),
		coverMap:    ecs.NewMap1[components.Coverage](world),
		eggMap:      ecs.NewMap1[components.Egg](world),
		occFilter:   ecs.NewFilter2[components.Identity, components.Occupancy](world),
		coverFilter: ecs.NewFilter1[components.Coverage](world),
		viewFilter:  ecs.NewFilter3[components.Identity, components.Position, components.Appearance](world),
		flyByID:     make(map[uint32]ecs.Entity),
		frogByID:    make(map[uint32]ecs.Entity),
	}
}

// AddFly creates a fly with the next fly id.
func (s *Store) AddFly(spec CreatureSpec) ecs.Entity {
	id := components.Identity{ID: s.nextFlyID, Species: components.SpeciesFly}
	s.nextFlyID++

	pos := spec.Pos
	occ := components.Occupancy{Cell: pos.Floor()}
	transit := components.Transit{}
	life := components.Life{Gender: spec.Gender, Parents: spec.Parents}
	genome := components.Genome{Genes: spec.Genes}
	look := spec.Look

	e := s.flyMapper.NewEntity(&id, &pos, &occ, &transit, &life, &genome, &look)
	s.flies = append(s.flies, e)
	s.flyByID[id.ID] = e
	return e
}

// AddFrog creates a frog with the next frog id. Its coverage is computed
// from the spawn cell.
func (s *Store) AddFrog(spec CreatureSpec) ecs.Entity {
	id := components.Identity{ID: s.nextFrogID, Species: components.SpeciesFrog}
	s.nextFrogID++

	pos := spec.Pos
	occ := components.Occupancy{Cell: pos.Floor()}
	transit := components.Transit{}
	life := components.Life{Gender: spec.Gender, Parents: spec.Parents}
	genome := components.Genome{Genes: spec.Genes}
	look := spec.Look
	hunger := components.Hunger{}
	cover := components.CoverageAt(occ.Cell)

	e := s.frogMapper.NewEntity(&id, &pos, &occ, &transit, &life, &genome, &look, &hunger, &cover)
	s.frogs = append(s.frogs, e)
	s.frogByID[id.ID] = e
	return e
}

// AddEgg creates an egg with the next egg id.
func (s *Store) AddEgg(spec EggSpec) ecs.Entity {
	id := components.Identity{ID: s.nextEggID, Species: components.SpeciesEgg}
	s.nextEggID++

	pos := spec.Pos
	egg := spec.Egg
	look := spec.Look
	e := s.eggMapper.NewEntity(&id, &pos, &egg, &look)
	s.eggs = append(s.eggs, e)
	return e
}

// Remove deletes an entity. It returns false if the entity was already gone,
// so a creature killed twice in one pass is only counted once.
func (s *Store) Remove(e ecs.Entity) bool {
	if !s.world.Alive(e) {
		return false
	}
	id := *s.idMap.Get(e)
	switch id.Species {
	case components.SpeciesFly:
		s.flies = deleteEntity(s.flies, e)
		delete(s.flyByID, id.ID)
	case components.SpeciesFrog:
		s.frogs = deleteEntity(s.frogs, e)
		delete(s.frogByID, id.ID)
	case components.SpeciesEgg:
		s.eggs = deleteEntity(s.eggs, e)
	}
	s.world.RemoveEntity(e)
	return true
}

func deleteEntity(list []ecs.Entity, e ecs.Entity) []ecs.Entity {
	if i := slices.Index(list, e); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}

// Alive reports whether the entity still exists.
func (s *Store) Alive(e ecs.Entity) bool {
	return s.world.Alive(e)
}

// Flies returns a snapshot of live fly handles in insertion order.
func (s *Store) Flies() []ecs.Entity { return slices.Clone(s.flies) }

// Frogs returns a snapshot of live frog handles in insertion order.
func (s *Store) Frogs() []ecs.Entity { return slices.Clone(s.frogs) }

// Eggs returns a snapshot of live egg handles in insertion order.
func (s *Store) Eggs() []ecs.Entity { return slices.Clone(s.eggs) }

// NumFlies returns the live fly count.
func (s *Store) NumFlies() int { return len(s.flies) }

// NumFrogs returns the live frog count.
func (s *Store) NumFrogs() int { return len(s.frogs) }

// NumEggs returns the live egg count.
func (s *Store) NumEggs() int { return len(s.eggs) }

// FliesCreated returns how many fly ids have been handed out.
func (s *Store) FliesCreated() uint32 { return s.nextFlyID }

// FrogsCreated returns how many frog ids have been handed out.
func (s *Store) FrogsCreated() uint32 { return s.nextFrogID }

// FlyByID resolves a live fly by id.
func (s *Store) FlyByID(id uint32) (ecs.Entity, bool) {
	e, ok := s.flyByID[id]
	return e, ok
}

// FrogByID resolves a live frog by id.
func (s *Store) FrogByID(id uint32) (ecs.Entity, bool) {
	e, ok := s.frogByID[id]
	return e, ok
}

// Creature returns a view over a live fly or frog.
func (s *Store) Creature(e ecs.Entity) Creature {
	c := Creature{
		Entity:  e,
		ID:      s.idMap.Get(e),
		Pos:     s.posMap.Get(e),
		Occ:     s.occMap.Get(e),
		Transit: s.transitMap.Get(e),
		Life:    s.lifeMap.Get(e),
		Genome:  s.genomeMap.Get(e),
		Look:    s.lookMap.Get(e),
	}
	if c.ID.Species == components.SpeciesFrog {
		c.Hunger = s.hungerMap.Get(e)
		c.Cover = s.coverMap.Get(e)
	}
	return c
}

// Egg returns the identity, position and incubation state of a live egg.
func (s *Store) Egg(e ecs.Entity) (*components.Identity, *components.Position, *components.Egg) {
	return s.idMap.Get(e), s.posMap.Get(e), s.eggMap.Get(e)
}

// EachOccupiedCell calls fn for every committed fly and frog cell and every
// frog coverage cell. Iteration stops when fn returns false.
func (s *Store) EachOccupiedCell(fn func(e ecs.Entity, species components.Species, c components.Cell) bool) {
	query := s.occFilter.Query()
	for query.Next() {
		id, occ := query.Get()
		if !fn(query.Entity(), id.Species, occ.Cell) {
			query.Close()
			return
		}
	}

	covers := s.coverFilter.Query()
	for covers.Next() {
		cover := covers.Get()
		for _, c := range cover.Cells {
			if !fn(covers.Entity(), components.SpeciesFrog, c) {
				covers.Close()
				return
			}
		}
	}
}

// EachVisible calls fn for every live entity with its display data.
func (s *Store) EachVisible(fn func(id components.Identity, pos components.Position, look components.Appearance)) {
	query := s.viewFilter.Query()
	for query.Next() {
		id, pos, look := query.Get()
		fn(*id, *pos, *look)
	}
}
