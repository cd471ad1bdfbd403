package systems

import (
	"errors"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/traits"
)

func TestCooldown(t *testing.T) {
	tests := []struct {
		name     string
		maternal int
		want     int
	}{
		{"idle stays idle", 0, 0},
		{"counts up", 1, 2},
		{"at limit counts up", 5, 6},
		{"past limit clears", 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			life := components.Life{Maternal: tt.maternal}
			Cooldown(&life, 5)
			if life.Maternal != tt.want {
				t.Errorf("Maternal = %d, want %d", life.Maternal, tt.want)
			}
		})
	}
}

func TestMateFlyPheromoneSums(t *testing.T) {
	tests := []struct {
		mother, father int
		want           bool
	}{
		{1, 3, true},
		{2, 2, true},
		{3, 3, true},
		{2, 4, true},
		{1, 1, false},
		{2, 3, false},
		{4, 4, false},
		{1, 4, false},
	}
	for _, tt := range tests {
		r := newRig(t, 10)
		mother := r.addFly(10, 10, components.Female, 20, flyGenes(1, tt.mother, true))
		r.addFly(11, 10, components.Male, 20, flyGenes(1, tt.father, true))

		_, err := r.breeding.MateFly(mother, components.Cell{X: 10, Y: 10})
		if got := err == nil; got != tt.want {
			t.Errorf("pheromones %d+%d: mated = %v (err %v), want %v", tt.mother, tt.father, got, err, tt.want)
		}
		if got := r.store.Creature(mother).Life.Pregnant; got != tt.want {
			t.Errorf("pheromones %d+%d: pregnant = %v, want %v", tt.mother, tt.father, got, tt.want)
		}
	}
}

func TestMateFlyRequirements(t *testing.T) {
	tests := []struct {
		name        string
		initiator   components.Gender
		initAge     int
		partnerAge  int
		maternal    int
		partnerCell components.Cell
	}{
		{"male initiator", components.Male, 20, 20, 0, components.Cell{X: 11, Y: 10}},
		{"immature initiator", components.Female, 19, 20, 0, components.Cell{X: 11, Y: 10}},
		{"immature partner", components.Female, 20, 19, 0, components.Cell{X: 11, Y: 10}},
		{"initiator cooling down", components.Female, 20, 20, 2, components.Cell{X: 11, Y: 10}},
		{"partner too far", components.Female, 20, 20, 0, components.Cell{X: 13, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, 11)
			e := r.addFly(10, 10, tt.initiator, tt.initAge, flyGenes(1, 2, true))
			r.store.Creature(e).Life.Maternal = tt.maternal
			r.addFly(tt.partnerCell.X, tt.partnerCell.Y, tt.initiator.Opposite(), tt.partnerAge, flyGenes(1, 2, true))

			if _, err := r.breeding.MateFly(e, components.Cell{X: 10, Y: 10}); !errors.Is(err, ErrNoMate) {
				t.Errorf("MateFly = %v, want ErrNoMate", err)
			}
		})
	}
}

func TestMateFlyPopulationCap(t *testing.T) {
	r := newRig(t, 12)
	r.cfg.Population.Limit = 2
	mother := r.addFly(10, 10, components.Female, 20, flyGenes(1, 2, true))
	r.addFly(11, 10, components.Male, 20, flyGenes(1, 2, true))

	if _, err := r.breeding.MateFly(mother, components.Cell{X: 10, Y: 10}); !errors.Is(err, ErrPopulationCap) {
		t.Fatalf("MateFly = %v, want ErrPopulationCap", err)
	}
	if r.store.Creature(mother).Life.Pregnant {
		t.Error("mother pregnant despite the cap")
	}
}

func TestGestationLaysEggOnTwelfthTick(t *testing.T) {
	r := newRig(t, 13)
	mother := r.addFly(10, 10, components.Female, 20, flyGenes(30, 1, true))
	father := r.addFly(11, 10, components.Male, 20, flyGenes(30, 3, true))

	if _, err := r.breeding.MateFly(mother, components.Cell{X: 10, Y: 10}); err != nil {
		t.Fatalf("MateFly: %v", err)
	}

	for tick := 1; tick < r.cfg.Fly.GestationTicks; tick++ {
		if _, laid, _ := r.breeding.Gestate(mother); laid {
			t.Fatalf("egg laid early on tick %d", tick)
		}
	}
	eggEntity, laid, err := r.breeding.Gestate(mother)
	if err != nil || !laid {
		t.Fatalf("Gestate on tick %d = (%v, %v), want a laid egg", r.cfg.Fly.GestationTicks, laid, err)
	}

	_, pos, egg := r.store.Egg(eggEntity)
	if *pos != (components.Position{X: 10.35, Y: 10.35}) {
		t.Errorf("egg at %v, want (10.35,10.35)", *pos)
	}
	if egg.HatchIn != r.cfg.Fly.HatchTicks {
		t.Errorf("HatchIn = %d, want %d", egg.HatchIn, r.cfg.Fly.HatchTicks)
	}
	want := [2]uint32{r.store.Creature(mother).ID.ID, r.store.Creature(father).ID.ID}
	if egg.Parents != want {
		t.Errorf("Parents = %v, want %v", egg.Parents, want)
	}
	if egg.ParentGenes[1].Int(traits.Pheromones) != 3 {
		t.Errorf("father genes not captured: %v", egg.ParentGenes[1])
	}

	life := r.store.Creature(mother).Life
	if life.Pregnant || life.Gestation != 0 {
		t.Errorf("pregnancy not reset: %+v", *life)
	}
}

func TestGestationMissingFather(t *testing.T) {
	r := newRig(t, 14)
	mother := r.addFly(10, 10, components.Female, 20, flyGenes(1, 2, true))
	father := r.addFly(11, 10, components.Male, 20, flyGenes(1, 2, true))

	if _, err := r.breeding.MateFly(mother, components.Cell{X: 10, Y: 10}); err != nil {
		t.Fatalf("MateFly: %v", err)
	}
	r.store.Remove(father)

	var (
		laidEggs []ecs.Entity
		err      error
	)
	for range r.cfg.Fly.GestationTicks {
		e, laid, gerr := r.breeding.Gestate(mother)
		if laid {
			laidEggs = append(laidEggs, e)
			err = gerr
		}
	}
	if !errors.Is(err, ErrMissingPartner) {
		t.Errorf("Gestate error = %v, want ErrMissingPartner", err)
	}
	if len(laidEggs) != 1 {
		t.Fatalf("laid %d eggs, want 1", len(laidEggs))
	}
	_, _, egg := r.store.Egg(laidEggs[0])
	if egg.ParentGenes[1] != nil {
		t.Errorf("missing father left genes %v", egg.ParentGenes[1])
	}
}

// frogPair places a compatible mature pair next to each other plus a row
// of flies along the far edge to set the colony cap.
func frogPair(t *testing.T, flies int) (r *rig, mother, father ecs.Entity) {
	t.Helper()
	r = newRig(t, 15)
	for i := range flies {
		r.addFly(i%30, 29-i/30, components.Male, 0, flyGenes(1, 1, true))
	}
	mother = r.addFrog(10, 10, components.Female, 50, frogGenes(2))
	father = r.addFrog(12, 10, components.Male, 50, frogGenes(2))
	return r, mother, father
}

func TestMateFrogBirth(t *testing.T) {
	r, mother, father := frogPair(t, 30)

	child, err := r.breeding.MateFrog(mother, components.Cell{X: 10, Y: 10})
	if err != nil {
		t.Fatalf("MateFrog: %v", err)
	}
	if r.store.NumFrogs() != 3 {
		t.Fatalf("NumFrogs = %d, want 3", r.store.NumFrogs())
	}

	c := r.store.Creature(child)
	onRing := false
	for _, o := range frogSpawnOffsets {
		if c.Occ.Cell == (components.Cell{X: 10 + o[0], Y: 10 + o[1]}) {
			onRing = true
		}
	}
	if !onRing {
		t.Errorf("child anchored at %v, not on the spawn ring", c.Occ.Cell)
	}
	if *c.Cover != components.CoverageAt(c.Occ.Cell) {
		t.Errorf("child coverage %v does not match anchor", c.Cover.Cells)
	}
	if p := c.Genome.Genes.Int(traits.Pheromones); p < 1 || p > 4 {
		t.Errorf("child pheromones %d out of range", p)
	}

	for _, pe := range []ecs.Entity{mother, father} {
		life := r.store.Creature(pe).Life
		if life.Maternal != 1 || life.Children != 1 {
			t.Errorf("parent after birth = %+v, want cooldown 1 and 1 child", *life)
		}
	}
}

func TestMateFrogRefusals(t *testing.T) {
	tests := []struct {
		name  string
		flies int
		setup func(r *rig, mother, father ecs.Entity)
		want  error
	}{
		{"colony cap with no flies", 0, func(*rig, ecs.Entity, ecs.Entity) {}, ErrPopulationCap},
		{"colony cap at ratio", 15, func(*rig, ecs.Entity, ecs.Entity) {}, ErrPopulationCap},
		{"partner cooling down", 30, func(r *rig, _, father ecs.Entity) {
			r.store.Creature(father).Life.Maternal = 3
		}, ErrNoMate},
		{"immature initiator", 30, func(r *rig, mother, _ ecs.Entity) {
			r.store.Creature(mother).Life.Age = 49
		}, ErrNoMate},
		{"same gender", 30, func(r *rig, _, father ecs.Entity) {
			r.store.Creature(father).Life.Gender = components.Female
		}, ErrNoMate},
		{"incompatible", 30, func(r *rig, _, father ecs.Entity) {
			g := r.store.Creature(father).Genome
			g.Genes = g.Genes.With(traits.Pheromones, traits.Num(3))
		}, ErrNoMate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mother, father := frogPair(t, tt.flies)
			tt.setup(r, mother, father)

			if _, err := r.breeding.MateFrog(mother, components.Cell{X: 10, Y: 10}); !errors.Is(err, tt.want) {
				t.Errorf("MateFrog = %v, want %v", err, tt.want)
			}
			if r.store.NumFrogs() != 2 {
				t.Errorf("NumFrogs = %d, want 2", r.store.NumFrogs())
			}
		})
	}
}
