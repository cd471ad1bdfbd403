package store

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/traits"
)

func flyAt(x, y float32) CreatureSpec {
	return CreatureSpec{
		Pos:   components.Position{X: x, Y: y},
		Genes: traits.Genes{{Name: traits.Mobility, Value: traits.Num(1)}},
	}
}

func TestIDsNeverRepeat(t *testing.T) {
	s := New()
	seen := map[uint32]bool{}

	for round := 0; round < 50; round++ {
		e := s.AddFly(flyAt(1, 1))
		id := s.Creature(e).ID.ID
		if seen[id] {
			t.Fatalf("fly id %d handed out twice", id)
		}
		seen[id] = true
		if !s.Remove(e) {
			t.Fatalf("round %d: Remove returned false for live fly", round)
		}
	}
	if got := s.FliesCreated(); got != 50 {
		t.Errorf("FliesCreated = %d, want 50", got)
	}
}

func TestRemoveOnce(t *testing.T) {
	s := New()
	a := s.AddFly(flyAt(1, 1))
	b := s.AddFly(flyAt(2, 2))
	c := s.AddFly(flyAt(3, 3))

	if !s.Remove(b) {
		t.Fatal("first Remove should succeed")
	}
	if s.Remove(b) {
		t.Error("second Remove should report false")
	}
	if s.Alive(b) {
		t.Error("removed fly still alive")
	}
	if _, ok := s.FlyByID(1); ok {
		t.Error("removed fly still indexed by id")
	}

	got := s.Flies()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("Flies() = %v, want insertion order without removed fly", got)
	}
}

func TestSpeciesCountersIndependent(t *testing.T) {
	s := New()
	s.AddFly(flyAt(0, 0))
	s.AddFly(flyAt(1, 0))
	frog := s.AddFrog(CreatureSpec{Pos: components.Position{X: 5, Y: 5}})
	egg := s.AddEgg(EggSpec{Pos: components.Position{X: 2.35, Y: 2.35}})

	if id := s.Creature(frog).ID.ID; id != 0 {
		t.Errorf("first frog id = %d, want 0", id)
	}
	if id, _, _ := s.Egg(egg); id.ID != 0 {
		t.Errorf("first egg id = %d, want 0", id.ID)
	}
	if s.NumFlies() != 2 || s.NumFrogs() != 1 || s.NumEggs() != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", s.NumFlies(), s.NumFrogs(), s.NumEggs())
	}
}

func TestFrogCoverageOnAdd(t *testing.T) {
	s := New()
	e := s.AddFrog(CreatureSpec{Pos: components.Position{X: 4, Y: 7}})
	c := s.Creature(e)

	if !c.IsFrog() || c.Cover == nil || c.Hunger == nil {
		t.Fatal("frog view missing frog components")
	}
	want := []components.Cell{{X: 5, Y: 8}, {X: 4, Y: 8}, {X: 5, Y: 7}}
	for _, cell := range want {
		if !c.Cover.Contains(cell) {
			t.Errorf("coverage %v missing %v", c.Cover.Cells, cell)
		}
	}
}

func TestEachOccupiedCell(t *testing.T) {
	s := New()
	s.AddFly(flyAt(1.6, 2.2))
	s.AddFrog(CreatureSpec{Pos: components.Position{X: 10, Y: 10}})
	s.AddEgg(EggSpec{Pos: components.Position{X: 20, Y: 20}})

	cells := map[components.Cell]components.Species{}
	s.EachOccupiedCell(func(_ ecs.Entity, sp components.Species, c components.Cell) bool {
		cells[c] = sp
		return true
	})

	tests := []struct {
		cell components.Cell
		want components.Species
		ok   bool
	}{
		{components.Cell{X: 1, Y: 2}, components.SpeciesFly, true},
		{components.Cell{X: 10, Y: 10}, components.SpeciesFrog, true},
		{components.Cell{X: 11, Y: 11}, components.SpeciesFrog, true},
		{components.Cell{X: 20, Y: 20}, 0, false},
	}
	for _, tt := range tests {
		sp, ok := cells[tt.cell]
		if ok != tt.ok || (ok && sp != tt.want) {
			t.Errorf("cell %v: got (%v, %v), want (%v, %v)", tt.cell, sp, ok, tt.want, tt.ok)
		}
	}
	if len(cells) != 5 {
		t.Errorf("visited %d cells, want 5", len(cells))
	}
}
