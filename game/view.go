package game

import (
	"cmp"
	"slices"

	"github.com/pthm-cable/swamp/components"
)

// EntityView is one drawable entity.
type EntityView struct {
	Species components.Species
	ID      uint32
	X, Y    float32 // Continuous position in cells
	Size    float32 // Display size in cells
	Colour  components.Colour
}

// Snapshot is a read-only copy of what a viewer needs for one frame.
// Entities are ordered eggs, then flies, then frogs, so frogs draw on top.
type Snapshot struct {
	Tick     int32
	GridSize int
	Flies    int
	Frogs    int
	Eggs     int
	Kills    int
	Entities []EntityView
}

// drawLayer orders species for painting.
func drawLayer(sp components.Species) int {
	switch sp {
	case components.SpeciesEgg:
		return 0
	case components.SpeciesFly:
		return 1
	default:
		return 2
	}
}

// Snapshot copies the current state for a viewer.
func (g *Game) Snapshot() Snapshot {
	flies, frogs, eggs := g.Counts()
	snap := Snapshot{
		Tick:     g.tick,
		GridSize: g.cfg.Grid.Size,
		Flies:    flies,
		Frogs:    frogs,
		Eggs:     eggs,
		Kills:    g.kills,
		Entities: make([]EntityView, 0, flies+frogs+eggs),
	}
	g.store.EachVisible(func(id components.Identity, pos components.Position, look components.Appearance) {
		snap.Entities = append(snap.Entities, EntityView{
			Species: id.Species,
			ID:      id.ID,
			X:       pos.X,
			Y:       pos.Y,
			Size:    look.Size,
			Colour:  look.Colour,
		})
	})
	slices.SortStableFunc(snap.Entities, func(a, b EntityView) int {
		if c := cmp.Compare(drawLayer(a.Species), drawLayer(b.Species)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return snap
}
