package systems

import (
	"errors"
	"testing"

	"github.com/pthm-cable/swamp/components"
)

func TestOutOfBounds(t *testing.T) {
	r := newRig(t, 1)

	tests := []struct {
		name string
		cell components.Cell
		want bool
	}{
		{"origin", components.Cell{X: 0, Y: 0}, false},
		{"far corner", components.Cell{X: 29, Y: 29}, false},
		{"negative x", components.Cell{X: -1, Y: 5}, true},
		{"negative y", components.Cell{X: 5, Y: -1}, true},
		{"x at size", components.Cell{X: 30, Y: 0}, true},
		{"y at size", components.Cell{X: 0, Y: 30}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.spatial.OutOfBounds(tt.cell); got != tt.want {
				t.Errorf("OutOfBounds(%v) = %v, want %v", tt.cell, got, tt.want)
			}
			err := r.spatial.CheckBounds(tt.cell)
			if errors.Is(err, ErrOutOfBounds) != tt.want {
				t.Errorf("CheckBounds(%v) = %v", tt.cell, err)
			}
		})
	}
}

func TestOccupiedLayers(t *testing.T) {
	r := newRig(t, 1)
	r.addFly(3, 3, components.Male, 0, flyGenes(1, 1, true))
	frog := r.addFrog(10, 10, components.Male, 0, frogGenes(1))

	tests := []struct {
		name  string
		cell  components.Cell
		layer Layer
		want  bool
	}{
		{"fly in all layer", components.Cell{X: 3, Y: 3}, LayerAll, true},
		{"fly hidden from frog layer", components.Cell{X: 3, Y: 3}, LayerFrogs, false},
		{"frog anchor", components.Cell{X: 10, Y: 10}, LayerFrogs, true},
		{"frog coverage", components.Cell{X: 11, Y: 11}, LayerAll, true},
		{"empty", components.Cell{X: 20, Y: 20}, LayerAll, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.spatial.Occupied(tt.cell, tt.layer); got != tt.want {
				t.Errorf("Occupied(%v, %v) = %v, want %v", tt.cell, tt.layer, got, tt.want)
			}
		})
	}

	if r.spatial.OccupiedExcept(components.Cell{X: 11, Y: 10}, LayerFrogs, frog) {
		t.Error("frog should not block itself")
	}
}

func TestNeighbourhoodSizes(t *testing.T) {
	r := newRig(t, 1)

	tests := []struct {
		name string
		fn   func(components.Cell) []components.Cell
		cell components.Cell
		want int
	}{
		{"surrounding interior", r.spatial.Surrounding, components.Cell{X: 5, Y: 5}, 8},
		{"surrounding corner", r.spatial.Surrounding, components.Cell{X: 0, Y: 0}, 3},
		{"surrounding edge", r.spatial.Surrounding, components.Cell{X: 0, Y: 5}, 5},
		{"frog ring interior", r.spatial.FrogSurrounding, components.Cell{X: 5, Y: 5}, 12},
		{"frog ring corner", r.spatial.FrogSurrounding, components.Cell{X: 0, Y: 0}, 5},
		{"spawn sites empty grid", r.spatial.FrogSpawnSites, components.Cell{X: 10, Y: 10}, 16},
		{"spawn sites at far corner", r.spatial.FrogSpawnSites, components.Cell{X: 28, Y: 28}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.fn(tt.cell)); got != tt.want {
				t.Errorf("got %d cells, want %d", got, tt.want)
			}
		})
	}
}

func TestFrogSpawnSitesSkipOccupied(t *testing.T) {
	r := newRig(t, 1)
	// A fly on (12,10) blocks anchors whose footprint includes it
	r.addFly(12, 10, components.Male, 0, flyGenes(1, 1, true))

	for _, site := range r.spatial.FrogSpawnSites(components.Cell{X: 10, Y: 10}) {
		for _, c := range []components.Cell{site, site.Add(1, 0), site.Add(0, 1), site.Add(1, 1)} {
			if c == (components.Cell{X: 12, Y: 10}) {
				t.Errorf("site %v overlaps occupied cell", site)
			}
		}
	}
}

func TestChoosePosition(t *testing.T) {
	r := newRig(t, 2)
	for i := 0; i < 50; i++ {
		c, err := r.spatial.ChoosePosition()
		if err != nil {
			t.Fatalf("ChoosePosition: %v", err)
		}
		if r.spatial.Occupied(c, LayerAll) {
			t.Fatalf("chose occupied cell %v", c)
		}
		r.addFly(c.X, c.Y, components.Male, 0, flyGenes(1, 1, true))
	}
}

func TestChoosePositionSaturated(t *testing.T) {
	r := newRig(t, 3)
	r.spatial = NewSpatialIndex(r.store, r.rng, 2, 50)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			r.addFly(x, y, components.Male, 0, flyGenes(1, 1, true))
		}
	}
	if _, err := r.spatial.ChoosePosition(); !errors.Is(err, ErrGridSaturated) {
		t.Errorf("ChoosePosition on full grid = %v, want ErrGridSaturated", err)
	}
}
