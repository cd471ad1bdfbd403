// Package systems provides the simulation rules: occupancy, movement,
// breeding and predation.
package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/store"
)

// Layer selects which occupants an occupancy query considers.
type Layer uint8

const (
	LayerAll   Layer = iota // flies, frogs and frog coverage
	LayerFrogs              // frogs and frog coverage only
)

// neighbourOffsets is the 8-neighbourhood.
var neighbourOffsets = [8][2]int{
	{1, 0}, {1, -1}, {1, 1}, {0, 1}, {0, -1}, {-1, 0}, {-1, -1}, {-1, 1},
}

// frogRingOffsets is the 12-cell ring around a 2x2 footprint.
var frogRingOffsets = [12][2]int{
	{2, 0}, {2, -1}, {2, 1}, {2, 2},
	{0, 2}, {0, -1}, {1, -1}, {1, 2},
	{-1, 0}, {-1, -1}, {-1, 1}, {-1, 2},
}

// frogSpawnOffsets is the 16-cell ring at distance 2.
var frogSpawnOffsets = [16][2]int{
	{-2, -2}, {-2, -1}, {-2, 0}, {-2, 1}, {-2, 2},
	{-1, -2}, {-1, 2},
	{0, -2}, {0, 2},
	{1, -2}, {1, 2},
	{2, -2}, {2, -1}, {2, 0}, {2, 1}, {2, 2},
}

// SpatialIndex answers bounds and occupancy queries. Occupancy is scanned
// fresh from the store on every call; there is no cached index.
type SpatialIndex struct {
	store      *store.Store
	rng        *rand.Rand
	size       int
	maxRetries int
}

// NewSpatialIndex creates a spatial index over a size x size grid.
func NewSpatialIndex(s *store.Store, rng *rand.Rand, size, maxRetries int) *SpatialIndex {
	return &SpatialIndex{store: s, rng: rng, size: size, maxRetries: maxRetries}
}

// Size returns the grid side length.
func (si *SpatialIndex) Size() int {
	return si.size
}

// OutOfBounds reports whether c lies outside [0, size) on either axis.
func (si *SpatialIndex) OutOfBounds(c components.Cell) bool {
	return c.X < 0 || c.X >= si.size || c.Y < 0 || c.Y >= si.size
}

// CheckBounds returns ErrOutOfBounds for cells outside the grid.
func (si *SpatialIndex) CheckBounds(c components.Cell) error {
	if si.OutOfBounds(c) {
		return fmt.Errorf("cell (%d,%d): %w", c.X, c.Y, ErrOutOfBounds)
	}
	return nil
}

// Occupied reports whether c holds a committed occupant in the given layer.
func (si *SpatialIndex) Occupied(c components.Cell, layer Layer) bool {
	return si.OccupiedExcept(c, layer, ecs.Entity{})
}

// OccupiedExcept is Occupied ignoring one entity, so a frog does not block
// itself with its own footprint. The zero entity excludes nothing.
func (si *SpatialIndex) OccupiedExcept(c components.Cell, layer Layer, self ecs.Entity) bool {
	found := false
	si.store.EachOccupiedCell(func(e ecs.Entity, sp components.Species, at components.Cell) bool {
		if at != c || e == self {
			return true
		}
		if layer == LayerFrogs && sp != components.SpeciesFrog {
			return true
		}
		found = true
		return false
	})
	return found
}

// Available filters cells down to those not occupied in any layer.
func (si *SpatialIndex) Available(cells []components.Cell) []components.Cell {
	var out []components.Cell
	for _, c := range cells {
		if !si.Occupied(c, LayerAll) {
			out = append(out, c)
		}
	}
	return out
}

// Surrounding returns the in-bounds 8-neighbourhood of c.
func (si *SpatialIndex) Surrounding(c components.Cell) []components.Cell {
	out := make([]components.Cell, 0, len(neighbourOffsets))
	for _, o := range neighbourOffsets {
		if n := c.Add(o[0], o[1]); !si.OutOfBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// FrogSurrounding returns the in-bounds 12-cell ring around a 2x2 footprint
// anchored at c.
func (si *SpatialIndex) FrogSurrounding(c components.Cell) []components.Cell {
	out := make([]components.Cell, 0, len(frogRingOffsets))
	for _, o := range frogRingOffsets {
		if n := c.Add(o[0], o[1]); !si.OutOfBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// FootprintFree reports whether the 2x2 footprint anchored at c is fully
// in bounds and unoccupied in any layer.
func (si *SpatialIndex) FootprintFree(c components.Cell) bool {
	for _, n := range [4]components.Cell{c, c.Add(1, 0), c.Add(0, 1), c.Add(1, 1)} {
		if si.OutOfBounds(n) || si.Occupied(n, LayerAll) {
			return false
		}
	}
	return true
}

// FrogSpawnSites returns anchors on the distance-2 ring around c whose whole
// footprint is free.
func (si *SpatialIndex) FrogSpawnSites(c components.Cell) []components.Cell {
	var out []components.Cell
	for _, o := range frogSpawnOffsets {
		if n := c.Add(o[0], o[1]); si.FootprintFree(n) {
			out = append(out, n)
		}
	}
	return out
}

// ChoosePosition samples uniformly random cells until an unoccupied one is
// found. It gives up with ErrGridSaturated after maxRetries attempts.
func (si *SpatialIndex) ChoosePosition() (components.Cell, error) {
	for range si.maxRetries {
		c := components.Cell{X: si.rng.Intn(si.size), Y: si.rng.Intn(si.size)}
		if !si.Occupied(c, LayerAll) {
			return c, nil
		}
	}
	return components.Cell{}, fmt.Errorf("no free cell after %d attempts: %w", si.maxRetries, ErrGridSaturated)
}
