package components

import "math"

// Position is an entity's continuous grid position. It moves in fractional
// steps while a transit is in flight.
type Position struct {
	X, Y float32
}

// Floor returns the cell containing p.
func (p Position) Floor() Cell {
	return Cell{X: int(math.Floor(float64(p.X))), Y: int(math.Floor(float64(p.Y)))}
}

// Round returns the nearest cell to p.
func (p Position) Round() Cell {
	return Cell{X: int(math.Round(float64(p.X))), Y: int(math.Round(float64(p.Y)))}
}

// Cell is a discrete grid coordinate.
type Cell struct {
	X, Y int
}

// Pos converts a cell to a position on its corner.
func (c Cell) Pos() Position {
	return Position{X: float32(c.X), Y: float32(c.Y)}
}

// Add offsets a cell.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Occupancy is the committed cell used for occupancy and predation checks.
// It trails Position: a move updates it only after the commit delay.
type Occupancy struct {
	Cell Cell
}

// Coverage holds the three extra cells of a frog's 2x2 footprint.
type Coverage struct {
	Cells [3]Cell
}

// CoverageAt returns the footprint extension anchored at c.
func CoverageAt(c Cell) Coverage {
	return Coverage{Cells: [3]Cell{c.Add(1, 1), c.Add(0, 1), c.Add(1, 0)}}
}

// Contains reports whether c is one of the covered cells.
func (cv Coverage) Contains(c Cell) bool {
	for _, x := range cv.Cells {
		if x == c {
			return true
		}
	}
	return false
}

// Transit is the per-entity movement state machine: Idle, or in flight
// toward Dest with a fixed per-axis step. Commit tracks the delayed
// occupancy update independently, so it can still be pending after arrival.
type Transit struct {
	Active bool
	Start  Position
	Dest   Position
	StepX  float32
	StepY  float32
	Frame  int

	CommitPending bool
	CommitCell    Cell
}
