package systems

import "errors"

var (
	// ErrOutOfBounds marks a cell outside the grid. Candidates are filtered
	// before use, so this only surfaces from direct lookups.
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrGridSaturated means no free cell was found within the retry budget.
	ErrGridSaturated = errors.New("grid saturated")

	// ErrPopulationCap means mating was refused because the weighted fly
	// count would reach the cap. Not a failure.
	ErrPopulationCap = errors.New("population cap reached")

	// ErrInTransit means a move was requested while one is in flight.
	// The request is ignored.
	ErrInTransit = errors.New("entity already in transit")

	// ErrMissingPartner means a father or partner id no longer resolves.
	// Treated as no mate.
	ErrMissingPartner = errors.New("partner no longer exists")
)

// ErrNoMate means no partner qualified this tick.
var ErrNoMate = errors.New("no eligible mate")
