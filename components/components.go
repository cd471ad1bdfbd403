// Package components defines ECS components for the simulation.
package components

// Species identifies which population an entity belongs to.
type Species uint8

const (
	SpeciesFly Species = iota
	SpeciesFrog
	SpeciesEgg
)

func (s Species) String() string {
	switch s {
	case SpeciesFly:
		return "fly"
	case SpeciesFrog:
		return "frog"
	case SpeciesEgg:
		return "egg"
	}
	return "unknown"
}

// Gender of a fly or frog.
type Gender uint8

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	if g == Female {
		return "f"
	}
	return "m"
}

// Opposite returns the other gender.
func (g Gender) Opposite() Gender {
	if g == Female {
		return Male
	}
	return Female
}

// Identity holds the per-species id. Ids increase monotonically within a
// species and are never reused.
type Identity struct {
	ID      uint32
	Species Species
}

// DeathCause records why a creature was removed.
type DeathCause uint8

const (
	CauseAge DeathCause = iota
	CausePredation
	CauseLunge
	CauseStarvation
)

func (c DeathCause) String() string {
	switch c {
	case CauseAge:
		return "age"
	case CausePredation:
		return "predation"
	case CauseLunge:
		return "lunge"
	case CauseStarvation:
		return "starvation"
	}
	return "unknown"
}
