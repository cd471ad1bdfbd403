package components

import "github.com/pthm-cable/swamp/traits"

// Life holds age, gender and breeding state shared by flies and frogs.
type Life struct {
	Gender   Gender
	Age      int
	Parents  [2]uint32
	Children int

	// Pregnancy (flies only). Gestation counts up while Pregnant.
	Pregnant  bool
	Gestation int
	Father    uint32

	// Maternal cooldown: 0 = none, otherwise counts up until cleared.
	Maternal int
}

// Genome holds the entity's gene set.
type Genome struct {
	Genes traits.Genes
}

// Hunger counts ticks since a frog last ate.
type Hunger struct {
	Ticks int
}

// EggKind is the species an egg would hatch into.
type EggKind uint8

const (
	EggFly EggKind = iota
	EggFrog
)

func (k EggKind) String() string {
	if k == EggFrog {
		return "frog"
	}
	return "fly"
}

// Egg holds incubation state. ParentGenes are copies taken at laying time;
// a nil entry is a missing parent.
type Egg struct {
	Kind        EggKind
	HatchIn     int
	Parents     [2]uint32
	ParentGenes [2]traits.Genes
}
