// Package traits defines gene values, gene sets and how they pass between generations.
package traits

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Trait names.
const (
	Mobility   = "mobility"   // Step radius of a random-walk move
	LifeSpan   = "lifeSpan"   // Age at which a fly dies
	Leader     = "leader"     // true = random walker, false = follower
	Pheromones = "pheromones" // Mating compatibility tag, rolled at birth
	Survival   = "survival"   // Ticks a frog can go without eating
	HopRate    = "hopRate"    // Frog hop chance in tenths
	Efficiency = "efficiency" // Frog catch resistance in tenths
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNumber Kind = iota
	KindBool
)

// Value is a tagged gene value: either an integer or a boolean.
type Value struct {
	kind Kind
	num  int
	flag bool
}

// Num returns a numeric value.
func Num(n int) Value { return Value{kind: KindNumber, num: n} }

// Flag returns a boolean value.
func Flag(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Int returns the numeric payload (0 for booleans).
func (v Value) Int() int { return v.num }

// Bool returns the boolean payload (false for numbers).
func (v Value) Bool() bool { return v.flag }

// Mutate nudges a number by delta, never below 1, or flips a boolean.
func (v Value) Mutate(delta int) Value {
	if v.kind == KindBool {
		return Flag(!v.flag)
	}
	return Num(max(v.num+delta, 1))
}

func (v Value) String() string {
	if v.kind == KindBool {
		return strconv.FormatBool(v.flag)
	}
	return strconv.Itoa(v.num)
}

// Gene is one named trait.
type Gene struct {
	Name  string
	Value Value
}

// Genes is an ordered gene set. Order is kept stable so trait selection
// during mutation is reproducible for a given RNG.
type Genes []Gene

// Get returns the value of a trait.
func (g Genes) Get(name string) (Value, bool) {
	for _, gene := range g {
		if gene.Name == name {
			return gene.Value, true
		}
	}
	return Value{}, false
}

// Int returns a numeric trait, or 0 if absent.
func (g Genes) Int(name string) int {
	v, _ := g.Get(name)
	return v.Int()
}

// Bool returns a boolean trait, or false if absent.
func (g Genes) Bool(name string) bool {
	v, _ := g.Get(name)
	return v.Bool()
}

// Has reports whether the trait is present.
func (g Genes) Has(name string) bool {
	_, ok := g.Get(name)
	return ok
}

// With returns a copy of g with the trait set, appended if new.
func (g Genes) With(name string, v Value) Genes {
	out := g.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = v
			return out
		}
	}
	return append(out, Gene{Name: name, Value: v})
}

// Clone returns an independent copy. A nil set stays nil.
func (g Genes) Clone() Genes {
	if g == nil {
		return nil
	}
	out := make(Genes, len(g))
	copy(out, g)
	return out
}

func (g Genes) String() string {
	s := "{"
	for i, gene := range g {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%s", gene.Name, gene.Value)
	}
	return s + "}"
}

// LogValue renders the gene set as a slog group.
func (g Genes) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(g))
	for _, gene := range g {
		if gene.Value.Kind() == KindBool {
			attrs = append(attrs, slog.Bool(gene.Name, gene.Value.Bool()))
		} else {
			attrs = append(attrs, slog.Int(gene.Name, gene.Value.Int()))
		}
	}
	return slog.GroupValue(attrs...)
}
