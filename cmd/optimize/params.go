package main

import (
	"math"

	"github.com/pthm-cable/swamp/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Column name in optimize_log.csv
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Integer bool    // Rounded before it is applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Frog founders
			{Name: "frog_survival", Path: "frog.founder_genes.survival", Min: 20, Max: 400, Integer: true},
			{Name: "frog_hop_rate", Path: "frog.founder_genes.hop_rate", Min: 1, Max: 10, Integer: true},
			{Name: "frog_efficiency", Path: "frog.founder_genes.efficiency", Min: 1, Max: 20, Integer: true},
			// Population balance
			{Name: "fly_limit", Path: "population.limit", Min: 40, Max: 400, Integer: true},
			{Name: "colony_ratio", Path: "frog.colony_ratio", Min: 2, Max: 20},
			// Predation
			{Name: "lunge_chance", Path: "predation.lunge_chance", Min: 0, Max: 1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every value and rounds the integer ones.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Min(math.Max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg and recomputes derived
// values. Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)

	cfg.Frog.FounderGenes.Survival = int(v[0])
	cfg.Frog.FounderGenes.HopRate = int(v[1])
	cfg.Frog.FounderGenes.Efficiency = int(v[2])
	cfg.Population.Limit = int(v[3])
	cfg.Frog.ColonyRatio = v[4]
	cfg.Predation.LungeChance = v[5]

	cfg.Recompute()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Frog.FounderGenes.Survival),
		float64(cfg.Frog.FounderGenes.HopRate),
		float64(cfg.Frog.FounderGenes.Efficiency),
		float64(cfg.Population.Limit),
		cfg.Frog.ColonyRatio,
		cfg.Predation.LungeChance,
	}
}
