package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/game"
	"github.com/pthm-cable/swamp/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// A frog colony needs a male and a female. Below that for extinctionGraceTicks
// consecutive ticks it counts as functionally extinct.
const (
	minViableFrogs       = 2
	extinctionGraceTicks = 40
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// All seeds run in parallel; each gets its own game and config copy.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fitness := make([]float64, len(fe.seeds))
	quality := make([]float64, len(fe.seeds))

	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := fe.runSimulation(x, seed)
			quality[i] = computeQuality(r.windowStats)
			fitness[i] = computeFitness(r.survivalTicks, quality[i])
		}()
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastQuality = stat.Mean(quality, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation executes a single headless run until either species dies
// out or maxTicks is reached.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	var result runResult
	g, err := game.New(game.Options{
		Config:         cfg,
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		// Founders did not fit: worst possible score
		slog.Warn("evaluation_failed", "seed", seed, "error", err)
		return result
	}
	defer g.Unload()

	var frogsBelow int32
	for g.Tick() < fe.maxTicks {
		g.Step()

		if g.Extinct() {
			result.survivalTicks = g.Tick()
			return result
		}

		if _, frogs, _ := g.Counts(); frogs < minViableFrogs {
			frogsBelow++
		} else {
			frogsBelow = 0
		}
		if frogsBelow >= extinctionGraceTicks {
			result.survivalTicks = g.Tick()
			return result
		}
	}

	result.survivalTicks = fe.maxTicks
	return result
}

// computeFitness combines survival and quality (lower = better).
// Survival dominates; quality adds up to a 20% bonus.
func computeFitness(survivalTicks int32, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.4
	qualityWeightStability = 0.3
	qualityWeightHunting   = 0.3

	qualityWarmupWindows = 3 // skip first N windows
	targetFlyFrogRatio   = 10.0
)

// computeQuality scores a run in [0, 1]: flies near ten per frog, steady
// populations, and frogs feeding mostly by hunting.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var ratioSum, huntSum float64
	var ratioCount, huntCount int
	flies := make([]float64, 0, len(windows))
	frogs := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Flies == 0 || w.Frogs == 0 {
			continue
		}
		flies = append(flies, float64(w.Flies))
		frogs = append(frogs, float64(w.Frogs))

		logErr := math.Log(float64(w.Flies) / float64(w.Frogs) / targetFlyFrogRatio)
		ratioSum += math.Exp(-logErr * logErr)
		ratioCount++

		if w.FlyDeaths > 0 {
			huntSum += w.KillShare
			huntCount++
		}
	}

	if ratioCount == 0 {
		return 0
	}

	stability := 0.0
	if len(flies) >= 2 {
		a, b := cv(flies), cv(frogs)
		stability = math.Exp(-(a*a + b*b))
	}

	hunting := 0.0
	if huntCount > 0 {
		hunting = huntSum / float64(huntCount)
	}

	q := qualityWeightRatio*ratioSum/float64(ratioCount) +
		qualityWeightStability*stability +
		qualityWeightHunting*hunting
	return math.Min(math.Max(q, 0), 1)
}

// cv computes the coefficient of variation (std/mean).
func cv(values []float64) float64 {
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
