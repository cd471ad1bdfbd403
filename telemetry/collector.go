package telemetry

import "github.com/pthm-cable/swamp/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	tickSec             float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	flyBirths       int
	frogBirths      int
	flyDeaths       int
	frogDeaths      int
	deathsByCause   [4]int
	flyMatings      int
	frogMatings     int
	eggsLaid        int
	eggsHatched     int
	kills           int
	capRefusals     int
	transitRejected int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// tickSec: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, tickSec float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / tickSec)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		tickSec:             tickSec,
	}
}

// Record counts one event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBirth:
		if ev.Species == components.SpeciesFrog {
			c.frogBirths++
		} else {
			c.flyBirths++
		}
	case EventDeath:
		if ev.Species == components.SpeciesFrog {
			c.frogDeaths++
		} else {
			c.flyDeaths++
		}
		if int(ev.Cause) < len(c.deathsByCause) {
			c.deathsByCause[ev.Cause]++
		}
	case EventMating:
		if ev.Species == components.SpeciesFrog {
			c.frogMatings++
		} else {
			c.flyMatings++
		}
	case EventEggLaid:
		c.eggsLaid++
	case EventHatch:
		c.eggsHatched++
	case EventKill:
		c.kills++
	case EventCapRefused:
		c.capRefusals++
	case EventTransitRejected:
		c.transitRejected++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Population is the live state sampled at window end.
type Population struct {
	Flies, Frogs, Eggs int
	FlyGenes           GeneSample
	FrogGenes          GeneSample
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop Population) WindowStats {
	var killShare float64
	if c.flyDeaths > 0 {
		killShare = float64(c.kills) / float64(c.flyDeaths)
	}

	mobility := ComputeGeneStats(pop.FlyGenes.Mobility)
	lifeSpan := ComputeGeneStats(pop.FlyGenes.LifeSpan)
	efficiency := ComputeGeneStats(pop.FrogGenes.Efficiency)
	survival := ComputeGeneStats(pop.FrogGenes.Survival)
	hopRate := ComputeGeneStats(pop.FrogGenes.HopRate)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.tickSec,

		Flies: pop.Flies,
		Frogs: pop.Frogs,
		Eggs:  pop.Eggs,

		FlyBirths:  c.flyBirths,
		FrogBirths: c.frogBirths,
		FlyDeaths:  c.flyDeaths,
		FrogDeaths: c.frogDeaths,

		DeathsAge:        c.deathsByCause[components.CauseAge],
		DeathsPredation:  c.deathsByCause[components.CausePredation],
		DeathsLunge:      c.deathsByCause[components.CauseLunge],
		DeathsStarvation: c.deathsByCause[components.CauseStarvation],

		FlyMatings:      c.flyMatings,
		FrogMatings:     c.frogMatings,
		EggsLaid:        c.eggsLaid,
		EggsHatched:     c.eggsHatched,
		Kills:           c.kills,
		KillShare:       killShare,
		CapRefusals:     c.capRefusals,
		TransitRejected: c.transitRejected,

		MobilityMean:   mobility.Mean,
		MobilityStd:    mobility.Std,
		LifeSpanMean:   lifeSpan.Mean,
		LifeSpanP10:    lifeSpan.P10,
		LifeSpanP50:    lifeSpan.P50,
		LifeSpanP90:    lifeSpan.P90,
		LeaderFraction: pop.FlyGenes.LeaderFraction(),

		EfficiencyMean: efficiency.Mean,
		SurvivalMean:   survival.Mean,
		SurvivalStd:    survival.Std,
		HopRateMean:    hopRate.Mean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.flyBirths = 0
	c.frogBirths = 0
	c.flyDeaths = 0
	c.frogDeaths = 0
	c.deathsByCause = [4]int{}
	c.flyMatings = 0
	c.frogMatings = 0
	c.eggsLaid = 0
	c.eggsHatched = 0
	c.kills = 0
	c.capRefusals = 0
	c.transitRejected = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
