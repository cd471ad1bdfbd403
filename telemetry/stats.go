package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	Flies int `csv:"flies"`
	Frogs int `csv:"frogs"`
	Eggs  int `csv:"eggs"`

	// Events during window
	FlyBirths  int `csv:"fly_births"`
	FrogBirths int `csv:"frog_births"`
	FlyDeaths  int `csv:"fly_deaths"`
	FrogDeaths int `csv:"frog_deaths"`

	DeathsAge        int `csv:"deaths_age"`
	DeathsPredation  int `csv:"deaths_predation"`
	DeathsLunge      int `csv:"deaths_lunge"`
	DeathsStarvation int `csv:"deaths_starvation"`

	// Breeding and hunting
	FlyMatings      int     `csv:"fly_matings"`
	FrogMatings     int     `csv:"frog_matings"`
	EggsLaid        int     `csv:"eggs_laid"`
	EggsHatched     int     `csv:"eggs_hatched"`
	Kills           int     `csv:"kills"`
	KillShare       float64 `csv:"kill_share"` // kills / fly deaths
	CapRefusals     int     `csv:"cap_refusals"`
	TransitRejected int     `csv:"transit_rejected"`

	// Fly gene distribution (sampled at window end)
	MobilityMean   float64 `csv:"mobility_mean"`
	MobilityStd    float64 `csv:"mobility_std"`
	LifeSpanMean   float64 `csv:"lifespan_mean"`
	LifeSpanP10    float64 `csv:"lifespan_p10"`
	LifeSpanP50    float64 `csv:"lifespan_p50"`
	LifeSpanP90    float64 `csv:"lifespan_p90"`
	LeaderFraction float64 `csv:"leader_fraction"`

	// Frog gene distribution
	EfficiencyMean float64 `csv:"efficiency_mean"`
	SurvivalMean   float64 `csv:"survival_mean"`
	SurvivalStd    float64 `csv:"survival_std"`
	HopRateMean    float64 `csv:"hop_rate_mean"`
}

// GeneSample holds numeric gene values gathered from the live population.
type GeneSample struct {
	Mobility []float64
	LifeSpan []float64
	Leaders  int

	Efficiency []float64
	Survival   []float64
	HopRate    []float64
}

// LeaderFraction returns the share of sampled flies with the leader gene on.
func (g GeneSample) LeaderFraction() float64 {
	if len(g.Mobility) == 0 {
		return 0
	}
	return float64(g.Leaders) / float64(len(g.Mobility))
}

// GeneStats summarises one gene across a population.
type GeneStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeGeneStats calculates mean, standard deviation and percentiles.
// Empty input yields zeros; a single value has zero spread.
func ComputeGeneStats(values []float64) GeneStats {
	n := len(values)
	if n == 0 {
		return GeneStats{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var gs GeneStats
	if n == 1 {
		gs.Mean = sorted[0]
	} else {
		gs.Mean, gs.Std = stat.MeanStdDev(sorted, nil)
	}
	gs.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	gs.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	gs.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return gs
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("flies", s.Flies),
		slog.Int("frogs", s.Frogs),
		slog.Int("eggs", s.Eggs),
		slog.Int("fly_births", s.FlyBirths),
		slog.Int("frog_births", s.FrogBirths),
		slog.Int("fly_deaths", s.FlyDeaths),
		slog.Int("frog_deaths", s.FrogDeaths),
		slog.Int("deaths_age", s.DeathsAge),
		slog.Int("deaths_predation", s.DeathsPredation),
		slog.Int("deaths_lunge", s.DeathsLunge),
		slog.Int("deaths_starvation", s.DeathsStarvation),
		slog.Int("fly_matings", s.FlyMatings),
		slog.Int("frog_matings", s.FrogMatings),
		slog.Int("eggs_laid", s.EggsLaid),
		slog.Int("eggs_hatched", s.EggsHatched),
		slog.Int("kills", s.Kills),
		slog.Float64("kill_share", s.KillShare),
		slog.Int("cap_refusals", s.CapRefusals),
		slog.Int("transit_rejected", s.TransitRejected),
		slog.Float64("mobility_mean", s.MobilityMean),
		slog.Float64("mobility_std", s.MobilityStd),
		slog.Float64("lifespan_mean", s.LifeSpanMean),
		slog.Float64("lifespan_p10", s.LifeSpanP10),
		slog.Float64("lifespan_p50", s.LifeSpanP50),
		slog.Float64("lifespan_p90", s.LifeSpanP90),
		slog.Float64("leader_fraction", s.LeaderFraction),
		slog.Float64("efficiency_mean", s.EfficiencyMean),
		slog.Float64("survival_mean", s.SurvivalMean),
		slog.Float64("survival_std", s.SurvivalStd),
		slog.Float64("hop_rate_mean", s.HopRateMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
