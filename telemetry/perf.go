package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one simulation step.
const (
	PhaseEggs      = "eggs"
	PhaseFlies     = "flies"
	PhaseFrogs     = "frogs"
	PhaseFrames    = "frames"
	PhaseTelemetry = "telemetry"
)

// Phases lists every phase in step order.
var Phases = []string{PhaseEggs, PhaseFlies, PhaseFrogs, PhaseFrames, PhaseTelemetry}

// PerfSample holds timing data for a single step.
type PerfSample struct {
	StepDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks step timing over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	stepStart  time.Time
	phaseStart time.Time
	lastPhase  string

	// Frame timing (window viewer)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector averaging over
// windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 40
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		current:    make(map[string]time.Duration),
	}
}

// StartStep begins timing a new step.
func (p *PerfCollector) StartStep() {
	p.stepStart = time.Now()
	p.current = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing the next.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndStep finishes timing the current step and records the sample.
func (p *PerfCollector) EndStep() {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		StepDuration: now.Sub(p.stepStart),
		Phases:       p.current,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records render frame timing.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgStep time.Duration
	MinStep time.Duration
	MaxStep time.Duration

	// Average duration and share of step time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	StepsPerSecond float64
	FPS            float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.frameDuration > 0 {
		out.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return out
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.StepDuration
		if i == 0 || s.StepDuration < out.MinStep {
			out.MinStep = s.StepDuration
		}
		out.MaxStep = max(out.MaxStep, s.StepDuration)
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	out.AvgStep = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		out.PhaseAvg[phase] = avg
		if out.AvgStep > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgStep) * 100
		}
	}
	if out.AvgStep > 0 {
		out.StepsPerSecond = float64(time.Second) / float64(out.AvgStep)
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgStep.Microseconds()),
		slog.Int64("min_step_us", s.MinStep.Microseconds()),
		slog.Int64("max_step_us", s.MaxStep.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MinStepUS    int64   `csv:"min_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	FPS          float64 `csv:"fps"`
	EggsPct      float64 `csv:"eggs_pct"`
	FliesPct     float64 `csv:"flies_pct"`
	FrogsPct     float64 `csv:"frogs_pct"`
	FramesPct    float64 `csv:"frames_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgStepUS:    s.AvgStep.Microseconds(),
		MinStepUS:    s.MinStep.Microseconds(),
		MaxStepUS:    s.MaxStep.Microseconds(),
		StepsPerSec:  s.StepsPerSecond,
		FPS:          s.FPS,
		EggsPct:      s.PhasePct[PhaseEggs],
		FliesPct:     s.PhasePct[PhaseFlies],
		FrogsPct:     s.PhasePct[PhaseFrogs],
		FramesPct:    s.PhasePct[PhaseFrames],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
