// Package game wires the store and systems into a running swamp: tick
// ordering, transit frames, telemetry hooks and the read-only view used by
// the viewers.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/store"
	"github.com/pthm-cable/swamp/systems"
	"github.com/pthm-cable/swamp/telemetry"
	"github.com/pthm-cable/swamp/traits"
)

// Options configures a new game.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64          // 0 = time-based
	LogStats       bool           // Log window stats via slog
	StatsWindowSec float64        // 0 = telemetry.stats_window
	SnapshotDir    string         // Save a JSON snapshot on every bookmark
	OutputDir      string         // Write CSV telemetry, config and chart here

	// StatsCallback, if set, receives every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64

	store    *store.Store
	spatial  *systems.SpatialIndex
	movement *systems.MovementSystem
	breeding *systems.BreedingSystem
	feeding  *systems.FeedingSystem
	genetics traits.Model

	// State
	tick     int32
	frames   int64
	kills    int
	lastDump uint32

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)
}

// New creates a game and seeds the founder population. It fails with a
// wrapped systems.ErrGridSaturated when the founders do not fit the grid.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	s := store.New()
	spatial := systems.NewSpatialIndex(s, rng, cfg.Grid.Size, cfg.Spatial.MaxPlacementRetries)
	genetics := traits.NewModel(cfg.Genetics)

	g := &Game{
		cfg:              cfg,
		rng:              rng,
		rngSeed:          seed,
		store:            s,
		spatial:          spatial,
		movement:         systems.NewMovementSystem(s, spatial, rng, cfg.Transit.Steps, cfg.Transit.CommitDelayFrames),
		breeding:         systems.NewBreedingSystem(s, spatial, genetics, rng, cfg),
		feeding:          systems.NewFeedingSystem(s, spatial, rng, cfg.Predation.LungeChance),
		genetics:         genetics,
		collector:        telemetry.NewCollector(statsWindow, cfg.Derived.TickSeconds),
		perfCollector:    telemetry.NewPerfCollector(int(statsWindow / cfg.Derived.TickSeconds)),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		statsCallback:    opts.StatsCallback,
	}

	if err := g.spawnInitialPopulation(); err != nil {
		return nil, fmt.Errorf("seeding population: %w", err)
	}
	g.lastDump = g.store.FliesCreated()

	om, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.ChartWidth, cfg.Telemetry.ChartHeight)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}
	g.outputManager = om

	slog.Info("game_created",
		"seed", seed,
		"grid", cfg.Grid.Size,
		"flies", s.NumFlies(),
		"frogs", s.NumFrogs(),
	)
	return g, nil
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// Frames returns the number of transit frames run.
func (g *Game) Frames() int64 {
	return g.frames
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Extinct reports whether either species has died out.
func (g *Game) Extinct() bool {
	return g.store.NumFlies() == 0 || g.store.NumFrogs() == 0
}

// Counts returns the live fly, frog and egg counts.
func (g *Game) Counts() (flies, frogs, eggs int) {
	return g.store.NumFlies(), g.store.NumFrogs(), g.store.NumEggs()
}

// FlyLoad returns the weighted fly count (flies plus weighted eggs) and the
// cap above which flies stop mating.
func (g *Game) FlyLoad() (load, limit int) {
	pop := g.cfg.Population
	return g.store.NumFlies() + g.store.NumEggs()*pop.EggWeight, pop.Limit
}

// RecordFrame feeds the viewer frame rate into the perf stats.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// Unload flushes and closes telemetry output. Safe to call more than once.
func (g *Game) Unload() {
	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}
