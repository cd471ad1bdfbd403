// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Population PopulationConfig `yaml:"population"`
	Fly        FlyConfig        `yaml:"fly"`
	Frog       FrogConfig       `yaml:"frog"`
	Genetics   GeneticsConfig   `yaml:"genetics"`
	Transit    TransitConfig    `yaml:"transit"`
	Predation  PredationConfig  `yaml:"predation"`
	Clock      ClockConfig      `yaml:"clock"`
	Spatial    SpatialConfig    `yaml:"spatial"`
	Screen     ScreenConfig     `yaml:"screen"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the world dimensions.
type GridConfig struct {
	Size int `yaml:"size"` // Side length of the square grid in cells
}

// PopulationConfig holds seeding and population cap parameters.
type PopulationConfig struct {
	Flies     int `yaml:"flies"`      // Founder flies
	Frogs     int `yaml:"frogs"`      // Founder frogs
	Limit     int `yaml:"limit"`      // Weighted fly cap: flies + eggs*egg_weight
	EggWeight int `yaml:"egg_weight"` // Each egg counts as this many flies toward the cap
}

// FlyConfig holds fly lifecycle parameters.
type FlyConfig struct {
	MaturityAge      int     `yaml:"maturity_age"`      // Must be strictly older to mate
	GestationTicks   int     `yaml:"gestation_ticks"`   // Egg is laid when the counter reaches this
	HatchTicks       int     `yaml:"hatch_ticks"`       // Countdown given to a freshly laid egg
	MaternalCooldown int     `yaml:"maternal_cooldown"` // Cooldown cleared once it exceeds this
	ClutchMin        int     `yaml:"clutch_min"`
	ClutchMax        int     `yaml:"clutch_max"`
	EggOffset        float64 `yaml:"egg_offset"` // Egg placed at mother position + offset on both axes
	Size             float64 `yaml:"size"`       // Display size in cells
	EggSize          float64 `yaml:"egg_size"`
}

// FrogConfig holds frog lifecycle parameters.
type FrogConfig struct {
	MaturityAge      int          `yaml:"maturity_age"`
	MaternalCooldown int          `yaml:"maternal_cooldown"`
	ColonyRatio      float64      `yaml:"colony_ratio"` // Frogs must stay below flies / colony_ratio to breed
	FounderGenes     FounderGenes `yaml:"founder_genes"`
	Size             float64      `yaml:"size"`
	EggSize          float64      `yaml:"egg_size"`
}

// FounderGenes are the genes given to seeded frogs. Frogs born later inherit instead.
type FounderGenes struct {
	Mobility   int `yaml:"mobility"`
	Survival   int `yaml:"survival"`
	HopRate    int `yaml:"hop_rate"`
	Efficiency int `yaml:"efficiency"`
}

// GeneticsConfig holds inheritance parameters.
type GeneticsConfig struct {
	MutationRate float64      `yaml:"mutation_rate"`
	Defaults     DefaultGenes `yaml:"defaults"` // Used when either parent is missing
}

// DefaultGenes is the fallback gene set.
type DefaultGenes struct {
	Mobility int  `yaml:"mobility"`
	LifeSpan int  `yaml:"life_span"`
	Leader   bool `yaml:"leader"`
}

// TransitConfig holds movement interpolation parameters.
type TransitConfig struct {
	Steps             int `yaml:"steps"`               // Displacement is divided into this many per-frame steps
	CommitDelayFrames int `yaml:"commit_delay_frames"` // Frames after dispatch before the occupancy cell updates
}

// PredationConfig holds predation parameters.
type PredationConfig struct {
	LungeChance float64 `yaml:"lunge_chance"` // Death chance per neighbouring frog cell
}

// ClockConfig holds tick and frame timing.
type ClockConfig struct {
	TickInterval  time.Duration `yaml:"tick_interval"`
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// SpatialConfig holds placement parameters.
type SpatialConfig struct {
	MaxPlacementRetries int `yaml:"max_placement_retries"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	CellPx    int `yaml:"cell_px"` // Pixels per grid cell
	HUDHeight int `yaml:"hud_height"`
	TargetFPS int `yaml:"target_fps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow    float64 `yaml:"stats_window"`     // Seconds of simulated time per stats window
	DumpEveryFlies int     `yaml:"dump_every_flies"` // Dump populations each time this many flies have been created (0 = off)
	ChartWidth     int     `yaml:"chart_width"`
	ChartHeight    int     `yaml:"chart_height"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FramesPerTick int     // Clock.TickInterval / Clock.FrameInterval
	TickSeconds   float64 // Clock.TickInterval in seconds
	ScreenW       int32   // Grid size * cell_px
	ScreenH       int32   // Grid area plus HUD
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. Panics if they fail to parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Clone returns a deep copy safe to mutate independently.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) validate() error {
	switch {
	case c.Grid.Size < 2:
		return fmt.Errorf("grid.size must be at least 2, got %d", c.Grid.Size)
	case c.Population.Limit < 1:
		return fmt.Errorf("population.limit must be positive, got %d", c.Population.Limit)
	case c.Fly.GestationTicks < 1:
		return fmt.Errorf("fly.gestation_ticks must be positive, got %d", c.Fly.GestationTicks)
	case c.Frog.ColonyRatio <= 0:
		return fmt.Errorf("frog.colony_ratio must be positive, got %g", c.Frog.ColonyRatio)
	case c.Fly.ClutchMin < 0 || c.Fly.ClutchMax < c.Fly.ClutchMin:
		return fmt.Errorf("fly clutch range [%d, %d] is invalid", c.Fly.ClutchMin, c.Fly.ClutchMax)
	case c.Transit.Steps < 1:
		return fmt.Errorf("transit.steps must be positive, got %d", c.Transit.Steps)
	case c.Clock.FrameInterval <= 0 || c.Clock.TickInterval < c.Clock.FrameInterval:
		return fmt.Errorf("clock intervals tick=%s frame=%s are invalid", c.Clock.TickInterval, c.Clock.FrameInterval)
	case c.Spatial.MaxPlacementRetries < 1:
		return fmt.Errorf("spatial.max_placement_retries must be positive, got %d", c.Spatial.MaxPlacementRetries)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FramesPerTick = int(c.Clock.TickInterval / c.Clock.FrameInterval)
	c.Derived.TickSeconds = c.Clock.TickInterval.Seconds()
	c.Derived.ScreenW = int32(c.Grid.Size * c.Screen.CellPx)
	c.Derived.ScreenH = int32(c.Grid.Size*c.Screen.CellPx + c.Screen.HUDHeight)
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
