package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"grid size", cfg.Grid.Size, 30},
		{"founder flies", cfg.Population.Flies, 30},
		{"founder frogs", cfg.Population.Frogs, 6},
		{"population limit", cfg.Population.Limit, 100},
		{"gestation", cfg.Fly.GestationTicks, 12},
		{"hatch", cfg.Fly.HatchTicks, 18},
		{"frog maturity", cfg.Frog.MaturityAge, 49},
		{"frog efficiency", cfg.Frog.FounderGenes.Efficiency, 5},
		{"default leader", cfg.Genetics.Defaults.Leader, true},
		{"tick interval", cfg.Clock.TickInterval, 250 * time.Millisecond},
		{"frames per tick", cfg.Derived.FramesPerTick, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("grid:\n  size: 12\nclock:\n  tick_interval: 100ms\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Size != 12 {
		t.Errorf("grid size = %d, want 12", cfg.Grid.Size)
	}
	if cfg.Derived.FramesPerTick != 5 {
		t.Errorf("frames per tick = %d, want 5", cfg.Derived.FramesPerTick)
	}
	// Untouched sections keep their defaults
	if cfg.Population.Flies != 30 {
		t.Errorf("founder flies = %d, want 30", cfg.Population.Flies)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  size: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for 1-cell grid")
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLReloads(t *testing.T) {
	cfg := Default()
	cfg.Frog.ColonyRatio = 5
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Frog.ColonyRatio != 5 {
		t.Errorf("colony ratio = %v, want 5", reloaded.Frog.ColonyRatio)
	}
	if reloaded.Clock.TickInterval != cfg.Clock.TickInterval {
		t.Errorf("tick interval = %v, want %v", reloaded.Clock.TickInterval, cfg.Clock.TickInterval)
	}
}

func TestLoadRejectsBreedingSettings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero population limit", "population:\n  limit: 0\n"},
		{"negative population limit", "population:\n  limit: -5\n"},
		{"zero gestation", "fly:\n  gestation_ticks: 0\n"},
		{"zero colony ratio", "frog:\n  colony_ratio: 0\n"},
		{"negative colony ratio", "frog:\n  colony_ratio: -7.5\n"},
	}

	dir := t.TempDir()
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, fmt.Sprintf("bad%d.yaml", i))
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted %q", tt.yaml)
			}
		})
	}
}
