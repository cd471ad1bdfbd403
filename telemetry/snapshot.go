package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/swamp/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the simulation state at one tick for offline inspection.
type Snapshot struct {
	Version  int   `json:"version"`
	RNGSeed  int64 `json:"rng_seed"`
	GridSize int   `json:"grid_size"`
	Tick     int32 `json:"tick"`

	Creatures []CreatureState `json:"creatures"`
	Eggs      []EggState      `json:"eggs"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// CreatureState holds one fly or frog.
type CreatureState struct {
	ID      uint32             `json:"id"`
	Species components.Species `json:"species"`
	Gender  string             `json:"gender"`

	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	CellX int     `json:"cell_x"`
	CellY int     `json:"cell_y"`

	Age       int               `json:"age"`
	Maternal  int               `json:"maternal"`
	Pregnant  bool              `json:"pregnant,omitempty"`
	Hunger    int               `json:"hunger,omitempty"`
	InTransit bool              `json:"in_transit,omitempty"`
	Genes     map[string]string `json:"genes"`

	Lifetime *LifetimeStats `json:"lifetime,omitempty"`
}

// EggState holds one egg.
type EggState struct {
	ID      uint32    `json:"id"`
	X       float32   `json:"x"`
	Y       float32   `json:"y"`
	HatchIn int       `json:"hatch_in"`
	Parents [2]uint32 `json:"parents"`
}

// SaveSnapshot writes a snapshot to disk and returns its path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
