package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/pthm-cable/swamp/components"
)

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Dump(logger, &Snapshot{
		Tick: 80,
		Creatures: []CreatureState{
			{ID: 1, Species: components.SpeciesFly, Gender: "f", Pregnant: true},
			{ID: 2, Species: components.SpeciesFly, Gender: "m"},
			{ID: 0, Species: components.SpeciesFrog, Gender: "m", Hunger: 7},
		},
		Eggs: []EggState{{ID: 4, HatchIn: 3}},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d records, want 3", len(lines))
	}

	tests := []struct {
		msg   string
		count float64
	}{
		{"dump_flies", 2},
		{"dump_frogs", 1},
		{"dump_eggs", 1},
	}
	for i, tt := range tests {
		var rec map[string]any
		if err := json.Unmarshal([]byte(lines[i]), &rec); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if rec["msg"] != tt.msg || rec["count"] != tt.count {
			t.Errorf("record %d = %v, want %s with count %v", i, rec, tt.msg, tt.count)
		}
	}
	if !strings.Contains(lines[1], `"hunger":7`) {
		t.Errorf("frog record missing hunger: %s", lines[1])
	}
}

func TestDumpSilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	Dump(logger, &Snapshot{Creatures: []CreatureState{{ID: 1}}})
	if buf.Len() != 0 {
		t.Errorf("dump logged at info level: %s", buf.String())
	}
}
