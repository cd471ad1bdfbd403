package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/swamp/components"
)

// LogValue renders a creature as a slog group.
func (cs CreatureState) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Any("id", cs.ID),
		slog.String("gender", cs.Gender),
		slog.Float64("x", float64(cs.X)),
		slog.Float64("y", float64(cs.Y)),
		slog.Int("age", cs.Age),
		slog.Int("maternal", cs.Maternal),
		slog.Any("genes", cs.Genes),
	}
	if cs.Species == components.SpeciesFrog {
		attrs = append(attrs, slog.Int("hunger", cs.Hunger))
	} else {
		attrs = append(attrs, slog.Bool("pregnant", cs.Pregnant))
	}
	return slog.GroupValue(attrs...)
}

// LogValue renders an egg as a slog group.
func (es EggState) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("id", es.ID),
		slog.Float64("x", float64(es.X)),
		slog.Float64("y", float64(es.Y)),
		slog.Int("hatch_in", es.HatchIn),
		slog.Any("parents", es.Parents),
	)
}

// Dump logs every fly, frog and egg in a snapshot at debug level, one record
// per collection.
func Dump(logger *slog.Logger, snap *Snapshot) {
	var flies, frogs []any
	for _, c := range snap.Creatures {
		if c.Species == components.SpeciesFrog {
			frogs = append(frogs, c)
		} else {
			flies = append(flies, c)
		}
	}
	eggs := make([]any, len(snap.Eggs))
	for i, e := range snap.Eggs {
		eggs[i] = e
	}

	logger.Debug("dump_flies", "tick", snap.Tick, "count", len(flies), "flies", flies)
	logger.Debug("dump_frogs", "tick", snap.Tick, "count", len(frogs), "frogs", frogs)
	logger.Debug("dump_eggs", "tick", snap.Tick, "count", len(eggs), "eggs", eggs)
}
