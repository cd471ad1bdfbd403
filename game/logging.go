package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/telemetry"
)

// logDeath logs a removed creature with whatever lifetime stats it gathered.
func (g *Game) logDeath(sp components.Species, id uint32, age int, cause components.DeathCause, lifetime *telemetry.LifetimeStats) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{
		"species", sp.String(),
		"id", id,
		"tick", g.tick,
		"age", age,
		"cause", cause.String(),
	}
	if lifetime != nil {
		attrs = append(attrs,
			"lived_ticks", g.tick-lifetime.BirthTick,
			"matings", lifetime.Matings,
			"children", lifetime.Children,
			"kills", lifetime.Kills,
		)
	}
	slog.Debug("death", attrs...)
}

// maybeDump writes the diagnostic population dump each time the created-fly
// counter passes a new multiple of telemetry.dump_every_flies.
func (g *Game) maybeDump() {
	every := uint32(g.cfg.Telemetry.DumpEveryFlies)
	if every == 0 {
		return
	}
	created := g.store.FliesCreated()
	if created/every <= g.lastDump/every {
		return
	}
	g.lastDump = created
	telemetry.Dump(slog.Default(), g.createSnapshot(nil))
}

// logWorldState logs a one-line population summary.
func (g *Game) logWorldState() {
	flies, frogs, eggs := g.Counts()
	slog.Info("world",
		"tick", g.tick,
		"flies", flies,
		"frogs", frogs,
		"eggs", eggs,
		"kills", g.kills,
		"lineages_fly", g.lifetimeTracker.ActiveLineages(components.SpeciesFly),
		"lineages_frog", g.lifetimeTracker.ActiveLineages(components.SpeciesFrog),
	)
}
