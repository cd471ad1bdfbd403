package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/telemetry"
	"github.com/pthm-cable/swamp/traits"
)

// emit feeds an event to the window collector and the lifetime tracker.
func (g *Game) emit(ev telemetry.Event) {
	g.collector.Record(ev)
	g.lifetimeTracker.Apply(ev)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	flies, frogs, eggs := g.Counts()
	stats := g.collector.Flush(g.tick, telemetry.Population{
		Flies:     flies,
		Frogs:     frogs,
		Eggs:      eggs,
		FlyGenes:  g.sampleGenes(g.store.Flies()),
		FrogGenes: g.sampleGenes(g.store.Frogs()),
	})
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		g.logWorldState()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// sampleGenes gathers numeric gene values from a population.
func (g *Game) sampleGenes(entities []ecs.Entity) telemetry.GeneSample {
	var s telemetry.GeneSample
	for _, e := range entities {
		genes := g.store.Creature(e).Genome.Genes
		if genes.Has(traits.LifeSpan) {
			s.Mobility = append(s.Mobility, float64(genes.Int(traits.Mobility)))
			s.LifeSpan = append(s.LifeSpan, float64(genes.Int(traits.LifeSpan)))
			if genes.Bool(traits.Leader) {
				s.Leaders++
			}
		}
		if genes.Has(traits.Efficiency) {
			s.Efficiency = append(s.Efficiency, float64(genes.Int(traits.Efficiency)))
			s.Survival = append(s.Survival, float64(genes.Int(traits.Survival)))
			s.HopRate = append(s.HopRate, float64(genes.Int(traits.HopRate)))
		}
	}
	return s
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := g.createSnapshot(bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RNGSeed:  g.rngSeed,
		GridSize: g.cfg.Grid.Size,
		Tick:     g.tick,
		Bookmark: bookmark,
	}

	for _, list := range [2][]ecs.Entity{g.store.Flies(), g.store.Frogs()} {
		for _, e := range list {
			snapshot.Creatures = append(snapshot.Creatures, g.creatureState(e))
		}
	}

	for _, e := range g.store.Eggs() {
		id, pos, egg := g.store.Egg(e)
		snapshot.Eggs = append(snapshot.Eggs, telemetry.EggState{
			ID:      id.ID,
			X:       pos.X,
			Y:       pos.Y,
			HatchIn: egg.HatchIn,
			Parents: egg.Parents,
		})
	}

	return snapshot
}

func (g *Game) creatureState(e ecs.Entity) telemetry.CreatureState {
	c := g.store.Creature(e)

	genes := make(map[string]string, len(c.Genome.Genes))
	for _, gene := range c.Genome.Genes {
		genes[gene.Name] = gene.Value.String()
	}

	state := telemetry.CreatureState{
		ID:        c.ID.ID,
		Species:   c.ID.Species,
		Gender:    c.Life.Gender.String(),
		X:         c.Pos.X,
		Y:         c.Pos.Y,
		CellX:     c.Occ.Cell.X,
		CellY:     c.Occ.Cell.Y,
		Age:       c.Life.Age,
		Maternal:  c.Life.Maternal,
		Pregnant:  c.Life.Pregnant,
		InTransit: c.Transit.Active,
		Genes:     genes,
		Lifetime:  g.lifetimeTracker.Get(c.ID.Species, c.ID.ID),
	}
	if c.ID.Species == components.SpeciesFrog {
		state.Hunger = c.Hunger.Ticks
	}
	return state
}
