package game

import (
	"errors"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/systems"
	"github.com/pthm-cable/swamp/telemetry"
	"github.com/pthm-cable/swamp/traits"
)

// Step runs one tick followed by the frames that elapse before the next one.
func (g *Game) Step() {
	g.perfCollector.StartStep()
	g.runTick()

	g.perfCollector.StartPhase(telemetry.PhaseFrames)
	for range g.cfg.Derived.FramesPerTick {
		g.advanceFrame()
	}
	g.perfCollector.EndStep()
}

// StepTick runs the rules for one tick: eggs, then flies, then frogs.
func (g *Game) StepTick() {
	g.perfCollector.StartStep()
	g.runTick()
	g.perfCollector.EndStep()
}

// StepFrame advances every transit and pending occupancy commit by one frame.
func (g *Game) StepFrame() {
	g.advanceFrame()
}

func (g *Game) advanceFrame() {
	g.movement.AdvanceFrame()
	g.frames++
}

func (g *Game) runTick() {
	g.perfCollector.StartPhase(telemetry.PhaseEggs)
	g.updateEggs()

	// Hatchlings from this tick are part of the fly pass
	g.perfCollector.StartPhase(telemetry.PhaseFlies)
	for _, e := range g.store.Flies() {
		if g.store.Alive(e) {
			g.updateFly(e)
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseFrogs)
	for _, e := range g.store.Frogs() {
		if g.store.Alive(e) {
			g.updateFrog(e)
		}
	}

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.maybeDump()
}

// updateEggs counts eggs down and records the hatchlings.
func (g *Game) updateEggs() {
	for _, b := range g.breeding.HatchEggs() {
		g.emit(telemetry.NewHatchEvent(g.tick, b.EggID, len(b.Offspring)))
		for _, child := range b.Offspring {
			id := g.store.Creature(child).ID.ID
			g.emit(telemetry.NewBirthEvent(g.tick, id, b.Parents[0], components.SpeciesFly))
			g.creditChild(components.SpeciesFly, b.Parents[1])
			g.registerBirth(child)
		}
		slog.Debug("hatch", "egg", b.EggID, "offspring", len(b.Offspring))
	}
}

// updateFly runs one fly's tick: gestation, movement, ageing, cooldown,
// mating, old age and predation.
func (g *Game) updateFly(e ecs.Entity) {
	flyID := g.store.Creature(e).ID.ID

	egg, laid, err := g.breeding.Gestate(e)
	if laid {
		eggID, _, _ := g.store.Egg(egg)
		g.emit(telemetry.NewEggLaidEvent(g.tick, eggID.ID, flyID))
	}
	if err != nil {
		slog.Debug("egg_laid_without_father", "fly", flyID, "error", err)
	}

	dest := g.movement.ChooseDestination(g.store.Creature(e))
	if err := g.movement.Dispatch(e, dest); err != nil {
		g.emit(telemetry.NewTransitRejectedEvent(g.tick, flyID, components.SpeciesFly))
		return
	}

	c := g.store.Creature(e)
	c.Life.Age++
	systems.Cooldown(c.Life, g.cfg.Fly.MaternalCooldown)

	partner, err := g.breeding.MateFly(e, dest)
	switch {
	case err == nil:
		g.emit(telemetry.NewMatingEvent(g.tick, flyID, g.store.Creature(partner).ID.ID, components.SpeciesFly))
	case errors.Is(err, systems.ErrPopulationCap):
		g.emit(telemetry.NewCapRefusedEvent(g.tick, flyID, components.SpeciesFly))
	}

	c = g.store.Creature(e)
	if c.Life.Age >= c.Genome.Genes.Int(traits.LifeSpan) {
		g.removeCreature(e, components.CauseAge)
		return
	}

	if kill, ok := g.feeding.Hunt(e, dest); ok {
		frogID := g.store.Creature(kill.Frog).ID.ID
		g.emit(telemetry.NewKillEvent(g.tick, frogID, flyID, kill.Cause))
		g.kills++
		g.removeCreature(e, kill.Cause)
	}
}

// updateFrog runs one frog's tick: ageing, starvation, cooldown, an
// occasional hop and mating.
func (g *Game) updateFrog(e ecs.Entity) {
	c := g.store.Creature(e)
	frogID := c.ID.ID
	c.Life.Age++

	if g.feeding.Starve(e) {
		g.removeCreature(e, components.CauseStarvation)
		return
	}

	c = g.store.Creature(e)
	systems.Cooldown(c.Life, g.cfg.Frog.MaternalCooldown)

	dest := c.Occ.Cell
	hopChance := float64(c.Genome.Genes.Int(traits.HopRate)) / 10
	if g.rng.Float64() < hopChance {
		dest = g.movement.ChooseDestination(c)
		if err := g.movement.Dispatch(e, dest); err != nil {
			g.emit(telemetry.NewTransitRejectedEvent(g.tick, frogID, components.SpeciesFrog))
			return
		}
	}

	child, err := g.breeding.MateFrog(e, dest)
	switch {
	case err == nil:
		cc := g.store.Creature(child)
		parents := cc.Life.Parents
		g.emit(telemetry.NewMatingEvent(g.tick, parents[0], parents[1], components.SpeciesFrog))
		g.emit(telemetry.NewBirthEvent(g.tick, cc.ID.ID, parents[0], components.SpeciesFrog))
		g.creditChild(components.SpeciesFrog, parents[1])
		g.registerBirth(child)
		slog.Debug("frog_born", "frog", cc.ID.ID, "parents", parents, "genes", cc.Genome.Genes)
	case errors.Is(err, systems.ErrPopulationCap):
		g.emit(telemetry.NewCapRefusedEvent(g.tick, frogID, components.SpeciesFrog))
	case errors.Is(err, systems.ErrGridSaturated):
		slog.Debug("frog_birth_skipped", "frog", frogID, "error", err)
	}
}

// creditChild adds a child to the second parent's lifetime stats. The
// first parent is credited through the birth event.
func (g *Game) creditChild(sp components.Species, parentID uint32) {
	if s := g.lifetimeTracker.Get(sp, parentID); s != nil {
		s.Children++
	}
}
