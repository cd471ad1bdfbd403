package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swamp/camera"
	"github.com/pthm-cable/swamp/config"
	"github.com/pthm-cable/swamp/game"
	"github.com/pthm-cable/swamp/renderer"
	"github.com/pthm-cable/swamp/terminal"
	"github.com/pthm-cable/swamp/ui"
)

// maxFrameTime caps how much simulated time one slow frame can add.
const maxFrameTime = 250 * time.Millisecond

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	tui := flag.Bool("tui", false, "Draw in the terminal instead of a window")
	sound := flag.Bool("sound", false, "Click when a frog eats a fly (terminal mode)")
	logFile := flag.String("log-file", "", "Log file for terminal mode (empty = discard logs)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog. The terminal viewer owns stdout, so its logs go elsewhere.
	var logOut io.Writer = os.Stdout
	if *tui {
		logOut = io.Discard
		if *logFile != "" {
			f, err := os.Create(*logFile)
			if err != nil {
				slog.Error("failed to open log file", "error", err)
				os.Exit(1)
			}
			defer f.Close()
			logOut = f
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
	}

	g, err := game.New(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *headless:
		runHeadless(ctx, g, int32(*maxTicks))
	case *tui:
		if err := runTerminal(ctx, g, cfg, *sound, int32(*maxTicks)); err != nil {
			slog.Error("terminal viewer failed", "error", err)
		}
	default:
		runWindow(g, cfg, int32(*maxTicks))
	}
}

// runHeadless steps the simulation as fast as possible.
func runHeadless(ctx context.Context, g *game.Game, maxTicks int32) {
	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"max_ticks", maxTicks,
	)

	for ctx.Err() == nil {
		g.Step()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
	slog.Info("interrupted", "tick", g.Tick())
}

func runTerminal(ctx context.Context, g *game.Game, cfg *config.Config, sound bool, maxTicks int32) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	var clicker terminal.Clicker
	if sound {
		b, err := terminal.NewBeeper()
		if err != nil {
			slog.Warn("sound disabled", "error", err)
		} else {
			defer b.Close()
			clicker = b
		}
	}

	clock := game.NewClock(g, cfg.Clock.TickInterval, cfg.Clock.FrameInterval)
	view := terminal.NewView(screen, clicker)
	frame := time.Second / time.Duration(max(cfg.Screen.TargetFPS, 1))
	return view.Run(ctx, g, clock, frame, maxTicks)
}

func runWindow(g *game.Game, cfg *config.Config, maxTicks int32) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(cfg.Derived.ScreenW, cfg.Derived.ScreenH, "Swamp")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	cam := camera.New(float32(cfg.Derived.ScreenW), float32(cfg.Derived.ScreenH), float32(cfg.Screen.HUDHeight), cfg.Grid.Size)
	grid := renderer.NewGridRenderer(cam)
	hud := ui.NewHUD(int32(cfg.Screen.HUDHeight))
	clock := game.NewClock(g, cfg.Clock.TickInterval, cfg.Clock.FrameInterval)

	for !rl.WindowShouldClose() {
		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		clock.Advance(min(dt, maxFrameTime))
		g.RecordFrame()

		if rl.IsWindowResized() {
			cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		}

		snap := g.Snapshot()
		load, limit := g.FlyLoad()

		rl.BeginDrawing()
		rl.ClearBackground(hud.Theme.Background)
		grid.Draw(snap)
		hud.Draw(ui.HUDData{
			Tick:    snap.Tick,
			Flies:   snap.Flies,
			Frogs:   snap.Frogs,
			Eggs:    snap.Eggs,
			Kills:   snap.Kills,
			FlyLoad: load,
			FlyCap:  limit,
			FPS:     rl.GetFPS(),
		}, int32(rl.GetScreenWidth()))
		rl.EndDrawing()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}
