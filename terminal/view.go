// Package terminal renders the swamp in a text terminal with tcell.
package terminal

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/game"
)

const (
	// Each grid cell is two columns wide so cells look roughly square.
	colsPerCell = 2
	// The status line takes row 0.
	gridTop = 1

	fullBlock = '█'
	eggGlyph  = '•'
)

var background = tcell.NewRGBColor(238, 238, 238)

// View draws snapshots onto a tcell screen.
type View struct {
	screen    tcell.Screen
	clicker   Clicker
	lastKills int
}

// NewView creates a view. A nil clicker keeps the view silent.
func NewView(screen tcell.Screen, clicker Clicker) *View {
	if clicker == nil {
		clicker = silent{}
	}
	return &View{screen: screen, clicker: clicker}
}

// Draw paints one frame and clicks once if any fly was eaten since the
// previous frame.
func (v *View) Draw(snap game.Snapshot) {
	v.screen.Clear()
	v.drawStatus(snap)

	bg := tcell.StyleDefault.Background(background)
	for y := range snap.GridSize {
		for x := range snap.GridSize * colsPerCell {
			v.screen.SetContent(x, gridTop+y, ' ', nil, bg)
		}
	}

	for _, e := range snap.Entities {
		v.drawEntity(e, snap.GridSize)
	}
	v.screen.Show()

	if snap.Kills > v.lastKills {
		v.clicker.Click()
	}
	v.lastKills = snap.Kills
}

func (v *View) drawStatus(snap game.Snapshot) {
	line := fmt.Sprintf("tick %d  flies %d  frogs %d  eggs %d  eaten %d  (q to quit)",
		snap.Tick, snap.Flies, snap.Frogs, snap.Eggs, snap.Kills)
	style := tcell.StyleDefault.Bold(true)
	for i, r := range []rune(line) {
		v.screen.SetContent(i, 0, r, nil, style)
	}
}

func (v *View) drawEntity(e game.EntityView, gridSize int) {
	rgba := e.Colour.RGBA()
	fg := tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
	style := tcell.StyleDefault.Foreground(fg).Background(background)

	cx := int(math.Floor(float64(e.X)))
	cy := int(math.Floor(float64(e.Y)))

	if e.Species == components.SpeciesEgg {
		v.screen.SetContent(cx*colsPerCell, gridTop+cy, eggGlyph, nil, style)
		return
	}

	span := max(1, int(math.Round(float64(e.Size))))
	for dy := range span {
		for dx := range span {
			gx, gy := cx+dx, cy+dy
			if gx >= gridSize || gy >= gridSize {
				continue
			}
			for col := range colsPerCell {
				v.screen.SetContent(gx*colsPerCell+col, gridTop+gy, fullBlock, nil, style)
			}
		}
	}
}

// HandleEvent reacts to a terminal event. It returns false when the user
// asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return false
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Run drives the clock from wall time and redraws every frameInterval
// until the user quits, ctx is cancelled or maxTicks (if positive) ticks
// have run.
func (v *View) Run(ctx context.Context, g *game.Game, clock *game.Clock, frameInterval time.Duration, maxTicks int32) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	v.Draw(g.Snapshot())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			clock.Advance(now.Sub(last))
			last = now
			g.RecordFrame()
			v.Draw(g.Snapshot())

			if maxTicks > 0 && g.Tick() >= maxTicks {
				return nil
			}
		}
	}
}
