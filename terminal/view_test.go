package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/swamp/components"
	"github.com/pthm-cable/swamp/game"
)

type countingClicker struct{ n int }

func (c *countingClicker) Click() { c.n++ }

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 40)
	t.Cleanup(screen.Fini)
	return screen
}

func testSnapshot(kills int) game.Snapshot {
	return game.Snapshot{
		Tick:     7,
		GridSize: 30,
		Flies:    1,
		Frogs:    1,
		Eggs:     1,
		Kills:    kills,
		Entities: []game.EntityView{
			{Species: components.SpeciesEgg, ID: 0, X: 1.35, Y: 1.35, Size: 0.3, Colour: components.ColourBlack},
			{Species: components.SpeciesFly, ID: 1, X: 3, Y: 4, Size: 1, Colour: components.ColourSkyBlue},
			{Species: components.SpeciesFrog, ID: 0, X: 10, Y: 10, Size: 2, Colour: components.ColourDarkGreen},
		},
	}
}

func TestDrawPlacesEntities(t *testing.T) {
	screen := newTestScreen(t)
	v := NewView(screen, nil)
	v.Draw(testSnapshot(0))

	sky := components.ColourSkyBlue.RGBA()
	skyFg := tcell.NewRGBColor(int32(sky.R), int32(sky.G), int32(sky.B))

	// Fly at cell (3,4) covers columns 6 and 7 of row 5
	for _, x := range []int{6, 7} {
		r, _, style, _ := screen.GetContent(x, gridTop+4)
		if r != fullBlock {
			t.Errorf("fly cell column %d = %q, want block", x, r)
		}
		if fg, _, _ := style.Decompose(); fg != skyFg {
			t.Errorf("fly cell column %d foreground = %v, want %v", x, fg, skyFg)
		}
	}

	// Frog at (10,10) covers a 2x2 cell footprint
	for y := 10; y <= 11; y++ {
		for x := 20; x <= 23; x++ {
			if r, _, _, _ := screen.GetContent(x, gridTop+y); r != fullBlock {
				t.Errorf("frog footprint (%d,%d) = %q, want block", x, y, r)
			}
		}
	}
	if r, _, _, _ := screen.GetContent(24, gridTop+10); r == fullBlock {
		t.Error("frog drawn beyond its footprint")
	}

	if r, _, _, _ := screen.GetContent(2, gridTop+1); r != eggGlyph {
		t.Errorf("egg cell = %q, want %q", r, eggGlyph)
	}
}

func TestDrawStatusLine(t *testing.T) {
	screen := newTestScreen(t)
	NewView(screen, nil).Draw(testSnapshot(3))

	var sb strings.Builder
	for x := range 80 {
		r, _, _, _ := screen.GetContent(x, 0)
		sb.WriteRune(r)
	}
	line := sb.String()
	for _, want := range []string{"tick 7", "flies 1", "frogs 1", "eggs 1", "eaten 3"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q missing %q", line, want)
		}
	}
}

func TestDrawClipsAtGridEdge(t *testing.T) {
	screen := newTestScreen(t)
	snap := game.Snapshot{
		GridSize: 30,
		Frogs:    1,
		Entities: []game.EntityView{
			{Species: components.SpeciesFrog, X: 29, Y: 29, Size: 2, Colour: components.ColourLightGreen},
		},
	}
	NewView(screen, nil).Draw(snap)

	if r, _, _, _ := screen.GetContent(58, gridTop+29); r != fullBlock {
		t.Errorf("frog anchor = %q, want block", r)
	}
	if r, _, _, _ := screen.GetContent(60, gridTop+29); r == fullBlock {
		t.Error("frog spilled past the right edge")
	}
	if r, _, _, _ := screen.GetContent(58, gridTop+30); r == fullBlock {
		t.Error("frog spilled past the bottom edge")
	}
}

func TestClickOnKills(t *testing.T) {
	screen := newTestScreen(t)
	c := &countingClicker{}
	v := NewView(screen, c)

	for _, kills := range []int{0, 0, 2, 2, 3} {
		v.Draw(testSnapshot(kills))
	}
	if c.n != 2 {
		t.Errorf("clicks = %d, want 2", c.n)
	}
}

func TestHandleEvent(t *testing.T) {
	screen := newTestScreen(t)
	v := NewView(screen, nil)

	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"other key continues", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
		{"resize continues", tcell.NewEventResize(100, 50), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.HandleEvent(tt.ev); got != tt.want {
				t.Errorf("HandleEvent = %v, want %v", got, tt.want)
			}
		})
	}
}
