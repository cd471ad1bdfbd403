package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Tick    int32
	Flies   int
	Frogs   int
	Eggs    int
	Kills   int
	FlyLoad int // flies + weighted eggs
	FlyCap  int
	FPS     int32
}

// HUD renders a status bar with the tick and population counts, and a bar
// showing how close the flies are to the breeding cap. Display only.
type HUD struct {
	Theme  Theme
	height float32
}

// NewHUD creates a HUD of the given height.
func NewHUD(height int32) *HUD {
	return &HUD{Theme: DefaultTheme(), height: float32(height)}
}

// Draw renders the HUD across the top of a screen of the given width.
func (h *HUD) Draw(data HUDData, width int32) {
	w := float32(width)
	rl.DrawRectangleRec(rl.Rectangle{Width: w, Height: h.height}, h.Theme.PanelBg)

	capW := w / 4
	gui.StatusBar(rl.Rectangle{Width: w - capW, Height: h.height}, StatusText(data))

	pad := h.Theme.Padding
	bar := rl.Rectangle{X: w - capW + pad, Y: pad, Width: capW - 2*pad, Height: h.height - 2*pad}
	gui.ProgressBar(bar, "", "", float32(data.FlyLoad), 0, float32(max(data.FlyCap, 1)))
	rl.DrawText(fmt.Sprintf("fly cap %d/%d", data.FlyLoad, data.FlyCap),
		int32(bar.X+pad), int32(bar.Y+(bar.Height-float32(h.Theme.FontSize))/2), h.Theme.FontSize, h.Theme.TextColor)
}

// StatusText formats the status line.
func StatusText(data HUDData) string {
	return fmt.Sprintf("tick %d | flies %d | frogs %d | eggs %d | kills %d | %d fps",
		data.Tick, data.Flies, data.Frogs, data.Eggs, data.Kills, data.FPS)
}
