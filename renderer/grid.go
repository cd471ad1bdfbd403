// Package renderer draws the swamp grid in a raylib window.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swamp/camera"
	"github.com/pthm-cable/swamp/game"
)

// GridRenderer paints a snapshot onto the grid area of the window. The
// whole grid is cleared and redrawn every frame.
type GridRenderer struct {
	cam        *camera.Camera
	background rl.Color
	border     rl.Color
}

// NewGridRenderer creates a renderer drawing through cam.
func NewGridRenderer(cam *camera.Camera) *GridRenderer {
	return &GridRenderer{
		cam:        cam,
		background: rl.Color{R: 238, G: 238, B: 238, A: 255},
		border:     rl.Color{R: 60, G: 70, B: 80, A: 255},
	}
}

// Draw renders every entity in the snapshot as a filled square of its
// display size, anchored at its continuous position.
func (r *GridRenderer) Draw(snap game.Snapshot) {
	x, y, w, h := r.cam.Bounds()
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, r.background)

	for _, e := range snap.Entities {
		sx, sy := r.cam.GridToScreen(e.X, e.Y)
		size := r.cam.Scale(e.Size)
		rl.DrawRectangleV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: size, Y: size}, e.Colour.RGBA())
	}

	rl.DrawRectangleLinesEx(rl.Rectangle{X: x - 1, Y: y - 1, Width: w + 2, Height: h + 2}, 1, r.border)
}
