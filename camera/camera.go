// Package camera provides the grid-to-screen transform for the window viewer.
package camera

import "math"

// Camera fits the square grid into the viewport area below a top margin
// (the HUD). Cells are drawn at a whole number of pixels and the grid is
// centred in whatever space is left over.
type Camera struct {
	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// TopMargin is reserved above the grid
	TopMargin float32

	// GridSize is the side of the grid in cells
	GridSize int

	// Derived by fit
	CellPx           float32
	OffsetX, OffsetY float32
}

// New creates a camera for a gridSize x gridSize grid.
func New(viewportW, viewportH, topMargin float32, gridSize int) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		TopMargin: topMargin,
		GridSize:  gridSize,
	}
	c.fit()
	return c
}

func (c *Camera) fit() {
	n := float32(c.GridSize)
	availH := c.ViewportH - c.TopMargin

	px := float32(math.Floor(float64(min(c.ViewportW, availH) / n)))
	if px < 1 {
		px = 1
	}
	c.CellPx = px

	side := px * n
	c.OffsetX = (c.ViewportW - side) / 2
	c.OffsetY = c.TopMargin + (availH-side)/2
	if c.OffsetX < 0 {
		c.OffsetX = 0
	}
	if c.OffsetY < c.TopMargin {
		c.OffsetY = c.TopMargin
	}
}

// GridToScreen converts a grid position (in cells) to screen pixels.
func (c *Camera) GridToScreen(gx, gy float32) (sx, sy float32) {
	return c.OffsetX + gx*c.CellPx, c.OffsetY + gy*c.CellPx
}

// ScreenToGrid converts screen pixels to a grid position. ok is false
// outside the grid.
func (c *Camera) ScreenToGrid(sx, sy float32) (gx, gy float32, ok bool) {
	gx = (sx - c.OffsetX) / c.CellPx
	gy = (sy - c.OffsetY) / c.CellPx
	n := float32(c.GridSize)
	ok = gx >= 0 && gy >= 0 && gx < n && gy < n
	return gx, gy, ok
}

// Scale converts a length in cells to pixels.
func (c *Camera) Scale(cells float32) float32 {
	return cells * c.CellPx
}

// Bounds returns the grid's screen rectangle.
func (c *Camera) Bounds() (x, y, w, h float32) {
	side := c.Scale(float32(c.GridSize))
	return c.OffsetX, c.OffsetY, side, side
}

// Resize updates viewport dimensions and refits the grid.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
}
