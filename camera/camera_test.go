package camera

import (
	"math"
	"testing"
)

func TestNewExactFit(t *testing.T) {
	cam := New(600, 624, 24, 30)

	if cam.CellPx != 20 {
		t.Errorf("expected 20 px per cell, got %f", cam.CellPx)
	}
	if cam.OffsetX != 0 || cam.OffsetY != 24 {
		t.Errorf("expected offset (0, 24), got (%f, %f)", cam.OffsetX, cam.OffsetY)
	}
}

func TestNewLetterbox(t *testing.T) {
	// Wide window: height limits the cell size, grid is centred horizontally
	cam := New(1000, 324, 24, 30)

	if cam.CellPx != 10 {
		t.Fatalf("expected 10 px per cell, got %f", cam.CellPx)
	}
	if cam.OffsetX != 350 || cam.OffsetY != 24 {
		t.Errorf("expected offset (350, 24), got (%f, %f)", cam.OffsetX, cam.OffsetY)
	}
}

func TestGridToScreen(t *testing.T) {
	cam := New(600, 624, 24, 30)

	testCases := []struct {
		gx, gy, sx, sy float32
	}{
		{0, 0, 0, 24},
		{29, 29, 580, 604},
		{10.5, 2.25, 210, 69},
	}
	for _, tc := range testCases {
		sx, sy := cam.GridToScreen(tc.gx, tc.gy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("GridToScreen(%f,%f) = (%f,%f), want (%f,%f)", tc.gx, tc.gy, sx, sy, tc.sx, tc.sy)
		}
	}
}

func TestScreenToGridRoundtrip(t *testing.T) {
	cam := New(1000, 700, 24, 30)

	testCases := []struct{ gx, gy float32 }{
		{0, 0},
		{15, 15},
		{29.9, 0.1},
	}
	for _, tc := range testCases {
		sx, sy := cam.GridToScreen(tc.gx, tc.gy)
		gx, gy, ok := cam.ScreenToGrid(sx, sy)
		if !ok {
			t.Errorf("(%f,%f) reported outside the grid", tc.gx, tc.gy)
		}
		if math.Abs(float64(gx-tc.gx)) > 0.01 || math.Abs(float64(gy-tc.gy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.gx, tc.gy, sx, sy, gx, gy)
		}
	}

	// The HUD strip is not part of the grid
	if _, _, ok := cam.ScreenToGrid(500, 5); ok {
		t.Error("HUD point mapped into the grid")
	}
}

func TestTinyViewport(t *testing.T) {
	cam := New(10, 30, 24, 30)

	if cam.CellPx != 1 {
		t.Errorf("expected cell size clamped to 1, got %f", cam.CellPx)
	}
	if cam.OffsetX < 0 || cam.OffsetY < cam.TopMargin {
		t.Errorf("offset (%f, %f) escapes the viewport", cam.OffsetX, cam.OffsetY)
	}
}

func TestResize(t *testing.T) {
	cam := New(600, 624, 24, 30)
	cam.Resize(1200, 1224)

	if cam.CellPx != 40 {
		t.Errorf("expected 40 px per cell after resize, got %f", cam.CellPx)
	}
	x, y, w, h := cam.Bounds()
	if x != 0 || y != 24 || w != 1200 || h != 1200 {
		t.Errorf("bounds = (%f,%f,%f,%f), want (0,24,1200,1200)", x, y, w, h)
	}
}
