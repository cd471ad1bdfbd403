package components

import "testing"

func TestCoverageAt(t *testing.T) {
	cov := CoverageAt(Cell{X: 4, Y: 7})
	for _, c := range []Cell{{X: 5, Y: 7}, {X: 4, Y: 8}, {X: 5, Y: 8}} {
		if !cov.Contains(c) {
			t.Errorf("coverage %v missing %v", cov.Cells, c)
		}
	}
	if cov.Contains(Cell{X: 4, Y: 7}) {
		t.Error("coverage includes the anchor cell")
	}
}

func TestPositionCells(t *testing.T) {
	tests := []struct {
		pos          Position
		floor, round Cell
	}{
		{Position{X: 3.4, Y: 3.6}, Cell{X: 3, Y: 3}, Cell{X: 3, Y: 4}},
		{Position{X: 0, Y: 29.5}, Cell{X: 0, Y: 29}, Cell{X: 0, Y: 30}},
		{Position{X: 10.35, Y: 10.35}, Cell{X: 10, Y: 10}, Cell{X: 10, Y: 10}},
	}
	for _, tt := range tests {
		if got := tt.pos.Floor(); got != tt.floor {
			t.Errorf("%v.Floor() = %v, want %v", tt.pos, got, tt.floor)
		}
		if got := tt.pos.Round(); got != tt.round {
			t.Errorf("%v.Round() = %v, want %v", tt.pos, got, tt.round)
		}
	}
}

func TestFlyColour(t *testing.T) {
	tests := []struct {
		gender Gender
		leader bool
		want   Colour
	}{
		{Male, true, ColourSkyBlue},
		{Female, true, ColourPink},
		{Male, false, ColourPurple},
		{Female, false, ColourViolet},
	}
	for _, tt := range tests {
		if got := FlyColour(tt.gender, tt.leader); got != tt.want {
			t.Errorf("FlyColour(%v, %v) = %v, want %v", tt.gender, tt.leader, got, tt.want)
		}
	}
	if FrogColour(Male) != ColourDarkGreen || FrogColour(Female) != ColourLightGreen {
		t.Error("frog colours swapped")
	}
}

func TestPaletteDistinct(t *testing.T) {
	seen := make(map[[3]uint8]Colour)
	for c := ColourSkyBlue; c <= ColourYellow; c++ {
		rgba := c.RGBA()
		key := [3]uint8{rgba.R, rgba.G, rgba.B}
		if prev, dup := seen[key]; dup {
			t.Errorf("%v and %v share colour %v", prev, c, rgba)
		}
		seen[key] = c
		if rgba.A != 255 {
			t.Errorf("%v is not opaque", c)
		}
	}
}
