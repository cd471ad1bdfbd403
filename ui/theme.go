// Package ui draws the heads-up display above the grid.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	Background rl.Color
	PanelBg    rl.Color
	TextColor  rl.Color
	FontSize   int32
	Padding    float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background: rl.Color{R: 20, G: 25, B: 30, A: 255},
		PanelBg:    rl.Color{R: 20, G: 25, B: 30, A: 240},
		TextColor:  rl.LightGray,
		FontSize:   12,
		Padding:    4,
	}
}
