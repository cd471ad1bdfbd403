package components

import "image/color"

// Colour is a display category tag. Renderers map it to a palette.
type Colour uint8

const (
	ColourSkyBlue Colour = iota // male fly
	ColourPink                  // female fly
	ColourPurple                // male follower fly
	ColourViolet                // female follower fly
	ColourDarkGreen             // male frog
	ColourLightGreen            // female frog
	ColourBlack                 // fly egg
	ColourYellow                // frog egg
)

var colourNames = [...]string{"skyblue", "pink", "purple", "violet", "darkgreen", "lightgreen", "black", "yellow"}

func (c Colour) String() string {
	if int(c) < len(colourNames) {
		return colourNames[c]
	}
	return "unknown"
}

// palette holds the CSS colour each tag is named after.
var palette = [...]color.RGBA{
	ColourSkyBlue:    {R: 135, G: 206, B: 235, A: 255},
	ColourPink:       {R: 255, G: 192, B: 203, A: 255},
	ColourPurple:     {R: 128, G: 0, B: 128, A: 255},
	ColourViolet:     {R: 238, G: 130, B: 238, A: 255},
	ColourDarkGreen:  {R: 0, G: 100, B: 0, A: 255},
	ColourLightGreen: {R: 144, G: 238, B: 144, A: 255},
	ColourBlack:      {R: 0, G: 0, B: 0, A: 255},
	ColourYellow:     {R: 255, G: 255, B: 0, A: 255},
}

// RGBA returns the display colour for the tag. Unknown tags are grey.
func (c Colour) RGBA() color.RGBA {
	if int(c) < len(palette) {
		return palette[c]
	}
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

// Appearance is rendering-only data: display size in cells and colour tag.
type Appearance struct {
	Size   float32
	Colour Colour
}

// FlyColour picks the colour for a fly of the given gender and leadership.
func FlyColour(g Gender, leader bool) Colour {
	switch {
	case leader && g == Male:
		return ColourSkyBlue
	case leader:
		return ColourPink
	case g == Male:
		return ColourPurple
	default:
		return ColourViolet
	}
}

// FrogColour picks the colour for a frog of the given gender.
func FrogColour(g Gender) Colour {
	if g == Male {
		return ColourDarkGreen
	}
	return ColourLightGreen
}
