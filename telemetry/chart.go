package telemetry

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrTooFewPoints is returned when a chart has fewer than two windows to plot.
var ErrTooFewPoints = errors.New("need at least two points to chart")

// PopulationChart accumulates population counts per stats window and renders
// them as a line chart.
type PopulationChart struct {
	width, height int

	ticks []float64
	flies []float64
	frogs []float64
	eggs  []float64
}

// NewPopulationChart creates an empty chart of the given pixel size.
func NewPopulationChart(width, height int) *PopulationChart {
	return &PopulationChart{width: width, height: height}
}

// Add appends one window's counts.
func (pc *PopulationChart) Add(stats WindowStats) {
	pc.ticks = append(pc.ticks, float64(stats.WindowEndTick))
	pc.flies = append(pc.flies, float64(stats.Flies))
	pc.frogs = append(pc.frogs, float64(stats.Frogs))
	pc.eggs = append(pc.eggs, float64(stats.Eggs))
}

// Len returns the number of recorded windows.
func (pc *PopulationChart) Len() int {
	return len(pc.ticks)
}

// RenderPNG writes the chart as PNG.
func (pc *PopulationChart) RenderPNG(w io.Writer) error {
	if len(pc.ticks) < 2 {
		return ErrTooFewPoints
	}

	graph := chart.Chart{
		Width:  pc.width,
		Height: pc.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "tick",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "count",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "flies",
				XValues: pc.ticks,
				YValues: pc.flies,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 102, G: 191, B: 255, A: 255}, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "frogs",
				XValues: pc.ticks,
				YValues: pc.frogs,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "eggs",
				XValues: pc.ticks,
				YValues: pc.eggs,
				Style:   chart.Style{StrokeColor: chart.ColorBlack, StrokeWidth: 1.0, StrokeDashArray: []float64{4, 2}},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering population chart: %w", err)
	}
	return nil
}
