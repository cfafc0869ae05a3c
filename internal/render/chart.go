package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// Sample is one point of the aggregate growth curve.
type Sample struct {
	Step     int `yaml:"step"`
	Stuck    int `yaml:"stuck"`
	Occupied int `yaml:"occupied"`
}

// WriteGrowthChart plots stuck and mobile particle counts against the step
// number and writes the chart as PNG.
func WriteGrowthChart(w io.Writer, samples []Sample) error {
	if len(samples) < 2 {
		return errors.New("render: growth chart needs at least two samples")
	}
	steps := make([]float64, len(samples))
	stuck := make([]float64, len(samples))
	mobile := make([]float64, len(samples))
	for i, s := range samples {
		steps[i] = float64(s.Step)
		stuck[i] = float64(s.Stuck)
		mobile[i] = float64(s.Occupied)
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "particles",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "stuck",
				XValues: steps,
				YValues: stuck,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "mobile",
				XValues: steps,
				YValues: mobile,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
