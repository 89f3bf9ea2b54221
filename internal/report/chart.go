package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrTooFewSamples is returned when a chart would have fewer than two points.
var ErrTooFewSamples = errors.New("report: need at least two samples to chart")

// ChartOptions sizes the rendered chart.
type ChartOptions struct {
	Title  string
	Width  int
	Height int
}

// DefaultChartOptions returns the settings used by the record tool.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Title: "mass drift", Width: 800, Height: 320}
}

// WriteChart renders drift, discarded and created mass against the step count
// as a PNG.
func WriteChart(w io.Writer, r *Series, opts ChartOptions) error {
	if r.Len() < 2 {
		return ErrTooFewSamples
	}
	steps := r.Steps()
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "drift",
			XValues: steps,
			YValues: r.Column(func(s Sample) float64 { return s.Drift }),
			Style:   chart.Style{StrokeColor: drawing.Color{R: 40, G: 110, B: 200, A: 255}, StrokeWidth: 2},
		},
		chart.ContinuousSeries{
			Name:    "discarded",
			XValues: steps,
			YValues: r.Column(func(s Sample) float64 { return -s.Discarded }),
			Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 1.5},
		},
		chart.ContinuousSeries{
			Name:    "created",
			XValues: steps,
			YValues: r.Column(func(s Sample) float64 { return s.Created }),
			Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 1.5},
		},
	}
	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name:  "step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "mass",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: series,
	}
	if lo, hi := yBounds(series); lo == hi {
		// A flat plot has no range to autoscale.
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// WriteChartFile renders the chart into path.
func WriteChartFile(path string, r *Series, opts ChartOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := WriteChart(f, r, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart: %w", err)
	}
	return nil
}

func yBounds(series []chart.Series) (lo, hi float64) {
	first := true
	for _, s := range series {
		cs, ok := s.(chart.ContinuousSeries)
		if !ok {
			continue
		}
		for _, v := range cs.YValues {
			if first {
				lo, hi, first = v, v, false
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}
