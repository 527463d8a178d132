package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/newthinker/recruitdash/internal/app"
	"github.com/newthinker/recruitdash/internal/core"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Rendered image size in pixels.
const (
	Width  = 1024
	Height = 480
)

const defaultColor = "4361ee"

// RenderPNG draws a panel's chart as a PNG. Bar and radar panels render as
// bar charts, line panels as a line chart.
func RenderPNG(p app.Panel) ([]byte, error) {
	values := p.Chart.Values()
	if len(values) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("panel %s has no points", p.Kind))
	}
	labels := p.Chart.Categories()

	var buf bytes.Buffer
	var err error
	switch p.Kind {
	case core.KindBar, core.KindRadar:
		err = barChart(p, labels, values).Render(gochart.PNG, &buf)
	case core.KindLine:
		err = lineChart(p, labels, values).Render(gochart.PNG, &buf)
	default:
		return nil, core.WrapError(core.ErrDatasetNotFound, fmt.Errorf("kind %q", p.Kind))
	}
	if err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

func barChart(p app.Panel, labels []string, values []float64) gochart.BarChart {
	color := seriesColor(p)

	bars := make([]gochart.Value, len(values))
	for i, v := range values {
		bars[i] = gochart.Value{
			Label: labelAt(labels, i),
			Value: v,
			Style: gochart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		}
	}

	// Keep all bars inside the canvas.
	slot := (Width - 120) / len(values)
	barWidth := max(4, min(60, slot*6/10))

	return gochart.BarChart{
		Title:      chartTitle(p),
		Width:      Width,
		Height:     Height,
		BarWidth:   barWidth,
		BarSpacing: max(2, slot-barWidth),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      gochart.YAxis{Range: valueRange(values)},
		Bars:       bars,
	}
}

func lineChart(p app.Panel, labels []string, values []float64) gochart.Chart {
	color := seriesColor(p)

	xs := make([]float64, len(values))
	ticks := make([]gochart.Tick, len(values))
	for i := range values {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: labelAt(labels, i)}
	}

	name := ""
	if len(p.Chart.Series) > 0 {
		name = p.Chart.Series[0].Name
	}

	return gochart.Chart{
		Title:      chartTitle(p),
		Width:      Width,
		Height:     Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0, Max: math.Max(1, float64(len(values)-1))},
		},
		YAxis: gochart.YAxis{Range: valueRange(values)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: values,
				Style: gochart.Style{
					StrokeColor: color,
					StrokeWidth: 4,
					DotColor:    color,
					DotWidth:    6,
				},
			},
		},
	}
}

// valueRange spans zero and every value, and is never zero-width.
func valueRange(values []float64) *gochart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi + (hi-lo)*0.1}
}

func chartTitle(p app.Panel) string {
	if t := p.Chart.Options.Title; t != nil && t.Text != "" {
		return t.Text
	}
	return p.Heading
}

func seriesColor(p app.Panel) drawing.Color {
	hex := defaultColor
	if len(p.Chart.Options.Colors) > 0 {
		hex = p.Chart.Options.Colors[0]
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
