package chart

import (
	"fmt"

	"github.com/newthinker/recruitdash/internal/core"
)

// Chart binds one freshly built Options to its series.
type Chart struct {
	Kind    core.Kind `json:"kind"`
	Type    string    `json:"type"`
	Height  int       `json:"height"`
	Options Options   `json:"options"`
	Series  []Series  `json:"series"`
	// TooltipDates holds the full date for each category, when labels are dates.
	TooltipDates []string `json:"tooltipDates,omitempty"`
	// ValueSuffix is appended to values in tooltips.
	ValueSuffix string `json:"valueSuffix,omitempty"`
	// Invalid counts points whose value could not be read.
	Invalid int `json:"invalid,omitempty"`
}

// Categories returns the labels the series values are aligned with.
func (c Chart) Categories() []string {
	if c.Options.XAxis != nil {
		return c.Options.XAxis.Categories
	}
	return c.Options.Labels
}

// Values returns the first series' data.
func (c Chart) Values() []float64 {
	if len(c.Series) == 0 {
		return nil
	}
	return c.Series[0].Data
}

// Build maps a dataset's points into a chart ready for rendering.
func Build(ds core.Dataset, points []core.DataPoint) (Chart, error) {
	p := Project(ds, points)

	labels := p.Labels
	var full []string
	if ds.DateLabels {
		labels = make([]string, len(p.Labels))
		full = make([]string, len(p.Labels))
		for i, l := range p.Labels {
			labels[i] = FormatDate(l)
			full[i] = FormatFullDate(l)
		}
	}

	c := Chart{
		Kind:         ds.Kind,
		Height:       Height,
		Series:       []Series{p.Series},
		TooltipDates: full,
		Invalid:      p.Invalid,
	}

	switch ds.Kind {
	case core.KindBar:
		c.Type = "bar"
		c.Options = BarOptions(labels)
	case core.KindRadar:
		c.Type = "radar"
		c.Options = RadarOptions(labels)
		c.ValueSuffix = " applicants"
	case core.KindLine:
		c.Type = "line"
		c.Options = LineOptions(labels)
	default:
		return Chart{}, core.WrapError(core.ErrDatasetNotFound, fmt.Errorf("no chart for dataset %q", ds.Kind))
	}

	return c, nil
}

// Empty returns the chart for kind with no data points.
func Empty(ds core.Dataset) (Chart, error) {
	return Build(ds, nil)
}

// BarOptions builds the daily applications bar chart.
func BarOptions(categories []string) Options {
	return Options{
		Chart: baseChart("applications-bar", "bar"),
		PlotOptions: &PlotOptions{
			Bar: &BarPlot{
				BorderRadius: 6,
				ColumnWidth:  "60%",
				DataLabels:   BarLabelOptions{Position: "top"},
			},
		},
		DataLabels: &DataLabels{Enabled: false},
		XAxis: &XAxis{
			Categories: cloneStrings(categories),
			AxisBorder: &Toggle{Show: boolPtr(false)},
			AxisTicks:  &Toggle{Show: boolPtr(false)},
			Labels: &AxisLabels{
				Style:  &TextStyle{FontSize: "12px"},
				Rotate: intPtr(0),
			},
		},
		YAxis:   &YAxis{DecimalsInFloat: intPtr(0)},
		Title:   title("Daily Applications"),
		Grid:    &Grid{BorderColor: gridColor, StrokeDashArray: 4},
		Tooltip: &Tooltip{Theme: "light", Style: &TextStyle{FontSize: "12px"}},
		Colors:  []string{ColorPrimary},
		NoData:  noData(),
	}
}

// RadarOptions builds the experience distribution radar chart.
func RadarOptions(labels []string) Options {
	c := baseChart("experience-radar", "radar")
	c.DropShadow = &DropShadow{Enabled: true, Blur: 3, Opacity: 0.2}

	return Options{
		Chart:  c,
		Title:  title("Experience Distribution"),
		Labels: cloneStrings(labels),
		DataLabels: &DataLabels{
			Enabled:    true,
			Background: &LabelBackground{Enabled: true, BorderRadius: 2},
		},
		PlotOptions: &PlotOptions{
			Radar: &RadarPlot{
				Size: 140,
				Polygons: Polygons{
					StrokeColors: "#e9e9e9",
					Fill:         PolygonFill{Colors: []string{"#f8f8f8", "#fff"}},
				},
			},
		},
		YAxis:   &YAxis{Show: boolPtr(false)},
		Markers: &Markers{Size: 5, Hover: MarkerHover{Size: 7}},
		Tooltip: &Tooltip{Theme: "light"},
		Colors:  []string{ColorAccent},
		NoData:  noData(),
	}
}

// LineOptions builds the LinkedIn applicants trend line chart.
func LineOptions(categories []string) Options {
	c := baseChart("linkedin-line", "line")
	c.Zoom = &Toggle{Enabled: boolPtr(false)}

	return Options{
		Chart: c,
		XAxis: &XAxis{
			Categories: cloneStrings(categories),
			AxisBorder: &Toggle{Show: boolPtr(false)},
			AxisTicks:  &Toggle{Show: boolPtr(false)},
			Labels:     &AxisLabels{Style: &TextStyle{FontSize: "12px"}},
		},
		YAxis:   &YAxis{DecimalsInFloat: intPtr(0)},
		Title:   title("LinkedIn Applications Trend"),
		Stroke:  &Stroke{Curve: "smooth", Width: 4},
		Markers: &Markers{Size: 6, StrokeWidth: intPtr(0), Hover: MarkerHover{Size: 8}},
		Grid:    &Grid{BorderColor: gridColor, StrokeDashArray: 4},
		Tooltip: &Tooltip{Theme: "light", Marker: &Toggle{Show: boolPtr(true)}},
		Fill: &Fill{
			Type: "gradient",
			Gradient: &Gradient{
				Shade:          "light",
				Type:           "vertical",
				ShadeIntensity: 0.3,
				OpacityFrom:    0.9,
				OpacityTo:      0.5,
				Stops:          []int{0, 100},
			},
		},
		Colors: []string{ColorSecondary},
		NoData: noData(),
	}
}

// cloneStrings copies s, turning nil into an empty slice.
func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
