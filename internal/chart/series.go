package chart

import (
	"math"

	"github.com/newthinker/recruitdash/internal/core"
	"github.com/spf13/cast"
)

// Series is one named chart trace. Data is positionally aligned with the
// chart's categories or labels.
type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// Projection is a dataset reduced to what a chart plots.
type Projection struct {
	Labels []string
	Series Series
	// Invalid counts values that were missing or not numeric and plotted as 0.
	Invalid int
}

// Project extracts labels and values from points, one entry per point.
func Project(ds core.Dataset, points []core.DataPoint) Projection {
	p := Projection{
		Labels: make([]string, len(points)),
		Series: Series{
			Name: ds.SeriesName,
			Data: make([]float64, len(points)),
		},
	}

	for i, dp := range points {
		p.Labels[i] = cast.ToString(dp[ds.LabelField])

		v, ok := toValue(dp[ds.ValueField])
		if !ok {
			p.Invalid++
		}
		p.Series.Data[i] = v
	}

	return p
}

func toValue(raw any) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Total sums the series values.
func (s Series) Total() float64 {
	var total float64
	for _, v := range s.Data {
		total += v
	}
	return total
}
