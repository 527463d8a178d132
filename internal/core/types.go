package core

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies one of the dashboard datasets.
type Kind string

const (
	KindBar   Kind = "bar"
	KindRadar Kind = "radar"
	KindLine  Kind = "line"
)

// Kinds lists the datasets in the order the dashboard lays them out.
var Kinds = []Kind{KindBar, KindRadar, KindLine}

// ParseKind resolves a dataset kind from its name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", WrapError(ErrDatasetNotFound, fmt.Errorf("unknown dataset %q", s))
}

// DataPoint is one raw record of a fetched dataset. Field names and value
// types depend on the endpoint.
type DataPoint map[string]any

// Dataset describes an upstream endpoint and which fields feed the chart.
type Dataset struct {
	Kind       Kind
	Path       string
	LabelField string
	ValueField string
	SeriesName string
	// DateLabels marks label fields holding dates that get shortened for axes.
	DateLabels bool
}

// Datasets returns the descriptors for the three dashboard datasets.
func Datasets() []Dataset {
	return []Dataset{
		{
			Kind:       KindBar,
			Path:       "/data/bar-chart",
			LabelField: "Date",
			ValueField: "Applications",
			SeriesName: "Applications",
			DateLabels: true,
		},
		{
			Kind:       KindRadar,
			Path:       "/data/radar-chart",
			LabelField: "Experience Level",
			ValueField: "Count",
			SeriesName: "Candidates",
		},
		{
			Kind:       KindLine,
			Path:       "/data/line-chart",
			LabelField: "Date",
			ValueField: "LinkedIn Applicants",
			SeriesName: "LinkedIn Applicants",
			DateLabels: true,
		},
	}
}

// DatasetFor returns the descriptor for kind.
func DatasetFor(kind Kind) (Dataset, error) {
	for _, ds := range Datasets() {
		if ds.Kind == kind {
			return ds, nil
		}
	}
	return Dataset{}, WrapError(ErrDatasetNotFound, fmt.Errorf("unknown dataset %q", kind))
}

// Result is the outcome of fetching one dataset.
type Result struct {
	Kind      Kind
	Points    []DataPoint
	Err       error
	FetchedAt time.Time
	Duration  time.Duration
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
