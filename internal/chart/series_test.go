package chart

import (
	"math"
	"testing"

	"github.com/newthinker/recruitdash/internal/core"
)

func dataset(t *testing.T, kind core.Kind) core.Dataset {
	t.Helper()
	ds, err := core.DatasetFor(kind)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestProject_OnePerPoint(t *testing.T) {
	ds := dataset(t, core.KindRadar)
	points := []core.DataPoint{
		{"Experience Level": "Junior", "Count": 30.0},
		{"Experience Level": "Senior", "Count": "12"},
		{"Experience Level": "Lead"},
		{"Count": 4.0},
		{"Experience Level": "Exec", "Count": "n/a"},
	}

	p := Project(ds, points)
	if len(p.Labels) != len(points) || len(p.Series.Data) != len(points) {
		t.Fatalf("expected %d labels and values, got %d and %d", len(points), len(p.Labels), len(p.Series.Data))
	}

	wantLabels := []string{"Junior", "Senior", "Lead", "", "Exec"}
	wantData := []float64{30, 12, 0, 4, 0}
	for i := range points {
		if p.Labels[i] != wantLabels[i] {
			t.Errorf("label %d = %q, want %q", i, p.Labels[i], wantLabels[i])
		}
		if p.Series.Data[i] != wantData[i] {
			t.Errorf("value %d = %v, want %v", i, p.Series.Data[i], wantData[i])
		}
	}
	if p.Invalid != 2 {
		t.Errorf("expected 2 invalid values, got %d", p.Invalid)
	}
	if p.Series.Name != "Candidates" {
		t.Errorf("expected series name Candidates, got %s", p.Series.Name)
	}
}

func TestProject_Empty(t *testing.T) {
	p := Project(dataset(t, core.KindBar), nil)
	if p.Series.Data == nil || len(p.Series.Data) != 0 {
		t.Errorf("expected empty non-nil data, got %#v", p.Series.Data)
	}
	if p.Labels == nil || len(p.Labels) != 0 {
		t.Errorf("expected empty non-nil labels, got %#v", p.Labels)
	}
}

func TestProject_RejectsNonFinite(t *testing.T) {
	p := Project(dataset(t, core.KindBar), []core.DataPoint{
		{"Date": "2024-01-01", "Applications": "NaN"},
		{"Date": "2024-01-02", "Applications": math.Inf(1)},
	})
	for i, v := range p.Series.Data {
		if v != 0 {
			t.Errorf("value %d: expected 0 for non-finite input, got %v", i, v)
		}
	}
	if p.Invalid != 2 {
		t.Errorf("expected 2 invalid values, got %d", p.Invalid)
	}
}

func TestSeries_Total(t *testing.T) {
	s := Series{Data: []float64{1, 2.5, 3.5}}
	if s.Total() != 7 {
		t.Errorf("expected total 7, got %v", s.Total())
	}
	if (Series{}).Total() != 0 {
		t.Error("expected zero total for empty series")
	}
}
