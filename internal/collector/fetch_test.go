package collector

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/newthinker/recruitdash/internal/core"
)

type scriptedFetcher struct {
	calls  atomic.Int32
	points map[core.Kind][]core.DataPoint
	errs   map[core.Kind]error
	delay  map[core.Kind]time.Duration
}

func (s *scriptedFetcher) Name() string { return "scripted" }
func (s *scriptedFetcher) Fetch(ctx context.Context, ds core.Dataset) ([]core.DataPoint, error) {
	s.calls.Add(1)
	if d := s.delay[ds.Kind]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := s.errs[ds.Kind]; err != nil {
		return nil, err
	}
	return s.points[ds.Kind], nil
}

func TestFetchAll_PreservesDatasetOrder(t *testing.T) {
	f := &scriptedFetcher{
		points: map[core.Kind][]core.DataPoint{
			core.KindBar:   {{"Date": "2024-01-01", "Applications": 5.0}},
			core.KindRadar: {{"Experience Level": "Senior", "Count": 3.0}},
			core.KindLine:  {},
		},
		// Finish in reverse order
		delay: map[core.Kind]time.Duration{
			core.KindBar:   30 * time.Millisecond,
			core.KindRadar: 15 * time.Millisecond,
		},
	}

	results := FetchAll(context.Background(), f, core.Datasets())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, kind := range core.Kinds {
		if results[i].Kind != kind {
			t.Errorf("result %d: expected %s, got %s", i, kind, results[i].Kind)
		}
		if !results[i].OK() {
			t.Errorf("result %d: unexpected error %v", i, results[i].Err)
		}
	}
	if f.calls.Load() != 3 {
		t.Errorf("expected 3 fetches, got %d", f.calls.Load())
	}
}

func TestFetchAll_FailureIsolated(t *testing.T) {
	boom := core.WrapError(core.ErrFetchFailed, errors.New("boom"))
	f := &scriptedFetcher{
		points: map[core.Kind][]core.DataPoint{
			core.KindBar:  {{"Date": "2024-01-01", "Applications": 5.0}},
			core.KindLine: {{"Date": "2024-01-01", "LinkedIn Applicants": 2.0}},
		},
		errs: map[core.Kind]error{core.KindRadar: boom},
	}

	results := FetchAll(context.Background(), f, core.Datasets())
	if !results[0].OK() || !results[2].OK() {
		t.Errorf("bar and line should succeed: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, core.ErrFetchFailed) {
		t.Errorf("radar should fail with ErrFetchFailed, got %v", results[1].Err)
	}
	if len(results[0].Points) != 1 {
		t.Errorf("expected bar points to be kept")
	}
}

func TestFetchOne_RecordsTiming(t *testing.T) {
	f := &scriptedFetcher{delay: map[core.Kind]time.Duration{core.KindBar: 10 * time.Millisecond}}
	ds, _ := core.DatasetFor(core.KindBar)

	r := FetchOne(context.Background(), f, ds)
	if r.Duration < 10*time.Millisecond {
		t.Errorf("expected duration >= 10ms, got %s", r.Duration)
	}
	if r.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}
