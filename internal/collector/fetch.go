package collector

import (
	"context"
	"time"

	"github.com/newthinker/recruitdash/internal/core"
	"golang.org/x/sync/errgroup"
)

// FetchAll fetches every dataset concurrently and returns one Result per
// dataset, in the order given. A failed fetch is recorded in its Result and
// does not cancel the others.
func FetchAll(ctx context.Context, f Fetcher, datasets []core.Dataset) []core.Result {
	results := make([]core.Result, len(datasets))

	var g errgroup.Group
	for i, ds := range datasets {
		g.Go(func() error {
			results[i] = FetchOne(ctx, f, ds)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// FetchOne fetches a single dataset and records timing.
func FetchOne(ctx context.Context, f Fetcher, ds core.Dataset) core.Result {
	start := time.Now()
	points, err := f.Fetch(ctx, ds)
	return core.Result{
		Kind:      ds.Kind,
		Points:    points,
		Err:       err,
		FetchedAt: start,
		Duration:  time.Since(start),
	}
}
