package collector

import (
	"context"

	"github.com/newthinker/recruitdash/internal/core"
)

// Fetcher retrieves the raw records of one dataset.
type Fetcher interface {
	// Name identifies the fetcher in the registry and in logs.
	Name() string

	// Fetch returns the dataset's records in response order. Transport,
	// status and decoding failures are returned as errors, never swallowed.
	Fetch(ctx context.Context, ds core.Dataset) ([]core.DataPoint, error)
}
