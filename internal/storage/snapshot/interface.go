// internal/storage/snapshot/interface.go
package snapshot

import (
	"context"
	"time"

	"github.com/newthinker/recruitdash/internal/core"
)

// Snapshot is the last successfully fetched copy of one dataset.
type Snapshot struct {
	Kind      core.Kind        `json:"kind"`
	Points    []core.DataPoint `json:"points"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Store keeps the last-good snapshot per dataset.
type Store interface {
	// Save replaces the snapshot for its kind.
	Save(ctx context.Context, snap Snapshot) error

	// Load returns the snapshot for kind; ok is false when none exists.
	Load(ctx context.Context, kind core.Kind) (snap Snapshot, ok bool, err error)
}

// clonePoints copies the slice and each record so stored snapshots are not
// aliased by callers.
func clonePoints(points []core.DataPoint) []core.DataPoint {
	out := make([]core.DataPoint, len(points))
	for i, p := range points {
		cp := make(core.DataPoint, len(p))
		for k, v := range p {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}
