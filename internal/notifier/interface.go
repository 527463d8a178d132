package notifier

import (
	"context"
	"time"

	"github.com/newthinker/recruitdash/internal/core"
)

// Event reports that a dataset's panel changed state between refresh cycles.
type Event struct {
	Dataset core.Kind `json:"dataset"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier delivers dataset state events.
type Notifier interface {
	// Name returns the unique identifier for this notifier
	Name() string

	// Notify sends one event
	Notify(ctx context.Context, ev Event) error
}
