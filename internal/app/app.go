package app

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/newthinker/recruitdash/internal/chart"
	"github.com/newthinker/recruitdash/internal/collector"
	"github.com/newthinker/recruitdash/internal/core"
	"github.com/newthinker/recruitdash/internal/logger"
	"github.com/newthinker/recruitdash/internal/metrics"
	"github.com/newthinker/recruitdash/internal/notifier"
	"github.com/newthinker/recruitdash/internal/storage/snapshot"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// State describes where a panel's data came from.
type State string

const (
	StateReady State = "ready"
	StateStale State = "stale"
	StateError State = "error"
	StateEmpty State = "empty"
)

var headings = map[core.Kind]string{
	core.KindBar:   "Applications by Department",
	core.KindRadar: "Candidate Skills Assessment",
	core.KindLine:  "Hiring Trends",
}

// Heading returns the panel heading for kind.
func Heading(kind core.Kind) string {
	return headings[kind]
}

// Panel is one dashboard tile: a built chart plus the state of its data.
type Panel struct {
	Kind      core.Kind   `json:"kind"`
	Heading   string      `json:"heading"`
	Chart     chart.Chart `json:"chart"`
	State     State       `json:"state"`
	Error     string      `json:"error,omitempty"`
	FetchedAt time.Time   `json:"fetchedAt,omitzero"`
	Total     string      `json:"total"`
}

// App loads dashboard panels and optionally keeps snapshots warm in the
// background.
type App struct {
	fetcher  collector.Fetcher
	store    snapshot.Store
	metrics  *metrics.Registry
	notifier *notifier.Registry
	logger   *zap.Logger
	datasets []core.Dataset
	interval time.Duration
	printer  *message.Printer

	mu          sync.RWMutex
	running     bool
	cancel      context.CancelFunc
	lastRefresh time.Time
	states      map[core.Kind]State
	// cycleStates is the state of each dataset after the last refresh cycle.
	cycleStates map[core.Kind]State
}

// Option configures an App.
type Option func(*App)

// WithMetrics records fetch and refresh metrics into reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(a *App) { a.metrics = reg }
}

// WithNotifier sends an event when a dataset changes state between refresh
// cycles.
func WithNotifier(reg *notifier.Registry) Option {
	return func(a *App) { a.notifier = reg }
}

// WithInterval sets the background refresh interval. Zero disables it.
func WithInterval(d time.Duration) Option {
	return func(a *App) { a.interval = d }
}

// WithDatasets overrides the datasets loaded on each cycle.
func WithDatasets(ds []core.Dataset) Option {
	return func(a *App) { a.datasets = ds }
}

// New creates an App. A nil store falls back to an in-memory one.
func New(fetcher collector.Fetcher, store snapshot.Store, log *zap.Logger, opts ...Option) *App {
	if store == nil {
		store = snapshot.NewMemoryStore()
	}
	a := &App{
		fetcher:  fetcher,
		store:    store,
		logger:   logger.OrNop(log),
		datasets: core.Datasets(),
		printer:  message.NewPrinter(language.English),
		states:   make(map[core.Kind]State),

		cycleStates: make(map[core.Kind]State),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load fetches every dataset concurrently and returns one panel per dataset,
// in dataset order. Failures never abort the load; they show up in panel state.
// A load whose ctx ended (a client that went away, shutdown) leaves no trace
// in metrics, logs, snapshots or dataset state.
func (a *App) Load(ctx context.Context) []Panel {
	results := collector.FetchAll(ctx, a.fetcher, a.datasets)

	panels := make([]Panel, len(results))
	if err := ctx.Err(); err != nil {
		for i, res := range results {
			panels[i] = a.abandoned(a.datasets[i], res, err)
		}
		return panels
	}

	for i, res := range results {
		panels[i] = a.panel(ctx, a.datasets[i], res)
	}
	a.remember(panels)
	return panels
}

// LoadOne loads the panel for a single dataset.
func (a *App) LoadOne(ctx context.Context, kind core.Kind) (Panel, error) {
	for _, ds := range a.datasets {
		if ds.Kind == kind {
			res := collector.FetchOne(ctx, a.fetcher, ds)
			if err := ctx.Err(); err != nil {
				return a.abandoned(ds, res, err), nil
			}
			p := a.panel(ctx, ds, res)
			a.remember([]Panel{p})
			return p, nil
		}
	}
	return Panel{}, core.WrapError(core.ErrDatasetNotFound, fmt.Errorf("kind %q", kind))
}

func (a *App) panel(ctx context.Context, ds core.Dataset, res core.Result) Panel {
	p := Panel{Kind: ds.Kind, Heading: Heading(ds.Kind)}
	a.recordFetch(res)

	if res.OK() {
		c, err := chart.Build(ds, res.Points)
		if err != nil {
			return a.failed(ctx, ds, p, err)
		}
		snap := snapshot.Snapshot{Kind: ds.Kind, Points: res.Points, FetchedAt: res.FetchedAt}
		if err := a.store.Save(ctx, snap); err != nil {
			a.logger.Warn("failed to save snapshot",
				zap.String("dataset", string(ds.Kind)),
				zap.Error(err),
			)
		}

		p.Chart = c
		p.FetchedAt = res.FetchedAt
		p.State = StateReady
		if len(res.Points) == 0 {
			p.State = StateEmpty
		}
		if c.Invalid > 0 {
			a.logger.Debug("points with unreadable values",
				zap.String("dataset", string(ds.Kind)),
				zap.Int("count", c.Invalid),
			)
		}
		p.Total = a.total(c)
		return p
	}

	a.logger.Warn("dataset fetch failed",
		zap.String("dataset", string(ds.Kind)),
		zap.Duration("duration", res.Duration),
		zap.Error(res.Err),
	)
	return a.failed(ctx, ds, p, res.Err)
}

// failed fills p from the last-good snapshot, or with an empty chart.
func (a *App) failed(ctx context.Context, ds core.Dataset, p Panel, cause error) Panel {
	p.Error = cause.Error()

	snap, ok, err := a.store.Load(ctx, ds.Kind)
	if err != nil {
		a.logger.Warn("failed to load snapshot",
			zap.String("dataset", string(ds.Kind)),
			zap.Error(err),
		)
	}
	if ok {
		if c, err := chart.Build(ds, snap.Points); err == nil {
			p.Chart = c
			p.State = StateStale
			p.FetchedAt = snap.FetchedAt
			p.Total = a.total(c)
			if a.metrics != nil {
				a.metrics.RecordSnapshotFallback(string(ds.Kind))
			}
			return p
		}
	}

	// Empty always succeeds for a known dataset.
	p.Chart, _ = chart.Empty(ds)
	p.State = StateError
	p.Total = a.total(p.Chart)
	return p
}

// abandoned builds a panel for a canceled load without touching metrics,
// snapshots or state.
func (a *App) abandoned(ds core.Dataset, res core.Result, cause error) Panel {
	p := Panel{Kind: ds.Kind, Heading: Heading(ds.Kind)}
	if res.OK() {
		if c, err := chart.Build(ds, res.Points); err == nil {
			p.Chart = c
			p.FetchedAt = res.FetchedAt
			p.State = StateReady
			if len(res.Points) == 0 {
				p.State = StateEmpty
			}
			p.Total = a.total(c)
			return p
		}
	} else {
		cause = res.Err
	}

	p.Error = cause.Error()
	p.Chart, _ = chart.Empty(ds)
	p.State = StateError
	p.Total = a.total(p.Chart)
	return p
}

func (a *App) recordFetch(res core.Result) {
	if a.metrics == nil {
		return
	}
	a.metrics.RecordFetch(string(res.Kind), res.OK(), len(res.Points), res.Duration.Seconds())
}

func (a *App) total(c chart.Chart) string {
	if len(c.Series) == 0 {
		return a.printer.Sprintf("%d", 0)
	}
	t := c.Series[0].Total()
	if t == math.Trunc(t) && math.Abs(t) < math.MaxInt64 {
		return a.printer.Sprintf("%d", int64(t))
	}
	return a.printer.Sprintf("%.2f", t)
}

func (a *App) remember(panels []Panel) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range panels {
		a.states[p.Kind] = p.State
	}
}

// Start runs the refresh loop until ctx is canceled or Stop is called.
// It returns immediately when the interval is zero.
func (a *App) Start(ctx context.Context) error {
	if a.interval <= 0 {
		a.logger.Info("background refresh disabled")
		return nil
	}

	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("app already running")
	}
	a.running = true

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	a.logger.Info("background refresh starting",
		zap.Int("datasets", len(a.datasets)),
		zap.Duration("interval", a.interval),
	)

	// Warm snapshots before the first tick
	a.RunOnce(ctx)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("background refresh stopped")
			a.mu.Lock()
			a.running = false
			a.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			a.RunOnce(ctx)
		}
	}
}

// Stop stops the refresh loop.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// RunOnce performs a single refresh cycle and returns the panels it built.
func (a *App) RunOnce(ctx context.Context) []Panel {
	panels := a.Load(ctx)
	if ctx.Err() != nil {
		a.logger.Debug("refresh cycle abandoned", zap.Error(ctx.Err()))
		return panels
	}

	a.mu.Lock()
	a.lastRefresh = time.Now()
	events := a.transitions(panels, a.lastRefresh)
	a.mu.Unlock()

	if a.metrics != nil {
		a.metrics.RecordRefreshCycle()
	}
	a.notify(ctx, events)

	failed := 0
	for _, p := range panels {
		if p.State == StateError || p.State == StateStale {
			failed++
		}
	}
	a.logger.Debug("refresh cycle complete",
		zap.Int("panels", len(panels)),
		zap.Int("failed", failed),
	)
	return panels
}

// transitions records this cycle's states and returns an event for each
// dataset whose state changed. A dataset seen for the first time only
// produces an event when it failed. Callers hold a.mu.
func (a *App) transitions(panels []Panel, at time.Time) []notifier.Event {
	var events []notifier.Event
	for _, p := range panels {
		prev, seen := a.cycleStates[p.Kind]
		a.cycleStates[p.Kind] = p.State
		if prev == p.State {
			continue
		}
		if !seen && (p.State == StateReady || p.State == StateEmpty) {
			continue
		}
		events = append(events, notifier.Event{
			Dataset: p.Kind,
			From:    string(prev),
			To:      string(p.State),
			Error:   p.Error,
			At:      at,
		})
	}
	return events
}

func (a *App) notify(ctx context.Context, events []notifier.Event) {
	if a.notifier == nil {
		return
	}
	for _, ev := range events {
		for name, err := range a.notifier.NotifyAll(ctx, ev) {
			a.logger.Warn("notification failed",
				zap.String("notifier", name),
				zap.String("dataset", string(ev.Dataset)),
				zap.Error(err),
			)
		}
	}
}

// Stats returns the refresh loop status and the last state of each dataset.
func (a *App) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	states := make(map[string]string, len(a.states))
	for k, s := range a.states {
		states[string(k)] = string(s)
	}

	stats := map[string]any{
		"running":  a.running,
		"interval": a.interval.String(),
		"fetcher":  a.fetcher.Name(),
		"datasets": states,
	}
	if !a.lastRefresh.IsZero() {
		stats["last_refresh"] = a.lastRefresh
	}
	return stats
}
