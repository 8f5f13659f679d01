package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"bikeshare-dashboard/internal/dataset"
	"bikeshare-dashboard/internal/models"
	"bikeshare-dashboard/internal/observability"
)

var (
	ErrNotLoaded      = errors.New("dataset not loaded")
	ErrUnknownVariant = errors.New("unknown dashboard variant")
)

// Analytics holds the result of the most recent load of the data file,
// either a dataset or the error that prevented one. Every query filters
// and aggregates that snapshot from scratch.
type Analytics struct {
	mu       sync.RWMutex
	data     *dataset.Dataset
	loadErr  error
	csvPath  string
	loadedAt time.Time
	reloads  atomic.Int64
	logger   *slog.Logger
	metrics  *observability.Metrics
}

type Option func(*Analytics)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analytics) { a.logger = logger }
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(a *Analytics) { a.metrics = metrics }
}

func NewAnalytics(opts ...Option) *Analytics {
	a := &Analytics{
		loadErr: ErrNotLoaded,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetData installs an already loaded dataset.
func (a *Analytics) SetData(ds *dataset.Dataset) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data = ds
	a.loadErr = nil
	if ds == nil {
		a.loadErr = ErrNotLoaded
	}
	a.loadedAt = time.Now()
}

// LoadFromCSV replaces the snapshot with the content of filename. A failed
// load replaces it too: the dashboard reports the failure instead of
// serving stale data.
func (a *Analytics) LoadFromCSV(ctx context.Context, filename string) error {
	start := time.Now()
	a.logger.Info("loading csv file", "filename", filename)

	ds, err := dataset.Load(ctx, filename)

	records := 0
	if ds != nil {
		records = len(ds.Records)
	}
	a.metrics.ObserveLoad(records, err)

	a.mu.Lock()
	a.csvPath = filename
	a.data = ds
	a.loadErr = err
	a.loadedAt = time.Now()
	a.mu.Unlock()

	if err != nil {
		return fmt.Errorf("load %s: %w", filename, err)
	}

	a.logger.Info("csv loading complete",
		"records", records,
		"min_date", ds.MinDate.Format(time.DateOnly),
		"max_date", ds.MaxDate.Format(time.DateOnly),
		"duration", time.Since(start))
	return nil
}

// Reload loads the file of the last LoadFromCSV call again.
func (a *Analytics) Reload(ctx context.Context) error {
	a.mu.RLock()
	path := a.csvPath
	a.mu.RUnlock()

	if path == "" {
		return ErrNotLoaded
	}
	a.reloads.Add(1)
	return a.LoadFromCSV(ctx, path)
}

// Watch reloads the data file whenever it changes, until ctx is done.
func (a *Analytics) Watch(ctx context.Context, debounce time.Duration) error {
	a.mu.RLock()
	path := a.csvPath
	a.mu.RUnlock()

	if path == "" {
		return ErrNotLoaded
	}

	w, err := dataset.NewWatcher(path, debounce, a.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	a.logger.Info("watching data file", "filename", path)
	return w.Watch(ctx, func(ctx context.Context) {
		if err := a.Reload(ctx); err != nil {
			a.logger.Warn("reload failed", "error", err)
		}
	})
}

// Dataset returns the current snapshot or the error of the last load.
func (a *Analytics) Dataset() (*dataset.Dataset, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.loadErr != nil {
		return nil, a.loadErr
	}
	return a.data, nil
}

// View builds one render pass of the named variant.
func (a *Analytics) View(variant string, c models.Criteria) (*View, error) {
	v, ok := LookupVariant(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	ds, err := a.Dataset()
	if err != nil {
		return nil, err
	}
	return Build(ds, v, c)
}

// Tables builds every table for the given selection.
func (a *Analytics) Tables(c models.Criteria) (*View, error) {
	ds, err := a.Dataset()
	if err != nil {
		return nil, err
	}
	return Build(ds, tableVariant, c)
}

// Utility method for monitoring
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := map[string]any{
		"csv_file":  a.csvPath,
		"loaded_at": a.loadedAt,
		"reloads":   a.reloads.Load(),
	}
	if a.loadErr != nil {
		stats["last_error"] = a.loadErr.Error()
		stats["record_count"] = 0
		return stats
	}

	stats["record_count"] = len(a.data.Records)
	stats["min_date"] = a.data.MinDate.Format(time.DateOnly)
	stats["max_date"] = a.data.MaxDate.Format(time.DateOnly)
	stats["seasons"] = len(a.data.Values(dataset.ColSeason))
	stats["years"] = len(a.data.Values(dataset.ColYear))
	return stats
}
