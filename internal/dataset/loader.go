package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/raphaelgruber/movierec/internal/metrics"
)

// DefaultPath is the dataset location relative to the working directory.
const DefaultPath = "movies.csv"

// Loader reads the dataset once and keeps the result for its lifetime.
// A failed read is not remembered, so the next Load tries again.
// Safe for concurrent use; concurrent callers share a single read.
type Loader struct {
	path    string
	opts    ReadOptions
	logger  *slog.Logger
	metrics *metrics.Collector

	mu     sync.Mutex
	cached *Dataset
}

// NewLoader creates a loader for the dataset at path.
// logger and collector may be nil.
func NewLoader(path string, opts ReadOptions, logger *slog.Logger, collector *metrics.Collector) *Loader {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		path:    path,
		opts:    opts,
		logger:  logger,
		metrics: collector,
	}
}

// Path returns the dataset file path.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the dataset, reading the file on first use.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := ReadFile(l.path, l.opts)
	l.metrics.RecordResult(metrics.OpDatasetLoad, time.Since(start), err)
	if err != nil {
		l.logger.Error("failed to load dataset", "path", l.path, "error", err)
		return nil, err
	}

	l.logger.Info("dataset loaded",
		"path", l.path,
		"movies", ds.Len(),
		"has_overview", ds.HasOverview,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	l.cached = ds
	return ds, nil
}

// Loaded reports whether the dataset has been read successfully.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cached != nil
}
