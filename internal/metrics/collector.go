// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	Errors    int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	Errors      int64   `json:"errors"`
	TotalTimeMs int64   `json:"total_time_ms"`
	AvgTimeMs   float64 `json:"avg_time_ms"`
	MinTimeMs   int64   `json:"min_time_ms"`
	MaxTimeMs   int64   `json:"max_time_ms"`
}

// Snapshot represents the full server statistics at a point in time.
type Snapshot struct {
	UptimeSeconds  float64            `json:"uptime_seconds"`
	DatasetLoad    *OperationSnapshot `json:"dataset_load,omitempty"`
	FeatureCombine *OperationSnapshot `json:"feature_combine,omitempty"`
	Vectorize      *OperationSnapshot `json:"vectorize,omitempty"`
	Similarity     *OperationSnapshot `json:"similarity,omitempty"`
	Recommend      *OperationSnapshot `json:"recommend,omitempty"`
	Outcomes       map[string]int64   `json:"outcomes,omitempty"`
}

// Operation names for the collector.
const (
	OpDatasetLoad    = "dataset_load"
	OpFeatureCombine = "feature_combine"
	OpVectorize      = "vectorize"
	OpSimilarity     = "similarity"
	OpRecommend      = "recommend"
)

// Query outcomes counted by RecordOutcome.
const (
	OutcomeOK              = "ok"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeNoMatch         = "no_match"
	OutcomeDataUnavailable = "data_unavailable"
)

// Collector aggregates in-memory runtime statistics and mirrors them
// into a private Prometheus registry.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
	outcomes  map[string]int64

	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	queries  *prometheus.CounterVec
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "movierec",
			Name:      "operation_duration_seconds",
			Help:      "Duration of recommender pipeline operations in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		},
		[]string{"operation", "status"},
	)
	queries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movierec",
			Name:      "queries_total",
			Help:      "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"},
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(duration, queries)

	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
		outcomes:  make(map[string]int64),
		registry:  registry,
		duration:  duration,
		queries:   queries,
	}
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{
			MinTime: time.Duration(math.MaxInt64),
		}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for an operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.record(op, duration, nil)
}

// RecordResult records timing for an operation and whether it failed.
func (c *Collector) RecordResult(op string, duration time.Duration, err error) {
	c.record(op, duration, err)
}

func (c *Collector) record(op string, duration time.Duration, err error) {
	if c == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	c.duration.WithLabelValues(op, status).Observe(duration.Seconds())

	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration
	if err != nil {
		m.Errors++
	}

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// RecordOutcome counts a query outcome (see Outcome constants).
func (c *Collector) RecordOutcome(outcome string) {
	if c == nil {
		return
	}
	c.queries.WithLabelValues(outcome).Inc()

	c.mu.Lock()
	c.outcomes[outcome]++
	c.mu.Unlock()
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics) *OperationSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}

	return &OperationSnapshot{
		Count:       m.Count,
		Errors:      m.Errors,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:   m.MinTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var outcomes map[string]int64
	if len(c.outcomes) > 0 {
		outcomes = make(map[string]int64, len(c.outcomes))
		for k, v := range c.outcomes {
			outcomes[k] = v
		}
	}

	return Snapshot{
		UptimeSeconds:  time.Since(c.startTime).Seconds(),
		DatasetLoad:    snapshotOp(c.ops[OpDatasetLoad]),
		FeatureCombine: snapshotOp(c.ops[OpFeatureCombine]),
		Vectorize:      snapshotOp(c.ops[OpVectorize]),
		Similarity:     snapshotOp(c.ops[OpSimilarity]),
		Recommend:      snapshotOp(c.ops[OpRecommend]),
		Outcomes:       outcomes,
	}
}
