// Package metrics provides Prometheus metrics for scoring runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the collectors for one registry.
type Manager struct {
	namespace     string
	subsystem     string
	pointsBuckets []float64
	registry      *prometheus.Registry

	// Scoring
	recordsProcessed prometheus.Counter
	pointsTotal      *prometheus.CounterVec
	eventPoints      *prometheus.HistogramVec
	scoringErrors    *prometheus.CounterVec

	// Leaderboard shape
	days     prometheus.Gauge
	athletes prometheus.Gauge

	// Run outcome
	runDuration      prometheus.Gauge
	runSuccess       prometheus.Gauge
	runLastTimestamp prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager. Without WithPrometheusRegistry
// it registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:     "heptathlon",
		subsystem:     "scoring",
		pointsBuckets: []float64{0, 100, 200, 400, 600, 800, 1000, 1200, 1400},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_processed_total",
		Help:      "Total number of result records scored",
	})

	m.pointsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "points_total",
		Help:      "Total points awarded by event",
	}, []string{"event"})

	m.eventPoints = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_points",
		Help:      "Distribution of points awarded per result",
		Buckets:   m.pointsBuckets,
	}, []string{"event"})

	m.scoringErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total number of records that could not be scored, by kind",
	}, []string{"kind"})

	m.days = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_days",
		Help:      "Number of days in the last leaderboard",
	})

	m.athletes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_athletes",
		Help:      "Number of athlete-day entries in the last leaderboard",
	})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_duration_seconds",
		Help:      "Wall time of the last run",
	})

	m.runSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_success",
		Help:      "1 if the last run produced a report, 0 otherwise",
	})

	m.runLastTimestamp = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last run finished",
	})
}

// RecordResult counts one scored record.
func (m *Manager) RecordResult(event string, points int) {
	m.recordsProcessed.Inc()
	m.pointsTotal.WithLabelValues(event).Add(float64(points))
	m.eventPoints.WithLabelValues(event).Observe(float64(points))
}

// RecordScoringError counts a record rejected with the given error kind.
func (m *Manager) RecordScoringError(kind string) {
	m.scoringErrors.WithLabelValues(kind).Inc()
}

// UpdateLeaderboardSize sets the day and athlete gauges.
func (m *Manager) UpdateLeaderboardSize(days, athletes int) {
	m.days.Set(float64(days))
	m.athletes.Set(float64(athletes))
}

// RecordRun stores the outcome of a run finished at end.
func (m *Manager) RecordRun(duration time.Duration, success bool, end time.Time) {
	m.runDuration.Set(duration.Seconds())
	if success {
		m.runSuccess.Set(1)
	} else {
		m.runSuccess.Set(0)
	}
	m.runLastTimestamp.Set(float64(end.Unix()))
}

// WriteTextfile writes every metric of the manager's registry to path in
// the text exposition format read by node_exporter's textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}

// Registry returns the registry the manager's collectors live in.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
