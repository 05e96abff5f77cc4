// Package service wires input, scoring, ranking and output into a single
// report run.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/okian/heptathlon/internal/adapters/csvsource"
	"github.com/okian/heptathlon/internal/adapters/report"
	"github.com/okian/heptathlon/internal/domain/model"
	"github.com/okian/heptathlon/internal/domain/ranking"
	"github.com/okian/heptathlon/internal/domain/scoring"
	"github.com/okian/heptathlon/internal/domain/weighting"
	"github.com/okian/heptathlon/pkg/logger"
	"github.com/okian/heptathlon/pkg/metrics"
)

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Records  int
	Days     int
	Athletes int
	Duration time.Duration
}

// Service produces leaderboard reports. A Service may be reused for
// several runs but not concurrently.
type Service struct {
	sport       string
	table       *weighting.Table
	policy      scoring.ParsePolicy
	reader      *csvsource.Reader
	renderer    report.Renderer
	out         io.Writer
	metrics     *metrics.Manager
	metricsFile string
	now         func() time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSport sets the sport identifier used to pick the scorer.
func WithSport(sport string) Option {
	return func(s *Service) {
		if sport != "" {
			s.sport = sport
		}
	}
}

// WithTable sets the weighting table.
func WithTable(t *weighting.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// WithParsePolicy sets how non-numeric values are scored.
func WithParsePolicy(p scoring.ParsePolicy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithRenderer sets the report renderer.
func WithRenderer(r report.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithOutput sets where the report is written.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithMetricsFile makes every run export metrics to path.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now as the source of run timings.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sport:    scoring.SportHeptathlon,
		table:    weighting.Default(),
		policy:   scoring.Permissive,
		reader:   csvsource.NewReader(),
		renderer: report.Text{},
		out:      os.Stdout,
		metrics:  metrics.Default(),
		now:      time.Now,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads the results file at path and writes the report.
func (s *Service) Run(ctx context.Context, path string) (*Summary, error) {
	return s.run(ctx, func() ([]model.Record, error) {
		return s.reader.Load(path)
	})
}

// RunReader is Run for an already open input.
func (s *Service) RunReader(ctx context.Context, src io.Reader) (*Summary, error) {
	return s.run(ctx, func() ([]model.Record, error) {
		return s.reader.Read(src)
	})
}

func (s *Service) run(ctx context.Context, load func() ([]model.Record, error)) (summary *Summary, err error) {
	start := s.now()
	runID := uuid.NewString()
	log := s.logger.With(logger.String("run_id", runID))

	defer func() {
		end := s.now()
		s.metrics.RecordRun(end.Sub(start), err == nil, end)
		if s.metricsFile == "" {
			return
		}
		if werr := s.metrics.WriteTextfile(s.metricsFile); werr != nil {
			log.Warn(ctx, "metrics export failed", logger.String("path", s.metricsFile), logger.Error(werr))
		}
	}()

	if err := scoring.SelfCheck(scoring.NewHeptathlonScorer()); err != nil {
		return nil, err
	}

	engine, err := ranking.NewEngine(s.sport,
		ranking.WithLogger(log),
		ranking.WithRecorder(s.metrics),
		ranking.WithScoringOptions(
			scoring.WithTable(s.table),
			scoring.WithParsePolicy(s.policy),
		),
	)
	if err != nil {
		return nil, err
	}

	records, err := load()
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	log.Debug(ctx, "results loaded", logger.Int("records", len(records)))

	lb, err := engine.Process(ctx, records)
	if err != nil {
		return nil, err
	}

	// Render fully before writing so a failure leaves no partial report.
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, lb); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	if _, err := buf.WriteTo(s.out); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	athletes := 0
	for _, d := range lb.Days() {
		athletes += len(d.Athletes)
	}
	s.metrics.UpdateLeaderboardSize(lb.Len(), athletes)

	summary = &Summary{
		RunID:    runID,
		Records:  len(records),
		Days:     lb.Len(),
		Athletes: athletes,
		Duration: s.now().Sub(start),
	}
	if lb.Empty() {
		log.Info(ctx, "no results", logger.Int("records", len(records)))
	} else {
		log.Info(ctx, "report written",
			logger.Int("days", summary.Days),
			logger.Int("athletes", summary.Athletes),
		)
	}
	return summary, nil
}
