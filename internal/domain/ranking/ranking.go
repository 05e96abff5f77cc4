// Package ranking aggregates scored results into per-day leaderboards.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/heptathlon/internal/domain/model"
	"github.com/okian/heptathlon/internal/domain/scoring"
	"github.com/okian/heptathlon/internal/domain/weighting"
	"github.com/okian/heptathlon/pkg/logger"
)

// Recorder receives an observation for every record the engine handles.
type Recorder interface {
	RecordResult(event string, points int)
	RecordScoringError(kind string)
}

type nopRecorder struct{}

func (nopRecorder) RecordResult(string, int)  {}
func (nopRecorder) RecordScoringError(string) {}

// Engine scores records for one sport and builds the daily leaderboard.
// An Engine is not safe for concurrent use.
type Engine struct {
	sport       string
	scorer      scoring.Scorer
	scoringOpts []scoring.Option
	logger      logger.Logger
	recorder    Recorder
}

// NewEngine creates an engine for sport. Only sports known to
// scoring.ForSport are accepted, even when WithScorer is supplied.
func NewEngine(sport string, opts ...Option) (*Engine, error) {
	e := &Engine{
		sport:    sport,
		logger:   logger.Nop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}

	scorer, err := scoring.ForSport(sport, e.scoringOpts...)
	if err != nil {
		return nil, err
	}
	if e.scorer == nil {
		e.scorer = scorer
	}
	return e, nil
}

// Process scores records in input order and returns the ranked leaderboard.
// Processing stops at the first record that cannot be scored; no partial
// leaderboard is returned in that case. An empty input yields an empty
// leaderboard, see Leaderboard.Empty.
func (e *Engine) Process(ctx context.Context, records []model.Record) (*Leaderboard, error) {
	lb := NewLeaderboard()

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("process records: %w", err)
		}

		name := normalize(r.Athlete)
		event := normalize(r.Event)
		value := strings.TrimSpace(r.Value)
		day := model.DayKey(r.Timestamp)

		// Score before touching the aggregate so a bad record leaves no trace.
		points, err := e.scorer.Score(event, value)
		if err != nil {
			e.recorder.RecordScoringError(ErrorKind(err))
			e.logger.Debug(ctx, "record rejected",
				logger.Int("index", i),
				logger.String("athlete", name),
				logger.String("event", event),
				logger.Error(err),
			)
			return nil, &RecordError{Index: i, Athlete: name, Event: event, Value: value, Err: err}
		}

		lb.athlete(day, name).AddScore(points)
		e.recorder.RecordResult(event, points)
		e.logger.Debug(ctx, "record scored",
			logger.String("day", day),
			logger.String("athlete", name),
			logger.String("event", event),
			logger.Int("points", points),
		)
	}

	lb.rank()
	e.logger.Info(ctx, "records processed",
		logger.String("sport", e.sport),
		logger.Int("records", len(records)),
		logger.Int("days", lb.Len()),
	)
	return lb, nil
}

// ErrorKind classifies a scoring error into a short label for metrics.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, weighting.ErrUnknownEvent):
		return "unknown_event"
	case errors.Is(err, scoring.ErrUnsupportedEventType):
		return "unsupported_event_type"
	case errors.Is(err, scoring.ErrInvalidScoreComputation):
		return "invalid_computation"
	case errors.Is(err, scoring.ErrInvalidValue):
		return "invalid_value"
	default:
		return "other"
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
