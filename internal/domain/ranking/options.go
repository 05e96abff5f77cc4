package ranking

import (
	"github.com/okian/heptathlon/internal/domain/scoring"
	"github.com/okian/heptathlon/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithScorer replaces the scorer resolved from the sport identifier.
func WithScorer(s scoring.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithScoringOptions passes options to the sport's scorer constructor.
func WithScoringOptions(opts ...scoring.Option) Option {
	return func(e *Engine) {
		e.scoringOpts = append(e.scoringOpts, opts...)
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder sets where per-result observations are reported.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}
