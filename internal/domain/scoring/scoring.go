// Package scoring turns raw event results into IAAF combined-events points.
//
// For running events the formula is P = A(B-T)^C, where T is the time in
// seconds. Jumps use P = A(M-B)^C with M in centimetres, and throws use
// P = A(D-B)^C with D in metres. Points are floored to an integer.
package scoring

import (
	"math"
	"strings"

	"github.com/okian/heptathlon/internal/domain/weighting"
)

// Sport identifiers accepted by ForSport.
const (
	SportHeptathlon = "heptathlon"
)

// Reference result checked before every run: 16.2s in the 100m is 690 points.
const (
	selfCheckEvent = "100m"
	selfCheckValue = "16.2"
	selfCheckScore = 690
)

// Scorer computes the points for a single event result.
type Scorer interface {
	// Score returns the points for rawValue in the event identified by
	// abbreviation. The abbreviation must already be lower-cased.
	Score(abbreviation, rawValue string) (int, error)
}

// Option applies a configuration option to the HeptathlonScorer.
type Option func(*HeptathlonScorer)

// WithTable injects the weighting table. A nil table is ignored.
func WithTable(t *weighting.Table) Option {
	return func(s *HeptathlonScorer) {
		if t != nil {
			s.table = t
		}
	}
}

// WithParsePolicy selects how non-numeric raw values are handled.
func WithParsePolicy(p ParsePolicy) Option {
	return func(s *HeptathlonScorer) {
		s.policy = p
	}
}

// HeptathlonScorer implements Scorer for the seven heptathlon events, or any
// running/jumping/throwing events present in its table.
type HeptathlonScorer struct {
	table  *weighting.Table
	policy ParsePolicy
}

// NewHeptathlonScorer creates a scorer backed by the default table and the
// permissive parse policy unless overridden.
func NewHeptathlonScorer(opts ...Option) *HeptathlonScorer {
	s := &HeptathlonScorer{
		table:  weighting.Default(),
		policy: Permissive,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score implements Scorer.
func (s *HeptathlonScorer) Score(abbreviation, rawValue string) (int, error) {
	def, err := s.table.Lookup(abbreviation)
	if err != nil {
		return 0, err
	}

	value, err := Normalize(def.Type, rawValue, s.policy)
	if err != nil {
		return 0, err
	}

	var base float64
	switch def.Type {
	case weighting.Running:
		base = def.B - value
	case weighting.Jumping, weighting.Throwing:
		base = value - def.B
	default:
		return 0, &UnsupportedEventTypeError{Abbreviation: abbreviation, Type: def.Type}
	}

	points := def.A * math.Pow(base, def.C)
	if math.IsNaN(points) || math.IsInf(points, 0) {
		return 0, &InvalidScoreComputationError{Abbreviation: abbreviation, Value: rawValue, Base: base}
	}
	// float64(math.MaxInt) rounds up to 2^63, so >= keeps the conversion defined.
	if points >= math.MaxInt || points < math.MinInt {
		return 0, &InvalidScoreComputationError{Abbreviation: abbreviation, Value: rawValue, Base: base, Points: points}
	}
	return int(math.Floor(points)), nil
}

// ForSport returns the scorer registered for sport.
func ForSport(sport string, opts ...Option) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(sport)) {
	case SportHeptathlon:
		return NewHeptathlonScorer(opts...), nil
	default:
		return nil, &UnsupportedSportError{Sport: sport}
	}
}

// SelfCheck verifies s against a known reference result. A failure means
// the table or formula has been misconfigured.
func SelfCheck(s Scorer) error {
	got, err := s.Score(selfCheckEvent, selfCheckValue)
	if err != nil {
		return &SelfCheckError{Expected: selfCheckScore, Err: err}
	}
	if got != selfCheckScore {
		return &SelfCheckError{Expected: selfCheckScore, Actual: got}
	}
	return nil
}
