package scoring

import (
	"errors"
	"fmt"

	"github.com/okian/heptathlon/internal/domain/weighting"
)

// Sentinel kinds for scoring errors. These allow errors.Is from callers.
var (
	ErrUnsupportedEventType    = errors.New("unsupported event type")
	ErrUnsupportedSport        = errors.New("unsupported sport")
	ErrInvalidScoreComputation = errors.New("invalid score computation")
	ErrInvalidValue            = errors.New("invalid result value")
	ErrSelfCheck               = errors.New("scoring self-check failed")
)

// UnsupportedEventTypeError is returned for an event whose type has no formula.
type UnsupportedEventTypeError struct {
	Abbreviation string
	Type         weighting.EventType
}

func (e *UnsupportedEventTypeError) Error() string {
	if e.Abbreviation == "" {
		return fmt.Sprintf("unsupported event type %s", e.Type)
	}
	return fmt.Sprintf("unsupported event type %s for %q", e.Type, e.Abbreviation)
}

// Is matches ErrUnsupportedEventType.
func (e *UnsupportedEventTypeError) Is(target error) bool { return target == ErrUnsupportedEventType }

// UnsupportedSportError is returned by ForSport for unknown sport identifiers.
type UnsupportedSportError struct {
	Sport string
}

func (e *UnsupportedSportError) Error() string {
	return fmt.Sprintf("unsupported sport %q", e.Sport)
}

// Is matches ErrUnsupportedSport.
func (e *UnsupportedSportError) Is(target error) bool { return target == ErrUnsupportedSport }

// InvalidScoreComputationError is returned when the formula yields NaN or
// infinity, typically a negative base raised to a fractional exponent, or a
// finite result that does not fit in an int.
type InvalidScoreComputationError struct {
	Abbreviation string
	Value        string
	Base         float64
	Points       float64 // set when the result was finite but out of range
}

func (e *InvalidScoreComputationError) Error() string {
	if e.Points != 0 {
		return fmt.Sprintf("cannot score %q in %s: %g points is out of range", e.Value, e.Abbreviation, e.Points)
	}
	return fmt.Sprintf("cannot score %q in %s: formula base %g has no real power", e.Value, e.Abbreviation, e.Base)
}

// Is matches ErrInvalidScoreComputation.
func (e *InvalidScoreComputationError) Is(target error) bool {
	return target == ErrInvalidScoreComputation
}

// InvalidValueError is returned under the Strict policy for non-numeric values.
type InvalidValueError struct {
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid result value %q: %v", e.Value, e.Err)
}

// Is matches ErrInvalidValue.
func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// Unwrap returns the underlying parse error.
func (e *InvalidValueError) Unwrap() error { return e.Err }

// SelfCheckError reports a scorer that disagrees with the reference result.
type SelfCheckError struct {
	Expected int
	Actual   int
	Err      error
}

func (e *SelfCheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unit test failed. expected %d: %v", e.Expected, e.Err)
	}
	return fmt.Sprintf("unit test failed. expected %d, actual %d", e.Expected, e.Actual)
}

// Is matches ErrSelfCheck.
func (e *SelfCheckError) Is(target error) bool { return target == ErrSelfCheck }

// Unwrap returns the scoring error, if any.
func (e *SelfCheckError) Unwrap() error { return e.Err }
