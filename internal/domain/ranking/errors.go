package ranking

import (
	"errors"
	"fmt"
)

// Sentinel kinds for ranking errors.
var (
	ErrRecord = errors.New("record could not be scored")
)

// RecordError identifies the input record that stopped processing.
type RecordError struct {
	Index   int // zero-based position in the input
	Athlete string
	Event   string
	Value   string
	Err     error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s, %s, %q): %v", e.Index+1, e.Athlete, e.Event, e.Value, e.Err)
}

// Is matches ErrRecord.
func (e *RecordError) Is(target error) bool { return target == ErrRecord }

// Unwrap returns the scoring error.
func (e *RecordError) Unwrap() error { return e.Err }
