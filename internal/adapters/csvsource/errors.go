package csvsource

import (
	"errors"
	"fmt"
)

// Sentinel kinds for input errors.
var (
	ErrMalformedRow   = errors.New("malformed row")
	ErrTimestampParse = errors.New("timestamp parse failed")
)

// RowError reports a row without exactly four fields.
type RowError struct {
	Line   int
	Fields int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: expected %d fields, got %d", e.Line, fieldsPerRow, e.Fields)
}

// Is matches ErrMalformedRow.
func (e *RowError) Is(target error) bool { return target == ErrMalformedRow }

// TimestampParseError reports a timestamp not in TimestampLayout.
type TimestampParseError struct {
	Line  int
	Value string
	Err   error
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("line %d: invalid timestamp %q, want %s", e.Line, e.Value, TimestampLayout)
}

// Is matches ErrTimestampParse.
func (e *TimestampParseError) Is(target error) bool { return target == ErrTimestampParse }

// Unwrap returns the time.Parse error.
func (e *TimestampParseError) Unwrap() error { return e.Err }
