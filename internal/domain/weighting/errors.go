package weighting

import (
	"errors"
	"fmt"
)

// Sentinel kinds for weighting errors. These allow errors.Is from callers.
var (
	ErrUnknownEvent      = errors.New("unknown event")
	ErrInvalidEventType  = errors.New("invalid event type")
	ErrInvalidDefinition = errors.New("invalid event definition")
)

// UnknownEventError reports an abbreviation that is not in the table.
type UnknownEventError struct {
	Abbreviation string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown event %q", e.Abbreviation)
}

// Is matches ErrUnknownEvent.
func (e *UnknownEventError) Is(target error) bool {
	return target == ErrUnknownEvent
}
