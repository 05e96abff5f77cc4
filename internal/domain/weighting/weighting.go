// Package weighting holds the IAAF coefficient table used to turn raw
// results into points.
package weighting

import (
	"fmt"
	"sort"
	"strings"
)

// EventType classifies an event by the shape of its points formula.
type EventType int

// Supported event types. The zero value is deliberately invalid.
const (
	Running EventType = iota + 1
	Jumping
	Throwing
)

// String returns the lower-case name used in configuration files.
func (t EventType) String() string {
	switch t {
	case Running:
		return "running"
	case Jumping:
		return "jumping"
	case Throwing:
		return "throwing"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	return t >= Running && t <= Throwing
}

// ParseEventType converts a configuration name (case-insensitive) into an EventType.
func ParseEventType(s string) (EventType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "running":
		return Running, nil
	case "jumping":
		return Jumping, nil
	case "throwing":
		return Throwing, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEventType, s)
	}
}

// EventDefinition carries the A, B and C coefficients of one event.
type EventDefinition struct {
	Abbreviation string
	A            float64
	B            float64
	C            float64
	Type         EventType
}

// Table is an immutable lookup of event definitions keyed by lower-case
// abbreviation. The zero value is an empty table.
type Table struct {
	events map[string]EventDefinition
}

// New builds a table from defs. Abbreviations are stored trimmed and
// lower-cased; duplicates and invalid event types are rejected.
func New(defs ...EventDefinition) (*Table, error) {
	t := &Table{events: make(map[string]EventDefinition, len(defs))}
	for _, d := range defs {
		key := normalize(d.Abbreviation)
		if key == "" {
			return nil, fmt.Errorf("%w: empty abbreviation", ErrInvalidDefinition)
		}
		if !d.Type.Valid() {
			return nil, fmt.Errorf("%w: %s has %w", ErrInvalidDefinition, key, ErrInvalidEventType)
		}
		if _, dup := t.events[key]; dup {
			return nil, fmt.Errorf("%w: duplicate abbreviation %s", ErrInvalidDefinition, key)
		}
		d.Abbreviation = key
		t.events[key] = d
	}
	return t, nil
}

// Default returns the heptathlon table.
func Default() *Table {
	t, err := New(heptathlon...)
	if err != nil {
		// The literal table below is known to be valid.
		panic(err)
	}
	return t
}

var heptathlon = []EventDefinition{ //nolint:gochecknoglobals // read-only seed for Default
	{Abbreviation: "200m", A: 4.99087, B: 42.5, C: 1.81, Type: Running},
	{Abbreviation: "800m", A: 0.11193, B: 254, C: 1.88, Type: Running},
	{Abbreviation: "100m", A: 9.23076, B: 26.7, C: 1.835, Type: Running},
	{Abbreviation: "high", A: 1.84523, B: 75.0, C: 1.348, Type: Jumping},
	{Abbreviation: "long", A: 0.188807, B: 210, C: 1.41, Type: Jumping},
	{Abbreviation: "shot", A: 56.0211, B: 1.50, C: 1.05, Type: Throwing},
	{Abbreviation: "javelin", A: 15.9803, B: 3.80, C: 1.04, Type: Throwing},
}

// Lookup returns the definition for abbreviation. Callers are expected to
// normalize case first; lookup is exact.
func (t *Table) Lookup(abbreviation string) (EventDefinition, error) {
	if t != nil {
		if d, ok := t.events[abbreviation]; ok {
			return d, nil
		}
	}
	return EventDefinition{}, &UnknownEventError{Abbreviation: abbreviation}
}

// Merge returns a new table containing t's definitions with overrides
// applied on top. t is left untouched.
func (t *Table) Merge(overrides ...EventDefinition) (*Table, error) {
	out := &Table{events: make(map[string]EventDefinition, t.Len()+len(overrides))}
	if t != nil {
		for k, d := range t.events {
			out.events[k] = d
		}
	}
	extra, err := New(overrides...)
	if err != nil {
		return nil, err
	}
	for k, d := range extra.events {
		out.events[k] = d
	}
	return out, nil
}

// Abbreviations lists the known abbreviations in lexical order.
func (t *Table) Abbreviations() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.events))
	for k := range t.events {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of definitions.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.events)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
