// Package model contains domain models passed between layers.
package model

import "time"

// DayKeyLayout formats a timestamp as the day a result belongs to, e.g. "05 Jun 2016".
const DayKeyLayout = "02 Jan 2006"

// Record is one raw result row as read from the input.
// Values are kept as strings; units are resolved by the scorer.
type Record struct {
	Athlete   string    // athlete name as written in the source
	Event     string    // event abbreviation, e.g. "100m", "long"
	Value     string    // raw result, e.g. "16.2", "2:05", "6.5m"
	Timestamp time.Time // when the result was recorded
}

// DayKey truncates ts to its calendar date and formats it with DayKeyLayout.
// Results from the same date share a key whatever their time of day.
func DayKey(ts time.Time) string {
	return ts.Format(DayKeyLayout)
}

// Athlete accumulates one athlete's points for a single day.
type Athlete struct {
	name  string
	score int
}

// NewAthlete returns an aggregate for name with a zero score.
func NewAthlete(name string) *Athlete {
	return &Athlete{name: name}
}

// Name returns the athlete's name.
func (a *Athlete) Name() string { return a.name }

// Score returns the running total.
func (a *Athlete) Score() int { return a.score }

// AddScore adds delta to the total. Any integer is accepted.
func (a *Athlete) AddScore(delta int) {
	a.score += delta
}
