package ranking

import (
	"sort"

	"github.com/okian/heptathlon/internal/domain/model"
	"github.com/okian/heptathlon/internal/domain/types"
)

// Day is one day's athletes. After ranking they are ordered by score,
// highest first, with ties kept in the order the athletes first appeared.
type Day struct {
	Key      string
	Athletes []*model.Athlete
}

type dayBucket struct {
	key      string
	athletes []*model.Athlete
	byName   map[string]*model.Athlete
}

// Leaderboard groups athlete aggregates by day. Days keep the order in
// which they were first seen; they are never sorted by date.
type Leaderboard struct {
	days  []*dayBucket
	byKey map[string]*dayBucket
}

// NewLeaderboard returns an empty leaderboard.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{byKey: make(map[string]*dayBucket)}
}

// athlete returns the aggregate for (day, name), creating the day and the
// athlete on first use.
func (l *Leaderboard) athlete(day, name string) *model.Athlete {
	b, ok := l.byKey[day]
	if !ok {
		b = &dayBucket{key: day, byName: make(map[string]*model.Athlete)}
		l.byKey[day] = b
		l.days = append(l.days, b)
	}
	a, ok := b.byName[name]
	if !ok {
		a = model.NewAthlete(name)
		b.byName[name] = a
		b.athletes = append(b.athletes, a)
	}
	return a
}

// rank sorts every day by score descending. The sort is stable so equal
// scores keep insertion order.
func (l *Leaderboard) rank() {
	for _, b := range l.days {
		sort.SliceStable(b.athletes, func(i, j int) bool {
			return b.athletes[i].Score() > b.athletes[j].Score()
		})
	}
}

// Len returns the number of days.
func (l *Leaderboard) Len() int { return len(l.days) }

// Empty reports whether there are no results at all.
func (l *Leaderboard) Empty() bool { return len(l.days) == 0 }

// Days returns the days in first-seen order.
func (l *Leaderboard) Days() []Day {
	out := make([]Day, len(l.days))
	for i, b := range l.days {
		athletes := make([]*model.Athlete, len(b.athletes))
		copy(athletes, b.athletes)
		out[i] = Day{Key: b.key, Athletes: athletes}
	}
	return out
}

// Athlete returns the aggregate for name on day, if any.
func (l *Leaderboard) Athlete(day, name string) (*model.Athlete, bool) {
	b, ok := l.byKey[day]
	if !ok {
		return nil, false
	}
	a, ok := b.byName[name]
	return a, ok
}

// Standings converts the leaderboard into numbered days of ranked entries.
func (l *Leaderboard) Standings() []types.Day {
	out := make([]types.Day, len(l.days))
	for i, b := range l.days {
		entries := make([]types.Entry, len(b.athletes))
		for idx, a := range b.athletes {
			entries[idx] = types.Entry{Rank: idx + 1, Athlete: a.Name(), Score: a.Score()}
		}
		out[i] = types.Day{Number: i + 1, Date: b.key, Entries: entries}
	}
	return out
}

// Merge combines l and other into a new ranked leaderboard, summing totals
// for matching (day, athlete) pairs. Totals do not depend on merge order or
// grouping. Days and athletes from l come first, then any new ones from
// other. Neither input is modified.
func (l *Leaderboard) Merge(other *Leaderboard) *Leaderboard {
	out := NewLeaderboard()
	for _, src := range []*Leaderboard{l, other} {
		if src == nil {
			continue
		}
		for _, b := range src.days {
			for _, a := range b.athletes {
				out.athlete(b.key, a.Name()).AddScore(a.Score())
			}
		}
	}
	out.rank()
	return out
}
