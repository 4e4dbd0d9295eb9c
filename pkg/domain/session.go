package domain

import "time"

// Bounds for durations and rating history
const (
	MinWorkMinutes   = 10
	MaxWorkMinutes   = 60
	MinBreakMinutes  = 3
	MaxBreakMinutes  = 20
	MaxRatingHistory = 10

	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5

	MinRating = 1
	MaxRating = 5
)

// Settings is the persisted timer state
type Settings struct {
	WorkMinutes  int   `json:"work_minutes" jsonschema:"default=25,minimum=10,maximum=60,description=Work session length in minutes"`
	BreakMinutes int   `json:"break_minutes" jsonschema:"default=5,minimum=3,maximum=20,description=Break length in minutes"`
	Ratings      []int `json:"ratings" jsonschema:"maxItems=10,description=Most recent productivity ratings (1-5)"`
}

// SessionKind is the kind of timed interval
type SessionKind string

const (
	SessionWork  SessionKind = "work"
	SessionBreak SessionKind = "break"
)

// Session is a single timed interval recorded in the journal
type Session struct {
	ID             int64
	Kind           SessionKind
	PlannedMinutes int
	Completed      bool
	Rating         int // 0 when not rated
	StartedAt      time.Time
	EndedAt        time.Time
}

// Adjustment is a rule-based change of durations
type Adjustment struct {
	ID        int64
	Average   float64
	OldWork   int
	NewWork   int
	OldBreak  int
	NewBreak  int
	CreatedAt time.Time
}

// Stats aggregates journal sessions
type Stats struct {
	WorkCompleted   int
	WorkInterrupted int
	BreaksCompleted int
	FocusMinutes    int
	AverageRating   *float64 // nil when nothing was rated
}

// ValidRating checks if r is in the accepted rating range
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Limits holds duration bounds in minutes
type Limits struct {
	MinWork  int
	MaxWork  int
	MinBreak int
	MaxBreak int
}

// DefaultLimits returns the built-in duration bounds
func DefaultLimits() Limits {
	return Limits{MinWork: MinWorkMinutes, MaxWork: MaxWorkMinutes, MinBreak: MinBreakMinutes, MaxBreak: MaxBreakMinutes}
}

// ClampWork bounds work minutes to the limits
func (l Limits) ClampWork(v int) int {
	return clamp(v, l.MinWork, l.MaxWork)
}

// ClampBreak bounds break minutes to the limits
func (l Limits) ClampBreak(v int) int {
	return clamp(v, l.MinBreak, l.MaxBreak)
}

// AddRating appends a valid rating and keeps only the last limit entries.
// Invalid ratings are ignored.
func (s *Settings) AddRating(r, limit int) {
	if !ValidRating(r) {
		return
	}
	ratings := make([]int, 0, len(s.Ratings)+1)
	ratings = append(ratings, s.Ratings...)
	ratings = append(ratings, r)
	s.Ratings = LastRatings(ratings, limit)
}

// LastRatings returns at most limit trailing ratings as a new slice
func LastRatings(ratings []int, limit int) []int {
	if limit < 0 {
		limit = 0
	}
	if len(ratings) > limit {
		ratings = ratings[len(ratings)-limit:]
	}
	res := make([]int, len(ratings))
	copy(res, ratings)
	return res
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
