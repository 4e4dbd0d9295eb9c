// Package adapt implements rule-based adjustment of session durations from recent ratings.
package adapt

import (
	"github.com/go-pkgz/lgr"

	"github.com/umputun/pomodoro/pkg/domain"
)

// Rules define thresholds and steps of the adjustment
type Rules struct {
	HighThreshold float64 // average at or above it grows work and shrinks break
	LowThreshold  float64 // average at or below it shrinks work and grows break
	WorkStep      int
	BreakStep     int
	Limits        domain.Limits
}

// DefaultRules returns the built-in adjustment rules
func DefaultRules() Rules {
	return Rules{HighThreshold: 4.0, LowThreshold: 2.5, WorkStep: 5, BreakStep: 1, Limits: domain.DefaultLimits()}
}

// Direction of an adjustment
type Direction string

const (
	DirectionNone    Direction = "none"
	DirectionLonger  Direction = "longer"  // more work, less break
	DirectionShorter Direction = "shorter" // less work, more break
)

// Result describes the outcome of Adapt
type Result struct {
	Average   float64
	HasRating bool
	Direction Direction
	OldWork   int
	NewWork   int
	OldBreak  int
	NewBreak  int
}

// Changed reports whether durations were modified
func (r Result) Changed() bool {
	return r.OldWork != r.NewWork || r.OldBreak != r.NewBreak
}

// Engine applies adjustment rules to settings
type Engine struct {
	rules Rules
}

// NewEngine creates an engine, zero limits fall back to the built-in ones
func NewEngine(rules Rules) *Engine {
	if rules.Limits == (domain.Limits{}) {
		rules.Limits = domain.DefaultLimits()
	}
	return &Engine{rules: rules}
}

// Average returns the arithmetic mean of ratings, false if there are none
func Average(ratings []int) (float64, bool) {
	if len(ratings) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings)), true
}

// Adapt nudges work and break durations of st according to the average rating.
// Without ratings st is left untouched.
func (e *Engine) Adapt(st *domain.Settings) Result {
	res := Result{
		Direction: DirectionNone,
		OldWork:   st.WorkMinutes,
		NewWork:   st.WorkMinutes,
		OldBreak:  st.BreakMinutes,
		NewBreak:  st.BreakMinutes,
	}

	avg, ok := Average(st.Ratings)
	if !ok {
		return res
	}
	res.Average, res.HasRating = avg, true

	lim := e.rules.Limits
	switch {
	case avg >= e.rules.HighThreshold:
		res.Direction = DirectionLonger
		res.NewWork = min(st.WorkMinutes+e.rules.WorkStep, lim.MaxWork)
		res.NewBreak = max(st.BreakMinutes-e.rules.BreakStep, lim.MinBreak)
	case avg <= e.rules.LowThreshold:
		res.Direction = DirectionShorter
		res.NewWork = max(st.WorkMinutes-e.rules.WorkStep, lim.MinWork)
		res.NewBreak = min(st.BreakMinutes+e.rules.BreakStep, lim.MaxBreak)
	}

	st.WorkMinutes, st.BreakMinutes = res.NewWork, res.NewBreak
	if res.Changed() {
		lgr.Printf("[INFO] average rating %.2f, work %d->%d min, break %d->%d min",
			avg, res.OldWork, res.NewWork, res.OldBreak, res.NewBreak)
	} else {
		lgr.Printf("[DEBUG] average rating %.2f, durations unchanged", avg)
	}
	return res
}
