// Package srs implements the spaced-repetition scheduling used by study
// sessions: a per-question review state evolved by user ratings, and a
// due-ordered presentation queue over a deck.
package srs

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mcqdeck/mcqdeck/internal/deck"
)

const (
	DefaultEase = 2.5
	MinEase     = 1.3
	MaxEase     = 3.0
)

// Rating is the user's self-assessment after answering a question.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// ParseRating accepts the rating names and the 1-4 shortcuts used by the
// study prompt. Anything else is rejected before it reaches the scheduler.
func ParseRating(input string) (Rating, error) {
	switch input {
	case "1", string(RatingAgain):
		return RatingAgain, nil
	case "2", string(RatingHard):
		return RatingHard, nil
	case "3", string(RatingGood):
		return RatingGood, nil
	case "4", string(RatingEasy):
		return RatingEasy, nil
	}
	return "", fmt.Errorf("unknown rating %q, expected again, hard, good or easy", input)
}

// ScheduleState is the review schedule of a single question within a deck.
type ScheduleState struct {
	DueAt        time.Time `json:"dueAt" yaml:"due_at"`
	IntervalDays int       `json:"intervalDays" yaml:"interval_days"`
	Ease         float64   `json:"ease" yaml:"ease"`
	Reps         int       `json:"reps" yaml:"reps"`
}

// NewScheduleState returns the default state for a question that has never
// been scheduled: due immediately, no interval, default ease.
func NewScheduleState(now time.Time) ScheduleState {
	return ScheduleState{
		DueAt:        now,
		IntervalDays: 0,
		Ease:         DefaultEase,
		Reps:         0,
	}
}

// Rate evolves a schedule state by one review. The transition is
// deterministic; ease stays within [MinEase, MaxEase] and the interval is
// a non-negative whole number of days, fractions floored. "again" is a
// lapse: the interval resets and the repetition count is not incremented.
func Rate(current ScheduleState, rating Rating, now time.Time) ScheduleState {
	next := current
	if next.Ease == 0 {
		next.Ease = DefaultEase
	}

	switch rating {
	case RatingAgain:
		next.Ease = math.Max(MinEase, next.Ease-0.2)
		next.IntervalDays = 0
	case RatingHard:
		next.Ease = math.Max(MinEase, next.Ease-0.05)
		base := next.IntervalDays
		if base < 1 {
			base = 1
		}
		next.IntervalDays = int(math.Floor(float64(base) * 1.2))
		if next.IntervalDays < 1 {
			next.IntervalDays = 1
		}
		next.Reps++
	case RatingGood:
		if next.IntervalDays <= 0 {
			next.IntervalDays = 1
		} else {
			next.IntervalDays = int(math.Floor(float64(next.IntervalDays) * next.Ease))
		}
		next.Reps++
	case RatingEasy:
		next.Ease = math.Min(MaxEase, next.Ease+0.15)
		if next.IntervalDays <= 0 {
			next.IntervalDays = 2
		} else {
			next.IntervalDays = int(math.Floor(float64(next.IntervalDays) * next.Ease * 1.5))
		}
		next.Reps++
	}

	next.DueAt = now.AddDate(0, 0, next.IntervalDays)
	return next
}

// BuildDueQueue orders the deck's question indices for presentation:
// ascending by due time, most overdue first, ties keeping the deck order.
// Every question is included exactly once; questions without schedule
// state are treated as due now. The result is deterministic for a given
// schedule snapshot and now.
func BuildDueQueue(questions []deck.Question, schedule map[string]ScheduleState, now time.Time) []int {
	queue := make([]int, len(questions))
	dueAt := make([]time.Time, len(questions))
	for i, q := range questions {
		queue[i] = i
		state, ok := schedule[q.ID]
		if !ok {
			state = NewScheduleState(now)
		}
		dueAt[i] = state.DueAt
	}

	sort.SliceStable(queue, func(a, b int) bool {
		return dueAt[queue[a]].Before(dueAt[queue[b]])
	})
	return queue
}
