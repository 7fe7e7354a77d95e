package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcqdeck/mcqdeck/internal/deck"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Rating
		wantErr string
	}{
		{name: "numeric again", input: "1", want: RatingAgain},
		{name: "numeric hard", input: "2", want: RatingHard},
		{name: "numeric good", input: "3", want: RatingGood},
		{name: "numeric easy", input: "4", want: RatingEasy},
		{name: "name again", input: "again", want: RatingAgain},
		{name: "name easy", input: "easy", want: RatingEasy},
		{name: "unknown word", input: "meh", wantErr: `unknown rating "meh"`},
		{name: "out of range number", input: "5", wantErr: `unknown rating "5"`},
		{name: "empty", input: "", wantErr: `unknown rating ""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRating(tt.input)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		current ScheduleState
		rating  Rating
		want    ScheduleState
	}{
		{
			name:    "again resets the interval and keeps reps",
			current: ScheduleState{DueAt: now, IntervalDays: 6, Ease: 2.5, Reps: 3},
			rating:  RatingAgain,
			want:    ScheduleState{DueAt: now, IntervalDays: 0, Ease: 2.3, Reps: 3},
		},
		{
			name:    "again never drops ease below the floor",
			current: ScheduleState{DueAt: now, IntervalDays: 1, Ease: 1.35, Reps: 10},
			rating:  RatingAgain,
			want:    ScheduleState{DueAt: now, IntervalDays: 0, Ease: 1.3, Reps: 10},
		},
		{
			name:    "hard on a new question gives a one day interval",
			current: NewScheduleState(now),
			rating:  RatingHard,
			want:    ScheduleState{DueAt: now.AddDate(0, 0, 1), IntervalDays: 1, Ease: 2.45, Reps: 1},
		},
		{
			name:    "hard grows the interval by twenty percent",
			current: ScheduleState{DueAt: now, IntervalDays: 10, Ease: 2.5, Reps: 2},
			rating:  RatingHard,
			want:    ScheduleState{DueAt: now.AddDate(0, 0, 12), IntervalDays: 12, Ease: 2.45, Reps: 3},
		},
		{
			name:    "good on a new question gives a one day interval",
			current: NewScheduleState(now),
			rating:  RatingGood,
			want:    ScheduleState{DueAt: now.AddDate(0, 0, 1), IntervalDays: 1, Ease: 2.5, Reps: 1},
		},
		{
			name:    "good multiplies the interval by ease",
			current: ScheduleState{DueAt: now, IntervalDays: 4, Ease: 2.5, Reps: 1},
			rating:  RatingGood,
			want:    ScheduleState{DueAt: now.AddDate(0, 0, 10), IntervalDays: 10, Ease: 2.5, Reps: 2},
		},
		{
			name:    "easy on a new question gives a two day interval",
			current: NewScheduleState(now),
			rating:  RatingEasy,
			want:    ScheduleState{DueAt: now.AddDate(0, 0, 2), IntervalDays: 2, Ease: 2.65, Reps: 1},
		},
		{
			name:    "easy never raises ease above the cap",
			current: ScheduleState{DueAt: now, IntervalDays: 0, Ease: 2.95, Reps: 4},
			rating:  RatingEasy,
			want:    ScheduleState{DueAt: now.AddDate(0, 0, 2), IntervalDays: 2, Ease: 3.0, Reps: 5},
		},
		{
			name:    "zero ease falls back to the default before rating",
			current: ScheduleState{DueAt: now, IntervalDays: 2, Reps: 1},
			rating:  RatingGood,
			want:    ScheduleState{DueAt: now.AddDate(0, 0, 5), IntervalDays: 5, Ease: 2.5, Reps: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rate(tt.current, tt.rating, now)
			assert.InDelta(t, tt.want.Ease, got.Ease, 1e-9)
			got.Ease = tt.want.Ease
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRate_intervalNeverNegative(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := NewScheduleState(now)
	for _, rating := range []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy, RatingAgain} {
		state = Rate(state, rating, now)
		assert.GreaterOrEqual(t, state.IntervalDays, 0)
		assert.GreaterOrEqual(t, state.Ease, MinEase)
		assert.LessOrEqual(t, state.Ease, MaxEase)
	}
}

func TestBuildDueQueue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	questions := []deck.Question{
		{ID: "q-0", Question: "first", Options: []string{"a", "b"}, Answer: "A"},
		{ID: "q-1", Question: "second", Options: []string{"a", "b"}, Answer: "A"},
		{ID: "q-2", Question: "third", Options: []string{"a", "b"}, Answer: "A"},
	}

	tests := []struct {
		name     string
		schedule map[string]ScheduleState
		want     []int
	}{
		{
			name:     "no schedule keeps deck order",
			schedule: nil,
			want:     []int{0, 1, 2},
		},
		{
			name: "most overdue first",
			schedule: map[string]ScheduleState{
				"q-0": {DueAt: now.AddDate(0, 0, 3)},
				"q-1": {DueAt: now.AddDate(0, 0, -2)},
				"q-2": {DueAt: now.AddDate(0, 0, 1)},
			},
			want: []int{1, 2, 0},
		},
		{
			name: "equal due times keep deck order",
			schedule: map[string]ScheduleState{
				"q-0": {DueAt: now},
				"q-1": {DueAt: now},
				"q-2": {DueAt: now.AddDate(0, 0, -1)},
			},
			want: []int{2, 0, 1},
		},
		{
			name: "missing entries are due now and sort before future ones",
			schedule: map[string]ScheduleState{
				"q-0": {DueAt: now.AddDate(0, 0, 5)},
			},
			want: []int{1, 2, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildDueQueue(questions, tt.schedule, now)
			assert.Equal(t, tt.want, got)

			// The queue is a permutation: every index appears exactly once.
			seen := make(map[int]bool, len(got))
			for _, index := range got {
				assert.False(t, seen[index])
				seen[index] = true
			}
			assert.Len(t, seen, len(questions))
		})
	}
}

func TestBuildDueQueue_deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	questions := []deck.Question{
		{ID: "q-0", Question: "first", Options: []string{"a", "b"}, Answer: "A"},
		{ID: "q-1", Question: "second", Options: []string{"a", "b"}, Answer: "A"},
	}
	schedule := map[string]ScheduleState{
		"q-0": {DueAt: now.AddDate(0, 0, 1)},
		"q-1": {DueAt: now},
	}

	first := BuildDueQueue(questions, schedule, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildDueQueue(questions, schedule, now))
	}
	assert.Empty(t, BuildDueQueue(nil, schedule, now))
}
