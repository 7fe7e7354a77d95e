package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcqdeck/mcqdeck/internal/srs"
)

func TestNewDeckProgress(t *testing.T) {
	got := NewDeckProgress("d-1")
	assert.Equal(t, "d-1", got.DeckID)
	assert.Zero(t, got.TotalAttempts)
	assert.Zero(t, got.Accuracy)
	assert.NotNil(t, got.SRSByQuestionID)
	assert.Nil(t, got.LastSession)
}

func TestDeckProgress_ApplySession(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)

	tests := []struct {
		name         string
		progress     DeckProgress
		completed    Session
		wantAttempts int
		wantCorrect  int
		wantAccuracy float64
	}{
		{
			name:     "first session",
			progress: NewDeckProgress("d-1"),
			completed: Session{
				DeckID:         "d-1",
				TotalQuestions: 4,
				CorrectAnswers: 3,
				StartTime:      start,
				EndTime:        &end,
			},
			wantAttempts: 1,
			wantCorrect:  3,
			wantAccuracy: 0.75,
		},
		{
			name: "second session re-weights the running accuracy",
			progress: DeckProgress{
				DeckID:         "d-1",
				TotalAttempts:  1,
				CorrectAnswers: 2,
				Accuracy:       0.5,
			},
			completed: Session{
				DeckID:         "d-1",
				TotalQuestions: 4,
				CorrectAnswers: 4,
				StartTime:      start,
				EndTime:        &end,
			},
			wantAttempts: 2,
			wantCorrect:  6,
			wantAccuracy: 0.75,
		},
		{
			name:     "empty session leaves accuracy at zero",
			progress: NewDeckProgress("d-1"),
			completed: Session{
				DeckID:         "d-1",
				TotalQuestions: 0,
				CorrectAnswers: 0,
				StartTime:      start,
				EndTime:        &end,
			},
			wantAttempts: 1,
			wantCorrect:  0,
			wantAccuracy: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := map[string]srs.ScheduleState{
				"q-0": {DueAt: end, IntervalDays: 1, Ease: 2.5, Reps: 1},
			}
			tt.progress.ApplySession(tt.completed, schedule)

			assert.Equal(t, tt.wantAttempts, tt.progress.TotalAttempts)
			assert.Equal(t, tt.wantCorrect, tt.progress.CorrectAnswers)
			assert.InDelta(t, tt.wantAccuracy, tt.progress.Accuracy, 1e-9)
			assert.Equal(t, &tt.completed, tt.progress.LastSession)
			assert.Equal(t, schedule, tt.progress.SRSByQuestionID)
		})
	}
}
