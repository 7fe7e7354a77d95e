// Package storage persists decks and study progress. The primary backend
// is a JSON file store; a MySQL-backed store implements the same contract,
// and any store can be decorated with a best-effort remote mirror.
package storage

import (
	"time"

	"github.com/mcqdeck/mcqdeck/internal/srs"
)

// DefaultDailyGoal is the review target used until the user sets one.
const DefaultDailyGoal = 20

// Session is the snapshot of a single study pass over a deck. It only
// survives inside DeckProgress.LastSession once the pass completes.
type Session struct {
	DeckID           string     `json:"deckId" yaml:"deck_id"`
	TotalQuestions   int        `json:"totalQuestions" yaml:"total_questions"`
	CorrectAnswers   int        `json:"correctAnswers" yaml:"correct_answers"`
	IncorrectAnswers int        `json:"incorrectAnswers" yaml:"incorrect_answers"`
	StartTime        time.Time  `json:"startTime" yaml:"start_time"`
	EndTime          *time.Time `json:"endTime,omitempty" yaml:"end_time,omitempty"`
	CurrentIndex     int        `json:"currentIndex" yaml:"current_index"`
}

// DeckProgress is the per-deck aggregate across all completed sessions.
// Accuracy is always recomputed when a session completes, never edited.
type DeckProgress struct {
	DeckID          string                       `json:"deckId" yaml:"deck_id"`
	TotalAttempts   int                          `json:"totalAttempts" yaml:"total_attempts"`
	CorrectAnswers  int                          `json:"correctAnswers" yaml:"correct_answers"`
	Accuracy        float64                      `json:"accuracy" yaml:"accuracy"`
	LastSession     *Session                     `json:"lastSession,omitempty" yaml:"last_session,omitempty"`
	SRSByQuestionID map[string]srs.ScheduleState `json:"srsByQuestionId,omitempty" yaml:"srs_by_question_id,omitempty"`
}

// NewDeckProgress is the zero aggregate used when no progress has been
// recorded for a deck yet.
func NewDeckProgress(deckID string) DeckProgress {
	return DeckProgress{
		DeckID:          deckID,
		SRSByQuestionID: make(map[string]srs.ScheduleState),
	}
}

// ApplySession folds a completed session into the aggregate. The running
// accuracy is re-weighted by question count per attempt, so decks that
// change size between attempts keep a meaningful ratio.
func (p *DeckProgress) ApplySession(completed Session, schedule map[string]srs.ScheduleState) {
	prevCorrect := p.CorrectAnswers
	prevAttempts := p.TotalAttempts

	p.TotalAttempts = prevAttempts + 1
	p.CorrectAnswers = prevCorrect + completed.CorrectAnswers

	denominator := prevAttempts*completed.TotalQuestions + completed.TotalQuestions
	if denominator > 0 {
		p.Accuracy = float64(p.CorrectAnswers) / float64(denominator)
	} else {
		p.Accuracy = 0
	}

	p.LastSession = &completed
	p.SRSByQuestionID = schedule
}
