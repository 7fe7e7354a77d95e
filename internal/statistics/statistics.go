// Package statistics aggregates study results across decks.
package statistics

import (
	"sort"
	"time"

	"github.com/mcqdeck/mcqdeck/internal/deck"
	"github.com/mcqdeck/mcqdeck/internal/storage"
)

// DeckStatistics holds per-deck aggregates for display.
type DeckStatistics struct {
	DeckID         string
	DeckName       string
	Questions      int
	Attempts       int
	CorrectAnswers int
	Accuracy       float64
	DueToday       int
	LastStudied    *time.Time
}

// Overview holds the whole-library statistics plus the per-deck rows.
type Overview struct {
	Decks           []DeckStatistics
	TotalDecks      int
	TotalQuestions  int
	TotalAttempts   int
	OverallAccuracy float64
	DueToday        int
	DailyGoal       int
}

// Calculate builds the overview. Questions with no recorded schedule count
// as due: an unscheduled question is reviewable immediately. The overall
// accuracy weights each attempt by the deck's question count, consistent
// with how per-deck accuracy is maintained.
func Calculate(decks []deck.Deck, progress []storage.DeckProgress, dailyGoal int, now time.Time) Overview {
	progressByDeck := make(map[string]storage.DeckProgress, len(progress))
	for _, p := range progress {
		progressByDeck[p.DeckID] = p
	}

	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	overview := Overview{
		TotalDecks: len(decks),
		DailyGoal:  dailyGoal,
	}

	totalCorrect := 0
	totalAnswered := 0
	for _, d := range decks {
		p := progressByDeck[d.ID]

		dueToday := 0
		for _, q := range d.Questions {
			state, ok := p.SRSByQuestionID[q.ID]
			if !ok || !state.DueAt.After(endOfDay) {
				dueToday++
			}
		}

		overview.Decks = append(overview.Decks, DeckStatistics{
			DeckID:         d.ID,
			DeckName:       d.Name,
			Questions:      len(d.Questions),
			Attempts:       p.TotalAttempts,
			CorrectAnswers: p.CorrectAnswers,
			Accuracy:       p.Accuracy,
			DueToday:       dueToday,
			LastStudied:    d.LastStudied,
		})

		overview.TotalQuestions += len(d.Questions)
		overview.TotalAttempts += p.TotalAttempts
		overview.DueToday += dueToday
		totalCorrect += p.CorrectAnswers
		totalAnswered += p.TotalAttempts * len(d.Questions)
	}

	if totalAnswered > 0 {
		overview.OverallAccuracy = float64(totalCorrect) / float64(totalAnswered)
	}

	sort.SliceStable(overview.Decks, func(a, b int) bool {
		return overview.Decks[a].DeckName < overview.Decks[b].DeckName
	})
	return overview
}
