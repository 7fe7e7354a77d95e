package storage

import (
	"context"
	"errors"

	"github.com/mcqdeck/mcqdeck/internal/deck"
)

// ErrDeckNotFound is returned when a deck id does not exist in the store.
var ErrDeckNotFound = errors.New("deck not found")

// Store is the persistence contract the study flow depends on. All saves
// are idempotent upserts keyed by id. GetProgress never fails on absence:
// a deck without recorded progress yields the zero aggregate.
//
// The resume pointer is a per-deck queue position kept separately from
// progress so an interrupted session can be restored; the boolean reports
// whether the pointer is present at all.
type Store interface {
	GetDeck(ctx context.Context, id string) (deck.Deck, error)
	GetDecks(ctx context.Context) ([]deck.Deck, error)
	SaveDeck(ctx context.Context, d deck.Deck) error
	DeleteDeck(ctx context.Context, id string) error

	GetProgress(ctx context.Context, deckID string) (DeckProgress, error)
	GetAllProgress(ctx context.Context) ([]DeckProgress, error)
	SaveProgress(ctx context.Context, progress DeckProgress) error

	GetResume(ctx context.Context, deckID string) (int, bool, error)
	SaveResume(ctx context.Context, deckID string, position int) error
	ClearResume(ctx context.Context, deckID string) error

	GetDailyGoal(ctx context.Context) (int, error)
	SetDailyGoal(ctx context.Context, goal int) error
}
