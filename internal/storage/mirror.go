package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/mcqdeck/mcqdeck/internal/deck"
)

// Mirror replicates local commits to a remote backend. Pushes are best
// effort: at most once, no retry, and no caller ever consumes the result.
type Mirror interface {
	PushDeck(ctx context.Context, d deck.Deck) error
	PushProgress(ctx context.Context, p DeckProgress) error
	DeleteDeck(ctx context.Context, id string) error
}

// RestMirror pushes JSON upserts to a REST backend.
type RestMirror struct {
	client *resty.Client
}

// NewRestMirror builds a mirror for the given base URL. The API key, when
// set, is sent as a bearer token.
func NewRestMirror(baseURL, apiKey string) *RestMirror {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return &RestMirror{client: client}
}

func (m *RestMirror) PushDeck(ctx context.Context, d deck.Deck) error {
	return m.put(ctx, "/decks/"+d.ID, d)
}

func (m *RestMirror) PushProgress(ctx context.Context, p DeckProgress) error {
	return m.put(ctx, "/progress/"+p.DeckID, p)
}

func (m *RestMirror) DeleteDeck(ctx context.Context, id string) error {
	res, err := m.client.R().SetContext(ctx).Delete("/decks/" + id)
	if err != nil {
		return fmt.Errorf("client.R().Delete > %w", err)
	}
	if res.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), res.String())
	}
	return nil
}

func (m *RestMirror) put(ctx context.Context, path string, body any) error {
	res, err := m.client.R().SetContext(ctx).SetBody(body).Put(path)
	if err != nil {
		return fmt.Errorf("client.R().Put > %w", err)
	}
	if res.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), res.String())
	}
	return nil
}

// MirroredStore decorates a Store so every deck or progress commit is also
// pushed to a Mirror. The push happens in a goroutine after the local write
// succeeds; a failed push only logs, the local store stays source of truth.
type MirroredStore struct {
	Store
	mirror Mirror
}

// NewMirroredStore wraps local with mirror.
func NewMirroredStore(local Store, mirror Mirror) *MirroredStore {
	return &MirroredStore{Store: local, mirror: mirror}
}

func (s *MirroredStore) SaveDeck(ctx context.Context, d deck.Deck) error {
	if err := s.Store.SaveDeck(ctx, d); err != nil {
		return err
	}
	go func() {
		if err := s.mirror.PushDeck(context.Background(), d); err != nil {
			slog.Warn("remote mirror push failed", "kind", "deck", "id", d.ID, "error", err)
		}
	}()
	return nil
}

func (s *MirroredStore) SaveProgress(ctx context.Context, p DeckProgress) error {
	if err := s.Store.SaveProgress(ctx, p); err != nil {
		return err
	}
	go func() {
		if err := s.mirror.PushProgress(context.Background(), p); err != nil {
			slog.Warn("remote mirror push failed", "kind", "progress", "deckId", p.DeckID, "error", err)
		}
	}()
	return nil
}

func (s *MirroredStore) DeleteDeck(ctx context.Context, id string) error {
	if err := s.Store.DeleteDeck(ctx, id); err != nil {
		return err
	}
	go func() {
		if err := s.mirror.DeleteDeck(context.Background(), id); err != nil {
			slog.Warn("remote mirror delete failed", "kind", "deck", "id", id, "error", err)
		}
	}()
	return nil
}
