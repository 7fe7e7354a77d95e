package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mcqdeck/mcqdeck/internal/deck"
	"github.com/mcqdeck/mcqdeck/internal/srs"
)

const (
	decksFile    = "decks.json"
	progressFile = "progress.json"
	resumeFile   = "resume.json"
	settingsFile = "settings.json"
)

type settings struct {
	DailyGoal int `json:"dailyGoal"`
}

// FileStore keeps everything in JSON files under a data directory, one
// file per record kind. Reads tolerate missing files; every write rewrites
// the whole file, which is fine at flashcard-deck scale.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func readJSONFile[T any](path string, fallback T) (T, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var result T
	if err := json.Unmarshal(contents, &result); err != nil {
		return fallback, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}
	return result, nil
}

func writeJSONFile[T any](path string, data T) error {
	contents, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent > %w", err)
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileStore) readDecks() ([]deck.Deck, error) {
	return readJSONFile(s.path(decksFile), []deck.Deck{})
}

// GetDeck returns the deck with the given id or ErrDeckNotFound.
func (s *FileStore) GetDeck(_ context.Context, id string) (deck.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	decks, err := s.readDecks()
	if err != nil {
		return deck.Deck{}, err
	}
	for _, d := range decks {
		if d.ID == id {
			return d, nil
		}
	}
	return deck.Deck{}, fmt.Errorf("deck %s: %w", id, ErrDeckNotFound)
}

// GetDecks returns all stored decks in insertion order.
func (s *FileStore) GetDecks(_ context.Context) ([]deck.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readDecks()
}

// SaveDeck upserts a deck by id.
func (s *FileStore) SaveDeck(_ context.Context, d deck.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	decks, err := s.readDecks()
	if err != nil {
		return err
	}

	replaced := false
	for i := range decks {
		if decks[i].ID == d.ID {
			decks[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		decks = append(decks, d)
	}
	return writeJSONFile(s.path(decksFile), decks)
}

// DeleteDeck removes a deck along with its progress and resume pointer.
func (s *FileStore) DeleteDeck(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	decks, err := s.readDecks()
	if err != nil {
		return err
	}
	kept := decks[:0]
	for _, d := range decks {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if err := writeJSONFile(s.path(decksFile), kept); err != nil {
		return err
	}

	progress, err := readJSONFile(s.path(progressFile), []DeckProgress{})
	if err != nil {
		return err
	}
	keptProgress := progress[:0]
	for _, p := range progress {
		if p.DeckID != id {
			keptProgress = append(keptProgress, p)
		}
	}
	if err := writeJSONFile(s.path(progressFile), keptProgress); err != nil {
		return err
	}

	return s.clearResumeLocked(id)
}

// GetProgress returns the aggregate for a deck, or the zero aggregate when
// none has been recorded.
func (s *FileStore) GetProgress(_ context.Context, deckID string) (DeckProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := readJSONFile(s.path(progressFile), []DeckProgress{})
	if err != nil {
		return DeckProgress{}, err
	}
	for _, p := range progress {
		if p.DeckID == deckID {
			if p.SRSByQuestionID == nil {
				p.SRSByQuestionID = make(map[string]srs.ScheduleState)
			}
			return p, nil
		}
	}
	return NewDeckProgress(deckID), nil
}

// GetAllProgress returns every recorded aggregate.
func (s *FileStore) GetAllProgress(_ context.Context) ([]DeckProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readJSONFile(s.path(progressFile), []DeckProgress{})
}

// SaveProgress upserts the aggregate by deck id.
func (s *FileStore) SaveProgress(_ context.Context, p DeckProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := readJSONFile(s.path(progressFile), []DeckProgress{})
	if err != nil {
		return err
	}

	replaced := false
	for i := range progress {
		if progress[i].DeckID == p.DeckID {
			progress[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		progress = append(progress, p)
	}
	return writeJSONFile(s.path(progressFile), progress)
}

// GetResume reports the saved queue position for a deck, if any.
func (s *FileStore) GetResume(_ context.Context, deckID string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pointers, err := readJSONFile(s.path(resumeFile), map[string]int{})
	if err != nil {
		return 0, false, err
	}
	position, ok := pointers[deckID]
	return position, ok, nil
}

// SaveResume records the queue position to restore an interrupted session.
func (s *FileStore) SaveResume(_ context.Context, deckID string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pointers, err := readJSONFile(s.path(resumeFile), map[string]int{})
	if err != nil {
		return err
	}
	pointers[deckID] = position
	return writeJSONFile(s.path(resumeFile), pointers)
}

// ClearResume removes the resume pointer for a deck.
func (s *FileStore) ClearResume(_ context.Context, deckID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearResumeLocked(deckID)
}

func (s *FileStore) clearResumeLocked(deckID string) error {
	pointers, err := readJSONFile(s.path(resumeFile), map[string]int{})
	if err != nil {
		return err
	}
	delete(pointers, deckID)
	return writeJSONFile(s.path(resumeFile), pointers)
}

// GetDailyGoal returns the configured review target.
func (s *FileStore) GetDailyGoal(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := readJSONFile(s.path(settingsFile), settings{DailyGoal: DefaultDailyGoal})
	if err != nil {
		return 0, err
	}
	if stored.DailyGoal <= 0 {
		return DefaultDailyGoal, nil
	}
	return stored.DailyGoal, nil
}

// SetDailyGoal stores the review target.
func (s *FileStore) SetDailyGoal(_ context.Context, goal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONFile(s.path(settingsFile), settings{DailyGoal: goal})
}
