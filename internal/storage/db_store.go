package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mcqdeck/mcqdeck/internal/deck"
	"github.com/mcqdeck/mcqdeck/internal/srs"
)

// DBStore implements Store on MySQL through sqlx.
type DBStore struct {
	db *sqlx.DB
}

// NewDBStore wraps an open connection and applies the schema.
func NewDBStore(db *sqlx.DB) (*DBStore, error) {
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("db.Exec(schema) > %w", err)
	}
	return &DBStore{db: db}, nil
}

type deckRow struct {
	ID          string       `db:"id"`
	Name        string       `db:"name"`
	Questions   []byte       `db:"questions"`
	CreatedAt   time.Time    `db:"created_at"`
	LastStudied sql.NullTime `db:"last_studied"`
}

func (r deckRow) toDeck() (deck.Deck, error) {
	var questions []deck.Question
	if err := json.Unmarshal(r.Questions, &questions); err != nil {
		return deck.Deck{}, fmt.Errorf("json.Unmarshal(questions) > %w", err)
	}
	d := deck.Deck{
		ID:        r.ID,
		Name:      r.Name,
		Questions: questions,
		CreatedAt: r.CreatedAt,
	}
	if r.LastStudied.Valid {
		lastStudied := r.LastStudied.Time
		d.LastStudied = &lastStudied
	}
	return d, nil
}

func (s *DBStore) GetDeck(ctx context.Context, id string) (deck.Deck, error) {
	var row deckRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM decks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return deck.Deck{}, fmt.Errorf("deck %s: %w", id, ErrDeckNotFound)
	}
	if err != nil {
		return deck.Deck{}, fmt.Errorf("db.GetContext(decks) > %w", err)
	}
	return row.toDeck()
}

func (s *DBStore) GetDecks(ctx context.Context) ([]deck.Deck, error) {
	var rows []deckRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM decks ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(decks) > %w", err)
	}

	decks := make([]deck.Deck, 0, len(rows))
	for _, row := range rows {
		d, err := row.toDeck()
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

func (s *DBStore) SaveDeck(ctx context.Context, d deck.Deck) error {
	questions, err := json.Marshal(d.Questions)
	if err != nil {
		return fmt.Errorf("json.Marshal(questions) > %w", err)
	}

	var lastStudied sql.NullTime
	if d.LastStudied != nil {
		lastStudied = sql.NullTime{Time: *d.LastStudied, Valid: true}
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (id, name, questions, created_at, last_studied)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name), questions = VALUES(questions), last_studied = VALUES(last_studied)`,
		d.ID, d.Name, questions, d.CreatedAt, lastStudied); err != nil {
		return fmt.Errorf("db.ExecContext(upsert deck) > %w", err)
	}
	return nil
}

func (s *DBStore) DeleteDeck(ctx context.Context, id string) error {
	for _, query := range []string{
		"DELETE FROM decks WHERE id = ?",
		"DELETE FROM deck_progress WHERE deck_id = ?",
		"DELETE FROM resume_pointers WHERE deck_id = ?",
	} {
		if _, err := s.db.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("db.ExecContext(%s) > %w", query, err)
		}
	}
	return nil
}

type progressRow struct {
	DeckID          string  `db:"deck_id"`
	TotalAttempts   int     `db:"total_attempts"`
	CorrectAnswers  int     `db:"correct_answers"`
	Accuracy        float64 `db:"accuracy"`
	LastSession     []byte  `db:"last_session"`
	SRSByQuestionID []byte  `db:"srs_by_question_id"`
}

func (r progressRow) toProgress() (DeckProgress, error) {
	p := DeckProgress{
		DeckID:          r.DeckID,
		TotalAttempts:   r.TotalAttempts,
		CorrectAnswers:  r.CorrectAnswers,
		Accuracy:        r.Accuracy,
		SRSByQuestionID: make(map[string]srs.ScheduleState),
	}
	if len(r.LastSession) > 0 {
		var session Session
		if err := json.Unmarshal(r.LastSession, &session); err != nil {
			return DeckProgress{}, fmt.Errorf("json.Unmarshal(last_session) > %w", err)
		}
		p.LastSession = &session
	}
	if len(r.SRSByQuestionID) > 0 {
		if err := json.Unmarshal(r.SRSByQuestionID, &p.SRSByQuestionID); err != nil {
			return DeckProgress{}, fmt.Errorf("json.Unmarshal(srs_by_question_id) > %w", err)
		}
	}
	return p, nil
}

func (s *DBStore) GetProgress(ctx context.Context, deckID string) (DeckProgress, error) {
	var row progressRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM deck_progress WHERE deck_id = ?", deckID)
	if errors.Is(err, sql.ErrNoRows) {
		return NewDeckProgress(deckID), nil
	}
	if err != nil {
		return DeckProgress{}, fmt.Errorf("db.GetContext(deck_progress) > %w", err)
	}
	return row.toProgress()
}

func (s *DBStore) GetAllProgress(ctx context.Context) ([]DeckProgress, error) {
	var rows []progressRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM deck_progress"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(deck_progress) > %w", err)
	}

	progress := make([]DeckProgress, 0, len(rows))
	for _, row := range rows {
		p, err := row.toProgress()
		if err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, nil
}

func (s *DBStore) SaveProgress(ctx context.Context, p DeckProgress) error {
	var lastSession []byte
	if p.LastSession != nil {
		encoded, err := json.Marshal(p.LastSession)
		if err != nil {
			return fmt.Errorf("json.Marshal(last_session) > %w", err)
		}
		lastSession = encoded
	}
	schedule, err := json.Marshal(p.SRSByQuestionID)
	if err != nil {
		return fmt.Errorf("json.Marshal(srs_by_question_id) > %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO deck_progress (deck_id, total_attempts, correct_answers, accuracy, last_session, srs_by_question_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE total_attempts = VALUES(total_attempts), correct_answers = VALUES(correct_answers),
			accuracy = VALUES(accuracy), last_session = VALUES(last_session), srs_by_question_id = VALUES(srs_by_question_id)`,
		p.DeckID, p.TotalAttempts, p.CorrectAnswers, p.Accuracy, lastSession, schedule); err != nil {
		return fmt.Errorf("db.ExecContext(upsert deck_progress) > %w", err)
	}
	return nil
}

func (s *DBStore) GetResume(ctx context.Context, deckID string) (int, bool, error) {
	var position int
	err := s.db.GetContext(ctx, &position, "SELECT position FROM resume_pointers WHERE deck_id = ?", deckID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("db.GetContext(resume_pointers) > %w", err)
	}
	return position, true, nil
}

func (s *DBStore) SaveResume(ctx context.Context, deckID string, position int) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO resume_pointers (deck_id, position) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE position = VALUES(position)`,
		deckID, position); err != nil {
		return fmt.Errorf("db.ExecContext(upsert resume_pointer) > %w", err)
	}
	return nil
}

func (s *DBStore) ClearResume(ctx context.Context, deckID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM resume_pointers WHERE deck_id = ?", deckID); err != nil {
		return fmt.Errorf("db.ExecContext(delete resume_pointer) > %w", err)
	}
	return nil
}

func (s *DBStore) GetDailyGoal(ctx context.Context) (int, error) {
	var goal int
	err := s.db.GetContext(ctx, &goal, "SELECT value FROM settings WHERE name = 'daily_goal'")
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultDailyGoal, nil
	}
	if err != nil {
		return 0, fmt.Errorf("db.GetContext(settings) > %w", err)
	}
	return goal, nil
}

func (s *DBStore) SetDailyGoal(ctx context.Context, goal int) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (name, value) VALUES ('daily_goal', ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)`,
		goal); err != nil {
		return fmt.Errorf("db.ExecContext(upsert daily_goal) > %w", err)
	}
	return nil
}
