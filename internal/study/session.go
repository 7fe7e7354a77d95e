// Package study drives a single study pass over a deck: it presents
// questions in due order, scores answers, evolves each question's review
// schedule from the user's rating, and keeps the pass resumable across
// interruptions.
package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcqdeck/mcqdeck/internal/deck"
	"github.com/mcqdeck/mcqdeck/internal/srs"
	"github.com/mcqdeck/mcqdeck/internal/storage"
)

// State is the controller's position in the session state machine.
type State string

const (
	// StateAwaitingResumeChoice is entered when a resume pointer exists
	// and the user has not yet chosen between resuming and restarting.
	StateAwaitingResumeChoice State = "awaiting_resume_choice"
	// StatePresenting shows the current question, no answer locked yet.
	StatePresenting State = "presenting"
	// StateAnswered has the answer locked in and awaits a rating.
	StateAnswered State = "answered"
	// StateCompleted is terminal; the aggregate has been written.
	StateCompleted State = "completed"
)

// Controller is the session state machine. It is not safe for concurrent
// use; a deck is studied by one session in one goroutine at a time.
type Controller struct {
	store storage.Store
	clock func() time.Time

	deck     deck.Deck
	progress storage.DeckProgress
	schedule map[string]srs.ScheduleState
	queue    []int

	state         State
	position      int
	resumePointer int
	session       storage.Session
	selected      string
	answered      bool
	correct       bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock substitutes the time source, for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// Start loads the deck and its progress, builds the due-ordered queue and
// returns a controller ready for interaction. A missing deck fails fast
// with storage.ErrDeckNotFound; no session state is created. An empty deck
// completes immediately with zero counters.
func Start(ctx context.Context, store storage.Store, deckID string, opts ...Option) (*Controller, error) {
	c := &Controller{
		store: store,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	d, err := store.GetDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("store.GetDeck(%s) > %w", deckID, err)
	}
	c.deck = d

	progress, err := store.GetProgress(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("store.GetProgress(%s) > %w", deckID, err)
	}
	c.progress = progress

	c.schedule = make(map[string]srs.ScheduleState, len(progress.SRSByQuestionID))
	for id, state := range progress.SRSByQuestionID {
		c.schedule[id] = state
	}

	now := c.clock()
	c.queue = srs.BuildDueQueue(d.Questions, c.schedule, now)
	c.resetSession(now)

	if len(c.queue) == 0 {
		c.state = StateCompleted
		return c, nil
	}

	pointer, found, err := store.GetResume(ctx, deckID)
	if err != nil {
		slog.Warn("reading resume pointer failed, starting fresh", "deckId", deckID, "error", err)
		found = false
	}
	if found {
		c.resumePointer = pointer
		c.state = StateAwaitingResumeChoice
		return c, nil
	}

	c.state = StatePresenting
	return c, nil
}

func (c *Controller) resetSession(now time.Time) {
	c.position = 0
	c.selected = ""
	c.answered = false
	c.correct = false
	c.session = storage.Session{
		DeckID:         c.deck.ID,
		TotalQuestions: len(c.deck.Questions),
		StartTime:      now,
	}
}

// Resume continues the interrupted session. The saved pointer holds the
// underlying question index of the next unanswered queue slot; it is
// re-located in the freshly built queue, which may be ordered differently.
// A pointer whose question no longer exists falls back to position 0.
func (c *Controller) Resume(ctx context.Context) error {
	if c.state != StateAwaitingResumeChoice {
		return fmt.Errorf("cannot resume in state %s", c.state)
	}

	c.position = 0
	for i, questionIndex := range c.queue {
		if questionIndex == c.resumePointer {
			c.position = i
			break
		}
	}
	c.session.CurrentIndex = c.position
	c.state = StatePresenting
	return nil
}

// Restart begins a fresh pass: counters and position reset, the resume
// pointer is discarded, and accumulated schedule state is kept.
func (c *Controller) Restart(ctx context.Context) error {
	if err := c.store.ClearResume(ctx, c.deck.ID); err != nil {
		slog.Warn("clearing resume pointer failed", "deckId", c.deck.ID, "error", err)
	}

	c.resetSession(c.clock())
	if len(c.queue) == 0 {
		c.state = StateCompleted
	} else {
		c.state = StatePresenting
	}
	return nil
}

// SelectAnswer locks in an option letter for the current question and
// scores it. Selecting again after the answer is locked is a no-op.
func (c *Controller) SelectAnswer(letter string) error {
	switch c.state {
	case StateAnswered:
		return nil
	case StatePresenting:
	default:
		return fmt.Errorf("cannot answer in state %s", c.state)
	}

	question, ok := c.CurrentQuestion()
	if !ok {
		return fmt.Errorf("no current question at position %d", c.position)
	}
	validLetter := false
	for i := range question.Options {
		if letter == deck.OptionLetter(i) {
			validLetter = true
			break
		}
	}
	if !validLetter {
		return fmt.Errorf("option %q is not one of A-%s", letter, deck.OptionLetter(len(question.Options)-1))
	}

	c.selected = letter
	c.answered = true
	c.correct = letter == question.Answer
	if c.correct {
		c.session.CorrectAnswers++
	} else {
		c.session.IncorrectAnswers++
	}
	c.state = StateAnswered
	return nil
}

// RateCurrent applies the user's rating to the current question's review
// schedule and advances the queue. The updated schedule lives in memory
// until the session completes; only the resume pointer is persisted per
// rating, so an interrupted session keeps its position but not that
// session's schedule updates. Persistence failures never block the user.
func (c *Controller) RateCurrent(ctx context.Context, rating srs.Rating) error {
	if c.state != StateAnswered {
		return fmt.Errorf("cannot rate in state %s", c.state)
	}

	question, ok := c.CurrentQuestion()
	if !ok {
		return fmt.Errorf("no current question at position %d", c.position)
	}

	now := c.clock()
	current, ok := c.schedule[question.ID]
	if !ok {
		current = srs.NewScheduleState(now)
	}
	c.schedule[question.ID] = srs.Rate(current, rating, now)

	c.position++
	c.session.CurrentIndex = c.position
	c.selected = ""
	c.answered = false
	c.correct = false

	if c.position >= len(c.queue) {
		c.state = StateCompleted
		c.finalize(ctx, now)
		return nil
	}

	if err := c.store.SaveResume(ctx, c.deck.ID, c.queue[c.position]); err != nil {
		slog.Warn("saving resume pointer failed", "deckId", c.deck.ID, "error", err)
	}
	c.state = StatePresenting
	return nil
}

// finalize folds the finished session into the aggregate and writes deck
// and progress back. Failures are logged and swallowed: the local session
// already happened, durability is best effort at this boundary.
func (c *Controller) finalize(ctx context.Context, now time.Time) {
	endTime := now
	c.session.EndTime = &endTime

	lastStudied := now
	c.deck.LastStudied = &lastStudied
	if err := c.store.SaveDeck(ctx, c.deck); err != nil {
		slog.Warn("saving deck failed", "deckId", c.deck.ID, "error", err)
	}

	schedule := make(map[string]srs.ScheduleState, len(c.schedule))
	for id, state := range c.schedule {
		schedule[id] = state
	}
	c.progress.ApplySession(c.session, schedule)
	if err := c.store.SaveProgress(ctx, c.progress); err != nil {
		slog.Warn("saving progress failed", "deckId", c.deck.ID, "error", err)
	}

	if err := c.store.ClearResume(ctx, c.deck.ID); err != nil {
		slog.Warn("clearing resume pointer failed", "deckId", c.deck.ID, "error", err)
	}
}

// State returns the current state tag.
func (c *Controller) State() State {
	return c.state
}

// Deck returns the deck under study.
func (c *Controller) Deck() deck.Deck {
	return c.deck
}

// CurrentQuestion returns the question at the current queue position.
func (c *Controller) CurrentQuestion() (deck.Question, bool) {
	if c.position >= len(c.queue) {
		return deck.Question{}, false
	}
	return c.deck.Questions[c.queue[c.position]], true
}

// Position returns the current queue position.
func (c *Controller) Position() int {
	return c.position
}

// QueueLength returns the presentation queue length.
func (c *Controller) QueueLength() int {
	return len(c.queue)
}

// Progress returns the completed share of the queue in [0, 1].
func (c *Controller) Progress() float64 {
	if len(c.queue) == 0 {
		return 1
	}
	return float64(c.position) / float64(len(c.queue))
}

// Selected returns the locked-in answer letter and whether the current
// question has been answered.
func (c *Controller) Selected() (string, bool) {
	return c.selected, c.answered
}

// WasCorrect reports whether the locked-in answer was correct.
func (c *Controller) WasCorrect() bool {
	return c.correct
}

// Session returns the running session snapshot.
func (c *Controller) Session() storage.Session {
	return c.session
}

// ResumePointer returns the saved question index shown while awaiting the
// resume choice.
func (c *Controller) ResumePointer() int {
	return c.resumePointer
}

// ScheduleFor returns the in-memory schedule state for a question id.
func (c *Controller) ScheduleFor(questionID string) (srs.ScheduleState, bool) {
	state, ok := c.schedule[questionID]
	return state, ok
}
