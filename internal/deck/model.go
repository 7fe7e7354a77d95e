// Package deck provides the question and deck domain models and the
// text formats decks can be imported from and exported to.
package deck

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Question is a single multiple-choice question. Answer holds the
// letter label of the correct option (A, B, C, D).
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Options  []string `json:"options" yaml:"options"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// Deck is an ordered collection of questions. The question order is the
// authoring order; study sessions may present questions in a different order.
type Deck struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Questions   []Question `json:"questions" yaml:"questions"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"created_at"`
	LastStudied *time.Time `json:"lastStudied,omitempty" yaml:"last_studied,omitempty"`
}

// New builds a deck with a fresh id and creation timestamp.
func New(name string, questions []Question) Deck {
	return Deck{
		ID:        uuid.NewString(),
		Name:      name,
		Questions: questions,
		CreatedAt: time.Now(),
	}
}

// OptionLetter returns the letter label for an option index (0 -> A).
func OptionLetter(index int) string {
	return string(rune('A' + index))
}

// Validate checks that every question has at least two options and that
// its answer is one of the valid option letters.
func (d Deck) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("deck has no id")
	}
	if d.Name == "" {
		return fmt.Errorf("deck %s has no name", d.ID)
	}
	for i, q := range d.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Validate checks the question invariants.
func (q Question) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %q needs at least 2 options, got %d", q.Question, len(q.Options))
	}
	valid := false
	for i := range q.Options {
		if q.Answer == OptionLetter(i) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("question %q has answer %q outside options A-%s",
			q.Question, q.Answer, OptionLetter(len(q.Options)-1))
	}
	return nil
}
