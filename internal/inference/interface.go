// Package inference defines the AI client contract used to generate
// multiple-choice questions from source material.
package inference

import "context"

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client generates MCQ content from study material.
type Client interface {
	GenerateQuestions(ctx context.Context, params GenerateQuestionsParams) (string, error)
	Close() error
}

// GenerateQuestionsParams holds the source material and how many questions
// to produce. The response is pipe-format MCQ text, one question per line:
//
//	Question | Option A | Option B | Option C | Option D | Answer
type GenerateQuestionsParams struct {
	Content string
	Count   int
}

const (
	// DefaultQuestionCount is used when the caller does not ask for a
	// specific number of questions.
	DefaultQuestionCount = 5

	// DefaultMaxRetryAttempts bounds retries of transient API failures.
	DefaultMaxRetryAttempts = 3
)
