package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcqdeck/mcqdeck/internal/storage"
	"github.com/mcqdeck/mcqdeck/internal/study"
	"github.com/mcqdeck/mcqdeck/internal/testutil"
)

func setupStudyStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SaveDeck(context.Background(),
		testutil.NewTestDeck(t, "Deck", testutil.WithDeckID("d-1"))))
	return store
}

func fixedClock(now time.Time) study.Option {
	return study.WithClock(func() time.Time {
		return now
	})
}

func TestStudyCLI_Run(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("full session", func(t *testing.T) {
		store := setupStudyStore(t)
		// Wrong answer on the first question, correct on the rest.
		input := strings.NewReader("B\n1\nB\n3\nC\n4\n")
		var output bytes.Buffer

		studyCLI, err := NewStudyCLI(ctx, store, "d-1", input, &output, fixedClock(now))
		require.NoError(t, err)
		require.NoError(t, studyCLI.Run(ctx, studyCLI))

		got := output.String()
		assert.Contains(t, got, "Question 1 of 3")
		assert.Contains(t, got, "What is the capital of France?")
		assert.Contains(t, got, "Wrong, the answer is A.")
		assert.Contains(t, got, "Correct, the answer is B.")
		assert.Contains(t, got, "Session complete for Deck!")
		assert.Contains(t, got, "Correct: 2  Incorrect: 1")
		assert.Contains(t, got, "Accuracy: 67%")

		progress, err := store.GetProgress(ctx, "d-1")
		require.NoError(t, err)
		assert.Equal(t, 1, progress.TotalAttempts)
		assert.Equal(t, 2, progress.CorrectAnswers)
	})

	t.Run("invalid inputs are re-prompted", func(t *testing.T) {
		store := setupStudyStore(t)
		input := strings.NewReader("X\nA\n9\n3\nB\n3\nC\n3\n")
		var output bytes.Buffer

		studyCLI, err := NewStudyCLI(ctx, store, "d-1", input, &output, fixedClock(now))
		require.NoError(t, err)
		require.NoError(t, studyCLI.Run(ctx, studyCLI))

		got := output.String()
		assert.Contains(t, got, "Not a valid option.")
		assert.Contains(t, got, "Not a valid rating.")
		assert.Contains(t, got, "Session complete for Deck!")
	})

	t.Run("quit keeps the resume pointer", func(t *testing.T) {
		store := setupStudyStore(t)
		input := strings.NewReader("A\n3\nq\n")
		var output bytes.Buffer

		studyCLI, err := NewStudyCLI(ctx, store, "d-1", input, &output, fixedClock(now))
		require.NoError(t, err)
		require.NoError(t, studyCLI.Run(ctx, studyCLI))

		pointer, found, err := store.GetResume(ctx, "d-1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 1, pointer)

		// Nothing was folded into the aggregate.
		progress, err := store.GetProgress(ctx, "d-1")
		require.NoError(t, err)
		assert.Zero(t, progress.TotalAttempts)
	})

	t.Run("interrupted session prompts to resume", func(t *testing.T) {
		store := setupStudyStore(t)
		require.NoError(t, store.SaveResume(ctx, "d-1", 1))

		input := strings.NewReader("resume\nB\n3\nC\n3\n")
		var output bytes.Buffer

		studyCLI, err := NewStudyCLI(ctx, store, "d-1", input, &output, fixedClock(now))
		require.NoError(t, err)
		require.NoError(t, studyCLI.Run(ctx, studyCLI))

		got := output.String()
		assert.Contains(t, got, "An unfinished session was found for Deck.")
		assert.Contains(t, got, "Question 2 of 3")
		assert.NotContains(t, got, "Question 1 of 3")
		assert.Contains(t, got, "Session complete for Deck!")
	})

	t.Run("restart begins from the first question", func(t *testing.T) {
		store := setupStudyStore(t)
		require.NoError(t, store.SaveResume(ctx, "d-1", 2))

		input := strings.NewReader("restart\nA\n3\nB\n3\nC\n3\n")
		var output bytes.Buffer

		studyCLI, err := NewStudyCLI(ctx, store, "d-1", input, &output, fixedClock(now))
		require.NoError(t, err)
		require.NoError(t, studyCLI.Run(ctx, studyCLI))

		got := output.String()
		assert.Contains(t, got, "Question 1 of 3")
		assert.Contains(t, got, "Correct: 3  Incorrect: 0")
	})
}

func TestNewStudyCLI_missingDeck(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = NewStudyCLI(context.Background(), store, "missing", strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, IsDeckNotFound(err))
}
