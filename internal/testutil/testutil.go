// Package testutil provides shared test helpers for creating config files and deck fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcqdeck/mcqdeck/internal/deck"
	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file and all required directories for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"data", "exports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`storage:
  backend: file
  data_directory: %s
exports:
  directory: %s
`,
		filepath.Join(tmpDir, "data"),
		filepath.Join(tmpDir, "exports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key for tests
// that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// DeckOption configures optional fields when creating a deck fixture.
type DeckOption func(*deckConfig)

type deckConfig struct {
	id        string
	questions []deck.Question
}

// WithDeckID overrides the generated deck id so tests can use stable ids.
func WithDeckID(id string) DeckOption {
	return func(cfg *deckConfig) {
		cfg.id = id
	}
}

// WithQuestions replaces the default three-question fixture.
func WithQuestions(questions []deck.Question) DeckOption {
	return func(cfg *deckConfig) {
		cfg.questions = questions
	}
}

// NewTestDeck creates a deck fixture with three questions answered A, B and C.
func NewTestDeck(t *testing.T, name string, opts ...DeckOption) deck.Deck {
	t.Helper()

	cfg := deckConfig{
		questions: []deck.Question{
			{
				ID:       "q-0",
				Question: "What is the capital of France?",
				Options:  []string{"Paris", "Lyon", "Nice", "Lille"},
				Answer:   "A",
			},
			{
				ID:       "q-1",
				Question: "Which planet is known as the red planet?",
				Options:  []string{"Venus", "Mars", "Jupiter", "Saturn"},
				Answer:   "B",
			},
			{
				ID:       "q-2",
				Question: "What is the chemical symbol for gold?",
				Options:  []string{"Ag", "Fe", "Au", "Cu"},
				Answer:   "C",
			},
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := deck.New(name, cfg.questions)
	if cfg.id != "" {
		d.ID = cfg.id
	}
	require.NoError(t, d.Validate())
	return d
}
