package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcqdeck/mcqdeck/internal/deck"
	"github.com/mcqdeck/mcqdeck/internal/inference"
	"github.com/mcqdeck/mcqdeck/internal/inference/openai"
	"github.com/mcqdeck/mcqdeck/internal/storage"
	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	var name string
	var count int
	command := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate a deck of questions from a text file using OpenAI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}

			if cfg.OpenAI.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable is required")
			}

			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("os.ReadFile() > %w", err)
			}

			fmt.Printf("Using OpenAI provider (model: %s)\n", cfg.OpenAI.Model)
			openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
			defer func() {
				_ = openaiClient.Close()
			}()

			deckName := name
			if deckName == "" {
				deckName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			fmt.Printf("Generating %d questions...\n", count)
			d, err := generateDeck(context.Background(), openaiClient, store, deckName, string(content), count)
			if err != nil {
				return err
			}

			fmt.Printf("Created deck %q with %d questions (id: %s)\n", d.Name, len(d.Questions), d.ID)
			return nil
		},
	}
	command.Flags().StringVar(&name, "name", "", "Deck name. Defaults to the file name without extension")
	command.Flags().IntVar(&count, "count", inference.DefaultQuestionCount, "Number of questions to generate")

	return command
}

// generateDeck asks the inference client for questions, parses the pipe
// format response into a deck and saves it.
func generateDeck(
	ctx context.Context,
	client inference.Client,
	store storage.Store,
	name string,
	content string,
	count int,
) (deck.Deck, error) {
	generated, err := client.GenerateQuestions(ctx, inference.GenerateQuestionsParams{
		Content: content,
		Count:   count,
	})
	if err != nil {
		return deck.Deck{}, fmt.Errorf("client.GenerateQuestions() > %w", err)
	}

	questions := deck.ParseContent(generated)
	if len(questions) == 0 {
		return deck.Deck{}, fmt.Errorf("no questions could be parsed from the model output")
	}

	d := deck.New(name, questions)
	if err := d.Validate(); err != nil {
		return deck.Deck{}, fmt.Errorf("generated deck is invalid: %w", err)
	}
	if err := store.SaveDeck(ctx, d); err != nil {
		return deck.Deck{}, fmt.Errorf("store.SaveDeck() > %w", err)
	}
	return d, nil
}
