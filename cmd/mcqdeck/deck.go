package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcqdeck/mcqdeck/internal/deck"
	"github.com/mcqdeck/mcqdeck/internal/pdf"
	"github.com/spf13/cobra"
)

func newDeckCommand() *cobra.Command {
	deckCommands := &cobra.Command{
		Use:   "decks",
		Short: "Manage flashcard decks",
	}

	deckCommands.AddCommand(newDeckListCommand())
	deckCommands.AddCommand(newDeckShowCommand())
	deckCommands.AddCommand(newDeckImportCommand())
	deckCommands.AddCommand(newDeckExportCommand())
	deckCommands.AddCommand(newDeckDeleteCommand())

	return deckCommands
}

func newDeckListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}

			decks, err := store.GetDecks(context.Background())
			if err != nil {
				return fmt.Errorf("store.GetDecks() > %w", err)
			}
			if len(decks) == 0 {
				fmt.Println("No decks found. Import one with 'mcqdeck decks import <file>'.")
				return nil
			}

			for _, d := range decks {
				lastStudied := "never"
				if d.LastStudied != nil {
					lastStudied = d.LastStudied.Format("2006-01-02")
				}
				fmt.Printf("%s  %-30s %3d questions  last studied: %s\n", d.ID, d.Name, len(d.Questions), lastStudied)
			}
			return nil
		},
	}
}

func newDeckShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <deck id>",
		Short: "Show the questions of a deck",
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

			d, err := store.GetDeck(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("store.GetDeck() > %w", err)
			}

			fmt.Printf("%s (%d questions)\n\n", d.Name, len(d.Questions))
			for i, question := range d.Questions {
				fmt.Printf("%d. %s\n", i+1, question.Question)
				for j, option := range question.Options {
					fmt.Printf("   %s. %s\n", deck.OptionLetter(j), option)
				}
				fmt.Printf("   Answer: %s\n\n", question.Answer)
			}
			return nil
		},
	}
}

func newDeckImportCommand() *cobra.Command {
	var name string
	command := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a deck from a YAML or MCQ text file",
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

			path := args[0]
			deckName := name
			if deckName == "" {
				deckName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			d, err := deck.ReadFile(path, deckName)
			if err != nil {
				return fmt.Errorf("deck.ReadFile() > %w", err)
			}
			if err := store.SaveDeck(context.Background(), d); err != nil {
				return fmt.Errorf("store.SaveDeck() > %w", err)
			}

			fmt.Printf("Imported deck %q with %d questions (id: %s)\n", d.Name, len(d.Questions), d.ID)
			return nil
		},
	}
	command.Flags().StringVar(&name, "name", "", "Deck name. Defaults to the file name without extension")

	return command
}

func newDeckExportCommand() *cobra.Command {
	var format string
	var output string
	command := &cobra.Command{
		Use:   "export <deck id>",
		Short: "Export a deck as YAML, markdown or PDF",
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

			d, err := store.GetDeck(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("store.GetDeck() > %w", err)
			}

			if err := os.MkdirAll(cfg.Exports.Directory, 0o755); err != nil {
				return fmt.Errorf("os.MkdirAll() > %w", err)
			}

			baseName := strings.ReplaceAll(strings.ToLower(d.Name), " ", "-")
			switch format {
			case "yaml":
				path := output
				if path == "" {
					path = filepath.Join(cfg.Exports.Directory, baseName+".yml")
				}
				if err := deck.WriteYamlFile(path, d); err != nil {
					return fmt.Errorf("deck.WriteYamlFile() > %w", err)
				}
				fmt.Printf("Exported deck to %s\n", path)
			case "markdown":
				path := output
				if path == "" {
					path = filepath.Join(cfg.Exports.Directory, baseName+".md")
				}
				if err := os.WriteFile(path, []byte(d.Markdown()), 0o644); err != nil {
					return fmt.Errorf("os.WriteFile() > %w", err)
				}
				fmt.Printf("Exported deck to %s\n", path)
			case "pdf":
				path := output
				if path == "" {
					path = filepath.Join(cfg.Exports.Directory, baseName+".pdf")
				}
				absPath, err := pdf.RenderMarkdown([]byte(d.Markdown()), path)
				if err != nil {
					return fmt.Errorf("pdf.RenderMarkdown() > %w", err)
				}
				fmt.Printf("Exported deck to %s\n", absPath)
			default:
				return fmt.Errorf("invalid format %q, valid values are yaml, markdown and pdf", format)
			}
			return nil
		},
	}
	command.Flags().StringVar(&format, "format", "yaml", "Export format. Options: yaml, markdown, pdf")
	command.Flags().StringVar(&output, "output", "", "Output file path. Defaults to the exports directory")

	return command
}

func newDeckDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <deck id>",
		Short: "Delete a deck and its progress",
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

			if err := store.DeleteDeck(context.Background(), args[0]); err != nil {
				return fmt.Errorf("store.DeleteDeck() > %w", err)
			}
			fmt.Println("Deck deleted.")
			return nil
		},
	}
}
