package main

import (
	"context"
	"fmt"

	"github.com/mcqdeck/mcqdeck/internal/cli"
	"github.com/spf13/cobra"
)

func newStudyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "study <deck id>",
		Short: "Start an interactive study session for a deck",
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

			studyCLI, err := cli.NewStudyCLI(context.Background(), store, args[0], nil, nil)
			if err != nil {
				if cli.IsDeckNotFound(err) {
					return fmt.Errorf("deck %q not found, run 'mcqdeck decks list' to see available decks", args[0])
				}
				return err
			}

			return studyCLI.Run(context.Background(), studyCLI)
		},
	}
}
