package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mcqdeck/mcqdeck/internal/statistics"
	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics across all decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			decks, err := store.GetDecks(ctx)
			if err != nil {
				return fmt.Errorf("store.GetDecks() > %w", err)
			}
			progress, err := store.GetAllProgress(ctx)
			if err != nil {
				return fmt.Errorf("store.GetAllProgress() > %w", err)
			}
			dailyGoal, err := store.GetDailyGoal(ctx)
			if err != nil {
				return fmt.Errorf("store.GetDailyGoal() > %w", err)
			}

			overview := statistics.Calculate(decks, progress, dailyGoal, time.Now())

			fmt.Printf("Decks: %d, Questions: %d, Attempts: %d\n", overview.TotalDecks, overview.TotalQuestions, overview.TotalAttempts)
			fmt.Printf("Overall accuracy: %.1f%%\n", overview.OverallAccuracy*100)
			fmt.Printf("Due today: %d (daily goal: %d)\n\n", overview.DueToday, overview.DailyGoal)

			if len(overview.Decks) == 0 {
				return nil
			}
			fmt.Printf("%-30s %9s %8s %8s %9s %12s\n", "Deck", "Questions", "Attempts", "Accuracy", "Due today", "Last studied")
			for _, row := range overview.Decks {
				lastStudied := "never"
				if row.LastStudied != nil {
					lastStudied = row.LastStudied.Format("2006-01-02")
				}
				fmt.Printf("%-30s %9d %8d %7.1f%% %9d %12s\n",
					row.DeckName, row.Questions, row.Attempts, row.Accuracy*100, row.DueToday, lastStudied)
			}
			return nil
		},
	}
}
