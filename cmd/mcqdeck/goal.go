package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGoalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "goal [questions per day]",
		Short: "Show or set the daily question goal",
		Args:  cobra.MaximumNArgs(1),
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
			if len(args) == 0 {
				goal, err := store.GetDailyGoal(ctx)
				if err != nil {
					return fmt.Errorf("store.GetDailyGoal() > %w", err)
				}
				fmt.Printf("Daily goal: %d questions\n", goal)
				return nil
			}

			goal, err := strconv.Atoi(args[0])
			if err != nil || goal <= 0 {
				return fmt.Errorf("invalid goal %q, must be a positive number", args[0])
			}
			if err := store.SetDailyGoal(ctx, goal); err != nil {
				return fmt.Errorf("store.SetDailyGoal() > %w", err)
			}
			fmt.Printf("Daily goal set to %d questions\n", goal)
			return nil
		},
	}
}
