package main

import (
	"fmt"

	"github.com/Veraticus/whattodo/internal/cli"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every activity in the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			activities, err := store.ListActivities(ctx)
			if err != nil {
				return fmt.Errorf("failed to list activities: %w", err)
			}
			return cli.WriteActivities(cmd.OutOrStdout(), activities)
		},
	}
}
