package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/whattodo/internal/cli"
	"github.com/Veraticus/whattodo/internal/match"
	"github.com/Veraticus/whattodo/internal/tui"
	"github.com/spf13/cobra"
)

func findCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Rank activities against a filter",
		Long: `Rank every activity by how well it matches the filter. Fields left out (or
set to "any") match everything.

With --interactive the filter can be edited live; the ranking follows every change
and every change to the catalog.`,
		Example: `  whattodo find --weather rainy --people two
  whattodo find --price cheap --mode priceRange=exclusive
  whattodo find -i`,
		Args: cobra.NoArgs,
		RunE: runFind,
	}

	addFieldFlags(cmd, "wanted")
	addPolicyFlags(cmd)
	cmd.Flags().IntP("limit", "n", 10, "show at most this many activities (0 for all)")
	cmd.Flags().BoolP("interactive", "i", false, "edit the filter interactively")

	return cmd
}

func runFind(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sel, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}
	policy, err := policyFromFlags(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	interactive, _ := cmd.Flags().GetBool("interactive")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	filter := match.NewFilterState()
	if err := filter.Apply(sel); err != nil {
		return err
	}
	engine := match.NewEngine(store, filter, policy)

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- engine.Run(runCtx) }()
	defer func() {
		stop()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("match engine stopped", "session", engine.SessionID(), "error", err)
		}
	}()

	if interactive {
		cfg := tui.NewConfig(engine, tui.WithStore(store), tui.WithResults(limit))
		return tui.Run(runCtx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	ranking, err := firstRanking(runCtx, engine)
	if err != nil {
		return err
	}
	return cli.WriteRanking(cmd.OutOrStdout(), ranking, limit)
}

// firstRanking waits for the engine to publish its first ranking.
func firstRanking(ctx context.Context, engine *match.Engine) (match.Ranking, error) {
	sub, cancel := engine.Subscribe()
	defer cancel()

	select {
	case r, ok := <-sub:
		if !ok {
			return match.Ranking{}, errors.New("match engine stopped before ranking")
		}
		return r, nil
	case <-ctx.Done():
		return match.Ranking{}, ctx.Err()
	}
}
