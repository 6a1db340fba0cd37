package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/whattodo/internal/cli"
	"github.com/Veraticus/whattodo/internal/seed"
	"github.com/Veraticus/whattodo/internal/storage"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import activities from a YAML catalog",
		Long: `Import activities from a YAML file:

  activities:
    - name: Board games
      price: FREE
      weather: RAINY
      time: HALF_DAY
      people: SMALL_GROUP
      notes: Bring snacks

Entries with an id replace the stored activity with that id.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "validate the file without saving")
	cmd.Flags().Bool("no-checkpoint", false, "skip the automatic checkpoint")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	activities, err := seed.Load(args[0])
	if err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d activities are valid", len(activities))))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	if skip, _ := cmd.Flags().GetBool("no-checkpoint"); !skip {
		manager, err := storage.NewCheckpointManager(store)
		if err != nil {
			return fmt.Errorf("failed to create checkpoint manager: %w", err)
		}
		info, err := manager.AutoCheckpoint(ctx, "import")
		if err != nil {
			return err
		}
		slog.Debug("checkpoint before import", "id", info.ID)
	}

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(activities), "Importing")
	imported, err := seed.Import(ctx, store, activities, func() {
		_ = bar.Add(1)
	})
	if err != nil {
		slog.Warn("import stopped early", "imported", imported, "total", len(activities))
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d activities", imported)))
	return nil
}
