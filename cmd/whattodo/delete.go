package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Veraticus/whattodo/internal/cli"
	"github.com/Veraticus/whattodo/internal/common"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an activity from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE:    runDelete,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid activity ID: %w", err)
	}

	force, _ := cmd.Flags().GetBool("force")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	activity, err := store.GetActivity(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("No activity with ID %d", id), err)
	}
	if err != nil {
		return fmt.Errorf("failed to get activity: %w", err)
	}

	if !force {
		fmt.Fprintln(out, activity.Summary())
		reader := cli.NewNonBlockingReader(cmd.InOrStdin())
		ok, err := cli.Confirm(ctx, reader, out, fmt.Sprintf("Delete activity %d?", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Operation canceled.")
			return nil
		}
	}

	if err := store.DeleteActivity(ctx, id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %q", activity.Name)))
	return nil
}
