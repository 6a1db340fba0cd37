package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/whattodo/internal/cli"
	"github.com/Veraticus/whattodo/internal/common"
	"github.com/Veraticus/whattodo/internal/model"
	"github.com/Veraticus/whattodo/internal/storage"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an activity to the catalog",
		Long: `Add an activity to the catalog. Every field must be given.

Passing --id replaces the activity stored under that id.`,
		Example: `  whattodo add "Board games" --price free --weather rainy --time half_day --people small_group`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runAdd,
	}

	addFieldFlags(cmd, "the activity's")
	cmd.Flags().String("notes", "", "free-text notes")
	cmd.Flags().Int64("id", 0, "replace the activity with this id")
	for _, name := range fieldFlags {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func activityFromFlags(cmd *cobra.Command, args []string) (model.Activity, error) {
	var (
		a   model.Activity
		err error
	)
	a.Name = strings.Join(args, " ")
	a.Notes, _ = cmd.Flags().GetString("notes")
	a.ID, _ = cmd.Flags().GetInt64("id")

	price, _ := cmd.Flags().GetString("price")
	if a.Price, err = model.ParsePriceRange(price); err != nil {
		return a, fmt.Errorf("--price: %w", err)
	}
	weather, _ := cmd.Flags().GetString("weather")
	if a.Weather, err = model.ParseWeatherType(weather); err != nil {
		return a, fmt.Errorf("--weather: %w", err)
	}
	timeRequired, _ := cmd.Flags().GetString("time")
	if a.Time, err = model.ParseTimeRequired(timeRequired); err != nil {
		return a, fmt.Errorf("--time: %w", err)
	}
	people, _ := cmd.Flags().GetString("people")
	if a.People, err = model.ParsePeopleNumber(people); err != nil {
		return a, fmt.Errorf("--people: %w", err)
	}
	return a, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	activity, err := activityFromFlags(cmd, args)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	id, err := store.InsertActivity(ctx, &activity)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidActivity) {
			return common.NewUserError("Invalid activity", err)
		}
		return fmt.Errorf("failed to save activity: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved #%d %s", id, activity.Summary())))
	return nil
}
