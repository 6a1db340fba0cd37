package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/whattodo/internal/config"
	"github.com/Veraticus/whattodo/internal/match"
	"github.com/Veraticus/whattodo/internal/model"
	"github.com/Veraticus/whattodo/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage opens the catalog database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("opened catalog", "path", dbPath)
	return store, nil
}

func closeStorage(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// fieldFlags maps each field to the flag that sets it.
var fieldFlags = map[model.Field]string{
	model.FieldPrice:   "price",
	model.FieldWeather: "weather",
	model.FieldTime:    "time",
	model.FieldPeople:  "people",
}

// addFieldFlags registers one string flag per field, listing its values in the usage.
func addFieldFlags(cmd *cobra.Command, verb string) {
	for _, f := range model.Fields() {
		cmd.Flags().String(fieldFlags[f], "", fmt.Sprintf("%s %s (%s)",
			verb, strings.ToLower(f.Title()), strings.Join(f.Values(), ", ")))
	}
}

// selectionFromFlags reads the field flags into a selection. Empty or "any" leaves a
// field unset.
func selectionFromFlags(cmd *cobra.Command) (match.Selection, error) {
	sel := match.EmptySelection()
	for _, f := range model.Fields() {
		raw, _ := cmd.Flags().GetString(fieldFlags[f])
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.EqualFold(raw, "any") {
			continue
		}
		o, err := f.Parse(raw)
		if err != nil {
			return sel, fmt.Errorf("--%s: %w", fieldFlags[f], err)
		}
		sel[f] = o
	}
	return sel, nil
}

// policyFromFlags combines configured modes with --mode and --exact.
func policyFromFlags(cmd *cobra.Command) (*match.Policy, error) {
	pairs, _ := cmd.Flags().GetStringArray("mode")
	exact, _ := cmd.Flags().GetBool("exact")

	flags, err := config.ParseModeFlags(pairs)
	if err != nil {
		return nil, err
	}
	return config.PolicyFromViper(viper.GetViper(), flags, exact)
}

func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("mode", nil, "comparison mode for one run as field=inclusive|exclusive (repeatable)")
	cmd.Flags().Bool("exact", false, "compare every field exclusively")
}
