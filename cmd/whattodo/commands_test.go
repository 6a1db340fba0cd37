package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/whattodo/internal/common"
	"github.com/Veraticus/whattodo/internal/config"
	"github.com/Veraticus/whattodo/internal/model"
	"github.com/Veraticus/whattodo/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCatalog points the commands at a fresh database file.
func setupCatalog(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	viper.Set(config.KeyDatabasePath, dbPath)
	return dbPath
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func openCatalog(t *testing.T, dbPath string) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAddAndList(t *testing.T) {
	setupCatalog(t)

	out, err := execute(t, addCmd(), "",
		"Board", "games", "--price", "free", "--weather", "RAINY", "--time", "half-day",
		"--people", "small group", "--notes", "bring snacks")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved #1")

	out, err = execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Board games")
	assert.Contains(t, out, "SMALL_GROUP")
	assert.Contains(t, out, "bring snacks")
}

func TestAdd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		wantErr string
		args    []string
	}{
		{
			name:    "missing field flag",
			args:    []string{"Walk", "--price", "free", "--weather", "sunny", "--time", "quick"},
			wantErr: "people",
		},
		{
			name:    "unknown value",
			args:    []string{"Walk", "--price", "pricey", "--weather", "sunny", "--time", "quick", "--people", "one"},
			wantErr: "--price",
		},
		{
			name:    "blank name",
			args:    []string{" ", "--price", "free", "--weather", "sunny", "--time", "quick", "--people", "one"},
			wantErr: "Invalid activity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCatalog(t)
			_, err := execute(t, addCmd(), "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAdd_ReplacesByID(t *testing.T) {
	dbPath := setupCatalog(t)

	_, err := execute(t, addCmd(), "", "Walk", "--price", "free", "--weather", "sunny", "--time", "quick", "--people", "one")
	require.NoError(t, err)
	_, err = execute(t, addCmd(), "", "Long walk", "--id", "1", "--price", "free", "--weather", "cloudy", "--time", "half_day", "--people", "two")
	require.NoError(t, err)

	store := openCatalog(t, dbPath)
	all, err := store.ListActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Long walk", all[0].Name)
	assert.Equal(t, model.WeatherCloudy, all[0].Weather)
}

func TestFind(t *testing.T) {
	setupCatalog(t)

	adds := [][]string{
		{"Hike", "--price", "free", "--weather", "sunny", "--time", "full_day", "--people", "small_group"},
		{"Museum", "--price", "cheap", "--weather", "rainy", "--time", "half_day", "--people", "two"},
		{"Spa day", "--price", "expensive", "--weather", "rainy", "--time", "full_day", "--people", "two"},
	}
	for _, args := range adds {
		_, err := execute(t, addCmd(), "", args...)
		require.NoError(t, err)
	}

	t.Run("ranks best match first", func(t *testing.T) {
		out, err := execute(t, findCmd(), "", "--weather", "rainy", "--people", "two", "--price", "moderate")
		require.NoError(t, err)
		assert.Contains(t, out, "priceRange=MODERATE weather=RAINY time=ANY people=TWO")

		museum := strings.Index(out, "Museum")
		spa := strings.Index(out, "Spa day")
		hike := strings.Index(out, "Hike")
		require.NotEqual(t, -1, museum)
		assert.Less(t, museum, spa, "expensive spa day misses the price bound")
		assert.Less(t, spa, hike)
	})

	t.Run("exact compares every field exclusively", func(t *testing.T) {
		out, err := execute(t, findCmd(), "", "--price", "moderate", "--exact")
		require.NoError(t, err)
		assert.Contains(t, out, "priceRange=exclusive")
		assert.NotContains(t, out, "4/4")
	})

	t.Run("limit", func(t *testing.T) {
		out, err := execute(t, findCmd(), "", "-n", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "... and 2 more")
	})

	t.Run("bad value", func(t *testing.T) {
		_, err := execute(t, findCmd(), "", "--weather", "snowy")
		assert.ErrorIs(t, err, model.ErrUnknownValue)
	})

	t.Run("bad mode", func(t *testing.T) {
		_, err := execute(t, findCmd(), "", "--mode", "weather")
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})
}

func TestFind_EmptyCatalog(t *testing.T) {
	setupCatalog(t)

	out, err := execute(t, findCmd(), "", "--weather", "any")
	require.NoError(t, err)
	assert.Contains(t, out, "No activities saved yet.")
}

func TestDelete(t *testing.T) {
	dbPath := setupCatalog(t)
	_, err := execute(t, addCmd(), "", "Walk", "--price", "free", "--weather", "sunny", "--time", "quick", "--people", "one")
	require.NoError(t, err)

	out, err := execute(t, deleteCmd(), "n\n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation canceled.")

	out, err = execute(t, deleteCmd(), "yes\n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "Walk"`)

	store := openCatalog(t, dbPath)
	count, err := store.CountActivities(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = execute(t, deleteCmd(), "", "--force", "1")
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "No activity with ID 1", userErr.UserMessage)

	_, err = execute(t, deleteCmd(), "", "one")
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	setupCatalog(t)
	file := filepath.Join("..", "..", "internal", "seed", "testdata", "catalog.yaml")

	out, err := execute(t, importCmd(), "", "--dry-run", file)
	require.NoError(t, err)
	assert.Contains(t, out, "3 activities are valid")

	out, err = execute(t, importCmd(), "", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 activities")

	out, err = execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "7")

	_, err = execute(t, importCmd(), "", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestModes(t *testing.T) {
	setupCatalog(t)
	viper.Set(config.ModeKey(model.FieldTime), "inclusive")

	out, err := execute(t, modesCmd(), "", "--mode", "weather=exclusive")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, model.FieldCount+1)
	assert.Regexp(t, `^priceRange\s+inclusive`, lines[1])
	assert.Regexp(t, `^weather\s+exclusive`, lines[2])
	assert.Regexp(t, `^time\s+inclusive`, lines[3])
	assert.Regexp(t, `^people\s+exclusive`, lines[4])

	viper.Set(config.ModeKey(model.FieldTime), "sometimes")
	_, err = execute(t, modesCmd(), "")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestSetupLogging(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(config.KeyLogLevel, "debug")
	viper.Set(config.KeyLogFormat, "json")
	assert.NoError(t, setupLogging())

	viper.Set(config.KeyLogLevel, "loud")
	assert.ErrorIs(t, setupLogging(), common.ErrInvalidConfig)
}
