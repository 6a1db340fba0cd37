package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/whattodo/internal/common"
	"github.com/Veraticus/whattodo/internal/model"
	"github.com/Veraticus/whattodo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	activities, err := Load("testdata/catalog.yaml")
	require.NoError(t, err)
	require.Len(t, activities, 3)

	hike := activities[0]
	assert.Equal(t, "Hike the ridge", hike.Name)
	assert.Equal(t, model.PriceFree, hike.Price)
	assert.Equal(t, model.WeatherSunny, hike.Weather)
	assert.Equal(t, model.TimeFullDay, hike.Time)
	assert.Equal(t, model.PeopleSmallGroup, hike.People)
	assert.Equal(t, "Bring water", hike.Notes)

	assert.Equal(t, model.PriceCheap, activities[1].Price)
	assert.Equal(t, int64(7), activities[2].ID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "unknown key", input: "activities:\n  - name: Swim\n    colour: blue\n"},
		{name: "unknown top-level key", input: "things: []\n"},
		{name: "unknown label", input: "activities:\n  - name: Swim\n    price: priceless\n    weather: sunny\n    time: quick\n    people: one\n"},
		{name: "missing name", input: "activities:\n  - price: free\n    weather: sunny\n    time: quick\n    people: one\n"},
		{name: "missing field value", input: "activities:\n  - name: Swim\n    price: free\n    time: quick\n    people: one\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, common.ErrInvalidInput)
		})
	}
}

func TestImport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	activities, err := Load("testdata/catalog.yaml")
	require.NoError(t, err)

	steps := 0
	n, err := Import(ctx, db.Storage, activities, func() { steps++ })
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, steps)

	stored, err := db.Storage.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, int64(7), stored[2].ID)

	// Importing again replaces the row with a fixed id and appends the others.
	n, err = Import(ctx, db.Storage, activities, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	count, err := db.Storage.CountActivities(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

type flakyInserter struct {
	failures int
	calls    int
}

func (f *flakyInserter) InsertActivity(_ context.Context, a *model.Activity) (int64, error) {
	f.calls++
	if f.calls <= f.failures {
		return 0, common.ErrBusy
	}
	return int64(f.calls), nil
}

type brokenInserter struct{}

func (brokenInserter) InsertActivity(context.Context, *model.Activity) (int64, error) {
	return 0, errors.New("disk full")
}

func TestImport_Retries(t *testing.T) {
	store := &flakyInserter{failures: 1}
	n, err := Import(context.Background(), store, []model.Activity{{Name: "Swim"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, store.calls)
}

func TestImport_StopsOnFailure(t *testing.T) {
	n, err := Import(context.Background(), brokenInserter{}, []model.Activity{{Name: "Swim"}, {Name: "Run"}}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Swim")
	assert.Equal(t, 0, n)
}
