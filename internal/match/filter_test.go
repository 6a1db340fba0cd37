package match

import (
	"testing"

	"github.com/Veraticus/whattodo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterState_SetGet(t *testing.T) {
	fs := NewFilterState()
	for _, f := range model.Fields() {
		assert.Equal(t, model.Unset, fs.Get(f), "%s starts unset", f)
	}

	require.NoError(t, fs.Set(model.FieldPrice, 2))
	assert.Equal(t, model.Ordinal(2), fs.Get(model.FieldPrice))
	assert.Equal(t, "priceRange=MODERATE weather=ANY time=ANY people=ANY", fs.Snapshot().String())

	require.NoError(t, fs.Unset(model.FieldPrice))
	assert.Equal(t, model.Unset, fs.Get(model.FieldPrice))

	// Any negative ordinal means unset.
	require.NoError(t, fs.Set(model.FieldWeather, -5))
	assert.Equal(t, model.Unset, fs.Get(model.FieldWeather))
}

func TestFilterState_RejectsOutOfRange(t *testing.T) {
	fs := NewFilterState()
	notified := 0
	fs.OnChange(func() { notified++ })

	err := fs.Set(model.FieldWeather, 3)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	err = fs.Set(model.Field(12), 0)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	err = fs.Apply(Selection{0, 9, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	assert.Equal(t, 0, notified)
	assert.Equal(t, EmptySelection(), fs.Snapshot())
}

func TestFilterState_NotifiesEverySet(t *testing.T) {
	fs := NewFilterState()
	var calls []string
	cancelA := fs.OnChange(func() { calls = append(calls, "a") })
	fs.OnChange(func() { calls = append(calls, "b") })

	require.NoError(t, fs.Set(model.FieldTime, 1))
	// Setting the same value again is still a change notification.
	require.NoError(t, fs.Set(model.FieldTime, 1))
	assert.Equal(t, []string{"a", "b", "a", "b"}, calls)

	cancelA()
	cancelA()
	fs.Clear()
	assert.Equal(t, []string{"a", "b", "a", "b", "b"}, calls)
}

func TestFilterState_SnapshotIsACopy(t *testing.T) {
	fs := NewFilterState()
	snap := fs.Snapshot()
	snap[model.FieldPeople] = 2
	assert.Equal(t, model.Unset, fs.Get(model.FieldPeople))
}
