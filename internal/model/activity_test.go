package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_Ordinal(t *testing.T) {
	a := Activity{
		Name:    "Museum",
		Price:   PriceCheap,
		Weather: WeatherRainy,
		Time:    TimeHalfDay,
		People:  PeopleLargeGroup,
	}

	assert.Equal(t, Ordinal(1), a.Ordinal(FieldPrice))
	assert.Equal(t, Ordinal(0), a.Ordinal(FieldWeather))
	assert.Equal(t, Ordinal(1), a.Ordinal(FieldTime))
	assert.Equal(t, Ordinal(3), a.Ordinal(FieldPeople))
	assert.Equal(t, Unset, a.Ordinal(Field(42)))
	assert.Equal(t, "CHEAP/RAINY/HALF_DAY/LARGE_GROUP", a.Summary())
}

func TestActivity_Normalize(t *testing.T) {
	// "Cafe" with a combining acute accent normalizes to the precomposed form.
	a := Activity{Name: "  Cafe\u0301 crawl ", Notes: " bring cash\n"}
	a.Normalize()

	assert.Equal(t, "Caf\u00e9 crawl", a.Name)
	assert.Equal(t, "bring cash", a.Notes)
}

func TestParseEnums(t *testing.T) {
	p, err := ParsePriceRange("expensive")
	require.NoError(t, err)
	assert.Equal(t, PriceExpensive, p)

	w, err := ParseWeatherType("Cloudy")
	require.NoError(t, err)
	assert.Equal(t, WeatherCloudy, w)

	d, err := ParseTimeRequired("full_day")
	require.NoError(t, err)
	assert.Equal(t, TimeFullDay, d)

	n, err := ParsePeopleNumber("large-group")
	require.NoError(t, err)
	assert.Equal(t, PeopleLargeGroup, n)

	_, err = ParsePeopleNumber("crowd")
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, PriceExpensive.Valid())
	assert.False(t, PriceRange(4).Valid())
	assert.False(t, WeatherType(-1).Valid())
	assert.True(t, TimeFullDay.Valid())
	assert.False(t, PeopleNumber(4).Valid())
	assert.Equal(t, "SMALL_GROUP", PeopleSmallGroup.String())
}
