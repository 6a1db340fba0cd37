// Package model defines the activity catalog's domain types.
package model

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// PriceRange is how much an activity costs.
type PriceRange int

// Price ranges, least demanding first.
const (
	PriceFree PriceRange = iota
	PriceCheap
	PriceModerate
	PriceExpensive
)

// String implements fmt.Stringer.
func (p PriceRange) String() string { return FieldPrice.Label(Ordinal(p)) }

// Valid reports whether p is a known price range.
func (p PriceRange) Valid() bool { return FieldPrice.Contains(Ordinal(p)) }

// ParsePriceRange parses a price range label such as "cheap".
func ParsePriceRange(s string) (PriceRange, error) {
	o, err := FieldPrice.Parse(s)
	return PriceRange(o), err
}

// WeatherType is the weather an activity needs.
type WeatherType int

// Weather requirements, least demanding first.
const (
	WeatherRainy WeatherType = iota
	WeatherCloudy
	WeatherSunny
)

// String implements fmt.Stringer.
func (w WeatherType) String() string { return FieldWeather.Label(Ordinal(w)) }

// Valid reports whether w is a known weather type.
func (w WeatherType) Valid() bool { return FieldWeather.Contains(Ordinal(w)) }

// ParseWeatherType parses a weather label such as "sunny".
func ParseWeatherType(s string) (WeatherType, error) {
	o, err := FieldWeather.Parse(s)
	return WeatherType(o), err
}

// TimeRequired is how long an activity takes.
type TimeRequired int

// Durations, shortest first.
const (
	TimeQuick TimeRequired = iota
	TimeHalfDay
	TimeFullDay
)

// String implements fmt.Stringer.
func (t TimeRequired) String() string { return FieldTime.Label(Ordinal(t)) }

// Valid reports whether t is a known duration.
func (t TimeRequired) Valid() bool { return FieldTime.Contains(Ordinal(t)) }

// ParseTimeRequired parses a duration label such as "half-day".
func ParseTimeRequired(s string) (TimeRequired, error) {
	o, err := FieldTime.Parse(s)
	return TimeRequired(o), err
}

// PeopleNumber is the group size an activity is meant for.
type PeopleNumber int

// Group sizes, smallest first.
const (
	PeopleOne PeopleNumber = iota
	PeopleTwo
	PeopleSmallGroup
	PeopleLargeGroup
)

// String implements fmt.Stringer.
func (p PeopleNumber) String() string { return FieldPeople.Label(Ordinal(p)) }

// Valid reports whether p is a known group size.
func (p PeopleNumber) Valid() bool { return FieldPeople.Contains(Ordinal(p)) }

// ParsePeopleNumber parses a group size label such as "small_group".
func ParsePeopleNumber(s string) (PeopleNumber, error) {
	o, err := FieldPeople.Parse(s)
	return PeopleNumber(o), err
}

// Activity is a saved thing to do, described by one value per Field.
type Activity struct {
	CreatedAt time.Time
	Name      string       `validate:"required,max=120"`
	Notes     string       `validate:"max=2000"`
	ID        int64        `validate:"min=0"`
	Price     PriceRange   `validate:"enum"`
	Weather   WeatherType  `validate:"enum"`
	Time      TimeRequired `validate:"enum"`
	People    PeopleNumber `validate:"enum"`
}

// Ordinal returns the activity's value for a field.
func (a Activity) Ordinal(f Field) Ordinal {
	switch f {
	case FieldPrice:
		return Ordinal(a.Price)
	case FieldWeather:
		return Ordinal(a.Weather)
	case FieldTime:
		return Ordinal(a.Time)
	case FieldPeople:
		return Ordinal(a.People)
	default:
		return Unset
	}
}

// Normalize trims and NFC-normalizes the free-text fields so equal names compare equal.
func (a *Activity) Normalize() {
	a.Name = norm.NFC.String(strings.TrimSpace(a.Name))
	a.Notes = norm.NFC.String(strings.TrimSpace(a.Notes))
}

// Summary renders the activity's field values as "FREE/SUNNY/QUICK/ONE".
func (a Activity) Summary() string {
	labels := make([]string, 0, FieldCount)
	for _, f := range Fields() {
		labels = append(labels, f.Label(a.Ordinal(f)))
	}
	return strings.Join(labels, "/")
}

// String implements fmt.Stringer.
func (a Activity) String() string {
	return fmt.Sprintf("#%d %s (%s)", a.ID, a.Name, a.Summary())
}
