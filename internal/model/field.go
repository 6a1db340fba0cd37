package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValue is returned when a label does not name a value of a field.
var ErrUnknownValue = errors.New("unknown field value")

// Ordinal is the zero-based position of a value within a field's enumeration.
type Ordinal int

// Unset marks a filter field that does not constrain matching.
const Unset Ordinal = -1

// IsSet reports whether the ordinal selects a value.
func (o Ordinal) IsSet() bool {
	return o >= 0
}

// Field is one of the closed set of attributes an activity is described by.
type Field int

// Fields in scoring order. FieldCount must stay last.
const (
	FieldPrice Field = iota
	FieldWeather
	FieldTime
	FieldPeople

	FieldCount = int(FieldPeople) + 1
)

// Order states which end of a field's enumeration is the least demanding one.
// Threshold matching reads a filter value as a bound in the less demanding direction.
type Order int

const (
	// AscendingDemand means lower ordinals are less demanding (FREE before EXPENSIVE).
	AscendingDemand Order = iota
	// DescendingDemand means higher ordinals are less demanding.
	DescendingDemand
)

type fieldInfo struct {
	name   string
	title  string
	values []string
	order  Order
}

var fieldTable = [FieldCount]fieldInfo{
	FieldPrice: {
		name:   "priceRange",
		title:  "Price range",
		values: []string{"FREE", "CHEAP", "MODERATE", "EXPENSIVE"},
		order:  AscendingDemand,
	},
	FieldWeather: {
		name:   "weather",
		title:  "Weather",
		values: []string{"RAINY", "CLOUDY", "SUNNY"},
		order:  AscendingDemand,
	},
	FieldTime: {
		name:   "time",
		title:  "Time required",
		values: []string{"QUICK", "HALF_DAY", "FULL_DAY"},
		order:  AscendingDemand,
	},
	FieldPeople: {
		name:   "people",
		title:  "People",
		values: []string{"ONE", "TWO", "SMALL_GROUP", "LARGE_GROUP"},
		order:  AscendingDemand,
	},
}

// Fields returns every field in scoring order.
func Fields() []Field {
	fields := make([]Field, FieldCount)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	return f >= 0 && int(f) < FieldCount
}

// Name returns the stable identifier used in mismatch sets and configuration keys.
func (f Field) Name() string {
	if !f.Valid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldTable[f].name
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return f.Name()
}

// Title returns a human readable heading for the field.
func (f Field) Title() string {
	if !f.Valid() {
		return f.Name()
	}
	return fieldTable[f].title
}

// Order returns the demand direction of the field's enumeration.
func (f Field) Order() Order {
	if !f.Valid() {
		return AscendingDemand
	}
	return fieldTable[f].order
}

// Values returns the labels of the field's enumeration in ordinal order.
func (f Field) Values() []string {
	if !f.Valid() {
		return nil
	}
	values := make([]string, len(fieldTable[f].values))
	copy(values, fieldTable[f].values)
	return values
}

// Cardinality returns the number of values the field can take.
func (f Field) Cardinality() int {
	if !f.Valid() {
		return 0
	}
	return len(fieldTable[f].values)
}

// Contains reports whether o is a valid ordinal of the field.
func (f Field) Contains(o Ordinal) bool {
	return f.Valid() && o >= 0 && int(o) < len(fieldTable[f].values)
}

// Label returns the label for an ordinal, or "ANY" for Unset.
func (f Field) Label(o Ordinal) string {
	if !o.IsSet() {
		return "ANY"
	}
	if !f.Contains(o) {
		return fmt.Sprintf("%s(%d)", f.Name(), int(o))
	}
	return fieldTable[f].values[o]
}

// Parse resolves a label (case-insensitive, '-' or ' ' accepted for '_') to an ordinal.
func (f Field) Parse(label string) (Ordinal, error) {
	if !f.Valid() {
		return Unset, fmt.Errorf("%w: %s", ErrUnknownValue, f.Name())
	}
	normalized := strings.ToUpper(strings.TrimSpace(label))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for i, v := range fieldTable[f].values {
		if v == normalized {
			return Ordinal(i), nil
		}
	}
	return Unset, fmt.Errorf("%w: %q is not a %s (want one of %s)",
		ErrUnknownValue, label, f.Name(), strings.Join(fieldTable[f].values, ", "))
}

// ParseField resolves a field by its name (case-insensitive).
func ParseField(name string) (Field, error) {
	for _, f := range Fields() {
		if strings.EqualFold(f.Name(), strings.TrimSpace(name)) {
			return f, nil
		}
	}
	names := make([]string, 0, FieldCount)
	for _, f := range Fields() {
		names = append(names, f.Name())
	}
	return -1, fmt.Errorf("unknown field %q (want one of %s)", name, strings.Join(names, ", "))
}
