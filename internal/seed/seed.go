// Package seed loads activity catalogs from YAML files and imports them into a store.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/whattodo/internal/common"
	"github.com/Veraticus/whattodo/internal/model"
	"github.com/Veraticus/whattodo/internal/validation"
	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog layout.
type File struct {
	Activities []Entry `yaml:"activities"`
}

// Entry is one activity as written in a catalog file. Field values use the catalog
// labels, case-insensitively ("free", "half-day", "SMALL_GROUP").
type Entry struct {
	Name    string `yaml:"name"`
	Price   string `yaml:"price"`
	Weather string `yaml:"weather"`
	Time    string `yaml:"time"`
	People  string `yaml:"people"`
	Notes   string `yaml:"notes,omitempty"`
	ID      int64  `yaml:"id,omitempty"`
}

// Inserter is the write half of the activity store used by Import.
type Inserter interface {
	InsertActivity(ctx context.Context, a *model.Activity) (int64, error)
}

// Load reads and parses a catalog file.
func Load(path string) ([]model.Activity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses a catalog. Unknown keys, unknown labels and invalid activities are
// errors; nothing is returned unless every entry is valid.
func Decode(r io.Reader) ([]model.Activity, error) {
	var f File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: catalog is empty", common.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", common.ErrInvalidInput, err)
	}

	activities := make([]model.Activity, 0, len(f.Activities))
	for i, e := range f.Activities {
		a, err := e.Activity()
		if err != nil {
			return nil, fmt.Errorf("%w: activities[%d]: %w", common.ErrInvalidInput, i, err)
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// Activity converts the entry to a normalized, validated activity.
func (e Entry) Activity() (model.Activity, error) {
	var a model.Activity
	var err error

	if a.Price, err = model.ParsePriceRange(e.Price); err != nil {
		return a, err
	}
	if a.Weather, err = model.ParseWeatherType(e.Weather); err != nil {
		return a, err
	}
	if a.Time, err = model.ParseTimeRequired(e.Time); err != nil {
		return a, err
	}
	if a.People, err = model.ParsePeopleNumber(e.People); err != nil {
		return a, err
	}

	a.ID = e.ID
	a.Name = e.Name
	a.Notes = e.Notes
	a.Normalize()

	if err := validation.Struct(&a); err != nil {
		return a, err
	}
	return a, nil
}

// Import inserts activities in order, retrying writes that hit a busy database.
// progress, if non-nil, is called after each insert. It returns how many were stored
// before the first failure.
func Import(ctx context.Context, store Inserter, activities []model.Activity, progress func()) (int, error) {
	for i := range activities {
		a := activities[i]
		err := common.WithRetry(ctx, func() error {
			_, err := store.InsertActivity(ctx, &a)
			return err
		}, common.RetryOptions{MaxAttempts: 3})
		if err != nil {
			return i, fmt.Errorf("failed to import %q: %w", a.Name, err)
		}
		if progress != nil {
			progress()
		}
	}
	return len(activities), nil
}
