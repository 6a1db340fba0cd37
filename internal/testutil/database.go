// Package testutil provides test helpers shared across packages: an isolated,
// migrated in-memory store and a small activity builder.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/whattodo/internal/model"
	"github.com/Veraticus/whattodo/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database, migrates it and seeds the given
// activities in order. The database is closed when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.NewActivity("Museum").Price(model.PriceCheap).Build(),
//	)
func SetupTestDB(t *testing.T, seed ...model.Activity) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db := &TestDB{Storage: store, t: t}
	for _, a := range seed {
		db.MustInsert(a)
	}
	return db
}

// MustInsert stores a and returns it with its assigned id, failing the test on error.
func (db *TestDB) MustInsert(a model.Activity) model.Activity {
	db.t.Helper()
	if _, err := db.Storage.InsertActivity(context.Background(), &a); err != nil {
		db.t.Fatalf("failed to seed activity %q: %v", a.Name, err)
	}
	return a
}

// ActivityBuilder builds activities for tests. Unset fields default to the least
// demanding value of each field.
type ActivityBuilder struct {
	a model.Activity
}

// NewActivity starts a builder for an activity with the given name.
func NewActivity(name string) *ActivityBuilder {
	return &ActivityBuilder{a: model.Activity{Name: name}}
}

// Price sets the price range.
func (b *ActivityBuilder) Price(p model.PriceRange) *ActivityBuilder {
	b.a.Price = p
	return b
}

// Weather sets the weather.
func (b *ActivityBuilder) Weather(w model.WeatherType) *ActivityBuilder {
	b.a.Weather = w
	return b
}

// Time sets the time required.
func (b *ActivityBuilder) Time(d model.TimeRequired) *ActivityBuilder {
	b.a.Time = d
	return b
}

// People sets the group size.
func (b *ActivityBuilder) People(p model.PeopleNumber) *ActivityBuilder {
	b.a.People = p
	return b
}

// Notes sets free-text notes.
func (b *ActivityBuilder) Notes(n string) *ActivityBuilder {
	b.a.Notes = n
	return b
}

// Build returns the activity.
func (b *ActivityBuilder) Build() model.Activity {
	return b.a
}
