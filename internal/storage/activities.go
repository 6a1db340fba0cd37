package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/whattodo/internal/common"
	"github.com/Veraticus/whattodo/internal/model"
)

// ErrActivityNotFound is returned when no activity has the requested id.
var ErrActivityNotFound = fmt.Errorf("activity %w", common.ErrNotFound)

const activityColumns = `id, name, price_range, weather, time_required, people, notes, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// InsertActivity stores a and returns its id. An activity whose ID is already stored
// replaces that row; a zero ID gets a new one. a is normalized in place and its ID and
// CreatedAt are filled in.
func (s *SQLiteStorage) InsertActivity(ctx context.Context, a *model.Activity) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if a == nil {
		return 0, fmt.Errorf("%w: activity", ErrNilParameter)
	}

	a.Normalize()
	if err := validateActivity(a); err != nil {
		return 0, err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	var id sql.NullInt64
	if a.ID > 0 {
		id = sql.NullInt64{Int64: a.ID, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO activities (`+activityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.Name, a.Price.String(), a.Weather.String(), a.Time.String(), a.People.String(),
		a.Notes, a.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert activity: %w", retryable(err))
	}

	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	a.ID = newID

	slog.Debug("stored activity", "id", newID, "name", a.Name, "fields", a.Summary())
	s.notifyWatchers(ctx)
	return newID, nil
}

// GetActivity retrieves an activity by id.
func (s *SQLiteStorage) GetActivity(ctx context.Context, id int64) (*model.Activity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrActivityNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity %d: %w", id, err)
	}
	return &a, nil
}

// ListActivities returns every activity in insertion (id) order.
func (s *SQLiteStorage) ListActivities(ctx context.Context) ([]model.Activity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("Failed to close rows", "error", closeErr)
		}
	}()

	activities := make([]model.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}

// CountActivities returns the number of stored activities.
func (s *SQLiteStorage) CountActivities(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}

// DeleteActivity removes an activity. It returns ErrActivityNotFound when nothing was
// removed, so deleting the same id twice fails the second time.
func (s *SQLiteStorage) DeleteActivity(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", retryable(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrActivityNotFound, id)
	}

	slog.Debug("deleted activity", "id", id)
	s.notifyWatchers(ctx)
	return nil
}

func scanActivity(row rowScanner) (model.Activity, error) {
	var a model.Activity
	var price, weather, dur, people string
	if err := row.Scan(&a.ID, &a.Name, &price, &weather, &dur, &people, &a.Notes, &a.CreatedAt); err != nil {
		return a, err
	}

	var err error
	if a.Price, err = model.ParsePriceRange(price); err != nil {
		return a, fmt.Errorf("activity %d: %w", a.ID, err)
	}
	if a.Weather, err = model.ParseWeatherType(weather); err != nil {
		return a, fmt.Errorf("activity %d: %w", a.ID, err)
	}
	if a.Time, err = model.ParseTimeRequired(dur); err != nil {
		return a, fmt.Errorf("activity %d: %w", a.ID, err)
	}
	if a.People, err = model.ParsePeopleNumber(people); err != nil {
		return a, fmt.Errorf("activity %d: %w", a.ID, err)
	}
	return a, nil
}
