// Package service defines the contracts between the matching core and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/whattodo/internal/model"
)

// Snapshot is one complete view of the stored activities, in fetch order. Err is
// set when the fetch failed; consumers treat a failed snapshot as empty.
type Snapshot struct {
	Err        error
	Activities []model.Activity
}

// ActivityObserver is the live, read-only half of the store used by the engine.
type ActivityObserver interface {
	// ObserveAll emits the current activities immediately and a new complete
	// snapshot after every change. The channel is closed when ctx is done.
	ObserveAll(ctx context.Context) <-chan Snapshot
}

// ActivityStore is the contract for our persistence layer.
type ActivityStore interface {
	ActivityObserver

	// InsertActivity stores a, replacing any row with the same non-zero ID, and
	// returns the assigned ID.
	InsertActivity(ctx context.Context, a *model.Activity) (int64, error)
	GetActivity(ctx context.Context, id int64) (*model.Activity, error)
	ListActivities(ctx context.Context) ([]model.Activity, error)
	CountActivities(ctx context.Context) (int, error)
	// DeleteActivity removes the activity. Deleting a missing ID returns an error
	// and changes nothing.
	DeleteActivity(ctx context.Context, id int64) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
