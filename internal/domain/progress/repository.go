package progress

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for progress records
type Repository interface {
	// Upsert inserts the record, or updates the existing record for the same
	// child and milestone/activity target.
	Upsert(ctx context.Context, r *Record) error
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	FindByChildAndMilestone(ctx context.Context, childID, milestoneID uuid.UUID) (*Record, error)
	FindByChildAndActivity(ctx context.Context, childID, activityID uuid.UUID) (*Record, error)
	ListByChild(ctx context.Context, childID uuid.UUID) ([]*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByChild(ctx context.Context, childID uuid.UUID) error
}
