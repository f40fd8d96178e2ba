package family

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for families
type Repository interface {
	Create(ctx context.Context, f *Family) error
	FindByID(ctx context.Context, id uuid.UUID) (*Family, error)
	Update(ctx context.Context, f *Family) error
	Delete(ctx context.Context, id uuid.UUID) error
}
