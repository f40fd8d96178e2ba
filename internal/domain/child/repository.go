package child

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for children
type Repository interface {
	Create(ctx context.Context, c *Child) error
	FindByID(ctx context.Context, id uuid.UUID) (*Child, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*Child, error)
	Update(ctx context.Context, c *Child) error
	Delete(ctx context.Context, id uuid.UUID) error
}
