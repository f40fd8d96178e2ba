package athletic

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SportRepository provides read access to the seeded sport list
type SportRepository interface {
	List(ctx context.Context) ([]*Sport, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Sport, error)
}

// AthleteRepository defines persistence operations for athlete profiles
type AthleteRepository interface {
	Create(ctx context.Context, a *Athlete) error
	FindByID(ctx context.Context, id uuid.UUID) (*Athlete, error)
	ListByChild(ctx context.Context, childID uuid.UUID) ([]*Athlete, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*Athlete, error)
	Update(ctx context.Context, a *Athlete) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActivityLogRepository defines persistence operations for training logs
type ActivityLogRepository interface {
	Create(ctx context.Context, log *ActivityLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*ActivityLog, error)
	ListByAthlete(ctx context.Context, athleteID uuid.UUID, since time.Time) ([]*ActivityLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CheckInRepository defines persistence operations for fun check-ins
type CheckInRepository interface {
	Create(ctx context.Context, c *FunCheckIn) error
	// ListByAthlete returns check-ins ordered by date ascending.
	ListByAthlete(ctx context.Context, athleteID uuid.UUID, limit int) ([]*FunCheckIn, error)
}
