package insight

import (
	"context"

	"github.com/google/uuid"
)

// InterestRepository stores interest profiles. One profile per child; a new
// analysis replaces the previous one.
type InterestRepository interface {
	Save(ctx context.Context, p *InterestProfile) error
	FindLatestByChild(ctx context.Context, childID uuid.UUID) (*InterestProfile, error)
	DeleteByChild(ctx context.Context, childID uuid.UUID) error
}

// RoadmapRepository stores generated roadmaps. Regeneration replaces.
type RoadmapRepository interface {
	Save(ctx context.Context, r *Roadmap) error
	FindLatestByChild(ctx context.Context, childID uuid.UUID) (*Roadmap, error)
	DeleteByChild(ctx context.Context, childID uuid.UUID) error
}
