package curriculum

import (
	"context"

	"github.com/google/uuid"
)

// MilestoneFilter narrows milestone queries
type MilestoneFilter struct {
	StageID  *uuid.UUID
	DomainID *uuid.UUID
}

// WithStage filters milestones to one age stage
func (f MilestoneFilter) WithStage(stageID uuid.UUID) MilestoneFilter {
	f.StageID = &stageID
	return f
}

// WithDomain filters milestones to one development domain
func (f MilestoneFilter) WithDomain(domainID uuid.UUID) MilestoneFilter {
	f.DomainID = &domainID
	return f
}

// Repository provides read access to the curriculum reference data
type Repository interface {
	ListStages(ctx context.Context) ([]*AgeStage, error)
	ListDomains(ctx context.Context) ([]*DevelopmentDomain, error)
	FindStageByID(ctx context.Context, id uuid.UUID) (*AgeStage, error)
	FindDomainByID(ctx context.Context, id uuid.UUID) (*DevelopmentDomain, error)
	ListMilestones(ctx context.Context, filter MilestoneFilter) ([]*Milestone, error)
	FindMilestoneByID(ctx context.Context, id uuid.UUID) (*Milestone, error)
	ListActivitiesByStage(ctx context.Context, stageID uuid.UUID) ([]*Activity, error)
	FindActivityByID(ctx context.Context, id uuid.UUID) (*Activity, error)
}
