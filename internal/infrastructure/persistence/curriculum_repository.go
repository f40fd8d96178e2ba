package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/curriculum"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCurriculumRepository implements curriculum.Repository using GORM
type GormCurriculumRepository struct {
	db *gorm.DB
}

// NewGormCurriculumRepository creates a new GormCurriculumRepository
func NewGormCurriculumRepository(db *gorm.DB) *GormCurriculumRepository {
	return &GormCurriculumRepository{db: db}
}

// ListStages returns all age stages in developmental order
func (r *GormCurriculumRepository) ListStages(ctx context.Context) ([]*curriculum.AgeStage, error) {
	var stageModels []*models.AgeStageModel
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, min_months ASC").
		Find(&stageModels).Error; err != nil {
		return nil, err
	}

	stages := make([]*curriculum.AgeStage, 0, len(stageModels))
	for _, m := range stageModels {
		stages = append(stages, m.ToDomain())
	}
	return stages, nil
}

// ListDomains returns all development domains in display order
func (r *GormCurriculumRepository) ListDomains(ctx context.Context) ([]*curriculum.DevelopmentDomain, error) {
	var domainModels []*models.DevelopmentDomainModel
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&domainModels).Error; err != nil {
		return nil, err
	}

	domains := make([]*curriculum.DevelopmentDomain, 0, len(domainModels))
	for _, m := range domainModels {
		domains = append(domains, m.ToDomain())
	}
	return domains, nil
}

// FindStageByID finds an age stage by ID
func (r *GormCurriculumRepository) FindStageByID(ctx context.Context, id uuid.UUID) (*curriculum.AgeStage, error) {
	var model models.AgeStageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDomainByID finds a development domain by ID
func (r *GormCurriculumRepository) FindDomainByID(ctx context.Context, id uuid.UUID) (*curriculum.DevelopmentDomain, error) {
	var model models.DevelopmentDomainModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListMilestones returns milestones matching the filter
func (r *GormCurriculumRepository) ListMilestones(ctx context.Context, filter curriculum.MilestoneFilter) ([]*curriculum.Milestone, error) {
	query := r.db.WithContext(ctx).Model(&models.MilestoneModel{})
	if filter.StageID != nil {
		query = query.Where("stage_id = ?", *filter.StageID)
	}
	if filter.DomainID != nil {
		query = query.Where("domain_id = ?", *filter.DomainID)
	}

	var milestoneModels []*models.MilestoneModel
	if err := query.Order("sort_order ASC").Find(&milestoneModels).Error; err != nil {
		return nil, err
	}

	milestones := make([]*curriculum.Milestone, 0, len(milestoneModels))
	for _, m := range milestoneModels {
		milestones = append(milestones, m.ToDomain())
	}
	return milestones, nil
}

// FindMilestoneByID finds a milestone by ID
func (r *GormCurriculumRepository) FindMilestoneByID(ctx context.Context, id uuid.UUID) (*curriculum.Milestone, error) {
	var model models.MilestoneModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListActivitiesByStage returns activities for an age stage with their
// milestone links preloaded
func (r *GormCurriculumRepository) ListActivitiesByStage(ctx context.Context, stageID uuid.UUID) ([]*curriculum.Activity, error) {
	var activityModels []*models.ActivityModel
	if err := r.db.WithContext(ctx).
		Preload("Milestones").
		Where("stage_id = ?", stageID).
		Order("title ASC").
		Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]*curriculum.Activity, 0, len(activityModels))
	for _, m := range activityModels {
		activities = append(activities, m.ToDomain())
	}
	return activities, nil
}

// FindActivityByID finds an activity by ID with milestone links
func (r *GormCurriculumRepository) FindActivityByID(ctx context.Context, id uuid.UUID) (*curriculum.Activity, error) {
	var model models.ActivityModel
	if err := r.db.WithContext(ctx).
		Preload("Milestones").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
