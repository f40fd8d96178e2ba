package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/insight"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInterestRepository implements insight.InterestRepository using GORM
type GormInterestRepository struct {
	db *gorm.DB
}

// NewGormInterestRepository creates a new GormInterestRepository
func NewGormInterestRepository(db *gorm.DB) *GormInterestRepository {
	return &GormInterestRepository{db: db}
}

// Save stores an interest profile, replacing any previous one for the child
func (r *GormInterestRepository) Save(ctx context.Context, p *insight.InterestProfile) error {
	var model models.InterestProfileModel
	model.FromDomain(p)

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "child_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"interests", "strengths", "suggestions", "generated_at", "updated_at",
			}),
		}).
		Create(&model).Error
}

// FindLatestByChild returns the child's current interest profile
func (r *GormInterestRepository) FindLatestByChild(ctx context.Context, childID uuid.UUID) (*insight.InterestProfile, error) {
	var model models.InterestProfileModel
	if err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByChild removes the child's interest profile
func (r *GormInterestRepository) DeleteByChild(ctx context.Context, childID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Delete(&models.InterestProfileModel{}).Error
}

// GormRoadmapRepository implements insight.RoadmapRepository using GORM
type GormRoadmapRepository struct {
	db *gorm.DB
}

// NewGormRoadmapRepository creates a new GormRoadmapRepository
func NewGormRoadmapRepository(db *gorm.DB) *GormRoadmapRepository {
	return &GormRoadmapRepository{db: db}
}

// Save stores a roadmap, replacing any previous one for the child
func (r *GormRoadmapRepository) Save(ctx context.Context, roadmap *insight.Roadmap) error {
	var model models.RoadmapModel
	if err := model.FromDomain(roadmap); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "child_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weeks", "generated_at", "updated_at",
			}),
		}).
		Create(&model).Error
}

// FindLatestByChild returns the child's current roadmap
func (r *GormRoadmapRepository) FindLatestByChild(ctx context.Context, childID uuid.UUID) (*insight.Roadmap, error) {
	var model models.RoadmapModel
	if err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// DeleteByChild removes the child's roadmap
func (r *GormRoadmapRepository) DeleteByChild(ctx context.Context, childID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Delete(&models.RoadmapModel{}).Error
}
