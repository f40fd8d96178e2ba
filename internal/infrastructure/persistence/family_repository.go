package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/family"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFamilyRepository implements family.Repository using GORM
type GormFamilyRepository struct {
	db *gorm.DB
}

// NewGormFamilyRepository creates a new GormFamilyRepository
func NewGormFamilyRepository(db *gorm.DB) *GormFamilyRepository {
	return &GormFamilyRepository{db: db}
}

// Create creates a new family
func (r *GormFamilyRepository) Create(ctx context.Context, f *family.Family) error {
	var model models.FamilyRecordModel
	model.FromDomain(f)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds a family by ID
func (r *GormFamilyRepository) FindByID(ctx context.Context, id uuid.UUID) (*family.Family, error) {
	var model models.FamilyRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update updates an existing family with optimistic locking
func (r *GormFamilyRepository) Update(ctx context.Context, f *family.Family) error {
	var model models.FamilyRecordModel
	model.FromDomain(f)

	result := r.db.WithContext(ctx).
		Model(&models.FamilyRecordModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]any{
			"name":              model.Name,
			"subscription_tier": model.SubscriptionTier,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a family by ID
func (r *GormFamilyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FamilyRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
