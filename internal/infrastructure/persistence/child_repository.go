package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormChildRepository implements child.Repository using GORM
type GormChildRepository struct {
	db *gorm.DB
}

// NewGormChildRepository creates a new GormChildRepository
func NewGormChildRepository(db *gorm.DB) *GormChildRepository {
	return &GormChildRepository{db: db}
}

// Create creates a new child profile
func (r *GormChildRepository) Create(ctx context.Context, c *child.Child) error {
	var model models.ChildModel
	model.FromDomain(c)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds a child by ID
func (r *GormChildRepository) FindByID(ctx context.Context, id uuid.UUID) (*child.Child, error) {
	var model models.ChildModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByFamily returns all children of a family ordered by birth date
func (r *GormChildRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*child.Child, error) {
	var childModels []*models.ChildModel
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("birth_date ASC").
		Find(&childModels).Error; err != nil {
		return nil, err
	}

	children := make([]*child.Child, 0, len(childModels))
	for _, m := range childModels {
		children = append(children, m.ToDomain())
	}
	return children, nil
}

// Update updates an existing child profile
func (r *GormChildRepository) Update(ctx context.Context, c *child.Child) error {
	var model models.ChildModel
	model.FromDomain(c)

	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a child and cascades to their progress records
func (r *GormChildRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("child_id = ?", id).
			Delete(&models.ProgressRecordModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ChildModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
