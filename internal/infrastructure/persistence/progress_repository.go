package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/progress"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProgressRepository implements progress.Repository using GORM
type GormProgressRepository struct {
	db *gorm.DB
}

// NewGormProgressRepository creates a new GormProgressRepository
func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{db: db}
}

// Upsert inserts the record or updates the existing one for the same target
func (r *GormProgressRepository) Upsert(ctx context.Context, rec *progress.Record) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := r.findExistingTx(tx, rec)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var model models.ProgressRecordModel
		model.FromDomain(rec)

		if existing != nil {
			// Keep the stored identity; only the mutable fields move.
			return tx.Model(&models.ProgressRecordModel{}).
				Where("id = ?", existing.ID).
				Updates(map[string]any{
					"status":      model.Status,
					"achieved_at": model.AchievedAt,
					"notes":       model.Notes,
					"photo_key":   model.PhotoKey,
					"updated_at":  model.UpdatedAt,
					"version":     existing.Version + 1,
				}).Error
		}

		return tx.Create(&model).Error
	})
}

func (r *GormProgressRepository) findExistingTx(tx *gorm.DB, rec *progress.Record) (*models.ProgressRecordModel, error) {
	query := tx.Where("child_id = ?", rec.ChildID)
	if rec.MilestoneID != nil {
		query = query.Where("milestone_id = ?", *rec.MilestoneID)
	} else {
		query = query.Where("activity_id = ?", *rec.ActivityID)
	}

	var model models.ProgressRecordModel
	if err := query.First(&model).Error; err != nil {
		return nil, err
	}
	return &model, nil
}

// FindByID finds a progress record by ID
func (r *GormProgressRepository) FindByID(ctx context.Context, id uuid.UUID) (*progress.Record, error) {
	var model models.ProgressRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByChildAndMilestone finds the record tracking one milestone
func (r *GormProgressRepository) FindByChildAndMilestone(ctx context.Context, childID, milestoneID uuid.UUID) (*progress.Record, error) {
	var model models.ProgressRecordModel
	if err := r.db.WithContext(ctx).
		Where("child_id = ? AND milestone_id = ?", childID, milestoneID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByChildAndActivity finds the record tracking one activity
func (r *GormProgressRepository) FindByChildAndActivity(ctx context.Context, childID, activityID uuid.UUID) (*progress.Record, error) {
	var model models.ProgressRecordModel
	if err := r.db.WithContext(ctx).
		Where("child_id = ? AND activity_id = ?", childID, activityID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByChild returns all progress records of a child
func (r *GormProgressRepository) ListByChild(ctx context.Context, childID uuid.UUID) ([]*progress.Record, error) {
	var recordModels []*models.ProgressRecordModel
	if err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("updated_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*progress.Record, 0, len(recordModels))
	for _, m := range recordModels {
		records = append(records, m.ToDomain())
	}
	return records, nil
}

// Delete removes a progress record
func (r *GormProgressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProgressRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByChild removes all progress records of a child
func (r *GormProgressRepository) DeleteByChild(ctx context.Context, childID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Delete(&models.ProgressRecordModel{}).Error
}
