package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/resource"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormResourceRepository implements resource.Repository using GORM
type GormResourceRepository struct {
	db *gorm.DB
}

// NewGormResourceRepository creates a new GormResourceRepository
func NewGormResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

// Create creates a new resource
func (r *GormResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	var model models.ResourceModel
	model.FromDomain(res)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds a resource by ID
func (r *GormResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	var model models.ResourceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns resources matching the filter with a total count
func (r *GormResourceRepository) List(ctx context.Context, filter resource.Filter) ([]*resource.Resource, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ResourceModel{})

	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.DomainID != nil {
		query = query.Where("domain_id = ?", *filter.DomainID)
	}
	if filter.StageID != nil {
		query = query.Where("stage_id = ?", *filter.StageID)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("featured DESC, created_at DESC")
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var resourceModels []*models.ResourceModel
	if err := query.Find(&resourceModels).Error; err != nil {
		return nil, 0, err
	}

	resources := make([]*resource.Resource, 0, len(resourceModels))
	for _, m := range resourceModels {
		resources = append(resources, m.ToDomain())
	}
	return resources, total, nil
}

// IncrementViews bumps the view counter atomically
func (r *GormResourceRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ResourceModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Update updates an existing resource
func (r *GormResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	var model models.ResourceModel
	model.FromDomain(res)

	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a resource and its bookmarks
func (r *GormResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).
			Delete(&models.BookmarkModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ResourceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GormBookmarkRepository implements resource.BookmarkRepository using GORM
type GormBookmarkRepository struct {
	db *gorm.DB
}

// NewGormBookmarkRepository creates a new GormBookmarkRepository
func NewGormBookmarkRepository(db *gorm.DB) *GormBookmarkRepository {
	return &GormBookmarkRepository{db: db}
}

// Create saves a bookmark; saving twice is not an error
func (r *GormBookmarkRepository) Create(ctx context.Context, b *resource.Bookmark) error {
	var model models.BookmarkModel
	model.FromDomain(b)

	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// Find returns the bookmark a user placed on a resource
func (r *GormBookmarkRepository) Find(ctx context.Context, userID, resourceID uuid.UUID) (*resource.Bookmark, error) {
	var model models.BookmarkModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByUser returns all bookmarks of a user, newest first
func (r *GormBookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*resource.Bookmark, error) {
	var bookmarkModels []*models.BookmarkModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarkModels).Error; err != nil {
		return nil, err
	}

	bookmarks := make([]*resource.Bookmark, 0, len(bookmarkModels))
	for _, m := range bookmarkModels {
		bookmarks = append(bookmarks, m.ToDomain())
	}
	return bookmarks, nil
}

// Delete removes a bookmark
func (r *GormBookmarkRepository) Delete(ctx context.Context, userID, resourceID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		Delete(&models.BookmarkModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
