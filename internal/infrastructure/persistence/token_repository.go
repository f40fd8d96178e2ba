package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/identity"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRefreshTokenRepository implements identity.RefreshTokenRepository
type GormRefreshTokenRepository struct {
	db *gorm.DB
}

// NewGormRefreshTokenRepository creates a new GormRefreshTokenRepository
func NewGormRefreshTokenRepository(db *gorm.DB) *GormRefreshTokenRepository {
	return &GormRefreshTokenRepository{db: db}
}

// Create stores a refresh token digest
func (r *GormRefreshTokenRepository) Create(ctx context.Context, token *identity.RefreshToken) error {
	var model models.RefreshTokenModel
	model.FromDomain(token)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByHash finds a refresh token by its sha256 digest
func (r *GormRefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*identity.RefreshToken, error) {
	var model models.RefreshTokenModel
	if err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update persists revocation state
func (r *GormRefreshTokenRepository) Update(ctx context.Context, token *identity.RefreshToken) error {
	var model models.RefreshTokenModel
	model.FromDomain(token)

	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RevokeAllForUser revokes every live refresh token of a user
func (r *GormRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
}

// DeleteExpired removes tokens past their expiry, returning the count
func (r *GormRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshTokenModel{})
	return result.RowsAffected, result.Error
}

// GormOneTimeTokenRepository implements identity.OneTimeTokenRepository
type GormOneTimeTokenRepository struct {
	db *gorm.DB
}

// NewGormOneTimeTokenRepository creates a new GormOneTimeTokenRepository
func NewGormOneTimeTokenRepository(db *gorm.DB) *GormOneTimeTokenRepository {
	return &GormOneTimeTokenRepository{db: db}
}

// Create stores a one-time token digest
func (r *GormOneTimeTokenRepository) Create(ctx context.Context, token *identity.OneTimeToken) error {
	var model models.OneTimeTokenModel
	model.FromDomain(token)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindValidByHash finds an unused, unexpired token by purpose and digest
func (r *GormOneTimeTokenRepository) FindValidByHash(ctx context.Context, purpose identity.TokenPurpose, tokenHash string) (*identity.OneTimeToken, error) {
	var model models.OneTimeTokenModel
	if err := r.db.WithContext(ctx).
		Where("purpose = ? AND token_hash = ? AND used_at IS NULL AND expires_at > ?",
			string(purpose), tokenHash, time.Now()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update persists consumption state
func (r *GormOneTimeTokenRepository) Update(ctx context.Context, token *identity.OneTimeToken) error {
	var model models.OneTimeTokenModel
	model.FromDomain(token)

	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// InvalidateForUser marks all outstanding tokens of one purpose as used,
// so a re-request leaves only the newest token live.
func (r *GormOneTimeTokenRepository) InvalidateForUser(ctx context.Context, userID uuid.UUID, purpose identity.TokenPurpose) error {
	return r.db.WithContext(ctx).
		Model(&models.OneTimeTokenModel{}).
		Where("user_id = ? AND purpose = ? AND used_at IS NULL", userID, string(purpose)).
		Update("used_at", time.Now()).Error
}
