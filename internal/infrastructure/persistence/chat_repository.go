package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/chat"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormChatSessionRepository implements chat.SessionRepository using GORM
type GormChatSessionRepository struct {
	db *gorm.DB
}

// NewGormChatSessionRepository creates a new GormChatSessionRepository
func NewGormChatSessionRepository(db *gorm.DB) *GormChatSessionRepository {
	return &GormChatSessionRepository{db: db}
}

// Create creates a new chat session
func (r *GormChatSessionRepository) Create(ctx context.Context, s *chat.Session) error {
	var model models.ChatSessionModel
	model.FromDomain(s)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds a chat session by ID
func (r *GormChatSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*chat.Session, error) {
	var model models.ChatSessionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByFamily returns a family's sessions newest first with a total count
func (r *GormChatSessionRepository) ListByFamily(ctx context.Context, familyID uuid.UUID, offset, limit int) ([]*chat.Session, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("family_id = ?", familyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessionModels []*models.ChatSessionModel
	if err := query.
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&sessionModels).Error; err != nil {
		return nil, 0, err
	}

	sessions := make([]*chat.Session, 0, len(sessionModels))
	for _, m := range sessionModels {
		sessions = append(sessions, m.ToDomain())
	}
	return sessions, total, nil
}

// Update updates a chat session
func (r *GormChatSessionRepository) Update(ctx context.Context, s *chat.Session) error {
	var model models.ChatSessionModel
	model.FromDomain(s)

	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a session and its messages
func (r *GormChatSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).
			Delete(&models.ChatMessageModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ChatSessionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GormChatMessageRepository implements chat.MessageRepository using GORM
type GormChatMessageRepository struct {
	db *gorm.DB
}

// NewGormChatMessageRepository creates a new GormChatMessageRepository
func NewGormChatMessageRepository(db *gorm.DB) *GormChatMessageRepository {
	return &GormChatMessageRepository{db: db}
}

// Create appends a message
func (r *GormChatMessageRepository) Create(ctx context.Context, m *chat.Message) error {
	var model models.ChatMessageModel
	model.FromDomain(m)
	return r.db.WithContext(ctx).Create(&model).Error
}

// ListBySession returns the most recent messages in chronological order.
// A limit of 0 returns everything.
func (r *GormChatMessageRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*chat.Message, error) {
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messageModels []*models.ChatMessageModel
	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	msgs := make([]*chat.Message, len(messageModels))
	for i, m := range messageModels {
		msgs[len(messageModels)-1-i] = m.ToDomain()
	}
	return msgs, nil
}
