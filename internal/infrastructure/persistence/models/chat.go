package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/chat"
)

// ChatSessionModel is the persistence model for chat sessions
type ChatSessionModel struct {
	FamilyModel
	UserID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ChildID *uuid.UUID `gorm:"type:uuid;index"`
	Title   string     `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ChatSessionModel) TableName() string {
	return "chat_sessions"
}

// ToDomain converts the persistence model to a domain Session
func (m *ChatSessionModel) ToDomain() *chat.Session {
	return &chat.Session{
		FamilyEntity: m.ToDomainFamilyEntity(),
		UserID:       m.UserID,
		ChildID:      m.ChildID,
		Title:        m.Title,
	}
}

// FromDomain populates the persistence model from a domain Session
func (m *ChatSessionModel) FromDomain(s *chat.Session) {
	m.FromDomainFamilyEntity(s.FamilyEntity)
	m.UserID = s.UserID
	m.ChildID = s.ChildID
	m.Title = s.Title
}

// ChatMessageModel is the persistence model for chat messages
type ChatMessageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// ToDomain converts the persistence model to a domain Message
func (m *ChatMessageModel) ToDomain() *chat.Message {
	msg := &chat.Message{
		SessionID: m.SessionID,
		Role:      chat.MessageRole(m.Role),
		Content:   m.Content,
	}
	msg.ID = m.ID
	msg.CreatedAt = m.CreatedAt
	msg.UpdatedAt = m.UpdatedAt
	return msg
}

// FromDomain populates the persistence model from a domain Message
func (m *ChatMessageModel) FromDomain(msg *chat.Message) {
	m.ID = msg.ID
	m.SessionID = msg.SessionID
	m.Role = string(msg.Role)
	m.Content = msg.Content
	m.CreatedAt = msg.CreatedAt
	m.UpdatedAt = msg.UpdatedAt
}
