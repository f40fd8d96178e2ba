package chat

import (
	"context"

	"github.com/google/uuid"
)

// SessionRepository defines persistence operations for chat sessions
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID, offset, limit int) ([]*Session, int64, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository defines persistence operations for chat messages
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*Message, error)
}
