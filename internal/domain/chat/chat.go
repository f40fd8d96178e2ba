package chat

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// MessageRole identifies who produced a chat message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// maxTitleLen bounds auto-generated session titles
const maxTitleLen = 80

// Session is a coaching conversation, optionally focused on one child
type Session struct {
	shared.FamilyEntity
	UserID  uuid.UUID
	ChildID *uuid.UUID
	Title   string
}

// NewSession starts a conversation for a user in a family
func NewSession(familyID, userID uuid.UUID, childID *uuid.UUID, title string) *Session {
	return &Session{
		FamilyEntity: shared.NewFamilyEntity(familyID),
		UserID:       userID,
		ChildID:      childID,
		Title:        strings.TrimSpace(title),
	}
}

// TitleFromMessage derives a session title from the first user message
func (s *Session) TitleFromMessage(content string) {
	if s.Title != "" {
		return
	}
	content = strings.TrimSpace(content)
	if len(content) > maxTitleLen {
		content = content[:maxTitleLen]
	}
	s.Title = content
	s.IncrementVersion()
}

// Message is one turn in a session
type Message struct {
	shared.BaseEntity
	SessionID uuid.UUID
	Role      MessageRole
	Content   string
}

// NewMessage appends a turn to a session
func NewMessage(sessionID uuid.UUID, role MessageRole, content string) (*Message, error) {
	if role != RoleUser && role != RoleAssistant {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown message role")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.NewDomainError("EMPTY_MESSAGE", "Message content is required")
	}

	return &Message{
		BaseEntity: shared.NewBaseEntity(),
		SessionID:  sessionID,
		Role:       role,
		Content:    content,
	}, nil
}
