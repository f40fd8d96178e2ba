package chat

import (
	"time"

	"github.com/google/uuid"
)

// SessionInfo is the read model for a chat session
type SessionInfo struct {
	ID        uuid.UUID  `json:"id"`
	ChildID   *uuid.UUID `json:"child_id,omitempty"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MessageInfo is the read model for one chat turn
type MessageInfo struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionDetail bundles a session with its message history
type SessionDetail struct {
	Session  *SessionInfo   `json:"session"`
	Messages []*MessageInfo `json:"messages"`
}

// SessionList is a paginated session listing
type SessionList struct {
	Sessions []*SessionInfo `json:"sessions"`
	Total    int64          `json:"total"`
	Offset   int            `json:"offset"`
	Limit    int            `json:"limit"`
}

// CreateSessionInput starts a new conversation
type CreateSessionInput struct {
	FamilyID uuid.UUID  `json:"-"`
	UserID   uuid.UUID  `json:"-"`
	ChildID  *uuid.UUID `json:"child_id"`
	Title    string     `json:"title" binding:"max=80"`
}

// SendMessageInput submits one user turn to a session
type SendMessageInput struct {
	FamilyID  uuid.UUID `json:"-"`
	UserID    uuid.UUID `json:"-"`
	SessionID uuid.UUID `json:"-"`
	Content   string    `json:"content" binding:"required,max=4000"`
}

// SendMessageResult returns both turns plus remaining daily quota
type SendMessageResult struct {
	UserMessage      *MessageInfo `json:"user_message"`
	AssistantMessage *MessageInfo `json:"assistant_message"`
	QuotaUsed        int          `json:"quota_used"`
	QuotaLimit       int          `json:"quota_limit"`
}
