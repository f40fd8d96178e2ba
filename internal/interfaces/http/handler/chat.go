package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifecurriculum/backend/internal/application/chat"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/interfaces/http/dto"
)

// ChatHandler handles assistant conversation requests
type ChatHandler struct {
	BaseHandler
	chatService *chat.ChatService
}

// NewChatHandler creates a chat handler
func NewChatHandler(chatService *chat.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// CreateSession starts a new conversation
func (h *ChatHandler) CreateSession(c *gin.Context) {
	familyID, userID, ok := h.identity(c)
	if !ok {
		return
	}

	var input chat.CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.UserID = userID

	session, err := h.chatService.CreateSession(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// ListSessions returns the family's conversations, newest first
func (h *ChatHandler) ListSessions(c *gin.Context) {
	familyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.chatService.ListSessions(c.Request.Context(), familyID, offset, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Sessions, list.Total, list.Offset, list.Limit)
}

// GetSession returns a session with its message history
func (h *ChatHandler) GetSession(c *gin.Context) {
	familyID, _, ok := h.identity(c)
	if !ok {
		return
	}
	sessionID, err := pathUUID(c, "sessionId")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	detail, err := h.chatService.GetSession(c.Request.Context(), familyID, sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// DeleteSession removes a conversation and its messages
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	familyID, _, ok := h.identity(c)
	if !ok {
		return
	}
	sessionID, err := pathUUID(c, "sessionId")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	if err := h.chatService.DeleteSession(c.Request.Context(), familyID, sessionID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SendMessage submits one user turn and returns the assistant reply
func (h *ChatHandler) SendMessage(c *gin.Context) {
	familyID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	sessionID, err := pathUUID(c, "sessionId")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var input chat.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.UserID = userID
	input.SessionID = sessionID

	result, err := h.chatService.SendMessage(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// StreamMessage submits one user turn and streams the assistant reply as
// server-sent events: "delta" events carry text fragments, a final "done"
// event carries the persisted exchange. Failures before the first delta
// are plain JSON errors; later ones arrive as an "error" event because
// the response status is already committed.
func (h *ChatHandler) StreamMessage(c *gin.Context) {
	familyID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	sessionID, err := pathUUID(c, "sessionId")
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var input chat.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	input.FamilyID = familyID
	input.UserID = userID
	input.SessionID = sessionID

	streaming := false
	result, err := h.chatService.SendMessageStream(c.Request.Context(), input, func(delta string) error {
		if !streaming {
			writeSSEHeaders(c)
			streaming = true
		}
		c.SSEvent("delta", delta)
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		if !streaming {
			h.HandleError(c, err)
			return
		}
		code, message := dto.ErrCodeInternal, "An unexpected error occurred"
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			code = dto.NormalizeErrorCode(domainErr.Code)
			message = domainErr.Message
		}
		c.SSEvent("error", gin.H{"code": code, "message": message})
		c.Writer.Flush()
		return
	}

	if !streaming {
		writeSSEHeaders(c)
	}
	c.SSEvent("done", result)
	c.Writer.Flush()
}

func writeSSEHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
}

// QuotaStatus reports the family's daily message allowance
func (h *ChatHandler) QuotaStatus(c *gin.Context) {
	familyID, _, ok := h.identity(c)
	if !ok {
		return
	}

	used, limit, err := h.chatService.QuotaStatus(c.Request.Context(), familyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"used": used, "limit": limit, "remaining": limit - used})
}

func (h *ChatHandler) identity(c *gin.Context) (familyID, userID uuid.UUID, ok bool) {
	familyID, err := getFamilyID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	userID, err = getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	return familyID, userID, true
}
