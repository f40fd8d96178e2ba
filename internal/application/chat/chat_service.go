package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/chat"
	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/family"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/ai"
	"github.com/lifecurriculum/backend/internal/infrastructure/cache"
)

const (
	// HistoryLimit caps how many prior turns are replayed to the model
	HistoryLimit = 20

	// Daily message quotas per subscription tier
	FreeDailyQuota    = 20
	PremiumDailyQuota = 200
)

// Limits overrides the built-in quota and history caps. Zero fields keep
// the defaults.
type Limits struct {
	FreeDailyQuota    int
	PremiumDailyQuota int
	HistoryLimit      int
}

func (l Limits) normalized() Limits {
	if l.FreeDailyQuota == 0 {
		l.FreeDailyQuota = FreeDailyQuota
	}
	if l.PremiumDailyQuota == 0 {
		l.PremiumDailyQuota = PremiumDailyQuota
	}
	if l.HistoryLimit == 0 {
		l.HistoryLimit = HistoryLimit
	}
	return l
}

const systemPromptBase = `You are a warm, knowledgeable parenting coach for a child development app.
You help parents understand their child's development and suggest age-appropriate activities.
Keep answers practical and encouraging. You are not a medical professional: for health
concerns, recommend consulting a pediatrician.`

// ChatService runs AI coaching conversations with daily per-family quotas
type ChatService struct {
	sessionRepo chat.SessionRepository
	messageRepo chat.MessageRepository
	childRepo   child.Repository
	familyRepo  family.Repository
	aiClient    ai.Client
	quota       cache.QuotaStore
	limits      Limits
	logger      *zap.Logger
}

// NewChatService creates a chat service
func NewChatService(
	sessionRepo chat.SessionRepository,
	messageRepo chat.MessageRepository,
	childRepo child.Repository,
	familyRepo family.Repository,
	aiClient ai.Client,
	quota cache.QuotaStore,
	limits Limits,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		childRepo:   childRepo,
		familyRepo:  familyRepo,
		aiClient:    aiClient,
		quota:       quota,
		limits:      limits.normalized(),
		logger:      logger,
	}
}

// CreateSession starts a conversation, optionally focused on one child
func (s *ChatService) CreateSession(ctx context.Context, input CreateSessionInput) (*SessionInfo, error) {
	if input.ChildID != nil {
		c, err := s.childRepo.FindByID(ctx, *input.ChildID)
		if err != nil {
			return nil, err
		}
		if c.FamilyID != input.FamilyID {
			return nil, shared.ErrNotFound
		}
	}

	session := chat.NewSession(input.FamilyID, input.UserID, input.ChildID, input.Title)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return toSessionInfo(session), nil
}

// ListSessions returns the family's sessions, newest first
func (s *ChatService) ListSessions(ctx context.Context, familyID uuid.UUID, offset, limit int) (*SessionList, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	sessions, total, err := s.sessionRepo.ListByFamily(ctx, familyID, offset, limit)
	if err != nil {
		return nil, err
	}

	list := &SessionList{
		Sessions: make([]*SessionInfo, 0, len(sessions)),
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	}
	for _, session := range sessions {
		list.Sessions = append(list.Sessions, toSessionInfo(session))
	}
	return list, nil
}

// GetSession returns a session together with its recent messages
func (s *ChatService) GetSession(ctx context.Context, familyID, sessionID uuid.UUID) (*SessionDetail, error) {
	session, err := s.findOwnedSession(ctx, familyID, sessionID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListBySession(ctx, sessionID, 0)
	if err != nil {
		return nil, err
	}

	detail := &SessionDetail{
		Session:  toSessionInfo(session),
		Messages: make([]*MessageInfo, 0, len(messages)),
	}
	for _, m := range messages {
		detail.Messages = append(detail.Messages, toMessageInfo(m))
	}
	return detail, nil
}

// DeleteSession removes a session and its messages
func (s *ChatService) DeleteSession(ctx context.Context, familyID, sessionID uuid.UUID) error {
	session, err := s.findOwnedSession(ctx, familyID, sessionID)
	if err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, session.ID)
}

// preparedTurn carries the state shared by both delivery modes between
// the quota check and the persistence of the exchange.
type preparedTurn struct {
	session *chat.Session
	userMsg *chat.Message
	history []*chat.Message
	used    int
	limit   int
}

// SendMessage consumes one unit of the family's daily quota, persists the user
// turn, asks the model for a reply with the recent history as context, and
// persists the assistant turn.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (*SendMessageResult, error) {
	turn, err := s.prepareTurn(ctx, input)
	if err != nil {
		return nil, err
	}

	reply, err := s.aiClient.Complete(ctx, s.systemPrompt(ctx, turn.session), s.buildConversation(turn.history, turn.userMsg))
	if err != nil {
		s.logger.Error("coaching reply failed",
			zap.String("session_id", turn.session.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("ASSISTANT_UNAVAILABLE", "The coaching assistant is unavailable right now")
	}

	return s.finishTurn(ctx, turn, input.Content, reply)
}

// SendMessageStream behaves like SendMessage but delivers the reply
// incrementally through onDelta while the model is generating. The
// exchange is persisted only after the stream completes.
func (s *ChatService) SendMessageStream(ctx context.Context, input SendMessageInput, onDelta func(delta string) error) (*SendMessageResult, error) {
	turn, err := s.prepareTurn(ctx, input)
	if err != nil {
		return nil, err
	}

	reply, err := s.aiClient.CompleteStream(ctx, s.systemPrompt(ctx, turn.session), s.buildConversation(turn.history, turn.userMsg), onDelta)
	if err != nil {
		s.logger.Error("coaching stream failed",
			zap.String("session_id", turn.session.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("ASSISTANT_UNAVAILABLE", "The coaching assistant is unavailable right now")
	}

	return s.finishTurn(ctx, turn, input.Content, reply)
}

func (s *ChatService) prepareTurn(ctx context.Context, input SendMessageInput) (*preparedTurn, error) {
	session, err := s.findOwnedSession(ctx, input.FamilyID, input.SessionID)
	if err != nil {
		return nil, err
	}

	limit, err := s.dailyQuota(ctx, input.FamilyID)
	if err != nil {
		return nil, err
	}

	used, ok, err := s.quota.Take(ctx, input.FamilyID.String(), limit)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrQuotaExceeded
	}

	userMsg, err := chat.NewMessage(session.ID, chat.RoleUser, input.Content)
	if err != nil {
		return nil, err
	}

	history, err := s.messageRepo.ListBySession(ctx, session.ID, s.limits.HistoryLimit)
	if err != nil {
		return nil, err
	}

	return &preparedTurn{
		session: session,
		userMsg: userMsg,
		history: history,
		used:    used,
		limit:   limit,
	}, nil
}

func (s *ChatService) finishTurn(ctx context.Context, turn *preparedTurn, userContent, reply string) (*SendMessageResult, error) {
	if err := s.messageRepo.Create(ctx, turn.userMsg); err != nil {
		return nil, err
	}

	assistantMsg, err := chat.NewMessage(turn.session.ID, chat.RoleAssistant, reply)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	if turn.session.Title == "" {
		turn.session.TitleFromMessage(userContent)
		if err := s.sessionRepo.Update(ctx, turn.session); err != nil {
			s.logger.Warn("session title update failed",
				zap.String("session_id", turn.session.ID.String()), zap.Error(err))
		}
	}

	return &SendMessageResult{
		UserMessage:      toMessageInfo(turn.userMsg),
		AssistantMessage: toMessageInfo(assistantMsg),
		QuotaUsed:        turn.used,
		QuotaLimit:       turn.limit,
	}, nil
}

// QuotaStatus reports how much of today's quota the family has consumed
func (s *ChatService) QuotaStatus(ctx context.Context, familyID uuid.UUID) (used, limit int, err error) {
	limit, err = s.dailyQuota(ctx, familyID)
	if err != nil {
		return 0, 0, err
	}
	used, err = s.quota.Used(ctx, familyID.String())
	if err != nil {
		return 0, 0, err
	}
	return used, limit, nil
}

func (s *ChatService) dailyQuota(ctx context.Context, familyID uuid.UUID) (int, error) {
	f, err := s.familyRepo.FindByID(ctx, familyID)
	if err != nil {
		return 0, err
	}
	if f.IsPremium() {
		return s.limits.PremiumDailyQuota, nil
	}
	return s.limits.FreeDailyQuota, nil
}

func (s *ChatService) systemPrompt(ctx context.Context, session *chat.Session) string {
	if session.ChildID == nil {
		return systemPromptBase
	}
	c, err := s.childRepo.FindByID(ctx, *session.ChildID)
	if err != nil {
		return systemPromptBase
	}
	return fmt.Sprintf("%s\n\nThe conversation is about %s, who is %d months old.",
		systemPromptBase, c.Name, c.AgeInMonths(time.Now()))
}

func (s *ChatService) buildConversation(history []*chat.Message, userMsg *chat.Message) []ai.Message {
	conversation := make([]ai.Message, 0, len(history)+1)
	for _, m := range history {
		role := ai.RoleUser
		if m.Role == chat.RoleAssistant {
			role = ai.RoleAssistant
		}
		conversation = append(conversation, ai.Message{Role: role, Content: m.Content})
	}
	conversation = append(conversation, ai.Message{Role: ai.RoleUser, Content: userMsg.Content})
	return conversation
}

func (s *ChatService) findOwnedSession(ctx context.Context, familyID, sessionID uuid.UUID) (*chat.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.FamilyID != familyID {
		return nil, shared.ErrNotFound
	}
	return session, nil
}

func toSessionInfo(s *chat.Session) *SessionInfo {
	return &SessionInfo{
		ID:        s.ID,
		ChildID:   s.ChildID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toMessageInfo(m *chat.Message) *MessageInfo {
	return &MessageInfo{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
