package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	chatapp "github.com/lifecurriculum/backend/internal/application/chat"
	"github.com/lifecurriculum/backend/internal/domain/chat"
	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/family"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/ai"
	"github.com/lifecurriculum/backend/internal/infrastructure/cache"
)

type stubSessionRepo struct {
	session *chat.Session
}

func (s *stubSessionRepo) Create(ctx context.Context, sess *chat.Session) error { return nil }

func (s *stubSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*chat.Session, error) {
	if s.session == nil || s.session.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.session, nil
}

func (s *stubSessionRepo) ListByFamily(ctx context.Context, familyID uuid.UUID, offset, limit int) ([]*chat.Session, int64, error) {
	return nil, 0, nil
}

func (s *stubSessionRepo) Update(ctx context.Context, sess *chat.Session) error { return nil }
func (s *stubSessionRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }

type stubMessageRepo struct {
	created []*chat.Message
}

func (s *stubMessageRepo) Create(ctx context.Context, m *chat.Message) error {
	s.created = append(s.created, m)
	return nil
}

func (s *stubMessageRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*chat.Message, error) {
	return nil, nil
}

type stubChildRepo struct{}

func (stubChildRepo) Create(ctx context.Context, c *child.Child) error { return nil }
func (stubChildRepo) FindByID(ctx context.Context, id uuid.UUID) (*child.Child, error) {
	return nil, shared.ErrNotFound
}
func (stubChildRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*child.Child, error) {
	return nil, nil
}
func (stubChildRepo) Update(ctx context.Context, c *child.Child) error { return nil }
func (stubChildRepo) Delete(ctx context.Context, id uuid.UUID) error   { return nil }

type stubFamilyRepo struct {
	family *family.Family
}

func (s *stubFamilyRepo) Create(ctx context.Context, f *family.Family) error { return nil }

func (s *stubFamilyRepo) FindByID(ctx context.Context, id uuid.UUID) (*family.Family, error) {
	if s.family == nil || s.family.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.family, nil
}

func (s *stubFamilyRepo) Update(ctx context.Context, f *family.Family) error { return nil }
func (s *stubFamilyRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

type chunkedAIClient struct {
	chunks []string
}

func (c *chunkedAIClient) Complete(ctx context.Context, systemPrompt string, messages []ai.Message) (string, error) {
	return strings.Join(c.chunks, ""), nil
}

func (c *chunkedAIClient) CompleteStream(ctx context.Context, systemPrompt string, messages []ai.Message, onDelta func(string) error) (string, error) {
	for _, chunk := range c.chunks {
		if err := onDelta(chunk); err != nil {
			return "", err
		}
	}
	return strings.Join(c.chunks, ""), nil
}

func (c *chunkedAIClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", nil
}

func newStreamTestHandler(t *testing.T) (*ChatHandler, *family.Family, *chat.Session) {
	t.Helper()

	f, err := family.NewFamily("The Riveras")
	require.NoError(t, err)
	session := chat.NewSession(f.ID, uuid.New(), nil, "Play")

	svc := chatapp.NewChatService(
		&stubSessionRepo{session: session},
		&stubMessageRepo{},
		stubChildRepo{},
		&stubFamilyRepo{family: f},
		&chunkedAIClient{chunks: []string{"Try stacking ", "blocks."}},
		cache.NewInMemoryQuotaStore(),
		chatapp.Limits{},
		zap.NewNop(),
	)
	return NewChatHandler(svc), f, session
}

func TestChatHandlerStreamMessage(t *testing.T) {
	h, f, session := newStreamTestHandler(t)

	engine := gin.New()
	engine.POST("/sessions/:sessionId/messages/stream", func(c *gin.Context) {
		setAuthContext(c, f.ID, session.UserID)
		h.StreamMessage(c)
	})

	body := strings.NewReader(`{"content": "What should we play?"}`)
	req := httptest.NewRequest("POST", "/sessions/"+session.ID.String()+"/messages/stream", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	out := w.Body.String()
	assert.Contains(t, out, "event:delta")
	assert.Contains(t, out, "Try stacking ")
	assert.Contains(t, out, "event:done")
	assert.Contains(t, out, "Try stacking blocks.")
}

func TestChatHandlerStreamMessage_UnknownSessionIsPlainError(t *testing.T) {
	h, f, session := newStreamTestHandler(t)

	engine := gin.New()
	engine.POST("/sessions/:sessionId/messages/stream", func(c *gin.Context) {
		setAuthContext(c, f.ID, session.UserID)
		h.StreamMessage(c)
	})

	// failures before the first delta stay ordinary JSON responses
	body := strings.NewReader(`{"content": "hello"}`)
	req := httptest.NewRequest("POST", "/sessions/"+uuid.NewString()+"/messages/stream", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.NotContains(t, w.Header().Get("Content-Type"), "text/event-stream")
}
