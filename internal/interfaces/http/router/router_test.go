package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/infrastructure/auth"
	"github.com/lifecurriculum/backend/internal/infrastructure/config"
	"github.com/lifecurriculum/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) Ping() error { return nil }

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test",
	})
}

func testHandlers() Handlers {
	return Handlers{
		Health:     handler.NewHealthHandler(okPinger{}, "test"),
		Auth:       handler.NewAuthHandler(nil, config.CookieConfig{}),
		Family:     handler.NewFamilyHandler(nil),
		Child:      handler.NewChildHandler(nil),
		Curriculum: handler.NewCurriculumHandler(nil),
		Progress:   handler.NewProgressHandler(nil),
		Chat:       handler.NewChatHandler(nil),
		Resource:   handler.NewResourceHandler(nil),
		Athletic:   handler.NewAthleticHandler(nil),
		Insight:    handler.NewInsightHandler(nil),
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	engine := gin.New()
	Setup(engine, testHandlers(), Config{
		JWTService: testJWTService(),
		Logger:     zap.NewNop(),
	})
	return engine
}

func TestSetupRegistersRoutes(t *testing.T) {
	engine := newTestEngine(t)

	routes := make(map[string]bool)
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"GET /api/v1/auth/me",
		"GET /api/v1/family",
		"GET /api/v1/family/members",
		"POST /api/v1/children",
		"GET /api/v1/children/:childId/stage",
		"POST /api/v1/children/:childId/progress/milestones",
		"GET /api/v1/children/:childId/progress/summary",
		"POST /api/v1/children/:childId/insights/roadmap",
		"GET /api/v1/curriculum/stages",
		"GET /api/v1/curriculum/milestones",
		"POST /api/v1/chat/sessions",
		"POST /api/v1/chat/sessions/:sessionId/messages",
		"POST /api/v1/chat/sessions/:sessionId/messages/stream",
		"GET /api/v1/resources",
		"POST /api/v1/resources/:id/bookmark",
		"GET /api/v1/athletics/sports",
		"POST /api/v1/athletics/athletes/:athleteId/check-ins",
	}
	for _, route := range expected {
		assert.True(t, routes[route], "missing route %s", route)
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	engine := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/children", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthEndpointsRateLimited(t *testing.T) {
	engine := gin.New()
	Setup(engine, testHandlers(), Config{
		JWTService:     testJWTService(),
		Logger:         zap.NewNop(),
		AuthRateLimit:  1,
		AuthRateWindow: time.Minute,
	})

	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, httptest.NewRequest("POST", "/api/v1/auth/login", nil))
	assert.NotEqual(t, http.StatusTooManyRequests, w1.Code)

	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, httptest.NewRequest("POST", "/api/v1/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.Contains(t, w2.Body.String(), "AUTH_RATE_LIMIT_EXCEEDED")
}

func TestGeneralRateLimitRunsAfterAuth(t *testing.T) {
	engine := gin.New()
	Setup(engine, testHandlers(), Config{
		JWTService: testJWTService(),
		Logger:     zap.NewNop(),
		RateLimit:  1,
		RateWindow: time.Minute,
	})

	// An unauthenticated burst never reaches the limiter, so it cannot
	// exhaust the budget of real users behind the same IP
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/children", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	engine := newTestEngine(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
