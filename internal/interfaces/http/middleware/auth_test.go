package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifecurriculum/backend/internal/infrastructure/auth"
	"github.com/lifecurriculum/backend/internal/infrastructure/config"
)

func newTestJWTService(ttl time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: ttl,
		Issuer:                "test",
	})
}

func authRouter(jwtService *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(RequireAuth(jwtService))
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   GetAuthUserID(c),
			"family_id": GetAuthFamilyID(c),
		})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := newTestJWTService(15 * time.Minute)

	userID := uuid.New()
	familyID := uuid.New()
	token, _, err := jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		FamilyID: familyID,
		UserID:   userID,
		Email:    "parent@example.com",
		Role:     "parent",
	})
	require.NoError(t, err)

	t.Run("accepts valid bearer token", func(t *testing.T) {
		router := authRouter(jwtService)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), familyID.String())
	})

	t.Run("rejects missing header", func(t *testing.T) {
		router := authRouter(jwtService)
		req := httptest.NewRequest("GET", "/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		router := authRouter(jwtService)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expiredService := newTestJWTService(-time.Minute)
		expired, _, err := expiredService.GenerateAccessToken(auth.GenerateTokenInput{
			FamilyID: familyID,
			UserID:   userID,
			Email:    "parent@example.com",
			Role:     "parent",
		})
		require.NoError(t, err)

		router := authRouter(expiredService)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(AuthRoleKey, "caregiver")
	})
	router.GET("/parent-only", RequireRole("parent"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/any-member", RequireRole("parent", "caregiver"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/parent-only", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest("GET", "/any-member", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
