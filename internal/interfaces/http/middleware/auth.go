package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lifecurriculum/backend/internal/infrastructure/auth"
	"github.com/lifecurriculum/backend/internal/infrastructure/logger"
	"github.com/lifecurriculum/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	AuthClaimsKey   = "auth_claims"
	AuthUserIDKey   = "auth_user_id"
	AuthFamilyIDKey = "auth_family_id"
	AuthRoleKey     = "auth_role"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// RequireAuth validates the bearer token and stores the claims in the
// request context. Requests without a valid access token get a 401.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(header, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				abortWithCode(c, dto.ErrCodeTokenExpired, "Access token has expired")
				return
			}
			abortWithCode(c, dto.ErrCodeTokenInvalid, "Invalid access token")
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthFamilyIDKey, claims.FamilyID)
		c.Set(AuthRoleKey, claims.Role)

		// Log lines downstream of auth carry the caller's identity
		ctx, _ := logger.WithIdentity(c.Request.Context(), claims.FamilyID, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole allows only callers whose token carries one of the given roles.
// Must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(AuthRoleKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
	}
}

// GetAuthUserID returns the authenticated user id set by RequireAuth
func GetAuthUserID(c *gin.Context) string {
	return c.GetString(AuthUserIDKey)
}

// GetAuthFamilyID returns the authenticated family id set by RequireAuth
func GetAuthFamilyID(c *gin.Context) string {
	return c.GetString(AuthFamilyIDKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	abortWithCode(c, dto.ErrCodeUnauthorized, message)
}

func abortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
