package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	familyID := uuid.New()

	t.Run("creates active unverified user", func(t *testing.T) {
		user, err := NewUser(familyID, "Parent@Example.com", "supersecret", "Ada", "Lovelace", RoleParent)
		require.NoError(t, err)

		assert.Equal(t, "parent@example.com", user.Email)
		assert.Equal(t, familyID, user.FamilyID)
		assert.True(t, user.IsActive)
		assert.False(t, user.EmailVerified)
		assert.Equal(t, 1, user.Version)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "supersecret", user.PasswordHash)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser(familyID, "not-an-email", "supersecret", "Ada", "Lovelace", RoleParent)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(familyID, "a@b.com", "short", "Ada", "Lovelace", RoleParent)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(familyID, "a@b.com", "supersecret", "Ada", "Lovelace", Role("admin"))
		assert.Error(t, err)
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "supersecret", "Ada", "Lovelace", RoleParent)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("supersecret"))
	assert.False(t, user.VerifyPassword("wrongpassword"))
}

func TestUser_MarkEmailVerified(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "supersecret", "Ada", "Lovelace", RoleParent)
	require.NoError(t, err)

	user.MarkEmailVerified()
	assert.True(t, user.EmailVerified)
	assert.Equal(t, 2, user.Version)
}

func TestRefreshToken_Validate(t *testing.T) {
	t.Run("valid token passes", func(t *testing.T) {
		token := NewRefreshToken(uuid.New(), "abc123", time.Now().Add(time.Hour))
		assert.NoError(t, token.Validate())
	})

	t.Run("expired token fails", func(t *testing.T) {
		token := NewRefreshToken(uuid.New(), "abc123", time.Now().Add(-time.Minute))
		assert.Error(t, token.Validate())
	})

	t.Run("revoked token fails", func(t *testing.T) {
		token := NewRefreshToken(uuid.New(), "abc123", time.Now().Add(time.Hour))
		token.Revoke()
		assert.Error(t, token.Validate())
	})
}

func TestOneTimeToken_Consume(t *testing.T) {
	t.Run("consumes once", func(t *testing.T) {
		token := NewOneTimeToken(uuid.New(), PurposeEmailVerification, "hash", time.Hour)
		require.NoError(t, token.Consume())
		assert.Error(t, token.Consume())
	})

	t.Run("rejects expired", func(t *testing.T) {
		token := NewOneTimeToken(uuid.New(), PurposePasswordReset, "hash", -time.Minute)
		assert.Error(t, token.Consume())
	})
}
