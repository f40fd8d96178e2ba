package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifecurriculum/backend/internal/infrastructure/config"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: accessExp,
		Issuer:                "lifecurriculum-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	familyID := uuid.New()
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateAccessToken(GenerateTokenInput{
		FamilyID: familyID,
		UserID:   userID,
		Email:    "parent@example.com",
		Role:     "parent",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, familyID.String(), claims.FamilyID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "parent@example.com", claims.Email)
	assert.Equal(t, "parent", claims.Role)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := newTestService(-1 * time.Minute)

	token, _, err := svc.GenerateAccessToken(GenerateTokenInput{
		FamilyID: uuid.New(),
		UserID:   uuid.New(),
		Role:     "parent",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:                "an-entirely-different-secret-value",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "lifecurriculum-test",
	})

	token, _, err := svc.GenerateAccessToken(GenerateTokenInput{
		FamilyID: uuid.New(),
		UserID:   uuid.New(),
		Role:     "parent",
	})
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	_, err := svc.ValidateAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateOpaqueToken(t *testing.T) {
	a, err := GenerateOpaqueToken()
	require.NoError(t, err)
	b, err := GenerateOpaqueToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
