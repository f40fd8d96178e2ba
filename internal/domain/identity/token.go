package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// TokenPurpose distinguishes the one-time token families
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePasswordReset     TokenPurpose = "password_reset"
)

// RefreshToken is a stored refresh credential. Only the sha256 digest of the
// issued token is persisted; the raw value never touches the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// NewRefreshToken records a refresh token digest for a user
func NewRefreshToken(userID uuid.UUID, tokenHash string, expiresAt time.Time) *RefreshToken {
	return &RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

// IsExpired reports whether the token is past its expiry
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsRevoked reports whether the token has been revoked
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// Validate returns an error describing why the token cannot be used
func (t *RefreshToken) Validate() error {
	if t.IsRevoked() {
		return shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}
	if t.IsExpired() {
		return shared.ErrTokenExpired
	}
	return nil
}

// Revoke marks the token as unusable
func (t *RefreshToken) Revoke() {
	now := time.Now()
	t.RevokedAt = &now
}

// OneTimeToken is a single-use credential for email verification or password
// reset flows. Stored hashed, consumed exactly once.
type OneTimeToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Purpose   TokenPurpose
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// NewOneTimeToken records a one-time token digest for a user
func NewOneTimeToken(userID uuid.UUID, purpose TokenPurpose, tokenHash string, ttl time.Duration) *OneTimeToken {
	now := time.Now()
	return &OneTimeToken{
		ID:        uuid.New(),
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Consume marks the token as used, failing if it is expired or already spent
func (t *OneTimeToken) Consume() error {
	if t.UsedAt != nil {
		return shared.NewDomainError("TOKEN_USED", "Token has already been used")
	}
	if time.Now().After(t.ExpiresAt) {
		return shared.ErrTokenExpired
	}
	now := time.Now()
	t.UsedAt = &now
	return nil
}
