package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RefreshTokenRepository stores refresh token digests
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Update(ctx context.Context, token *RefreshToken) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// OneTimeTokenRepository stores email verification and password reset tokens
type OneTimeTokenRepository interface {
	Create(ctx context.Context, token *OneTimeToken) error
	FindValidByHash(ctx context.Context, purpose TokenPurpose, tokenHash string) (*OneTimeToken, error)
	Update(ctx context.Context, token *OneTimeToken) error
	InvalidateForUser(ctx context.Context, userID uuid.UUID, purpose TokenPurpose) error
}
