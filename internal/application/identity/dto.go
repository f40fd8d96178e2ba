package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	FamilyName string
	Email      string
	Password   string
	FirstName  string
	LastName   string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// TokenPair carries the issued credentials
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthResult contains the tokens and user returned by register/login
type AuthResult struct {
	Tokens TokenPair `json:"tokens"`
	User   UserInfo  `json:"user"`
}

// UserInfo contains user details exposed to the interface layer
type UserInfo struct {
	ID            uuid.UUID  `json:"id"`
	FamilyID      uuid.UUID  `json:"family_id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"email_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// ChangePasswordInput contains the input for a password change
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// AddCaregiverInput contains the input for adding a caregiver account
type AddCaregiverInput struct {
	FamilyID  uuid.UUID
	Email     string
	Password  string
	FirstName string
	LastName  string
}
