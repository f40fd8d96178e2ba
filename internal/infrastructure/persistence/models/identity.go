package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User entity
type UserModel struct {
	FamilyModel
	Email         string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash  string     `gorm:"type:varchar(255);not null"`
	FirstName     string     `gorm:"type:varchar(100)"`
	LastName      string     `gorm:"type:varchar(100)"`
	Role          string     `gorm:"type:varchar(20);not null;default:'parent'"`
	EmailVerified bool       `gorm:"not null;default:false"`
	IsActive      bool       `gorm:"not null;default:true"`
	LastLoginAt   *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		FamilyEntity:  m.ToDomainFamilyEntity(),
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Role:          identity.Role(m.Role),
		EmailVerified: m.EmailVerified,
		IsActive:      m.IsActive,
		LastLoginAt:   m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainFamilyEntity(u.FamilyEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Role = string(u.Role)
	m.EmailVerified = u.EmailVerified
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
}

// RefreshTokenModel is the persistence model for refresh token digests
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:char(64);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null;index"`
	RevokedAt *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// ToDomain converts the persistence model to a domain RefreshToken
func (m *RefreshTokenModel) ToDomain() *identity.RefreshToken {
	return &identity.RefreshToken{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		RevokedAt: m.RevokedAt,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain RefreshToken
func (m *RefreshTokenModel) FromDomain(t *identity.RefreshToken) {
	m.ID = t.ID
	m.UserID = t.UserID
	m.TokenHash = t.TokenHash
	m.ExpiresAt = t.ExpiresAt
	m.RevokedAt = t.RevokedAt
	m.CreatedAt = t.CreatedAt
}

// OneTimeTokenModel is the persistence model for verification/reset tokens
type OneTimeTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Purpose   string    `gorm:"type:varchar(30);not null;index"`
	TokenHash string    `gorm:"type:char(64);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OneTimeTokenModel) TableName() string {
	return "one_time_tokens"
}

// ToDomain converts the persistence model to a domain OneTimeToken
func (m *OneTimeTokenModel) ToDomain() *identity.OneTimeToken {
	return &identity.OneTimeToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Purpose:   identity.TokenPurpose(m.Purpose),
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		UsedAt:    m.UsedAt,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain OneTimeToken
func (m *OneTimeTokenModel) FromDomain(t *identity.OneTimeToken) {
	m.ID = t.ID
	m.UserID = t.UserID
	m.Purpose = string(t.Purpose)
	m.TokenHash = t.TokenHash
	m.ExpiresAt = t.ExpiresAt
	m.UsedAt = t.UsedAt
	m.CreatedAt = t.CreatedAt
}
