package family

import (
	"time"

	"github.com/google/uuid"
)

// FamilyInfo is the read model returned to API callers
type FamilyInfo struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	SubscriptionTier string    `json:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MemberInfo describes one user belonging to the family
type MemberInfo struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
}

// RenameInput updates the family display name
type RenameInput struct {
	FamilyID uuid.UUID `json:"-"`
	Name     string    `json:"name" binding:"required,max=120"`
}

// ChangeTierInput moves the family between subscription tiers
type ChangeTierInput struct {
	FamilyID uuid.UUID `json:"-"`
	Tier     string    `json:"tier" binding:"required,oneof=free premium"`
}
