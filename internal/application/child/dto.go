package child

import (
	"time"

	"github.com/google/uuid"
)

// ChildInfo is the read model for a child profile
type ChildInfo struct {
	ID          uuid.UUID `json:"id"`
	FamilyID    uuid.UUID `json:"family_id"`
	Name        string    `json:"name"`
	BirthDate   time.Time `json:"birth_date"`
	Gender      *string   `json:"gender,omitempty"`
	AgeInMonths int       `json:"age_in_months"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateChildInput registers a new child within a family
type CreateChildInput struct {
	FamilyID  uuid.UUID `json:"-"`
	Name      string    `json:"name" binding:"required,max=120"`
	BirthDate time.Time `json:"birth_date" binding:"required"`
	Gender    *string   `json:"gender" binding:"omitempty,oneof=male female other"`
}

// UpdateChildInput changes the mutable profile fields
type UpdateChildInput struct {
	FamilyID  uuid.UUID `json:"-"`
	ChildID   uuid.UUID `json:"-"`
	Name      string    `json:"name" binding:"required,max=120"`
	BirthDate time.Time `json:"birth_date" binding:"required"`
	Gender    *string   `json:"gender" binding:"omitempty,oneof=male female other"`
}

// AvatarUploadInput requests a presigned upload slot for a child's avatar
type AvatarUploadInput struct {
	FamilyID    uuid.UUID `json:"-"`
	ChildID     uuid.UUID `json:"-"`
	ContentType string    `json:"content_type" binding:"required"`
}

// AvatarUpload carries the presigned URL the client should PUT the image to
type AvatarUpload struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}
