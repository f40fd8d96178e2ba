package progress

import (
	"time"

	"github.com/google/uuid"
)

// RecordInfo is the read model for a progress record
type RecordInfo struct {
	ID          uuid.UUID  `json:"id"`
	ChildID     uuid.UUID  `json:"child_id"`
	MilestoneID *uuid.UUID `json:"milestone_id,omitempty"`
	ActivityID  *uuid.UUID `json:"activity_id,omitempty"`
	Status      string     `json:"status"`
	AchievedAt  *time.Time `json:"achieved_at,omitempty"`
	Notes       string     `json:"notes"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RecordMilestoneInput records or updates progress against a milestone
type RecordMilestoneInput struct {
	FamilyID    uuid.UUID `json:"-"`
	ChildID     uuid.UUID `json:"-"`
	MilestoneID uuid.UUID `json:"milestone_id" binding:"required"`
	Status      string    `json:"status" binding:"required,oneof=not_started in_progress achieved"`
	Notes       string    `json:"notes" binding:"max=2000"`
}

// RecordActivityInput records or updates progress against an activity
type RecordActivityInput struct {
	FamilyID   uuid.UUID `json:"-"`
	ChildID    uuid.UUID `json:"-"`
	ActivityID uuid.UUID `json:"activity_id" binding:"required"`
	Status     string    `json:"status" binding:"required,oneof=not_started in_progress achieved"`
	Notes      string    `json:"notes" binding:"max=2000"`
}

// PhotoUploadInput requests a presigned upload slot for a progress photo
type PhotoUploadInput struct {
	FamilyID    uuid.UUID `json:"-"`
	ChildID     uuid.UUID `json:"-"`
	RecordID    uuid.UUID `json:"-"`
	ContentType string    `json:"content_type" binding:"required"`
}

// PhotoUpload carries the presigned URL the client should PUT the photo to
type PhotoUpload struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DomainSummaryInfo aggregates milestone achievement per development domain
type DomainSummaryInfo struct {
	DomainID   uuid.UUID `json:"domain_id"`
	DomainName string    `json:"domain_name"`
	Achieved   int       `json:"achieved"`
	InProgress int       `json:"in_progress"`
	Total      int       `json:"total"`
	Percent    float64   `json:"percent"`
}

// ChildSummary is the per-child progress overview
type ChildSummary struct {
	ChildID  uuid.UUID            `json:"child_id"`
	Domains  []*DomainSummaryInfo `json:"domains"`
	Achieved int                  `json:"achieved"`
	Total    int                  `json:"total"`
}
