package progress

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// Status tracks how far a child has come on a milestone or activity
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusAchieved   Status = "achieved"
)

// IsValid reports whether the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusAchieved:
		return true
	}
	return false
}

// Record is a child's progress against exactly one milestone or one
// activity, never both.
type Record struct {
	shared.FamilyEntity
	ChildID     uuid.UUID
	MilestoneID *uuid.UUID
	ActivityID  *uuid.UUID
	Status      Status
	AchievedAt  *time.Time
	Notes       string
	PhotoKey    *string
}

// NewMilestoneRecord creates a progress record against a milestone
func NewMilestoneRecord(familyID, childID, milestoneID uuid.UUID, status Status, notes string) (*Record, error) {
	return newRecord(familyID, childID, &milestoneID, nil, status, notes)
}

// NewActivityRecord creates a progress record against an activity
func NewActivityRecord(familyID, childID, activityID uuid.UUID, status Status, notes string) (*Record, error) {
	return newRecord(familyID, childID, nil, &activityID, status, notes)
}

func newRecord(familyID, childID uuid.UUID, milestoneID, activityID *uuid.UUID, status Status, notes string) (*Record, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown progress status")
	}

	r := &Record{
		FamilyEntity: shared.NewFamilyEntity(familyID),
		ChildID:      childID,
		MilestoneID:  milestoneID,
		ActivityID:   activityID,
		Status:       status,
		Notes:        notes,
	}
	r.stampAchievement()
	return r, nil
}

// UpdateStatus moves the record to a new status, stamping the achievement
// time on the transition into achieved and clearing it on the way out.
func (r *Record) UpdateStatus(status Status, notes string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown progress status")
	}
	r.Status = status
	r.Notes = notes
	r.stampAchievement()
	r.IncrementVersion()
	return nil
}

func (r *Record) stampAchievement() {
	if r.Status == StatusAchieved {
		if r.AchievedAt == nil {
			now := time.Now()
			r.AchievedAt = &now
		}
		return
	}
	r.AchievedAt = nil
}

// AttachPhoto stores the object storage key of an attached photo
func (r *Record) AttachPhoto(key string) {
	r.PhotoKey = &key
	r.IncrementVersion()
}

// TargetsMilestone reports whether the record tracks a milestone
func (r *Record) TargetsMilestone() bool {
	return r.MilestoneID != nil
}

// DomainSummary aggregates achievement counts for one development domain
type DomainSummary struct {
	DomainID   uuid.UUID `json:"domain_id"`
	DomainName string    `json:"domain_name"`
	Achieved   int       `json:"achieved"`
	InProgress int       `json:"in_progress"`
	Total      int       `json:"total"`
	Percent    float64   `json:"percent"`
}
