package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/progress"
)

// ProgressRecordModel is the persistence model for progress records.
// A partial unique index on (child_id, milestone_id) and (child_id,
// activity_id) backs the upsert semantics.
type ProgressRecordModel struct {
	FamilyModel
	ChildID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	MilestoneID *uuid.UUID `gorm:"type:uuid;index"`
	ActivityID  *uuid.UUID `gorm:"type:uuid;index"`
	Status      string     `gorm:"type:varchar(20);not null;default:'not_started'"`
	AchievedAt  *time.Time
	Notes       string  `gorm:"type:text"`
	PhotoKey    *string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ProgressRecordModel) TableName() string {
	return "progress_records"
}

// ToDomain converts the persistence model to a domain Record
func (m *ProgressRecordModel) ToDomain() *progress.Record {
	return &progress.Record{
		FamilyEntity: m.ToDomainFamilyEntity(),
		ChildID:      m.ChildID,
		MilestoneID:  m.MilestoneID,
		ActivityID:   m.ActivityID,
		Status:       progress.Status(m.Status),
		AchievedAt:   m.AchievedAt,
		Notes:        m.Notes,
		PhotoKey:     m.PhotoKey,
	}
}

// FromDomain populates the persistence model from a domain Record
func (m *ProgressRecordModel) FromDomain(r *progress.Record) {
	m.FromDomainFamilyEntity(r.FamilyEntity)
	m.ChildID = r.ChildID
	m.MilestoneID = r.MilestoneID
	m.ActivityID = r.ActivityID
	m.Status = string(r.Status)
	m.AchievedAt = r.AchievedAt
	m.Notes = r.Notes
	m.PhotoKey = r.PhotoKey
}
