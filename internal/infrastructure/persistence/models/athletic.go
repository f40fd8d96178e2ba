package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/athletic"
)

// SportModel is the persistence model for the seeded sport list
type SportModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Category string `gorm:"type:varchar(100)"`
	Icon     string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (SportModel) TableName() string {
	return "sports"
}

// ToDomain converts the persistence model to a domain Sport
func (m *SportModel) ToDomain() *athletic.Sport {
	return &athletic.Sport{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Category:   m.Category,
		Icon:       m.Icon,
	}
}

// FromDomain populates the persistence model from a domain Sport
func (m *SportModel) FromDomain(s *athletic.Sport) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Category = s.Category
	m.Icon = s.Icon
}

// AthleteModel is the persistence model for athlete profiles
type AthleteModel struct {
	FamilyModel
	ChildID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SportID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SkillLevel string    `gorm:"type:varchar(20);not null;default:'beginner'"`
	Goals      string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AthleteModel) TableName() string {
	return "athletes"
}

// ToDomain converts the persistence model to a domain Athlete
func (m *AthleteModel) ToDomain() *athletic.Athlete {
	return &athletic.Athlete{
		FamilyEntity: m.ToDomainFamilyEntity(),
		ChildID:      m.ChildID,
		SportID:      m.SportID,
		SkillLevel:   athletic.SkillLevel(m.SkillLevel),
		Goals:        m.Goals,
	}
}

// FromDomain populates the persistence model from a domain Athlete
func (m *AthleteModel) FromDomain(a *athletic.Athlete) {
	m.FromDomainFamilyEntity(a.FamilyEntity)
	m.ChildID = a.ChildID
	m.SportID = a.SportID
	m.SkillLevel = string(a.SkillLevel)
	m.Goals = a.Goals
}

// ActivityLogModel is the persistence model for training logs
type ActivityLogModel struct {
	FamilyModel
	AthleteID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Date            time.Time `gorm:"type:date;not null;index"`
	DurationMinutes int       `gorm:"not null"`
	Intensity       int       `gorm:"not null"`
	Notes           string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain ActivityLog
func (m *ActivityLogModel) ToDomain() *athletic.ActivityLog {
	return &athletic.ActivityLog{
		FamilyEntity:    m.ToDomainFamilyEntity(),
		AthleteID:       m.AthleteID,
		Date:            m.Date,
		DurationMinutes: m.DurationMinutes,
		Intensity:       m.Intensity,
		Notes:           m.Notes,
	}
}

// FromDomain populates the persistence model from a domain ActivityLog
func (m *ActivityLogModel) FromDomain(log *athletic.ActivityLog) {
	m.FromDomainFamilyEntity(log.FamilyEntity)
	m.AthleteID = log.AthleteID
	m.Date = log.Date
	m.DurationMinutes = log.DurationMinutes
	m.Intensity = log.Intensity
	m.Notes = log.Notes
}

// FunCheckInModel is the persistence model for enjoyment check-ins
type FunCheckInModel struct {
	FamilyModel
	AthleteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Date      time.Time `gorm:"type:date;not null;index"`
	Enjoyment int       `gorm:"not null"`
	MoodNote  string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FunCheckInModel) TableName() string {
	return "fun_checkins"
}

// ToDomain converts the persistence model to a domain FunCheckIn
func (m *FunCheckInModel) ToDomain() *athletic.FunCheckIn {
	return &athletic.FunCheckIn{
		FamilyEntity: m.ToDomainFamilyEntity(),
		AthleteID:    m.AthleteID,
		Date:         m.Date,
		Enjoyment:    m.Enjoyment,
		MoodNote:     m.MoodNote,
	}
}

// FromDomain populates the persistence model from a domain FunCheckIn
func (m *FunCheckInModel) FromDomain(c *athletic.FunCheckIn) {
	m.FromDomainFamilyEntity(c.FamilyEntity)
	m.AthleteID = c.AthleteID
	m.Date = c.Date
	m.Enjoyment = c.Enjoyment
	m.MoodNote = c.MoodNote
}
