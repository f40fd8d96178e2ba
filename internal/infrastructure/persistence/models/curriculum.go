package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lifecurriculum/backend/internal/domain/curriculum"
)

// AgeStageModel is the persistence model for age stages
type AgeStageModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	MinMonths   int    `gorm:"not null"`
	MaxMonths   int    `gorm:"not null"`
	SortOrder   int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (AgeStageModel) TableName() string {
	return "age_stages"
}

// ToDomain converts the persistence model to a domain AgeStage
func (m *AgeStageModel) ToDomain() *curriculum.AgeStage {
	return &curriculum.AgeStage{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		MinMonths:   m.MinMonths,
		MaxMonths:   m.MaxMonths,
		SortOrder:   m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain AgeStage
func (m *AgeStageModel) FromDomain(s *curriculum.AgeStage) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Description = s.Description
	m.MinMonths = s.MinMonths
	m.MaxMonths = s.MaxMonths
	m.SortOrder = s.SortOrder
}

// DevelopmentDomainModel is the persistence model for development domains
type DevelopmentDomainModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Icon        string `gorm:"type:varchar(100)"`
	SortOrder   int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DevelopmentDomainModel) TableName() string {
	return "development_domains"
}

// ToDomain converts the persistence model to a domain DevelopmentDomain
func (m *DevelopmentDomainModel) ToDomain() *curriculum.DevelopmentDomain {
	return &curriculum.DevelopmentDomain{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		Icon:        m.Icon,
		SortOrder:   m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain DevelopmentDomain
func (m *DevelopmentDomainModel) FromDomain(d *curriculum.DevelopmentDomain) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.Name = d.Name
	m.Description = d.Description
	m.Icon = d.Icon
	m.SortOrder = d.SortOrder
}

// MilestoneModel is the persistence model for milestones
type MilestoneModel struct {
	BaseModel
	DomainID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StageID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	SortOrder   int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (MilestoneModel) TableName() string {
	return "milestones"
}

// ToDomain converts the persistence model to a domain Milestone
func (m *MilestoneModel) ToDomain() *curriculum.Milestone {
	return &curriculum.Milestone{
		BaseEntity:  m.BaseModel.ToDomain(),
		DomainID:    m.DomainID,
		StageID:     m.StageID,
		Title:       m.Title,
		Description: m.Description,
		SortOrder:   m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain Milestone
func (m *MilestoneModel) FromDomain(ms *curriculum.Milestone) {
	m.FromDomainBaseEntity(ms.BaseEntity)
	m.DomainID = ms.DomainID
	m.StageID = ms.StageID
	m.Title = ms.Title
	m.Description = ms.Description
	m.SortOrder = ms.SortOrder
}

// ActivityModel is the persistence model for curriculum activities
type ActivityModel struct {
	BaseModel
	StageID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title           string         `gorm:"type:varchar(255);not null"`
	Description     string         `gorm:"type:text"`
	Materials       pq.StringArray `gorm:"type:text[]"`
	DurationMinutes int            `gorm:"not null;default:0"`

	Milestones []ActivityMilestoneModel `gorm:"foreignKey:ActivityID"`
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts the persistence model to a domain Activity
func (m *ActivityModel) ToDomain() *curriculum.Activity {
	milestoneIDs := make([]uuid.UUID, 0, len(m.Milestones))
	for _, link := range m.Milestones {
		milestoneIDs = append(milestoneIDs, link.MilestoneID)
	}

	return &curriculum.Activity{
		BaseEntity:      m.BaseModel.ToDomain(),
		StageID:         m.StageID,
		Title:           m.Title,
		Description:     m.Description,
		Materials:       []string(m.Materials),
		DurationMinutes: m.DurationMinutes,
		MilestoneIDs:    milestoneIDs,
	}
}

// FromDomain populates the persistence model from a domain Activity
func (m *ActivityModel) FromDomain(a *curriculum.Activity) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.StageID = a.StageID
	m.Title = a.Title
	m.Description = a.Description
	m.Materials = pq.StringArray(a.Materials)
	m.DurationMinutes = a.DurationMinutes

	m.Milestones = make([]ActivityMilestoneModel, 0, len(a.MilestoneIDs))
	for _, id := range a.MilestoneIDs {
		m.Milestones = append(m.Milestones, ActivityMilestoneModel{
			ActivityID:  a.ID,
			MilestoneID: id,
		})
	}
}

// ActivityMilestoneModel links activities to the milestones they develop
type ActivityMilestoneModel struct {
	ActivityID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	MilestoneID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (ActivityMilestoneModel) TableName() string {
	return "activity_milestones"
}
