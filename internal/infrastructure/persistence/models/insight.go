package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lifecurriculum/backend/internal/domain/insight"
)

// InterestProfileModel is the persistence model for interest analyses
type InterestProfileModel struct {
	FamilyModel
	ChildID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Interests   pq.StringArray `gorm:"type:text[]"`
	Strengths   pq.StringArray `gorm:"type:text[]"`
	Suggestions pq.StringArray `gorm:"type:text[]"`
	GeneratedAt time.Time      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InterestProfileModel) TableName() string {
	return "interest_profiles"
}

// ToDomain converts the persistence model to a domain InterestProfile
func (m *InterestProfileModel) ToDomain() *insight.InterestProfile {
	return &insight.InterestProfile{
		FamilyEntity: m.ToDomainFamilyEntity(),
		ChildID:      m.ChildID,
		Interests:    []string(m.Interests),
		Strengths:    []string(m.Strengths),
		Suggestions:  []string(m.Suggestions),
		GeneratedAt:  m.GeneratedAt,
	}
}

// FromDomain populates the persistence model from a domain InterestProfile
func (m *InterestProfileModel) FromDomain(p *insight.InterestProfile) {
	m.FromDomainFamilyEntity(p.FamilyEntity)
	m.ChildID = p.ChildID
	m.Interests = pq.StringArray(p.Interests)
	m.Strengths = pq.StringArray(p.Strengths)
	m.Suggestions = pq.StringArray(p.Suggestions)
	m.GeneratedAt = p.GeneratedAt
}

// RoadmapModel is the persistence model for generated roadmaps. The weekly
// plan is stored as a JSONB document.
type RoadmapModel struct {
	FamilyModel
	ChildID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Weeks       []byte    `gorm:"type:jsonb;not null"`
	GeneratedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RoadmapModel) TableName() string {
	return "roadmaps"
}

// ToDomain converts the persistence model to a domain Roadmap
func (m *RoadmapModel) ToDomain() (*insight.Roadmap, error) {
	var weeks []insight.RoadmapWeek
	if err := json.Unmarshal(m.Weeks, &weeks); err != nil {
		return nil, fmt.Errorf("failed to decode roadmap weeks: %w", err)
	}

	return &insight.Roadmap{
		FamilyEntity: m.ToDomainFamilyEntity(),
		ChildID:      m.ChildID,
		Weeks:        weeks,
		GeneratedAt:  m.GeneratedAt,
	}, nil
}

// FromDomain populates the persistence model from a domain Roadmap
func (m *RoadmapModel) FromDomain(r *insight.Roadmap) error {
	weeks, err := json.Marshal(r.Weeks)
	if err != nil {
		return fmt.Errorf("failed to encode roadmap weeks: %w", err)
	}

	m.FromDomainFamilyEntity(r.FamilyEntity)
	m.ChildID = r.ChildID
	m.Weeks = weeks
	m.GeneratedAt = r.GeneratedAt
	return nil
}
