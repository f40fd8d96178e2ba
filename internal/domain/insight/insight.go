// Package insight holds AI-derived analysis artifacts: the interest profile
// distilled from a child's history, and the 12-week activity roadmap built
// from it.
package insight

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// RoadmapWeeks is the fixed length of a generated roadmap
const RoadmapWeeks = 12

// InterestProfile is the AI's read on what a child gravitates toward
type InterestProfile struct {
	shared.FamilyEntity
	ChildID     uuid.UUID
	Interests   []string
	Strengths   []string
	Suggestions []string
	GeneratedAt time.Time
}

// NewInterestProfile records an analysis result for a child
func NewInterestProfile(familyID, childID uuid.UUID, interests, strengths, suggestions []string) *InterestProfile {
	return &InterestProfile{
		FamilyEntity: shared.NewFamilyEntity(familyID),
		ChildID:      childID,
		Interests:    interests,
		Strengths:    strengths,
		Suggestions:  suggestions,
		GeneratedAt:  time.Now(),
	}
}

// RoadmapWeek is one week of a generated plan
type RoadmapWeek struct {
	Week       int      `json:"week"`
	Focus      string   `json:"focus"`
	Activities []string `json:"activities"`
	Goals      []string `json:"goals"`
}

// Roadmap is a 12-week activity plan for a child
type Roadmap struct {
	shared.FamilyEntity
	ChildID     uuid.UUID
	Weeks       []RoadmapWeek
	GeneratedAt time.Time
}

// NewRoadmap validates and records a generated plan
func NewRoadmap(familyID, childID uuid.UUID, weeks []RoadmapWeek) (*Roadmap, error) {
	if len(weeks) != RoadmapWeeks {
		return nil, shared.NewDomainError("INVALID_ROADMAP", "A roadmap must cover exactly 12 weeks")
	}
	for i := range weeks {
		if weeks[i].Week != i+1 {
			return nil, shared.NewDomainError("INVALID_ROADMAP", "Roadmap weeks must be numbered 1 through 12")
		}
	}

	return &Roadmap{
		FamilyEntity: shared.NewFamilyEntity(familyID),
		ChildID:      childID,
		Weeks:        weeks,
		GeneratedAt:  time.Now(),
	}, nil
}
