// Package curriculum holds the developmental reference data the application
// serves: age stages, development domains, milestones and suggested
// activities. This data is seeded, not user-editable.
package curriculum

import (
	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// AgeStage is a developmental age band measured in months
type AgeStage struct {
	shared.BaseEntity
	Name        string
	Description string
	MinMonths   int
	MaxMonths   int
	SortOrder   int
}

// Contains reports whether an age in months falls inside this stage
func (s *AgeStage) Contains(ageMonths int) bool {
	return ageMonths >= s.MinMonths && ageMonths <= s.MaxMonths
}

// DevelopmentDomain is a developmental area such as motor skills or language
type DevelopmentDomain struct {
	shared.BaseEntity
	Name        string
	Description string
	Icon        string
	SortOrder   int
}

// Milestone is an observable capability within a domain and stage
type Milestone struct {
	shared.BaseEntity
	DomainID    uuid.UUID
	StageID     uuid.UUID
	Title       string
	Description string
	SortOrder   int
}

// Activity is a suggested exercise for an age stage, optionally linked to
// the milestones it helps develop
type Activity struct {
	shared.BaseEntity
	StageID         uuid.UUID
	Title           string
	Description     string
	Materials       []string
	DurationMinutes int
	MilestoneIDs    []uuid.UUID
}

// StageForAge picks the stage matching the given age from an ordered list.
// Returns nil when the age falls outside every stage.
func StageForAge(stages []*AgeStage, ageMonths int) *AgeStage {
	for _, s := range stages {
		if s.Contains(ageMonths) {
			return s
		}
	}
	return nil
}
