// Package athletic covers the sports side of a child's development: the
// athlete profile, logged training activity and enjoyment check-ins.
package athletic

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// SkillLevel grades an athlete's current ability
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// IsValid reports whether the skill level is a known value
func (l SkillLevel) IsValid() bool {
	return l == SkillBeginner || l == SkillIntermediate || l == SkillAdvanced
}

// Sport is a seeded reference entry
type Sport struct {
	shared.BaseEntity
	Name     string
	Category string
	Icon     string
}

// Athlete is a child's profile in one sport
type Athlete struct {
	shared.FamilyEntity
	ChildID    uuid.UUID
	SportID    uuid.UUID
	SkillLevel SkillLevel
	Goals      string
}

// NewAthlete creates an athlete profile for a child
func NewAthlete(familyID, childID, sportID uuid.UUID, level SkillLevel, goals string) (*Athlete, error) {
	if !level.IsValid() {
		return nil, shared.NewDomainError("INVALID_SKILL_LEVEL", "Unknown skill level")
	}

	return &Athlete{
		FamilyEntity: shared.NewFamilyEntity(familyID),
		ChildID:      childID,
		SportID:      sportID,
		SkillLevel:   level,
		Goals:        strings.TrimSpace(goals),
	}, nil
}

// UpdateProfile changes the athlete's skill level and goals
func (a *Athlete) UpdateProfile(level SkillLevel, goals string) error {
	if !level.IsValid() {
		return shared.NewDomainError("INVALID_SKILL_LEVEL", "Unknown skill level")
	}
	a.SkillLevel = level
	a.Goals = strings.TrimSpace(goals)
	a.IncrementVersion()
	return nil
}

// ActivityLog records one training session or practice
type ActivityLog struct {
	shared.FamilyEntity
	AthleteID       uuid.UUID
	Date            time.Time
	DurationMinutes int
	Intensity       int
	Notes           string
}

// NewActivityLog records a training session
func NewActivityLog(familyID, athleteID uuid.UUID, date time.Time, durationMinutes, intensity int, notes string) (*ActivityLog, error) {
	if durationMinutes <= 0 {
		return nil, shared.NewDomainError("INVALID_ACTIVITY_LOG", "Duration must be positive")
	}
	if intensity < 1 || intensity > 5 {
		return nil, shared.NewDomainError("INVALID_ACTIVITY_LOG", "Intensity must be between 1 and 5")
	}
	if date.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_ACTIVITY_LOG", "Activity date cannot be in the future")
	}

	return &ActivityLog{
		FamilyEntity:    shared.NewFamilyEntity(familyID),
		AthleteID:       athleteID,
		Date:            date,
		DurationMinutes: durationMinutes,
		Intensity:       intensity,
		Notes:           notes,
	}, nil
}

// FunCheckIn is a quick "did you enjoy it" pulse from the child
type FunCheckIn struct {
	shared.FamilyEntity
	AthleteID uuid.UUID
	Date      time.Time
	Enjoyment int
	MoodNote  string
}

// NewFunCheckIn records an enjoyment rating between 1 and 5
func NewFunCheckIn(familyID, athleteID uuid.UUID, date time.Time, enjoyment int, moodNote string) (*FunCheckIn, error) {
	if enjoyment < 1 || enjoyment > 5 {
		return nil, shared.NewDomainError("INVALID_CHECKIN", "Enjoyment must be between 1 and 5")
	}
	if date.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_CHECKIN", "Check-in date cannot be in the future")
	}

	return &FunCheckIn{
		FamilyEntity: shared.NewFamilyEntity(familyID),
		AthleteID:    athleteID,
		Date:         date,
		Enjoyment:    enjoyment,
		MoodNote:     moodNote,
	}, nil
}
