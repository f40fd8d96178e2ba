package athletic

import (
	"time"

	"github.com/google/uuid"
)

// SportInfo is the read model for a seeded sport
type SportInfo struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Icon     string    `json:"icon"`
}

// AthleteInfo is the read model for an athlete profile
type AthleteInfo struct {
	ID         uuid.UUID `json:"id"`
	ChildID    uuid.UUID `json:"child_id"`
	SportID    uuid.UUID `json:"sport_id"`
	SportName  string    `json:"sport_name"`
	SkillLevel string    `json:"skill_level"`
	Goals      string    `json:"goals"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityLogInfo is the read model for a training session
type ActivityLogInfo struct {
	ID              uuid.UUID `json:"id"`
	AthleteID       uuid.UUID `json:"athlete_id"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Intensity       int       `json:"intensity"`
	Notes           string    `json:"notes"`
}

// CheckInInfo is the read model for a fun check-in
type CheckInInfo struct {
	ID        uuid.UUID `json:"id"`
	AthleteID uuid.UUID `json:"athlete_id"`
	Date      time.Time `json:"date"`
	Enjoyment int       `json:"enjoyment"`
	MoodNote  string    `json:"mood_note"`
}

// TrendInfo summarizes recent enjoyment movement for an athlete
type TrendInfo struct {
	Direction string  `json:"direction"`
	Delta     float64 `json:"delta"`
	Message   string  `json:"message"`
}

// CreateAthleteInput enrolls a child in a sport
type CreateAthleteInput struct {
	FamilyID   uuid.UUID `json:"-"`
	ChildID    uuid.UUID `json:"child_id" binding:"required"`
	SportID    uuid.UUID `json:"sport_id" binding:"required"`
	SkillLevel string    `json:"skill_level" binding:"required,oneof=beginner intermediate advanced"`
	Goals      string    `json:"goals" binding:"max=2000"`
}

// UpdateAthleteInput changes an athlete's skill level and goals
type UpdateAthleteInput struct {
	FamilyID   uuid.UUID `json:"-"`
	AthleteID  uuid.UUID `json:"-"`
	SkillLevel string    `json:"skill_level" binding:"required,oneof=beginner intermediate advanced"`
	Goals      string    `json:"goals" binding:"max=2000"`
}

// LogActivityInput records a training session
type LogActivityInput struct {
	FamilyID        uuid.UUID `json:"-"`
	AthleteID       uuid.UUID `json:"-"`
	Date            time.Time `json:"date" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1,max=600"`
	Intensity       int       `json:"intensity" binding:"required,min=1,max=5"`
	Notes           string    `json:"notes" binding:"max=2000"`
}

// CheckInInput records an enjoyment pulse
type CheckInInput struct {
	FamilyID  uuid.UUID `json:"-"`
	AthleteID uuid.UUID `json:"-"`
	Date      time.Time `json:"date" binding:"required"`
	Enjoyment int       `json:"enjoyment" binding:"required,min=1,max=5"`
	MoodNote  string    `json:"mood_note" binding:"max=500"`
}
