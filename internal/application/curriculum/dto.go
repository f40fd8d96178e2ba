package curriculum

import "github.com/google/uuid"

// StageInfo is the read model for an age stage
type StageInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MinMonths   int       `json:"min_months"`
	MaxMonths   int       `json:"max_months"`
	SortOrder   int       `json:"sort_order"`
}

// DomainInfo is the read model for a development domain
type DomainInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	SortOrder   int       `json:"sort_order"`
}

// MilestoneInfo is the read model for a milestone
type MilestoneInfo struct {
	ID          uuid.UUID `json:"id"`
	DomainID    uuid.UUID `json:"domain_id"`
	StageID     uuid.UUID `json:"stage_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
}

// ActivityInfo is the read model for a suggested activity
type ActivityInfo struct {
	ID              uuid.UUID   `json:"id"`
	StageID         uuid.UUID   `json:"stage_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Materials       []string    `json:"materials"`
	DurationMinutes int         `json:"duration_minutes"`
	MilestoneIDs    []uuid.UUID `json:"milestone_ids"`
}

// MilestoneQuery narrows milestone listings
type MilestoneQuery struct {
	StageID  *uuid.UUID `form:"stage_id"`
	DomainID *uuid.UUID `form:"domain_id"`
}

// ChildStage describes the stage a child currently falls into together
// with the curriculum content for that stage
type ChildStage struct {
	Stage       *StageInfo       `json:"stage"`
	AgeInMonths int              `json:"age_in_months"`
	Milestones  []*MilestoneInfo `json:"milestones"`
	Activities  []*ActivityInfo  `json:"activities"`
}
