package insight

import (
	"time"

	"github.com/google/uuid"
)

// InterestProfileInfo is the read model for an interest analysis
type InterestProfileInfo struct {
	ID          uuid.UUID `json:"id"`
	ChildID     uuid.UUID `json:"child_id"`
	Interests   []string  `json:"interests"`
	Strengths   []string  `json:"strengths"`
	Suggestions []string  `json:"suggestions"`
	GeneratedAt time.Time `json:"generated_at"`
}

// RoadmapWeekInfo is one week of a generated plan
type RoadmapWeekInfo struct {
	Week       int      `json:"week"`
	Focus      string   `json:"focus"`
	Activities []string `json:"activities"`
	Goals      []string `json:"goals"`
}

// RoadmapInfo is the read model for a 12-week plan
type RoadmapInfo struct {
	ID          uuid.UUID          `json:"id"`
	ChildID     uuid.UUID          `json:"child_id"`
	Weeks       []*RoadmapWeekInfo `json:"weeks"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// interestAnalysis is the JSON shape the model is asked to return
type interestAnalysis struct {
	Interests   []string `json:"interests"`
	Strengths   []string `json:"strengths"`
	Suggestions []string `json:"suggestions"`
}

// roadmapPlan is the JSON shape the model is asked to return
type roadmapPlan struct {
	Weeks []struct {
		Week       int      `json:"week"`
		Focus      string   `json:"focus"`
		Activities []string `json:"activities"`
		Goals      []string `json:"goals"`
	} `json:"weeks"`
}
