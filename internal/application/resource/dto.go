package resource

import (
	"time"

	"github.com/google/uuid"
)

// ResourceInfo is the read model for a library resource
type ResourceInfo struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	URL          string     `json:"url"`
	Description  string     `json:"description"`
	DomainID     *uuid.UUID `json:"domain_id,omitempty"`
	StageID      *uuid.UUID `json:"stage_id,omitempty"`
	Featured     bool       `json:"featured"`
	ViewCount    int64      `json:"view_count"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	Bookmarked   bool       `json:"bookmarked"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ListQuery narrows resource listings
type ListQuery struct {
	Type     *string    `form:"type" binding:"omitempty,oneof=article video pdf"`
	DomainID *uuid.UUID `form:"domain_id"`
	StageID  *uuid.UUID `form:"stage_id"`
	Featured *bool      `form:"featured"`
	Search   string     `form:"search" binding:"max=200"`
	Offset   int        `form:"offset" binding:"min=0"`
	Limit    int        `form:"limit" binding:"min=0,max=100"`
}

// ResourceList is a paginated resource listing
type ResourceList struct {
	Resources []*ResourceInfo `json:"resources"`
	Total     int64           `json:"total"`
	Offset    int             `json:"offset"`
	Limit     int             `json:"limit"`
}
