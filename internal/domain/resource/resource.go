package resource

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// Type classifies a library resource
type Type string

const (
	TypeArticle Type = "article"
	TypeVideo   Type = "video"
	TypePDF     Type = "pdf"
)

// IsValid reports whether the type is a known value
func (t Type) IsValid() bool {
	return t == TypeArticle || t == TypeVideo || t == TypePDF
}

// Resource is an item in the parent resource library
type Resource struct {
	shared.BaseEntity
	Title        string
	Type         Type
	URL          string
	Description  string
	DomainID     *uuid.UUID
	StageID      *uuid.UUID
	Featured     bool
	ViewCount    int64
	ThumbnailKey *string
}

// NewResource creates a library resource
func NewResource(title string, typ Type, url, description string) (*Resource, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_RESOURCE", "Resource title is required")
	}
	if !typ.IsValid() {
		return nil, shared.NewDomainError("INVALID_RESOURCE", "Unknown resource type")
	}
	if strings.TrimSpace(url) == "" {
		return nil, shared.NewDomainError("INVALID_RESOURCE", "Resource URL is required")
	}

	return &Resource{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       title,
		Type:        typ,
		URL:         url,
		Description: description,
	}, nil
}

// Bookmark marks a resource as saved by a user
type Bookmark struct {
	shared.BaseEntity
	UserID     uuid.UUID
	ResourceID uuid.UUID
}

// NewBookmark saves a resource for a user
func NewBookmark(userID, resourceID uuid.UUID) *Bookmark {
	return &Bookmark{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ResourceID: resourceID,
	}
}
