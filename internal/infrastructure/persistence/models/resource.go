package models

import (
	"github.com/google/uuid"
	"github.com/lifecurriculum/backend/internal/domain/resource"
)

// ResourceModel is the persistence model for library resources
type ResourceModel struct {
	BaseModel
	Title        string     `gorm:"type:varchar(255);not null"`
	Type         string     `gorm:"type:varchar(20);not null;index"`
	URL          string     `gorm:"type:varchar(1000);not null"`
	Description  string     `gorm:"type:text"`
	DomainID     *uuid.UUID `gorm:"type:uuid;index"`
	StageID      *uuid.UUID `gorm:"type:uuid;index"`
	Featured     bool       `gorm:"not null;default:false;index"`
	ViewCount    int64      `gorm:"not null;default:0"`
	ThumbnailKey *string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ResourceModel) TableName() string {
	return "resources"
}

// ToDomain converts the persistence model to a domain Resource
func (m *ResourceModel) ToDomain() *resource.Resource {
	return &resource.Resource{
		BaseEntity:   m.BaseModel.ToDomain(),
		Title:        m.Title,
		Type:         resource.Type(m.Type),
		URL:          m.URL,
		Description:  m.Description,
		DomainID:     m.DomainID,
		StageID:      m.StageID,
		Featured:     m.Featured,
		ViewCount:    m.ViewCount,
		ThumbnailKey: m.ThumbnailKey,
	}
}

// FromDomain populates the persistence model from a domain Resource
func (m *ResourceModel) FromDomain(r *resource.Resource) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Title = r.Title
	m.Type = string(r.Type)
	m.URL = r.URL
	m.Description = r.Description
	m.DomainID = r.DomainID
	m.StageID = r.StageID
	m.Featured = r.Featured
	m.ViewCount = r.ViewCount
	m.ThumbnailKey = r.ThumbnailKey
}

// BookmarkModel is the persistence model for bookmarks. The unique index on
// (user_id, resource_id) makes saves idempotent.
type BookmarkModel struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_resource"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_resource"`
}

// TableName returns the table name for GORM
func (BookmarkModel) TableName() string {
	return "bookmarks"
}

// ToDomain converts the persistence model to a domain Bookmark
func (m *BookmarkModel) ToDomain() *resource.Bookmark {
	return &resource.Bookmark{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ResourceID: m.ResourceID,
	}
}

// FromDomain populates the persistence model from a domain Bookmark
func (m *BookmarkModel) FromDomain(b *resource.Bookmark) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.UserID = b.UserID
	m.ResourceID = b.ResourceID
}
