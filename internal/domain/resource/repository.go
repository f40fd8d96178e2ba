package resource

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows resource listings. Zero value means no filtering.
type Filter struct {
	Type     *Type
	DomainID *uuid.UUID
	StageID  *uuid.UUID
	Featured *bool
	Search   string
	Offset   int
	Limit    int
}

// WithType filters by resource type
func (f Filter) WithType(t Type) Filter {
	f.Type = &t
	return f
}

// WithDomain filters by development domain
func (f Filter) WithDomain(domainID uuid.UUID) Filter {
	f.DomainID = &domainID
	return f
}

// WithStage filters by age stage
func (f Filter) WithStage(stageID uuid.UUID) Filter {
	f.StageID = &stageID
	return f
}

// WithFeatured filters by the featured flag
func (f Filter) WithFeatured(featured bool) Filter {
	f.Featured = &featured
	return f
}

// WithSearch filters by a case-insensitive title match
func (f Filter) WithSearch(q string) Filter {
	f.Search = q
	return f
}

// WithPagination sets the result window
func (f Filter) WithPagination(offset, limit int) Filter {
	f.Offset = offset
	f.Limit = limit
	return f
}

// Repository defines persistence operations for resources
type Repository interface {
	Create(ctx context.Context, r *Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, int64, error)
	// IncrementViews bumps the view counter atomically in storage.
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Update(ctx context.Context, r *Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookmarkRepository defines persistence operations for bookmarks
type BookmarkRepository interface {
	Create(ctx context.Context, b *Bookmark) error
	Find(ctx context.Context, userID, resourceID uuid.UUID) (*Bookmark, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Bookmark, error)
	Delete(ctx context.Context, userID, resourceID uuid.UUID) error
}
