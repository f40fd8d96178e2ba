package resource

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/resource"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/storage"
)

const thumbnailDownloadTTL = time.Hour

// ResourceService serves the parent resource library and bookmarks
type ResourceService struct {
	resourceRepo resource.Repository
	bookmarkRepo resource.BookmarkRepository
	storage      storage.ObjectStorage
	logger       *zap.Logger
}

// NewResourceService creates a resource service
func NewResourceService(
	resourceRepo resource.Repository,
	bookmarkRepo resource.BookmarkRepository,
	objectStorage storage.ObjectStorage,
	logger *zap.Logger,
) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		bookmarkRepo: bookmarkRepo,
		storage:      objectStorage,
		logger:       logger,
	}
}

// List returns resources matching the query, flagging the caller's bookmarks
func (s *ResourceService) List(ctx context.Context, userID uuid.UUID, query ListQuery) (*ResourceList, error) {
	filter := buildFilter(query)

	resources, total, err := s.resourceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	bookmarked, err := s.bookmarkedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := &ResourceList{
		Resources: make([]*ResourceInfo, 0, len(resources)),
		Total:     total,
		Offset:    filter.Offset,
		Limit:     filter.Limit,
	}
	for _, r := range resources {
		list.Resources = append(list.Resources, s.toResourceInfo(ctx, r, bookmarked[r.ID]))
	}
	return list, nil
}

// Get returns one resource and counts the view
func (s *ResourceService) Get(ctx context.Context, userID, resourceID uuid.UUID) (*ResourceInfo, error) {
	r, err := s.resourceRepo.FindByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	if err := s.resourceRepo.IncrementViews(ctx, r.ID); err != nil {
		s.logger.Warn("view count update failed",
			zap.String("resource_id", r.ID.String()), zap.Error(err))
	} else {
		r.ViewCount++
	}

	isBookmarked := true
	if _, err := s.bookmarkRepo.Find(ctx, userID, r.ID); err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		isBookmarked = false
	}

	return s.toResourceInfo(ctx, r, isBookmarked), nil
}

// Bookmark saves a resource for the user. Bookmarking twice is a no-op.
func (s *ResourceService) Bookmark(ctx context.Context, userID, resourceID uuid.UUID) error {
	if _, err := s.resourceRepo.FindByID(ctx, resourceID); err != nil {
		return err
	}

	if _, err := s.bookmarkRepo.Find(ctx, userID, resourceID); err == nil {
		return nil
	} else if !shared.IsNotFound(err) {
		return err
	}

	return s.bookmarkRepo.Create(ctx, resource.NewBookmark(userID, resourceID))
}

// Unbookmark removes a saved resource. Removing an absent bookmark is a no-op.
func (s *ResourceService) Unbookmark(ctx context.Context, userID, resourceID uuid.UUID) error {
	err := s.bookmarkRepo.Delete(ctx, userID, resourceID)
	if shared.IsNotFound(err) {
		return nil
	}
	return err
}

// ListBookmarks returns the user's saved resources
func (s *ResourceService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*ResourceInfo, error) {
	bookmarks, err := s.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]*ResourceInfo, 0, len(bookmarks))
	for _, b := range bookmarks {
		r, err := s.resourceRepo.FindByID(ctx, b.ResourceID)
		if err != nil {
			if shared.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		infos = append(infos, s.toResourceInfo(ctx, r, true))
	}
	return infos, nil
}

func buildFilter(query ListQuery) resource.Filter {
	filter := resource.Filter{Search: query.Search}
	if query.Type != nil {
		filter = filter.WithType(resource.Type(*query.Type))
	}
	if query.DomainID != nil {
		filter = filter.WithDomain(*query.DomainID)
	}
	if query.StageID != nil {
		filter = filter.WithStage(*query.StageID)
	}
	if query.Featured != nil {
		filter = filter.WithFeatured(*query.Featured)
	}

	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	return filter.WithPagination(offset, limit)
}

func (s *ResourceService) bookmarkedSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	bookmarks, err := s.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(bookmarks))
	for _, b := range bookmarks {
		set[b.ResourceID] = true
	}
	return set, nil
}

func (s *ResourceService) toResourceInfo(ctx context.Context, r *resource.Resource, bookmarked bool) *ResourceInfo {
	info := &ResourceInfo{
		ID:          r.ID,
		Title:       r.Title,
		Type:        string(r.Type),
		URL:         r.URL,
		Description: r.Description,
		DomainID:    r.DomainID,
		StageID:     r.StageID,
		Featured:    r.Featured,
		ViewCount:   r.ViewCount,
		Bookmarked:  bookmarked,
		CreatedAt:   r.CreatedAt,
	}
	if r.ThumbnailKey != nil {
		url, _, err := s.storage.GenerateDownloadURL(ctx, *r.ThumbnailKey, thumbnailDownloadTTL)
		if err != nil {
			s.logger.Warn("thumbnail url generation failed",
				zap.String("resource_id", r.ID.String()), zap.Error(err))
		} else {
			info.ThumbnailURL = &url
		}
	}
	return info
}
