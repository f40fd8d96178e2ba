package child

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/child"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/storage"
)

const (
	avatarUploadTTL   = 15 * time.Minute
	avatarDownloadTTL = time.Hour
)

// imageExtensions maps accepted avatar content types to object key suffixes
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ChildService manages child profiles within a family
type ChildService struct {
	childRepo child.Repository
	storage   storage.ObjectStorage
	logger    *zap.Logger
}

// NewChildService creates a child service
func NewChildService(childRepo child.Repository, objectStorage storage.ObjectStorage, logger *zap.Logger) *ChildService {
	return &ChildService{
		childRepo: childRepo,
		storage:   objectStorage,
		logger:    logger,
	}
}

// Create registers a new child in the family
func (s *ChildService) Create(ctx context.Context, input CreateChildInput) (*ChildInfo, error) {
	c, err := child.NewChild(input.FamilyID, input.Name, input.BirthDate, input.Gender)
	if err != nil {
		return nil, err
	}

	if err := s.childRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("child profile created",
		zap.String("child_id", c.ID.String()),
		zap.String("family_id", c.FamilyID.String()))
	return s.toChildInfo(ctx, c), nil
}

// List returns all children in the family
func (s *ChildService) List(ctx context.Context, familyID uuid.UUID) ([]*ChildInfo, error) {
	children, err := s.childRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	infos := make([]*ChildInfo, 0, len(children))
	for _, c := range children {
		infos = append(infos, s.toChildInfo(ctx, c))
	}
	return infos, nil
}

// Get returns one child, scoped to the caller's family
func (s *ChildService) Get(ctx context.Context, familyID, childID uuid.UUID) (*ChildInfo, error) {
	c, err := s.findOwned(ctx, familyID, childID)
	if err != nil {
		return nil, err
	}
	return s.toChildInfo(ctx, c), nil
}

// Update changes the child's profile fields
func (s *ChildService) Update(ctx context.Context, input UpdateChildInput) (*ChildInfo, error) {
	c, err := s.findOwned(ctx, input.FamilyID, input.ChildID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateProfile(input.Name, input.BirthDate, input.Gender); err != nil {
		return nil, err
	}

	if err := s.childRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.toChildInfo(ctx, c), nil
}

// Delete removes the child profile and its dependent records
func (s *ChildService) Delete(ctx context.Context, familyID, childID uuid.UUID) error {
	c, err := s.findOwned(ctx, familyID, childID)
	if err != nil {
		return err
	}

	if err := s.childRepo.Delete(ctx, c.ID); err != nil {
		return err
	}

	s.logger.Info("child profile deleted", zap.String("child_id", childID.String()))
	return nil
}

// RequestAvatarUpload issues a presigned PUT URL for the child's avatar and
// records the object key. The client uploads directly to object storage.
func (s *ChildService) RequestAvatarUpload(ctx context.Context, input AvatarUploadInput) (*AvatarUpload, error) {
	c, err := s.findOwned(ctx, input.FamilyID, input.ChildID)
	if err != nil {
		return nil, err
	}

	ext, ok := imageExtensions[input.ContentType]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_CONTENT_TYPE", "Avatar must be a JPEG, PNG or WebP image")
	}

	key := storage.AvatarKey(c.ID, ext)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, input.ContentType, avatarUploadTTL)
	if err != nil {
		return nil, err
	}

	c.SetAvatar(key)
	if err := s.childRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return &AvatarUpload{UploadURL: url, Key: key, ExpiresAt: expiresAt}, nil
}

// findOwned loads a child and enforces family ownership. A child belonging
// to another family is reported as not found rather than forbidden.
func (s *ChildService) findOwned(ctx context.Context, familyID, childID uuid.UUID) (*child.Child, error) {
	c, err := s.childRepo.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if c.FamilyID != familyID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (s *ChildService) toChildInfo(ctx context.Context, c *child.Child) *ChildInfo {
	info := &ChildInfo{
		ID:          c.ID,
		FamilyID:    c.FamilyID,
		Name:        c.Name,
		BirthDate:   c.BirthDate,
		Gender:      c.Gender,
		AgeInMonths: c.AgeInMonths(time.Now()),
		CreatedAt:   c.CreatedAt,
	}
	if c.AvatarKey != nil {
		url, _, err := s.storage.GenerateDownloadURL(ctx, *c.AvatarKey, avatarDownloadTTL)
		if err != nil {
			s.logger.Warn("avatar url generation failed",
				zap.String("child_id", c.ID.String()), zap.Error(err))
		} else {
			info.AvatarURL = &url
		}
	}
	return info
}
