package family

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/family"
	"github.com/lifecurriculum/backend/internal/domain/identity"
)

// FamilyService exposes family account operations
type FamilyService struct {
	familyRepo family.Repository
	userRepo   identity.UserRepository
	logger     *zap.Logger
}

// NewFamilyService creates a family service
func NewFamilyService(familyRepo family.Repository, userRepo identity.UserRepository, logger *zap.Logger) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Get returns the family for the given id
func (s *FamilyService) Get(ctx context.Context, familyID uuid.UUID) (*FamilyInfo, error) {
	f, err := s.familyRepo.FindByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	return toFamilyInfo(f), nil
}

// Rename updates the family display name
func (s *FamilyService) Rename(ctx context.Context, input RenameInput) (*FamilyInfo, error) {
	f, err := s.familyRepo.FindByID(ctx, input.FamilyID)
	if err != nil {
		return nil, err
	}

	if err := f.Rename(input.Name); err != nil {
		return nil, err
	}

	if err := s.familyRepo.Update(ctx, f); err != nil {
		return nil, err
	}

	s.logger.Info("family renamed", zap.String("family_id", f.ID.String()))
	return toFamilyInfo(f), nil
}

// ChangeTier moves the family between subscription tiers
func (s *FamilyService) ChangeTier(ctx context.Context, input ChangeTierInput) (*FamilyInfo, error) {
	f, err := s.familyRepo.FindByID(ctx, input.FamilyID)
	if err != nil {
		return nil, err
	}

	if err := f.ChangeTier(family.SubscriptionTier(input.Tier)); err != nil {
		return nil, err
	}

	if err := s.familyRepo.Update(ctx, f); err != nil {
		return nil, err
	}

	s.logger.Info("family tier changed",
		zap.String("family_id", f.ID.String()),
		zap.String("tier", input.Tier))
	return toFamilyInfo(f), nil
}

// ListMembers returns all users belonging to the family
func (s *FamilyService) ListMembers(ctx context.Context, familyID uuid.UUID) ([]*MemberInfo, error) {
	users, err := s.userRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	members := make([]*MemberInfo, 0, len(users))
	for _, u := range users {
		members = append(members, &MemberInfo{
			ID:            u.ID,
			Email:         u.Email,
			FirstName:     u.FirstName,
			LastName:      u.LastName,
			Role:          string(u.Role),
			EmailVerified: u.EmailVerified,
			IsActive:      u.IsActive,
		})
	}
	return members, nil
}

func toFamilyInfo(f *family.Family) *FamilyInfo {
	return &FamilyInfo{
		ID:               f.ID,
		Name:             f.Name,
		SubscriptionTier: string(f.SubscriptionTier),
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}
