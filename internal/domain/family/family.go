package family

import (
	"strings"

	"github.com/lifecurriculum/backend/internal/domain/shared"
)

// SubscriptionTier determines feature limits for a family
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// IsValid reports whether the tier is a known value
func (t SubscriptionTier) IsValid() bool {
	return t == TierFree || t == TierPremium
}

// Family is the multi-tenancy root. Every user, child and activity record
// belongs to exactly one family.
type Family struct {
	shared.VersionedEntity
	Name             string
	SubscriptionTier SubscriptionTier
}

// NewFamily creates a family on the free tier
func NewFamily(name string) (*Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_FAMILY_NAME", "Family name is required")
	}
	if len(name) > 120 {
		return nil, shared.NewDomainError("INVALID_FAMILY_NAME", "Family name must be at most 120 characters")
	}

	return &Family{
		VersionedEntity:  shared.NewVersionedEntity(),
		Name:             name,
		SubscriptionTier: TierFree,
	}, nil
}

// Rename updates the family name
func (f *Family) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_FAMILY_NAME", "Family name is required")
	}
	f.Name = name
	f.IncrementVersion()
	return nil
}

// ChangeTier moves the family to a different subscription tier
func (f *Family) ChangeTier(tier SubscriptionTier) error {
	if !tier.IsValid() {
		return shared.NewDomainError("INVALID_TIER", "Unknown subscription tier")
	}
	if f.SubscriptionTier == tier {
		return nil
	}
	f.SubscriptionTier = tier
	f.IncrementVersion()
	return nil
}

// IsPremium reports whether the family is on the premium tier
func (f *Family) IsPremium() bool {
	return f.SubscriptionTier == TierPremium
}
