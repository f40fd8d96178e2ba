package models

import (
	"github.com/lifecurriculum/backend/internal/domain/family"
)

// FamilyRecordModel is the persistence model for the Family aggregate
type FamilyRecordModel struct {
	VersionedModel
	Name             string `gorm:"type:varchar(120);not null"`
	SubscriptionTier string `gorm:"type:varchar(20);not null;default:'free'"`
}

// TableName returns the table name for GORM
func (FamilyRecordModel) TableName() string {
	return "families"
}

// ToDomain converts the persistence model to a domain Family
func (m *FamilyRecordModel) ToDomain() *family.Family {
	return &family.Family{
		VersionedEntity:  m.ToDomainVersioned(),
		Name:             m.Name,
		SubscriptionTier: family.SubscriptionTier(m.SubscriptionTier),
	}
}

// FromDomain populates the persistence model from a domain Family
func (m *FamilyRecordModel) FromDomain(f *family.Family) {
	m.FromDomainVersioned(f.VersionedEntity)
	m.Name = f.Name
	m.SubscriptionTier = string(f.SubscriptionTier)
}
